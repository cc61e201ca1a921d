package domain

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func boardOf(xs, os []int) Board {
    var b Board
    for _, i := range xs {
        b[i] = X
    }
    for _, i := range os {
        b[i] = O
    }
    return b
}

func TestCalculateWinnerMainDiagonal(t *testing.T) {
    h := historyOf(t, 0, 1, 4, 2, 8)

    w, ok := CalculateWinner(h[len(h)-1])

    require.True(t, ok)
    assert.Equal(t, WinResult{Winner: X, Squares: [3]int{0, 4, 8}}, w)
    assert.True(t, w.Has(4))
    assert.False(t, w.Has(1))
}

func TestCalculateWinnerNoLineYet(t *testing.T) {
    // X on 0, 8, 2 and O on 4, 1: no line is complete.
    h := historyOf(t, 0, 4, 8, 1, 2)

    _, ok := CalculateWinner(h[len(h)-1])

    assert.False(t, ok)
}

func TestCalculateWinnerFirstLineWins(t *testing.T) {
    tests := []struct {
        name  string
        board Board
        want  WinResult
    }{
        {"two rows", boardOf([]int{0, 1, 2, 3, 4, 5}, nil), WinResult{X, [3]int{0, 1, 2}}},
        {"row before column", boardOf([]int{6, 7, 8}, []int{0, 3}), WinResult{X, [3]int{6, 7, 8}}},
        {"column before diagonal", boardOf(nil, []int{2, 5, 8, 4, 6}), WinResult{O, [3]int{2, 5, 8}}},
        {"anti diagonal", boardOf([]int{2, 4, 6}, []int{0, 1}), WinResult{X, [3]int{2, 4, 6}}},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            w, ok := CalculateWinner(tt.board)
            require.True(t, ok)
            assert.Equal(t, tt.want, w)
        })
    }
}

func TestCalculateWinnerAllBoards(t *testing.T) {
    // Every assignment of the three cell values to nine cells.
    total := 1
    for range (Board{}) {
        total *= 3
    }
    for n := 0; n < total; n++ {
        var b Board
        v := n
        for i := range b {
            b[i] = Cell(v % 3)
            v /= 3
        }

        line := -1
        for li, ln := range Lines {
            if b[ln[0]] != Empty && b[ln[0]] == b[ln[1]] && b[ln[1]] == b[ln[2]] {
                line = li
                break
            }
        }

        w, ok := CalculateWinner(b)
        require.Equal(t, line >= 0, ok, "board %v", b)
        if ok {
            require.Equal(t, Lines[line], w.Squares)
            require.Equal(t, b[Lines[line][0]], w.Winner)
        }
    }
}

func TestIsFull(t *testing.T) {
    assert.False(t, IsFull(Board{}))
    assert.False(t, IsFull(boardOf([]int{0, 2, 3, 7}, []int{1, 4, 5, 6})))
    assert.True(t, IsFull(boardOf([]int{0, 2, 3, 7, 8}, []int{1, 4, 5, 6})))
}
