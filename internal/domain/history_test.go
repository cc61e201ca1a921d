package domain

import (
    "math/rand"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func historyOf(t *testing.T, cells ...int) History {
    t.Helper()
    h, cur := NewHistory(), 0
    for _, c := range cells {
        var next int
        h, next = ApplyMove(h, cur, c, Mark(cur))
        require.Equal(t, cur+1, next, "cell %d rejected", c)
        cur = next
    }
    return h
}

func TestApplyMoveAppendsSnapshot(t *testing.T) {
    h := NewHistory()

    h2, cur := ApplyMove(h, 0, 4, X)

    require.Len(t, h2, 2)
    assert.Equal(t, 1, cur)
    assert.Equal(t, Board{}, h2[0])
    assert.Equal(t, X, h2[1][4])
    assert.Len(t, h, 1)
}

func TestApplyMoveOccupiedIsNoop(t *testing.T) {
    // Given: cell 4 already holds X
    h := historyOf(t, 4)

    // When: another mark is played there
    h2, cur := ApplyMove(h, 1, 4, O)

    // Then: history and cursor are unchanged
    assert.Equal(t, h, h2)
    assert.Equal(t, 1, cur)
}

func TestApplyMoveAfterWinIsNoop(t *testing.T) {
    h := historyOf(t, 0, 3, 1, 4, 2)

    h2, cur := ApplyMove(h, 5, 8, O)

    assert.Equal(t, h, h2)
    assert.Equal(t, 5, cur)
}

func TestBranchDiscardsFuture(t *testing.T) {
    h := historyOf(t, 0, 4, 8, 1, 2)
    before := append(History(nil), h...)

    for k := 0; k < len(h)-1; k++ {
        cur := JumpTo(k)
        // cell 7 is free in every snapshot of this game
        h2, next := ApplyMove(h, cur, 7, Mark(cur))

        require.Len(t, h2, k+2)
        assert.Equal(t, k+1, next)
        assert.Equal(t, h[:k+1], h2[:k+1])
        assert.Equal(t, Mark(k), h2[k+1][7])
    }
    assert.Equal(t, before, h, "input history must not change")
}

func TestBranchDoesNotAliasInput(t *testing.T) {
    h := historyOf(t, 0, 4, 8)
    h2, _ := ApplyMove(h[:2:2], 1, 2, O)
    h3, _ := ApplyMove(h, 1, 6, O)

    assert.Equal(t, O, h2[2][2])
    assert.Equal(t, O, h3[2][6])
    assert.Equal(t, X, h[3][8])
    assert.Equal(t, Empty, h[2][6])
}

func TestSnapshotsDifferInExactlyOneCell(t *testing.T) {
    rng := rand.New(rand.NewSource(7))
    for round := 0; round < 200; round++ {
        h, cur := NewHistory(), 0
        for i := 0; i < 20; i++ {
            if rng.Intn(4) == 0 {
                cur = JumpTo(rng.Intn(len(h)))
                continue
            }
            h, cur = ApplyMove(h, cur, rng.Intn(9), Mark(cur))
        }
        for n := 1; n < len(h); n++ {
            diff := 0
            for i := range h[n] {
                if h[n][i] != h[n-1][i] {
                    diff++
                }
            }
            require.Equal(t, 1, diff, "round %d snapshot %d", round, n)
        }
        _, err := DescribeMoves(h)
        require.NoError(t, err)
    }
}
