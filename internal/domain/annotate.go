package domain

import (
    "errors"
    "fmt"
    "slices"

    "github.com/samber/lo"
)

// ErrAmbiguousMove means two consecutive snapshots do not differ in exactly
// one cell, so the move between them cannot be named.
var ErrAmbiguousMove = errors.New("snapshots must differ in exactly one cell")

const startDescription = "Go to game start"

// MoveDescriptor is one entry of the move list.
type MoveDescriptor struct {
    Step        int
    Cell        int // -1 for the game start entry
    Description string
}

// Location labels cell i as "(c{col}, r{row})", both 1-based.
func Location(i int) string {
    return fmt.Sprintf("(c%d, r%d)", i%3+1, i/3+1)
}

// DescribeMoves names every snapshot of h by the move that produced it.
func DescribeMoves(h History) ([]MoveDescriptor, error) {
    out := make([]MoveDescriptor, 0, len(h))
    for step := range h {
        if step == 0 {
            out = append(out, MoveDescriptor{Step: 0, Cell: -1, Description: startDescription})
            continue
        }
        cell, err := movedCell(h[step-1], h[step])
        if err != nil {
            return nil, fmt.Errorf("step %d: %w", step, err)
        }
        out = append(out, MoveDescriptor{
            Step:        step,
            Cell:        cell,
            Description: "Go to move " + Location(cell),
        })
    }
    return out, nil
}

func movedCell(prev, next Board) (int, error) {
    changed := lo.Filter(lo.Range(len(next)), func(i, _ int) bool { return prev[i] != next[i] })
    if len(changed) != 1 {
        return -1, fmt.Errorf("%w: cells %v changed", ErrAmbiguousMove, changed)
    }
    return changed[0], nil
}

// InvertOrder returns seq reversed. seq itself is left as is.
func InvertOrder[T any](seq []T) []T {
    return lo.Reverse(slices.Clone(seq))
}
