package domain

import (
    "errors"
    "fmt"
)

// Cell represents a board cell state.
type Cell uint8

const (
    Empty Cell = iota
    X
    O
)

// String returns "X", "O" or "" for an empty cell.
func (c Cell) String() string {
    switch c {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return ""
    }
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// NoActiveStep marks a game whose move list has no highlighted entry.
const NoActiveStep = -1

// Errors returned by domain operations.
var (
    ErrOutOfBounds    = errors.New("cell out of bounds")
    ErrStepOutOfRange = errors.New("step out of range")
)

// Game is the whole state of one session. It is a value: transitions
// return a new Game and never modify the receiver's history in place.
type Game struct {
    History   History
    Step      int
    Active    int
    Ascending bool
    // LockHistory rejects plays while an earlier step is displayed
    // instead of branching from it.
    LockHistory bool
}

// NewGame returns the initial game: one empty snapshot, X to move.
func NewGame() Game {
    return Game{
        History:   NewHistory(),
        Active:    NoActiveStep,
        Ascending: true,
    }
}

// ValidCell reports whether i addresses a board cell.
func ValidCell(i int) bool { return i >= 0 && i < len(Board{}) }

// XIsNext reports whether X moves at the given step.
func XIsNext(step int) bool { return step%2 == 0 }

// Mark returns the mark placed by the move made at step.
func Mark(step int) Cell {
    if XIsNext(step) {
        return X
    }
    return O
}

// Current returns the snapshot at the cursor.
func (g Game) Current() Board { return g.History[g.Step] }

// Latest reports whether the cursor is on the most recent snapshot.
func (g Game) Latest() bool { return g.Step == len(g.History)-1 }

// XIsNext reports whether X is to move at the cursor.
func (g Game) XIsNext() bool { return XIsNext(g.Step) }

// Play places the mark of the player to move at cell i.
func (g Game) Play(i int) (Game, bool) {
    if !ValidCell(i) {
        return g, false
    }
    if g.LockHistory && !g.Latest() {
        return g, false
    }
    h, step := ApplyMove(g.History, g.Step, i, Mark(g.Step))
    if step == g.Step {
        return g, false
    }
    g.History = h
    g.Step = step
    g.Active = NoActiveStep
    return g, true
}

// JumpTo moves the cursor to step and highlights it in the move list.
func (g Game) JumpTo(step int) (Game, bool) {
    if step < 0 || step >= len(g.History) {
        return g, false
    }
    g.Step = JumpTo(step)
    g.Active = step
    return g, true
}

// ToggleSort flips the display order of the move list.
func (g Game) ToggleSort() Game {
    g.Ascending = !g.Ascending
    return g
}

// Reset returns a fresh game that keeps the history policy.
func (g Game) Reset() Game {
    n := NewGame()
    n.LockHistory = g.LockHistory
    return n
}

// Event is an input from the presentation layer.
type Event interface{ event() }

// CellClicked asks to play at Index.
type CellClicked struct{ Index int }

// StepClicked asks to display the snapshot at Step.
type StepClicked struct{ Step int }

// SortToggled flips the move list order.
type SortToggled struct{}

// ResetClicked starts over.
type ResetClicked struct{}

func (CellClicked) event()  {}
func (StepClicked) event()  {}
func (SortToggled) event()  {}
func (ResetClicked) event() {}

// Validate reports events whose indices fall outside the board or the
// history. Such events are caller bugs rather than rejected moves.
func Validate(g Game, ev Event) error {
    switch e := ev.(type) {
    case CellClicked:
        if !ValidCell(e.Index) {
            return fmt.Errorf("%w: %d", ErrOutOfBounds, e.Index)
        }
    case StepClicked:
        if e.Step < 0 || e.Step >= len(g.History) {
            return fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, e.Step, len(g.History))
        }
    }
    return nil
}

// Apply is the single transition function: it returns the next game and
// whether anything changed. Rejected events leave the game untouched.
func Apply(g Game, ev Event) (Game, bool) {
    switch e := ev.(type) {
    case CellClicked:
        return g.Play(e.Index)
    case StepClicked:
        return g.JumpTo(e.Step)
    case SortToggled:
        return g.ToggleSort(), true
    case ResetClicked:
        return g.Reset(), true
    default:
        return g, false
    }
}
