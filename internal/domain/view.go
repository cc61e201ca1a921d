package domain

import (
    "github.com/samber/lo"
)

// MoveEntry is a move list row as shown to the player.
type MoveEntry struct {
    MoveDescriptor
    Active bool
}

// View is everything the presentation layer reads from a Game.
type View struct {
    Board     Board
    Win       WinResult
    HasWinner bool
    // Highlight is set when the winning line should be drawn: the game is
    // won at the cursor and the cursor is on the latest move.
    Highlight bool
    Latest    bool
    Full      bool
    Step      int
    XIsNext   bool
    Status    string
    Moves     []MoveEntry
    Ascending bool
    SortLabel string
}

// Status returns the status line for board b with the given player to move.
func Status(b Board, xIsNext bool) string {
    if w, ok := CalculateWinner(b); ok {
        return "Winner: " + w.Winner.String()
    }
    return "Next player: " + lo.Ternary(xIsNext, "X", "O")
}

// SortLabel is the caption of the order toggle for the current order.
func SortLabel(ascending bool) string {
    return "Sort by " + lo.Ternary(ascending, "Descending", "Ascending") + " Order"
}

// NewView derives the read-only view of g.
func NewView(g Game) (View, error) {
    descs, err := DescribeMoves(g.History)
    if err != nil {
        return View{}, err
    }
    moves := lo.Map(descs, func(d MoveDescriptor, _ int) MoveEntry {
        return MoveEntry{MoveDescriptor: d, Active: d.Step == g.Active}
    })
    if !g.Ascending {
        moves = InvertOrder(moves)
    }

    b := g.Current()
    win, won := CalculateWinner(b)
    return View{
        Board:     b,
        Win:       win,
        HasWinner: won,
        Highlight: won && g.Latest(),
        Latest:    g.Latest(),
        Full:      IsFull(b),
        Step:      g.Step,
        XIsNext:   g.XIsNext(),
        Status:    Status(b, g.XIsNext()),
        Moves:     moves,
        Ascending: g.Ascending,
        SortLabel: SortLabel(g.Ascending),
    }, nil
}

// Winning reports whether cell i should be highlighted.
func (v View) Winning(i int) bool { return v.Highlight && v.Win.Has(i) }
