package domain

// History is the chronological log of snapshots. Index 0 is the empty
// board and index n is the board after move n.
type History []Board

// NewHistory returns a history holding only the empty board.
func NewHistory() History { return History{{}} }

// ApplyMove plays mark at cell on the snapshot at cursor. Snapshots after
// the cursor are discarded and the new board becomes the last entry.
//
// The move is silently rejected, returning history and cursor unchanged,
// when the cell is taken or the snapshot at cursor is already won. The
// returned history never shares storage with the input.
func ApplyMove(history History, cursor, cell int, mark Cell) (History, int) {
    current := history[cursor]
    if _, won := CalculateWinner(current); won || current[cell] != Empty {
        return history, cursor
    }
    next := make(History, cursor+1, cursor+2)
    copy(next, history[:cursor+1])
    current[cell] = mark
    next = append(next, current)
    return next, len(next) - 1
}

// JumpTo returns the cursor for step. Callers only offer steps that exist.
func JumpTo(step int) int { return step }
