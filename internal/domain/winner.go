package domain

// Lines lists every row, column and diagonal. The order decides which line
// is reported when a board holds more than one.
var Lines = [8][3]int{
    // rows
    {0, 1, 2}, {3, 4, 5}, {6, 7, 8},
    // cols
    {0, 3, 6}, {1, 4, 7}, {2, 5, 8},
    // diags
    {0, 4, 8}, {2, 4, 6},
}

// WinResult names the winning mark and the cells of its line.
type WinResult struct {
    Winner  Cell
    Squares [3]int
}

// Has reports whether cell i is part of the winning line.
func (w WinResult) Has(i int) bool {
    for _, s := range w.Squares {
        if s == i {
            return true
        }
    }
    return false
}

// CalculateWinner returns the first completed line of b, if any.
func CalculateWinner(b Board) (WinResult, bool) {
    for _, ln := range Lines {
        a := b[ln[0]]
        if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
            return WinResult{Winner: a, Squares: ln}, true
        }
    }
    return WinResult{}, false
}

// IsFull reports whether no empty cell remains.
func IsFull(b Board) bool {
    for _, c := range b {
        if c == Empty {
            return false
        }
    }
    return true
}
