package board

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidNotation = errors.New("invalid notation")

// Move is a candidate or executed move descriptor
type Move struct {
	FromRow, FromCol int
	ToRow, ToCol     int
	IsJump           bool
}

func NewMove(fromRow, fromCol, toRow, toCol int) Move {
	return Move{
		FromRow: fromRow,
		FromCol: fromCol,
		ToRow:   toRow,
		ToCol:   toCol,
		IsJump:  abs(toRow-fromRow) == 2,
	}
}

// Midpoint is the square jumped over; only meaningful for jumps
func (m Move) Midpoint() (int, int) {
	return m.FromRow + (m.ToRow-m.FromRow)/2, m.FromCol + (m.ToCol-m.FromCol)/2
}

// String writes "c3-d4" for a step and "c3xe5" for a jump
func (m Move) String() string {
	sep := "-"
	if m.IsJump {
		sep = "x"
	}
	return SquareName(m.FromRow, m.FromCol) + sep + SquareName(m.ToRow, m.ToCol)
}

// SquareName maps board coordinates to "a8".."h1": column to file, row 0 to rank 8
func SquareName(row, col int) string {
	if !InBounds(row, col) {
		return "??"
	}
	return fmt.Sprintf("%c%c", 'a'+col, '8'-row)
}

// ParseSquare is the inverse of SquareName
func ParseSquare(square string) (int, int, error) {
	if len(square) != 2 {
		return 0, 0, fmt.Errorf("%w: square %q", ErrInvalidNotation, square)
	}
	file, rank := square[0], square[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, 0, fmt.Errorf("%w: square %q", ErrInvalidNotation, square)
	}
	return int('8' - rank), int(file - 'a'), nil
}

// ParseMove accepts "c3d4", "c3-d4" and "c3xe5". IsJump is derived from
// the geometry, not the separator.
func ParseMove(notation string) (Move, error) {
	s := strings.ToLower(strings.TrimSpace(notation))
	var from, to string
	switch len(s) {
	case 4:
		from, to = s[:2], s[2:]
	case 5:
		if s[2] != '-' && s[2] != 'x' {
			return Move{}, fmt.Errorf("%w: move %q", ErrInvalidNotation, notation)
		}
		from, to = s[:2], s[3:]
	default:
		return Move{}, fmt.Errorf("%w: move %q", ErrInvalidNotation, notation)
	}

	fromRow, fromCol, err := ParseSquare(from)
	if err != nil {
		return Move{}, err
	}
	toRow, toCol, err := ParseSquare(to)
	if err != nil {
		return Move{}, err
	}
	return NewMove(fromRow, fromCol, toRow, toCol), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
