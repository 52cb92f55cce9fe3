package board

import (
	"fmt"
	"strings"

	"checkers/internal/core"
)

const (
	Size = 8

	// StartingLayout is the canonical opening position with red to move
	StartingLayout = "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/r1r1r1r1/1r1r1r1r/r1r1r1r1 r"
)

// Board is an 8x8 grid indexed [row][col], row 0 at the top (black's home).
// It is a value type: assigning a Board copies every cell.
type Board struct {
	cells [Size][Size]Piece
}

// New returns the canonical starting layout: black men on the dark squares
// of rows 0-2, red men on rows 5-7, rows 3-4 empty.
func New() Board {
	var b Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if !IsDark(row, col) {
				continue
			}
			switch {
			case row < 3:
				b.cells[row][col] = Man(core.SideBlack)
			case row > 4:
				b.cells[row][col] = Man(core.SideRed)
			}
		}
	}
	return b
}

// InBounds reports whether the coordinates lie on the board
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// IsDark reports whether a square can hold a piece
func IsDark(row, col int) bool {
	return (row+col)%2 == 1
}

// At returns the piece on a square, Empty when out of bounds
func (b *Board) At(row, col int) Piece {
	if !InBounds(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

// Set places a piece. Pieces on light or out-of-bounds squares are refused.
func (b *Board) Set(row, col int, p Piece) error {
	if !InBounds(row, col) {
		return fmt.Errorf("square (%d,%d) out of bounds", row, col)
	}
	if !p.IsEmpty() && !IsDark(row, col) {
		return fmt.Errorf("square (%d,%d) is a light square", row, col)
	}
	b.cells[row][col] = p
	return nil
}

// Clear empties a square
func (b *Board) Clear(row, col int) {
	if InBounds(row, col) {
		b.cells[row][col] = Empty
	}
}

// Count returns the number of pieces owned by side
func (b *Board) Count(side core.Side) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.cells[row][col].BelongsTo(side) {
				n++
			}
		}
	}
	return n
}

// Squares returns the coordinates of every piece owned by side, row-major
func (b *Board) Squares(side core.Side) [][2]int {
	var squares [][2]int
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.cells[row][col].BelongsTo(side) {
				squares = append(squares, [2]int{row, col})
			}
		}
	}
	return squares
}

// ToASCII creates an ASCII representation of the board
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < Size; r++ {
		sb.WriteString(fmt.Sprintf("%d ", Size-r))
		for c := 0; c < Size; c++ {
			piece := b.cells[r][c]
			switch {
			case !piece.IsEmpty():
				sb.WriteString(fmt.Sprintf("%c ", piece.Symbol()))
			case IsDark(r, c):
				sb.WriteString(". ")
			default:
				sb.WriteString("  ")
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", Size-r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
