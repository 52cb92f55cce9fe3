package board

import (
	"errors"
	"fmt"
	"strings"

	"checkers/internal/core"
)

var ErrInvalidLayout = errors.New("invalid layout")

// ParseLayout reads a layout string: eight ranks from row 0 to row 7
// separated by '/', then the side to move ('r' or 'b').
func ParseLayout(layout string) (Board, core.Side, error) {
	var b Board

	parts := strings.Fields(layout)
	if len(parts) != 2 {
		return b, core.SideNone, fmt.Errorf("%w: expected 2 parts, got %d", ErrInvalidLayout, len(parts))
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Size {
		return b, core.SideNone, fmt.Errorf("%w: expected %d ranks, got %d", ErrInvalidLayout, Size, len(ranks))
	}

	for row, rank := range ranks {
		col := 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			piece, ok := pieceFromSymbol(ch)
			if !ok {
				return b, core.SideNone, fmt.Errorf("%w: unknown piece %q in rank %d", ErrInvalidLayout, ch, row+1)
			}
			if col >= Size {
				return b, core.SideNone, fmt.Errorf("%w: too many squares in rank %d", ErrInvalidLayout, row+1)
			}
			if err := b.Set(row, col, piece); err != nil {
				return b, core.SideNone, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
			}
			col++
		}
		if col != Size {
			return b, core.SideNone, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidLayout, row+1, col)
		}
	}

	turn := core.ParseSide(parts[1])
	if turn == core.SideNone || len(parts[1]) != 1 {
		return b, core.SideNone, fmt.Errorf("%w: turn must be 'r' or 'b'", ErrInvalidLayout)
	}

	return b, turn, nil
}

// Layout encodes the board and side to move; ParseLayout reverses it
func (b *Board) Layout(turn core.Side) string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < Size; col++ {
			piece := b.cells[row][col]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(turn.Symbol())
	return sb.String()
}
