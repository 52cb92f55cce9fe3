package board

import "checkers/internal/core"

type Rank uint8

const (
	RankMan Rank = iota
	RankKing
)

func (r Rank) String() string {
	if r == RankKing {
		return "king"
	}
	return "man"
}

// Piece is the content of a cell. The zero value is an empty cell.
type Piece struct {
	Owner core.Side
	Rank  Rank
}

var Empty = Piece{}

func Man(side core.Side) Piece {
	return Piece{Owner: side, Rank: RankMan}
}

func King(side core.Side) Piece {
	return Piece{Owner: side, Rank: RankKing}
}

func (p Piece) IsEmpty() bool {
	return p.Owner == core.SideNone
}

func (p Piece) IsKing() bool {
	return p.Rank == RankKing && !p.IsEmpty()
}

// BelongsTo reports ownership by field comparison
func (p Piece) BelongsTo(side core.Side) bool {
	return !p.IsEmpty() && p.Owner == side
}

// Symbol returns the layout letter: b/B black man/king, r/R red man/king
func (p Piece) Symbol() byte {
	var sym byte
	switch p.Owner {
	case core.SideRed:
		sym = 'r'
	case core.SideBlack:
		sym = 'b'
	default:
		return 0
	}
	if p.Rank == RankKing {
		sym &^= 0x20 // uppercase
	}
	return sym
}

func pieceFromSymbol(sym rune) (Piece, bool) {
	switch sym {
	case 'r':
		return Man(core.SideRed), true
	case 'R':
		return King(core.SideRed), true
	case 'b':
		return Man(core.SideBlack), true
	case 'B':
		return King(core.SideBlack), true
	default:
		return Empty, false
	}
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Owner.String() + " " + p.Rank.String()
}
