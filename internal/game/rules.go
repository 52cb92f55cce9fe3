package game

import (
	"fmt"

	"checkers/internal/board"
	"checkers/internal/core"
)

// Score counts the opposing pieces each side has captured
type Score struct {
	Red   int `json:"red"`
	Black int `json:"black"`
}

func (s Score) Of(side core.Side) int {
	switch side {
	case core.SideRed:
		return s.Red
	case core.SideBlack:
		return s.Black
	default:
		return 0
	}
}

func (s *Score) add(side core.Side) {
	switch side {
	case core.SideRed:
		s.Red++
	case core.SideBlack:
		s.Black++
	}
}

// State is the rules engine: board, side to move, score and verdict.
// It is not safe for concurrent use.
type State struct {
	board   board.Board
	current core.Side
	over    bool
	winner  core.Side
	score   Score
}

// NewState starts a game from the canonical layout with red to move
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// FromLayout rebuilds a state from a layout string and a running score
func FromLayout(layout string, score Score) (*State, error) {
	b, turn, err := board.ParseLayout(layout)
	if err != nil {
		return nil, fmt.Errorf("cannot load layout: %w", err)
	}
	s := &State{
		board:   b,
		current: turn,
		score:   score,
	}
	s.checkGameOver()
	return s, nil
}

// Reset reinitializes the state to the starting position with a zero score
func (s *State) Reset() {
	s.board = board.New()
	s.current = core.SideRed
	s.over = false
	s.winner = core.SideNone
	s.score = Score{}
}

// Clone returns an independent copy
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Board returns a copy of the board; mutating it does not affect the state
func (s *State) Board() board.Board {
	return s.board
}

func (s *State) CurrentPlayer() core.Side {
	return s.current
}

func (s *State) IsGameOver() bool {
	return s.over
}

// Winner returns SideNone while the game is running
func (s *State) Winner() core.Side {
	return s.winner
}

func (s *State) Score() Score {
	return s.score
}

// Layout encodes the board and side to move
func (s *State) Layout() string {
	return s.board.Layout(s.current)
}

// IsValidMove reports whether the current player may move from one square
// to another. It never mutates state and returns false for any bad input.
func (s *State) IsValidMove(fromRow, fromCol, toRow, toCol int) bool {
	return s.IsValidMoveFor(s.current, fromRow, fromCol, toRow, toCol)
}

// IsValidMoveFor applies the move rules as if side were to move
func (s *State) IsValidMoveFor(side core.Side, fromRow, fromCol, toRow, toCol int) bool {
	if !board.InBounds(fromRow, fromCol) || !board.InBounds(toRow, toCol) {
		return false
	}

	piece := s.board.At(fromRow, fromCol)
	if piece.IsEmpty() || !s.board.At(toRow, toCol).IsEmpty() {
		return false
	}
	if !piece.BelongsTo(side) {
		return false
	}

	rowDiff := toRow - fromRow
	colDiff := abs(toCol - fromCol)
	forward := side.Forward()

	switch {
	case colDiff == 1:
		if rowDiff == forward {
			return true
		}
		return piece.IsKing() && abs(rowDiff) == 1

	case colDiff == 2 && abs(rowDiff) == 2:
		midRow, midCol := fromRow+rowDiff/2, fromCol+(toCol-fromCol)/2
		jumped := s.board.At(midRow, midCol)
		if jumped.IsEmpty() || jumped.BelongsTo(side) {
			return false
		}
		return rowDiff == 2*forward || piece.IsKing()
	}

	return false
}

// MakeMove validates and executes a move for the current player. On
// success the piece is relocated, a jumped piece is captured and scored,
// a man reaching its promotion row is crowned, the turn passes and the
// verdict is recomputed. On failure nothing changes.
func (s *State) MakeMove(fromRow, fromCol, toRow, toCol int) bool {
	if s.over {
		return false
	}
	if !s.IsValidMove(fromRow, fromCol, toRow, toCol) {
		return false
	}

	mover := s.current
	piece := s.board.At(fromRow, fromCol)

	s.board.Clear(fromRow, fromCol)
	s.board.Set(toRow, toCol, piece)

	rowDiff := toRow - fromRow
	if abs(rowDiff) == 2 {
		s.board.Clear(fromRow+rowDiff/2, fromCol+(toCol-fromCol)/2)
		s.score.add(mover)
	}

	if toRow == mover.PromotionRow() && !piece.IsKing() {
		s.board.Set(toRow, toCol, board.King(mover))
	}

	s.current = mover.Opposite()
	s.checkGameOver()

	return true
}

// Apply is MakeMove for a Move value
func (s *State) Apply(m board.Move) bool {
	return s.MakeMove(m.FromRow, m.FromCol, m.ToRow, m.ToCol)
}

// checkGameOver declares the other side the winner once a side has no
// pieces left. A side that still has pieces but no legal move does not lose.
func (s *State) checkGameOver() {
	red := s.board.Count(core.SideRed)
	black := s.board.Count(core.SideBlack)

	switch {
	case red == 0:
		s.over = true
		s.winner = core.SideBlack
	case black == 0:
		s.over = true
		s.winner = core.SideRed
	}
}

// Destinations lists every legal move for the piece on a square, scanning
// the whole board the way a UI highlights targets.
func (s *State) Destinations(row, col int) []board.Move {
	var moves []board.Move
	for toRow := 0; toRow < board.Size; toRow++ {
		for toCol := 0; toCol < board.Size; toCol++ {
			if s.IsValidMove(row, col, toRow, toCol) {
				moves = append(moves, board.NewMove(row, col, toRow, toCol))
			}
		}
	}
	return moves
}

// LegalMoves lists every legal move of side, jumps and steps alike
func (s *State) LegalMoves(side core.Side) []board.Move {
	var moves []board.Move
	for _, sq := range s.board.Squares(side) {
		for _, d := range diagonals {
			for _, dist := range []int{2, 1} {
				toRow, toCol := sq[0]+d[0]*dist, sq[1]+d[1]*dist
				if s.IsValidMoveFor(side, sq[0], sq[1], toRow, toCol) {
					moves = append(moves, board.NewMove(sq[0], sq[1], toRow, toCol))
				}
			}
		}
	}
	return moves
}

// CanMove reports whether side has at least one legal move
func (s *State) CanMove(side core.Side) bool {
	return len(s.LegalMoves(side)) > 0
}

var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
