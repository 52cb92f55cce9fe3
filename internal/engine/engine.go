package engine

import (
	"math/rand"
	"time"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"
)

// Probe offsets, jumps before steps.
var (
	jumpOffsets = [4][2]int{{-2, -2}, {-2, 2}, {2, -2}, {2, 2}}
	stepOffsets = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// Finder picks a random legal move, preferring captures. Not safe for
// concurrent use; give each goroutine its own Finder.
type Finder struct {
	rng *rand.Rand
}

// SearchResult describes a FindMove decision
type SearchResult struct {
	Move       board.Move
	Candidates int
	Jump       bool
}

// New returns a Finder drawing from rng. A nil rng is seeded from the clock.
func New(rng *rand.Rand) *Finder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Finder{rng: rng}
}

func NewSeeded(seed int64) *Finder {
	return New(rand.New(rand.NewSource(seed)))
}

// FindMove returns a move for side, or false when side has none
func (f *Finder) FindMove(s *game.State, side core.Side) (board.Move, bool) {
	res, ok := f.Search(s, side)
	return res.Move, ok
}

// Search is FindMove with the size of the pool the move was drawn from
func (f *Finder) Search(s *game.State, side core.Side) (SearchResult, bool) {
	jumps, steps := Candidates(s, side)

	pool := steps
	if len(jumps) > 0 {
		pool = jumps
	}
	if len(pool) == 0 {
		return SearchResult{}, false
	}

	return SearchResult{
		Move:       pool[f.rng.Intn(len(pool))],
		Candidates: len(pool),
		Jump:       len(jumps) > 0,
	}, true
}

// Candidates lists the jumps and simple moves available to side,
// evaluated as if side were to move.
func Candidates(s *game.State, side core.Side) (jumps, steps []board.Move) {
	b := s.Board()
	for _, sq := range b.Squares(side) {
		row, col := sq[0], sq[1]
		for _, off := range jumpOffsets {
			if s.IsValidMoveFor(side, row, col, row+off[0], col+off[1]) {
				jumps = append(jumps, board.NewMove(row, col, row+off[0], col+off[1]))
			}
		}
		for _, off := range stepOffsets {
			if s.IsValidMoveFor(side, row, col, row+off[0], col+off[1]) {
				steps = append(steps, board.NewMove(row, col, row+off[0], col+off[1]))
			}
		}
	}
	return jumps, steps
}
