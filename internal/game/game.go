package game

import (
	"fmt"

	"checkers/internal/board"
	"checkers/internal/core"
)

type Snapshot struct {
	Layout       string    `json:"layout"`       // Board and side to move at this point
	Score        Score     `json:"score"`        // Captures so far
	PreviousMove string    `json:"previousMove"` // Move that created this position (empty for initial)
	NextTurn     core.Side `json:"nextTurn"`
	PlayerID     string    `json:"playerId"` // ID of the player whose turn it is
}

// MoveResult tracks the outcome of a move
type MoveResult struct {
	Move       string     `json:"move"`
	PlayerSide core.Side  `json:"playerSide"`
	GameState  core.State `json:"gameState"`
	Capture    bool       `json:"capture"`
	Promotion  bool       `json:"promotion"`
	Candidates int        `json:"candidates,omitempty"` // Moves the computer chose from
}

// Game is a session around a rules State: players, history and status
type Game struct {
	state      *State
	snapshots  []Snapshot
	players    map[core.Side]*core.Player
	status     core.State
	lastResult *MoveResult
}

func New(initial *State, redPlayer, blackPlayer *core.Player) *Game {
	g := &Game{
		state: initial,
		players: map[core.Side]*core.Player{
			core.SideRed:   redPlayer,
			core.SideBlack: blackPlayer,
		},
	}
	g.snapshots = []Snapshot{g.snapshot("")}
	g.syncStatus()
	return g
}

func (g *Game) snapshot(move string) Snapshot {
	next := g.state.CurrentPlayer()
	snap := Snapshot{
		Layout:       g.state.Layout(),
		Score:        g.state.Score(),
		PreviousMove: move,
		NextTurn:     next,
	}
	if p := g.players[next]; p != nil {
		snap.PlayerID = p.ID
	}
	return snap
}

// syncStatus derives the status from the position: a verdict when the
// game is over, stuck when the side to move is blocked, ongoing otherwise.
func (g *Game) syncStatus() {
	switch {
	case g.state.IsGameOver():
		g.status = core.WinState(g.state.Winner())
	case !g.state.CanMove(g.state.CurrentPlayer()):
		g.status = core.StateStuck
	default:
		g.status = core.StateOngoing
	}
}

// Rules exposes the underlying State for queries. Callers must not mutate it.
func (g *Game) Rules() *State {
	return g.state
}

// Play executes a move for the side to move. It returns false, leaving
// the game untouched, when the move is illegal or the game is over.
func (g *Game) Play(m board.Move) (*MoveResult, bool) {
	mover := g.state.CurrentPlayer()
	before := g.state.board.At(m.FromRow, m.FromCol)

	if !g.state.Apply(m) {
		return nil, false
	}

	m.IsJump = abs(m.ToRow-m.FromRow) == 2
	after := g.state.board.At(m.ToRow, m.ToCol)
	notation := m.String()

	g.snapshots = append(g.snapshots, g.snapshot(notation))
	g.syncStatus()

	result := &MoveResult{
		Move:       notation,
		PlayerSide: mover,
		GameState:  g.status,
		Capture:    m.IsJump,
		Promotion:  !before.IsKing() && after.IsKing(),
	}
	g.lastResult = result
	return result, true
}

func (g *Game) SetLastResult(result *MoveResult) {
	g.lastResult = result
}

func (g *Game) LastResult() *MoveResult {
	return g.lastResult
}

// CurrentSnapshot returns the latest game snapshot
func (g *Game) CurrentSnapshot() Snapshot {
	return g.snapshots[len(g.snapshots)-1]
}

// CurrentLayout returns the current position in layout notation
func (g *Game) CurrentLayout() string {
	return g.CurrentSnapshot().Layout
}

func (g *Game) NextTurn() core.Side {
	return g.state.CurrentPlayer()
}

func (g *Game) NextPlayer() *core.Player {
	return g.players[g.NextTurn()]
}

func (g *Game) GetPlayer(side core.Side) *core.Player {
	return g.players[side]
}

func (g *Game) UpdatePlayers(redPlayer, blackPlayer *core.Player) {
	g.players[core.SideRed] = redPlayer
	g.players[core.SideBlack] = blackPlayer

	// Update current snapshot's PlayerID to reflect new player
	if len(g.snapshots) > 0 {
		currentSnap := &g.snapshots[len(g.snapshots)-1]
		currentSnap.PlayerID = g.players[currentSnap.NextTurn].ID
	}
}

func (g *Game) UndoMoves(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}

	availableMoves := len(g.snapshots) - 1
	if availableMoves < count {
		return fmt.Errorf("cannot undo %d moves: only %d moves available", count, availableMoves)
	}

	target := g.snapshots[len(g.snapshots)-1-count]
	restored, err := FromLayout(target.Layout, target.Score)
	if err != nil {
		return fmt.Errorf("cannot restore position: %w", err)
	}

	g.snapshots = g.snapshots[:len(g.snapshots)-count]
	g.state = restored
	g.lastResult = nil
	g.syncStatus()
	return nil
}

func (g *Game) Moves() []string {
	moves := []string{}
	for i := 1; i < len(g.snapshots); i++ {
		if g.snapshots[i].PreviousMove != "" {
			moves = append(moves, g.snapshots[i].PreviousMove)
		}
	}
	return moves
}

func (g *Game) Snapshots() []Snapshot {
	out := make([]Snapshot, len(g.snapshots))
	copy(out, g.snapshots)
	return out
}

func (g *Game) State() core.State {
	return g.status
}

// SetState changes the session status. A decided game keeps its verdict;
// the status is recomputed from the position on the next move or undo.
func (g *Game) SetState(s core.State) {
	if g.state.IsGameOver() {
		return
	}
	g.status = s
}

func (g *Game) InitialLayout() string {
	if len(g.snapshots) > 0 {
		return g.snapshots[0].Layout
	}
	return board.StartingLayout
}
