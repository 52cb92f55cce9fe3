package service

import (
	"fmt"
	"time"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"
	"checkers/internal/storage"
)

// Position is a detached copy of a game's rules state
type Position struct {
	State     *game.State
	MoveCount int
	Next      *core.Player
	Status    core.State
}

// CreateGame registers a new game with pre-constructed players. An empty
// layout starts from the opening position.
func (s *Service) CreateGame(id string, redPlayer, blackPlayer *core.Player, layout string) error {
	state := game.NewState()
	if layout != "" {
		var err error
		if state, err = game.FromLayout(layout, game.Score{}); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return fmt.Errorf("%w: %s", ErrGameExists, id)
	}

	g := game.New(state, redPlayer, blackPlayer)
	s.games[id] = g

	if s.store != nil {
		record := playersRecord(id, g)
		record.InitialLayout = g.InitialLayout()
		record.StartTimeUTC = time.Now().UTC()
		s.store.RecordNewGame(record)
	}

	return nil
}

// UpdatePlayers replaces the players of an existing game
func (s *Service) UpdatePlayers(gameID string, redPlayer, blackPlayer *core.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}

	g.UpdatePlayers(redPlayer, blackPlayer)
	if s.store != nil {
		s.store.UpdatePlayers(playersRecord(gameID, g))
	}
	return nil
}

// View runs fn with read access to a game. fn must not retain or mutate g.
func (s *Service) View(gameID string, fn func(g *game.Game) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}
	return fn(g)
}

// Position returns a copy of the rules state safe to search without locks
func (s *Service) Position(gameID string) (Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return Position{}, err
	}
	return Position{
		State:     g.Rules().Clone(),
		MoveCount: len(g.Moves()),
		Next:      g.NextPlayer(),
		Status:    g.State(),
	}, nil
}

// ApplyMove plays m for the side to move. A non-negative expectedMoves
// makes the call fail with ErrStaleState if the game has moved on since
// the caller read it.
func (s *Service) ApplyMove(gameID string, m board.Move, expectedMoves int) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}

	if expectedMoves >= 0 && len(g.Moves()) != expectedMoves {
		return nil, fmt.Errorf("%w: expected %d moves, have %d", ErrStaleState, expectedMoves, len(g.Moves()))
	}
	if g.Rules().IsGameOver() {
		return nil, ErrGameOver
	}

	result, ok := g.Play(m)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	moveCount := len(g.Moves())
	s.waiter.NotifyGame(gameID, moveCount)

	if s.store != nil {
		s.store.RecordMove(storage.MoveRecord{
			GameID:          gameID,
			MoveNumber:      moveCount,
			MoveNotation:    result.Move,
			LayoutAfterMove: g.CurrentLayout(),
			PlayerSide:      result.PlayerSide.Symbol(),
			Capture:         result.Capture,
			MoveTimeUTC:     time.Now().UTC(),
		})
	}

	return result, nil
}

// UpdateGameState sets the session status; a decided game keeps its verdict
func (s *Service) UpdateGameState(gameID string, state core.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}

	previous := g.State()
	g.SetState(state)

	if g.State() != previous && g.State() != core.StatePending {
		s.waiter.NotifyGame(gameID, -1)
	}
	return nil
}

// SetLastMoveResult replaces the stored outcome of the last move
func (s *Service) SetLastMoveResult(gameID string, result *game.MoveResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}

	g.SetLastResult(result)
	return nil
}

// UndoMoves takes back count moves
func (s *Service) UndoMoves(gameID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}

	if err := g.UndoMoves(count); err != nil {
		return err
	}

	remaining := len(g.Moves())
	s.waiter.NotifyGame(gameID, remaining)

	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, remaining)
	}
	return nil
}

// DeleteGame removes a game from memory and the game log
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(gameID); err != nil {
		return err
	}

	s.waiter.RemoveGame(gameID)
	delete(s.games, gameID)

	if s.store != nil {
		s.store.DeleteGame(gameID)
	}
	return nil
}

// GameCount reports how many games are held in memory
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// lookup requires s.mu to be held
func (s *Service) lookup(gameID string) (*game.Game, error) {
	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g, nil
}

func playersRecord(gameID string, g *game.Game) storage.GameRecord {
	red := g.GetPlayer(core.SideRed)
	black := g.GetPlayer(core.SideBlack)
	return storage.GameRecord{
		GameID:         gameID,
		RedPlayerID:    red.ID,
		RedType:        int(red.Type),
		RedThinkTime:   red.ThinkTime,
		BlackPlayerID:  black.ID,
		BlackType:      int(black.Type),
		BlackThinkTime: black.ThinkTime,
	}
}
