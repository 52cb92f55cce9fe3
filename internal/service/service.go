package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"checkers/internal/game"
	"checkers/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrIllegalMove  = errors.New("illegal move")
	ErrGameOver     = errors.New("game is over")
	ErrStaleState   = errors.New("game changed since it was read")
)

// Service owns the in-memory games, their optional game log and the
// long-poll registry. All access to a Game goes through it.
type Service struct {
	games  map[string]*game.Game
	mu     sync.RWMutex
	store  *storage.Store // nil if persistence disabled
	waiter *WaitRegistry
}

// New creates a service; store may be nil
func New(store *storage.Store) *Service {
	return &Service{
		games:  make(map[string]*game.Game),
		store:  store,
		waiter: NewWaitRegistry(WaitTimeout),
	}
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// RegisterWait parks a long-poll client on a game
func (s *Service) RegisterWait(ctx context.Context, gameID string, moveCount int) (<-chan struct{}, error) {
	s.mu.RLock()
	g, ok := s.games[gameID]
	if !ok {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	current := len(g.Moves())
	ch := s.waiter.RegisterWait(ctx, gameID, moveCount)
	s.mu.RUnlock()

	// Already behind: answer immediately
	if current != moveCount {
		s.waiter.NotifyGame(gameID, current)
	}
	return ch, nil
}

// GetStorageHealth returns "disabled", "ok" or "degraded"
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close releases waiters, drops all games and closes storage
func (s *Service) Close() error {
	if err := s.waiter.Shutdown(5 * time.Second); err != nil {
		log.Printf("Service shutdown: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*game.Game)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
