package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// WaitTimeout is the longest a client is held before an unconditional reply
const WaitTimeout = 25 * time.Second

// WaitRegistry manages long-polling clients waiting for game state changes
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string][]*waitRequest // gameID → waiting clients
	timeout  time.Duration
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

type waitRequest struct {
	moveCount int
	done      chan struct{}
	once      sync.Once
	timer     *time.Timer
}

func (r *waitRequest) release() {
	r.once.Do(func() {
		if r.timer != nil {
			r.timer.Stop()
		}
		close(r.done)
	})
}

// NewWaitRegistry creates a registry releasing waiters after timeout
func NewWaitRegistry(timeout time.Duration) *WaitRegistry {
	if timeout <= 0 {
		timeout = WaitTimeout
	}
	return &WaitRegistry{
		waiters:  make(map[string][]*waitRequest),
		timeout:  timeout,
		shutdown: make(chan struct{}),
	}
}

// RegisterWait returns a channel closed when the game's move count moves
// away from moveCount, the game is removed, the wait times out, ctx ends
// or the registry shuts down.
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	req := &waitRequest{
		moveCount: moveCount,
		done:      make(chan struct{}),
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		req.release()
		return req.done
	}
	w.waiters[gameID] = append(w.waiters[gameID], req)
	req.timer = time.AfterFunc(w.timeout, func() {
		w.removeWaiter(gameID, req)
	})
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			w.removeWaiter(gameID, req)
		case <-req.done:
		case <-w.shutdown:
			req.release()
		}
	}()

	return req.done
}

// NotifyGame releases every waiter whose known move count differs
func (w *WaitRegistry) NotifyGame(gameID string, currentMoveCount int) {
	w.mu.Lock()
	var keep, fire []*waitRequest
	for _, req := range w.waiters[gameID] {
		if req.moveCount != currentMoveCount {
			fire = append(fire, req)
		} else {
			keep = append(keep, req)
		}
	}
	if len(keep) == 0 {
		delete(w.waiters, gameID)
	} else {
		w.waiters[gameID] = keep
	}
	w.mu.Unlock()

	for _, req := range fire {
		req.release()
	}
}

// RemoveGame releases all waiters of a game about to be deleted
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		req.release()
	}
}

// Waiting reports how many clients are parked on a game
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[gameID])
}

// Shutdown releases everyone and waits for the watcher goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.waiters = make(map[string][]*waitRequest)
	close(w.shutdown)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out after %v", timeout)
	}
}

func (w *WaitRegistry) removeWaiter(gameID string, req *waitRequest) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[gameID] = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}
	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
	w.mu.Unlock()

	req.release()
}
