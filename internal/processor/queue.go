package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/engine"
	"checkers/internal/game"
)

const (
	defaultWorkers = 2
	taskQueueSize  = 100
	resultGrace    = 100 * time.Millisecond
	engineTimeout  = 5 * time.Second
	maxThinkTimeMs = 10000
)

var (
	ErrQueueFull     = errors.New("engine queue is full")
	ErrQueueShutdown = errors.New("engine queue is shutting down")
)

// EngineTask asks a worker for a move on a detached position
type EngineTask struct {
	GameID    string
	State     *game.State
	Side      core.Side
	Player    *core.Player
	MoveCount int // Moves played when the position was read
	Response  chan<- EngineResult
}

// EngineResult contains the outcome of a search
type EngineResult struct {
	GameID     string
	MoveCount  int
	Move       board.Move
	Found      bool
	Candidates int
	Error      error
}

// EngineQueue runs move searches on a fixed pool of workers. Every worker
// owns its Finder, so no random source is shared.
type EngineQueue struct {
	tasks   chan EngineTask
	workers int
	seed    int64
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
}

// NewEngineQueue starts workerCount workers. A non-zero seed makes every
// worker's choices reproducible.
func NewEngineQueue(workerCount int, seed int64) *EngineQueue {
	if workerCount < 1 {
		workerCount = defaultWorkers
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := &EngineQueue{
		tasks:   make(chan EngineTask, taskQueueSize),
		workers: workerCount,
		seed:    seed,
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	return q
}

func (q *EngineQueue) newFinder(id int) *engine.Finder {
	if q.seed != 0 {
		return engine.NewSeeded(q.seed + int64(id))
	}
	return engine.New(nil)
}

func (q *EngineQueue) worker(id int) {
	defer q.wg.Done()

	finder := q.newFinder(id)

	for {
		select {
		case task := <-q.tasks:
			result := q.processTask(finder, task)

			select {
			case task.Response <- result:
			case <-time.After(resultGrace):
				// Receiver abandoned
			}

		case <-q.ctx.Done():
			return
		}
	}
}

func (q *EngineQueue) processTask(finder *engine.Finder, task EngineTask) EngineResult {
	result := EngineResult{
		GameID:    task.GameID,
		MoveCount: task.MoveCount,
	}

	if task.State == nil {
		result.Error = fmt.Errorf("no position for game %s", task.GameID)
		return result
	}

	if d := thinkTime(task.Player); d > 0 {
		select {
		case <-time.After(d):
		case <-q.ctx.Done():
			result.Error = ErrQueueShutdown
			return result
		}
	}

	search, ok := finder.Search(task.State, task.Side)
	result.Found = ok
	result.Move = search.Move
	result.Candidates = search.Candidates
	return result
}

func thinkTime(p *core.Player) time.Duration {
	if p == nil || p.ThinkTime <= 0 {
		return 0
	}
	ms := p.ThinkTime
	if ms > maxThinkTimeMs {
		ms = maxThinkTimeMs
	}
	return time.Duration(ms) * time.Millisecond
}

// Submit adds a task to the queue without blocking
func (q *EngineQueue) Submit(task EngineTask) error {
	if q.ctx.Err() != nil {
		return ErrQueueShutdown
	}
	select {
	case q.tasks <- task:
		return nil
	case <-q.ctx.Done():
		return ErrQueueShutdown
	default:
		return ErrQueueFull
	}
}

// SubmitAsync queues a search and delivers its result to callback on
// another goroutine.
func (q *EngineQueue) SubmitAsync(task EngineTask, callback func(EngineResult)) error {
	respChan := make(chan EngineResult, 1)
	task.Response = respChan

	if err := q.Submit(task); err != nil {
		return err
	}

	timeout := engineTimeout + thinkTime(task.Player)
	go func() {
		select {
		case result := <-respChan:
			callback(result)
		case <-time.After(timeout):
			callback(EngineResult{
				GameID:    task.GameID,
				MoveCount: task.MoveCount,
				Error:     fmt.Errorf("engine timeout after %v", timeout),
			})
		}
	}()

	return nil
}

// Shutdown stops the workers, abandoning queued tasks
func (q *EngineQueue) Shutdown(timeout time.Duration) error {
	q.once.Do(q.cancel)

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("engine queue shutdown timeout exceeded")
	}
}
