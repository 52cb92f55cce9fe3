package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	writeQueueSize  = 1000
	shutdownTimeout = 2 * time.Second
)

// ErrDegraded is returned by Flush once a write has failed
var ErrDegraded = errors.New("storage degraded")

// Store is an append-mostly SQLite game log. Writes are queued to a single
// writer goroutine; reads go straight to the pool.
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan func(*sql.Tx) error
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	closeOnce    sync.Once
	closeErr     error
}

// NewStore opens the database at path and starts the writer
func NewStore(path string, wal bool) (*Store, error) {
	// DSN parameters are applied to every pooled connection
	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	if wal {
		dsn += "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		db:        db,
		path:      path,
		writeChan: make(chan func(*sql.Tx) error, writeQueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

// IsHealthy is false from the first failed write on
func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			// Drain what is already queued
			for {
				select {
				case fn := <-s.writeChan:
					if s.healthStatus.Load() {
						s.executeWrite(fn)
					}
				default:
					return
				}
			}

		case fn := <-s.writeChan:
			if !s.healthStatus.Load() {
				continue
			}
			s.executeWrite(fn)
		}
	}
}

func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("Storage degraded: failed to begin transaction: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Printf("Storage degraded: write operation failed: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Storage degraded: failed to commit: %v", err)
		s.healthStatus.Store(false)
	}
}

// enqueue hands a write to the writer. Writes are dropped, not blocked on,
// when the store is degraded or the queue is full.
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) {
	if !s.healthStatus.Load() {
		return
	}

	select {
	case s.writeChan <- fn:
	default:
		log.Printf("Storage write queue full, dropping %s", what)
	}
}

// Flush waits until every write queued before the call has been executed
func (s *Store) Flush(ctx context.Context) error {
	if !s.healthStatus.Load() {
		return ErrDegraded
	}

	done := make(chan struct{})
	marker := func(*sql.Tx) error {
		close(done)
		return nil
	}

	select {
	case s.writeChan <- marker:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		if !s.healthStatus.Load() {
			return ErrDegraded
		}
		return ctx.Err()
	}
}

// Close stops the writer, waiting briefly for queued writes, and closes
// the database. Safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(shutdownTimeout):
			log.Printf("Warning: storage writer shutdown timeout, some writes may be lost")
		}

		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the store and removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	for _, p := range []string{s.path, s.path + "-wal", s.path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete database file: %w", err)
		}
	}

	return nil
}
