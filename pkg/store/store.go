// Package store holds the single authoritative game snapshot. Every change goes
// through Update, which always hands the transform the latest committed state,
// so commits from player actions and background jobs are serialized.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/mafios/pkg/storage"
)

// DefaultFlushInterval bounds how often committed snapshots are written out.
const DefaultFlushInterval = 30 * time.Second

// Snapshot is a state type that can deep-copy itself.
type Snapshot[S any] interface {
	Clone() S
}

// Codec turns snapshots into blobs and back.
type Codec[S any] interface {
	Marshal(s S) ([]byte, error)
	Unmarshal(data []byte, s *S) error
}

// JSONCodec is the default codec.
type JSONCodec[S any] struct{}

func (JSONCodec[S]) Marshal(s S) ([]byte, error)       { return json.Marshal(s) }
func (JSONCodec[S]) Unmarshal(data []byte, s *S) error { return json.Unmarshal(data, s) }

// Store is a copy-on-write container for one snapshot of type S backed by a
// single durable key.
type Store[S Snapshot[S]] struct {
	mu        sync.Mutex
	state     S
	dirty     bool
	lastFlush time.Time
	subs      map[int]chan S
	nextSub   int

	// flushMu serializes writes to the backend
	flushMu sync.Mutex

	backend       storage.Backend
	key           string
	codec         Codec[S]
	logger        *slog.Logger
	now           func() time.Time
	defaults      func() S
	migrate       func(*S)
	stamp         func(s *S, now time.Time, elapsed time.Duration)
	flushInterval time.Duration
}

// Option configures a Store.
type Option[S Snapshot[S]] func(*Store[S])

func WithLogger[S Snapshot[S]](logger *slog.Logger) Option[S] {
	return func(s *Store[S]) { s.logger = logger }
}

func WithClock[S Snapshot[S]](now func() time.Time) Option[S] {
	return func(s *Store[S]) { s.now = now }
}

// WithDefaults sets the state used when nothing is persisted or the save is unreadable.
func WithDefaults[S Snapshot[S]](defaults func() S) Option[S] {
	return func(s *Store[S]) { s.defaults = defaults }
}

// WithMigrate sets the function that upgrades a loaded snapshot, filling
// defaults for fields older saves do not have.
func WithMigrate[S Snapshot[S]](migrate func(*S)) Option[S] {
	return func(s *Store[S]) { s.migrate = migrate }
}

// WithStamp sets a hook run on the committed state right before it is persisted.
func WithStamp[S Snapshot[S]](stamp func(s *S, now time.Time, elapsed time.Duration)) Option[S] {
	return func(s *Store[S]) { s.stamp = stamp }
}

func WithCodec[S Snapshot[S]](codec Codec[S]) Option[S] {
	return func(s *Store[S]) { s.codec = codec }
}

func WithFlushInterval[S Snapshot[S]](d time.Duration) Option[S] {
	return func(s *Store[S]) {
		if d > 0 {
			s.flushInterval = d
		}
	}
}

// New creates a store holding the default snapshot. Call Load to read the save.
func New[S Snapshot[S]](backend storage.Backend, key string, opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		backend:       backend,
		key:           key,
		codec:         JSONCodec[S]{},
		logger:        slog.Default(),
		now:           time.Now,
		subs:          make(map[int]chan S),
		flushInterval: DefaultFlushInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.state = s.fresh()
	s.lastFlush = s.now()
	return s
}

func (s *Store[S]) fresh() S {
	var zero S
	if s.defaults != nil {
		zero = s.defaults()
	}
	if s.migrate != nil {
		s.migrate(&zero)
	}
	return zero
}

// Load replaces the in-memory snapshot with the persisted one. A missing or
// unreadable save is not fatal: the store keeps fresh defaults and reports false.
func (s *Store[S]) Load(ctx context.Context) bool {
	next, ok := s.read(ctx)

	s.mu.Lock()
	s.state = next
	s.dirty = false
	s.lastFlush = s.now()
	s.notifyLocked()
	s.mu.Unlock()
	return ok
}

func (s *Store[S]) read(ctx context.Context) (S, bool) {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info("No saved state, starting fresh", "key", s.key)
		} else {
			s.logger.Error("Failed to read saved state, starting fresh", "key", s.key, "error", err)
		}
		return s.fresh(), false
	}

	var loaded S
	if err := s.codec.Unmarshal(data, &loaded); err != nil {
		s.logger.Error("Failed to decode saved state, starting fresh", "key", s.key, "error", err)
		return s.fresh(), false
	}
	if s.migrate != nil {
		s.migrate(&loaded)
	}
	s.logger.Info("Loaded saved state", "key", s.key, "bytes", len(data))
	return loaded, true
}

// Get returns a deep copy of the current snapshot.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update runs fn on a private copy of the latest committed snapshot. If fn
// returns false the copy is discarded: nothing is committed, persisted or
// broadcast. fn runs under the store lock and must not call back into the store.
func (s *Store[S]) Update(fn func(*S) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if !fn(&next) {
		return false
	}
	s.state = next
	s.dirty = true
	s.notifyLocked()
	return true
}

// Replace commits next unconditionally.
func (s *Store[S]) Replace(next S) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next.Clone()
	s.dirty = true
	s.notifyLocked()
}

// Dirty reports whether there are commits not yet flushed.
func (s *Store[S]) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Subscribe returns a channel receiving the latest snapshot after each commit.
// Slow readers only ever see the newest snapshot. Call cancel to unsubscribe.
func (s *Store[S]) Subscribe() (<-chan S, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan S, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Store[S]) notifyLocked() {
	for _, ch := range s.subs {
		snap := s.state.Clone()
		select {
		case ch <- snap:
		default:
			// drop the stale snapshot and deliver the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Export encodes the current snapshot without persisting it.
func (s *Store[S]) Export() ([]byte, error) {
	return s.codec.Marshal(s.Get())
}

// Flush persists the snapshot if anything was committed since the last flush.
func (s *Store[S]) Flush(ctx context.Context) error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	now := s.now()
	if s.stamp != nil {
		s.stamp(&s.state, now, now.Sub(s.lastFlush))
	}
	snap := s.state.Clone()
	s.dirty = false
	s.lastFlush = now
	s.mu.Unlock()

	data, err := s.codec.Marshal(snap)
	if err != nil {
		s.markDirty()
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		s.markDirty()
		return fmt.Errorf("failed to save state: %w", err)
	}
	s.logger.Debug("State flushed", "key", s.key, "bytes", len(data))
	return nil
}

func (s *Store[S]) markDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Run flushes on the configured interval until ctx is done, then flushes once more.
func (s *Store[S]) Run(ctx context.Context) {
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Flush(finalCtx); err != nil {
				s.logger.Error("Final flush failed", "key", s.key, "error", err)
			}
			cancel()
			return
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.logger.Error("Periodic flush failed", "key", s.key, "error", err)
			}
		}
	}
}

// Close flushes pending commits and closes every subscription.
func (s *Store[S]) Close(ctx context.Context) error {
	err := s.Flush(ctx)

	s.mu.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mu.Unlock()
	return err
}
