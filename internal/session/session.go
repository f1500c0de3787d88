// Package session wires one running game: storage backend, state store,
// mutation API and background jobs.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/mafios/internal/catalog"
	"github.com/jwebster45206/mafios/internal/config"
	"github.com/jwebster45206/mafios/internal/scheduler"
	backends "github.com/jwebster45206/mafios/internal/storage"
	"github.com/jwebster45206/mafios/pkg/actions"
	"github.com/jwebster45206/mafios/pkg/dice"
	"github.com/jwebster45206/mafios/pkg/state"
	"github.com/jwebster45206/mafios/pkg/storage"
	"github.com/jwebster45206/mafios/pkg/store"
)

type Session struct {
	Catalog   *catalog.Catalog
	Store     *actions.GameStore
	Actions   *actions.Actions
	Scheduler *scheduler.Scheduler

	// Resumed is true when the game came from a save rather than the catalog.
	Resumed bool

	cfg       *config.Config
	backend   storage.Backend
	log       *slog.Logger
	cancel    context.CancelFunc
	flushDone chan struct{}
}

// Open builds the session described by cfg and starts flushing and the
// background jobs. The caller must Close it.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	backend, err := backends.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}
	s, err := open(ctx, cfg, cat, backend, log)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return s, nil
}

func open(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, backend storage.Backend, log *slog.Logger) (*Session, error) {
	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = dice.NewSeed(); err != nil {
			return nil, err
		}
	}
	roller := dice.NewSeeded(seed)

	st := store.New(backend, cfg.SaveKey,
		store.WithDefaults(func() state.GameState { return catalog.NewGameState(cat, cfg.PlayerName) }),
		store.WithMigrate(func(gs *state.GameState) { gs.Normalize() }),
		store.WithStamp(Stamp),
		store.WithFlushInterval[state.GameState](cfg.FlushEvery),
		store.WithLogger[state.GameState](log),
	)
	resumed := st.Load(ctx)

	act := actions.New(st, actions.WithRoller(roller), actions.WithLogger(log))
	sched := scheduler.New(act, roller, scheduler.Intervals{
		Income:       cfg.IncomeEvery,
		GangMinDelay: cfg.GangMinDelay,
		GangMaxDelay: cfg.GangMaxDelay,
		EventCheck:   cfg.EventCheckEvery,
	}, log)

	runCtx, cancel := context.WithCancel(context.Background())
	s := &Session{
		Catalog:   cat,
		Store:     st,
		Actions:   act,
		Scheduler: sched,
		Resumed:   resumed,
		cfg:       cfg,
		backend:   backend,
		log:       log,
		cancel:    cancel,
		flushDone: make(chan struct{}),
	}
	go func() {
		defer close(s.flushDone)
		st.Run(runCtx)
	}()
	sched.Start(runCtx)

	log.Info("Session opened",
		"storage", cfg.Storage,
		"save_key", cfg.SaveKey,
		"resumed", resumed,
		"seed", seed)
	return s, nil
}

// Stamp records the save time and adds the time played since the last flush.
func Stamp(gs *state.GameState, now time.Time, elapsed time.Duration) {
	gs.LastSaved = now
	if elapsed > 0 {
		gs.PlayTime += int64(elapsed / time.Second)
	}
}

// NewGame throws the current game away and starts over from the catalog.
func (s *Session) NewGame() {
	s.Actions.ResetGame(catalog.NewGameState(s.Catalog, s.cfg.PlayerName))
	s.log.Info("New game started", "player", s.cfg.PlayerName)
}

// Close stops the jobs, writes the final save and releases the backend.
func (s *Session) Close(ctx context.Context) error {
	s.Scheduler.Stop()
	s.cancel()
	<-s.flushDone

	var errs []error
	if err := s.Store.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}
	s.log.Info("Session closed")
	return errors.Join(errs...)
}
