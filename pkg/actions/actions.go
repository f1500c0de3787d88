// Package actions is the mutation surface of the game. Every operation is a
// transform committed through the store; a precondition failure returns false
// and commits nothing.
package actions

import (
	"log/slog"
	"time"

	"github.com/jwebster45206/mafios/pkg/dice"
	"github.com/jwebster45206/mafios/pkg/state"
	"github.com/jwebster45206/mafios/pkg/store"
)

// GameStore is the store type the actions commit through.
type GameStore = store.Store[state.GameState]

// Actions binds the mutation API to one store.
type Actions struct {
	store  *GameStore
	roller dice.Roller
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Actions)

// WithRoller sets the randomness source for every roll.
func WithRoller(r dice.Roller) Option {
	return func(a *Actions) { a.roller = r }
}

func WithClock(now func() time.Time) Option {
	return func(a *Actions) { a.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Actions) { a.logger = logger }
}

// New creates the action set for st.
func New(st *GameStore, opts ...Option) *Actions {
	a := &Actions{
		store:  st,
		roller: dice.NewRandom(),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// State returns a snapshot of the current game.
func (a *Actions) State() state.GameState {
	return a.store.Get()
}

// Subscribe forwards to the store's snapshot notifications.
func (a *Actions) Subscribe() (<-chan state.GameState, func()) {
	return a.store.Subscribe()
}

func (a *Actions) update(fn func(gs *state.GameState) bool) bool {
	return a.store.Update(fn)
}

// ResetGame replaces the whole game with initial.
func (a *Actions) ResetGame(initial state.GameState) {
	next := initial.Clone()
	next.Normalize()
	a.store.Replace(next)
	a.logger.Info("Game reset", "player", next.Player.Name)
}
