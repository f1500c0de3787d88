// Package scheduler runs the three background jobs that evolve the game while
// the player is idle. Each job re-arms its own timer after it runs and reads
// fresh state through the game at fire time.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/mafios/pkg/actions"
	"github.com/jwebster45206/mafios/pkg/dice"
	"github.com/jwebster45206/mafios/pkg/state"
)

const (
	JobIncome     = "passive-income"
	JobGangEvents = "gang-events"
	JobEventCheck = "event-check"
)

// Game is the part of the mutation API the jobs drive.
type Game interface {
	ApplyPassiveIncome() (actions.Income, bool)
	GenerateGangEvents() []state.GangEvent
	CheckEventTriggers() []string
}

// Intervals configures how often each job fires.
type Intervals struct {
	Income       time.Duration
	GangMinDelay time.Duration
	GangMaxDelay time.Duration
	EventCheck   time.Duration
}

// DefaultIntervals are one minute for income, two to five minutes for gang
// events and three minutes for random events.
func DefaultIntervals() Intervals {
	return Intervals{
		Income:       60 * time.Second,
		GangMinDelay: 2 * time.Minute,
		GangMaxDelay: 5 * time.Minute,
		EventCheck:   3 * time.Minute,
	}
}

type job struct {
	name  string
	delay func() time.Duration
	run   func()
}

// Scheduler owns the job goroutines for one session.
type Scheduler struct {
	id        string
	game      Game
	roller    dice.Roller
	intervals Intervals
	log       *slog.Logger

	mu      sync.Mutex
	onTick  func(name string)
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New creates a stopped scheduler.
func New(game Game, roller dice.Roller, intervals Intervals, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	if roller == nil {
		roller = dice.NewRandom()
	}
	return &Scheduler{
		id:        fmt.Sprintf("scheduler-%s", uuid.New().String()[:8]),
		game:      game,
		roller:    roller,
		intervals: intervals,
		log:       log,
	}
}

func (s *Scheduler) jobs() []job {
	return []job{
		{
			name:  JobIncome,
			delay: func() time.Duration { return s.intervals.Income },
			run: func() {
				if inc, ok := s.game.ApplyPassiveIncome(); ok {
					s.log.Debug("Passive income tick", "scheduler_id", s.id, "cash", inc.Cash(), "heat", inc.Heat)
				}
			},
		},
		{
			name: JobGangEvents,
			delay: func() time.Duration {
				return dice.Duration(s.roller, s.intervals.GangMinDelay, s.intervals.GangMaxDelay)
			},
			run: func() {
				created := s.game.GenerateGangEvents()
				s.log.Debug("Gang event check", "scheduler_id", s.id, "created", len(created))
			},
		},
		{
			name:  JobEventCheck,
			delay: func() time.Duration { return s.intervals.EventCheck },
			run: func() {
				triggered := s.game.CheckEventTriggers()
				s.log.Debug("Random event check", "scheduler_id", s.id, "triggered", len(triggered))
			},
		},
	}
}

// Start launches every job. Calling Start on a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, j := range s.jobs() {
		s.wg.Add(1)
		go s.loop(ctx, j)
	}
	s.log.Info("Scheduler started", "scheduler_id", s.id)
}

// OnTick registers fn to be called after every job run with the job name.
// It may be called while the scheduler is running.
func (s *Scheduler) OnTick(fn func(name string)) {
	s.mu.Lock()
	s.onTick = fn
	s.mu.Unlock()
}

func (s *Scheduler) tickHook() func(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onTick
}

// Stop cancels every job and waits for any run in progress to finish. No job
// commits after Stop returns.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info("Scheduler stopped", "scheduler_id", s.id)
}

func (s *Scheduler) loop(ctx context.Context, j job) {
	defer s.wg.Done()

	timer := time.NewTimer(j.delay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		// a cancel that raced the timer wins
		if ctx.Err() != nil {
			return
		}
		j.run()
		if fn := s.tickHook(); fn != nil {
			fn(j.name)
		}
		timer.Reset(j.delay())
	}
}
