package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/mafios/internal/logger"
	"github.com/jwebster45206/mafios/pkg/actions"
	"github.com/jwebster45206/mafios/pkg/dice"
	"github.com/jwebster45206/mafios/pkg/state"
	"github.com/jwebster45206/mafios/pkg/storage"
	"github.com/jwebster45206/mafios/pkg/store"
)

type fakeGame struct {
	income atomic.Int32
	gangs  atomic.Int32
	events atomic.Int32
}

func (f *fakeGame) ApplyPassiveIncome() (actions.Income, bool) {
	f.income.Add(1)
	return actions.Income{Territories: 1}, true
}

func (f *fakeGame) GenerateGangEvents() []state.GangEvent {
	f.gangs.Add(1)
	return nil
}

func (f *fakeGame) CheckEventTriggers() []string {
	f.events.Add(1)
	return nil
}

func (f *fakeGame) total() int32 {
	return f.income.Load() + f.gangs.Load() + f.events.Load()
}

func fastIntervals() Intervals {
	return Intervals{
		Income:       5 * time.Millisecond,
		GangMinDelay: 5 * time.Millisecond,
		GangMaxDelay: 10 * time.Millisecond,
		EventCheck:   5 * time.Millisecond,
	}
}

func TestDefaultIntervals(t *testing.T) {
	iv := DefaultIntervals()
	assert.Equal(t, time.Minute, iv.Income)
	assert.Equal(t, 2*time.Minute, iv.GangMinDelay)
	assert.Equal(t, 5*time.Minute, iv.GangMaxDelay)
	assert.Equal(t, 3*time.Minute, iv.EventCheck)
}

func TestScheduler_RunsEveryJobRepeatedly(t *testing.T) {
	game := &fakeGame{}
	s := New(game, dice.NewSeeded(1), fastIntervals(), logger.Discard())
	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return game.income.Load() >= 3 && game.gangs.Load() >= 3 && game.events.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_StopHaltsJobs(t *testing.T) {
	game := &fakeGame{}
	s := New(game, dice.NewSeeded(1), fastIntervals(), logger.Discard())
	s.Start(context.Background())

	require.Eventually(t, func() bool { return game.total() > 0 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	after := game.total()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, game.total())

	// idempotent
	s.Stop()
}

func TestScheduler_ContextCancelStopsJobs(t *testing.T) {
	game := &fakeGame{}
	s := New(game, dice.NewSeeded(1), fastIntervals(), logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.Eventually(t, func() bool { return game.total() > 0 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	s.Stop()

	after := game.total()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, game.total())
}

func TestScheduler_StartTwiceIsNoop(t *testing.T) {
	game := &fakeGame{}
	iv := Intervals{Income: 20 * time.Millisecond, GangMinDelay: time.Hour, GangMaxDelay: time.Hour, EventCheck: time.Hour}
	s := New(game, dice.NewSeeded(1), iv, logger.Discard())
	s.Start(context.Background())
	s.Start(context.Background())

	time.Sleep(70 * time.Millisecond)
	s.Stop()

	// one income loop fires about three times; two loops would double that
	assert.LessOrEqual(t, game.income.Load(), int32(4))
	assert.Zero(t, game.gangs.Load())
	assert.Zero(t, game.events.Load())
}

func TestScheduler_OnTick(t *testing.T) {
	game := &fakeGame{}
	s := New(game, dice.NewSeeded(1), fastIntervals(), logger.Discard())

	var mu sync.Mutex
	seen := map[string]int{}
	s.Start(context.Background())
	defer s.Stop()

	// registered after Start while the jobs are already running
	s.OnTick(func(name string) {
		mu.Lock()
		seen[name]++
		mu.Unlock()
	})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen[JobIncome] > 0 && seen[JobGangEvents] > 0 && seen[JobEventCheck] > 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_DrivesRealStore(t *testing.T) {
	gs := state.NewGameState("Boss")
	gs.Territories = []state.Territory{{
		ID: "sodermalm", Name: "Södermalm", Status: state.TerritoryControlled, Income: 500, Control: 60,
	}}
	gs.Normalize()

	st := store.New(storage.NewMockBackend(), "mafios-game-state",
		store.WithDefaults(func() state.GameState { return gs }),
		store.WithLogger[state.GameState](logger.Discard()),
	)
	st.Load(context.Background())
	a := actions.New(st, actions.WithRoller(dice.NewSeeded(9)), actions.WithLogger(logger.Discard()))

	iv := Intervals{Income: 5 * time.Millisecond, GangMinDelay: time.Hour, GangMaxDelay: time.Hour, EventCheck: time.Hour}
	s := New(a, dice.NewSeeded(9), iv, logger.Discard())
	s.Start(context.Background())

	require.Eventually(t, func() bool { return a.State().Player.Cash >= 1500 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	cash := a.State().Player.Cash
	assert.Zero(t, cash%500)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, cash, a.State().Player.Cash)
}
