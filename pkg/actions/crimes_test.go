package actions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/mafios/pkg/state"
)

var pickpocket = state.Crime{
	ID: "pickpocket", Name: "Pickpocketing", RequiredLevel: 1, SuccessChance: 80,
	MinReward: 100, MaxReward: 500, Respekt: 1, Experience: 50, Heat: 2, CooldownSeconds: 60,
}

func TestCommitCrime_Success(t *testing.T) {
	// success roll, then reward roll at the top of the range
	a := newTestActions(t, testState(), 0.1, 0.999)

	res, ok := a.CommitCrime(pickpocket)
	require.True(t, ok)
	assert.True(t, res.Success)
	assert.Equal(t, int64(500), res.Reward)

	gs := a.State()
	assert.Equal(t, int64(30500), gs.Player.Cash)
	assert.Equal(t, 61, gs.Player.Respekt)
	assert.Equal(t, 22, gs.Player.Heat)
	assert.Equal(t, int64(50), gs.Player.Experience)
	assert.True(t, gs.CrimeCooldowns["pickpocket"].Equal(testNow.Add(time.Minute)))
}

func TestCommitCrime_Failure(t *testing.T) {
	a := newTestActions(t, testState(), 0.95)

	res, ok := a.CommitCrime(pickpocket)
	require.True(t, ok)
	assert.False(t, res.Success)

	gs := a.State()
	assert.Equal(t, int64(30000), gs.Player.Cash)
	assert.Equal(t, 58, gs.Player.Respekt)
	assert.Equal(t, 24, gs.Player.Heat)
	assert.Contains(t, gs.CrimeCooldowns, "pickpocket")
}

func TestCommitCrime_Gates(t *testing.T) {
	a := newTestActions(t, testState(), 0.1)

	heist := pickpocket
	heist.ID = "heist"
	heist.RequiredLevel = 10
	_, ok := a.CommitCrime(heist)
	assert.False(t, ok, "level too low")

	_, ok = a.CommitCrime(pickpocket)
	require.True(t, ok)
	_, ok = a.CommitCrime(pickpocket)
	assert.False(t, ok, "on cooldown")

	a.now = func() time.Time { return testNow.Add(2 * time.Minute) }
	_, ok = a.CommitCrime(pickpocket)
	assert.True(t, ok)
}
