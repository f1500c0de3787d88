package actions

import (
	"github.com/jwebster45206/mafios/pkg/dice"
	"github.com/jwebster45206/mafios/pkg/state"
)

// CrimeResult describes how a crime went.
type CrimeResult struct {
	Success    bool
	Reward     int64
	Respekt    int
	Experience int64
	Heat       int
}

// CommitCrime attempts a crime the player has the level for and that is off
// cooldown. Success pays a reward in [MinReward, MaxReward] and the crime's
// respekt and experience; failure doubles the heat and costs two respekt. The
// cooldown starts either way.
func (a *Actions) CommitCrime(c state.Crime) (CrimeResult, bool) {
	var res CrimeResult
	ok := a.update(func(gs *state.GameState) bool {
		now := a.now()
		if c.ID == "" || gs.Player.Level < c.RequiredLevel || !gs.CrimeReady(c.ID, now) {
			return false
		}

		res = CrimeResult{}
		res.Success = dice.Check(a.roller, c.SuccessChance)
		if res.Success {
			res.Reward = dice.Between(a.roller, c.MinReward, c.MaxReward)
			res.Respekt = c.Respekt
			res.Experience = c.Experience
			res.Heat = c.Heat
		} else {
			res.Respekt = -2
			res.Heat = c.Heat * 2
		}

		gs.Player.Credit(res.Reward)
		gs.Player.AdjustRespekt(res.Respekt)
		gs.Player.AdjustHeat(res.Heat)
		gs.Player.GainExperience(res.Experience)
		if c.CooldownSeconds > 0 {
			gs.CrimeCooldowns[c.ID] = now.Add(c.Cooldown())
		}
		return true
	})
	return res, ok
}
