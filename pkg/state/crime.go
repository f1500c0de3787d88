package state

import "time"

// Crime is a one-shot job from the catalog. Crimes are not part of the saved
// state; only their cooldowns are.
type Crime struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	RequiredLevel   int    `json:"requiredLevel" yaml:"requiredLevel"`
	SuccessChance   int    `json:"successChance" yaml:"successChance"`
	MinReward       int64  `json:"minReward" yaml:"minReward"`
	MaxReward       int64  `json:"maxReward" yaml:"maxReward"`
	Respekt         int    `json:"respekt" yaml:"respekt"`
	Experience      int64  `json:"experience" yaml:"experience"`
	Heat            int    `json:"heat" yaml:"heat"`
	CooldownSeconds int    `json:"cooldownSeconds" yaml:"cooldownSeconds"`
}

func (c Crime) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// CrimeReady reports whether the crime's cooldown has run out at now.
func (gs *GameState) CrimeReady(id string, now time.Time) bool {
	until, ok := gs.CrimeCooldowns[id]
	return !ok || !now.Before(until)
}
