package state

import "math"

const (
	// PercentMin and PercentMax bound respekt and polisbevakning.
	PercentMin = 0
	PercentMax = 100

	baseExperience   = 1000
	experienceGrowth = 1.5
)

// Player holds the boss's level and the four resource counters.
type Player struct {
	Name             string `json:"name" yaml:"name"`
	Level            int    `json:"level" yaml:"level"`
	Experience       int64  `json:"experience" yaml:"experience"`
	ExperienceToNext int64  `json:"experienceToNext" yaml:"experienceToNext"`
	Cash             int64  `json:"kontanter" yaml:"kontanter"`
	Influence        int64  `json:"inflytande" yaml:"inflytande"`
	Respekt          int    `json:"respekt" yaml:"respekt"`
	Heat             int    `json:"polisbevakning" yaml:"polisbevakning"`
}

// NewPlayer returns a level 1 player.
func NewPlayer(name string) Player {
	return Player{
		Name:             name,
		Level:            1,
		ExperienceToNext: ExperienceForLevel(1),
	}
}

// ExperienceForLevel is the experience needed to leave the given level.
func ExperienceForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(math.Floor(baseExperience * math.Pow(experienceGrowth, float64(level-1))))
}

// Credit adds cash. Negative amounts debit and floor at zero.
func (p *Player) Credit(amount int64) {
	p.Cash += amount
	if p.Cash < 0 {
		p.Cash = 0
	}
}

// Debit removes cash, never going below zero.
func (p *Player) Debit(amount int64) {
	p.Credit(-amount)
}

func (p *Player) AdjustRespekt(delta int) {
	p.Respekt = ClampPercent(p.Respekt + delta)
}

func (p *Player) AdjustHeat(delta int) {
	p.Heat = ClampPercent(p.Heat + delta)
}

func (p *Player) AdjustInfluence(delta int64) {
	p.Influence += delta
	if p.Influence < 0 {
		p.Influence = 0
	}
}

// GainExperience adds experience and applies any level-ups, carrying the
// surplus into the next level. It returns the number of levels gained.
func (p *Player) GainExperience(amount int64) int {
	if amount <= 0 {
		return 0
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.ExperienceToNext <= 0 {
		p.ExperienceToNext = ExperienceForLevel(p.Level)
	}
	p.Experience += amount
	gained := 0
	for p.Experience >= p.ExperienceToNext {
		p.Experience -= p.ExperienceToNext
		p.Level++
		gained++
		p.ExperienceToNext = ExperienceForLevel(p.Level)
	}
	return gained
}

// ClampPercent bounds v to [0,100].
func ClampPercent(v int) int {
	return Clamp(v, PercentMin, PercentMax)
}

// Clamp bounds v to [lo,hi].
func Clamp[T int | int64 | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
