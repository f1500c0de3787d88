// Package dice provides the random rolls used by fights, negotiations, events
// and the schedulers. A Roller is the only source of randomness so tests can
// script outcomes.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jwebster45206/d20"
)

// Roller yields uniform floats in [0,1).
type Roller interface {
	Float64() float64
}

// DieRoller is a Roller that can also roll a single die, returning 1..faces.
type DieRoller interface {
	Roller
	Die(faces int) int
}

// Seeded is a mutex-guarded source shared by the schedulers and player
// actions. Floats come from math/rand, whole dice from a d20 roller.
type Seeded struct {
	mu   sync.Mutex
	rand *rand.Rand
	dice *d20.Roller
}

// NewSeeded returns a deterministic roller.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rand: rand.New(rand.NewSource(seed)),
		dice: d20.NewRoller(seed ^ 0x5eed),
	}
}

// NewRandom returns a roller seeded from crypto/rand, falling back to the clock.
func NewRandom() *Seeded {
	seed, err := NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return NewSeeded(seed)
}

func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64()
}

// Die rolls one die with the given number of faces.
func (s *Seeded) Die(faces int) int {
	if faces <= 1 {
		return 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.dice.Dice(1, uint(faces)).Roll()
	if err != nil {
		return 1 + s.rand.Intn(faces)
	}
	return out.Value
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Fixed replays a scripted sequence of values, cycling when exhausted.
type Fixed struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewFixed(values ...float64) *Fixed {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Fixed{values: values}
}

func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

// Die maps the next scripted value onto 1..faces.
func (f *Fixed) Die(faces int) int {
	if faces <= 1 {
		return 1
	}
	v := 1 + int(f.Float64()*float64(faces))
	return min(v, faces)
}

// Roll returns 1..faces, using the roller's own dice when it has them.
func Roll(r Roller, faces int) int {
	if faces <= 1 {
		return 1
	}
	if d, ok := r.(DieRoller); ok {
		return d.Die(faces)
	}
	return min(1+int(r.Float64()*float64(faces)), faces)
}

// Check rolls a d100 and passes when the roll is at most pct.
func Check(r Roller, pct int) bool {
	return Roll(r, 100) <= pct
}

// Percent rolls uniformly in [0,100).
func Percent(r Roller) float64 {
	return r.Float64() * 100
}

// Chance reports whether a percent roll lands under pct. pct <= 0 never passes,
// pct >= 100 always does.
func Chance(r Roller, pct float64) bool {
	return Percent(r) < pct
}

// Probability reports whether a [0,1) roll lands under p.
func Probability(r Roller, p float64) bool {
	return r.Float64() < p
}

// Between returns an integer uniformly in [lo,hi].
func Between(r Roller, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	span := hi - lo + 1
	if span <= 1<<30 {
		return lo + int64(Roll(r, int(span))) - 1
	}
	return lo + int64(r.Float64()*float64(span))
}

// Duration returns a duration uniformly in [lo,hi].
func Duration(r Roller, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(r.Float64()*float64(hi-lo))
}

// Pick returns a uniformly chosen index into a slice of length n, or -1 when n is 0.
func Pick(r Roller, n int) int {
	if n <= 0 {
		return -1
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
