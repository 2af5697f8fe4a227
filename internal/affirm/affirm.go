// Package affirm picks affirmations to display. Selection is uniform over the
// collection and the random source is injectable so callers can test
// deterministically.
package affirm

import (
	"math/rand/v2"
	"time"

	"productivelife/internal/model"
)

// Fallback is shown when the collection is empty.
const Fallback = "Small steps every day add up."

// Picker chooses affirmations uniformly at random.
type Picker struct {
	rng *rand.Rand
}

// New returns a picker seeded from the clock.
func New() *Picker {
	seed := uint64(time.Now().UnixNano())
	return NewWithSource(rand.NewPCG(seed, seed>>1|1))
}

// NewWithSource returns a picker drawing from src.
func NewWithSource(src rand.Source) *Picker {
	return &Picker{rng: rand.New(src)}
}

// Pick returns one affirmation, or false when there are none.
func (p *Picker) Pick(items []model.Affirmation) (model.Affirmation, bool) {
	if len(items) == 0 {
		return model.Affirmation{}, false
	}
	return items[p.rng.IntN(len(items))], true
}

// Text returns the text of a random affirmation, or Fallback.
func (p *Picker) Text(items []model.Affirmation) string {
	a, ok := p.Pick(items)
	if !ok {
		return Fallback
	}
	return a.Text
}
