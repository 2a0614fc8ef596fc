package responses

import (
	"math/rand/v2"
)

// Picker chooses replies uniformly at random.
type Picker struct {
	rng *rand.Rand
}

// NewPicker uses rng for every choice; nil means a runtime-seeded source.
func NewPicker(rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Picker{rng: rng}
}

func (p *Picker) Pick(replies []string) string {
	if len(replies) == 0 {
		return ""
	}

	return replies[p.rng.IntN(len(replies))]
}
