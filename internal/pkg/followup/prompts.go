package followup

import (
	"math/rand"
	"sync"
)

// DefaultPrompts is the built-in pool of clarifying prompts used when no
// pool is configured.
var DefaultPrompts = []string{
	"Could you walk me through a specific example of that?",
	"What was your individual contribution in that situation?",
	"What would you do differently in hindsight?",
	"How did you measure the outcome?",
	"Can you go deeper into the technical details?",
	"What was the hardest part, and how did you handle it?",
}

// Picker selects a follow-up prompt uniformly at random from a fixed pool.
// The randomness source is injected so tests can seed it deterministically.
// One Picker is shared across all sessions and rand.Rand is not safe for
// concurrent use, so Pick serializes access to it.
type Picker struct {
	prompts []string

	mu  sync.Mutex
	rng *rand.Rand
}

func NewPicker(prompts []string, rng *rand.Rand) *Picker {
	if len(prompts) == 0 {
		prompts = DefaultPrompts
	}
	return &Picker{prompts: prompts, rng: rng}
}

func (p *Picker) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prompts[p.rng.Intn(len(p.prompts))]
}
