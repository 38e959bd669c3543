package homework

import "math/rand"

// Randomize builds the question list for one session: a uniform
// shuffle of the bank, truncated to min(limit, len) when limit > 0,
// with each retained question's options independently shuffled.
// Re-invoked on every (re)start, so each session sees a fresh order.
func Randomize(bank []Question, limit int) []Question {
	out := make([]Question, len(bank))
	copy(out, bank)
	shuffle(out)
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	for i := range out {
		if len(out[i].Options) > 0 {
			opts := make([]string, len(out[i].Options))
			copy(opts, out[i].Options)
			shuffle(opts)
			out[i].Options = opts
		}
	}
	return out
}

// Fisher–Yates.
func shuffle[T any](s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
