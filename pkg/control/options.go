package control

import "math/rand/v2"

// Option configures a standard library node.
type Option func(*settings)

type settings struct {
	rng   *rand.Rand
	check float64
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithRand sets the random source used by random samplers. Without it the
// package-level math/rand/v2 source is used.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) {
		s.rng = r
	}
}

// WithCheck sets the skip threshold returned by Check. A node with threshold
// p runs with probability 1-p.
func WithCheck(p float64) Option {
	return func(s *settings) {
		s.check = p
	}
}

// Check returns the configured skip threshold.
func (s *settings) Check() float64 { return s.check }

func (s *settings) perm(n int) []int {
	if s.rng != nil {
		return s.rng.Perm(n)
	}
	return rand.Perm(n)
}
