package classcode

import (
	"log/slog"
	"math/rand/v2"
)

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used to pick symbols.
// Nil sources are ignored.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rnd = r
		}
	}
}

// WithLogger sets the logger that reports learned dead prefixes.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
