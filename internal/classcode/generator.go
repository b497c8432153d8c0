package classcode

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"classcode/internal/alphabet"
	"classcode/internal/trie"
)

// Generator produces codes that never contain a forbidden word. It owns a
// pattern trie that grows whenever generation runs into a dead end.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	trie    *trie.Trie
	rnd     *rand.Rand
	logger  *slog.Logger
	code    string
	learned int
}

// New builds a Generator that forbids every word in words, matched with its
// letters in order and any symbols in between, and generates a first code.
// Words longer than a code or holding characters outside the alphabet are
// ignored.
func New(words []string, opts ...Option) (*Generator, error) {
	g := &Generator{
		trie:   trie.New(),
		rnd:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Nanosecond()))),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, w := range words {
		if _, err := g.trie.Insert(w, false); err != nil {
			return nil, fmt.Errorf("forbidding %q: %w", w, err)
		}
	}

	if _, err := g.Generate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Code returns the most recently generated code.
func (g *Generator) Code() string {
	return g.code
}

// Learned returns how many dead prefixes generation has taught the trie.
func (g *Generator) Learned() int {
	return g.learned
}

// Patterns lists the forbidden patterns, wildcards shown as '_'.
func (g *Generator) Patterns() []string {
	return g.trie.Patterns()
}

// Generate builds a new code symbol by symbol. When no symbol can follow the
// prefix built so far, the prefix is forbidden and generation starts over.
func (g *Generator) Generate() (string, error) {
	for {
		code, ok := g.attempt()
		if ok {
			g.code = code
			return code, nil
		}
		if code == "" {
			return "", ErrUnsatisfiable
		}

		if _, err := g.trie.Insert(code, true); err != nil {
			return "", fmt.Errorf("learning dead prefix %q: %w", code, err)
		}
		g.learned++
		g.logger.Debug("learned dead prefix",
			slog.String("prefix", code),
			slog.Int("learned", g.learned),
		)
	}
}

// attempt walks the trie once. It returns the full code, or the dead prefix
// and false.
func (g *Generator) attempt() (string, bool) {
	var code [alphabet.CodeLength]byte

	// anchored holds states reached from the start of the code, floating
	// holds wildcard states that stay live for the rest of it.
	anchored := []trie.NodeID{g.trie.Root()}
	floating := g.seed(nil, anchored)

	for i := range code {
		safe := g.safe(anchored, floating)
		if safe.Len() == 0 {
			return string(code[:i]), false
		}

		choices := safe.Symbols()
		sym := choices[g.rnd.IntN(len(choices))]
		code[i] = byte(sym.Rune())

		anchored = g.advance(anchored, floating, sym)
		floating = g.seed(floating, anchored)
	}

	return string(code[:]), true
}

// safe returns the symbols whose every successor state is still viable.
func (g *Generator) safe(anchored, floating []trie.NodeID) alphabet.Set {
	var unsafe alphabet.Set
	for _, ptrs := range [][]trie.NodeID{anchored, floating} {
		for _, p := range ptrs {
			for sym, child := range g.trie.Children(p) {
				if g.trie.IsUnsatisfiable(child) {
					unsafe = unsafe.Add(sym)
				}
			}
		}
	}
	return unsafe.Complement()
}

func (g *Generator) advance(anchored, floating []trie.NodeID, sym alphabet.Symbol) []trie.NodeID {
	next := make([]trie.NodeID, 0, len(anchored)+len(floating))
	for _, ptrs := range [][]trie.NodeID{anchored, floating} {
		for _, p := range ptrs {
			if c, ok := g.trie.Child(p, sym); ok {
				next = append(next, c)
			}
		}
	}
	return next
}

// seed adds the wildcard child of every anchored state to floating.
func (g *Generator) seed(floating, anchored []trie.NodeID) []trie.NodeID {
	for _, p := range anchored {
		w, ok := g.trie.Child(p, alphabet.Wildcard)
		if ok && !slices.Contains(floating, w) {
			floating = append(floating, w)
		}
	}
	return floating
}
