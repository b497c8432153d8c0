package trie

import (
	"iter"
	"slices"
	"strings"

	"classcode/internal/alphabet"
)

// NodeID identifies a node in the trie arena.
type NodeID int32

// The root is never anyone's child, so its id doubles as "no child".
const (
	root NodeID = 0
	none NodeID = 0
)

type node struct {
	children [alphabet.Size + 1]NodeID
	count    int
}

// Trie encodes forbidden patterns as shared prefix paths. A path ending in a
// node without children spells a complete forbidden pattern. Nodes are never
// removed; truncated subtrees stay in the arena unreachable.
//
// A Trie is not safe for concurrent use.
type Trie struct {
	nodes []node
}

// New returns an empty trie holding only the root.
func New() *Trie {
	return &Trie{nodes: make([]node, 1, 64)}
}

// Root returns the entry node.
func (t *Trie) Root() NodeID {
	return root
}

// Child returns the child of id labelled sym.
func (t *Trie) Child(id NodeID, sym alphabet.Symbol) (NodeID, bool) {
	c := t.nodes[id].children[sym]
	return c, c != none
}

// Children yields the alphabet-labelled children of id. The wildcard child
// is only reachable through Child.
func (t *Trie) Children(id NodeID) iter.Seq2[alphabet.Symbol, NodeID] {
	return func(yield func(alphabet.Symbol, NodeID) bool) {
		n := &t.nodes[id]
		if n.count == 0 {
			return
		}
		for sym, c := range n.children[:alphabet.Size] {
			if c == none {
				continue
			}
			if !yield(alphabet.Symbol(sym), c) {
				return
			}
		}
	}
}

// IsTerminal reports whether id closes a forbidden pattern.
func (t *Trie) IsTerminal(id NodeID) bool {
	return id != root && t.nodes[id].count == 0
}

// Insert forbids word. Nonconsecutive words are stored with a wildcard in
// front of every letter. Words longer than a code or holding runes outside
// the alphabet are skipped and reported with false.
//
// ErrEmptyPattern and ErrUnsatisfiable are fatal: the trie must not be used
// for generation afterwards.
func (t *Trie) Insert(word string, consecutive bool) (bool, error) {
	if word == "" {
		return false, ErrEmptyPattern
	}

	path, ok := pathOf(word, consecutive)
	if !ok {
		return false, nil
	}

	cur := root
	for i, sym := range path {
		next := t.nodes[cur].children[sym]
		switch {
		case next == none:
			next = t.alloc()
			t.link(cur, sym, next)
		case i == len(path)-1:
			// A shorter pattern subsumes every longer one below it.
			t.nodes[next] = node{}
		case t.IsTerminal(next):
			// Already subsumed by a shorter pattern.
			return true, nil
		}
		cur = next
	}

	if t.IsUnsatisfiable(root) {
		return true, ErrUnsatisfiable
	}
	return true, nil
}

// IsUnsatisfiable reports whether every alphabet symbol taken from id, either
// directly or through its wildcard child, closes a forbidden pattern.
//
// The check looks one level down only. Deeper dead ends are found during
// generation and learned there.
func (t *Trie) IsUnsatisfiable(id NodeID) bool {
	n := &t.nodes[id]
	if n.count == 0 {
		return id != root
	}

	dead := t.terminalChildren(id)
	if w := n.children[alphabet.Wildcard]; w != none {
		dead |= t.terminalChildren(w)
	}
	return dead.Full()
}

// Len returns the number of forbidden patterns reachable from the root.
func (t *Trie) Len() int {
	count := 0
	t.walk(root, func(NodeID, []alphabet.Symbol) { count++ })
	return count
}

// Patterns lists every forbidden pattern in sorted order, wildcards shown
// as '_'.
func (t *Trie) Patterns() []string {
	var out []string
	t.walk(root, func(_ NodeID, path []alphabet.Symbol) {
		var b strings.Builder
		for _, sym := range path {
			b.WriteRune(sym.Rune())
		}
		out = append(out, b.String())
	})
	slices.Sort(out)
	return out
}

func (t *Trie) terminalChildren(id NodeID) alphabet.Set {
	var s alphabet.Set
	for sym, c := range t.Children(id) {
		if t.IsTerminal(c) {
			s = s.Add(sym)
		}
	}
	return s
}

func (t *Trie) walk(id NodeID, visit func(NodeID, []alphabet.Symbol)) {
	var rec func(NodeID, []alphabet.Symbol)
	rec = func(id NodeID, path []alphabet.Symbol) {
		if t.IsTerminal(id) {
			visit(id, path)
			return
		}
		for sym, c := range t.nodes[id].children {
			if c != none {
				rec(c, append(path, alphabet.Symbol(sym)))
			}
		}
	}
	rec(id, make([]alphabet.Symbol, 0, 2*alphabet.CodeLength))
}

func (t *Trie) alloc() NodeID {
	t.nodes = append(t.nodes, node{})
	return NodeID(len(t.nodes) - 1)
}

func (t *Trie) link(parent NodeID, sym alphabet.Symbol, child NodeID) {
	t.nodes[parent].children[sym] = child
	t.nodes[parent].count++
}

func pathOf(word string, consecutive bool) ([]alphabet.Symbol, bool) {
	runes := []rune(alphabet.Fold(word))
	if len(runes) > alphabet.CodeLength {
		return nil, false
	}

	path := make([]alphabet.Symbol, 0, 2*len(runes))
	for _, r := range runes {
		sym, ok := alphabet.Lookup(r)
		if !ok {
			return nil, false
		}
		if !consecutive {
			path = append(path, alphabet.Wildcard)
		}
		path = append(path, sym)
	}
	return path, true
}
