// Package prefilter provides fast, sound-but-incomplete rejection tests
// that run ahead of the VM: a substring scan or a multi-pattern
// Aho-Corasick search that can say "no match anywhere in this input"
// without ever invoking the NFA simulation. A prefilter never changes
// whether a pattern matches, only how quickly a non-match is discovered.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"rex/internal/compiler"
)

// Prefilter narrows the region of an input the VM needs to search.
type Prefilter interface {
	// Find returns the start of the next input region that could contain
	// a match at or after from, or -1 if no such region exists. The VM
	// must still be run starting no later than the returned position; the
	// prefilter only rules out everything before it.
	Find(input []byte, from int) int
}

// Build returns the cheapest sound prefilter available for prog, or nil if
// prog's shape (no required leading literal, no all-literal alternation)
// gives this package nothing to work with.
func Build(prog *compiler.Program) Prefilter {
	if len(prog.LiteralSet) >= 2 {
		if pf, err := newSetPrefilter(prog.LiteralSet); err == nil {
			return pf
		}
	}
	if prog.Prefix != "" {
		return newLiteralPrefilter(prog.Prefix, prog.PrefixFold)
	}
	return nil
}

// literalPrefilter rejects input that cannot contain the pattern's
// required leading literal, grounded on the simple substring prefilters in
// coregex's literal package (which this module does not otherwise depend
// on, since it is teacher-internal rather than a published library).
type literalPrefilter struct {
	lit  []byte
	fold bool
}

func newLiteralPrefilter(lit string, fold bool) Prefilter {
	return &literalPrefilter{lit: []byte(lit), fold: fold}
}

func (p *literalPrefilter) Find(input []byte, from int) int {
	if from > len(input) {
		return -1
	}
	hay := input[from:]
	var idx int
	if p.fold {
		idx = indexFold(hay, p.lit)
	} else {
		idx = bytes.Index(hay, p.lit)
	}
	if idx < 0 {
		return -1
	}
	return from + idx
}

func indexFold(hay, needle []byte) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		if bytes.EqualFold(hay[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

// setPrefilter rejects input containing none of a fixed set of literal
// alternatives, using an Aho-Corasick automaton so cost is O(len(input))
// regardless of how many alternatives there are, modeled on coregex/meta's
// findAhoCorasick strategy.
type setPrefilter struct {
	auto *ahocorasick.Automaton
}

func newSetPrefilter(literals [][]byte) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &setPrefilter{auto: auto}, nil
}

func (p *setPrefilter) Find(input []byte, from int) int {
	if from >= len(input) {
		if from == len(input) {
			if m := p.auto.Find(input, from); m != nil {
				return m.Start
			}
			return -1
		}
		return -1
	}
	m := p.auto.Find(input, from)
	if m == nil {
		return -1
	}
	return m.Start
}
