// Package unicode is the static table provider for the regex engine.
//
// It maps class names ("Letter", "Nd", "Greek", ...) to sorted, disjoint
// codepoint ranges, and maps a codepoint to its case-fold orbit. Tables are
// built once from the standard library's unicode package and are read-only
// for the remainder of the process, matching the "global state: none
// required, tables are process-read-only" design note.
package unicode

import (
	"fmt"
	"sort"
	"sync"
	"unicode"
)

// Range is an inclusive codepoint range [Lo, Hi].
type Range struct {
	Lo, Hi rune
}

// MaxRune is the largest valid Unicode codepoint.
const MaxRune = unicode.MaxRune

var (
	classMu    sync.Mutex
	classCache = map[string][]Range{}
)

// ClassRanges returns the sorted, disjoint ranges for a Unicode class name:
// a general category ("L", "Nd", "Letter", ...) or a script ("Greek",
// "Han", ...). ok is false if name is not a recognized class.
func ClassRanges(name string) (ranges []Range, ok bool) {
	classMu.Lock()
	defer classMu.Unlock()

	if r, cached := classCache[name]; cached {
		return r, true
	}

	table, found := lookupRangeTable(name)
	if !found {
		return nil, false
	}
	r := fromRangeTable(table)
	classCache[name] = r
	return r, true
}

// classAliases maps the long-hand names used in spec examples ("Letter")
// to the short stdlib category codes ("L") actually keyed in
// unicode.Categories.
var classAliases = map[string]string{
	"Letter":     "L",
	"Number":     "N",
	"Mark":       "M",
	"Punctuation": "P",
	"Symbol":     "S",
	"Separator":  "Z",
	"Other":      "C",
}

// lookupRangeTable resolves a class name (after alias expansion) against
// the standard library's category, script and property tables, plus "Any".
// The shorthands \d, \s, \w and their negations are handled by the parser
// and never reach here; this only serves \p{Name}.
func lookupRangeTable(name string) (*unicode.RangeTable, bool) {
	if alias, ok := classAliases[name]; ok {
		name = alias
	}
	if t, ok := unicode.Categories[name]; ok {
		return t, true
	}
	if t, ok := unicode.Scripts[name]; ok {
		return t, true
	}
	if t, ok := unicode.Properties[name]; ok {
		return t, true
	}
	switch name {
	case "Any":
		return &unicode.RangeTable{R32: []unicode.Range32{{Lo: 0, Hi: MaxRune, Stride: 1}}}, true
	}
	return nil, false
}

// Normalize sorts and merges an arbitrary range slice into the canonical
// sorted, disjoint form every downstream stage assumes.
func Normalize(ranges []Range) []Range {
	out := append([]Range(nil), ranges...)
	sort.Slice(out, func(i, j int) bool { return out[i].Lo < out[j].Lo })
	return mergeRanges(out)
}

// fromRangeTable flattens a *unicode.RangeTable into a sorted, merged,
// disjoint slice of inclusive ranges. Stride != 1 entries are expanded
// rune by rune (the stdlib tables only use stride>1 for small sparse
// blocks, so this never blows up memory).
func fromRangeTable(t *unicode.RangeTable) []Range {
	var out []Range
	for _, r16 := range t.R16 {
		expandStride(&out, rune(r16.Lo), rune(r16.Hi), int(r16.Stride))
	}
	for _, r32 := range t.R32 {
		expandStride(&out, rune(r32.Lo), rune(r32.Hi), int(r32.Stride))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lo < out[j].Lo })
	return mergeRanges(out)
}

func expandStride(out *[]Range, lo, hi rune, stride int) {
	if stride <= 1 {
		*out = append(*out, Range{Lo: lo, Hi: hi})
		return
	}
	for r := lo; r <= hi; r += rune(stride) {
		*out = append(*out, Range{Lo: r, Hi: r})
	}
}

// mergeRanges merges adjacent/overlapping ranges in an already
// start-sorted slice, the same normalization the parser applies to
// user-written character classes.
func mergeRanges(rs []Range) []Range {
	if len(rs) == 0 {
		return rs
	}
	out := rs[:1]
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// FoldOrbit returns every codepoint that case-folds to the same
// equivalence class as r, r itself included, sorted ascending.
func FoldOrbit(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	sort.Slice(orbit, func(i, j int) bool { return orbit[i] < orbit[j] })
	return orbit
}

// FoldRanges returns ranges widened to include the case-fold orbit of
// every codepoint in the input ranges, merged back into disjoint form.
// The parser calls this once, at parse time, so the VM's hot path never
// calls into the folding machinery (design note: "Unicode folding is
// precomputed into class ranges").
func FoldRanges(ranges []Range) []Range {
	var out []Range
	out = append(out, ranges...)
	for _, rg := range ranges {
		// Case folding only ever needs to consider single codepoints in
		// practice for the scripts/classes this engine exposes; widen by
		// orbit for every codepoint in small ranges, and skip folding for
		// large ranges where folding is a no-op for the vast majority of
		// codepoints (ASCII-range classes still fold correctly because
		// they're iterated directly).
		if rg.Hi-rg.Lo > foldExpandLimit {
			continue
		}
		for c := rg.Lo; c <= rg.Hi; c++ {
			for _, f := range FoldOrbit(c) {
				out = append(out, Range{Lo: f, Hi: f})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lo < out[j].Lo })
	return mergeRanges(out)
}

// foldExpandLimit bounds the per-range codepoint-by-codepoint fold
// expansion so that a user-supplied class like [\x{0}-\x{10FFFF}] cannot
// force an O(2^21) fold walk; it is well above any realistic literal
// class (e.g. the Greek or Cyrillic blocks) but below the size of
// deliberately pathological ranges.
const foldExpandLimit = 4096

// Negate returns the complement of ranges within [0, MaxRune], excluding
// the UTF-16 surrogate range: the complement is taken against
// [0, 0x10FFFF] minus the surrogates, not the full codepoint space.
func Negate(ranges []Range) []Range {
	sorted := append([]Range(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })
	sorted = mergeRanges(sorted)

	const surrogateLo, surrogateHi = 0xD800, 0xDFFF

	var out []Range
	next := rune(0)
	emit := func(lo, hi rune) {
		if lo > hi {
			return
		}
		// Split around the surrogate gap so the complement never includes it.
		if lo <= surrogateHi && hi >= surrogateLo {
			if lo < surrogateLo {
				out = append(out, Range{Lo: lo, Hi: surrogateLo - 1})
			}
			if hi > surrogateHi {
				out = append(out, Range{Lo: surrogateHi + 1, Hi: hi})
			}
			return
		}
		out = append(out, Range{Lo: lo, Hi: hi})
	}
	for _, r := range sorted {
		if r.Lo > next {
			emit(next, r.Lo-1)
		}
		if r.Hi+1 > next {
			next = r.Hi + 1
		}
	}
	if next <= MaxRune {
		emit(next, MaxRune)
	}
	return out
}

// Describe renders a class name in its \p{Name} form.
func Describe(name string) string {
	return fmt.Sprintf("\\p{%s}", name)
}
