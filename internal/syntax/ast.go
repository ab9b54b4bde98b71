// Package syntax implements the first stage of the regex pipeline: it lexes
// a pattern string and builds a canonical abstract syntax tree of regex
// operators. Character-class folding, negation, and flag application are
// all resolved here so that the compiler and VM never see anything but a
// normalized tree (spec invariant: downstream stages see canonical classes).
package syntax

import "rex/internal/unicode"

// NodeKind tags the variant of a Node. Dispatch in the parser and compiler
// is a switch over this tag rather than a class hierarchy.
type NodeKind int

const (
	KindEmpty NodeKind = iota
	KindLiteral
	KindAnyChar
	KindAnyCharNoNL
	KindClass
	KindAssertion
	KindCapture
	KindCat
	KindAlt
	KindRep
)

// Node is the common interface implemented by every AST node.
type Node interface {
	Kind() NodeKind
}

// Empty matches the empty string.
type Empty struct{}

func (Empty) Kind() NodeKind { return KindEmpty }

// Literal matches a single codepoint, optionally case-insensitively.
type Literal struct {
	Rune     rune
	FoldCase bool
}

func (Literal) Kind() NodeKind { return KindLiteral }

// AnyChar matches any codepoint, including newline ("s" flag dot).
type AnyChar struct{}

func (AnyChar) Kind() NodeKind { return KindAnyChar }

// AnyCharNoNL matches any codepoint except newline (default dot).
type AnyCharNoNL struct{}

func (AnyCharNoNL) Kind() NodeKind { return KindAnyCharNoNL }

// Class matches a codepoint against a sorted, disjoint set of inclusive
// ranges. Negation and case folding are already folded into Ranges by the
// time a Class node exists; a Class never carries a "Negated" flag because
// negation is resolved into the range list at parse time.
type Class struct {
	Ranges []unicode.Range
}

func (Class) Kind() NodeKind { return KindClass }

// AssertionKind distinguishes the zero-width assertions.
type AssertionKind int

const (
	AssertBeginText AssertionKind = iota
	AssertEndText
	AssertBeginLine
	AssertEndLine
	AssertWordBoundary
	AssertNotWordBoundary
)

// Assertion is a zero-width, non-consuming test on the surrounding input
// context. Begin/End are already resolved to their line- or text-anchored
// form at parse time according to the multiline flag in effect.
type Assertion struct {
	Op AssertionKind
}

func (Assertion) Kind() NodeKind { return KindAssertion }

// Capture wraps a subexpression in a numbered (and optionally named)
// group. Index 0 is reserved for the implicit whole-match group applied by
// the compiler; parser-assigned indices start at 1.
type Capture struct {
	Index int
	Name  string
	Child Node
}

func (Capture) Kind() NodeKind { return KindCapture }

// Cat matches its children in order.
type Cat struct {
	Children []Node
}

func (Cat) Kind() NodeKind { return KindCat }

// Alt matches the first child that matches, left to right (left-biased).
type Alt struct {
	Children []Node
}

func (Alt) Kind() NodeKind { return KindAlt }

// RepKind identifies the shape of a repetition. Counted repetitions
// ({n}, {n,}, {n,m}) are desugared into these three primitives plus Cat
// during parsing.
type RepKind int

const (
	RepZeroOrOne RepKind = iota
	RepZeroOrMore
	RepOneOrMore
)

// Rep matches Child repeated according to Kind, greedily or lazily.
type Rep struct {
	Child  Node
	Op     RepKind
	Greedy bool
}

func (Rep) Kind() NodeKind { return KindRep }
