// Package compiler is the second pipeline stage: it walks a syntax.Node AST
// in one pre-order pass and emits a flat, index-addressed Program of VM
// instructions. The Program is the only thing the VM ever sees; it never
// looks at the AST.
package compiler

import (
	"fmt"

	"rex/internal/unicode"
)

// OpCode tags the variant of an Inst. VM dispatch is a switch over this tag.
type OpCode int

const (
	OpCharLit    OpCode = iota // consume one rune == Rune (mod case)
	OpCharClass                // consume one rune in Ranges
	OpAny                      // consume any rune, including newline
	OpAnyNoNL                  // consume any rune except newline
	OpEmptyLook                // zero-width assertion, kind in Look
	OpSave                     // record ic into capture slot Slot
	OpJump                     // unconditional epsilon to X
	OpSplit                    // epsilon to X (priority) then Y
	OpMatch                    // accept
)

// LookKind is the EmptyLook assertion kind, mirroring syntax.AssertionKind
// one for one so the VM never needs to look at the syntax package.
type LookKind int

const (
	LookBeginText LookKind = iota
	LookEndText
	LookBeginLine
	LookEndLine
	LookWordBoundary
	LookNotWordBoundary
)

// Inst is one VM instruction. Only the fields relevant to Op are
// meaningful; the rest are zero.
type Inst struct {
	Op       OpCode
	Rune     rune            // OpCharLit
	FoldCase bool            // OpCharLit
	Ranges   []unicode.Range // OpCharClass
	Look     LookKind        // OpEmptyLook
	Slot     int             // OpSave
	X, Y     int             // OpJump (X only), OpSplit (X = priority target, Y = secondary)
}

func (i Inst) String() string {
	switch i.Op {
	case OpCharLit:
		return fmt.Sprintf("charlit %q fold=%v", i.Rune, i.FoldCase)
	case OpCharClass:
		return fmt.Sprintf("charclass %v", i.Ranges)
	case OpAny:
		return "any"
	case OpAnyNoNL:
		return "anynonl"
	case OpEmptyLook:
		return fmt.Sprintf("emptylook %d", i.Look)
	case OpSave:
		return fmt.Sprintf("save %d", i.Slot)
	case OpJump:
		return fmt.Sprintf("jump %d", i.X)
	case OpSplit:
		return fmt.Sprintf("split %d, %d", i.X, i.Y)
	case OpMatch:
		return "match"
	}
	return "?"
}

// Program is the compiler's output: a flat instruction sequence plus the
// metadata the VM and façade need to drive it.
type Program struct {
	Insts         []Inst
	NumCaps       int    // number of capture slots / 2 (including implicit group 0)
	Prefix        string // literal bytes every match must begin with, or ""
	PrefixFold    bool   // Prefix was extracted from case-insensitive literals
	AnchoredBegin bool
	AnchoredEnd   bool
	NumSubexp     int            // number of user capturing groups (not counting group 0)
	Names         map[string]int // capture name -> 1-based index

	// LiteralSet holds the branch literals of a top-level alternation
	// whose every branch is a plain literal string (e.g. "cat|dog|bird"),
	// letting the façade run a multi-pattern Aho-Corasick prefilter
	// instead of driving the VM one byte at a time. Nil unless the whole
	// pattern reduces to such an alternation.
	LiteralSet [][]byte
}
