package compiler

import (
	"fmt"
	"unicode/utf8"

	"rex/internal/syntax"
	"rex/internal/unicode"
)

// Compile performs the single pre-order walk over ast that produces a flat
// Program. numSubexp is the number of user capturing groups (group 0, the
// whole match, is added here and is not counted in it).
func Compile(ast syntax.Node, numSubexp int, names map[string]int) (*Program, error) {
	c := &emitter{}
	c.emit(Inst{Op: OpSave, Slot: 0})
	if err := c.compileNode(ast); err != nil {
		return nil, err
	}
	c.emit(Inst{Op: OpSave, Slot: 1})
	c.emit(Inst{Op: OpMatch})

	prog := &Program{
		Insts:     c.insts,
		NumCaps:   numSubexp + 1,
		NumSubexp: numSubexp,
		Names:     names,
	}
	prog.AnchoredBegin = startsWithBeginText(ast)
	prog.AnchoredEnd = endsWithEndText(ast)
	prog.Prefix, prog.PrefixFold = extractPrefix(ast)
	prog.LiteralSet = extractLiteralSet(ast)
	return prog, nil
}

// extractLiteralSet recognizes a pattern that is, in its entirety, an
// alternation of plain literal strings, and returns those strings so the
// façade can hand them to a multi-pattern prefilter. Returns nil for
// anything else; the VM is always correct without this.
func extractLiteralSet(root syntax.Node) [][]byte {
	node := root
	for node.Kind() == syntax.KindCapture {
		node = node.(*syntax.Capture).Child
	}
	if node.Kind() != syntax.KindAlt {
		return nil
	}
	children := node.(*syntax.Alt).Children
	if len(children) < 2 {
		return nil
	}

	set := make([][]byte, 0, len(children))
	for _, child := range children {
		s, ok := literalString(child)
		if !ok {
			return nil
		}
		set = append(set, []byte(s))
	}
	return set
}

// literalString returns the full literal string a node matches if (and
// only if) it is built entirely out of case-sensitive Literal, Cat, Empty
// and Capture nodes, i.e. it has exactly one possible match and that match
// is a fixed string.
func literalString(n syntax.Node) (string, bool) {
	for n.Kind() == syntax.KindCapture {
		n = n.(*syntax.Capture).Child
	}
	switch n.Kind() {
	case syntax.KindLiteral:
		lit := n.(syntax.Literal)
		if lit.FoldCase {
			return "", false
		}
		return string(lit.Rune), true
	case syntax.KindCat:
		var b []byte
		for _, child := range n.(*syntax.Cat).Children {
			s, ok := literalString(child)
			if !ok {
				return "", false
			}
			b = append(b, s...)
		}
		return string(b), true
	case syntax.KindEmpty:
		return "", true
	default:
		return "", false
	}
}

type emitter struct {
	insts []Inst
}

func (c *emitter) emit(i Inst) int {
	c.insts = append(c.insts, i)
	return len(c.insts) - 1
}

func (c *emitter) pc() int { return len(c.insts) }

func (c *emitter) compileNode(n syntax.Node) error {
	switch n.Kind() {
	case syntax.KindEmpty:
		return nil

	case syntax.KindLiteral:
		lit := n.(syntax.Literal)
		c.emit(Inst{Op: OpCharLit, Rune: lit.Rune, FoldCase: lit.FoldCase})
		return nil

	case syntax.KindAnyChar:
		c.emit(Inst{Op: OpAny})
		return nil

	case syntax.KindAnyCharNoNL:
		c.emit(Inst{Op: OpAnyNoNL})
		return nil

	case syntax.KindClass:
		cls := n.(syntax.Class)
		c.emit(Inst{Op: OpCharClass, Ranges: cls.Ranges})
		return nil

	case syntax.KindAssertion:
		a := n.(syntax.Assertion)
		look, err := mapLook(a.Op)
		if err != nil {
			return err
		}
		c.emit(Inst{Op: OpEmptyLook, Look: look})
		return nil

	case syntax.KindCapture:
		cap := n.(*syntax.Capture)
		c.emit(Inst{Op: OpSave, Slot: 2 * cap.Index})
		if err := c.compileNode(cap.Child); err != nil {
			return err
		}
		c.emit(Inst{Op: OpSave, Slot: 2*cap.Index + 1})
		return nil

	case syntax.KindCat:
		for _, child := range n.(*syntax.Cat).Children {
			if err := c.compileNode(child); err != nil {
				return err
			}
		}
		return nil

	case syntax.KindAlt:
		return c.compileAlt(n.(*syntax.Alt).Children)

	case syntax.KindRep:
		return c.compileRep(n.(*syntax.Rep))
	}

	return fmt.Errorf("compiler: unhandled node kind %d", n.Kind())
}

// compileAlt lays out an n-ary alternation as a right-leaning chain of
// binary splits, left-biased: the first branch is always the Split's
// priority (X) target, matching leftmost-first semantics.
func (c *emitter) compileAlt(children []syntax.Node) error {
	if len(children) == 0 {
		return nil
	}
	if len(children) == 1 {
		return c.compileNode(children[0])
	}

	splitIdx := c.emit(Inst{Op: OpSplit})
	c.insts[splitIdx].X = c.pc()
	if err := c.compileNode(children[0]); err != nil {
		return err
	}
	jumpIdx := c.emit(Inst{Op: OpJump})
	c.insts[splitIdx].Y = c.pc()

	if err := c.compileAlt(children[1:]); err != nil {
		return err
	}
	c.insts[jumpIdx].X = c.pc()
	return nil
}

// compileRep emits one of the three repetition shapes. The Split's X is
// always the priority (taken-first) target; greedy prefers
// re-entering the body, lazy prefers falling through, matching
// leftmost-first semantics under Pike's thread-priority rule.
func (c *emitter) compileRep(rep *syntax.Rep) error {
	switch rep.Op {
	case syntax.RepZeroOrOne:
		splitIdx := c.emit(Inst{Op: OpSplit})
		bodyStart := c.pc()
		if err := c.compileNode(rep.Child); err != nil {
			return err
		}
		end := c.pc()
		setSplit(c, splitIdx, bodyStart, end, rep.Greedy)

	case syntax.RepZeroOrMore:
		top := c.pc()
		splitIdx := c.emit(Inst{Op: OpSplit})
		bodyStart := c.pc()
		if err := c.compileNode(rep.Child); err != nil {
			return err
		}
		c.emit(Inst{Op: OpJump, X: top})
		end := c.pc()
		setSplit(c, splitIdx, bodyStart, end, rep.Greedy)

	case syntax.RepOneOrMore:
		top := c.pc()
		if err := c.compileNode(rep.Child); err != nil {
			return err
		}
		splitIdx := c.emit(Inst{Op: OpSplit})
		end := c.pc()
		setSplit(c, splitIdx, top, end, rep.Greedy)

	default:
		return fmt.Errorf("compiler: unhandled repetition kind %d", rep.Op)
	}
	return nil
}

// setSplit assigns a Split's two epsilon targets so that the greedy
// (body-preferring) choice always lands in X, the thread list's priority
// slot, and the lazy choice swaps them.
func setSplit(c *emitter, splitIdx, body, after int, greedy bool) {
	if greedy {
		c.insts[splitIdx].X = body
		c.insts[splitIdx].Y = after
	} else {
		c.insts[splitIdx].X = after
		c.insts[splitIdx].Y = body
	}
}

func mapLook(op syntax.AssertionKind) (LookKind, error) {
	switch op {
	case syntax.AssertBeginText:
		return LookBeginText, nil
	case syntax.AssertEndText:
		return LookEndText, nil
	case syntax.AssertBeginLine:
		return LookBeginLine, nil
	case syntax.AssertEndLine:
		return LookEndLine, nil
	case syntax.AssertWordBoundary:
		return LookWordBoundary, nil
	case syntax.AssertNotWordBoundary:
		return LookNotWordBoundary, nil
	}
	return 0, fmt.Errorf("compiler: unhandled assertion kind %d", op)
}

// startsWithBeginText reports whether every path through n must cross a
// \A (or ^ in single-line mode, already resolved to AssertBeginText by the
// parser) before consuming anything, letting the VM skip re-seeding an
// unanchored search at every input position.
func startsWithBeginText(n syntax.Node) bool {
	switch n.Kind() {
	case syntax.KindAssertion:
		return n.(syntax.Assertion).Op == syntax.AssertBeginText
	case syntax.KindCapture:
		return startsWithBeginText(n.(*syntax.Capture).Child)
	case syntax.KindCat:
		children := n.(*syntax.Cat).Children
		if len(children) == 0 {
			return false
		}
		return startsWithBeginText(children[0])
	case syntax.KindAlt:
		children := n.(*syntax.Alt).Children
		if len(children) == 0 {
			return false
		}
		for _, c := range children {
			if !startsWithBeginText(c) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// endsWithEndText is the mirror of startsWithBeginText for \z.
func endsWithEndText(n syntax.Node) bool {
	switch n.Kind() {
	case syntax.KindAssertion:
		return n.(syntax.Assertion).Op == syntax.AssertEndText
	case syntax.KindCapture:
		return endsWithEndText(n.(*syntax.Capture).Child)
	case syntax.KindCat:
		children := n.(*syntax.Cat).Children
		if len(children) == 0 {
			return false
		}
		return endsWithEndText(children[len(children)-1])
	case syntax.KindAlt:
		children := n.(*syntax.Alt).Children
		if len(children) == 0 {
			return false
		}
		for _, c := range children {
			if !endsWithEndText(c) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// extractPrefix pulls out the run of unconditional leading literals that
// every match of n must begin with, letting the façade reject non-matching
// input with a single substring scan before ever starting the VM. It is a
// pure speed path: the VM is always correct with an empty prefix.
func extractPrefix(root syntax.Node) (string, bool) {
	node := root
	for node.Kind() == syntax.KindCapture {
		node = node.(*syntax.Capture).Child
	}

	var children []syntax.Node
	switch node.Kind() {
	case syntax.KindCat:
		children = node.(*syntax.Cat).Children
	case syntax.KindLiteral:
		children = []syntax.Node{node}
	default:
		return "", false
	}

	var runes []rune
	foldCase := false
	foldSet := false
	for _, child := range children {
		lit, ok := unwrapLiteral(child)
		if !ok {
			break
		}
		if foldSet && lit.FoldCase != foldCase {
			break
		}
		if lit.FoldCase && !asciiFoldOrbit(lit.Rune) {
			// A byte-wise case-insensitive scan cannot see folds of a
			// different UTF-8 width (k vs U+212A KELVIN SIGN).
			break
		}
		foldCase = lit.FoldCase
		foldSet = true
		runes = append(runes, lit.Rune)
	}
	if len(runes) == 0 {
		return "", false
	}
	return string(runes), foldCase
}

func asciiFoldOrbit(r rune) bool {
	for _, f := range unicode.FoldOrbit(r) {
		if f >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func unwrapLiteral(n syntax.Node) (syntax.Literal, bool) {
	for n.Kind() == syntax.KindCapture {
		n = n.(*syntax.Capture).Child
	}
	if n.Kind() == syntax.KindLiteral {
		return n.(syntax.Literal), true
	}
	return syntax.Literal{}, false
}
