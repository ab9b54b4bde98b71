// Package vm is the third pipeline stage: Pike's NFA simulation. It runs a
// compiler.Program over an input without backtracking, so match time is
// always O(len(program) * len(input)) regardless of pattern shape.
package vm

import (
	"sync"
	"unicode/utf8"

	"rex/internal/compiler"
	"rex/internal/unicode"
)

// Machine runs one compiled Program. It is not safe for concurrent use by
// multiple goroutines at once; callers needing concurrency run separate
// Machines over the same Program, which is itself immutable and shareable.
type Machine struct {
	prog *compiler.Program
	cur  *threadList
	next *threadList
	// addStack is the explicit work stack addThread uses to build an
	// epsilon closure. It is never recursion, so a deeply nested pattern
	// (many stacked Splits) cannot overflow the Go call stack.
	addStack []addTask
	capsPool sync.Pool
}

type addTask struct {
	pc   int
	caps []int
}

// New builds a Machine for prog. A Machine holds scratch buffers sized to
// len(prog.Insts) and should be reused across searches against the same
// Program rather than reallocated per call.
func New(prog *compiler.Program) *Machine {
	m := &Machine{
		prog: prog,
		cur:  newThreadList(len(prog.Insts)),
		next: newThreadList(len(prog.Insts)),
	}
	numSlots := prog.NumCaps * 2
	m.capsPool.New = func() interface{} {
		return make([]int, numSlots)
	}
	return m
}

// freshCaps returns a capture slot slice from capsPool, with every slot
// reset to -1 (unset). Slices are never put back into the pool (a match
// hands its slots to the caller), and Save clones the slice before writing.
func (m *Machine) freshCaps() []int {
	caps := m.capsPool.Get().([]int)
	for i := range caps {
		caps[i] = -1
	}
	return caps
}

func cloneCaps(caps []int) []int {
	nc := make([]int, len(caps))
	copy(nc, caps)
	return nc
}

// Search runs an unanchored leftmost-first search for the leftmost match
// starting at or after start, returning the capture slots (index 2i/2i+1
// for group i, -1 meaning unset) of the match, or nil if none exists.
func (m *Machine) Search(input []byte, start int) []int {
	prog := m.prog
	clist, nlist := m.cur, m.next
	clist.reset()
	nlist.reset()

	var matched []int
	seeding := true

	for pos := start; ; {
		if matched == nil && seeding {
			if !prog.AnchoredBegin || pos == start {
				m.addThread(clist, 0, m.freshCaps(), pos, input)
			} else {
				seeding = false
			}
		}
		if len(clist.dense) == 0 && (matched != nil || !seeding) {
			break
		}

		r, width := decodeRuneAt(input, pos)
		nlist.reset()

		stop := false
		for i := 0; i < len(clist.dense); i++ {
			t := clist.dense[i]
			inst := prog.Insts[t.pc]
			switch inst.Op {
			case compiler.OpCharLit:
				if runeEqual(inst.Rune, r, inst.FoldCase) && width > 0 {
					m.addThread(nlist, t.pc+1, t.caps, pos+width, input)
				}
			case compiler.OpCharClass:
				if width > 0 && inClass(inst.Ranges, r) {
					m.addThread(nlist, t.pc+1, t.caps, pos+width, input)
				}
			case compiler.OpAny:
				if width > 0 {
					m.addThread(nlist, t.pc+1, t.caps, pos+width, input)
				}
			case compiler.OpAnyNoNL:
				if width > 0 && r != '\n' {
					m.addThread(nlist, t.pc+1, t.caps, pos+width, input)
				}
			case compiler.OpMatch:
				matched = t.caps
				stop = true
			}
			if stop {
				break
			}
		}
		clist.dense = clist.dense[:0]
		clist, nlist = nlist, clist
		m.cur, m.next = clist, nlist

		if width == 0 {
			break
		}
		pos += width
		if matched != nil {
			seeding = false
		}
	}
	return matched
}

// addThread adds pc (and its full epsilon closure: Jump, Split, Save,
// satisfied EmptyLook) to list, using an explicit stack rather than
// recursion. Push order matters: a Split's priority target (X) must be
// explored, including its entire subtree, before its secondary target
// (Y), so that dense list order always reflects leftmost-first priority.
func (m *Machine) addThread(list *threadList, pc int, caps []int, pos int, input []byte) {
	m.addStack = append(m.addStack[:0], addTask{pc, caps})
	for len(m.addStack) > 0 {
		top := m.addStack[len(m.addStack)-1]
		m.addStack = m.addStack[:len(m.addStack)-1]
		pc, caps := top.pc, top.caps

		if list.contains(pc) {
			continue
		}
		list.mark(pc)

		inst := m.prog.Insts[pc]
		switch inst.Op {
		case compiler.OpJump:
			m.addStack = append(m.addStack, addTask{inst.X, caps})
		case compiler.OpSplit:
			m.addStack = append(m.addStack, addTask{inst.Y, caps})
			m.addStack = append(m.addStack, addTask{inst.X, caps})
		case compiler.OpSave:
			nc := cloneCaps(caps)
			if inst.Slot >= 0 && inst.Slot < len(nc) {
				nc[inst.Slot] = pos
			}
			m.addStack = append(m.addStack, addTask{pc + 1, nc})
		case compiler.OpEmptyLook:
			if satisfiesLook(inst.Look, pos, input) {
				m.addStack = append(m.addStack, addTask{pc + 1, caps})
			}
		default: // OpCharLit, OpCharClass, OpAny, OpAnyNoNL, OpMatch
			list.dense = append(list.dense, thread{pc: pc, caps: caps})
		}
	}
}

func decodeRuneAt(input []byte, pos int) (rune, int) {
	if pos >= len(input) {
		return utf8.RuneError, 0
	}
	r, width := utf8.DecodeRune(input[pos:])
	return r, width
}

func decodeLastRuneBefore(input []byte, pos int) rune {
	if pos <= 0 {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRune(input[:pos])
	return r
}

func runeEqual(want, got rune, foldCase bool) bool {
	if want == got {
		return true
	}
	if !foldCase {
		return false
	}
	for _, f := range unicode.FoldOrbit(want) {
		if f == got {
			return true
		}
	}
	return false
}

func inClass(ranges []unicode.Range, r rune) bool {
	lo, hi := 0, len(ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		rg := ranges[mid]
		switch {
		case r < rg.Lo:
			hi = mid - 1
		case r > rg.Hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

func satisfiesLook(look compiler.LookKind, pos int, input []byte) bool {
	switch look {
	case compiler.LookBeginText:
		return pos == 0
	case compiler.LookEndText:
		return pos == len(input)
	case compiler.LookBeginLine:
		return pos == 0 || decodeLastRuneBefore(input, pos) == '\n'
	case compiler.LookEndLine:
		r, _ := decodeRuneAt(input, pos)
		return pos == len(input) || r == '\n'
	case compiler.LookWordBoundary:
		return isWordRune(decodeLastRuneBefore(input, pos)) != isWordRune(runeAt(input, pos))
	case compiler.LookNotWordBoundary:
		return isWordRune(decodeLastRuneBefore(input, pos)) == isWordRune(runeAt(input, pos))
	}
	return false
}

func runeAt(input []byte, pos int) rune {
	r, _ := decodeRuneAt(input, pos)
	return r
}

// isWordRune matches the ASCII word-character definition used by \w, the
// same set the parser's charclass table uses, so \b is consistent with \w.
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z')
}
