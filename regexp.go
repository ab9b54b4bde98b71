// Package rex is a regular expression engine built around Pike's
// NFA-simulation algorithm: every pattern compiles to a fixed-size program,
// and matching that program against any input runs in time proportional to
// program size times input size, never more, regardless of pattern shape.
// There is no backtracking and nothing in this package can exhibit the
// catastrophic-backtracking slowdowns a naive recursive matcher can.
//
// Syntax is the familiar RE2/PCRE-ish dialect: literals, "." , character
// classes (including \d \s \w and \p{Name}), anchors, the four quantifiers
// and their lazy forms, counted repetition, alternation, and capturing
// and non-capturing groups. Backreferences and lookaround are not
// supported; allowing either would reintroduce the exponential worst case
// this package exists to avoid.
package rex

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"rex/internal/compiler"
	"rex/internal/prefilter"
	"rex/internal/syntax"
	"rex/internal/vm"
)

// Flags controls how a pattern is parsed. The zero value is the default
// dialect (case-sensitive, "." excludes newline, ^/$ anchor only the
// whole text).
type Flags = syntax.Flags

const (
	// CaseInsensitive makes literals and classes match regardless of case.
	CaseInsensitive Flags = syntax.FlagCaseInsensitive
	// Multiline makes ^ and $ match at line boundaries, not just text boundaries.
	Multiline Flags = syntax.FlagMultiline
	// DotNL makes "." match newline too.
	DotNL Flags = syntax.FlagDotNL
	// SwapGreed inverts the default greediness of every quantifier.
	SwapGreed Flags = syntax.FlagSwapGreed
	// Ungreedy is an alias for SwapGreed, matching the "U" flag's name in
	// the PCRE-derived dialects this syntax draws from.
	Ungreedy Flags = syntax.FlagSwapGreed
)

// Regexp is a compiled regular expression. A *Regexp is safe for
// concurrent use by multiple goroutines.
type Regexp struct {
	expr        string
	prog        *compiler.Program
	pf          prefilter.Prefilter
	subexpNames []string
	vmPool      sync.Pool
}

// Compile parses a pattern and returns a compiled Regexp, or a
// *syntax.Error describing the first syntax problem found.
func Compile(expr string) (*Regexp, error) {
	return CompileFlags(expr, 0)
}

// CompileFlags is Compile with explicit dialect flags applied to the whole
// pattern (equivalent to prefixing expr with the corresponding inline
// (?flags) group).
func CompileFlags(expr string, flags Flags) (*Regexp, error) {
	p := syntax.NewParser(expr, flags, syntax.Limits{})
	result, err := p.Parse()
	if err != nil {
		return nil, err
	}

	prog, err := compiler.Compile(result.AST, result.NumCaps, result.Names)
	if err != nil {
		return nil, err
	}

	names := make([]string, prog.NumCaps)
	for name, idx := range result.Names {
		if idx < len(names) {
			names[idx] = name
		}
	}

	re := &Regexp{
		expr:        expr,
		prog:        prog,
		pf:          prefilter.Build(prog),
		subexpNames: names,
	}
	re.vmPool.New = func() interface{} { return vm.New(prog) }
	return re, nil
}

// MustCompile is like Compile but panics if expr cannot be parsed. It
// simplifies safe initialization of package-level Regexps.
func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("rex: Compile(%q): %v", expr, err))
	}
	return re
}

// MustCompileFlags is MustCompile with explicit dialect flags.
func MustCompileFlags(expr string, flags Flags) *Regexp {
	re, err := CompileFlags(expr, flags)
	if err != nil {
		panic(fmt.Sprintf("rex: CompileFlags(%q): %v", expr, err))
	}
	return re
}

// String returns the source text used to compile the regular expression.
func (re *Regexp) String() string {
	return re.expr
}

// NumSubexp returns the number of parenthesized subexpressions in this Regexp.
func (re *Regexp) NumSubexp() int {
	return len(re.subexpNames) - 1
}

// SubexpNames returns the names of the parenthesized subexpressions in
// this Regexp. The first element is always the empty string, naming the
// whole match.
func (re *Regexp) SubexpNames() []string {
	return re.subexpNames
}

// SubexpIndex returns the index of the first subexpression with the given
// name, or -1 if there is no subexpression with that name.
func (re *Regexp) SubexpIndex(name string) int {
	for i, n := range re.subexpNames {
		if n == name {
			return i
		}
	}
	return -1
}

// LiteralPrefix returns a literal string that must begin any match of re,
// and whether that literal is the entire pattern (in which case matching
// reduces to a plain substring search).
func (re *Regexp) LiteralPrefix() (prefix string, complete bool) {
	if re.prog.Prefix == "" {
		return "", false
	}
	// A pure literal compiles to Save 0, one CharLit per rune, Save 1, Match.
	return re.prog.Prefix, !re.prog.PrefixFold && len(re.prog.Insts) == 3+utf8.RuneCountInString(re.prog.Prefix)
}

func (re *Regexp) getMachine() *vm.Machine {
	return re.vmPool.Get().(*vm.Machine)
}

func (re *Regexp) putMachine(m *vm.Machine) {
	re.vmPool.Put(m)
}

// searchFrom runs one leftmost-first search over b starting no earlier
// than from, applying the compiled prefilter (if any) first. It returns
// the raw capture-slot slice (2*(NumSubexp+1) ints, -1 for an unset slot)
// or nil if there is no match at or after from.
func (re *Regexp) searchFrom(b []byte, from int) []int {
	start := from
	if re.pf != nil {
		start = re.pf.Find(b, from)
		if start < 0 {
			return nil
		}
	}
	m := re.getMachine()
	caps := m.Search(b, start)
	re.putMachine(m)
	return caps
}
