package rex

import (
	"rex/internal/compiler"
	"rex/internal/prefilter"
	"rex/internal/unicode"
	"rex/internal/vm"
)

// Program, Inst, OpCode, LookKind and Range are aliases for the
// compiler's and unicode table's types, exported here so that code
// generated by cmd/rexgen (which lives outside this module's internal/
// tree once copied into a consumer's repository) can construct a Program
// literal without reaching into an internal package. Building one by
// hand is only ever done by generated code; ordinary callers use Compile.
type (
	Program  = compiler.Program
	Inst     = compiler.Inst
	OpCode   = compiler.OpCode
	LookKind = compiler.LookKind
	Range    = unicode.Range
)

const (
	OpCharLit   = compiler.OpCharLit
	OpCharClass = compiler.OpCharClass
	OpAny       = compiler.OpAny
	OpAnyNoNL   = compiler.OpAnyNoNL
	OpEmptyLook = compiler.OpEmptyLook
	OpSave      = compiler.OpSave
	OpJump      = compiler.OpJump
	OpSplit     = compiler.OpSplit
	OpMatch     = compiler.OpMatch
)

const (
	LookBeginText       = compiler.LookBeginText
	LookEndText         = compiler.LookEndText
	LookBeginLine       = compiler.LookBeginLine
	LookEndLine         = compiler.LookEndLine
	LookWordBoundary    = compiler.LookWordBoundary
	LookNotWordBoundary = compiler.LookNotWordBoundary
)

// FromProgram builds a Regexp directly from an already-compiled Program,
// skipping the parse and compile stages entirely. This is the embedding
// path cmd/rexgen generates calls into: the generated Program literal and
// the dynamic Compile(expr) path run through the identical vm.Machine, so
// the two can never disagree on a match result.
func FromProgram(expr string, prog *Program) *Regexp {
	names := make([]string, prog.NumCaps)
	for name, idx := range prog.Names {
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
	return re
}
