// Command rexgen compiles a pattern at build time and emits a Go source
// file that embeds the resulting Program as a literal, for use with
// go:generate in place of an rex.Compile call at process startup.
//
// Usage:
//
//	rexgen -pattern 'https?://\S+' -name URL -out url_program.go -package scanner
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dave/jennifer/jen"

	"rex/internal/compiler"
	"rex/internal/syntax"
	"rex/internal/unicode"
)

func main() {
	var (
		pattern  = flag.String("pattern", "", "regular expression to compile (required)")
		name     = flag.String("name", "", "exported identifier prefix for the generated Program and Regexp (required)")
		pkg      = flag.String("package", "main", "package name for the generated file")
		out      = flag.String("out", "", "output file path (required)")
		flagStr  = flag.String("flags", "", "dialect flags to apply: any of i, m, s, U")
		maxRep   = flag.Int("max-repeat", 0, "override the counted-repetition limit (0 = default)")
		maxDepth = flag.Int("max-nest-depth", 0, "override the group-nesting limit (0 = default)")
	)
	flag.Parse()

	if *pattern == "" || *name == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "rexgen: -pattern, -name and -out are all required")
		flag.Usage()
		os.Exit(2)
	}

	flags, err := parseFlagLetters(*flagStr)
	if err != nil {
		log.Fatalf("rexgen: %v", err)
	}

	limits := syntax.Limits{MaxRepeat: *maxRep, MaxNestDepth: *maxDepth}
	p := syntax.NewParser(*pattern, flags, limits)
	result, err := p.Parse()
	if err != nil {
		log.Fatalf("rexgen: parsing %q: %v", *pattern, err)
	}

	prog, err := compiler.Compile(result.AST, result.NumCaps, result.Names)
	if err != nil {
		log.Fatalf("rexgen: compiling %q: %v", *pattern, err)
	}

	log.Printf("rexgen: %q compiled to %d instructions, %d capture groups", *pattern, len(prog.Insts), prog.NumSubexp)
	if prog.Prefix != "" {
		log.Printf("rexgen: extracted literal prefix %q", prog.Prefix)
	}
	if len(prog.LiteralSet) > 0 {
		log.Printf("rexgen: pattern reduces to a %d-way literal alternation", len(prog.LiteralSet))
	}

	file := renderFile(*pkg, *name, *pattern, prog)
	if err := file.Save(*out); err != nil {
		log.Fatalf("rexgen: writing %s: %v", *out, err)
	}
	log.Printf("rexgen: wrote %s", *out)
}

func parseFlagLetters(s string) (syntax.Flags, error) {
	var flags syntax.Flags
	for _, c := range s {
		switch c {
		case 'i':
			flags |= syntax.FlagCaseInsensitive
		case 'm':
			flags |= syntax.FlagMultiline
		case 's':
			flags |= syntax.FlagDotNL
		case 'U':
			flags |= syntax.FlagSwapGreed
		default:
			return 0, fmt.Errorf("unknown flag letter %q", c)
		}
	}
	return flags, nil
}

// renderFile builds the generated source file with jennifer: a package
// clause, the rex import, a Program literal, and the Regexp built from it.
func renderFile(pkg, name, pattern string, prog *compiler.Program) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by rexgen. DO NOT EDIT.")

	programVar := name + "Program"

	f.Var().Id(programVar).Op("=").Op("&").Qual("rex", "Program").Values(programFields(prog))
	f.Line()

	f.Var().Id(name).Op("=").Qual("rex", "FromProgram").Call(jen.Lit(pattern), jen.Id(programVar))

	return f
}

func programFields(prog *compiler.Program) jen.Dict {
	d := jen.Dict{
		jen.Id("Insts"):         instsLiteral(prog.Insts),
		jen.Id("NumCaps"):       jen.Lit(prog.NumCaps),
		jen.Id("NumSubexp"):     jen.Lit(prog.NumSubexp),
		jen.Id("AnchoredBegin"): jen.Lit(prog.AnchoredBegin),
		jen.Id("AnchoredEnd"):   jen.Lit(prog.AnchoredEnd),
	}
	if prog.Prefix != "" {
		d[jen.Id("Prefix")] = jen.Lit(prog.Prefix)
		d[jen.Id("PrefixFold")] = jen.Lit(prog.PrefixFold)
	}
	if len(prog.Names) > 0 {
		names := jen.Dict{}
		for k, v := range prog.Names {
			names[jen.Lit(k)] = jen.Lit(v)
		}
		d[jen.Id("Names")] = jen.Map(jen.String()).Int().Values(names)
	}
	if len(prog.LiteralSet) > 0 {
		var lits []jen.Code
		for _, lit := range prog.LiteralSet {
			lits = append(lits, jen.Index().Byte().Call(jen.Lit(string(lit))))
		}
		d[jen.Id("LiteralSet")] = jen.Index().Index().Byte().Values(lits...)
	}
	return d
}

func instsLiteral(insts []compiler.Inst) *jen.Statement {
	elems := make([]jen.Code, len(insts))
	for i, inst := range insts {
		elems[i] = instLiteral(inst)
	}
	return jen.Index().Qual("rex", "Inst").Values(elems...)
}

func instLiteral(inst compiler.Inst) jen.Code {
	d := jen.Dict{
		jen.Id("Op"): opCode(inst.Op),
	}
	switch inst.Op {
	case compiler.OpCharLit:
		d[jen.Id("Rune")] = jen.Lit(inst.Rune)
		if inst.FoldCase {
			d[jen.Id("FoldCase")] = jen.Lit(true)
		}
	case compiler.OpCharClass:
		d[jen.Id("Ranges")] = rangesLiteral(inst.Ranges)
	case compiler.OpEmptyLook:
		d[jen.Id("Look")] = lookKind(inst.Look)
	case compiler.OpSave:
		d[jen.Id("Slot")] = jen.Lit(inst.Slot)
	case compiler.OpJump:
		d[jen.Id("X")] = jen.Lit(inst.X)
	case compiler.OpSplit:
		d[jen.Id("X")] = jen.Lit(inst.X)
		d[jen.Id("Y")] = jen.Lit(inst.Y)
	}
	return jen.Values(d)
}

func rangesLiteral(ranges []unicode.Range) *jen.Statement {
	elems := make([]jen.Code, len(ranges))
	for i, r := range ranges {
		elems[i] = jen.Values(jen.Dict{
			jen.Id("Lo"): jen.Lit(r.Lo),
			jen.Id("Hi"): jen.Lit(r.Hi),
		})
	}
	return jen.Index().Qual("rex", "Range").Values(elems...)
}

func opCode(op compiler.OpCode) jen.Code {
	names := map[compiler.OpCode]string{
		compiler.OpCharLit:   "OpCharLit",
		compiler.OpCharClass: "OpCharClass",
		compiler.OpAny:       "OpAny",
		compiler.OpAnyNoNL:   "OpAnyNoNL",
		compiler.OpEmptyLook: "OpEmptyLook",
		compiler.OpSave:      "OpSave",
		compiler.OpJump:      "OpJump",
		compiler.OpSplit:     "OpSplit",
		compiler.OpMatch:     "OpMatch",
	}
	return jen.Qual("rex", names[op])
}

func lookKind(l compiler.LookKind) jen.Code {
	names := map[compiler.LookKind]string{
		compiler.LookBeginText:       "LookBeginText",
		compiler.LookEndText:         "LookEndText",
		compiler.LookBeginLine:       "LookBeginLine",
		compiler.LookEndLine:         "LookEndLine",
		compiler.LookWordBoundary:    "LookWordBoundary",
		compiler.LookNotWordBoundary: "LookNotWordBoundary",
	}
	return jen.Qual("rex", names[l])
}
