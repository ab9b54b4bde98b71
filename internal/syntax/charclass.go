package syntax

import (
	"strconv"

	"rex/internal/unicode"
)

var (
	digitRanges = []unicode.Range{{Lo: '0', Hi: '9'}}
	spaceRanges = []unicode.Range{{Lo: '\t', Hi: '\r'}, {Lo: ' ', Hi: ' '}}
	wordRanges  = []unicode.Range{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: '_', Hi: '_'}, {Lo: 'a', Hi: 'z'}}
)

// buildClass folds (if casei) and returns a Class node for the given raw,
// possibly-overlapping ranges, applying negation last: normalize, then
// fold, then negate.
func buildClass(ranges []unicode.Range, negated, casei bool) Node {
	norm := unicode.Normalize(ranges)
	if casei {
		norm = unicode.FoldRanges(norm)
	}
	if negated {
		norm = unicode.Negate(norm)
	}
	return Class{Ranges: norm}
}

// parseEscape parses the portion of an escape after the already-consumed
// backslash, in atom (non-class) context.
func (p *Parser) parseEscape() (Node, error) {
	if p.eof() {
		return nil, p.errAt(ErrUnexpectedEOF, p.pos, "trailing backslash")
	}
	start := p.pos
	c := p.peekByte()

	switch c {
	case 'd', 'D', 's', 'S', 'w', 'W':
		p.pos++
		return p.shorthandClass(c), nil
	case 'p', 'P':
		p.pos++
		return p.parseUnicodeClassEscape(c == 'P')
	case 'b':
		p.pos++
		return Assertion{Op: AssertWordBoundary}, nil
	case 'B':
		p.pos++
		return Assertion{Op: AssertNotWordBoundary}, nil
	case 'A':
		p.pos++
		return Assertion{Op: AssertBeginText}, nil
	case 'z':
		p.pos++
		return Assertion{Op: AssertEndText}, nil
	}

	r, err := p.literalEscapeRune(start)
	if err != nil {
		return nil, err
	}
	return Literal{Rune: r, FoldCase: p.flags.has(FlagCaseInsensitive)}, nil
}

// literalEscapeRune handles every escape that resolves to a single literal
// codepoint: control escapes, \xHH / \x{...} / \uHHHH / \UHHHHHHHH, and
// backslash-quoted punctuation. Octal escapes (\0, \012) are explicitly
// rejected rather than treated as backreferences or literals, since
// backreferences are a non-goal of this engine.
func (p *Parser) literalEscapeRune(escStart int) (rune, error) {
	c := p.nextRune()
	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case 'f':
		return '\f', nil
	case 'v':
		return '\v', nil
	case 'a':
		return '\a', nil
	case 'x':
		return p.parseHexEscape(escStart)
	case 'u':
		return p.parseFixedHex(escStart, 4)
	case 'U':
		return p.parseFixedHex(escStart, 8)
	case '0':
		return 0, p.errAt(ErrInvalidEscape, escStart, "octal escapes are not supported")
	}
	if c >= '1' && c <= '9' {
		return 0, p.errAt(ErrInvalidEscape, escStart, "backreferences are not supported")
	}
	if isASCIIPunct(c) {
		return c, nil
	}
	return 0, p.errAt(ErrInvalidEscape, escStart, "unknown escape")
}

func isASCIIPunct(r rune) bool {
	return r > 0 && r < 0x80 && !(r >= '0' && r <= '9') && !(r >= 'A' && r <= 'Z') &&
		!(r >= 'a' && r <= 'z') && r != ' '
}

// parseHexEscape parses \xHH or \x{H...H} (one or more hex digits in
// braces, with a value of at most MaxRune).
func (p *Parser) parseHexEscape(escStart int) (rune, error) {
	if p.consumeByte('{') {
		start := p.pos
		for !p.eof() && p.peekByte() != '}' {
			p.pos++
		}
		if p.eof() {
			return 0, p.errAt(ErrInvalidEscape, escStart, "unclosed \\x{...}")
		}
		hex := p.pattern[start:p.pos]
		p.pos++ // consume '}'
		return parseHexRune(hex, escStart, p)
	}
	if p.pos+2 > len(p.pattern) {
		return 0, p.errAt(ErrInvalidEscape, escStart, "truncated \\xHH")
	}
	hex := p.pattern[p.pos : p.pos+2]
	p.pos += 2
	return parseHexRune(hex, escStart, p)
}

func (p *Parser) parseFixedHex(escStart int, n int) (rune, error) {
	if p.pos+n > len(p.pattern) {
		return 0, p.errAt(ErrInvalidEscape, escStart, "truncated hex escape")
	}
	hex := p.pattern[p.pos : p.pos+n]
	p.pos += n
	return parseHexRune(hex, escStart, p)
}

func parseHexRune(hex string, escStart int, p *Parser) (rune, error) {
	if hex == "" {
		return 0, p.errAt(ErrInvalidEscape, escStart, "empty hex escape")
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, p.errAt(ErrInvalidEscape, escStart, "bad hex digits")
	}
	if v > unicode.MaxRune {
		return 0, p.errAt(ErrInvalidCodepoint, escStart, "codepoint out of range")
	}
	return rune(v), nil
}

func (p *Parser) shorthandClass(c byte) Node {
	casei := p.flags.has(FlagCaseInsensitive)
	switch c {
	case 'd':
		return buildClass(digitRanges, false, casei)
	case 'D':
		return buildClass(digitRanges, true, casei)
	case 's':
		return buildClass(spaceRanges, false, casei)
	case 'S':
		return buildClass(spaceRanges, true, casei)
	case 'w':
		return buildClass(wordRanges, false, casei)
	default: // 'W'
		return buildClass(wordRanges, true, casei)
	}
}

func (p *Parser) parseUnicodeClassEscape(negated bool) (Node, error) {
	start := p.pos
	var name string
	if p.consumeByte('{') {
		nameStart := p.pos
		for !p.eof() && p.peekByte() != '}' {
			p.pos++
		}
		if p.eof() {
			return nil, p.errAt(ErrUnknownUnicodeClass, start, "unclosed \\p{...}")
		}
		name = p.pattern[nameStart:p.pos]
		p.pos++
	} else {
		if p.eof() {
			return nil, p.errAt(ErrUnknownUnicodeClass, start, "missing class name")
		}
		name = string(p.nextRune())
	}
	if name != "" && name[0] == '^' {
		negated = !negated
		name = name[1:]
	}
	ranges, ok := unicode.ClassRanges(name)
	if !ok {
		return nil, p.errAt(ErrUnknownUnicodeClass, start, "unknown unicode class "+name)
	}
	return buildClass(ranges, negated, p.flags.has(FlagCaseInsensitive)), nil
}

// parseClass parses a bracket expression body after the already-consumed
// '['.
func (p *Parser) parseClass() (Node, error) {
	classStart := p.pos - 1
	negated := p.consumeByte('^')

	var ranges []unicode.Range
	for {
		if p.eof() {
			return nil, p.errAt(ErrUnclosedClass, classStart, "missing ]")
		}
		if p.peekByte() == ']' {
			p.pos++
			break
		}

		lo, loRanges, err := p.parseClassItem(classStart)
		if err != nil {
			return nil, err
		}
		if loRanges != nil {
			// A shorthand (\d, \p{X}, ...) inside a class contributes its
			// own ranges directly; it cannot be the start of a "lo-hi" range.
			ranges = append(ranges, loRanges...)
			continue
		}

		if !p.eof() && p.peekByte() == '-' && p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] != ']' {
			p.pos++ // consume '-'
			hi, hiRanges, err := p.parseClassItem(classStart)
			if err != nil {
				return nil, err
			}
			if hiRanges != nil {
				return nil, p.errAt(ErrInvalidRange, classStart, "class shorthand cannot end a range")
			}
			if hi < lo {
				return nil, p.errAt(ErrInvalidRange, classStart, "range out of order")
			}
			ranges = append(ranges, unicode.Range{Lo: lo, Hi: hi})
			continue
		}
		ranges = append(ranges, unicode.Range{Lo: lo, Hi: lo})
	}

	if len(ranges) == 0 {
		return nil, p.errAt(ErrEmptyClass, classStart, "empty character class")
	}
	return buildClass(ranges, negated, p.flags.has(FlagCaseInsensitive)), nil
}

// parseClassItem parses one member of a bracket expression: either a
// single rune (literal or escaped) returned as lo, or a shorthand class
// (\d, \s, \w, \p{X}) returned as a range slice (lo is unused then).
func (p *Parser) parseClassItem(classStart int) (lo rune, shorthand []unicode.Range, err error) {
	if p.peekByte() != '\\' {
		return p.nextRune(), nil, nil
	}
	p.pos++ // consume backslash
	if p.eof() {
		return 0, nil, p.errAt(ErrUnexpectedEOF, classStart, "trailing backslash in class")
	}
	switch p.peekByte() {
	case 'd':
		p.pos++
		return 0, digitRanges, nil
	case 'D':
		p.pos++
		return 0, unicode.Negate(unicode.Normalize(digitRanges)), nil
	case 's':
		p.pos++
		return 0, spaceRanges, nil
	case 'S':
		p.pos++
		return 0, unicode.Negate(unicode.Normalize(spaceRanges)), nil
	case 'w':
		p.pos++
		return 0, wordRanges, nil
	case 'W':
		p.pos++
		return 0, unicode.Negate(unicode.Normalize(wordRanges)), nil
	case 'p', 'P':
		neg := p.peekByte() == 'P'
		p.pos++
		node, err := p.parseUnicodeClassEscape(neg)
		if err != nil {
			return 0, nil, err
		}
		return 0, node.(Class).Ranges, nil
	}
	r, err := p.literalEscapeRune(p.pos - 1)
	return r, nil, err
}
