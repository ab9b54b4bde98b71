package rex

import "strings"

// ReplaceAll returns a copy of src in which every match of re has been
// replaced by repl. Inside repl, $ signs are interpreted as in Expand:
// $1 is the text of the first submatch, $name a named submatch, $$ a
// literal dollar sign.
func (re *Regexp) ReplaceAll(src, repl []byte) []byte {
	return []byte(re.replaceAllFunc(string(src), func(caps []int) string {
		return string(re.expand(string(repl), string(src), caps))
	}))
}

// ReplaceAllString is ReplaceAll for string arguments.
func (re *Regexp) ReplaceAllString(src, repl string) string {
	return re.replaceAllFunc(src, func(caps []int) string {
		return re.expand(repl, src, caps)
	})
}

// ReplaceAllLiteral is ReplaceAll but repl is inserted verbatim, with no
// $ expansion.
func (re *Regexp) ReplaceAllLiteral(src, repl []byte) []byte {
	return []byte(re.ReplaceAllLiteralString(string(src), string(repl)))
}

// ReplaceAllLiteralString is ReplaceAllLiteral for string arguments.
func (re *Regexp) ReplaceAllLiteralString(src, repl string) string {
	return re.replaceAllFunc(src, func([]int) string { return repl })
}

// ReplaceAllFunc replaces every match of re in src with the return value
// of repl applied to the matched text.
func (re *Regexp) ReplaceAllFunc(src []byte, repl func([]byte) []byte) []byte {
	return []byte(re.replaceAllFunc(string(src), func(caps []int) string {
		return string(repl([]byte(src[caps[0]:caps[1]])))
	}))
}

// ReplaceAllStringFunc is ReplaceAllFunc for string arguments.
func (re *Regexp) ReplaceAllStringFunc(src string, repl func(string) string) string {
	return re.replaceAllFunc(src, func(caps []int) string {
		return repl(src[caps[0]:caps[1]])
	})
}

// replaceAllFunc walks every non-overlapping match of re in src in order,
// calling build with that match's raw capture slots to produce its
// replacement text.
func (re *Regexp) replaceAllFunc(src string, build func(caps []int) string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if matches == nil {
		return src
	}

	var out strings.Builder
	lastEnd := 0
	for _, caps := range matches {
		out.WriteString(src[lastEnd:caps[0]])
		out.WriteString(build(caps))
		lastEnd = caps[1]
	}
	out.WriteString(src[lastEnd:])
	return out.String()
}

// Expand appends template to dst, substituting variables using the byte
// slices matched from src and the capture-slot pairs in caps, as
// FindSubmatchIndex would return them. See ReplaceAll for the template
// syntax.
func (re *Regexp) Expand(dst, template, src []byte, caps []int) []byte {
	result := stringsFromCaps(string(src), caps)
	return append(dst, expandTemplate(string(template), result, re.SubexpIndex)...)
}

// expand is the string-only convenience path used by the ReplaceAll*
// family above, re-deriving the capture texts from caps each call.
func (re *Regexp) expand(template, src string, caps []int) string {
	result := stringsFromCaps(src, caps)
	return expandTemplate(template, result, re.SubexpIndex)
}

// expandTemplate scans template once, substituting $1, $name, and
// ${name} references against result (result[0] is the whole match).
// Unknown references expand to the empty string, matching the stdlib
// regexp package's Expand semantics.
func expandTemplate(template string, result []string, subexpIndex func(string) int) string {
	var out strings.Builder
	i := 0
	for i < len(template) {
		if template[i] != '$' {
			out.WriteByte(template[i])
			i++
			continue
		}
		i++
		if i >= len(template) {
			out.WriteByte('$')
			break
		}
		if template[i] == '$' {
			out.WriteByte('$')
			i++
			continue
		}
		if template[i] == '{' {
			i++
			nameStart := i
			for i < len(template) && template[i] != '}' {
				i++
			}
			if i >= len(template) {
				out.WriteString("${")
				out.WriteString(template[nameStart:])
				break
			}
			writeGroup(&out, template[nameStart:i], result, subexpIndex)
			i++ // skip '}'
			continue
		}
		nameStart := i
		for i < len(template) && isIdentChar(template[i]) {
			i++
		}
		if i == nameStart {
			out.WriteByte('$')
			continue
		}
		writeGroup(&out, template[nameStart:i], result, subexpIndex)
	}
	return out.String()
}

func writeGroup(out *strings.Builder, name string, result []string, subexpIndex func(string) int) {
	idx := -1
	if name != "" && isAllDigits(name) {
		idx = 0
		for _, c := range name {
			idx = idx*10 + int(c-'0')
		}
	} else {
		idx = subexpIndex(name)
	}
	if idx >= 0 && idx < len(result) {
		out.WriteString(result[idx])
	}
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
