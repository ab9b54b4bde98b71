package rex

import "unicode/utf8"

// MatchString reports whether s contains any match of re.
func (re *Regexp) MatchString(s string) bool {
	return re.searchFrom([]byte(s), 0) != nil
}

// Match reports whether b contains any match of re.
func (re *Regexp) Match(b []byte) bool {
	return re.searchFrom(b, 0) != nil
}

// FindStringIndex returns a two-element slice holding the byte offsets of
// the leftmost match of re in s, or nil if there is no match.
func (re *Regexp) FindStringIndex(s string) []int {
	return re.FindIndex([]byte(s))
}

// FindIndex returns a two-element slice holding the byte offsets of the
// leftmost match of re in b, or nil if there is no match.
func (re *Regexp) FindIndex(b []byte) []int {
	caps := re.searchFrom(b, 0)
	if caps == nil {
		return nil
	}
	return []int{caps[0], caps[1]}
}

// FindString returns the text of the leftmost match of re in s, or "" if
// there is no match. A caller cannot distinguish "" from a genuine
// zero-length match this way; use FindStringIndex for that.
func (re *Regexp) FindString(s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// Find returns the text of the leftmost match of re in b, or nil if there
// is no match.
func (re *Regexp) Find(b []byte) []byte {
	loc := re.FindIndex(b)
	if loc == nil {
		return nil
	}
	return b[loc[0]:loc[1]]
}

// FindSubmatchIndex returns the byte offsets of the leftmost match and its
// subexpressions. A -1 pair within the result means that subexpression
// did not participate in the match; a nil result means there was no
// match at all.
func (re *Regexp) FindSubmatchIndex(b []byte) []int {
	return re.searchFrom(b, 0)
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string argument.
func (re *Regexp) FindStringSubmatchIndex(s string) []int {
	return re.searchFrom([]byte(s), 0)
}

// FindSubmatch returns the leftmost match and its subexpressions' text. A
// nil element means that subexpression did not participate in the match.
func (re *Regexp) FindSubmatch(b []byte) [][]byte {
	caps := re.FindSubmatchIndex(b)
	if caps == nil {
		return nil
	}
	return bytesFromCaps(b, caps)
}

// FindStringSubmatch is FindSubmatch for a string argument.
func (re *Regexp) FindStringSubmatch(s string) []string {
	caps := re.FindStringSubmatchIndex(s)
	if caps == nil {
		return nil
	}
	return stringsFromCaps(s, caps)
}

// FindAllIndex is the 'All' version of FindIndex; it returns a slice of
// all successive matches. n < 0 means return every match.
func (re *Regexp) FindAllIndex(b []byte, n int) [][]int {
	locs := re.FindAllSubmatchIndex(b, n)
	if locs == nil {
		return nil
	}
	out := make([][]int, len(locs))
	for i, caps := range locs {
		out[i] = []int{caps[0], caps[1]}
	}
	return out
}

// FindAllStringIndex is FindAllIndex for a string argument.
func (re *Regexp) FindAllStringIndex(s string, n int) [][]int {
	return re.FindAllIndex([]byte(s), n)
}

// FindAllSubmatchIndex is the 'All' version of FindSubmatchIndex.
func (re *Regexp) FindAllSubmatchIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	var out [][]int
	pos := 0
	for (n < 0 || len(out) < n) && pos <= len(b) {
		caps := re.searchFrom(b, pos)
		if caps == nil {
			break
		}
		out = append(out, caps)
		if caps[1] == caps[0] {
			_, w := utf8.DecodeRune(b[caps[1]:])
			if w == 0 {
				break
			}
			pos = caps[1] + w
		} else {
			pos = caps[1]
		}
	}
	return out
}

// FindAllStringSubmatchIndex is FindAllSubmatchIndex for a string argument.
func (re *Regexp) FindAllStringSubmatchIndex(s string, n int) [][]int {
	return re.FindAllSubmatchIndex([]byte(s), n)
}

// FindAll is the 'All' version of Find.
func (re *Regexp) FindAll(b []byte, n int) [][]byte {
	locs := re.FindAllIndex(b, n)
	if locs == nil {
		return nil
	}
	out := make([][]byte, len(locs))
	for i, loc := range locs {
		out[i] = b[loc[0]:loc[1]]
	}
	return out
}

// FindAllString is FindAll for a string argument.
func (re *Regexp) FindAllString(s string, n int) []string {
	locs := re.FindAllStringIndex(s, n)
	if locs == nil {
		return nil
	}
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = s[loc[0]:loc[1]]
	}
	return out
}

// FindAllSubmatch is the 'All' version of FindSubmatch.
func (re *Regexp) FindAllSubmatch(b []byte, n int) [][][]byte {
	locs := re.FindAllSubmatchIndex(b, n)
	if locs == nil {
		return nil
	}
	out := make([][][]byte, len(locs))
	for i, caps := range locs {
		out[i] = bytesFromCaps(b, caps)
	}
	return out
}

// FindAllStringSubmatch is the 'All' version of FindStringSubmatch.
func (re *Regexp) FindAllStringSubmatch(s string, n int) [][]string {
	locs := re.FindAllStringSubmatchIndex(s, n)
	if locs == nil {
		return nil
	}
	out := make([][]string, len(locs))
	for i, caps := range locs {
		out[i] = stringsFromCaps(s, caps)
	}
	return out
}

func bytesFromCaps(b []byte, caps []int) [][]byte {
	out := make([][]byte, len(caps)/2)
	for i := range out {
		lo, hi := caps[2*i], caps[2*i+1]
		if lo >= 0 && hi >= 0 {
			out[i] = b[lo:hi]
		}
	}
	return out
}

func stringsFromCaps(s string, caps []int) []string {
	out := make([]string, len(caps)/2)
	for i := range out {
		lo, hi := caps[2*i], caps[2*i+1]
		if lo >= 0 && hi >= 0 {
			out[i] = s[lo:hi]
		}
	}
	return out
}
