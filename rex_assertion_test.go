package rex

import (
	"strings"
	"testing"
)

// TestWordBoundaries tests \b and \B
func TestWordBoundaries(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		// \b - word boundary
		{"\\bword\\b", "word", true},
		{"\\bword\\b", "word.", true},
		{"\\bword\\b", " word ", true},
		{"\\bword\\b", "sword", false},
		{"\\bword\\b", "words", false},
		{"\\bword\\b", "wording", false},

		// Start boundary
		{"\\bcat", "cat", true},
		{"\\bcat", "category", true},
		{"\\bcat", "scat", false},

		// End boundary
		{"cat\\b", "cat", true},
		{"cat\\b", "scat", true},
		{"cat\\b", "cats", false},

		// \B - NOT a word boundary
		{"\\Bcat", "cat", false},
		{"\\Bcat", "scat", true},
		{"cat\\B", "cats", true},
		{"cat\\B", "cat", false},

		// Complex patterns
		{"\\b\\d+\\b", "123", true},
		{"\\b\\d+\\b", "abc123def", false},
		{"\\b\\w+\\b", "hello world", true},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got := re.MatchString(tt.input)
		if got != tt.want {
			t.Errorf("MatchString(%q, %q) = %v; want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

// TestStringAnchors tests \A and \z, which anchor to the absolute
// start/end of the text regardless of multiline mode, unlike ^ and $.
func TestStringAnchors(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"\\Astart", "start", true},
		{"\\Astart", "\nstart", false},
		{"end\\z", "end", true},
		{"end\\z", "end\n", false},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got := re.MatchString(tt.input)
		if got != tt.want {
			t.Errorf("MatchString(%q, %q) = %v; want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

// TestConsecutiveWordBoundaries tests repeated \b against the same position
func TestConsecutiveWordBoundaries(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		// Empty string: no word characters, therefore no word boundaries
		{`\b`, "", false},
		{`\b\b`, "", false},
		{`\b\b\b\b`, "", false},

		// Single word char: has boundaries at start and end
		{`\b`, "a", true},
		{`\b\b`, "a", true},
		{`\b\b\b\b`, "a", true},

		// Two word chars: boundaries at positions 0 and 2
		{`\b`, "ab", true},
		{`\b\b`, "ab", true},

		// Word boundary only exists at transitions
		{`\b`, "a b", true},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got := re.MatchString(tt.input)
		if got != tt.want {
			t.Errorf("Pattern %q on %q: got %v; want %v",
				tt.pattern, tt.input, got, tt.want)
		}
	}
}

// TestZeroWidthAssertionPositions tests that zero-width assertions match at
// the right position and never consume input.
func TestZeroWidthAssertionPositions(t *testing.T) {
	re := MustCompile("^start")
	idx := re.FindStringIndex("start here")
	if idx == nil || idx[0] != 0 || idx[1] != 5 {
		t.Errorf("^start = %v, want [0 5]", idx)
	}

	re2 := MustCompile("end$")
	idx2 := re2.FindStringIndex("hello world end")
	if idx2 == nil || idx2[1] != 15 {
		t.Errorf("end$ = %v, want a match ending at 15", idx2)
	}

	re3 := MustCompile("\\b")
	match := re3.FindString("abc")
	if match != "" {
		t.Errorf("Word boundary should return empty string, got %q", match)
	}
}

// TestMatchReader tests matching from an io.Reader
func TestMatchReader(t *testing.T) {
	re := MustCompile("hello world")
	matched, err := re.MatchReader(strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("MatchReader error: %v", err)
	}
	if !matched {
		t.Error("MatchReader failed to match")
	}
}
