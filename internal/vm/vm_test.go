package vm

import (
	"testing"

	"rex/internal/compiler"
	"rex/internal/syntax"
)

func compileString(t *testing.T, pattern string) *compiler.Program {
	t.Helper()
	res, err := syntax.NewParser(pattern, 0, syntax.Limits{}).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) = %v", pattern, err)
	}
	prog, err := compiler.Compile(res.AST, res.NumCaps, res.Names)
	if err != nil {
		t.Fatalf("Compile(%q) = %v", pattern, err)
	}
	return prog
}

// search runs an unanchored search over the whole of s by trying Search at
// every byte offset until one returns a match (the façade calls Search
// once, from the prefilter's position or 0).
func search(m *Machine, s string) []int {
	input := []byte(s)
	for start := 0; start <= len(input); start++ {
		if caps := m.Search(input, start); caps != nil {
			return caps
		}
	}
	return nil
}

func TestSearchLiteralMatch(t *testing.T) {
	m := New(compileString(t, "abc"))
	caps := search(m, "xxabcyy")
	if caps == nil || caps[0] != 2 || caps[1] != 5 {
		t.Fatalf("Search = %v, want [2 5 ...]", caps)
	}
}

func TestSearchNoMatch(t *testing.T) {
	m := New(compileString(t, "abc"))
	if caps := search(m, "xyz"); caps != nil {
		t.Fatalf("Search = %v, want nil", caps)
	}
}

func TestSearchLeftmostFirstAlternationPrefersFirstBranch(t *testing.T) {
	m := New(compileString(t, "a|ab"))
	caps := m.Search([]byte("ab"), 0)
	if caps == nil || caps[1] != 1 {
		t.Fatalf("Search(a|ab, ab) end = %v, want match ending at 1 (leftmost-first prefers 'a')", caps)
	}
}

func TestSearchGreedyStarConsumesMaximal(t *testing.T) {
	m := New(compileString(t, "a*"))
	caps := m.Search([]byte("aaab"), 0)
	if caps == nil || caps[0] != 0 || caps[1] != 3 {
		t.Fatalf("Search(a*, aaab) = %v, want [0 3]", caps)
	}
}

func TestSearchLazyStarConsumesMinimal(t *testing.T) {
	m := New(compileString(t, "a*?"))
	caps := m.Search([]byte("aaab"), 0)
	if caps == nil || caps[0] != 0 || caps[1] != 0 {
		t.Fatalf("Search(a*?, aaab) = %v, want [0 0]", caps)
	}
}

func TestSearchPlusRequiresAtLeastOne(t *testing.T) {
	m := New(compileString(t, "a+"))
	if caps := m.Search([]byte("bbb"), 0); caps != nil {
		t.Fatalf("Search(a+, bbb) = %v, want nil", caps)
	}
}

func TestSearchCaptureGroups(t *testing.T) {
	m := New(compileString(t, `(\d+)-(\d+)`))
	caps := search(m, "foo 12-345 bar")
	if caps == nil {
		t.Fatal("Search = nil, want a match")
	}
	if got := string([]byte("foo 12-345 bar")[caps[2]:caps[3]]); got != "12" {
		t.Fatalf("group 1 = %q, want %q", got, "12")
	}
	if got := string([]byte("foo 12-345 bar")[caps[4]:caps[5]]); got != "345" {
		t.Fatalf("group 2 = %q, want %q", got, "345")
	}
}

func TestSearchBeginTextAnchor(t *testing.T) {
	m := New(compileString(t, `\Aabc`))
	if caps := m.Search([]byte("xabc"), 0); caps != nil {
		t.Fatalf("Search(\\Aabc, xabc) = %v, want nil", caps)
	}
	if caps := m.Search([]byte("abcx"), 0); caps == nil || caps[0] != 0 || caps[1] != 3 {
		t.Fatalf("Search(\\Aabc, abcx) = %v, want [0 3]", caps)
	}
}

func TestSearchEndTextAnchor(t *testing.T) {
	m := New(compileString(t, `abc\z`))
	if caps := m.Search([]byte("abcx"), 0); caps != nil {
		t.Fatalf("Search(abc\\z, abcx) = %v, want nil", caps)
	}
	if caps := m.Search([]byte("xabc"), 0); caps == nil || caps[0] != 1 || caps[1] != 4 {
		t.Fatalf("Search(abc\\z, xabc) = %v, want [1 4]", caps)
	}
}

func TestSearchWordBoundary(t *testing.T) {
	m := New(compileString(t, `\bcat\b`))
	if caps := search(m, "concatenate"); caps != nil {
		t.Fatalf("Search(\\bcat\\b, concatenate) = %v, want nil (cat is mid-word)", caps)
	}
	if caps := search(m, "a cat sat"); caps == nil {
		t.Fatal("Search(\\bcat\\b, \"a cat sat\") = nil, want a match")
	}
}

func TestSearchCaseInsensitiveLiteral(t *testing.T) {
	res, err := syntax.NewParser("abc", syntax.FlagCaseInsensitive, syntax.Limits{}).Parse()
	if err != nil {
		t.Fatalf("Parse = %v", err)
	}
	prog, err := compiler.Compile(res.AST, res.NumCaps, res.Names)
	if err != nil {
		t.Fatalf("Compile = %v", err)
	}
	m := New(prog)
	if caps := search(m, "xxABCyy"); caps == nil {
		t.Fatal("Search case-insensitive abc against ABC = nil, want a match")
	}
}

func TestSearchAnyCharNoNLStopsAtNewline(t *testing.T) {
	m := New(compileString(t, "a.b"))
	if caps := m.Search([]byte("a\nb"), 0); caps != nil {
		t.Fatalf("Search(a.b, \"a\\nb\") = %v, want nil", caps)
	}
	if caps := m.Search([]byte("axb"), 0); caps == nil {
		t.Fatal("Search(a.b, axb) = nil, want a match")
	}
}

func TestSearchCharClass(t *testing.T) {
	m := New(compileString(t, "[a-c]+"))
	caps := m.Search([]byte("abcddd"), 0)
	if caps == nil || caps[0] != 0 || caps[1] != 3 {
		t.Fatalf("Search([a-c]+, abcddd) = %v, want [0 3]", caps)
	}
}
