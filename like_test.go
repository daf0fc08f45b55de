package like

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/coregx/like/internal/refmatch"
	"github.com/coregx/like/ir"
	"github.com/coregx/like/parser"
)

func mustCompile(t *testing.T, pattern string, esc Escape) *LikeMatcher {
	t.Helper()
	m, err := Compile(pattern, esc)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return m
}

func TestConcreteScenarios(t *testing.T) {
	noEsc := Escape{}
	backslash := Escape{Char: '\\', OK: true}

	cases := []struct {
		pattern string
		esc     Escape
		input   string
		want    bool
	}{
		{"abc", noEsc, "abc", true},
		{"abc", noEsc, "ab", false},
		{"abc", noEsc, "abcd", false},

		{"a%b", noEsc, "axxxb", true},
		{"a%b", noEsc, "ab", true},
		{"a%b", noEsc, "axxx", false},

		{"a_b", noEsc, "axb", true},
		{"a_b", noEsc, "ab", false},
		{"a_b", noEsc, "a猫b", true},

		{"%end", noEsc, "the end", true},
		{"%end", noEsc, "end", true},
		{"%end", noEsc, "ending", false},

		{"foo%", backslash, "foo", true},
		{`100\%`, backslash, "100%", true},
		{`100\%`, backslash, "100X", false},
	}

	for _, c := range cases {
		m := mustCompile(t, c.pattern, c.esc)
		if got := m.MatchString(c.input); got != c.want {
			t.Errorf("compile(%q).match(%q) = %v, want %v", c.pattern, c.input, got, c.want)
		}
	}
}

func TestInvalidEscape(t *testing.T) {
	_, err := Compile(`\`, Escape{Char: '\\', OK: true})
	if err == nil {
		t.Fatal("expected InvalidEscape error")
	}
	if !errors.Is(err, ErrInvalidEscape) {
		t.Fatalf("expected errors.Is(err, ErrInvalidEscape), got %v", err)
	}
}

// TestEscapeRoundTrip is property 2: for any character c, compile("E"+c,
// escape='E').match(c) is true iff c is one of the wildcard chars or the
// escape itself; otherwise compile fails with InvalidEscape.
func TestEscapeRoundTrip(t *testing.T) {
	const escChar = 'E'
	for _, c := range []rune{'%', '_', 'E', 'x', 'y', '!'} {
		pattern := string(escChar) + string(c)
		m, err := Compile(pattern, Escape{Char: escChar, OK: true})
		if c == '%' || c == '_' || c == escChar {
			if err != nil {
				t.Errorf("compile(%q) unexpected error: %v", pattern, err)
				continue
			}
			if !m.MatchString(string(c)) {
				t.Errorf("compile(%q).match(%q) should be true", pattern, string(c))
			}
		} else {
			if err == nil {
				t.Errorf("compile(%q) expected InvalidEscape, got matcher", pattern)
			}
		}
	}
}

// TestLengthBoundsSoundness is property 3.
func TestLengthBoundsSoundness(t *testing.T) {
	patterns := []string{"abc", "a%b", "a_b", "%", "_", "a%b%c", "%%%abc%%%"}
	inputs := []string{"", "a", "ab", "abc", "abcd", "aXbYc", "猫猫猫"}

	for _, p := range patterns {
		m := mustCompile(t, p, Escape{})
		for _, s := range inputs {
			if !m.MatchString(s) {
				continue
			}
			n := len(s)
			if n < m.MinLen() {
				t.Errorf("pattern %q matched %q (len %d) below MinLen %d", p, s, n, m.MinLen())
			}
			if max, ok := m.MaxLen(); ok && n > max {
				t.Errorf("pattern %q matched %q (len %d) above MaxLen %d", p, s, n, max)
			}
		}
	}
}

// TestPeelingConsistency is property 4: compiling with peeling enabled must
// agree with compiling with peeling disabled, on every input.
func TestPeelingConsistency(t *testing.T) {
	patterns := []string{"abc", "a%b", "a_bc", "pre%mid%post", "%suffix", "prefix%", "a%b%c%d"}
	inputs := []string{"", "a", "abc", "prefoopost", "premidpost", "xpreXmidXpostx", "suffix", "thesuffix", "prefix", "prefixxxx", "abcd"}

	for _, p := range patterns {
		peeled, err := Compile(p, Escape{})
		if err != nil {
			t.Fatalf("Compile(%q): %v", p, err)
		}
		cfg := DefaultConfig()
		cfg.disablePeeling = true
		unpeeled, err := CompileWithConfig(p, Escape{}, cfg)
		if err != nil {
			t.Fatalf("CompileWithConfig(%q, disablePeeling): %v", p, err)
		}
		for _, s := range inputs {
			a, b := peeled.MatchString(s), unpeeled.MatchString(s)
			if a != b {
				t.Errorf("pattern %q input %q: peeled=%v unpeeled=%v disagree", p, s, a, b)
			}
		}
	}
}

// TestUnderscoreCodepointSemantics is property 5.
func TestUnderscoreCodepointSemantics(t *testing.T) {
	m := mustCompile(t, "_", Escape{})
	codepoints := []rune{'a', 'Z', '0', '猫', '🎉', 'é'}
	for _, c := range codepoints {
		s := string(c)
		if !m.MatchString(s) {
			t.Errorf("_ should match single codepoint %q", s)
		}
	}
	for _, pair := range [][2]rune{{'a', 'b'}, {'猫', '犬'}} {
		s := string(pair[0]) + string(pair[1])
		if m.MatchString(s) {
			t.Errorf("_ should not match two codepoints %q", s)
		}
	}
}

// TestOptimizeIdempotence is property 6: optimizing an already-optimized IR
// is a no-op. It also checks, at the package boundary, that the collapsed
// run in "a%%%b" matches the same inputs as "a%b".
func TestOptimizeIdempotence(t *testing.T) {
	elems, err := parser.Parse("a%%%b", Escape{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	once := ir.Optimize(elems)
	if twice := ir.Optimize(once); !reflect.DeepEqual(once, twice) {
		t.Errorf("Optimize not idempotent: once=%v twice=%v", once, twice)
	}

	m1 := mustCompile(t, "a%%%b", Escape{})
	m2 := mustCompile(t, "a%b", Escape{})
	inputs := []string{"ab", "axb", "axxxb", "b", "a"}
	for _, s := range inputs {
		if got, want := m1.MatchString(s), m2.MatchString(s); got != want {
			t.Errorf("a%%%%%%b and a%%b should agree on %q: got %v want %v", s, got, want)
		}
	}
}

// TestPatternTextEquivalence is property 1: match() must agree with the
// naive reference matcher across a randomized corpus.
func TestPatternTextEquivalence(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	alphabet := []rune{'a', 'b', 'c', '%', '_'}
	inputAlphabet := []rune{'a', 'b', 'c', '猫'}

	randomPattern := func() string {
		var sb strings.Builder
		n := r.Intn(6)
		for i := 0; i < n; i++ {
			sb.WriteRune(alphabet[r.Intn(len(alphabet))])
		}
		return sb.String()
	}
	randomInput := func() string {
		var sb strings.Builder
		n := r.Intn(6)
		for i := 0; i < n; i++ {
			sb.WriteRune(inputAlphabet[r.Intn(len(inputAlphabet))])
		}
		return sb.String()
	}

	for i := 0; i < 300; i++ {
		p := randomPattern()
		m, err := Compile(p, Escape{})
		if err != nil {
			continue // only valid patterns are comparable
		}
		s := randomInput()
		want := refmatch.Match(p, s, 0, false)
		got := m.MatchString(s)
		if got != want {
			t.Fatalf("pattern %q input %q: matcher=%v refmatch=%v", p, s, got, want)
		}
	}
}

func TestMatchAtOffsetLength(t *testing.T) {
	m := mustCompile(t, "bc", Escape{})
	input := []byte("abcd")
	if !m.MatchAt(input, 1, 2) {
		t.Error("MatchAt(1,2) over \"abcd\" should match \"bc\"")
	}
	if m.MatchAt(input, 0, 2) {
		t.Error("MatchAt(0,2) over \"abcd\" should not match \"bc\" (it's \"ab\")")
	}
}

func TestIntrospection(t *testing.T) {
	m := mustCompile(t, "a%b", Escape{Char: '\\', OK: true})
	if m.String() != "a%b" {
		t.Errorf("String() = %q, want %q", m.String(), "a%b")
	}
	if c, ok := m.Escape(); !ok || c != '\\' {
		t.Errorf("Escape() = (%q, %v), want ('\\\\', true)", c, ok)
	}
	if m.Explain() == "" {
		t.Error("Explain() should not be empty")
	}
}

func TestMustCompilePanicsOnInvalidEscape(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompile to panic on invalid escape")
		}
	}()
	MustCompile(`\`, Escape{Char: '\\', OK: true})
}
