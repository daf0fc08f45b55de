// Package like compiles SQL-style LIKE patterns ('%' and '_' wildcards,
// with an optional escape character) into a dense byte-level automaton and
// matches UTF-8 input against it without backtracking.
//
// Basic usage:
//
//	m, err := like.Compile("a%b", like.Escape{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if m.MatchString("axxxb") {
//	    fmt.Println("matched!")
//	}
//
// With an escape character:
//
//	m := like.MustCompile("100\\%", like.Escape{Char: '\\', OK: true})
//	m.MatchString("100%") // true
//
// A compiled LikeMatcher is immutable and safe for concurrent use.
package like

import (
	"fmt"
	"io"

	"github.com/coregx/like/dfa"
	"github.com/coregx/like/internal/memeq"
	"github.com/coregx/like/ir"
	"github.com/coregx/like/nfa"
	"github.com/coregx/like/parser"
)

// Escape bundles the optional escape rune passed to Compile. The zero value
// (OK: false) means no escape character is configured.
type Escape = parser.Escape

// LikeMatcher is a compiled LIKE pattern.
//
// A LikeMatcher is immutable after Compile returns and safe to use
// concurrently from multiple goroutines: match calls perform no writes to
// shared state and retain no reference to the input after returning.
type LikeMatcher struct {
	pattern string
	esc     Escape

	minLen uint32
	maxLen uint32
	hasMax bool

	prefix []byte
	suffix []byte

	table *dfa.Dense
	exact bool
}

// Compile compiles pattern into a LikeMatcher, honoring esc as the optional
// escape character. The only failure mode is *CompileError wrapping
// ErrInvalidEscape.
func Compile(pattern string, esc Escape) (*LikeMatcher, error) {
	return CompileWithConfig(pattern, esc, DefaultConfig())
}

// MustCompile compiles pattern like Compile but panics on error. Intended
// for patterns known to be valid at init time.
func MustCompile(pattern string, esc Escape) *LikeMatcher {
	m, err := Compile(pattern, esc)
	if err != nil {
		panic(err)
	}
	return m
}

// CompileWithConfig compiles pattern like Compile, additionally honoring cfg
// (currently only cfg.Trace has any observable effect; see Config).
func CompileWithConfig(pattern string, esc Escape, cfg Config) (*LikeMatcher, error) {
	elems, err := parser.Parse(pattern, esc)
	if err != nil {
		return nil, wrapCompileError(pattern, err)
	}
	elems = ir.Optimize(elems)

	minLen, maxLen, hasMax := lengthBounds(elems)

	middle := elems
	var prefix, suffix []byte
	if !cfg.disablePeeling {
		prefix, middle, suffix = peelLiteralRuns(elems)
	}

	middle, exact := downgradeTrailingUnbounded(middle)

	n, err := nfa.Build(middle)
	if err != nil {
		// Only reachable if a future IR change produces a kind nfa.Build
		// doesn't recognize; Parse/Optimize never emit one today.
		return nil, wrapCompileError(pattern, err)
	}
	table := dfa.Build(n)

	traceCompile(cfg.Trace, pattern, elems, n, table, exact)

	return &LikeMatcher{
		pattern: pattern,
		esc:     esc,
		minLen:  minLen,
		maxLen:  maxLen,
		hasMax:  hasMax,
		prefix:  prefix,
		suffix:  suffix,
		table:   table,
		exact:   exact,
	}, nil
}

// lengthBounds computes min/max byte-length bounds over elems per spec:
// each Literal contributes its byte length to both bounds; each Any(min,
// unbounded) contributes min to the lower bound and min*4 to the upper
// bound (4 = max UTF-8 bytes per codepoint), with any unbounded Any making
// the upper bound unbounded. Must run before peeling: peeling only changes
// how the pattern is scanned, never how long a match can be.
func lengthBounds(elems []ir.Element) (minLen, maxLen uint32, hasMax bool) {
	hasMax = true
	for _, e := range elems {
		switch e.Kind {
		case ir.KindLiteral:
			n := uint32(len(e.Literal))
			minLen += n
			maxLen += n
		case ir.KindAny:
			minLen += e.Min
			if e.Unbounded {
				hasMax = false
			} else {
				maxLen += e.Min * 4
			}
		}
	}
	if !hasMax {
		maxLen = 0
	}
	return minLen, maxLen, hasMax
}

// peelLiteralRuns extracts a leading Literal into prefix and a trailing
// Literal (of what remains after the leading peel) into suffix.
func peelLiteralRuns(elems []ir.Element) (prefix []byte, middle []ir.Element, suffix []byte) {
	middle = elems
	if len(middle) > 0 && middle[0].IsLiteral() {
		prefix = middle[0].Literal
		middle = middle[1:]
	}
	if len(middle) > 0 && middle[len(middle)-1].IsLiteral() {
		suffix = middle[len(middle)-1].Literal
		middle = middle[:len(middle)-1]
	}
	return prefix, middle, suffix
}

// downgradeTrailingUnbounded replaces a trailing unbounded Any with a
// bounded Any of the same min and reports exact=false, so the matcher can
// run in stop-on-accept mode instead of encoding a Kleene loop into the
// DFA. Any middle not ending in an unbounded Any is returned unchanged with
// exact=true.
func downgradeTrailingUnbounded(middle []ir.Element) (out []ir.Element, exact bool) {
	if len(middle) == 0 {
		return middle, true
	}
	last := middle[len(middle)-1]
	if last.Kind != ir.KindAny || !last.Unbounded {
		return middle, true
	}
	out = make([]ir.Element, len(middle))
	copy(out, middle)
	out[len(out)-1] = ir.NewAny(last.Min, false)
	return out, false
}

func traceCompile(w io.Writer, pattern string, elems []ir.Element, n *nfa.NFA, table *dfa.Dense, exact bool) {
	if w == nil {
		return
	}
	mode := "stop-on-accept"
	if exact {
		mode = "exact"
	}
	fmt.Fprintf(w, "like: compiled %q: %d ir elements, %d nfa states, %d dfa states, mode=%s\n",
		pattern, len(elems), n.NumStates(), table.NumStates(), mode)
}

// Match reports whether b matches the compiled pattern in its entirety.
func (m *LikeMatcher) Match(b []byte) bool {
	return m.MatchAt(b, 0, len(b))
}

// MatchString is Match for a string input.
func (m *LikeMatcher) MatchString(s string) bool {
	return m.Match([]byte(s))
}

// MatchAt reports whether input[offset:offset+length] matches the compiled
// pattern. Behavior for an out-of-bounds (offset, length) pair is a caller
// contract violation, not a reported error: unless the length-bound checks
// already return false, it panics via the normal Go slice-bounds mechanism.
func (m *LikeMatcher) MatchAt(input []byte, offset, length int) bool {
	if length < int(m.minLen) {
		return false
	}
	if m.hasMax && length > int(m.maxLen) {
		return false
	}

	region := input[offset : offset+length]

	if len(m.prefix) > 0 && !memeq.HasPrefix(region, m.prefix) {
		return false
	}
	if len(m.suffix) > 0 && !memeq.HasSuffix(region, m.suffix) {
		return false
	}

	mid := region[len(m.prefix) : len(region)-len(m.suffix)]
	return m.scan(mid)
}

// scan runs the dense DFA over region. In exact mode, acceptance is checked
// only once, after the whole region is consumed. In stop-on-accept mode,
// acceptance is checked before any byte is consumed (so a middle that
// accepts the empty string short-circuits immediately, e.g. a trailing '%'
// peeled to an empty remainder) and again after every byte.
func (m *LikeMatcher) scan(region []byte) bool {
	row := m.table.StartRowBase

	if !m.exact && m.table.Accept[row/256] {
		return true
	}

	for _, b := range region {
		row = m.table.Transitions[int(row)+int(b)]
		if !m.exact && m.table.Accept[row/256] {
			return true
		}
	}

	if m.exact {
		return m.table.Accept[row/256]
	}
	return false
}

// String returns the original pattern text.
func (m *LikeMatcher) String() string {
	return m.pattern
}

// Escape returns the escape character configured at compile time, and
// whether one was configured at all.
func (m *LikeMatcher) Escape() (rune, bool) {
	return m.esc.Char, m.esc.OK
}

// MinLen returns the minimum byte length a matching input can have.
func (m *LikeMatcher) MinLen() int {
	return int(m.minLen)
}

// MaxLen returns the maximum byte length a matching input can have, and
// whether that bound exists (false means unbounded, from any '%' in the
// pattern).
func (m *LikeMatcher) MaxLen() (int, bool) {
	return int(m.maxLen), m.hasMax
}

// Explain renders a non-authoritative debug summary of how the pattern
// compiled: its peeled prefix/suffix literals, length bounds, DFA state
// count, and scan mode. Not part of match semantics — for diagnosing
// compilation, not for driving program logic.
func (m *LikeMatcher) Explain() string {
	mode := "stop-on-accept"
	if m.exact {
		mode = "exact"
	}
	maxDesc := "unbounded"
	if m.hasMax {
		maxDesc = fmt.Sprintf("%d", m.maxLen)
	}
	return fmt.Sprintf(
		"pattern=%q prefix=%q suffix=%q min_len=%d max_len=%s dfa_states=%d mode=%s",
		m.pattern, m.prefix, m.suffix, m.minLen, maxDesc, m.table.NumStates(), mode,
	)
}
