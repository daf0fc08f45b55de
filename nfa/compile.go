package nfa

import (
	"fmt"

	"github.com/coregx/like/ir"
)

// UTF-8 leading/continuation byte prefix classes, expressed as (bits, width)
// pairs consumed by Matches: a byte b matches iff its top `width` bits equal
// `bits`'s top `width` bits.
const (
	asciiBits, asciiWidth = 0x00, 1 // 0xxxxxxx
	twoBits, twoWidth     = 0xC0, 3 // 110xxxxx
	threeBits, threeWidth = 0xE0, 4 // 1110xxxx
	fourBits, fourWidth   = 0xF0, 5 // 11110xxx
	contBits, contWidth   = 0x80, 2 // 10xxxxxx
)

// Build compiles the (post-peeling) middle IR sequence into an NFA whose
// alphabet is UTF-8 bytes. elems must already be optimized (no adjacent Any
// elements) but need not have prefix/suffix literals peeled off — Build
// handles whatever sequence it is given.
func Build(elems []ir.Element) (*NFA, error) {
	b := NewBuilder()

	if len(elems) == 0 {
		start := b.AddEpsilon(InvalidState)
		b.SetStart(start)
		match := b.AddMatch()
		b.Patch(start, match)
		return b.Build(match), nil
	}

	var start, prevEnd StateID
	for i, e := range elems {
		var s, end StateID
		switch e.Kind {
		case ir.KindLiteral:
			s, end = buildLiteral(b, e.Literal)
		case ir.KindAny:
			s, end = buildAny(b, e.Min, e.Unbounded)
		default:
			return nil, fmt.Errorf("nfa: unknown ir element kind %v", e.Kind)
		}
		if i == 0 {
			start = s
		} else {
			b.Patch(prevEnd, s)
		}
		prevEnd = end
	}

	match := b.AddMatch()
	b.Patch(prevEnd, match)
	b.SetStart(start)
	return b.Build(match), nil
}

// buildLiteral chains one Value transition per byte of lit, returning the
// chain's start and a dangling Epsilon "end" for the caller to patch.
func buildLiteral(b *Builder, lit []byte) (start, end StateID) {
	states := make([]StateID, len(lit))
	for i, by := range lit {
		states[i] = b.AddValue(by, InvalidState)
	}
	for i := 0; i < len(lit)-1; i++ {
		b.Patch(states[i], states[i+1])
	}
	end = b.AddEpsilon(InvalidState)
	b.Patch(states[len(lit)-1], end)
	return states[0], end
}

// buildAny constructs the automaton for a wildcard run of at least min
// codepoints, optionally unbounded. It chains max(min, 1) copies of the
// single-codepoint sub-automaton (buildCodepoint). When min == 0 the lone
// copy is made optional via a leading split; when unbounded, the last copy
// gets a Kleene back-edge (mirroring how a{2,} lowers to two mandatory
// copies followed by a loop on the last one, rather than looping the whole
// chain).
func buildAny(b *Builder, min uint32, unbounded bool) (start, end StateID) {
	copies := min
	if copies == 0 {
		copies = 1
	}

	end = b.AddEpsilon(InvalidState)

	cpStarts := make([]StateID, copies)
	cpEnds := make([]StateID, copies)
	for i := uint32(0); i < copies; i++ {
		s, e := buildCodepoint(b)
		cpStarts[i] = s
		cpEnds[i] = e
		if i > 0 {
			b.Patch(cpEnds[i-1], s)
		}
	}

	entry := cpStarts[0]
	lastStart := cpStarts[copies-1]
	lastEnd := cpEnds[copies-1]

	if unbounded {
		loop := b.AddSplit(lastStart, end)
		b.Patch(lastEnd, loop)
	} else {
		b.Patch(lastEnd, end)
	}

	if min == 0 {
		skip := b.AddSplit(entry, end)
		entry = skip
	}

	return entry, end
}

// buildCodepoint builds a sub-automaton that consumes exactly one valid
// UTF-8 codepoint (1 to 4 bytes), per spec: four branches off the start
// state select the encoding length by leading-byte prefix class, then
// chain the matching number of continuation-byte prefix checks down to a
// shared end. Shorter encodings' continuation chains are suffixes of
// longer ones' (e.g. the 2-byte path's single continuation state is the
// same state the 3- and 4-byte paths pass through last).
func buildCodepoint(b *Builder) (start, end StateID) {
	end = b.AddEpsilon(InvalidState)

	// s3: one continuation byte left, then end. Shared tail for 2/3/4-byte.
	s3 := b.AddPrefix(contBits, contWidth, end)
	// s2: two continuation bytes left. Shared tail for 3/4-byte.
	s2 := b.AddPrefix(contBits, contWidth, s3)
	// s1: three continuation bytes left. Only the 4-byte path uses this.
	s1 := b.AddPrefix(contBits, contWidth, s2)

	p1 := b.AddPrefix(asciiBits, asciiWidth, end) // 1-byte: lead byte is the whole thing
	p2 := b.AddPrefix(twoBits, twoWidth, s3)       // 2-byte: lead + 1 continuation
	p3 := b.AddPrefix(threeBits, threeWidth, s2)   // 3-byte: lead + 2 continuations
	p4 := b.AddPrefix(fourBits, fourWidth, s1)     // 4-byte: lead + 3 continuations

	splitLong := b.AddSplit(p3, p4)
	splitMid := b.AddSplit(p2, splitLong)
	start = b.AddSplit(p1, splitMid)

	return start, end
}
