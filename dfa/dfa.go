// Package dfa determinizes a byte-level NFA (github.com/coregx/like/nfa)
// into a dense transition table via subset construction.
package dfa

import (
	"strconv"
	"strings"

	"github.com/coregx/like/internal/conv"
	"github.com/coregx/like/internal/sparse"
	"github.com/coregx/like/nfa"
)

// Dense is a flattened DFA transition table over the 256-byte alphabet.
//
// Transitions is row-major: Transitions[rowBase+b] holds the row base
// (already state.id*256) of the state reached by consuming byte b from the
// state whose row base is rowBase. This fuses the next row-base
// computation with the lookup itself — the scan loop never multiplies:
//
//	rowBase = d.Transitions[rowBase+int(b)]
//
// Accept is indexed by rowBase/256. Index 0 is always the absorbing fail
// state: every byte from it loops back to itself.
type Dense struct {
	Transitions  []uint32
	Accept       []bool
	StartRowBase uint32
}

// NumStates returns the number of DFA states, including the fail state.
func (d *Dense) NumStates() int { return len(d.Accept) }

// Build runs subset construction over n and lowers the result to a Dense
// table. n is assumed immutable and is not retained.
func Build(n *nfa.NFA) *Dense {
	b := newSubsetBuilder(n)
	b.discover()
	return b.lower()
}

// dfaState is one subset-construction state: the canonicalized set of NFA
// state IDs it represents, whether that set contains the NFA's accept
// state, and (once resolved) its 256 outgoing transitions as indices into
// subsetBuilder.states.
type dfaState struct {
	nfaSet []uint32
	accept bool
	trans  [256]int
}

// subsetBuilder performs the NFA -> DFA powerset construction. States are
// identified by their canonicalized (sorted) underlying NFA state set so
// that subset-equivalent states are merged rather than duplicated.
type subsetBuilder struct {
	n        *nfa.NFA
	states   []dfaState
	index    map[string]int
	startIdx int
	closing  *sparse.Set
}

func newSubsetBuilder(n *nfa.NFA) *subsetBuilder {
	return &subsetBuilder{
		n:       n,
		index:   make(map[string]int),
		closing: sparse.New(conv.IntToUint32(n.NumStates())),
	}
}

// discover builds every DFA state reachable from the NFA's start, in
// breadth-first discovery order, with state 0 reserved for the fail state.
func (b *subsetBuilder) discover() {
	b.states = append(b.states, dfaState{})
	b.index[""] = 0

	startSet, startAccept := b.closure([]nfa.StateID{b.n.Start()})
	b.startIdx = b.getOrCreate(startSet, startAccept)

	for i := 0; i < len(b.states); i++ {
		if i == 0 {
			var self [256]int
			b.states[0].trans = self // zero value: every byte loops to fail (index 0)
			continue
		}
		b.states[i].trans = b.transitionsFor(b.states[i].nfaSet)
	}
}

// closure computes the epsilon-closure of seeds: every NFA state reachable
// by following only Epsilon and Split edges, plus every byte-consuming
// (Value/Prefix) state that closure touches directly (those remain members
// of the set without being expanded further — they're the frontier for the
// next byte transition). Returns the canonical sorted member list and
// whether the set contains the NFA's accept state.
func (b *subsetBuilder) closure(seeds []nfa.StateID) ([]uint32, bool) {
	b.closing.Clear()
	stack := append([]nfa.StateID(nil), seeds...)
	accept := false

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.closing.Contains(uint32(id)) {
			continue
		}
		b.closing.Insert(uint32(id))

		s := b.n.State(id)
		if s == nil {
			continue
		}
		switch s.Kind {
		case nfa.KindMatch:
			accept = true
		case nfa.KindEpsilon:
			stack = append(stack, s.Next)
		case nfa.KindSplit:
			stack = append(stack, s.Left, s.Right)
		}
	}

	return b.closing.Sorted(), accept
}

// transitionsFor computes, for every byte value, which DFA state is
// reached from the state represented by nfaSet.
func (b *subsetBuilder) transitionsFor(nfaSet []uint32) [256]int {
	var trans [256]int

	for by := 0; by < 256; by++ {
		var seeds []nfa.StateID
		for _, id := range nfaSet {
			s := b.n.State(nfa.StateID(id))
			if s == nil {
				continue
			}
			if (s.Kind == nfa.KindValue || s.Kind == nfa.KindPrefix) && s.Matches(byte(by)) {
				seeds = append(seeds, s.Next)
			}
		}
		if len(seeds) == 0 {
			trans[by] = 0
			continue
		}
		set, accept := b.closure(seeds)
		trans[by] = b.getOrCreate(set, accept)
	}

	return trans
}

// getOrCreate returns the index of the DFA state for the given canonical
// set, creating it if this is the first time the set has been seen.
func (b *subsetBuilder) getOrCreate(set []uint32, accept bool) int {
	k := canonicalKey(set)
	if idx, ok := b.index[k]; ok {
		return idx
	}
	idx := len(b.states)
	b.states = append(b.states, dfaState{nfaSet: set, accept: accept})
	b.index[k] = idx
	return idx
}

func canonicalKey(sorted []uint32) string {
	var sb strings.Builder
	for i, v := range sorted {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

// lower flattens the discovered states into a Dense table.
func (b *subsetBuilder) lower() *Dense {
	n := len(b.states)
	d := &Dense{
		Transitions:  make([]uint32, n*256),
		Accept:       make([]bool, n),
		StartRowBase: uint32(b.startIdx) * 256,
	}

	for i, st := range b.states {
		d.Accept[i] = st.accept
		base := i * 256
		for by := 0; by < 256; by++ {
			d.Transitions[base+by] = uint32(st.trans[by]) * 256
		}
	}

	return d
}
