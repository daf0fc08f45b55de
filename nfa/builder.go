package nfa

// Builder constructs an NFA incrementally, state by state, allowing forward
// references to be patched in once their target is known (needed for the
// Kleene back-edge of '%').
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 16)}
}

// AddMatch adds an accepting state and returns its ID.
func (b *Builder) AddMatch() StateID {
	return b.add(State{Kind: KindMatch})
}

// AddEpsilon adds a state with a single epsilon transition to next (next
// may be InvalidState and patched later via Patch).
func (b *Builder) AddEpsilon(next StateID) StateID {
	return b.add(State{Kind: KindEpsilon, Next: next})
}

// AddSplit adds a state with two epsilon transitions (alternation/loop).
// Either target may be InvalidState and patched later via PatchSplit.
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{Kind: KindSplit, Left: left, Right: right})
}

// AddValue adds a state that consumes exactly byte v and transitions to next.
func (b *Builder) AddValue(v byte, next StateID) StateID {
	return b.add(State{Kind: KindValue, Byte: v, Next: next})
}

// AddPrefix adds a state that consumes any byte whose top width bits equal
// bits, transitioning to next.
func (b *Builder) AddPrefix(bits byte, width uint8, next StateID) StateID {
	return b.add(State{Kind: KindPrefix, Bits: bits, Width: width, Next: next})
}

func (b *Builder) add(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

// Patch sets the Next field of an Epsilon/Value/Prefix state.
func (b *Builder) Patch(id, target StateID) {
	s := &b.states[id]
	switch s.Kind {
	case KindEpsilon, KindValue, KindPrefix:
		s.Next = target
	default:
		panic("nfa: Patch called on state kind " + s.Kind.String())
	}
}

// PatchSplit sets the Left/Right fields of a Split state.
func (b *Builder) PatchSplit(id StateID, left, right StateID) {
	s := &b.states[id]
	if s.Kind != KindSplit {
		panic("nfa: PatchSplit called on state kind " + s.Kind.String())
	}
	s.Left = left
	s.Right = right
}

// SetStart sets the NFA's start state.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// Build finalizes construction into an immutable NFA whose accept state is
// accept.
func (b *Builder) Build(accept StateID) *NFA {
	return &NFA{states: b.states, start: b.start, accept: accept}
}
