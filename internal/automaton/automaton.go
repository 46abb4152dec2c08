// Package automaton implements generic nondeterministic and deterministic
// finite automata over an arbitrary comparable alphabet Sigma and an
// arbitrary per-state label type L, plus the two classic constructions that
// connect them: subset construction (NFA -> DFA) and Hopcroft-style
// minimization (DFA -> smaller equivalent DFA).
//
// States are never named; they are handles into the automaton's own arena,
// following the arena-and-handle pattern in internal/handle. This replaces
// the map[string]DFAState[E]-keyed automata this package is descended from
// with one where two automata's states can never be confused with each
// other by the type checker, at the cost of giving up human-readable state
// names.
package automaton

import "github.com/NadavKahlon/syntax-parser-generator/internal/handle"

// NFAState tags handles referring to states of an NFA.
type NFAState struct{}

// DFAState tags handles referring to states of a DFA.
type DFAState struct{}

type nfaStateData[Sigma comparable, L any] struct {
	epsilon []handle.Handle[NFAState]
	on      map[Sigma][]handle.Handle[NFAState]
	label   *L
}

// NFA is a nondeterministic finite automaton over alphabet Sigma, with each
// state optionally labeled by an L (e.g. the lexeme type a lexer's accepting
// state produces, or the grammar item an LR(0) item-NFA state represents).
type NFA[Sigma comparable, L any] struct {
	states  handle.HandledVec[NFAState, nfaStateData[Sigma, L]]
	start   handle.Handle[NFAState]
	started bool
}

// NewState adds a fresh, unlabeled, transitionless state and returns its
// handle.
func (n *NFA[Sigma, L]) NewState() handle.Handle[NFAState] {
	return n.states.Insert(nfaStateData[Sigma, L]{on: map[Sigma][]handle.Handle[NFAState]{}})
}

// SetInitialState designates s as the automaton's start state.
func (n *NFA[Sigma, L]) SetInitialState(s handle.Handle[NFAState]) {
	n.start = s
	n.started = true
}

// InitialState returns the start state set via SetInitialState.
func (n *NFA[Sigma, L]) InitialState() handle.Handle[NFAState] {
	return n.start
}

// Label attaches l to state s, overwriting any previous label.
func (n *NFA[Sigma, L]) Label(s handle.Handle[NFAState], l L) {
	d := n.states.Get(s)
	lCopy := l
	d.label = &lCopy
	n.states.Set(s, d)
}

// GetLabel returns the label attached to s, if any.
func (n *NFA[Sigma, L]) GetLabel(s handle.Handle[NFAState]) (L, bool) {
	d := n.states.Get(s)
	if d.label == nil {
		var zero L
		return zero, false
	}
	return *d.label, true
}

// LinkEpsilon adds an epsilon-transition from src to dst.
func (n *NFA[Sigma, L]) LinkEpsilon(src, dst handle.Handle[NFAState]) {
	d := n.states.Get(src)
	d.epsilon = append(d.epsilon, dst)
	n.states.Set(src, d)
}

// Link adds a transition from src to dst on input symbol sym.
func (n *NFA[Sigma, L]) Link(src, dst handle.Handle[NFAState], sym Sigma) {
	d := n.states.Get(src)
	d.on[sym] = append(d.on[sym], dst)
	n.states.Set(src, d)
}

// States returns every state handle minted so far.
func (n *NFA[Sigma, L]) States() []handle.Handle[NFAState] {
	return n.states.Handles()
}

// EpsilonClosure returns every state reachable from the members of set via
// zero or more epsilon-transitions, including set's own members.
func (n *NFA[Sigma, L]) EpsilonClosure(set *handle.BitSet[NFAState]) *handle.BitSet[NFAState] {
	closure := &handle.BitSet[NFAState]{}
	var stack []handle.Handle[NFAState]
	for _, s := range set.Elements() {
		if closure.Insert(s) {
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range n.states.Get(s).epsilon {
			if closure.Insert(next) {
				stack = append(stack, next)
			}
		}
	}
	return closure
}

// Move returns every state directly reachable from a member of set on
// symbol sym (no epsilon-closure applied).
func (n *NFA[Sigma, L]) Move(set *handle.BitSet[NFAState], sym Sigma) *handle.BitSet[NFAState] {
	out := &handle.BitSet[NFAState]{}
	for _, s := range set.Elements() {
		for _, next := range n.states.Get(s).on[sym] {
			out.Insert(next)
		}
	}
	return out
}

// Symbols returns every symbol that labels at least one transition anywhere
// in the automaton, in no particular order.
func (n *NFA[Sigma, L]) Symbols() []Sigma {
	seen := map[Sigma]bool{}
	var out []Sigma
	for _, d := range n.states.All() {
		for sym := range d.on {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	return out
}

type dfaStateData[Sigma comparable, L any] struct {
	on    map[Sigma]handle.Handle[DFAState]
	label *L
}

// DFA is a deterministic finite automaton over alphabet Sigma, with each
// state optionally labeled by an L.
type DFA[Sigma comparable, L any] struct {
	states  handle.HandledVec[DFAState, dfaStateData[Sigma, L]]
	start   handle.Handle[DFAState]
	started bool
}

// NewState adds a fresh, unlabeled, transitionless state and returns its
// handle.
func (d *DFA[Sigma, L]) NewState() handle.Handle[DFAState] {
	return d.states.Insert(dfaStateData[Sigma, L]{on: map[Sigma]handle.Handle[DFAState]{}})
}

// SetInitialState designates s as the automaton's start state.
func (d *DFA[Sigma, L]) SetInitialState(s handle.Handle[DFAState]) {
	d.start = s
	d.started = true
}

// InitialState returns the start state, and whether one has been set.
func (d *DFA[Sigma, L]) InitialState() (handle.Handle[DFAState], bool) {
	return d.start, d.started
}

// Label attaches l to state s, overwriting any previous label.
func (d *DFA[Sigma, L]) Label(s handle.Handle[DFAState], l L) {
	data := d.states.Get(s)
	lCopy := l
	data.label = &lCopy
	d.states.Set(s, data)
}

// GetLabel returns the label attached to s, if any.
func (d *DFA[Sigma, L]) GetLabel(s handle.Handle[DFAState]) (L, bool) {
	data := d.states.Get(s)
	if data.label == nil {
		var zero L
		return zero, false
	}
	return *data.label, true
}

// Link adds (or overwrites) the transition from src to dst on sym. A DFA
// permits at most one destination per (state, symbol) pair.
func (d *DFA[Sigma, L]) Link(src, dst handle.Handle[DFAState], sym Sigma) {
	data := d.states.Get(src)
	data.on[sym] = dst
	d.states.Set(src, data)
}

// Step returns the state reached from s on sym, if a transition exists.
func (d *DFA[Sigma, L]) Step(s handle.Handle[DFAState], sym Sigma) (handle.Handle[DFAState], bool) {
	next, ok := d.states.Get(s).on[sym]
	return next, ok
}

// Scan runs the DFA from its initial state over the given symbol sequence,
// stepping as far as transitions allow, and returns the final state reached
// along with the number of symbols actually consumed before getting stuck (if
// ever). ok is false only if no initial state has been set.
func (d *DFA[Sigma, L]) Scan(input []Sigma) (final handle.Handle[DFAState], consumed int, ok bool) {
	if !d.started {
		return final, 0, false
	}
	cur := d.start
	for i, sym := range input {
		next, found := d.Step(cur, sym)
		if !found {
			return cur, i, true
		}
		cur = next
	}
	return cur, len(input), true
}

// States returns every state handle minted so far.
func (d *DFA[Sigma, L]) States() []handle.Handle[DFAState] {
	return d.states.Handles()
}

// Transitions returns the (symbol, destination) pairs defined out of s.
func (d *DFA[Sigma, L]) Transitions(s handle.Handle[DFAState]) map[Sigma]handle.Handle[DFAState] {
	return d.states.Get(s).on
}
