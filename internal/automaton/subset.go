package automaton

import "github.com/NadavKahlon/syntax-parser-generator/internal/handle"

// Reduce combines the labels of every NFA state folded into one DFA state
// and decides the DFA state's own label, if any. It returns ok=false when
// none of the underlying NFA labels should produce a DFA label at all (e.g.
// a lexer state with no accepting NFA state among its members).
type Reduce[NL any, DL any] func(nfaLabels []NL) (DL, bool)

// SubsetConstruct builds a DFA equivalent to nfa via the standard subset
// (powerset) construction: each DFA state corresponds to an epsilon-closed
// set of NFA states, reachable by taking Move then EpsilonClosure on each
// alphabet symbol in turn starting from the epsilon-closure of the NFA's
// start state. Grounded on automaton.go's NFA.ToDFA (Algorithm 3.20) in the
// teacher, reworked onto the handle-indexed NFA/DFA types above.
func SubsetConstruct[Sigma comparable, NL any, DL any](nfa *NFA[Sigma, NL], reduce Reduce[NL, DL]) *DFA[Sigma, DL] {
	dfa := &DFA[Sigma, DL]{}

	startSet := nfa.EpsilonClosure(handle.NewBitSet(nfa.InitialState()))
	byKey := map[string]handle.Handle[DFAState]{}

	newDFAState := func(set *handle.BitSet[NFAState]) handle.Handle[DFAState] {
		s := dfa.NewState()
		byKey[set.Key()] = s
		if lbl, ok := labelFor(nfa, set, reduce); ok {
			dfa.Label(s, lbl)
		}
		return s
	}

	start := newDFAState(startSet)
	dfa.SetInitialState(start)

	worklist := []*handle.BitSet[NFAState]{startSet}
	symbols := nfa.Symbols()

	for len(worklist) > 0 {
		set := worklist[0]
		worklist = worklist[1:]
		srcState := byKey[set.Key()]

		for _, sym := range symbols {
			moved := nfa.Move(set, sym)
			if moved.Empty() {
				continue
			}
			closed := nfa.EpsilonClosure(moved)
			dstState, seen := byKey[closed.Key()]
			if !seen {
				dstState = newDFAState(closed)
				worklist = append(worklist, closed)
			}
			dfa.Link(srcState, dstState, sym)
		}
	}

	return dfa
}

func labelFor[Sigma comparable, NL any, DL any](nfa *NFA[Sigma, NL], set *handle.BitSet[NFAState], reduce Reduce[NL, DL]) (DL, bool) {
	var labels []NL
	for _, s := range set.Elements() {
		if l, ok := nfa.GetLabel(s); ok {
			labels = append(labels, l)
		}
	}
	return reduce(labels)
}
