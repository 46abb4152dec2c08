package automaton

import "github.com/NadavKahlon/syntax-parser-generator/internal/handle"

// Relabel builds a new DFA with the exact same states and transitions as d,
// but with every label passed through f. Used when a DFA was built and
// minimized against a convenient internal label type (minimization needs L
// comparable) and must be handed back to a caller in terms of its own label
// type.
func Relabel[Sigma comparable, L1 any, L2 any](d *DFA[Sigma, L1], f func(L1) L2) *DFA[Sigma, L2] {
	out := &DFA[Sigma, L2]{}

	oldStates := d.States()
	// oldStates[i].Index() == i, since HandledVec mints handles 0..n-1 in
	// order; build the new arena in the same order so newByOld[i] lines up.
	newByOld := make([]handle.Handle[DFAState], len(oldStates))
	for i, s := range oldStates {
		ns := out.NewState()
		newByOld[i] = ns
		if lbl, ok := d.GetLabel(s); ok {
			out.Label(ns, f(lbl))
		}
	}

	for i, s := range oldStates {
		for sym, dst := range d.Transitions(s) {
			out.Link(newByOld[i], newByOld[dst.Index()], sym)
		}
	}

	if start, ok := d.InitialState(); ok {
		out.SetInitialState(newByOld[start.Index()])
	}

	return out
}
