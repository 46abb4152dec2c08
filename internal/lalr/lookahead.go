package lalr

import (
	"github.com/NadavKahlon/syntax-parser-generator/internal/automaton"
	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/handle"
)

// stateItem pairs a kernel-DFA state with one of its kernel items, used as
// the unit of lookahead bookkeeping and as a propagation-graph node.
type stateItem struct {
	state handle.Handle[automaton.DFAState]
	item  Item
}

// lr1Closure computes the closure of a seed set of (item, lookahead) pairs
// under the standard LR(1) closure rule (Dragon Book Algorithm 4.62's inner
// closure): for every item [B -> alpha . C beta, a] in the set with C a
// nonterminal, add [C -> . gamma, b] for every production of C and every b
// in FIRST(beta a).
func lr1Closure(g *grammar.Grammar, first *FirstSets, seed map[Item]map[grammar.Terminal]bool) map[Item]map[grammar.Terminal]bool {
	closure := map[Item]map[grammar.Terminal]bool{}
	for it, las := range seed {
		copied := map[grammar.Terminal]bool{}
		for la := range las {
			copied[la] = true
		}
		closure[it] = copied
	}

	for {
		changed := false

		type snapshot struct {
			it  Item
			las []grammar.Terminal
		}
		var items []snapshot
		for it, las := range closure {
			var ls []grammar.Terminal
			for la := range las {
				ls = append(ls, la)
			}
			items = append(items, snapshot{it, ls})
		}

		for _, s := range items {
			prod := g.Rules()[s.it.Rule]
			if s.it.Dot >= len(prod.RHS) {
				continue
			}
			sym := prod.RHS[s.it.Dot]
			if sym.IsTerminal() {
				continue
			}
			beta := prod.RHS[s.it.Dot+1:]

			for _, la := range s.las {
				lookaheads := first.OfSequence(beta, la)
				for _, prodTag := range g.RulesFor(sym.NT) {
					predicted := Item{Rule: prodTag, Dot: 0}
					if closure[predicted] == nil {
						closure[predicted] = map[grammar.Terminal]bool{}
					}
					for t := range lookaheads {
						if !closure[predicted][t] {
							closure[predicted][t] = true
							changed = true
						}
					}
				}
			}
		}

		if !changed {
			break
		}
	}

	return closure
}

// determineLookaheads computes, for every (state, kernel item) pair in dfa,
// the set of lookahead terminals under which that item's production may be
// reduced. Grounded on the teacher's determineLookaheads (Dragon Book
// Algorithm 4.62), left as dead/unfinished code there (computeLALR1Kernels
// returns an empty set and the propagation pass is commented out) — this
// finishes it: each kernel item is seeded with the mock terminal `mock`
// instead of a real lookahead, and any closure item carrying that mock
// lookahead through to a shifted kernel item marks a *propagation* edge
// rather than a concrete lookahead, which is then resolved to fixed point in
// a second pass.
func determineLookaheads(
	aug *grammar.Grammar,
	first *FirstSets,
	dfa *automaton.DFA[grammar.Symbol, []Item],
	startPrime grammar.Nonterminal,
	endOfInput grammar.Terminal,
) map[stateItem]map[grammar.Terminal]bool {
	mock := handle.Mock(aug.Terminals())

	states := dfa.States()
	kernelOf := map[handle.Handle[automaton.DFAState]][]Item{}
	lookaheads := map[stateItem]map[grammar.Terminal]bool{}
	propagations := map[stateItem][]stateItem{}

	for _, s := range states {
		kernel, _ := dfa.GetLabel(s)
		kernelOf[s] = kernel
		for _, it := range kernel {
			lookaheads[stateItem{s, it}] = map[grammar.Terminal]bool{}
		}
	}

	initial, _ := dfa.InitialState()
	startRuleTag := len(aug.Rules()) - 1
	startItem := Item{Rule: startRuleTag, Dot: 0}
	lookaheads[stateItem{initial, startItem}][endOfInput] = true

	for _, s := range states {
		for _, it := range kernelOf[s] {
			seed := map[Item]map[grammar.Terminal]bool{it: {mock: true}}
			closure := lr1Closure(aug, first, seed)

			for closItem, las := range closure {
				prod := aug.Rules()[closItem.Rule]
				if closItem.Dot >= len(prod.RHS) {
					continue
				}
				sym := prod.RHS[closItem.Dot]
				target, ok := dfa.Step(s, sym)
				if !ok {
					continue
				}
				shifted := Item{Rule: closItem.Rule, Dot: closItem.Dot + 1}
				dst := stateItem{target, shifted}

				for la := range las {
					if la == mock {
						src := stateItem{s, it}
						propagations[src] = append(propagations[src], dst)
						continue
					}
					if lookaheads[dst] == nil {
						lookaheads[dst] = map[grammar.Terminal]bool{}
					}
					lookaheads[dst][la] = true
				}
			}
		}
	}

	for {
		changed := false
		for src, dsts := range propagations {
			for _, dst := range dsts {
				for la := range lookaheads[src] {
					if !lookaheads[dst][la] {
						lookaheads[dst][la] = true
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	fillEmptyProductionLookaheads(aug, first, dfa, kernelOf, lookaheads)

	return lookaheads
}

// fillEmptyProductionLookaheads covers the one case the shift-based
// propagation above can never reach: a kernel item whose production has an
// empty RHS is "complete" the moment it's predicted, so it never appears as
// the shifted side of a GOTO and never receives a spontaneous or propagated
// lookahead from the main pass. Its lookaheads are instead exactly what
// standard LR(1) closure would assign it: close the state's other kernel
// items (whose lookaheads are already final at this point) with those real
// lookaheads, and read off whatever lookahead the empty production's item
// picks up there.
func fillEmptyProductionLookaheads(
	aug *grammar.Grammar,
	first *FirstSets,
	dfa *automaton.DFA[grammar.Symbol, []Item],
	kernelOf map[handle.Handle[automaton.DFAState]][]Item,
	lookaheads map[stateItem]map[grammar.Terminal]bool,
) {
	for s, kernel := range kernelOf {
		seed := map[Item]map[grammar.Terminal]bool{}
		var empties []Item
		for _, it := range kernel {
			prod := aug.Rules()[it.Rule]
			if it.Dot < len(prod.RHS) {
				if las := lookaheads[stateItem{s, it}]; len(las) > 0 {
					copied := map[grammar.Terminal]bool{}
					for la := range las {
						copied[la] = true
					}
					seed[it] = copied
				}
			} else if len(prod.RHS) == 0 {
				empties = append(empties, it)
			}
		}
		if len(empties) == 0 || len(seed) == 0 {
			continue
		}

		closure := lr1Closure(aug, first, seed)
		for _, it := range empties {
			for la := range closure[it] {
				lookaheads[stateItem{s, it}][la] = true
			}
		}
	}
}
