package lalr

import (
	"sort"

	"github.com/NadavKahlon/syntax-parser-generator/internal/automaton"
	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/handle"
)

// Item is an LR(0) item: a production (by tag) with a dot position marking
// how much of its RHS has been recognized so far.
type Item struct {
	Rule int
	Dot  int
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Rule != items[j].Rule {
			return items[i].Rule < items[j].Rule
		}
		return items[i].Dot < items[j].Dot
	})
}

// isKernelItem reports whether it belongs in a kernel-items set: either its
// dot is not at the very start, or it's the augmented start production, or
// its production has an empty RHS (in which case dot 0 and "completed" are
// the same position). Every other dot-0 item is a closure item, predictable
// on demand from the ones above and therefore never stored persistently.
//
// A consequence worth noting: every *completed* item (dot at the end of a
// nonempty RHS) necessarily has Dot != 0, so it is always a kernel item —
// table construction never needs to re-derive completed items via closure.
func isKernelItem(it Item, g *grammar.Grammar, startPrime grammar.Nonterminal) bool {
	prod := g.Rules()[it.Rule]
	return it.Dot != 0 || prod.LHS == startPrime || len(prod.RHS) == 0
}

// buildItemNFA constructs the LR(0) item automaton (Dragon Book fig. 4.38):
// one NFA state per (production, dot) pair, an edge on the symbol after the
// dot to the item with the dot advanced, and epsilon edges from an item with
// the dot before nonterminal B to every "B -> . gamma" item (the standard
// closure-as-epsilon-edges trick). Grounded on the teacher's
// automaton.NewLR0ViablePrefixNFA.
func buildItemNFA(g *grammar.Grammar, startPrime grammar.Nonterminal) *automaton.NFA[grammar.Symbol, Item] {
	nfa := &automaton.NFA[grammar.Symbol, Item]{}
	stateOf := map[Item]handle.Handle[automaton.NFAState]{}

	for _, r := range g.Rules() {
		for dot := 0; dot <= len(r.RHS); dot++ {
			it := Item{Rule: r.Tag, Dot: dot}
			s := nfa.NewState()
			nfa.Label(s, it)
			stateOf[it] = s
		}
	}

	for _, r := range g.Rules() {
		for dot := 0; dot < len(r.RHS); dot++ {
			it := Item{Rule: r.Tag, Dot: dot}
			nxt := Item{Rule: r.Tag, Dot: dot + 1}
			nfa.Link(stateOf[it], stateOf[nxt], r.RHS[dot])

			if sym := r.RHS[dot]; !sym.IsTerminal() {
				for _, prodTag := range g.RulesFor(sym.NT) {
					predicted := Item{Rule: prodTag, Dot: 0}
					nfa.LinkEpsilon(stateOf[it], stateOf[predicted])
				}
			}
		}
	}

	startRuleTag := len(g.Rules()) - 1 // Augmented always appends S' -> S last
	startItem := Item{Rule: startRuleTag, Dot: 0}
	nfa.SetInitialState(stateOf[startItem])

	return nfa
}

// buildKernelDFA runs subset construction over the LR(0) item NFA, keeping
// only kernel items in each DFA state's label. Grounded on the teacher's
// (dead) computeLALR1Kernels, which this completes.
func buildKernelDFA(g *grammar.Grammar, startPrime grammar.Nonterminal) *automaton.DFA[grammar.Symbol, []Item] {
	nfa := buildItemNFA(g, startPrime)

	reduce := func(items []Item) ([]Item, bool) {
		var kernel []Item
		for _, it := range items {
			if isKernelItem(it, g, startPrime) {
				kernel = append(kernel, it)
			}
		}
		sortItems(kernel)
		return kernel, true
	}

	return automaton.SubsetConstruct[grammar.Symbol, Item, []Item](nfa, reduce)
}
