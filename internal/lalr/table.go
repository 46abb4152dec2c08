// Package lalr builds an LALR(1) action/goto table from a grammar.Grammar:
// the kernel-items DFA, FIRST sets, spontaneous/propagated lookahead
// generation, and finally binding-aware action/goto emission. Grounded on
// the teacher's internal/ictiobus/parse/lalr.go, which implements the same
// algorithm (Knuth/DeRemer, Dragon Book Algorithm 4.63) but leaves the
// kernel/lookahead computation unfinished; this package completes it and
// generalizes it from string-named states to this module's handle arenas.
package lalr

import (
	"fmt"

	"github.com/NadavKahlon/syntax-parser-generator/internal/automaton"
	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/handle"
)

// ActionKind distinguishes the three kinds of entries an Action can hold.
type ActionKind int

const (
	// Shift: consume the lookahead terminal and push Target.
	Shift ActionKind = iota
	// Reduce: pop RuleSize stack entries and push Goto[NonTerminal].
	Reduce
	// Accept: parsing is complete.
	Accept
)

// Action is a single action-table entry.
type Action struct {
	Kind ActionKind

	// Target is the state to push on Shift.
	Target handle.Handle[automaton.DFAState]

	// RuleTag, RuleSize, and NonTerminal describe the production to reduce
	// by on Reduce.
	RuleTag     int
	RuleSize    int
	NonTerminal grammar.Nonterminal
}

func (a Action) equal(b Action) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Shift:
		return a.Target == b.Target
	case Reduce:
		return a.RuleTag == b.RuleTag
	default:
		return true
	}
}

// State is one row of the table: its action entries (indexed by terminal)
// and goto entries (indexed by nonterminal).
type State struct {
	Action map[grammar.Terminal]Action
	Goto   map[grammar.Nonterminal]handle.Handle[automaton.DFAState]
}

// Table is a complete LALR(1) action/goto table, keyed by the handle-indexed
// states of its underlying kernel-items DFA.
type Table struct {
	States     []State
	Initial    handle.Handle[automaton.DFAState]
	Grammar    *grammar.Grammar // the augmented grammar the table was built from
	EndOfInput grammar.Terminal
	dfa        *automaton.DFA[grammar.Symbol, []Item]
}

// ConflictError reports a grammar that is not LALR(1): an action-table entry
// that cannot be resolved from bindings alone.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Build constructs the LALR(1) action/goto table for g. g is augmented
// internally (a mock start production and mock end-of-input terminal are
// added); callers get the resulting augmented grammar back via
// Table.Grammar and Table.EndOfInput; Table.Action/.Goto are keyed by
// symbols of that augmented grammar, which is a superset of g's own symbols
// plus exactly those two mock additions.
func Build(g *grammar.Grammar) (*Table, error) {
	aug, startPrime, endOfInput := g.Augmented()
	first := ComputeFirst(aug)
	dfa := buildKernelDFA(aug, startPrime)
	lookaheads := determineLookaheads(aug, first, dfa, startPrime, endOfInput)

	states := dfa.States()
	table := &Table{
		Grammar:    aug,
		EndOfInput: endOfInput,
		dfa:        dfa,
	}
	initial, _ := dfa.InitialState()
	table.Initial = initial
	table.States = make([]State, len(states))

	for _, s := range states {
		st := State{
			Action: map[grammar.Terminal]Action{},
			Goto:   map[grammar.Nonterminal]handle.Handle[automaton.DFAState]{},
		}

		for _, nt := range aug.Nonterminals() {
			if target, ok := dfa.Step(s, grammar.OfNonterminal(nt)); ok {
				st.Goto[nt] = target
			}
		}

		// Shift actions come straight from the DFA's own transition function,
		// not from scanning kernel items: an item with the dot before a
		// terminal is often a closure-only item (never stored as part of a
		// state's kernel label), so deriving shifts from kernel items alone
		// would silently miss them. Goto above works the same way, for the
		// same reason.
		for _, term := range aug.Terminals() {
			if target, ok := dfa.Step(s, grammar.OfTerminal(term)); ok {
				proposed := Action{Kind: Shift, Target: target}
				if err := setAction(aug, &st, term, proposed); err != nil {
					return nil, err
				}
			}
		}

		kernel, _ := dfa.GetLabel(s)
		for _, it := range kernel {
			prod := aug.Rules()[it.Rule]
			if it.Dot != len(prod.RHS) {
				continue
			}

			if prod.LHS == startPrime {
				if err := setAction(aug, &st, endOfInput, Action{Kind: Accept}); err != nil {
					return nil, err
				}
				continue
			}
			for la := range lookaheads[stateItem{s, it}] {
				proposed := Action{Kind: Reduce, RuleTag: prod.Tag, RuleSize: len(prod.RHS), NonTerminal: prod.LHS}
				if err := setAction(aug, &st, la, proposed); err != nil {
					return nil, err
				}
			}
		}

		table.States[s.Index()] = st
	}

	return table, nil
}

func setAction(g *grammar.Grammar, st *State, term grammar.Terminal, proposed Action) error {
	existing, has := st.Action[term]
	if !has {
		st.Action[term] = proposed
		return nil
	}
	if existing.equal(proposed) {
		return nil
	}
	resolved, err := resolveConflict(g, term, existing, proposed)
	if err != nil {
		return err
	}
	st.Action[term] = resolved
	return nil
}

// resolveConflict applies spec's binding-aware resolution order: accept
// always wins outright, over any other action; reduce/reduce conflicts
// resolve to the earlier-declared rule; shift/reduce conflicts resolve via
// the precedence/associativity binding covering the terminal versus the one
// covering the reducing rule — the lower binding index (higher precedence)
// wins, matching a binding declaration order where the tightest-binding
// operator is registered first — and are an unresolvable build-time error if
// either side carries no binding, or if both share a NonAssoc binding.
func resolveConflict(g *grammar.Grammar, term grammar.Terminal, a, b Action) (Action, error) {
	if a.Kind == Accept {
		return a, nil
	}
	if b.Kind == Accept {
		return b, nil
	}

	if a.Kind == Shift && b.Kind == Shift {
		if a.Target == b.Target {
			return a, nil
		}
		return Action{}, &ConflictError{Message: fmt.Sprintf("nondeterministic shift on terminal %q", g.TerminalName(term))}
	}

	if a.Kind == Reduce && b.Kind == Reduce {
		if a.RuleTag < b.RuleTag {
			return a, nil
		}
		return b, nil
	}

	shift, reduce := a, b
	if a.Kind == Reduce {
		shift, reduce = b, a
	}

	termBinding, termHasBinding := g.BindingOf(term)
	rule := g.Rules()[reduce.RuleTag]
	if !termHasBinding || rule.Binding < 0 {
		return Action{}, &ConflictError{Message: fmt.Sprintf(
			"unresolvable shift/reduce conflict on terminal %q: rule %d and/or the terminal have no precedence binding",
			g.TerminalName(term), reduce.RuleTag)}
	}

	if termBinding < rule.Binding {
		return shift, nil
	}
	if termBinding > rule.Binding {
		return reduce, nil
	}

	switch g.BindingAt(rule.Binding).Assoc {
	case grammar.LeftAssoc:
		return reduce, nil
	case grammar.RightAssoc:
		return shift, nil
	default:
		return Action{}, &ConflictError{Message: fmt.Sprintf(
			"unresolvable shift/reduce conflict on terminal %q: binding is nonassociative",
			g.TerminalName(term))}
	}
}
