// Package lrmachine drives an internal/lalr.Table one step at a time: a pull
// model over a stack of automaton states, rather than a run-to-completion
// parser. Grounded on the teacher's internal/ictiobus/parse/lr.go lrParser.Parse
// (Dragon Book Algorithm 4.44), reworked from a stack-of-state-names loop that
// runs straight through to a finished parse tree into a single-step Decide
// that hands every decision — including each Reduce — back to the caller.
// internal/translate drives it directly so it can invoke a reducer callback
// per Reduce; a caller that only cares about shifts and acceptance can use
// Advance instead.
package lrmachine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NadavKahlon/syntax-parser-generator/internal/automaton"
	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/handle"
	"github.com/NadavKahlon/syntax-parser-generator/internal/lalr"
)

// DecisionKind distinguishes the three things a single Decide call can do.
type DecisionKind int

const (
	// Shift: the terminal passed to Decide was consumed.
	Shift DecisionKind = iota
	// Reduce: RuleSize states were popped and NonTerminal's goto state was
	// pushed; the terminal passed to Decide was NOT consumed and must be
	// passed to Decide again.
	Reduce
	// Accept: parsing is complete.
	Accept
)

// Decision reports what a single Decide call just did.
type Decision struct {
	Kind DecisionKind

	// RuleTag, RuleSize, and NonTerminal identify the production that fired,
	// valid only when Kind == Reduce.
	RuleTag     int
	RuleSize    int
	NonTerminal grammar.Nonterminal

	// Target is the state pushed onto the stack, valid for Shift and Reduce.
	Target handle.Handle[automaton.DFAState]
}

// SyntaxError reports that no action exists for the current state and
// lookahead terminal.
type SyntaxError struct {
	Terminal grammar.Terminal
	Expected []grammar.Terminal
	Grammar  *grammar.Grammar
}

func (e *SyntaxError) Error() string {
	var names []string
	for _, t := range e.Expected {
		names = append(names, e.Grammar.TerminalName(t))
	}
	sort.Strings(names)
	return fmt.Sprintf("unexpected %q; expected one of: %s", e.Grammar.TerminalName(e.Terminal), strings.Join(names, ", "))
}

// Runtime is a single in-progress parse: a table plus the stack of automaton
// states accumulated so far. It is not safe for concurrent use.
type Runtime struct {
	table *lalr.Table
	stack []handle.Handle[automaton.DFAState]
}

// New starts a fresh Runtime over table, with the stack holding just the
// table's initial state.
func New(table *lalr.Table) *Runtime {
	return &Runtime{
		table: table,
		stack: []handle.Handle[automaton.DFAState]{table.Initial},
	}
}

// Decide performs exactly one shift, reduce, or accept step for the current
// stack top and term. On Reduce, term was not consumed: the caller must call
// Decide again with the same term.
func (r *Runtime) Decide(term grammar.Terminal) (Decision, error) {
	top := r.stack[len(r.stack)-1]
	st := r.table.States[top.Index()]

	act, ok := st.Action[term]
	if !ok {
		var expected []grammar.Terminal
		for t := range st.Action {
			expected = append(expected, t)
		}
		return Decision{}, &SyntaxError{Terminal: term, Expected: expected, Grammar: r.table.Grammar}
	}

	switch act.Kind {
	case lalr.Shift:
		r.stack = append(r.stack, act.Target)
		return Decision{Kind: Shift, Target: act.Target}, nil

	case lalr.Reduce:
		r.stack = r.stack[:len(r.stack)-act.RuleSize]
		newTop := r.stack[len(r.stack)-1]
		target, ok := r.table.States[newTop.Index()].Goto[act.NonTerminal]
		if !ok {
			return Decision{}, fmt.Errorf(
				"lrmachine: no goto entry for %q after reducing rule %d",
				r.table.Grammar.NonterminalName(act.NonTerminal), act.RuleTag)
		}
		r.stack = append(r.stack, target)
		return Decision{
			Kind:        Reduce,
			RuleTag:     act.RuleTag,
			RuleSize:    act.RuleSize,
			NonTerminal: act.NonTerminal,
			Target:      target,
		}, nil

	case lalr.Accept:
		return Decision{Kind: Accept}, nil

	default:
		panic("lrmachine: action of unknown kind")
	}
}

// Advance calls Decide with term repeatedly, discarding every Reduce
// decision, until it returns Shift or Accept (or an error). Use this when the
// caller has no need to observe individual reductions.
func (r *Runtime) Advance(term grammar.Terminal) (Decision, error) {
	for {
		d, err := r.Decide(term)
		if err != nil {
			return Decision{}, err
		}
		if d.Kind != Reduce {
			return d, nil
		}
	}
}

// Finalize repeatedly decides on the table's end-of-input terminal — which
// callers never otherwise see — draining remaining reduces until Accept or
// an error. Call this once the input lexeme stream is exhausted.
func (r *Runtime) Finalize() (Decision, error) {
	for {
		d, err := r.Decide(r.table.EndOfInput)
		if err != nil {
			return Decision{}, err
		}
		switch d.Kind {
		case Accept:
			return d, nil
		case Shift:
			return Decision{}, fmt.Errorf("lrmachine: unexpected shift on end-of-input")
		}
	}
}

// State returns the automaton state currently on top of the stack.
func (r *Runtime) State() handle.Handle[automaton.DFAState] {
	return r.stack[len(r.stack)-1]
}
