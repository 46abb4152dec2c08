// Package translate drives internal/lrmachine with a satellite-data stack
// running in parallel to the parse stack: a leaf builder turns each input
// token into a satellite value, and a reducer turns the satellites popped on
// every reduction into the satellite for the new top of stack. Grounded on
// internal/ictiobus/translation/translation.go's attribute-grammar evaluator,
// deliberately cut down to exactly the single-pass satellite-stack model this
// package implements: no inherited attributes, no dependency graph, no
// separately materialized parse tree — reducers run directly off
// internal/lrmachine decisions as they happen.
package translate

import (
	"fmt"

	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/lalr"
	"github.com/NadavKahlon/syntax-parser-generator/internal/lrmachine"
)

// LeafBuilder produces the satellite value for one input token, given its
// raw text contents.
type LeafBuilder func(ctx any, contents string) any

// Reducer produces the satellite value for a production's left-hand side
// from the satellites of its right-hand side, in source order.
type Reducer func(ctx any, satellites []any) any

// IdentityReducer propagates its single child's satellite unchanged. Meant
// for 1-length-RHS rules (e.g. "E -> T" inside an expression grammar).
func IdentityReducer() Reducer {
	return func(_ any, satellites []any) any {
		return satellites[0]
	}
}

// EmptyReducer builds a fixed default satellite, ignoring the (empty)
// satellite list. Meant for 0-length-RHS rules.
func EmptyReducer(build func(ctx any) any) Reducer {
	return func(ctx any, _ []any) any {
		return build(ctx)
	}
}

// Token is one input symbol handed to Translate: the grammar terminal it
// represents, and its raw source text.
type Token struct {
	Terminal grammar.Terminal
	Contents string
}

// TranslationError reports a runtime translation failure other than one the
// LR runtime itself reports: a missing callback, a token the parser did not
// shift, a premature end of input, or a malformed satellite stack. It is
// always a Running -> Failed transition, never a build-time problem.
type TranslationError struct {
	Message string
}

func (e *TranslationError) Error() string {
	return e.Message
}

// Translator wraps a built LALR(1) table with user-supplied leaf builders
// and reducers. It holds no per-execution state itself: every Translate call
// starts a fresh lrmachine.Runtime and a fresh satellite stack, so one
// Translator may run any number of translations, concurrently or not.
type Translator struct {
	table *lalr.Table

	leafBuilders map[grammar.Terminal]LeafBuilder
	defaultLeaf  LeafBuilder

	// reducers is indexed by production tag, matching table.Grammar.Rules().
	reducers []Reducer
}

// New creates a Translator over table. Callers must register a leaf builder
// for every terminal that can appear in input (or a default one) and a
// reducer for every production tag before calling Translate.
func New(table *lalr.Table) *Translator {
	return &Translator{
		table:        table,
		leafBuilders: map[grammar.Terminal]LeafBuilder{},
		reducers:     make([]Reducer, len(table.Grammar.Rules())),
	}
}

// SetLeafBuilder registers the leaf builder for terminal t.
func (tr *Translator) SetLeafBuilder(t grammar.Terminal, b LeafBuilder) {
	tr.leafBuilders[t] = b
}

// SetDefaultLeafBuilder registers a fallback leaf builder used for any
// terminal without one of its own.
func (tr *Translator) SetDefaultLeafBuilder(b LeafBuilder) {
	tr.defaultLeaf = b
}

// SetReducer registers the reducer for the production tagged ruleTag.
func (tr *Translator) SetReducer(ruleTag int, r Reducer) {
	tr.reducers[ruleTag] = r
}

// Translate runs one execution over tokens, threading ctx through every
// callback, and returns the single satellite value left on the stack at
// Accept. For input the grammar rejects it returns the LR runtime's error
// unwrapped (a *lrmachine.SyntaxError when no action exists); for a missing
// leaf builder or reducer, or a malformed satellite stack, it returns a
// *TranslationError. These are reported as errors rather than panics, since
// they are runtime (input-shaped) failures, not programmer errors.
func (tr *Translator) Translate(ctx any, tokens []Token) (any, error) {
	rt := lrmachine.New(tr.table)
	var satellites []any

	for _, tok := range tokens {
		builder := tr.leafBuilders[tok.Terminal]
		if builder == nil {
			builder = tr.defaultLeaf
		}
		if builder == nil {
			return nil, &TranslationError{Message: fmt.Sprintf(
				"no leaf builder registered for terminal %q", tr.table.Grammar.TerminalName(tok.Terminal))}
		}
		satellite := builder(ctx, tok.Contents)

		d, err := tr.driveReduces(ctx, rt, tok.Terminal, &satellites)
		if err != nil {
			return nil, err
		}
		if d.Kind != lrmachine.Shift {
			return nil, &TranslationError{Message: "parser did not shift after a satellite was built for input"}
		}
		satellites = append(satellites, satellite)
	}

	d, err := tr.driveReduces(ctx, rt, tr.table.EndOfInput, &satellites)
	if err != nil {
		return nil, err
	}
	if d.Kind != lrmachine.Accept {
		return nil, &TranslationError{Message: "unexpected end of input"}
	}
	if len(satellites) != 1 {
		return nil, &TranslationError{Message: "translation finished with a malformed satellite stack"}
	}
	return satellites[0], nil
}

// driveReduces calls rt.Decide(term) in a loop, applying a reducer for every
// Reduce decision, until it sees Shift or Accept (or an error).
func (tr *Translator) driveReduces(ctx any, rt *lrmachine.Runtime, term grammar.Terminal, satellites *[]any) (lrmachine.Decision, error) {
	for {
		d, err := rt.Decide(term)
		if err != nil {
			return lrmachine.Decision{}, err
		}
		if d.Kind != lrmachine.Reduce {
			return d, nil
		}
		if err := tr.applyReduce(ctx, d, satellites); err != nil {
			return lrmachine.Decision{}, err
		}
	}
}

func (tr *Translator) applyReduce(ctx any, d lrmachine.Decision, satellites *[]any) error {
	stack := *satellites
	if len(stack) < d.RuleSize {
		return &TranslationError{Message: "satellite stack underflow during reduction"}
	}

	n := len(stack)
	drained := append([]any{}, stack[n-d.RuleSize:]...)
	stack = stack[:n-d.RuleSize]

	reducer := tr.reducers[d.RuleTag]
	if reducer == nil {
		return &TranslationError{Message: fmt.Sprintf("no reducer registered for rule %d", d.RuleTag)}
	}

	*satellites = append(stack, reducer(ctx, drained))
	return nil
}
