// Package grammar models a context-free grammar over handle-identified
// terminals and nonterminals: productions, precedence/associativity
// bindings, and the augmentation step LALR table construction needs (a mock
// start symbol and a mock end-of-input terminal). Grounded on the grammar
// concepts the teacher's internal/ictiobus/parse package operates on
// (Production, Binding, as used throughout parse/lalr.go), reworked from
// string-named symbols to handles per this module's arena-and-handle
// pattern.
package grammar

import "github.com/NadavKahlon/syntax-parser-generator/internal/handle"

type terminalTag struct{}
type nonterminalTag struct{}

// Terminal identifies a grammar terminal symbol.
type Terminal = handle.Handle[terminalTag]

// Nonterminal identifies a grammar nonterminal symbol.
type Nonterminal = handle.Handle[nonterminalTag]

// SymbolKind distinguishes a Symbol's two possible shapes.
type SymbolKind uint8

const (
	// TerminalSymbol marks a Symbol holding a Terminal.
	TerminalSymbol SymbolKind = iota
	// NonterminalSymbol marks a Symbol holding a Nonterminal.
	NonterminalSymbol
)

// Symbol is a grammar symbol: either a terminal or a nonterminal. It is a
// plain comparable struct (not itself a handle) so it can be used as a map
// key and as the alphabet of the LR(0) item automaton in internal/lalr.
type Symbol struct {
	Kind SymbolKind
	T    Terminal
	NT   Nonterminal
}

// OfTerminal builds a Symbol wrapping t.
func OfTerminal(t Terminal) Symbol {
	return Symbol{Kind: TerminalSymbol, T: t}
}

// OfNonterminal builds a Symbol wrapping nt.
func OfNonterminal(nt Nonterminal) Symbol {
	return Symbol{Kind: NonterminalSymbol, NT: nt}
}

// IsTerminal reports whether s wraps a Terminal.
func (s Symbol) IsTerminal() bool {
	return s.Kind == TerminalSymbol
}

// Associativity governs how a binding resolves shift/reduce conflicts among
// the terminals it covers.
type Associativity int

const (
	// LeftAssoc resolves a shift/reduce conflict on a bound terminal in
	// favor of reducing.
	LeftAssoc Associativity = iota
	// RightAssoc resolves a shift/reduce conflict on a bound terminal in
	// favor of shifting.
	RightAssoc
	// NonAssoc marks a shift/reduce conflict on a bound terminal as an
	// error: build fails rather than silently pick one.
	NonAssoc
)

// Binding groups terminals that share a precedence level and associativity,
// in descending precedence order of their index within Grammar.bindings
// (earlier-registered bindings bind tighter — lower index wins a
// shift/reduce conflict, per spec §4.G.4 and the original implementation's
// own registration order, highest precedence first).
type Binding struct {
	Terminals []Terminal
	Assoc     Associativity
}

// Production is a single grammar rule: LHS -> RHS. Tag identifies the
// production for reduce actions and reduce/reduce tie-breaking; by
// convention Tag always equals the production's own index in
// Grammar.rules, since that already gives every rule a stable, distinct,
// insertion-ordered identity — exactly what the reduce/reduce
// "earlier production wins" rule needs, with no separate identifier type
// required.
type Production struct {
	LHS     Nonterminal
	RHS     []Symbol
	Tag     int
	Binding int // index into Grammar.bindings, or -1 if unbound
}

// Grammar is a context-free grammar over handle-identified symbols.
type Grammar struct {
	terminalNames    handle.HandledVec[terminalTag, string]
	nonterminalNames handle.HandledVec[nonterminalTag, string]
	rules            []Production
	bindings         []Binding
	boundTerminal    map[Terminal]int
	start            Nonterminal
	hasStart         bool
}

// New returns an empty Grammar.
func New() *Grammar {
	return &Grammar{boundTerminal: map[Terminal]int{}}
}

// NewTerminal registers a new terminal symbol, named name for diagnostics.
func (g *Grammar) NewTerminal(name string) Terminal {
	return g.terminalNames.Insert(name)
}

// NewNonterminal registers a new nonterminal symbol, named name for
// diagnostics.
func (g *Grammar) NewNonterminal(name string) Nonterminal {
	return g.nonterminalNames.Insert(name)
}

// SetStart designates nt as the grammar's start symbol.
func (g *Grammar) SetStart(nt Nonterminal) {
	g.start = nt
	g.hasStart = true
}

// StartSymbol returns the grammar's start symbol, and whether one was set.
func (g *Grammar) StartSymbol() (Nonterminal, bool) {
	return g.start, g.hasStart
}

// NewBinding registers a precedence/associativity binding over terms.
// Returns an error if any terminal in terms is already covered by an
// earlier binding — spec requires each terminal to carry at most one
// binding.
func (g *Grammar) NewBinding(terms []Terminal, assoc Associativity) (int, error) {
	for _, t := range terms {
		if _, bound := g.boundTerminal[t]; bound {
			return -1, &ConflictError{Message: "terminal is already covered by another binding"}
		}
	}
	idx := len(g.bindings)
	g.bindings = append(g.bindings, Binding{Terminals: append([]Terminal{}, terms...), Assoc: assoc})
	for _, t := range terms {
		g.boundTerminal[t] = idx
	}
	return idx, nil
}

// AddRule registers a new production LHS -> RHS, optionally bound to the
// precedence/associativity of bindingIdx (pass -1 for none). It returns the
// production's tag (== its index in Rules()).
func (g *Grammar) AddRule(lhs Nonterminal, rhs []Symbol, bindingIdx int) int {
	tag := len(g.rules)
	g.rules = append(g.rules, Production{
		LHS:     lhs,
		RHS:     append([]Symbol{}, rhs...),
		Tag:     tag,
		Binding: bindingIdx,
	})
	return tag
}

// Rules returns every registered production, in insertion (tag) order.
func (g *Grammar) Rules() []Production {
	return g.rules
}

// RulesFor returns the tags of every production with lhs as its head, in
// insertion order.
func (g *Grammar) RulesFor(lhs Nonterminal) []int {
	var out []int
	for _, r := range g.rules {
		if r.LHS == lhs {
			out = append(out, r.Tag)
		}
	}
	return out
}

// Terminals returns every registered terminal, in registration order.
func (g *Grammar) Terminals() []Terminal {
	return g.terminalNames.Handles()
}

// Nonterminals returns every registered nonterminal, in registration order.
func (g *Grammar) Nonterminals() []Nonterminal {
	return g.nonterminalNames.Handles()
}

// TerminalName returns the diagnostic name given to t.
func (g *Grammar) TerminalName(t Terminal) string {
	return g.terminalNames.Get(t)
}

// NonterminalName returns the diagnostic name given to nt.
func (g *Grammar) NonterminalName(nt Nonterminal) string {
	return g.nonterminalNames.Get(nt)
}

// BindingAt returns the binding registered at idx.
func (g *Grammar) BindingAt(idx int) Binding {
	return g.bindings[idx]
}

// BindingOf returns the binding index covering t, if any.
func (g *Grammar) BindingOf(t Terminal) (int, bool) {
	idx, ok := g.boundTerminal[t]
	return idx, ok
}

// ConflictError reports a grammar construction problem detected at build
// time (not a runtime parse failure).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Augmented returns a copy of g with a fresh mock start nonterminal S' and
// a single rule S' -> S added (S being g's current start symbol), plus a
// fresh mock end-of-input terminal distinct from every terminal already in
// g. This is the standard augmentation LALR table construction performs
// before building the kernel-items automaton, so that "accept" can be
// detected as a distinguished state rather than folded into the reduce
// table.
func (g *Grammar) Augmented() (aug *Grammar, startPrime Nonterminal, endOfInput Terminal) {
	start, ok := g.StartSymbol()
	if !ok {
		panic("grammar: Augmented called before SetStart")
	}

	aug = &Grammar{
		rules:         append([]Production{}, g.rules...),
		bindings:      append([]Binding{}, g.bindings...),
		boundTerminal: map[Terminal]int{},
	}
	for _, name := range g.terminalNames.All() {
		aug.terminalNames.Insert(name)
	}
	for _, name := range g.nonterminalNames.All() {
		aug.nonterminalNames.Insert(name)
	}
	for t, idx := range g.boundTerminal {
		aug.boundTerminal[t] = idx
	}

	startPrime = handle.Mock(aug.nonterminalNames.Handles())
	aug.nonterminalNames.Insert("") // reserve the slot startPrime's index refers to
	endOfInput = handle.Mock(aug.terminalNames.Handles())
	aug.terminalNames.Insert("")

	aug.SetStart(startPrime)
	aug.AddRule(startPrime, []Symbol{OfNonterminal(start)}, -1)

	return aug, startPrime, endOfInput
}
