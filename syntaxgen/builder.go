// Package syntaxgen is the public facade over this module's internal
// lexer/grammar/LALR/translation packages: a single string-dubbing Builder
// that lets a caller describe a lexeme set, a grammar, and a set of
// leaf/reducer callbacks by name, and turns that description into a ready-
// to-run Machine. Grounded on the teacher's internal/ictiobus/ictiobus.go
// (package ictiobus), itself a facade file living inside its own subpackage
// rather than at the module root — this package mirrors that placement,
// and its Frontend[E]/NewLexer/NewParser/NewSDD constructor layering.
package syntaxgen

import (
	"fmt"
	"log"

	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/lalr"
	"github.com/NadavKahlon/syntax-parser-generator/internal/lexer"
	"github.com/NadavKahlon/syntax-parser-generator/internal/translate"
)

// dubbing ties together the one name a caller uses for a lexeme type with
// the handles minted for it in the two internal arenas that need to agree
// on it: the lexer's Type (always minted) and the grammar's Terminal
// (minted only for lexeme types that participate in the grammar; a
// skipped type, see SkipPattern, has none).
type dubbing struct {
	lexType  lexer.Type
	terminal grammar.Terminal
	hasTerm  bool
}

// Builder accumulates a lexeme set, a grammar, and the leaf/reducer
// callbacks that drive translation, all addressed by caller-chosen names
// rather than raw handles. Build converts every problem internal/lexer,
// internal/grammar, or internal/lalr would otherwise report as an error
// into a panic: per this library's error-handling split, a malformed
// description (an unresolvable conflict, a dangling reference, an
// undeclared start symbol) is a programmer error to be caught during
// development, never a condition a finished Machine's caller has to
// handle.
type Builder struct {
	types *lexer.Types
	g     *grammar.Grammar

	descriptors []lexer.Descriptor
	dubs        map[string]*dubbing
	order       []string // insertion order of dubs, for diagnostics only

	nonterminals map[string]grammar.Nonterminal
	bindings     map[string]int

	leafBuilders map[string]LeafBuilder
	defaultLeaf  LeafBuilder
	reducers     map[int]Reducer
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		types:        lexer.NewTypes(),
		g:            grammar.New(),
		dubs:         map[string]*dubbing{},
		leafBuilders: map[string]LeafBuilder{},
		reducers:     map[int]Reducer{},
	}
}

func (b *Builder) dub(name string) *dubbing {
	if d, ok := b.dubs[name]; ok {
		return d
	}
	panic(fmt.Sprintf("syntaxgen: %q was never dubbed", name))
}

func (b *Builder) mustNotExist(name string) {
	if _, ok := b.dubs[name]; ok {
		panic(fmt.Sprintf("syntaxgen: %q is already dubbed", name))
	}
}

// DubLexemeType registers a new lexeme type named name, recognized by
// pattern, and also registers a grammar terminal of the same name so it can
// appear in registered rules. Descriptors are tried in the order they were
// dubbed, so earlier DubLexemeType/DubKeyword/DubSpecialChar calls win
// ties for the longest match (e.g. dub a keyword before the identifier
// pattern it would otherwise be swallowed by).
func (b *Builder) DubLexemeType(name string, pattern Pattern) {
	b.mustNotExist(name)
	ty := b.types.New(name)
	term := b.g.NewTerminal(name)
	b.descriptors = append(b.descriptors, lexer.Descriptor{Type: ty, Pattern: pattern})
	b.dubs[name] = &dubbing{lexType: ty, terminal: term, hasTerm: true}
	b.order = append(b.order, name)
}

// DubKeyword is a DubLexemeType convenience for a lexeme type matching
// exactly the literal string kw.
func (b *Builder) DubKeyword(name, kw string) {
	b.DubLexemeType(name, ConstantString(kw))
}

// DubSpecialChar is a DubLexemeType convenience for a lexeme type matching
// exactly one literal byte.
func (b *Builder) DubSpecialChar(name string, c byte) {
	b.DubLexemeType(name, SingleCharacter{Char: c})
}

// SkipPattern registers a lexeme type named name, recognized by pattern,
// that is mined out of the input but never reaches the grammar: Translate
// silently discards every lexeme of this type instead of treating it as a
// parser token. Useful for whitespace and comments. Neither spec.md nor the
// original implementation's parsing/mod.rs describes a filtering feature of
// this kind; this is a facade-level addition to fill that silence, not a
// reinterpretation of anything either one specifies (see DESIGN.md).
func (b *Builder) SkipPattern(name string, pattern Pattern) {
	b.mustNotExist(name)
	ty := b.types.New(name)
	b.descriptors = append(b.descriptors, lexer.Descriptor{Type: ty, Pattern: pattern})
	b.dubs[name] = &dubbing{lexType: ty}
	b.order = append(b.order, name)
}

// NewNonterminal registers a new nonterminal named name.
func (b *Builder) NewNonterminal(name string) {
	b.mustNotExist(name)
	nt := b.g.NewNonterminal(name)
	b.dubs[name] = &dubbing{}
	b.nontermDubs()[name] = nt
}

// nontermDubs lazily creates the nonterminal side-table the first time it's
// needed; nonterminals don't carry a lexeme/terminal pair so they're kept
// separately from dubbing.
func (b *Builder) nontermDubs() map[string]grammar.Nonterminal {
	if b.nonterminals == nil {
		b.nonterminals = map[string]grammar.Nonterminal{}
	}
	return b.nonterminals
}

// SetStartNonterminal designates name (already registered via
// NewNonterminal) as the grammar's start symbol.
func (b *Builder) SetStartNonterminal(name string) {
	b.g.SetStart(b.nonterm(name))
}

// NewBinding registers a precedence/associativity binding covering the
// named terminals (dubbed via DubLexemeType/DubKeyword/DubSpecialChar).
// Bindings registered earlier bind tighter than ones registered later —
// register the highest-precedence operator first.
func (b *Builder) NewBinding(names []string, assoc Associativity) string {
	terms := make([]grammar.Terminal, len(names))
	for i, n := range names {
		d := b.dub(n)
		if !d.hasTerm {
			panic(fmt.Sprintf("syntaxgen: %q has no grammar terminal (dubbed with SkipPattern)", n))
		}
		terms[i] = d.terminal
	}
	idx, err := b.g.NewBinding(terms, grammar.Associativity(assoc))
	if err != nil {
		panic(fmt.Sprintf("syntaxgen: NewBinding: %s", err))
	}
	bindingName := fmt.Sprintf("$binding%d", idx)
	b.bindingIdx()[bindingName] = idx
	return bindingName
}

func (b *Builder) bindingIdx() map[string]int {
	if b.bindings == nil {
		b.bindings = map[string]int{}
	}
	return b.bindings
}

func (b *Builder) nonterm(name string) grammar.Nonterminal {
	nt, ok := b.nontermDubs()[name]
	if !ok {
		panic(fmt.Sprintf("syntaxgen: %q was never registered via NewNonterminal", name))
	}
	return nt
}

// symbolOf resolves name (a dubbed terminal or a registered nonterminal)
// to a grammar.Symbol.
func (b *Builder) symbolOf(name string) grammar.Symbol {
	if nt, ok := b.nontermDubs()[name]; ok {
		return grammar.OfNonterminal(nt)
	}
	d := b.dub(name)
	if !d.hasTerm {
		panic(fmt.Sprintf("syntaxgen: %q has no grammar terminal (dubbed with SkipPattern)", name))
	}
	return grammar.OfTerminal(d.terminal)
}

// RegisterRule registers a production lhs -> rhs (names resolved against
// dubbed terminals and registered nonterminals), with reducer r invoked on
// every reduction by this rule.
func (b *Builder) RegisterRule(lhs string, rhs []string, r Reducer) {
	b.registerRule(lhs, rhs, -1, r)
}

// RegisterBoundRule is RegisterRule for a production whose shift/reduce
// conflicts resolve using bindingName (as returned by NewBinding). A
// production registered through RegisterRule carries no binding at all; it
// does not inherit one from the terminals in its right-hand side.
func (b *Builder) RegisterBoundRule(lhs string, rhs []string, bindingName string, r Reducer) {
	idx, ok := b.bindingIdx()[bindingName]
	if !ok {
		panic(fmt.Sprintf("syntaxgen: %q is not a binding returned by NewBinding", bindingName))
	}
	b.registerRule(lhs, rhs, idx, r)
}

// RegisterIdentityRule is a RegisterRule convenience for a single-symbol
// production (e.g. "E -> T") whose satellite is just its child's,
// unchanged.
func (b *Builder) RegisterIdentityRule(lhs, rhsSymbol string) {
	b.registerRule(lhs, []string{rhsSymbol}, -1, IdentityReducer())
}

// RegisterEmptyRule registers an empty production (lhs -> ε) whose
// satellite is produced by defaultBuilder, ignoring (the necessarily empty)
// child list.
func (b *Builder) RegisterEmptyRule(lhs string, defaultBuilder func(ctx any) any) {
	b.registerRule(lhs, nil, -1, EmptyReducer(defaultBuilder))
}

func (b *Builder) registerRule(lhs string, rhs []string, bindingIdx int, r Reducer) {
	lhsNT := b.nonterm(lhs)
	symbols := make([]grammar.Symbol, len(rhs))
	for i, name := range rhs {
		symbols[i] = b.symbolOf(name)
	}
	tag := b.g.AddRule(lhsNT, symbols, bindingIdx)
	if r != nil {
		b.reducers[tag] = r
	}
}

// SetLeafSatelliteBuilder registers the leaf builder invoked for every
// lexeme of the dubbed terminal name.
func (b *Builder) SetLeafSatelliteBuilder(name string, lb LeafBuilder) {
	d := b.dub(name)
	if !d.hasTerm {
		panic(fmt.Sprintf("syntaxgen: %q has no grammar terminal (dubbed with SkipPattern)", name))
	}
	b.leafBuilders[name] = lb
}

// SetDefaultLeafSatelliteBuilder registers a fallback leaf builder used for
// any dubbed terminal without one of its own.
func (b *Builder) SetDefaultLeafSatelliteBuilder(lb LeafBuilder) {
	b.defaultLeaf = lb
}

// Build compiles the accumulated lexeme set and grammar into a Machine.
// Every failure internal/lexer.Build, internal/lalr.Build, or a dangling
// leaf-builder reference could report is a programmer error — an unknown
// dub reference, a lexeme type matching the empty string, an unresolvable
// shift/reduce conflict, an undeclared start symbol — and Build panics on
// all of them rather than returning an error, per this library's
// build-time/run-time error split.
func (b *Builder) Build() *Machine {
	if _, ok := b.g.StartSymbol(); !ok {
		panic("syntaxgen: Build called before SetStartNonterminal")
	}

	log.Printf("syntaxgen: compiling lexer from %d descriptor(s)", len(b.descriptors))
	analyzer, err := lexer.Build(b.descriptors)
	if err != nil {
		panic(fmt.Sprintf("syntaxgen: %s", err))
	}

	log.Printf("syntaxgen: compiling LALR(1) table from %d rule(s), %d binding(s)",
		len(b.g.Rules()), len(b.bindingIdx()))
	table, err := lalr.Build(b.g)
	if err != nil {
		panic(fmt.Sprintf("syntaxgen: %s", err))
	}
	log.Printf("syntaxgen: LALR(1) table compiled with %d state(s)", len(table.States))

	tr := translate.New(table)
	for name, lb := range b.leafBuilders {
		tr.SetLeafBuilder(b.dubs[name].terminal, adaptLeaf(lb))
	}
	if b.defaultLeaf != nil {
		tr.SetDefaultLeafBuilder(adaptLeaf(b.defaultLeaf))
	}
	for tag, r := range b.reducers {
		tr.SetReducer(tag, adaptReducer(r))
	}

	typeToTerm := make(map[lexer.Type]grammar.Terminal, len(b.dubs))
	for _, name := range b.order {
		if d := b.dubs[name]; d.hasTerm {
			typeToTerm[d.lexType] = d.terminal
		}
	}

	return &Machine{
		analyzer:   analyzer,
		translator: tr,
		typeToTerm: typeToTerm,
		grammar:    b.g,
	}
}
