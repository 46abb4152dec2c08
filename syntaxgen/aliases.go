package syntaxgen

import (
	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/regex"
	"github.com/NadavKahlon/syntax-parser-generator/internal/translate"
)

// Associativity governs how a binding resolves shift/reduce conflicts among
// the terminals it covers. See NewBinding.
type Associativity = grammar.Associativity

const (
	LeftAssoc  = grammar.LeftAssoc
	RightAssoc = grammar.RightAssoc
	NonAssoc   = grammar.NonAssoc
)

// Pattern describes a lexeme's recognized language, built up from the
// constructors below and handed to DubLexemeType/DubKeyword/SkipPattern.
type Pattern = regex.Node

type (
	SingleCharacter = regex.SingleCharacter
	CharacterRange  = regex.CharacterRange
	Concat          = regex.Concat
	Union           = regex.Union
	Star            = regex.Star
)

var (
	Plus           = regex.Plus
	Optional       = regex.Optional
	ConstantString = regex.ConstantString
	WhiteSpace     = regex.WhiteSpace
)

// LeafBuilder produces the satellite value for one input lexeme, given its
// raw matched text.
type LeafBuilder func(ctx any, contents string) any

// Reducer produces the satellite value for a production's left-hand side
// from the satellites of its right-hand side symbols, in source order.
type Reducer func(ctx any, satellites []any) any

// IdentityReducer propagates its single child's satellite unchanged.
func IdentityReducer() Reducer {
	return func(ctx any, satellites []any) any { return satellites[0] }
}

// EmptyReducer builds a fixed default satellite for an empty production,
// ignoring the (necessarily empty) satellite list.
func EmptyReducer(build func(ctx any) any) Reducer {
	return func(ctx any, _ []any) any { return build(ctx) }
}

func adaptLeaf(lb LeafBuilder) translate.LeafBuilder {
	return translate.LeafBuilder(lb)
}

func adaptReducer(r Reducer) translate.Reducer {
	return translate.Reducer(r)
}
