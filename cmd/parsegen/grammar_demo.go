package main

import (
	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/lalr"
	"github.com/NadavKahlon/syntax-parser-generator/internal/lexer"
	"github.com/NadavKahlon/syntax-parser-generator/internal/regex"
	"github.com/NadavKahlon/syntax-parser-generator/internal/translate"
)

// expressionMachine is a minimal stand-in for syntaxgen.Machine, built
// directly off internal/grammar, internal/lalr, internal/lexer, and
// internal/translate rather than through the Builder facade, so this tool
// can hand back the raw *lalr.Table for --table alongside a normal
// TranslateString path — exactly the Dragon Book 12-state canonical LALR(1)
// expression grammar (E -> E+T | T; T -> T*F | F; F -> (E) | id).
type expressionMachine struct {
	analyzer   *lexer.Analyzer
	translator *translate.Translator
	idType     lexer.Type
	typeToTerm map[lexer.Type]grammar.Terminal
}

func (m *expressionMachine) TranslateString(ctx any, s string) (any, error) {
	lexemes, err := m.analyzer.Tokens(lexer.NewByteReader([]byte(s)))
	if err != nil {
		return nil, err
	}
	tokens := make([]translate.Token, 0, len(lexemes))
	for _, lx := range lexemes {
		term, ok := m.typeToTerm[lx.Type]
		if !ok {
			continue
		}
		tokens = append(tokens, translate.Token{Terminal: term, Contents: lx.Contents})
	}
	return m.translator.Translate(ctx, tokens)
}

func buildExpressionMachine() (*expressionMachine, *lalr.Table) {
	names := lexer.NewTypes()
	idType := names.New("id")
	plusType := names.New("+")
	starType := names.New("*")
	lparenType := names.New("(")
	rparenType := names.New(")")
	wsType := names.New("ws")

	descriptors := []lexer.Descriptor{
		{Type: idType, Pattern: regex.Plus(regex.CharacterRange{Lo: 'a', Hi: 'z'})},
		lexer.SpecialChar(plusType, '+'),
		lexer.SpecialChar(starType, '*'),
		lexer.SpecialChar(lparenType, '('),
		lexer.SpecialChar(rparenType, ')'),
		{Type: wsType, Pattern: regex.Plus(regex.WhiteSpace())},
	}
	analyzer, err := lexer.Build(descriptors)
	if err != nil {
		panic(err)
	}

	g := grammar.New()
	id := g.NewTerminal("id")
	plus := g.NewTerminal("+")
	star := g.NewTerminal("*")
	lparen := g.NewTerminal("(")
	rparen := g.NewTerminal(")")

	e := g.NewNonterminal("E")
	tNT := g.NewNonterminal("T")
	f := g.NewNonterminal("F")
	g.SetStart(e)

	plusTag := g.AddRule(e, []grammar.Symbol{grammar.OfNonterminal(e), grammar.OfTerminal(plus), grammar.OfNonterminal(tNT)}, -1)
	eToT := g.AddRule(e, []grammar.Symbol{grammar.OfNonterminal(tNT)}, -1)
	starTag := g.AddRule(tNT, []grammar.Symbol{grammar.OfNonterminal(tNT), grammar.OfTerminal(star), grammar.OfNonterminal(f)}, -1)
	tToF := g.AddRule(tNT, []grammar.Symbol{grammar.OfNonterminal(f)}, -1)
	parenTag := g.AddRule(f, []grammar.Symbol{grammar.OfTerminal(lparen), grammar.OfNonterminal(e), grammar.OfTerminal(rparen)}, -1)
	fToID := g.AddRule(f, []grammar.Symbol{grammar.OfTerminal(id)}, -1)

	table, err := lalr.Build(g)
	if err != nil {
		panic(err)
	}

	tr := translate.New(table)
	tr.SetDefaultLeafBuilder(func(_ any, contents string) any { return contents })
	tr.SetReducer(plusTag, func(_ any, s []any) any { return "(" + s[0].(string) + "+" + s[2].(string) + ")" })
	tr.SetReducer(eToT, translate.IdentityReducer())
	tr.SetReducer(starTag, func(_ any, s []any) any { return "(" + s[0].(string) + "*" + s[2].(string) + ")" })
	tr.SetReducer(tToF, translate.IdentityReducer())
	tr.SetReducer(parenTag, func(_ any, s []any) any { return "(" + s[1].(string) + ")" })
	tr.SetReducer(fToID, translate.IdentityReducer())

	return &expressionMachine{
		analyzer:   analyzer,
		translator: tr,
		idType:     idType,
		typeToTerm: map[lexer.Type]grammar.Terminal{
			idType:     id,
			plusType:   plus,
			starType:   star,
			lparenType: lparen,
			rparenType: rparen,
		},
	}, table
}
