package main

import (
	"github.com/NadavKahlon/syntax-parser-generator/internal/lexer"
	"github.com/NadavKahlon/syntax-parser-generator/internal/regex"
)

// reportingMachine wraps internal/lexer directly (rather than going through
// syntaxgen.Machine) so this tool can report every lexeme the demonstration
// set recognizes, including whitespace — a real Machine.Translate silently
// discards lexemes dubbed via syntaxgen.SkipPattern, which is exactly the
// behavior this tool exists to let a developer see past.
type reportingMachine struct {
	analyzer *lexer.Analyzer
	names    *lexer.Types
}

func newReportingMachine() *reportingMachine {
	names := lexer.NewTypes()

	ws := names.New("whitespace")
	id := names.New("id")
	num := names.New("int")
	plus := names.New("+")
	minus := names.New("-")
	star := names.New("*")
	slash := names.New("/")
	lparen := names.New("(")
	rparen := names.New(")")

	descriptors := []lexer.Descriptor{
		{Type: ws, Pattern: regex.Plus(regex.WhiteSpace())},
		{Type: id, Pattern: regex.Plus(regex.CharacterRange{Lo: 'a', Hi: 'z'})},
		{Type: num, Pattern: regex.Plus(regex.CharacterRange{Lo: '0', Hi: '9'})},
		lexer.SpecialChar(plus, '+'),
		lexer.SpecialChar(minus, '-'),
		lexer.SpecialChar(star, '*'),
		lexer.SpecialChar(slash, '/'),
		lexer.SpecialChar(lparen, '('),
		lexer.SpecialChar(rparen, ')'),
	}

	analyzer, err := lexer.Build(descriptors)
	if err != nil {
		panic(err)
	}
	return &reportingMachine{analyzer: analyzer, names: names}
}

func (m *reportingMachine) tokens(src []byte) ([]lexeme, error) {
	lexemes, err := m.analyzer.Tokens(lexer.NewByteReader(src))
	out := make([]lexeme, len(lexemes))
	for i, lx := range lexemes {
		out[i] = lexeme{typeName: m.names.Name(lx.Type), contents: lx.Contents}
	}
	return out, err
}
