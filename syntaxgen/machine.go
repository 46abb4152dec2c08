package syntaxgen

import (
	"fmt"

	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/lexer"
	"github.com/NadavKahlon/syntax-parser-generator/internal/translate"
)

// Machine is a compiled lexer+parser+translator, ready to run against any
// number of inputs. It holds no per-run state, so one Machine may be used
// by multiple goroutines at once, each calling Translate independently.
type Machine struct {
	analyzer   *lexer.Analyzer
	translator *translate.Translator
	typeToTerm map[lexer.Type]grammar.Terminal
	grammar    *grammar.Grammar
}

// Translate lexes r in full and then parses and translates the resulting
// token stream, threading ctx through every leaf builder and reducer, and
// returning the single satellite value produced by the start symbol's
// reduction. Any lexeme whose type was dubbed via SkipPattern (no grammar
// terminal) is mined out but never handed to the parser — this is a
// facade-level convenience beyond anything spec.md or the original
// implementation describes (see DESIGN.md and SkipPattern).
func (m *Machine) Translate(ctx any, r lexer.Reader) (any, error) {
	lexemes, err := m.analyzer.Tokens(r)
	if err != nil {
		return nil, fmt.Errorf("syntaxgen: lexing failed: %w", err)
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

// TranslateString is a Translate convenience over an in-memory string.
func (m *Machine) TranslateString(ctx any, s string) (any, error) {
	return m.Translate(ctx, lexer.NewByteReader([]byte(s)))
}
