// Package lexer builds a lexical analyzer out of a priority-ordered list of
// lexeme descriptors (each a regex.Node tagged with a lexeme type), compiles
// them into a single minimized DFA, and drives that DFA with a longest-match
// tokenizing loop. Grounded on the teacher's internal/ictiobus/lex package
// (lex.go, lazy.go), replumbed from a regexp.Regexp-driven scanner to the
// compiled DFA from internal/automaton.
package lexer

import (
	"errors"
	"fmt"

	"github.com/NadavKahlon/syntax-parser-generator/internal/automaton"
	"github.com/NadavKahlon/syntax-parser-generator/internal/handle"
	"github.com/NadavKahlon/syntax-parser-generator/internal/regex"
)

// lexemeTypeTag phantom-tags handles identifying a lexeme type.
type lexemeTypeTag struct{}

// Type identifies one of the lexeme kinds an Analyzer was built to
// recognize (keyword, identifier, operator, whitespace, ...).
type Type = handle.Handle[lexemeTypeTag]

// Descriptor associates a lexeme Type with the pattern that recognizes it.
// When two descriptors' patterns both match the longest possible prefix of
// the remaining input, the one that appears earlier in the slice passed to
// Build wins — this is what lets, e.g., a keyword descriptor beat a more
// general identifier descriptor on the same text.
type Descriptor struct {
	Type    Type
	Pattern regex.Node
}

// Keyword is a convenience constructor for a descriptor matching exactly the
// literal string kw.
func Keyword(t Type, kw string) Descriptor {
	return Descriptor{Type: t, Pattern: regex.ConstantString(kw)}
}

// SpecialChar is a convenience constructor for a descriptor matching exactly
// one literal byte.
func SpecialChar(t Type, c byte) Descriptor {
	return Descriptor{Type: t, Pattern: regex.SingleCharacter{Char: c}}
}

// Lexeme is one recognized token: its type and the exact input bytes
// matched.
type Lexeme struct {
	Type     Type
	Contents string
}

// ErrLexicalError is returned by Tokens when no descriptor's pattern matches
// any nonempty prefix of the remaining input. Resolves spec §9's open
// question on lexical-error handling: report through the iterator's error
// return rather than panicking, matching the teacher's lazyLex.Next (which
// produces an error-class token for unrecoverable input instead of
// panicking).
var ErrLexicalError = errors.New("lexer: no lexeme pattern matches input at current position")

// Analyzer recognizes lexemes by running a single minimized DFA compiled
// from all of its descriptors' patterns.
type Analyzer struct {
	dfa *automaton.DFA[byte, Type]
}

// Build compiles descriptors into an Analyzer. Descriptors are tried in
// priority order as described on Descriptor. Build fails if any descriptor's
// pattern matches the empty string, since such a descriptor could never let
// the tokenizer make progress.
func Build(descriptors []Descriptor) (*Analyzer, error) {
	if len(descriptors) == 0 {
		return nil, errors.New("lexer: at least one descriptor is required")
	}

	nfa := &automaton.NFA[byte, int]{}
	start := nfa.NewState()
	nfa.SetInitialState(start)
	for i, d := range descriptors {
		entry, exit := regex.Compile[int](nfa, d.Pattern)
		nfa.LinkEpsilon(start, entry)
		nfa.Label(exit, i)
	}

	reduce := func(labels []int) (int, bool) {
		if len(labels) == 0 {
			return 0, false
		}
		best := labels[0]
		for _, l := range labels[1:] {
			if l < best {
				best = l
			}
		}
		return best, true
	}

	indexed := automaton.SubsetConstruct[byte, int, int](nfa, reduce)
	indexed = automaton.Minimize[byte, int](indexed)

	startState, ok := indexed.InitialState()
	if !ok {
		return nil, errors.New("lexer: compiled automaton has no initial state")
	}
	if _, labeled := indexed.GetLabel(startState); labeled {
		return nil, errors.New("lexer: a descriptor's pattern matches the empty string")
	}

	dfa := automaton.Relabel[byte, int, Type](indexed, func(i int) Type {
		return descriptors[i].Type
	})

	return &Analyzer{dfa: dfa}, nil
}

// Next reads the single longest lexeme available at the reader's current
// position, consuming its bytes, and returns it. At end of input with
// nothing left to read it returns ok=false with a nil error. If the longest
// match of any prefix of the remaining input is zero bytes (no descriptor's
// pattern matches even one byte), it returns ErrLexicalError and leaves the
// reader positioned at the offending byte.
func (a *Analyzer) Next(r Reader) (lex Lexeme, ok bool, err error) {
	start, hasStart := a.dfa.InitialState()
	if !hasStart {
		return Lexeme{}, false, fmt.Errorf("lexer: analyzer has no compiled automaton")
	}

	head := r.Mark()
	if _, more := r.Next(); !more {
		return Lexeme{}, false, nil
	}
	r.Reset(head)

	cur := start
	var contents []byte
	bestLen := -1
	var bestType Type
	bestMark := head

	for {
		beforeByte := r.Mark()
		b, more := r.Next()
		if !more {
			break
		}
		next, found := a.dfa.Step(cur, b)
		if !found {
			r.Reset(beforeByte)
			break
		}
		cur = next
		contents = append(contents, b)
		if t, labeled := a.dfa.GetLabel(cur); labeled {
			bestLen = len(contents)
			bestType = t
			bestMark = r.Mark()
		}
	}

	if bestLen < 0 {
		r.Reset(head)
		return Lexeme{}, false, ErrLexicalError
	}

	r.Reset(bestMark)
	return Lexeme{Type: bestType, Contents: string(contents[:bestLen])}, true, nil
}

// Tokens drains r completely, returning every lexeme in order. It stops at
// the first ErrLexicalError.
func (a *Analyzer) Tokens(r Reader) ([]Lexeme, error) {
	var out []Lexeme
	for {
		lex, ok, err := a.Next(r)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, lex)
	}
}
