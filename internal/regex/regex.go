// Package regex implements a small regular-expression AST and its
// compilation to an NFA fragment via Thompson's construction. Grounded on
// the teacher's internal/ictiobus/lex/regex.go fragment-joining helpers
// (createSingleSymbolFA, createJuxtapositionFA, createKleeneStarFA,
// createAlternationFA), which never reached a working RegexToNFA in the
// teacher — its own RegexToNFA is a stub that hands lexing off to Go's
// regexp package instead. This package finishes that construction.
package regex

import (
	"fmt"

	"github.com/NadavKahlon/syntax-parser-generator/internal/automaton"
	"github.com/NadavKahlon/syntax-parser-generator/internal/handle"
)

// Node is a regular-expression AST node. The concrete types below are the
// only implementations; Compile type-switches over them.
type Node interface {
	isRegexNode()
}

// SingleCharacter matches exactly one occurrence of Char.
type SingleCharacter struct {
	Char byte
}

func (SingleCharacter) isRegexNode() {}

// CharacterRange matches exactly one byte in [Lo, Hi] inclusive.
type CharacterRange struct {
	Lo, Hi byte
}

func (CharacterRange) isRegexNode() {}

// Concat matches each Part in sequence. An empty Concat matches the empty
// string.
type Concat struct {
	Parts []Node
}

func (Concat) isRegexNode() {}

// Union matches any one of Options.
type Union struct {
	Options []Node
}

func (Union) isRegexNode() {}

// Star matches zero or more repetitions of Inner (Kleene star).
type Star struct {
	Inner Node
}

func (Star) isRegexNode() {}

// Plus matches one or more repetitions of n.
func Plus(n Node) Node {
	return Concat{Parts: []Node{n, Star{Inner: n}}}
}

// Optional matches n or the empty string.
func Optional(n Node) Node {
	return Union{Options: []Node{n, Concat{}}}
}

// ConstantString matches exactly the given literal string.
func ConstantString(s string) Node {
	parts := make([]Node, len(s))
	for i := 0; i < len(s); i++ {
		parts[i] = SingleCharacter{Char: s[i]}
	}
	return Concat{Parts: parts}
}

// WhiteSpace matches a single space, tab, carriage return, or newline byte.
func WhiteSpace() Node {
	return Union{Options: []Node{
		SingleCharacter{Char: ' '},
		SingleCharacter{Char: '\t'},
		SingleCharacter{Char: '\r'},
		SingleCharacter{Char: '\n'},
	}}
}

// Compile performs Thompson's construction for n against nfa, adding new
// states and transitions as needed, and returns the fragment's entry and
// exit states. The exit state is never labeled or made initial by Compile;
// callers are responsible for wiring the returned fragment into a larger
// automaton (see internal/lexer, which unions one fragment per lexeme
// descriptor and labels each exit with its lexeme type).
func Compile[L any](nfa *automaton.NFA[byte, L], n Node) (entry, exit handle.Handle[automaton.NFAState]) {
	switch v := n.(type) {
	case SingleCharacter:
		entry, exit = nfa.NewState(), nfa.NewState()
		nfa.Link(entry, exit, v.Char)
		return entry, exit

	case CharacterRange:
		entry, exit = nfa.NewState(), nfa.NewState()
		for c := int(v.Lo); c <= int(v.Hi); c++ {
			nfa.Link(entry, exit, byte(c))
		}
		return entry, exit

	case Concat:
		if len(v.Parts) == 0 {
			entry, exit = nfa.NewState(), nfa.NewState()
			nfa.LinkEpsilon(entry, exit)
			return entry, exit
		}
		entry, exit = Compile(nfa, v.Parts[0])
		for _, part := range v.Parts[1:] {
			partEntry, partExit := Compile(nfa, part)
			nfa.LinkEpsilon(exit, partEntry)
			exit = partExit
		}
		return entry, exit

	case Union:
		entry, exit = nfa.NewState(), nfa.NewState()
		for _, opt := range v.Options {
			optEntry, optExit := Compile(nfa, opt)
			nfa.LinkEpsilon(entry, optEntry)
			nfa.LinkEpsilon(optExit, exit)
		}
		return entry, exit

	case Star:
		entry, exit = nfa.NewState(), nfa.NewState()
		innerEntry, innerExit := Compile(nfa, v.Inner)
		nfa.LinkEpsilon(entry, innerEntry)
		nfa.LinkEpsilon(innerExit, exit)
		nfa.LinkEpsilon(entry, exit)
		nfa.LinkEpsilon(innerExit, innerEntry)
		return entry, exit

	default:
		panic(fmt.Sprintf("regex: unrecognized node type %T", n))
	}
}
