package lrmachine

import (
	"testing"

	"github.com/NadavKahlon/syntax-parser-generator/internal/grammar"
	"github.com/NadavKahlon/syntax-parser-generator/internal/lalr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSumGrammar builds E -> E + T | T; T -> id, left-associative on '+'.
func buildSumGrammar(t *testing.T) (*grammar.Grammar, map[string]grammar.Terminal) {
	g := grammar.New()
	terms := map[string]grammar.Terminal{
		"+":  g.NewTerminal("+"),
		"id": g.NewTerminal("id"),
	}
	plus, err := g.NewBinding([]grammar.Terminal{terms["+"]}, grammar.LeftAssoc)
	require.NoError(t, err)

	e := g.NewNonterminal("E")
	tNT := g.NewNonterminal("T")
	g.SetStart(e)
	g.AddRule(e, []grammar.Symbol{grammar.OfNonterminal(e), grammar.OfTerminal(terms["+"]), grammar.OfNonterminal(tNT)}, plus)
	g.AddRule(e, []grammar.Symbol{grammar.OfNonterminal(tNT)}, -1)
	g.AddRule(tNT, []grammar.Symbol{grammar.OfTerminal(terms["id"])}, -1)

	return g, terms
}

func TestRuntime_AdvanceAcceptsValidSentence(t *testing.T) {
	require := require.New(t)
	g, terms := buildSumGrammar(t)
	table, err := lalr.Build(g)
	require.NoError(err)

	input := []grammar.Terminal{terms["id"], terms["+"], terms["id"], terms["+"], terms["id"]}
	input = append(input, table.EndOfInput)

	r := New(table)
	pos := 0
	for {
		d, err := r.Advance(input[pos])
		require.NoError(err)
		if d.Kind == Accept {
			break
		}
		pos++
		require.Less(pos, len(input))
	}
}

func TestRuntime_DecideExposesEachReduce(t *testing.T) {
	require := require.New(t)
	g, terms := buildSumGrammar(t)
	table, err := lalr.Build(g)
	require.NoError(err)

	input := []grammar.Terminal{terms["id"], terms["+"], terms["id"], table.EndOfInput}

	r := New(table)
	var reduceCount int
	pos := 0
	for {
		d, err := r.Decide(input[pos])
		require.NoError(err)
		switch d.Kind {
		case Shift:
			pos++
		case Reduce:
			reduceCount++
		case Accept:
			// id -> T -> E, '+', id -> T -> E: 4 reduces total.
			require.Equal(4, reduceCount)
			return
		}
	}
}

func TestRuntime_DecideReportsSyntaxError(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	g, terms := buildSumGrammar(t)
	table, err := lalr.Build(g)
	require.NoError(err)

	r := New(table)
	_, err = r.Decide(terms["+"])
	require.Error(err)
	var syntaxErr *SyntaxError
	require.ErrorAs(err, &syntaxErr)
	assert.Equal(terms["+"], syntaxErr.Terminal)
	assert.NotEmpty(syntaxErr.Expected)
}
