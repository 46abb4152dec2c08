package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildArithmeticGrammar() (*Grammar, map[string]Terminal, map[string]Nonterminal) {
	g := New()
	terms := map[string]Terminal{
		"+": g.NewTerminal("+"),
		"*": g.NewTerminal("*"),
		"(": g.NewTerminal("("),
		")": g.NewTerminal(")"),
		"n": g.NewTerminal("num"),
	}
	nts := map[string]Nonterminal{
		"E": g.NewNonterminal("E"),
		"T": g.NewNonterminal("T"),
		"F": g.NewNonterminal("F"),
	}
	plusBinding, _ := g.NewBinding([]Terminal{terms["+"]}, LeftAssoc)
	starBinding, _ := g.NewBinding([]Terminal{terms["*"]}, LeftAssoc)

	g.SetStart(nts["E"])
	g.AddRule(nts["E"], []Symbol{OfNonterminal(nts["E"]), OfTerminal(terms["+"]), OfNonterminal(nts["T"])}, plusBinding)
	g.AddRule(nts["E"], []Symbol{OfNonterminal(nts["T"])}, -1)
	g.AddRule(nts["T"], []Symbol{OfNonterminal(nts["T"]), OfTerminal(terms["*"]), OfNonterminal(nts["F"])}, starBinding)
	g.AddRule(nts["T"], []Symbol{OfNonterminal(nts["F"])}, -1)
	g.AddRule(nts["F"], []Symbol{OfTerminal(terms["("]), OfNonterminal(nts["E"]), OfTerminal(terms[")"])}, -1)
	g.AddRule(nts["F"], []Symbol{OfTerminal(terms["n"])}, -1)

	return g, terms, nts
}

func TestGrammar_RuleTagsAreInsertionOrder(t *testing.T) {
	assert := assert.New(t)
	g, _, _ := buildArithmeticGrammar()

	for i, r := range g.Rules() {
		assert.Equal(i, r.Tag)
	}
}

func TestGrammar_RulesForReturnsOnlyMatchingHead(t *testing.T) {
	assert := assert.New(t)
	g, _, nts := buildArithmeticGrammar()

	tags := g.RulesFor(nts["F"])
	assert.Len(tags, 2)
	for _, tag := range tags {
		assert.Equal(nts["F"], g.Rules()[tag].LHS)
	}
}

func TestGrammar_NewBindingRejectsDoubleBinding(t *testing.T) {
	require := require.New(t)
	g := New()
	plus := g.NewTerminal("+")

	_, err := g.NewBinding([]Terminal{plus}, LeftAssoc)
	require.NoError(err)

	_, err = g.NewBinding([]Terminal{plus}, RightAssoc)
	require.Error(err)
}

func TestGrammar_Augmented_AddsMockStartRule(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	g, _, nts := buildArithmeticGrammar()

	aug, startPrime, endOfInput := g.Augmented()

	require.Len(aug.Rules(), len(g.Rules())+1)
	mockRule := aug.Rules()[len(aug.Rules())-1]
	assert.Equal(startPrime, mockRule.LHS)
	require.Len(mockRule.RHS, 1)
	assert.Equal(OfNonterminal(nts["E"]), mockRule.RHS[0])

	for _, t := range g.Terminals() {
		assert.NotEqual(endOfInput, t)
	}
	for _, nt := range g.Nonterminals() {
		assert.NotEqual(startPrime, nt)
	}

	augStart, ok := aug.StartSymbol()
	require.True(ok)
	assert.Equal(startPrime, augStart)
}

func TestGrammar_Augmented_DoesNotMutateOriginal(t *testing.T) {
	assert := assert.New(t)
	g, _, _ := buildArithmeticGrammar()
	before := len(g.Rules())

	g.Augmented()

	assert.Equal(before, len(g.Rules()))
}
