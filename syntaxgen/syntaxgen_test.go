package syntaxgen

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCalculator wires the scenario-3 style arithmetic grammar entirely
// through the string-dubbing Builder surface: int/+/-/*// lexemes, two
// precedence bindings, and integer-valued leaf/reduce callbacks.
func buildCalculator() *Machine {
	b := NewBuilder()

	b.SkipPattern("ws", WhiteSpace())
	b.DubLexemeType("int", Plus(CharacterRange{Lo: '0', Hi: '9'}))
	b.DubSpecialChar("+", '+')
	b.DubSpecialChar("-", '-')
	b.DubSpecialChar("*", '*')
	b.DubSpecialChar("/", '/')
	b.DubSpecialChar("(", '(')
	b.DubSpecialChar(")", ')')

	mulDiv := b.NewBinding([]string{"*", "/"}, LeftAssoc)
	addSub := b.NewBinding([]string{"+", "-"}, LeftAssoc)

	b.NewNonterminal("E")
	b.SetStartNonterminal("E")

	b.RegisterBoundRule("E", []string{"E", "+", "E"}, addSub, func(_ any, s []any) any { return s[0].(int) + s[2].(int) })
	b.RegisterBoundRule("E", []string{"E", "-", "E"}, addSub, func(_ any, s []any) any { return s[0].(int) - s[2].(int) })
	b.RegisterBoundRule("E", []string{"E", "*", "E"}, mulDiv, func(_ any, s []any) any { return s[0].(int) * s[2].(int) })
	b.RegisterBoundRule("E", []string{"E", "/", "E"}, mulDiv, func(_ any, s []any) any { return s[0].(int) / s[2].(int) })
	b.RegisterRule("E", []string{"(", "E", ")"}, func(_ any, s []any) any { return s[1] })
	b.RegisterRule("E", []string{"int"}, IdentityReducer())

	b.SetLeafSatelliteBuilder("int", func(_ any, contents string) any {
		n, err := strconv.Atoi(contents)
		if err != nil {
			panic(err)
		}
		return n
	})
	b.SetDefaultLeafSatelliteBuilder(func(_ any, _ string) any { return nil })

	return b.Build()
}

func TestMachine_TranslateString_RespectsPrecedence(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := buildCalculator()

	result, err := m.TranslateString(nil, "2 + 3 * 4")
	require.NoError(err)
	assert.Equal(14, result)
}

func TestMachine_TranslateString_HandlesParens(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := buildCalculator()

	result, err := m.TranslateString(nil, "(2 + 3) * 4")
	require.NoError(err)
	assert.Equal(20, result)
}

func TestMachine_TranslateString_SkipsWhitespace(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := buildCalculator()

	result, err := m.TranslateString(nil, "10   -\t5")
	require.NoError(err)
	assert.Equal(5, result)
}

func TestMachine_TranslateString_RejectsMalformedInput(t *testing.T) {
	require := require.New(t)
	m := buildCalculator()

	_, err := m.TranslateString(nil, "* 5")
	require.Error(err)
}

// buildDragonBookExpression mirrors the textbook E -> E+T | T; T -> T*F | F;
// F -> (E) | id grammar (Aho/Sethi/Ullman's canonical 12-state LALR(1)
// running example), built without any explicit bindings: the grammar's own
// shape, not precedence declarations, resolves +'s and *'s associativity.
func buildDragonBookExpression() *Machine {
	b := NewBuilder()

	b.DubLexemeType("id", Plus(CharacterRange{Lo: 'a', Hi: 'z'}))
	b.DubSpecialChar("+", '+')
	b.DubSpecialChar("*", '*')
	b.DubSpecialChar("(", '(')
	b.DubSpecialChar(")", ')')

	b.NewNonterminal("E")
	b.NewNonterminal("T")
	b.NewNonterminal("F")
	b.SetStartNonterminal("E")

	b.RegisterRule("E", []string{"E", "+", "T"}, func(_ any, s []any) any { return "(" + s[0].(string) + "+" + s[2].(string) + ")" })
	b.RegisterIdentityRule("E", "T")
	b.RegisterRule("T", []string{"T", "*", "F"}, func(_ any, s []any) any { return "(" + s[0].(string) + "*" + s[2].(string) + ")" })
	b.RegisterIdentityRule("T", "F")
	b.RegisterRule("F", []string{"(", "E", ")"}, func(_ any, s []any) any { return "(" + s[1].(string) + ")" })
	b.RegisterIdentityRule("F", "id")

	b.SetDefaultLeafSatelliteBuilder(func(_ any, contents string) any { return contents })

	return b.Build()
}

func TestMachine_DragonBookExpression_BuildsLeftAssociativeParse(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := buildDragonBookExpression()

	result, err := m.TranslateString(nil, "a+b*c+(d+e)")
	require.NoError(err)
	assert.Equal("((a+(b*c))+((d+e)))", result)
}

func TestBuilder_Build_PanicsOnMissingStartSymbol(t *testing.T) {
	assert := assert.New(t)
	b := NewBuilder()
	b.DubLexemeType("id", Plus(CharacterRange{Lo: 'a', Hi: 'z'}))
	b.NewNonterminal("E")
	b.RegisterIdentityRule("E", "id")

	assert.Panics(func() { b.Build() })
}

func TestBuilder_NewBinding_PanicsOnDoublyBoundTerminal(t *testing.T) {
	assert := assert.New(t)
	b := NewBuilder()
	b.DubSpecialChar("+", '+')

	assert.Panics(func() {
		b.NewBinding([]string{"+"}, LeftAssoc)
		b.NewBinding([]string{"+"}, RightAssoc)
	})
}
