package lexer

import (
	"testing"

	"github.com/NadavKahlon/syntax-parser-generator/internal/handle"
	"github.com/NadavKahlon/syntax-parser-generator/internal/regex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mintTypes hands back n distinct lexer.Type values for use in a test, in
// ascending order, since Type handles can only be minted through a real
// arena.
func mintTypes(n int) []Type {
	var arena handle.HandledVec[lexemeTypeTag, struct{}]
	out := make([]Type, n)
	for i := 0; i < n; i++ {
		out[i] = arena.Insert(struct{}{})
	}
	return out
}

func TestAnalyzer_LongestMatchBeatsKeywordWhenLonger(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	types := mintTypes(2)
	descriptors := []Descriptor{
		Keyword(types[0], "if"),
		{Type: types[1], Pattern: regex.Plus(regex.CharacterRange{Lo: 'a', Hi: 'z'})},
	}

	a, err := Build(descriptors)
	require.NoError(err)

	r := NewByteReader([]byte("iffy"))
	lex, ok, err := a.Next(r)
	require.NoError(err)
	require.True(ok)
	assert.Equal("iffy", lex.Contents)
	assert.Equal(types[1], lex.Type)
}

func TestAnalyzer_KeywordWinsTieOnLengthByPriority(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	types := mintTypes(2)
	descriptors := []Descriptor{
		Keyword(types[0], "if"),
		{Type: types[1], Pattern: regex.Plus(regex.CharacterRange{Lo: 'a', Hi: 'z'})},
	}

	a, err := Build(descriptors)
	require.NoError(err)

	r := NewByteReader([]byte("if"))
	lex, ok, err := a.Next(r)
	require.NoError(err)
	require.True(ok)
	assert.Equal("if", lex.Contents)
	assert.Equal(types[0], lex.Type)
}

func TestAnalyzer_TokensOverWhitespaceSeparatedInput(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	types := mintTypes(2)
	ws, word := types[0], types[1]
	descriptors := []Descriptor{
		{Type: ws, Pattern: regex.Plus(regex.WhiteSpace())},
		{Type: word, Pattern: regex.Plus(regex.CharacterRange{Lo: 'a', Hi: 'z'})},
	}

	a, err := Build(descriptors)
	require.NoError(err)

	r := NewByteReader([]byte("the cat sat"))
	toks, err := a.Tokens(r)
	require.NoError(err)

	var words []string
	for _, tok := range toks {
		if tok.Type == word {
			words = append(words, tok.Contents)
		}
	}
	assert.Equal([]string{"the", "cat", "sat"}, words)
}

func TestAnalyzer_LexicalErrorOnUnrecognizedByte(t *testing.T) {
	require := require.New(t)

	types := mintTypes(1)
	descriptors := []Descriptor{
		{Type: types[0], Pattern: regex.Plus(regex.CharacterRange{Lo: 'a', Hi: 'z'})},
	}
	a, err := Build(descriptors)
	require.NoError(err)

	r := NewByteReader([]byte("abc!"))
	_, err = a.Tokens(r)
	require.ErrorIs(err, ErrLexicalError)
}

func TestBuild_RejectsEmptyMatchingPattern(t *testing.T) {
	require := require.New(t)

	types := mintTypes(1)
	descriptors := []Descriptor{
		{Type: types[0], Pattern: regex.Star{Inner: regex.SingleCharacter{Char: 'a'}}},
	}
	_, err := Build(descriptors)
	require.Error(err)
}

func TestBuild_RejectsEmptyDescriptorList(t *testing.T) {
	require := require.New(t)
	_, err := Build(nil)
	require.Error(err)
}
