//
// Tests for the tokenizer, grounded on
// _examples/nlfiedler-goswat/src/pkg/liswat/lexer_test.go's table-driven
// style, adapted to the IsEnd/GetToken/Next pull API.
//

package minischeme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// collectTokens drains a Tokenizer into a slice for easy comparison.
func collectTokens(t *testing.T, input string) []Token {
	tok, err := NewTokenizer(strings.NewReader(input))
	assert.NoError(t, err)
	var out []Token
	for !tok.IsEnd() {
		out = append(out, tok.GetToken())
		assert.NoError(t, tok.Next())
	}
	return out
}

func TestTokenizerBrackets(t *testing.T) {
	toks := collectTokens(t, "()")
	assert.Equal(t, []Token{{typ: tokOpenParen}, {typ: tokCloseParen}}, toks)
}

func TestTokenizerIntegers(t *testing.T) {
	toks := collectTokens(t, "42 -7 +3")
	assert.Equal(t, []Token{
		{typ: tokInteger, num: 42},
		{typ: tokInteger, num: -7},
		{typ: tokInteger, num: 3},
	}, toks)
}

func TestTokenizerBareSign(t *testing.T) {
	toks := collectTokens(t, "+ -")
	assert.Equal(t, []Token{
		{typ: tokSym, name: "+"},
		{typ: tokSym, name: "-"},
	}, toks)
}

func TestTokenizerBooleans(t *testing.T) {
	toks := collectTokens(t, "#t #f")
	assert.Equal(t, []Token{{typ: tokBoolTrue}, {typ: tokBoolFalse}}, toks)
}

func TestTokenizerBooleanAtEOF(t *testing.T) {
	toks := collectTokens(t, "#t")
	assert.Equal(t, []Token{{typ: tokBoolTrue}}, toks)
}

func TestTokenizerSymbols(t *testing.T) {
	toks := collectTokens(t, "foo bar? set!")
	assert.Equal(t, []Token{
		{typ: tokSym, name: "foo"},
		{typ: tokSym, name: "bar?"},
		{typ: tokSym, name: "set!"},
	}, toks)
}

func TestTokenizerQuoteAndDot(t *testing.T) {
	toks := collectTokens(t, "' .")
	assert.Equal(t, []Token{{typ: tokQuote}, {typ: tokDot}}, toks)
}

func TestTokenizerCompareOperators(t *testing.T) {
	toks := collectTokens(t, "= < > <= >=")
	assert.Equal(t, []Token{
		{typ: tokSym, name: "="},
		{typ: tokSym, name: "<"},
		{typ: tokSym, name: ">"},
		{typ: tokSym, name: "<="},
		{typ: tokSym, name: ">="},
	}, toks)
}

func TestTokenizerEmpty(t *testing.T) {
	tok, err := NewTokenizer(strings.NewReader(""))
	assert.NoError(t, err)
	assert.True(t, tok.IsEnd())
}
