//
// Tests for the parser. Grounded on
// _examples/nlfiedler-goswat/src/pkg/liswat/parser_test.go's
// parse-then-serialize verification idiom.
//

package minischeme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// parserVerify parses input and asserts its canonical serialization matches
// expected, mirroring the teacher's round-trip style of parser testing.
func parserVerify(t *testing.T, input, expected string) {
	tok, err := NewTokenizer(strings.NewReader(input))
	if !assert.NoErrorf(t, err, "NewTokenizer(%q)", input) {
		return
	}
	v, err := Read(tok)
	if !assert.NoErrorf(t, err, "Read(%q)", input) {
		return
	}
	got, err := serialize(v)
	assert.NoErrorf(t, err, "serialize result of %q", input)
	assert.Equalf(t, expected, got, "parse+serialize of %q", input)
}

func TestParseAtoms(t *testing.T) {
	parserVerify(t, "5", "5")
	parserVerify(t, "-5", "-5")
	parserVerify(t, "foo", "foo")
	parserVerify(t, "#t", "#t")
	parserVerify(t, "#f", "#f")
}

func TestParseProperList(t *testing.T) {
	parserVerify(t, "(1 2 3)", "1 2 3")
}

func TestParseDottedPair(t *testing.T) {
	parserVerify(t, "(1 . 2)", "1 . 2")
}

func TestParseNestedList(t *testing.T) {
	parserVerify(t, "(1 (2 3) 4)", "1 2 3 4")
}

func TestParseEmptyListIsAbsence(t *testing.T) {
	tok, err := NewTokenizer(strings.NewReader("()"))
	assert.NoError(t, err)
	v, err := Read(tok)
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestParseTrailingInputIsSyntaxError(t *testing.T) {
	tok, err := NewTokenizer(strings.NewReader("1 2"))
	assert.NoError(t, err)
	_, err = Read(tok)
	assert.True(t, IsSyntaxError(err))
}

func TestParseListCannotBeginWithDot(t *testing.T) {
	tok, err := NewTokenizer(strings.NewReader("(. 1)"))
	assert.NoError(t, err)
	_, err = Read(tok)
	assert.True(t, IsSyntaxError(err))
}
