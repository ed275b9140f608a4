//
// Tokenizer converts a byte stream into a lazy, pre-loaded sequence of
// tokens. The lexical rules and the permissive starting-symbol ASCII range
// are ported from the original tokenizer this dialect was distilled from;
// see SPEC_FULL.md's SUPPLEMENTED FEATURES section.
//

package minischeme

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Tokenizer lexes a byte stream into Tokens, one at a time, pre-loading the
// first token at construction per the spec's IsEnd/GetToken/Next contract.
type Tokenizer struct {
	r      *bufio.Reader
	isEnd  bool
	curTok Token
}

// NewTokenizer constructs a Tokenizer over r and pre-loads the first token.
func NewTokenizer(r io.Reader) (*Tokenizer, error) {
	t := &Tokenizer{r: bufio.NewReader(r)}
	if err := t.advance(); err != nil {
		return nil, err
	}
	return t, nil
}

// IsEnd reports whether the stream has been fully consumed.
func (t *Tokenizer) IsEnd() bool {
	return t.isEnd
}

// GetToken returns the current token. Callers must check IsEnd first; once
// the stream ends, GetToken continues to return the last token read.
func (t *Tokenizer) GetToken() Token {
	return t.curTok
}

// Next advances the tokenizer to the next token, or marks the stream ended.
func (t *Tokenizer) Next() error {
	return t.advance()
}

func isStartingSymbol(c byte) bool {
	if c == '<' || c == '=' || c == '>' {
		return true
	}
	if 'A' <= c && c <= 'z' {
		return true
	}
	if c == '*' || c == '/' || c == '#' {
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isInsideSymbol(c byte) bool {
	if isStartingSymbol(c) {
		return true
	}
	if c == '!' || c == '-' || c == '?' {
		return true
	}
	return isDigit(c)
}

// advance reads the next token from the stream into t.curTok, or sets
// t.isEnd when the stream is exhausted.
func (t *Tokenizer) advance() error {
	for {
		b, err := t.r.Peek(1)
		if err == io.EOF {
			t.isEnd = true
			return nil
		}
		if err != nil {
			return newSyntaxError(err.Error())
		}
		if b[0] > 32 {
			break
		}
		t.r.ReadByte()
	}

	c1, _ := t.r.ReadByte()
	switch {
	case c1 == '(':
		t.curTok = Token{typ: tokOpenParen}
	case c1 == ')':
		t.curTok = Token{typ: tokCloseParen}
	case c1 == '.':
		t.curTok = Token{typ: tokDot}
	case c1 == '\'':
		t.curTok = Token{typ: tokQuote}
	case c1 == '+':
		digits := t.readDigits()
		if digits == "" {
			t.curTok = Token{typ: tokSym, name: "+"}
		} else {
			n, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				return newSyntaxError(err.Error())
			}
			t.curTok = Token{typ: tokInteger, num: n}
		}
	case c1 == '-':
		digits := t.readDigits()
		if digits == "" {
			t.curTok = Token{typ: tokSym, name: "-"}
		} else {
			n, err := strconv.ParseInt("-"+digits, 10, 64)
			if err != nil {
				return newSyntaxError(err.Error())
			}
			t.curTok = Token{typ: tokInteger, num: n}
		}
	case isDigit(c1):
		var sb strings.Builder
		sb.WriteByte(c1)
		sb.WriteString(t.readDigits())
		n, err := strconv.ParseInt(sb.String(), 10, 64)
		if err != nil {
			return newSyntaxError(err.Error())
		}
		t.curTok = Token{typ: tokInteger, num: n}
	case c1 == '#':
		return t.advanceHash()
	case isStartingSymbol(c1):
		var sb strings.Builder
		sb.WriteByte(c1)
		for {
			b, err := t.r.Peek(1)
			if err != nil || !isInsideSymbol(b[0]) {
				break
			}
			t.r.ReadByte()
			sb.WriteByte(b[0])
		}
		t.curTok = Token{typ: tokSym, name: sb.String()}
	default:
		return newSyntaxError("unexpected character")
	}
	return nil
}

// readDigits consumes and returns a run of ASCII digits from the stream.
func (t *Tokenizer) readDigits() string {
	var sb strings.Builder
	for {
		b, err := t.r.Peek(1)
		if err != nil || !isDigit(b[0]) {
			break
		}
		t.r.ReadByte()
		sb.WriteByte(b[0])
	}
	return sb.String()
}

// advanceHash handles the '#' lead byte: #t/#f booleans, or a symbol
// beginning with '#'. A boolean is recognized when the character following
// 't'/'f' is whitespace or end-of-stream.
func (t *Tokenizer) advanceHash() error {
	_, err := t.r.Peek(1)
	if err != nil {
		t.curTok = Token{typ: tokSym, name: "#"}
		return nil
	}
	c2, _ := t.r.ReadByte()
	stack := "#" + string(c2)

	next, nextErr := t.r.Peek(1)
	atBoundary := nextErr != nil || next[0] <= 32
	if atBoundary {
		switch c2 {
		case 't':
			t.curTok = Token{typ: tokBoolTrue}
		case 'f':
			t.curTok = Token{typ: tokBoolFalse}
		default:
			t.curTok = Token{typ: tokSym, name: stack}
		}
		return nil
	}
	if isInsideSymbol(next[0]) {
		var sb strings.Builder
		sb.WriteString(stack)
		for {
			b, err := t.r.Peek(1)
			if err != nil || !isInsideSymbol(b[0]) {
				break
			}
			t.r.ReadByte()
			sb.WriteByte(b[0])
		}
		t.curTok = Token{typ: tokSym, name: sb.String()}
		return nil
	}
	t.curTok = Token{typ: tokSym, name: stack}
	return nil
}
