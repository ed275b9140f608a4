//
// Parser: recursive-descent construction of the cons-cell AST from a
// Tokenizer. Ported from the original Read/ReadList algorithm; see
// _examples/original_source/basic/parser.cpp.
//

package minischeme

// Read parses exactly one Value from t and requires the entire token
// stream be consumed; any remaining tokens are a SyntaxError.
func Read(t *Tokenizer) (*Value, error) {
	v, err := read1(t)
	if err != nil {
		return nil, err
	}
	if !t.IsEnd() {
		return nil, newSyntaxError("trailing input after expression")
	}
	return v, nil
}

// read1 reads a single form and advances past it.
func read1(t *Tokenizer) (*Value, error) {
	if t.IsEnd() {
		return nil, newSyntaxError("unexpected end of input")
	}
	tok := t.GetToken()
	switch tok.typ {
	case tokOpenParen:
		if err := t.Next(); err != nil {
			return nil, err
		}
		return readList(t)
	case tokCloseParen:
		if err := t.Next(); err != nil {
			return nil, err
		}
		return closeMarker(), nil
	case tokBoolTrue:
		if err := t.Next(); err != nil {
			return nil, err
		}
		return boolValue(true), nil
	case tokBoolFalse:
		if err := t.Next(); err != nil {
			return nil, err
		}
		return boolValue(false), nil
	case tokQuote:
		if err := t.Next(); err != nil {
			return nil, err
		}
		if t.IsEnd() {
			return nil, newSyntaxError("quote at end of input")
		}
		return symValue("quote"), nil
	case tokInteger:
		n := tok.num
		if err := t.Next(); err != nil {
			return nil, err
		}
		return integerValue(n), nil
	case tokSym:
		name := tok.name
		if err := t.Next(); err != nil {
			return nil, err
		}
		return symValue(name), nil
	case tokDot:
		if err := t.Next(); err != nil {
			return nil, err
		}
		return symValue("."), nil
	default:
		return nil, newSyntaxError("unrecognized token")
	}
}

// readList builds a proper or dotted list, having already consumed the
// opening paren.
func readList(t *Tokenizer) (*Value, error) {
	first, err := read1(t)
	if err != nil {
		return nil, err
	}
	if first.isCloseMarker() {
		// A literal "()" parses to absence, not a materialized empty-list
		// Pair: nested, this embeds directly as an absent car/cdr slot;
		// at the top level, Run treats a nil result as "parsing yielded
		// nothing" and reports RuntimeError.
		return nil, nil
	}
	if first.isSymNamed(".") {
		return nil, newSyntaxError("list cannot begin with '.'")
	}

	head := pairValue(first, nil)
	tail := head

	for {
		second, err := read1(t)
		if err != nil {
			return nil, err
		}
		if second.isCloseMarker() {
			return head, nil
		}
		if second.isSymNamed(".") {
			x, err := read1(t)
			if err != nil {
				return nil, err
			}
			if x.isCloseMarker() {
				return nil, newSyntaxError("missing value after '.'")
			}
			closeTok, err := read1(t)
			if err != nil {
				return nil, err
			}
			if !closeTok.isCloseMarker() {
				return nil, newSyntaxError("expected ')' after dotted tail")
			}
			tail.Cdr = x
			return head, nil
		}
		next := pairValue(second, nil)
		tail.Cdr = next
		tail = next
	}
}
