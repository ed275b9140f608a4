//
// Preprocessor and top-level Run: trims and desugars the input string,
// parses it, and dispatches evaluation, matching
// _examples/original_source/basic/scheme.cpp's Interpreter::Run.
//

package minischeme

import "strings"

// trivialSentinel is returned by Run for blank input.
const trivialSentinel = ""

// Run evaluates a single top-level Scheme expression and returns its
// canonical serialization, or a *SchemeError of kind SyntaxErrorKind or
// RuntimeErrorKind.
func Run(input string) (string, error) {
	if input == "" {
		return trivialSentinel, nil
	}
	if input[0] == ' ' {
		return "", newSyntaxError("leading space")
	}
	str := strings.TrimRight(input, " ")

	if str[0] == '\'' {
		if len(str) > 1 && str[1] == ' ' {
			return "", newSyntaxError("quote followed by space")
		}
		str = "(quote " + str[1:] + ")"
	}

	ast, err := parseTopLevel(str)
	if err != nil {
		return "", newSyntaxError(err.Error())
	}

	if ast == nil {
		return "", newRuntimeError("empty parse result")
	}
	if ast.isCloseMarker() {
		return "", newSyntaxError("stray close paren")
	}
	if ast.isInteger() || ast.isSym() || ast.isBool() {
		return serialize(ast)
	}
	if !ast.isPair() {
		return "", newRuntimeError("unrecognized top-level form")
	}

	if ast.Car == nil {
		return "", newRuntimeError("application with absent operator")
	}

	if !ast.Car.isSym() {
		return "", newRuntimeError("operator must be a built-in name")
	}
	name := ast.Car.symName()

	if name == "quote" {
		return serializeQuoteResult(ast.Cdr)
	}

	if _, ok := runDispatchNames[name]; !ok {
		return "", newRuntimeError("unbound symbol in operator position: " + name)
	}

	result, err := evalValue(ast)
	if err != nil {
		return "", err
	}
	if result.isPair() {
		if result.Car == nil && result.Cdr == nil {
			return "()", nil
		}
		inner, err := serializePair(result)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	}
	return serialize(result)
}

// serializeQuoteResult implements scheme.cpp's special-cased top-level
// serialization for a quote form: unlike every other builtin, the result
// is not "evaluate, then wrap pair results in parens". A cdr that is not a
// pair is serialized as it is; otherwise the cdr's car is serialized and
// wrapped in parens.
func serializeQuoteResult(cdr *Value) (string, error) {
	if cdr == nil {
		return "", newSyntaxError("quote requires a form")
	}
	if !cdr.isPair() {
		return serialize(cdr)
	}
	if cdr.Car == nil {
		return "", newRuntimeError("quote: absent car")
	}
	inner, err := serialize(cdr.Car)
	if err != nil {
		return "", err
	}
	return "(" + inner + ")", nil
}

// parseTopLevel tokenizes and parses str, requiring the entire stream to
// be consumed.
func parseTopLevel(str string) (*Value, error) {
	tok, err := NewTokenizer(strings.NewReader(str))
	if err != nil {
		return nil, err
	}
	return Read(tok)
}
