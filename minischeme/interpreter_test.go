//
// Tests for Run, covering the scenarios and boundary cases the evaluator's
// quirks were ported to reproduce. Grounded on
// _examples/nlfiedler-goswat/liswat/interpreter_test.go's
// verifyInterpret/verifyInterpretError table-driven helpers.
//

package minischeme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// verifyRun takes a map of inputs to expected outputs, running each input
// through Run and checking the serialized result.
func verifyRun(t *testing.T, inputs map[string]string) {
	for in, want := range inputs {
		got, err := Run(in)
		assert.NoErrorf(t, err, "Run(%q) should not have failed", in)
		assert.Equalf(t, want, got, "Run(%q)", in)
	}
}

// verifyRunError takes a map of inputs to expected error kinds, running each
// input through Run and requiring it fail with that kind.
func verifyRunError(t *testing.T, inputs map[string]ErrorKind) {
	for in, kind := range inputs {
		_, err := Run(in)
		if !assert.Errorf(t, err, "Run(%q) should have failed", in) {
			continue
		}
		se, ok := err.(*SchemeError)
		if !assert.Truef(t, ok, "Run(%q) returned a non-SchemeError: %v", in, err) {
			continue
		}
		assert.Equalf(t, kind, se.Kind, "Run(%q) wrong error kind", in)
	}
}

func TestRunTrivial(t *testing.T) {
	got, err := Run("")
	assert.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRunQuote(t *testing.T) {
	verifyRun(t, map[string]string{
		"(quote (1 2))":     "(1 2)",
		"(quote (quote 1))": "(quote 1)",
		"'(1 2)":            "(1 2)",
		"'(())":             "(())",
	})
}

func TestRunArithmetic(t *testing.T) {
	verifyRun(t, map[string]string{
		"(+ 1 2 3)":   "6",
		"(+)":         "0",
		"(*)":         "1",
		"(- 10 3)":    "7",
		"(* 2 3 4)":   "24",
		"(min 3 1 2)": "1",
		"(max 3 1 2)": "3",
		"(abs -5)":    "5",
	})
}

func TestRunCons(t *testing.T) {
	verifyRun(t, map[string]string{
		"(cons 1 2)":   "(1 . 2)",
		"(list 1 2 3)": "(1 2 3)",
		"(list)":       "()",
	})
}

func TestRunListRef(t *testing.T) {
	verifyRun(t, map[string]string{
		"(list-ref '(10 20 30) 1)": "20",
	})
}

func TestRunAndOr(t *testing.T) {
	verifyRun(t, map[string]string{
		"(and #t 1 2)":  "2",
		"(or #f #f #t)": "#t",
	})
}

func TestRunPredicates(t *testing.T) {
	verifyRun(t, map[string]string{
		"(number? 5)":  "#t",
		"(boolean? 5)": "#f",
		"(pair? 1 2)":  "#t",
		"(null? ())":   "#t",
		"(null? 5)":    "#f",
	})
}

func TestRunBoundaryErrors(t *testing.T) {
	verifyRunError(t, map[string]ErrorKind{
		" (+ 1 2)": SyntaxErrorKind,
		"())":      SyntaxErrorKind,
		")":        SyntaxErrorKind,
		"' ":       SyntaxErrorKind,
		"(())":     RuntimeErrorKind,
		"(+ ())":   RuntimeErrorKind,
		"('() ())": RuntimeErrorKind,
	})
}

func TestRunCdrCallingConvention(t *testing.T) {
	// This dialect's cdr operates on its raw argument spine directly,
	// not on a single list argument.
	verifyRun(t, map[string]string{
		"(cdr 1 2 3)": "(2 3)",
	})
}

func TestRunArityErrors(t *testing.T) {
	verifyRunError(t, map[string]ErrorKind{
		"(cons 1)":               RuntimeErrorKind,
		"(car ())":               RuntimeErrorKind,
		"(list-tail '(1 2 3) 5)": RuntimeErrorKind,
		"(list-ref '(1 2 3) 5)":  RuntimeErrorKind,
	})
}
