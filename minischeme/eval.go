//
// Evaluator: structural dispatch on the head of each application form
// against the closed built-in table. Ported close to line-for-line from
// Cell::Eval/ArgsToVector in the original implementation; see
// _examples/original_source/basic/object.h. Quirks noted there (the
// argument-collection descent rule, the list-tail/list-ref nested shape)
// are preserved deliberately, not "fixed".
//

package minischeme

// argsPreEvalNames is the set of builtin names whose presence as a raw
// argument spine's head causes ArgsToVector to pre-evaluate that spine
// before collecting arguments. It holds every builtin name.
var argsPreEvalNames = map[string]struct{}{
	"quote": {}, "+": {}, "-": {}, "/": {}, "*": {}, "=": {}, "<": {}, ">": {}, ">=": {}, "<=": {},
	"min": {}, "max": {}, "abs": {}, "number?": {}, "boolean?": {}, "not": {}, "and": {}, "or": {},
	"pair?": {}, "null?": {}, "list?": {}, "cons": {}, "car": {}, "cdr": {}, "list": {},
	"list-tail": {}, "list-ref": {},
}

// runDispatchNames is the set of symbol names Run permits as the head of a
// top-level application; it holds the same names as argsPreEvalNames.
var runDispatchNames = map[string]struct{}{
	"quote": {}, "+": {}, "-": {}, "/": {}, "*": {}, "=": {}, "<": {}, ">": {}, ">=": {}, "<=": {},
	"min": {}, "max": {}, "abs": {}, "number?": {}, "boolean?": {}, "not": {}, "and": {}, "or": {},
	"pair?": {}, "null?": {}, "list?": {}, "cons": {}, "car": {}, "cdr": {}, "list": {},
	"list-tail": {}, "list-ref": {},
}

func isArgsPreEvalName(name string) bool {
	_, ok := argsPreEvalNames[name]
	return ok
}

// evalValue evaluates v. Atoms evaluate to a fresh copy of themselves; a
// Pair dispatches through evalPair.
func evalValue(v *Value) (*Value, error) {
	switch {
	case v.isInteger():
		return integerValue(v.intVal()), nil
	case v.isBool():
		return boolValue(v.boolVal()), nil
	case v.isSym():
		return symValue(v.symName()), nil
	case v.isPair():
		return evalPair(v)
	default:
		return nil, newRuntimeError("cannot evaluate value")
	}
}

// evalPair implements Cell::Eval: the central application-dispatch logic.
func evalPair(v *Value) (*Value, error) {
	if v.Car == nil {
		return nil, newRuntimeError("application with absent operator")
	}
	if v.Car.isPair() {
		// This dialect does not support computed operators: the evaluator
		// does not recurse into a nested application in head position.
		return v.Car, nil
	}
	f, err := evalValue(v.Car)
	if err != nil {
		return nil, err
	}

	cdr := v.Cdr
	if cdr.isPair() && cdr.Car.isSym() {
		nc, err := evalValue(cdr)
		if err != nil {
			return nil, err
		}
		cdr = nc
	}

	switch {
	case f.isInteger(), f.isBool():
		if cdr != nil {
			return nil, newRuntimeError("cannot apply a non-procedure")
		}
		return f, nil
	case f.isSym():
		return dispatchBuiltin(f.symName(), v.Car, cdr)
	default:
		return nil, newRuntimeError("cannot apply a non-procedure")
	}
}

// dispatchBuiltin evaluates the application of the builtin named name,
// where head is the unevaluated operator Value (returned by the comparison
// builtins when they have no arguments, and used by the unbound-symbol
// fallback) and cdr is the (already in-place-reduced) argument spine.
func dispatchBuiltin(name string, head *Value, cdr *Value) (*Value, error) {
	switch name {
	case "quote":
		if cdr == nil {
			return nil, newRuntimeError("quote requires a form")
		}
		if cdr.isPair() && cdr.Cdr == nil && cdr.Car.isPair() {
			return cdr.Car, nil
		}
		return cdr, nil

	case "number?":
		if cdr == nil {
			return nil, newRuntimeError("number? requires an argument")
		}
		args, err := argsToVector(cdr)
		if err != nil {
			return nil, err
		}
		if len(args) > 1 {
			return boolValue(false), nil
		}
		if len(args) == 0 {
			return nil, newRuntimeError("number? requires an argument")
		}
		return boolValue(args[0].isInteger()), nil

	case "boolean?":
		if cdr == nil {
			return nil, newRuntimeError("boolean? requires an argument")
		}
		args, err := argsToVector(cdr)
		if err != nil {
			return nil, err
		}
		if len(args) > 1 {
			return nil, newRuntimeError("boolean?: too many arguments")
		}
		if len(args) == 0 {
			return boolValue(false), nil
		}
		return boolValue(args[0].isBool()), nil

	case "pair?":
		if cdr == nil {
			return nil, newRuntimeError("pair? requires an argument")
		}
		args, err := argsToVector(cdr)
		if err != nil {
			return nil, err
		}
		return boolValue(len(args) == 2), nil

	case "null?":
		if cdr == nil {
			return nil, newRuntimeError("null? requires an argument")
		}
		args, err := argsToVector(cdr)
		if err != nil {
			return nil, err
		}
		return boolValue(len(args) == 0), nil

	case "list?":
		if cdr == nil {
			return nil, newRuntimeError("list? requires an argument")
		}
		s := cdr
		for s.isPair() {
			if s.Car.isPair() {
				return boolValue(false), nil
			}
			s = s.Cdr
		}
		return boolValue(s == nil), nil

	case "cons":
		if cdr == nil {
			return nil, newRuntimeError("cons requires two arguments")
		}
		args, err := argsToVector(cdr)
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, newRuntimeError("cons requires exactly two arguments")
		}
		return pairValue(args[0], args[1]), nil

	case "car":
		if cdr == nil {
			return nil, newRuntimeError("car requires an argument")
		}
		args, err := argsToVector(cdr)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return nil, newRuntimeError("car of empty list")
		}
		return args[0], nil

	case "cdr":
		return evalCdr(cdr)

	case "list-tail":
		return evalListTail(cdr)

	case "list-ref":
		return evalListRef(cdr)

	case "list":
		if cdr == nil {
			return nilValue(), nil
		}
		if !cdr.isPair() {
			return pairValue(cdr, nil), nil
		}
		return cdr, nil

	case "=":
		return dispatchCompare(cdr, head, func(a, b int64) bool { return a == b })
	case ">":
		return dispatchCompare(cdr, head, func(a, b int64) bool { return a > b })
	case "<":
		return dispatchCompare(cdr, head, func(a, b int64) bool { return a < b })
	case ">=":
		return dispatchCompare(cdr, head, func(a, b int64) bool { return a >= b })
	case "<=":
		return dispatchCompare(cdr, head, func(a, b int64) bool { return a <= b })

	case "+":
		if cdr == nil {
			return symValue("+"), nil
		}
		return dispatchArith(cdr, func(a, b int64) int64 { return a + b })
	case "-":
		if cdr == nil {
			return nil, newRuntimeError("- requires at least one argument")
		}
		return dispatchArith(cdr, func(a, b int64) int64 { return a - b })
	case "*":
		if cdr == nil {
			return symValue("*"), nil
		}
		return dispatchArith(cdr, func(a, b int64) int64 { return a * b })
	case "/":
		if cdr == nil {
			return nil, newRuntimeError("/ requires at least one argument")
		}
		return dispatchArith(cdr, func(a, b int64) int64 { return a / b })
	case "min":
		if cdr == nil {
			return nil, newRuntimeError("min requires at least one argument")
		}
		return dispatchArith(cdr, func(a, b int64) int64 {
			if a < b {
				return a
			}
			return b
		})
	case "max":
		if cdr == nil {
			return nil, newRuntimeError("max requires at least one argument")
		}
		return dispatchArith(cdr, func(a, b int64) int64 {
			if a > b {
				return a
			}
			return b
		})
	case "abs":
		if cdr == nil {
			return nil, newRuntimeError("abs requires an argument")
		}
		return dispatchUnaryInt(cdr, func(a int64) int64 {
			if a < 0 {
				return -a
			}
			return a
		})

	case "not":
		return evalNot(cdr)

	case "and":
		if cdr == nil {
			return symValue("and"), nil
		}
		args, err := argsToVector(cdr)
		if err != nil {
			return nil, err
		}
		return andApply(args)

	case "or":
		if cdr == nil {
			return symValue("or"), nil
		}
		args, err := argsToVector(cdr)
		if err != nil {
			return nil, err
		}
		return orApply(args)

	default:
		if cdr == nil {
			return pairValue(head, nil), nil
		}
		return nil, newRuntimeError("unbound symbol in operator position: " + name)
	}
}

// argsToVector collects the argument vector for a builtin call, per the
// original's ArgsToVector: it pre-evaluates the whole argument spine when
// its head names a builtin, then walks the spine taking each car as one
// argument in turn. The first car is taken as-is; when a later car is
// itself a pair, it descends along the car chain to the innermost pair
// whose car is not a pair, evaluates that pair if its car names a builtin,
// pushes it, and stops collecting further arguments.
func argsToVector(curr *Value) ([]*Value, error) {
	if !curr.isPair() {
		return nil, newRuntimeError("expected an argument list")
	}
	if curr.Car != nil && curr.Car.isSym() && isArgsPreEvalName(curr.Car.symName()) {
		v, err := evalValue(curr)
		if err != nil {
			return nil, err
		}
		curr = v
	}
	if !curr.isPair() {
		return nil, newRuntimeError("expected an argument list")
	}
	var args []*Value
	if curr.Car == nil {
		return args, nil
	}
	args = append(args, curr.Car)
	curr = curr.Cdr

	for curr != nil {
		val := curr
		if !val.isPair() {
			args = append(args, val)
			break
		}
		if val.Car == nil {
			break
		}
		if !val.Car.isPair() {
			args = append(args, val.Car)
			curr = curr.Cdr
			continue
		}
		leaf := val
		for leaf.Car.isPair() {
			leaf = leaf.Car
		}
		if leaf.Car.isSym() && isArgsPreEvalName(leaf.Car.symName()) {
			ev, err := evalValue(leaf)
			if err != nil {
				return nil, err
			}
			leaf = ev
		}
		args = append(args, leaf)
		break
	}
	return args, nil
}

func evalCdr(cdr *Value) (*Value, error) {
	if cdr == nil {
		return nil, newRuntimeError("cdr requires an argument")
	}
	s := cdr
	if !s.isPair() {
		return nil, newRuntimeError("cdr: not a pair")
	}
	if s.Car == nil && s.Cdr == nil {
		return nil, newRuntimeError("cdr of empty list")
	}
	if s.Cdr.isPair() {
		return s.Cdr, nil
	}
	if s.Cdr == nil {
		return nilValue(), nil
	}
	return s.Cdr, nil
}

// spineIndex walks the raw argument spine of list-tail/list-ref to its
// trailing Integer (the index), per the nested calling shape documented in
// SPEC_FULL.md: the list is the car of the outer argument list, and the
// index is the last element of that same spine.
func spineIndex(cdr *Value) (*Value, int64, error) {
	s := cdr
	if !s.isPair() {
		return nil, 0, newRuntimeError("expected an argument list")
	}
	if s.Car == nil && s.Cdr == nil {
		return nil, 0, newRuntimeError("expected a non-empty argument list")
	}
	for s.Cdr.isPair() {
		s = s.Cdr
	}
	if !s.isPair() || !s.Car.isInteger() {
		return nil, 0, newRuntimeError("expected a trailing integer index")
	}
	return cdr.Car, s.Car.intVal(), nil
}

func evalListTail(cdr *Value) (*Value, error) {
	if cdr == nil {
		return nil, newRuntimeError("list-tail requires arguments")
	}
	list, index, err := spineIndex(cdr)
	if err != nil {
		return nil, err
	}
	walk := list
	for i := int64(0); i < index; i++ {
		if !walk.isPair() {
			return nil, newRuntimeError("list-tail: list too short")
		}
		walk = walk.Cdr
	}
	if walk == nil {
		return nilValue(), nil
	}
	return walk, nil
}

func evalListRef(cdr *Value) (*Value, error) {
	if cdr == nil {
		return nil, newRuntimeError("list-ref requires arguments")
	}
	list, index, err := spineIndex(cdr)
	if err != nil {
		return nil, err
	}
	walk := list
	for i := int64(0); i < index; i++ {
		if !walk.isPair() {
			return nil, newRuntimeError("list-ref: list too short")
		}
		walk = walk.Cdr
	}
	if walk == nil || !walk.isPair() {
		return nil, newRuntimeError("list-ref: index out of range")
	}
	return walk.Car, nil
}

func dispatchCompare(cdr *Value, head *Value, cmp func(a, b int64) bool) (*Value, error) {
	if cdr == nil {
		return head, nil
	}
	args, err := argsToVector(cdr)
	if err != nil {
		return nil, err
	}
	return compareApply(args, cmp)
}

func compareApply(args []*Value, cmp func(a, b int64) bool) (*Value, error) {
	if len(args) == 0 {
		return nil, newRuntimeError("comparison requires an argument")
	}
	if !args[0].isInteger() {
		return nil, newRuntimeError("comparison requires integers")
	}
	if len(args) == 1 {
		return boolValue(true), nil
	}
	for i := 0; i < len(args)-1; i++ {
		if !args[i].isInteger() || !args[i+1].isInteger() {
			return nil, newRuntimeError("comparison requires integers")
		}
		if !cmp(args[i].intVal(), args[i+1].intVal()) {
			return boolValue(false), nil
		}
	}
	return boolValue(true), nil
}

func dispatchArith(cdr *Value, op func(a, b int64) int64) (*Value, error) {
	args, err := argsToVector(cdr)
	if err != nil {
		return nil, err
	}
	return arithApply(args, op)
}

func arithApply(args []*Value, op func(a, b int64) int64) (*Value, error) {
	if len(args) == 0 {
		return nil, newRuntimeError("arithmetic requires an argument")
	}
	if !args[0].isInteger() {
		return nil, newRuntimeError("arithmetic requires integers")
	}
	if len(args) == 1 {
		return args[0], nil
	}
	ans := args[0].intVal()
	for i := 1; i < len(args); i++ {
		if !args[i].isInteger() {
			return nil, newRuntimeError("arithmetic requires integers")
		}
		ans = op(ans, args[i].intVal())
	}
	return integerValue(ans), nil
}

func dispatchUnaryInt(cdr *Value, op func(a int64) int64) (*Value, error) {
	args, err := argsToVector(cdr)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, newRuntimeError("requires an argument")
	}
	if !args[0].isInteger() {
		return nil, newRuntimeError("requires an integer")
	}
	if len(args) > 1 {
		return nil, newRuntimeError("too many arguments")
	}
	return integerValue(op(args[0].intVal())), nil
}

func evalNot(cdr *Value) (*Value, error) {
	if cdr == nil {
		return nil, newRuntimeError("not requires an argument")
	}
	if cdr.isPair() && cdr.Car == nil && cdr.Cdr == nil {
		return boolValue(false), nil
	}
	args, err := argsToVector(cdr)
	if err != nil {
		return nil, err
	}
	if len(args) > 1 {
		return nil, newRuntimeError("not: too many arguments")
	}
	if len(args) == 0 {
		return nil, newRuntimeError("not requires an argument")
	}
	if args[0].isBool() {
		return boolValue(!args[0].boolVal()), nil
	}
	return boolValue(false), nil
}

func andApply(args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, newRuntimeError("and requires an argument")
	}
	if len(args) == 1 {
		s := args[0]
		if s.isBool() {
			if s.boolVal() {
				return s, nil
			}
			return boolValue(false), nil
		}
		return s, nil
	}
	for _, s := range args {
		if s.isBool() && !s.boolVal() {
			return boolValue(false), nil
		}
	}
	return args[len(args)-1], nil
}

func orApply(args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, newRuntimeError("or requires an argument")
	}
	if len(args) == 1 {
		s := args[0]
		if s.isBool() {
			if s.boolVal() {
				return boolValue(true), nil
			}
			return s, nil
		}
		return s, nil
	}
	for _, s := range args {
		if s.isBool() && s.boolVal() {
			return boolValue(true), nil
		}
	}
	return args[len(args)-1], nil
}
