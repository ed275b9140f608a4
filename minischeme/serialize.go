//
// Serializer: renders a Value to its canonical textual form. Ported from
// Cell::Serialise/Symbol::Serialise in the original implementation; see
// _examples/original_source/basic/object.h.
//

package minischeme

import (
	"strconv"
	"strings"
)

// serialize renders v per the canonical rules. Pair-valued top-level
// results are wrapped in parens by the caller (Run), not here.
func serialize(v *Value) (string, error) {
	switch {
	case v.isInteger():
		return strconv.FormatInt(v.intVal(), 10), nil
	case v.isBool():
		if v.boolVal() {
			return "#t", nil
		}
		return "#f", nil
	case v.isSym():
		return serializeSym(v.symName())
	case v.isCloseMarker():
		return ")", nil
	case v.isPair():
		return serializePair(v)
	default:
		return "", newRuntimeError("cannot serialize value")
	}
}

// serializeSym renders a symbol, special-casing the builtin names that
// mimic a partial-application result when they reach the serializer
// unevaluated.
func serializeSym(name string) (string, error) {
	switch name {
	case "=", ">", "<", ">=", "<=", "and":
		return "#t", nil
	case "or":
		return "#f", nil
	case "+":
		return "0", nil
	case "*":
		return "1", nil
	case "/", "-", "min", "max", "abs":
		return "", newRuntimeError("builtin " + name + " has no value on its own")
	default:
		return name, nil
	}
}

// serializePair renders a cons cell per the spine-walk rules.
func serializePair(v *Value) (string, error) {
	if v.Car == nil && v.Cdr == nil {
		return "()", nil
	}
	if v.Car == nil {
		return "", newRuntimeError("pair has absent car with present cdr")
	}
	if v.Cdr != nil && !v.Car.isPair() && !v.Cdr.isPair() {
		carStr, err := serialize(v.Car)
		if err != nil {
			return "", err
		}
		cdrStr, err := serialize(v.Cdr)
		if err != nil {
			return "", err
		}
		return carStr + " . " + cdrStr, nil
	}

	var sb strings.Builder
	cur := v
	for cur != nil {
		if !cur.isPair() {
			s, err := serialize(cur)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
			break
		}
		f := cur.Car
		s := cur.Cdr
		if s != nil {
			if !f.isPair() && !s.isPair() {
				fs, err := serialize(f)
				if err != nil {
					return "", err
				}
				ss, err := serialize(s)
				if err != nil {
					return "", err
				}
				sb.WriteString(fs + " . " + ss)
				cur = nil
			} else {
				fs, err := serialize(f)
				if err != nil {
					return "", err
				}
				sb.WriteString(fs)
				cur = s
			}
		} else {
			fs, err := serialize(f)
			if err != nil {
				return "", err
			}
			sb.WriteString(fs)
			cur = nil
		}
		if cur != nil {
			sb.WriteString(" ")
		}
	}
	return sb.String(), nil
}
