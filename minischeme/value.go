//
// Value is the shared tagged-variant AST and result type: the parser
// produces it, the evaluator consumes and produces it, the serializer
// renders it.
//

package minischeme

// valueKind tags the variant held by a Value.
type valueKind int

const (
	kindInteger valueKind = iota
	kindBool
	kindSym
	kindPair
	kindCloseMarker
)

// Value is the shared AST/result node. Exactly one of the kind-specific
// fields is meaningful at a time; for kindPair, Car and Cdr are each
// independently nil (absent) or present — absence is distinct from the
// empty list, which is the Pair{Car: nil, Cdr: nil} itself.
type Value struct {
	kind valueKind
	num  int64  // kindInteger
	b    bool   // kindBool
	name string // kindSym

	// kindPair: each slot independently nil or non-nil.
	Car *Value
	Cdr *Value
}

func integerValue(n int64) *Value { return &Value{kind: kindInteger, num: n} }
func boolValue(b bool) *Value     { return &Value{kind: kindBool, b: b} }
func symValue(name string) *Value { return &Value{kind: kindSym, name: name} }
func pairValue(car, cdr *Value) *Value {
	return &Value{kind: kindPair, Car: car, Cdr: cdr}
}
func closeMarker() *Value { return &Value{kind: kindCloseMarker} }

// nilValue is the canonical empty list: a Pair whose both slots are absent.
func nilValue() *Value { return pairValue(nil, nil) }

func (v *Value) isInteger() bool     { return v != nil && v.kind == kindInteger }
func (v *Value) isBool() bool        { return v != nil && v.kind == kindBool }
func (v *Value) isSym() bool         { return v != nil && v.kind == kindSym }

// isSymNamed reports whether v is the symbol named name.
func (v *Value) isSymNamed(name string) bool {
	return v.isSym() && v.name == name
}
func (v *Value) isPair() bool        { return v != nil && v.kind == kindPair }
func (v *Value) isCloseMarker() bool { return v != nil && v.kind == kindCloseMarker }

// isNilList reports whether v is the canonical empty list: a Pair with both
// slots absent.
func (v *Value) isNilList() bool {
	return v.isPair() && v.Car == nil && v.Cdr == nil
}

func (v *Value) symName() string {
	return v.name
}

func (v *Value) intVal() int64 {
	return v.num
}

func (v *Value) boolVal() bool {
	return v.b
}
