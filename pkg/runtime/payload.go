package runtime

import "unsafe"

//-----------------------------------------------------------------------------
// Native payloads
//
// Each descriptor kind has one native payload shape:
//
//	Bool          bool
//	Int           int
//	Str           Str
//	Char          Char
//	No, Single    nil
//	Type          Type
//	Pair          Pair
//	List          list.List
//	Tuple         Tuple
//	TupleTail     TupleTail
//	Yes           the element payload
//	Maybe         Maybe
//	Any           Any
//	Union         Union
//	Ptr           *Ref
//	Func          the native function
//	FuncNull      the native function
//	Clos          Closure
//	PartialApply  *PartialApply
//	Object        Object
//-----------------------------------------------------------------------------

// Str is a byte string. Static strings are interned by the code generator
// and may be compared by address.
type Str struct {
	Data   string
	Static bool
}

// MakeStr wraps a dynamically built string.
func MakeStr(s string) Str { return Str{Data: s} }

// StaticStr wraps an interned string.
func StaticStr(s string) Str { return Str{Data: s, Static: true} }

// Len reports the byte length of s.
func (s Str) Len() int { return len(s.Data) }

func strEq(a, b Str) bool {
	if len(a.Data) != len(b.Data) {
		return false
	}
	if a.Static && b.Static && unsafe.StringData(a.Data) == unsafe.StringData(b.Data) {
		return true
	}
	return a.Data == b.Data
}

// Char is a single byte character.
type Char byte

// Type is the payload of type tokens.
type Type struct{}

// Pair is a cons cell of tagged values.
type Pair struct {
	Hd Any
	Tl Any
}

// Tuple holds one payload per schema field.
type Tuple []any

// TupleTail is a view of the fields of a tuple from Pos onwards.
type TupleTail struct {
	Repr   *TupleRepr
	Pos    int
	Fields Tuple
}

// Maybe is an optional payload.
type Maybe struct {
	Yes   bool
	Value any
}

// Union carries the index of the active alternative and its payload.
type Union struct {
	Tag   int
	Value any
}

// Ref is the heap cell behind a pointer indirection.
type Ref struct {
	Value any
}

// Closure pairs a native function with its captured environment.
type Closure struct {
	Func any
	Env  any
}

// PartialApply accumulates the arguments of a function that has not yet
// received all of its parameters.
type PartialApply struct {
	Repr *FuncRepr
	Func any
	Env  any
	Args []Any
}

// Object is a collection object: a closure answering requests.
type Object struct {
	Clos Any
}

// FuncClosEnv is the environment of a closure that merely re-wraps a tagged
// function value. Converting such a closure back to a tagged value returns
// Func itself.
type FuncClosEnv struct {
	Func Any
}
