package runtime

import (
	"iter"

	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/list"
)

// ToAny strips Any boxes, union wrappers and pointer indirections until a
// concrete descriptor is reached.
func ToAny(a Any) Any {
	for a.Repr != nil {
		switch a.Repr.Tag() {
		case TagAny:
			a = a.Value.(Any)
		case TagUnion:
			u := a.Value.(Union)
			a = Any{Repr: a.Repr.(*UnionRepr).Alts[u.Tag], Value: u.Value}
		case TagPtr:
			a = Any{Repr: a.Repr.(*PtrRepr).Value, Value: a.Value.(*Ref).Value}
		default:
			return a
		}
	}
	return a
}

func canon(op string, a Any) Any {
	if a.Repr != nil {
		a = ToAny(a)
	}
	if a.Repr == nil {
		panic(fatal.Newf("%s: absent value", op))
	}
	return a
}

// TupleTailOf returns the fields of t from pos onwards.
func TupleTailOf(r *TupleRepr, pos int, t Tuple) Any {
	if pos < 0 || pos > r.NumFields() {
		panic(fatal.Newf("tuple tail: position %d outside %s", pos, r))
	}
	return Any{Repr: registry.TupleTail, Value: TupleTail{Repr: r, Pos: pos, Fields: t}}
}

// Head returns the first element of a pair-like value.
func Head(a Any) Any {
	a = canon("head", a)
	switch a.Repr.Tag() {
	case TagPair:
		return a.Value.(Pair).Hd
	case TagList:
		r := a.Repr.(*ListRepr)
		return FromValue(r.Elem, list.Head(r.Elem, a.Value.(list.List)))
	case TagTuple:
		r := a.Repr.(*TupleRepr)
		if r.NumFields() == 0 {
			panic(fatal.Newf("head: empty tuple"))
		}
		return FromValue(r.Fields[0].Repr, a.Value.(Tuple)[0])
	case TagTupleTail:
		tt := a.Value.(TupleTail)
		if tt.Pos >= tt.Repr.NumFields() {
			panic(fatal.Newf("head: exhausted tuple tail"))
		}
		return FromValue(tt.Repr.Fields[tt.Pos].Repr, tt.Fields[tt.Pos])
	case TagMaybe:
		m := a.Value.(Maybe)
		if !m.Yes {
			panic(fatal.Newf("head: absent maybe"))
		}
		return FromValue(a.Repr.(*MaybeRepr).Value, m.Value)
	case TagYes:
		return FromValue(a.Repr.(*YesRepr).Elem, a.Value)
	default:
		panic(fatal.Newf("head: not a pair: %s", a.Repr))
	}
}

// Tail returns the remainder of a pair-like value.
func Tail(a Any) Any {
	a = canon("tail", a)
	switch a.Repr.Tag() {
	case TagPair:
		return a.Value.(Pair).Tl
	case TagList:
		r := a.Repr.(*ListRepr)
		return FromList(r, list.Tail(r.Elem, a.Value.(list.List)))
	case TagTuple:
		r := a.Repr.(*TupleRepr)
		switch r.NumFields() {
		case 0:
			panic(fatal.Newf("tail: empty tuple"))
		case 1:
			return Nil()
		default:
			return TupleTailOf(r, 1, a.Value.(Tuple))
		}
	case TagTupleTail:
		tt := a.Value.(TupleTail)
		if tt.Pos >= tt.Repr.NumFields() {
			panic(fatal.Newf("tail: exhausted tuple tail"))
		}
		if tt.Pos+1 == tt.Repr.NumFields() {
			return Nil()
		}
		return TupleTailOf(tt.Repr, tt.Pos+1, tt.Fields)
	case TagMaybe:
		if !a.Value.(Maybe).Yes {
			panic(fatal.Newf("tail: absent maybe"))
		}
		return Nil()
	case TagYes:
		return Nil()
	default:
		panic(fatal.Newf("tail: not a pair: %s", a.Repr))
	}
}

// IsNil reports whether a is an empty sequence or the unit value.
func IsNil(a Any) bool {
	a = canon("isNil", a)
	switch a.Repr.Tag() {
	case TagNo:
		return true
	case TagList:
		return a.Value.(list.List).IsNil()
	case TagMaybe:
		return !a.Value.(Maybe).Yes
	case TagTuple:
		return a.Repr.(*TupleRepr).NumFields() == 0
	case TagTupleTail:
		tt := a.Value.(TupleTail)
		return tt.Pos >= tt.Repr.NumFields()
	case TagPair, TagYes, TagBool, TagInt, TagStr, TagChar, TagSingle, TagType,
		TagFunc, TagClos, TagFuncNull, TagPartialApply, TagObject:
		return false
	default:
		panic(fatal.Newf("isNil: unhandled repr %s", a.Repr))
	}
}

// IsPair reports whether a has a head and a tail.
func IsPair(a Any) bool {
	a = canon("isPair", a)
	switch a.Repr.Tag() {
	case TagPair, TagYes:
		return true
	case TagList:
		return a.Value.(list.List).IsPair()
	case TagMaybe:
		return a.Value.(Maybe).Yes
	case TagTuple:
		return a.Repr.(*TupleRepr).NumFields() > 0
	case TagTupleTail:
		tt := a.Value.(TupleTail)
		return tt.Pos < tt.Repr.NumFields()
	case TagNo, TagBool, TagInt, TagStr, TagChar, TagSingle, TagType,
		TagFunc, TagClos, TagFuncNull, TagPartialApply, TagObject:
		return false
	default:
		panic(fatal.Newf("isPair: unhandled repr %s", a.Repr))
	}
}

func IsBool(a Any) bool { return canon("isBool", a).Repr.Tag() == TagBool }
func IsInt(a Any) bool { return canon("isInt", a).Repr.Tag() == TagInt }
func IsType(a Any) bool { return canon("isType", a).Repr.Tag() == TagType }
func IsChar(a Any) bool { return canon("isChar", a).Repr.Tag() == TagChar }

// IsStr reports whether a is string-like: a string, a singleton string or a
// character.
func IsStr(a Any) bool {
	switch canon("isStr", a).Repr.Tag() {
	case TagStr, TagSingle, TagChar:
		return true
	default:
		return false
	}
}

// IsFunc reports whether a can be called.
func IsFunc(a Any) bool {
	switch canon("isFunc", a).Repr.Tag() {
	case TagFunc, TagClos, TagFuncNull, TagPartialApply:
		return true
	default:
		return false
	}
}

// ToBool extracts a boolean.
func ToBool(a Any) bool {
	a = canon("toBool", a)
	if a.Repr.Tag() != TagBool {
		panic(fatal.Newf("expected Bool, got %s", a.Repr))
	}
	return a.Value.(bool)
}

// ToInt extracts an integer.
func ToInt(a Any) int {
	a = canon("toInt", a)
	if a.Repr.Tag() != TagInt {
		panic(fatal.Newf("expected Int, got %s", a.Repr))
	}
	return a.Value.(int)
}

// ToStr extracts a string from any string-like value.
func ToStr(a Any) Str {
	a = canon("toStr", a)
	switch a.Repr.Tag() {
	case TagStr:
		return a.Value.(Str)
	case TagSingle:
		return StaticStr(a.Repr.(*SingleRepr).Value)
	case TagChar:
		return MakeStr(string([]byte{byte(a.Value.(Char))}))
	default:
		panic(fatal.Newf("expected Str, got %s", a.Repr))
	}
}

// ToChar extracts a character from a character or a one-byte string.
func ToChar(a Any) Char {
	a = canon("toChar", a)
	switch a.Repr.Tag() {
	case TagChar:
		return a.Value.(Char)
	case TagStr:
		if s := a.Value.(Str); s.Len() == 1 {
			return Char(s.Data[0])
		}
	}
	panic(fatal.Newf("expected Char, got %s", a))
}

// Iterate advances the cursor at *it over a pair chain. At the end of the
// chain *it becomes the absent value and Iterate reports false.
func Iterate(it *Any) (Any, bool) {
	if it.IsAbsent() {
		return Any{}, false
	}
	if IsNil(*it) {
		*it = Any{}
		return Any{}, false
	}
	if !IsPair(*it) {
		panic(fatal.Newf("iterate: improper tail %s", *it))
	}
	hd := Head(*it)
	*it = Tail(*it)
	return hd, true
}

// Elems iterates over the elements of a pair chain.
func Elems(a Any) iter.Seq[Any] {
	return func(yield func(Any) bool) {
		for it := a; ; {
			v, ok := Iterate(&it)
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Len counts the elements of a pair chain.
func Len(a Any) int {
	n := 0
	for range Elems(a) {
		n++
	}
	return n
}
