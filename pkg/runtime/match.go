package runtime

import (
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/list"
)

// MatchNil fails fatally unless a is nil.
func MatchNil(a Any) {
	if !IsNil(a) {
		panic(fatal.Newf("match: expected nil, got %s", a))
	}
}

// TryMatchPair splits a pair-like value.
func TryMatchPair(a Any) (hd, tl Any, ok bool) {
	if !IsPair(a) {
		return Any{}, Any{}, false
	}
	return Head(a), Tail(a), true
}

// MatchPair splits a pair-like value, failing fatally otherwise.
func MatchPair(a Any) (hd, tl Any) {
	hd, tl, ok := TryMatchPair(a)
	if !ok {
		panic(fatal.Newf("match: expected pair, got %s", a))
	}
	return hd, tl
}

// MatchTuple1 destructures a one-element list.
func MatchTuple1(a Any) Any {
	x, rest := MatchPair(a)
	MatchNil(rest)
	return x
}

// MatchTuple2 destructures a two-element list.
func MatchTuple2(a Any) (Any, Any) {
	x, rest := MatchPair(a)
	y, rest := MatchPair(rest)
	MatchNil(rest)
	return x, y
}

// ListAt returns element pos of a pair chain.
func ListAt(a Any, pos int) Any {
	if pos < 0 {
		panic(fatal.Newf("listAt: negative index %d", pos))
	}
	it := a
	for i := 0; ; i++ {
		v, ok := Iterate(&it)
		if !ok {
			panic(fatal.Newf("listAt: index %d out of range (%d)", pos, i))
		}
		if i == pos {
			return v
		}
	}
}

// ListLookup scans an association list of (Str, value) tuples for key.
// keyVal must describe a two-field tuple whose first field is a string and
// valMb must be the optional form of its second field.
func ListLookup(keyVal *TupleRepr, valMb *MaybeRepr, key Str, l list.List) Maybe {
	if keyVal.NumFields() != 2 || keyVal.Fields[0].Repr.Tag() != TagStr {
		panic(fatal.Newf("listLookup: expected a (Str, value) tuple, got %s", keyVal))
	}
	if valMb.Value != keyVal.Fields[1].Repr {
		panic(fatal.Newf("listLookup: %s does not match value field %s", valMb, keyVal.Fields[1].Repr))
	}
	for it := l; ; {
		elem, ok := list.Next(keyVal, &it)
		if !ok {
			return Maybe{}
		}
		t := elem.(Tuple)
		if strEq(t[0].(Str), key) {
			return Maybe{Yes: true, Value: t[1]}
		}
	}
}
