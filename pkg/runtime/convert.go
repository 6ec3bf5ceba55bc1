package runtime

import (
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/list"
	"ferrum/runtime-go/pkg/mem"
)

// FromValue boxes a native payload. Any payloads are returned as they are
// and unions are flattened to their active alternative.
func FromValue(r Repr, v any) Any {
	switch r.Tag() {
	case TagAny:
		return v.(Any)
	case TagUnion:
		u := v.(Union)
		return FromValue(r.(*UnionRepr).Alts[u.Tag], u.Value)
	default:
		return Any{Repr: r, Value: v}
	}
}

// ToValue converts a to the native payload described by r, failing fatally
// when no coercion applies.
func ToValue(a Any, r Repr) any {
	v, ok := TryToValue(a, r)
	if !ok {
		panic(fatal.Newf("toValue: cannot convert %s to %s", a, r))
	}
	return v
}

// TryToValue converts a to the native payload described by r. It reports
// false when a does not have a compatible shape; callers use this to
// backtrack over union alternatives and structural matches.
func TryToValue(a Any, r Repr) (any, bool) {
	if a.Repr == nil {
		panic(fatal.Newf("toValue: absent value"))
	}
	if a.Repr == r {
		return CopyValue(r, a.Value), true
	}
	switch a.Repr.Tag() {
	case TagAny, TagUnion, TagPtr:
		return TryToValue(ToAny(a), r)
	}

	switch r.Tag() {
	case TagNo:
		return nil, IsNil(a)
	case TagBool:
		if a.Repr.Tag() == TagBool {
			return a.Value, true
		}
	case TagInt:
		if a.Repr.Tag() == TagInt {
			return a.Value, true
		}
	case TagStr:
		if IsStr(a) {
			return ToStr(a), true
		}
	case TagChar:
		switch a.Repr.Tag() {
		case TagChar:
			return a.Value, true
		case TagStr:
			if s := a.Value.(Str); s.Len() == 1 {
				return Char(s.Data[0]), true
			}
		}
	case TagSingle:
		if a.Repr.Tag() == TagStr && a.Value.(Str).Data == r.(*SingleRepr).Value {
			return nil, true
		}
	case TagType:
		if a.Repr.Tag() == TagType {
			return Type{}, true
		}
	case TagAny:
		return ToAny(a), true
	case TagPair:
		if IsPair(a) {
			return Pair{Hd: Head(a), Tl: Tail(a)}, true
		}
	case TagList:
		return tryToList(a, r.(*ListRepr))
	case TagTuple:
		return tryToTuple(a, r.(*TupleRepr))
	case TagYes:
		if IsPair(a) && IsNil(Tail(a)) {
			return TryToValue(Head(a), r.(*YesRepr).Elem)
		}
	case TagMaybe:
		if IsNil(a) {
			return Maybe{}, true
		}
		if IsPair(a) && IsNil(Tail(a)) {
			if v, ok := TryToValue(Head(a), r.(*MaybeRepr).Value); ok {
				return Maybe{Yes: true, Value: v}, true
			}
		}
	case TagUnion:
		for i, alt := range r.(*UnionRepr).Alts {
			if v, ok := TryToValue(a, alt); ok {
				return Union{Tag: i, Value: v}, true
			}
		}
	case TagPtr:
		if v, ok := TryToValue(a, r.(*PtrRepr).Value); ok {
			mem.Count()
			return &Ref{Value: v}, true
		}
	case TagClos:
		if IsFunc(a) {
			return ToClos(r.(*FuncRepr), a), true
		}
	case TagFunc, TagFuncNull:
		panic(fatal.Newf("toValue: functions are boxed as closures, cannot convert %s to %s", a.Repr, r))
	default:
		panic(fatal.Newf("toValue: unhandled target repr %s", r))
	}
	return nil, false
}

func tryToList(a Any, r *ListRepr) (any, bool) {
	if lr, ok := a.Repr.(*ListRepr); ok && lr.Elem == r.Elem {
		return a.Value, true
	}
	var elems []any
	it := a
	for !IsNil(it) {
		if !IsPair(it) {
			return nil, false
		}
		v, ok := TryToValue(Head(it), r.Elem)
		if !ok {
			return nil, false
		}
		elems = append(elems, v)
		it = Tail(it)
	}
	return list.FromSlice(r.Elem, elems), true
}

func tryToTuple(a Any, r *TupleRepr) (any, bool) {
	out := Tuple(mem.Values(r.NumFields()))
	it := a
	for i, f := range r.Fields {
		if !IsPair(it) {
			return nil, false
		}
		v, ok := TryToValue(Head(it), f.Repr)
		if !ok {
			return nil, false
		}
		out[i] = v
		it = Tail(it)
	}
	if !IsNil(it) {
		return nil, false
	}
	return out, true
}

// ToList converts a pair chain to a persistent list of elem payloads.
func ToList(elem Repr, a Any) list.List {
	return ToValue(a, NewList(elem)).(list.List)
}

// ToTuple converts a pair chain to a tuple payload.
func ToTuple(r *TupleRepr, a Any) Tuple {
	return ToValue(a, r).(Tuple)
}

// FromTuple boxes a tuple payload.
func FromTuple(r *TupleRepr, t Tuple) Any {
	return Box(r, t)
}

// FromMaybe boxes an optional payload.
func FromMaybe(r *MaybeRepr, m Maybe) Any {
	return Any{Repr: r, Value: m}
}

// FromYes boxes a payload known to be present.
func FromYes(r *YesRepr, v any) Any {
	return Any{Repr: r, Value: v}
}

// Inject places v in alternative tag of the union r.
func Inject(r *UnionRepr, tag int, v any) Any {
	if tag < 0 || tag >= len(r.Alts) {
		panic(fatal.Newf("inject: alternative %d outside %s", tag, r))
	}
	return Any{Repr: r, Value: Union{Tag: tag, Value: v}}
}

// Project returns the payload of alternative tag when it is the active one.
func Project(u Union, tag int) (any, bool) {
	if u.Tag != tag {
		return nil, false
	}
	return u.Value, true
}

// TryToUnion selects the first alternative of r that a converts to.
func TryToUnion(r *UnionRepr, a Any) (Union, bool) {
	v, ok := TryToValue(a, r)
	if !ok {
		return Union{}, false
	}
	return v.(Union), true
}

// ToUnion is TryToUnion failing fatally.
func ToUnion(r *UnionRepr, a Any) Union {
	u, ok := TryToUnion(r, a)
	if !ok {
		panic(fatal.Newf("toUnion: no alternative of %s accepts %s", r, a))
	}
	return u
}

// FromUnion boxes the active alternative of u.
func FromUnion(r *UnionRepr, u Union) Any {
	return FromValue(r, u)
}
