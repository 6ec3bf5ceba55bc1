package runtime

import (
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/list"
	"ferrum/runtime-go/pkg/mem"
)

// Any is a tagged value: a descriptor plus the payload it describes. The zero
// Any is the absent sentinel; it is distinct from every valid value,
// including nil.
type Any struct {
	Repr  Repr
	Value any
}

// IsAbsent reports whether a is the absent sentinel.
func (a Any) IsAbsent() bool { return a.Repr == nil }

func (a Any) String() string { return Show(a) }

// Nil returns the unit value.
func Nil() Any { return Any{Repr: registry.No} }

func FromBool(b bool) Any { return Any{Repr: registry.Bool, Value: b} }
func FromInt(i int) Any { return Any{Repr: registry.Int, Value: i} }
func FromStr(s string) Any { return Any{Repr: registry.Str, Value: MakeStr(s)} }
func FromChar(c byte) Any { return Any{Repr: registry.Char, Value: Char(c)} }
func FromType() Any { return Any{Repr: registry.Type, Value: Type{}} }
func FromStatic(s string) Any {
	return Any{Repr: registry.Str, Value: StaticStr(s)}
}

// MkPair builds a cons cell.
func MkPair(hd, tl Any) Any {
	return Any{Repr: registry.Pair, Value: Pair{Hd: hd, Tl: tl}}
}

// MkList builds a nil-terminated pair chain.
func MkList(elems ...Any) Any {
	return MkListTail(Nil(), elems...)
}

// MkListTail builds a pair chain ending in tail.
func MkListTail(tail Any, elems ...Any) Any {
	out := tail
	for i := len(elems) - 1; i >= 0; i-- {
		out = MkPair(elems[i], out)
	}
	return out
}

// FromList boxes a persistent list.
func FromList(r *ListRepr, l list.List) Any {
	return Any{Repr: r, Value: l}
}

// FromAnyList boxes a persistent list of tagged values.
func FromAnyList(elems ...Any) Any {
	buf := mem.Values(len(elems))
	for i, e := range elems {
		buf[i] = e
	}
	return FromList(registry.ListAny, list.FromSlice(registry.Any, buf))
}

// FromPartial boxes a partial application.
func FromPartial(pa *PartialApply) Any {
	return Any{Repr: registry.PartialApply, Value: pa}
}

// FromObject boxes a collection object.
func FromObject(clos Any) Any {
	return Any{Repr: registry.Object, Value: Object{Clos: clos}}
}

// Box tags payload with r after checking that the payload has the shape r
// describes.
func Box(r Repr, payload any) Any {
	if !payloadFits(r, payload) {
		panic(fatal.Newf("box: payload %T does not fit %s", payload, r))
	}
	return Any{Repr: r, Value: payload}
}

// CopyValue returns a payload that shares no mutable storage with v.
func CopyValue(r Repr, v any) any {
	switch v := v.(type) {
	case Tuple:
		return Tuple(mem.Clone(v))
	case TupleTail:
		v.Fields = Tuple(mem.Clone(v.Fields))
		return v
	case *Ref:
		mem.Count()
		return &Ref{Value: v.Value}
	default:
		return v
	}
}

func payloadFits(r Repr, v any) bool {
	switch r.Tag() {
	case TagBool:
		_, ok := v.(bool)
		return ok
	case TagInt:
		_, ok := v.(int)
		return ok
	case TagStr:
		_, ok := v.(Str)
		return ok
	case TagChar:
		_, ok := v.(Char)
		return ok
	case TagNo, TagSingle:
		return v == nil
	case TagType:
		_, ok := v.(Type)
		return ok
	case TagPair:
		_, ok := v.(Pair)
		return ok
	case TagList:
		_, ok := v.(list.List)
		return ok
	case TagTuple:
		t, ok := v.(Tuple)
		return ok && len(t) == r.(*TupleRepr).NumFields()
	case TagTupleTail:
		_, ok := v.(TupleTail)
		return ok
	case TagYes:
		return payloadFits(r.(*YesRepr).Elem, v)
	case TagMaybe:
		m, ok := v.(Maybe)
		return ok && (!m.Yes || payloadFits(r.(*MaybeRepr).Value, m.Value))
	case TagAny:
		inner, ok := v.(Any)
		return ok && inner.Repr != nil
	case TagUnion:
		u, ok := v.(Union)
		alts := r.(*UnionRepr).Alts
		return ok && u.Tag >= 0 && u.Tag < len(alts) && payloadFits(alts[u.Tag], u.Value)
	case TagPtr:
		p, ok := v.(*Ref)
		return ok && p != nil
	case TagFunc, TagFuncNull:
		return v != nil
	case TagClos:
		c, ok := v.(Closure)
		return ok && c.Func != nil
	case TagPartialApply:
		p, ok := v.(*PartialApply)
		return ok && p != nil
	case TagObject:
		_, ok := v.(Object)
		return ok
	default:
		return false
	}
}
