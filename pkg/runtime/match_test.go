package runtime

import (
	"testing"

	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/list"
)

func TestMatchHelpers(t *testing.T) {
	x, y := MatchTuple2(ints(1, 2))
	if ToInt(x) != 1 || ToInt(y) != 2 {
		t.Fatal("MatchTuple2 mismatch")
	}
	if ToInt(MatchTuple1(ints(9))) != 9 {
		t.Fatal("MatchTuple1 mismatch")
	}
	if err := fatal.Catch(func() { MatchTuple2(ints(1, 2, 3)) }); err == nil {
		t.Fatal("expected arity mismatch to fail")
	}
	if _, _, ok := TryMatchPair(Nil()); ok {
		t.Fatal("nil is not a pair")
	}
	if ToInt(ListAt(ints(5, 6, 7), 2)) != 7 {
		t.Fatal("ListAt mismatch")
	}
	if err := fatal.Catch(func() { ListAt(ints(5), 1) }); err == nil {
		t.Fatal("expected out of range index to fail")
	}
}

func TestListLookup(t *testing.T) {
	kv := NewTupleOf(reg.Str, reg.Int)
	mb := NewMaybe(reg.Int)
	l := list.FromSlice(kv, []any{
		Tuple{MakeStr("a"), 1},
		Tuple{MakeStr("b"), 2},
		Tuple{MakeStr("a"), 3},
	})
	got := ListLookup(kv, mb, MakeStr("a"), l)
	if !got.Yes || got.Value != 1 {
		t.Fatalf("lookup a = %+v", got)
	}
	if got := ListLookup(kv, mb, MakeStr("z"), l); got.Yes {
		t.Fatal("missing key must be absent")
	}
	if err := fatal.Catch(func() { ListLookup(kv, NewMaybe(reg.Str), MakeStr("a"), l) }); err == nil {
		t.Fatal("expected mismatched maybe descriptor to fail")
	}
	bad := NewTupleOf(reg.Int, reg.Int)
	if err := fatal.Catch(func() { ListLookup(bad, mb, MakeStr("a"), list.Empty()) }); err == nil {
		t.Fatal("expected non-string key field to fail")
	}
}
