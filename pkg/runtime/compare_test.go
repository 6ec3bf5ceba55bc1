package runtime

import (
	"testing"

	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/list"
)

func comparableSamples() []Any {
	lr := NewList(reg.Int)
	return []Any{
		Nil(),
		FromBool(false),
		FromBool(true),
		FromInt(-3),
		FromInt(0),
		FromInt(7),
		FromStr(""),
		FromStr("a"),
		FromChar('b'),
		FromStr("ab"),
		Any{Repr: NewSingle("b")},
		ints(1),
		ints(1, 2),
		FromList(lr, list.FromSlice(reg.Int, []any{1, 3})),
		ints(2),
		MkList(FromStr("a"), FromBool(true)),
		MkListTail(FromInt(5), FromInt(1)),
	}
}

func TestEqIsReflexiveAndSymmetric(t *testing.T) {
	samples := comparableSamples()
	for i, a := range samples {
		if !Eq(a, a) {
			t.Fatalf("Eq(%s, %s) = false", a, a)
		}
		for j, b := range samples {
			if Eq(a, b) != Eq(b, a) {
				t.Fatalf("Eq not symmetric for %d/%d", i, j)
			}
			if Eq(a, b) && Compare(a, b) != 0 {
				t.Fatalf("Eq(%s, %s) but Compare = %d", a, b, Compare(a, b))
			}
		}
	}
}

func TestCompareIsATotalOrder(t *testing.T) {
	samples := comparableSamples()
	for _, a := range samples {
		for _, b := range samples {
			ab, ba := Compare(a, b), Compare(b, a)
			if ab != -ba {
				t.Fatalf("Compare(%s, %s) = %d but reverse = %d", a, b, ab, ba)
			}
			for _, c := range samples {
				if ab < 0 && Compare(b, c) < 0 && Compare(a, c) >= 0 {
					t.Fatalf("not transitive: %s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func TestCompareCategoryOrder(t *testing.T) {
	ordered := []Any{Nil(), FromBool(true), FromInt(-100), FromStr(""), ints(0)}
	for i := 0; i+1 < len(ordered); i++ {
		if Compare(ordered[i], ordered[i+1]) != -1 {
			t.Fatalf("expected %s < %s", ordered[i], ordered[i+1])
		}
	}
	if Compare(ints(1, 2), ints(1, 3)) != -1 {
		t.Fatal("pairs compare head-major then tail")
	}
	if Compare(ints(1), ints(1, 0)) != -1 {
		t.Fatal("shorter list sorts first")
	}
	if Compare(FromStr("ab"), FromStr("b")) != -1 || Compare(FromStr("ab"), FromStr("a")) != 1 {
		t.Fatal("bytewise string order")
	}
}

func TestListAndPairChainsAreEqual(t *testing.T) {
	lr := NewList(reg.Int)
	l := FromList(lr, list.FromSlice(reg.Int, []any{1, 2}))
	if !Eq(l, ints(1, 2)) {
		t.Fatal("list and pair chain with same elements must be equal")
	}
	tr := NewTupleOf(reg.Int, reg.Int)
	if !Eq(FromTuple(tr, Tuple{1, 2}), l) {
		t.Fatal("tuple and list with same elements must be equal")
	}
	if Eq(ints(1), FromInt(1)) {
		t.Fatal("pair and int differ")
	}
}

func TestStaticStringFastPath(t *testing.T) {
	s := "interned"
	a := Any{Repr: reg.Str, Value: StaticStr(s)}
	b := Any{Repr: reg.Str, Value: StaticStr(s)}
	if !Eq(a, b) {
		t.Fatal("identical static strings must be equal")
	}
	if !Eq(FromStatic("abc"), FromStr(string([]byte("abc")))) {
		t.Fatal("static and dynamic strings compare by content")
	}
	if Eq(FromStr("abc"), FromStr("abd")) {
		t.Fatal("different contents must differ")
	}
}

func TestFunctionsAreIncomparable(t *testing.T) {
	if err := fatal.Catch(func() { Eq(addFunc(), addFunc()) }); err == nil {
		t.Fatal("expected function equality to fail")
	}
	if err := fatal.Catch(func() { Compare(FromType(), FromInt(1)) }); err == nil {
		t.Fatal("expected type comparison to fail")
	}
	if Eq(addFunc(), FromInt(1)) {
		t.Fatal("function against atom is simply unequal")
	}
}
