package runtime

import (
	"strings"
	"testing"
	"unsafe"

	"ferrum/runtime-go/pkg/fatal"
)

var reg = Primitives()

func TestTagString(t *testing.T) {
	if TagPartialApply.String() != "PartialApply" {
		t.Fatalf("unexpected %q", TagPartialApply.String())
	}
	if got := Tag(99).String(); got != "unknown_tag_99" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestPrimitivesAreSingletons(t *testing.T) {
	if Primitives() != Primitives() {
		t.Fatal("registry must be shared")
	}
	if reg.Int.Tag() != TagInt || reg.Int.Size() != unsafe.Sizeof(int(0)) {
		t.Fatalf("unexpected Int descriptor %v/%d", reg.Int.Tag(), reg.Int.Size())
	}
	if reg.ListAny.Elem != reg.Any {
		t.Fatal("ListAny must hold Any elements")
	}
}

func TestTupleLayout(t *testing.T) {
	r := NewTuple("point", Field{Name: "flag", Repr: reg.Bool}, Field{Name: "x", Repr: reg.Int}, Field{Name: "c", Repr: reg.Char})
	intSize := unsafe.Sizeof(int(0))
	if r.Fields[0].Offset != 0 {
		t.Fatalf("flag offset = %d", r.Fields[0].Offset)
	}
	if r.Fields[1].Offset != unsafe.Alignof(int(0)) {
		t.Fatalf("x offset = %d", r.Fields[1].Offset)
	}
	if r.Fields[2].Offset != r.Fields[1].Offset+intSize {
		t.Fatalf("c offset = %d", r.Fields[2].Offset)
	}
	if r.Size()%unsafe.Alignof(int(0)) != 0 || r.Size() <= r.Fields[2].Offset {
		t.Fatalf("size = %d", r.Size())
	}
	if r.NumFields() != 3 || r.Name != "point" {
		t.Fatalf("unexpected schema %+v", r)
	}
}

func TestUnionLayout(t *testing.T) {
	r := NewUnion(reg.Bool, reg.Str)
	if r.Offset != unsafe.Sizeof(int(0)) {
		t.Fatalf("offset = %d", r.Offset)
	}
	if r.Size() < r.Offset+reg.Str.Size() {
		t.Fatalf("size = %d", r.Size())
	}
	if err := fatal.Catch(func() { NewUnion() }); err == nil {
		t.Fatal("expected empty union to fail")
	}
}

func TestReprString(t *testing.T) {
	cases := []struct {
		repr Repr
		want string
	}{
		{reg.Bool, "Bool"},
		{NewList(reg.Int), "List Int"},
		{NewTupleOf(reg.Int, reg.Str), "Tuple 2 Int Str"},
		{NewMaybe(reg.Int), "Maybe Int"},
		{NewUnion(reg.Int, reg.Str), "Union 2 Int Str"},
		{NewPtr(reg.Str), "Ptr Str"},
		{NewSingle("ok"), `Single "ok"`},
		{add2Repr(), "(Func Int -> Int -> Int)"},
	}
	for _, tc := range cases {
		if got := tc.repr.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestFuncNeedsParameters(t *testing.T) {
	err := fatal.Catch(func() { NewFunc(nil, reg.Int, applyIntInt) })
	if err == nil || !strings.Contains(err.Message, "at least one parameter") {
		t.Fatalf("unexpected %v", err)
	}
}

func TestBoxChecksPayloadShape(t *testing.T) {
	if v := Box(reg.Int, 3); v.Value != 3 {
		t.Fatalf("unexpected %v", v)
	}
	if err := fatal.Catch(func() { Box(reg.Int, "3") }); err == nil {
		t.Fatal("expected mismatched payload to fail")
	}
	tr := NewTupleOf(reg.Int, reg.Int)
	if err := fatal.Catch(func() { Box(tr, Tuple{1}) }); err == nil {
		t.Fatal("expected short tuple to fail")
	}
	u := NewUnion(reg.Int, reg.Str)
	if err := fatal.Catch(func() { Box(u, Union{Tag: 2, Value: 1}) }); err == nil {
		t.Fatal("expected out of range union tag to fail")
	}
}
