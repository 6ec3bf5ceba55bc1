package omap

import (
	"testing"

	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/runtime"
)

func TestOrderFollowsStructuralComparison(t *testing.T) {
	m := New()
	m.Set(runtime.FromStr("b"), runtime.FromInt(1))
	m.Set(runtime.MkList(runtime.FromInt(1)), runtime.FromInt(2))
	m.Set(runtime.FromInt(10), runtime.FromInt(3))
	m.Set(runtime.FromBool(false), runtime.FromInt(4))
	m.Set(runtime.Nil(), runtime.FromInt(5))
	m.Set(runtime.FromStr("a"), runtime.FromInt(6))

	got := runtime.Show(runtime.MkList(m.Keys()...))
	want := `[[],false,10,"a","b",[1]]`
	if got != want {
		t.Fatalf("keys = %s, want %s", got, want)
	}
}

func TestGetSetErase(t *testing.T) {
	m := New()
	key := runtime.MkList(runtime.FromStr("x"), runtime.FromInt(1))
	if _, ok := m.Get(key); ok {
		t.Fatal("empty map must not contain key")
	}
	m.Set(key, runtime.FromInt(1))
	m.Set(runtime.MkList(runtime.FromStr("x"), runtime.FromInt(1)), runtime.FromInt(2))
	if m.Len() != 1 {
		t.Fatalf("Len = %d, structurally equal keys must collide", m.Len())
	}
	if v := m.MustGet(key); runtime.ToInt(v) != 2 {
		t.Fatalf("value = %s", v)
	}
	m.Erase(key)
	if m.Len() != 0 {
		t.Fatal("erase failed")
	}
	if err := fatal.Catch(func() { m.MustGet(key) }); err == nil {
		t.Fatal("expected missing key to fail")
	}
}

func TestCopyIsolation(t *testing.T) {
	orig := FromPairs(runtime.MkList(
		runtime.MkList(runtime.FromStr("a"), runtime.FromInt(1)),
		runtime.MkList(runtime.FromStr("b"), runtime.FromInt(2)),
	))
	cp := orig.Copy()
	cp.Set(runtime.FromStr("a"), runtime.FromInt(100))
	cp.Erase(runtime.FromStr("b"))
	cp.Set(runtime.FromStr("c"), runtime.FromInt(3))

	if v, _ := orig.Get(runtime.FromStr("a")); runtime.ToInt(v) != 1 {
		t.Fatalf("original a = %s", v)
	}
	if _, ok := orig.Get(runtime.FromStr("b")); !ok {
		t.Fatal("original lost b")
	}
	if _, ok := orig.Get(runtime.FromStr("c")); ok {
		t.Fatal("original gained c")
	}
	if got := runtime.Show(orig.Entries()); got != `[["a",1],["b",2]]` {
		t.Fatalf("entries = %s", got)
	}
}

func TestIncomparableKeysAreFatal(t *testing.T) {
	m := New()
	m.Set(runtime.FromInt(1), runtime.Nil())
	if err := fatal.Catch(func() { m.Set(runtime.FromType(), runtime.Nil()) }); err == nil {
		t.Fatal("expected type key to fail")
	}
}
