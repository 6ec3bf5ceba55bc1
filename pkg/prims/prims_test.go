package prims

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"

	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/collections"
	"ferrum/runtime-go/pkg/driver"
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/runtime"
)

func num(i int) runtime.Any { return runtime.FromInt(i) }
func text(s string) runtime.Any { return runtime.FromStr(s) }

func TestArithmetic(t *testing.T) {
	if got := runtime.ToInt(Add(num(2), num(3))); got != 5 {
		t.Fatalf("Add = %d, want 5", got)
	}
	if got := runtime.ToInt(Sub(num(2), num(3))); got != -1 {
		t.Fatalf("Sub = %d, want -1", got)
	}
	if got := runtime.ToInt(Mul(num(-4), num(3))); got != -12 {
		t.Fatalf("Mul = %d, want -12", got)
	}
	if !runtime.ToBool(Gte(num(3), num(3))) || runtime.ToBool(Lt(num(3), num(3))) {
		t.Fatalf("comparison operators disagree")
	}
	if runtime.ToBool(BoolAnd(runtime.FromBool(true), runtime.FromBool(false))) {
		t.Fatalf("BoolAnd(true, false) = true")
	}
	if !runtime.ToBool(Not(BoolOr(runtime.FromBool(false), runtime.FromBool(false)))) {
		t.Fatalf("Not(BoolOr(false, false)) = false")
	}
}

func TestArithmeticOverflowIsFatal(t *testing.T) {
	err := fatal.Catch(func() { Add(num(math.MaxInt), num(1)) })
	if err == nil || !strings.Contains(err.Message, "integer overflow in add") {
		t.Fatalf("Add overflow error = %v", err)
	}
	if err := fatal.Catch(func() { Mul(num(math.MinInt), num(-1)) }); err == nil {
		t.Fatalf("expected Mul overflow to fail")
	}
}

func TestStrings(t *testing.T) {
	if got := str(StrAdd(text("ab"), text("cd"))); got != "abcd" {
		t.Fatalf("StrAdd = %q", got)
	}
	words := runtime.MkList(text("a"), text("b"), text("c"))
	if got := str(StrCat(words)); got != "abc" {
		t.Fatalf("StrCat = %q", got)
	}
	if got := str(StrJoin(text(", "), words)); got != "a, b, c" {
		t.Fatalf("StrJoin = %q", got)
	}
	if got := str(StrJoin(text(","), runtime.Nil())); got != "" {
		t.Fatalf("StrJoin of empty list = %q", got)
	}
	if got := runtime.ToInt(StrOrd(text(""))); got != -1 {
		t.Fatalf("StrOrd(\"\") = %d, want -1", got)
	}
	if got := runtime.ToInt(StrOrd(text("A"))); got != 65 {
		t.Fatalf("StrOrd(\"A\") = %d, want 65", got)
	}
	if got := str(StrChr(num(97))); got != "a" {
		t.Fatalf("StrChr(97) = %q", got)
	}
	if err := fatal.Catch(func() { StrChr(num(200)) }); err == nil {
		t.Fatalf("expected StrChr(200) to fail")
	}
	if got := str(StrCharAt(text("xyz"), num(1))); got != "y" {
		t.Fatalf("StrCharAt = %q", got)
	}
	if got := str(StrCharAt(text("xyz"), num(3))); got != "" {
		t.Fatalf("StrCharAt out of range = %q", got)
	}
	if got := runtime.Show(StrCharAtMb(text("xyz"), num(5))); got != "[]" {
		t.Fatalf("StrCharAtMb out of range = %s", got)
	}
	mb := StrCharAtMb(text("xyz"), num(2))
	if runtime.ToChar(runtime.Head(mb)) != 'z' {
		t.Fatalf("StrCharAtMb = %s", mb)
	}
	chars := runtime.MkList(runtime.FromChar('h'), runtime.FromChar('i'))
	if got := str(CharConcat(chars)); got != "hi" {
		t.Fatalf("CharConcat = %q", got)
	}
	err := fatal.Catch(func() { CharConcat(runtime.MkList(num(7))) })
	if err == nil || !strings.Contains(err.Message, "charConcat: expected Char") {
		t.Fatalf("CharConcat(int) = %v", err)
	}
	if !runtime.ToBool(StrEq(text("q"), runtime.FromStatic("q"))) {
		t.Fatalf("StrEq ignores static flag")
	}
}

func TestBranches(t *testing.T) {
	yes := bridge.Function1(func(a runtime.Any) runtime.Any { return text("yes") })
	no := bridge.Function1(func(a runtime.Any) runtime.Any { return text("no") })
	k := runtime.MkList(yes, no)

	cases := []struct {
		name string
		got  runtime.Any
		want string
	}{
		{"If true", If(runtime.FromBool(true), k), "yes"},
		{"If false", If(runtime.FromBool(false), k), "no"},
		{"IfNil nil", IfNil(runtime.Nil(), k), "yes"},
		{"IfNil pair", IfNil(runtime.MkList(num(1)), k), "no"},
		{"IfPair", IfPair(runtime.MkList(num(1)), k), "yes"},
		{"IfBool", IfBool(num(1), k), "no"},
		{"IfInt", IfInt(num(1), k), "yes"},
		{"IfStr", IfStr(text("s"), k), "yes"},
		{"IfType", IfType(runtime.FromType(), k), "yes"},
	}
	for _, tc := range cases {
		if got := str(tc.got); got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLoopOne(t *testing.T) {
	countdown := bridge.Function1(func(a runtime.Any) runtime.Any {
		if runtime.ToInt(a) == 0 {
			return Break(text("done"))
		}
		return Continue(Sub(a, num(1)))
	})
	if got := str(LoopOne(countdown, num(5))); got != "done" {
		t.Fatalf("LoopOne = %q", got)
	}
	bad := bridge.Function1(func(a runtime.Any) runtime.Any { return runtime.MkList(text("stop"), a) })
	if err := fatal.Catch(func() { LoopOne(bad, num(0)) }); err == nil {
		t.Fatalf("expected malformed loop step to fail")
	}
}

func TestFix(t *testing.T) {
	// fact = fix (\self n -> if n == 0 then 1 else n * self (n - 1))
	fact := bridge.Function2(func(self, n runtime.Any) runtime.Any {
		if runtime.ToInt(n) == 0 {
			return num(1)
		}
		return Mul(n, runtime.Call(self, Sub(n, num(1))))
	})
	if got := runtime.ToInt(Fix(fact, num(5))); got != 120 {
		t.Fatalf("Fix(fact, 5) = %d, want 120", got)
	}
}

func TestNoOrYes(t *testing.T) {
	if got := runtime.Show(NoOrYesA(runtime.FromBool(true), num(3))); got != "[3]" {
		t.Fatalf("NoOrYesA(true) = %s", got)
	}
	if !runtime.IsNil(NoOrA(runtime.FromBool(false), num(3))) {
		t.Fatalf("NoOrA(false) should be nil")
	}
	if runtime.ToInt(NoOrA(runtime.FromBool(true), num(3))) != 3 {
		t.Fatalf("NoOrA(true) should return its argument")
	}
}

func TestErrorAndUnknownVariable(t *testing.T) {
	err := fatal.Catch(func() { Error(text("boom")) })
	if err == nil || !strings.Contains(err.Message, `"boom"`) {
		t.Fatalf("Error = %v", err)
	}
	err = fatal.Catch(func() { UnknownVariable(text("zz")) })
	if err == nil || !strings.Contains(err.Message, "zz") {
		t.Fatalf("UnknownVariable = %v", err)
	}
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer{W: &buf}
	if got := runtime.ToInt(tr.Trace(text("hi"), num(7))); got != 7 {
		t.Fatalf("Trace returned %d", got)
	}
	k := bridge.Function1(func(a runtime.Any) runtime.Any { return num(8) })
	tr.TraceTwo(runtime.MkList(num(1)), k)
	want := "C_RuntimeTrace: \"hi\"\nC_RuntimeTrace: [1]\n"
	if buf.String() != want {
		t.Fatalf("trace output = %q, want %q", buf.String(), want)
	}
}

func TestHandlerPassing(t *testing.T) {
	// action k handler = k (handler + 1) (handler * 2)
	action := bridge.Function1(func(k runtime.Any) runtime.Any {
		return bridge.Function1(func(h runtime.Any) runtime.Any {
			return runtime.CallN(k, Add(h, num(1)), Mul(h, num(2)))
		})
	})
	if got := runtime.ToInt(HpsCall(action, num(10))); got != 11 {
		t.Fatalf("HpsCall = %d, want 11", got)
	}
	if got := runtime.Show(HpsDo(action, num(10))); got != "[20,11]" {
		t.Fatalf("HpsDo = %s, want [20,11]", got)
	}
	mk := bridge.Function1(func(s runtime.Any) runtime.Any { return runtime.MkList(text("handler"), s) })
	if got := runtime.Show(HpsHandlerMk(mk, num(0))); got != `["handler",0]` {
		t.Fatalf("HpsHandlerMk = %s", got)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, collections.NewFactory(true))
	plus := table.Lookup("+")
	if got := runtime.ToInt(runtime.CallN(plus, num(40), num(2))); got != 42 {
		t.Fatalf("+ = %d, want 42", got)
	}
	inc := runtime.Call(plus, num(1))
	if got := runtime.ToInt(runtime.Call(inc, num(1))); got != 2 {
		t.Fatalf("partial + = %d, want 2", got)
	}
	runtime.CallN(table.Lookup("trace"), text("t"), num(0))
	if !strings.HasPrefix(buf.String(), "C_RuntimeTrace:") {
		t.Fatalf("trace went to %q", buf.String())
	}
	err := fatal.Catch(func() { Lookup("nope") })
	if err == nil || !strings.Contains(err.Message, "unknown primitive: nope") {
		t.Fatalf("Lookup(nope) = %v", err)
	}
	names := table.Names()
	if len(names) != len(table) || names[0] > names[len(names)-1] {
		t.Fatalf("Names = %v", names)
	}
}

func TestCollectionPrimitives(t *testing.T) {
	table := NewTable(&bytes.Buffer{}, collections.NewFactory(true))
	elems := runtime.MkList(num(1), num(2), num(3))
	for _, name := range []string{"mkArrayFastAccessNoCopy", "mkArrayFastAccessSlowCopy"} {
		arr := runtime.CallN(table.Lookup(name), runtime.FromType(), elems)
		arr, _ = collections.SendArray(arr, "set", num(0), num(10))
		if _, got := collections.SendArray(arr, "elems"); runtime.Show(got) != "[10,2,3]" {
			t.Fatalf("%s elems = %s", name, got)
		}
	}

	entries := runtime.MkList(runtime.MkList(text("a"), num(1)))
	for _, name := range []string{"assoc1MkPersistent", "assoc1MkEphemeral"} {
		assoc := runtime.Call(table.Lookup(name), entries)
		if _, got := collections.SendAssoc(assoc, "get", text("a")); runtime.Show(got) != "[1]" {
			t.Fatalf("%s get = %s", name, got)
		}
	}
}

func TestEphemeralArrayPrimitiveHonoursSafety(t *testing.T) {
	mk := func(safety bool) runtime.Any {
		table := NewTable(&bytes.Buffer{}, collections.NewFactory(safety))
		return runtime.CallN(table.Lookup("mkArrayFastAccessNoCopy"), runtime.FromType(), runtime.MkList(num(1)))
	}
	checked := mk(true)
	collections.SendArray(checked, "length")
	if err := fatal.Catch(func() { collections.SendArray(checked, "length") }); err == nil {
		t.Fatalf("stale array accepted with safety checks on")
	}
	unchecked := mk(false)
	collections.SendArray(unchecked, "length")
	if err := fatal.Catch(func() { collections.SendArray(unchecked, "length") }); err != nil {
		t.Fatalf("stale array rejected with safety checks off: %v", err)
	}
}

func TestBindIO(t *testing.T) {
	var out bytes.Buffer
	d := &driver.Driver{FS: memfs.New(), Env: driver.MapEnv{}, Stdout: &out}
	table := NewTable(&bytes.Buffer{}, collections.NewFactory(true))
	if err := fatal.Catch(func() { table.Lookup("ioDo") }); err == nil {
		t.Fatalf("ioDo present before BindIO")
	}
	table.BindIO(d.Primitive([]string{"x"}))

	finish := bridge.Function1(func(args runtime.Any) runtime.Any {
		return runtime.MkList(runtime.MkList(text("done"), args), runtime.Nil())
	})
	program := runtime.MkList(runtime.MkList(text("getArgs")), finish)
	if got := runtime.Show(runtime.Call(table.Lookup("ioDo"), program)); got != `["x"]` {
		t.Fatalf("ioDo getArgs = %s", got)
	}
}

func TestDefaultTableExposesRuntimeConstructors(t *testing.T) {
	for _, name := range []string{
		"mkArrayFastAccessNoCopy",
		"mkArrayFastAccessSlowCopy",
		"assoc1MkPersistent",
		"assoc1MkEphemeral",
		"ioDo",
	} {
		if err := fatal.Catch(func() { Lookup(name) }); err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		if !runtime.IsFunc(Lookup(name)) {
			t.Fatalf("Lookup(%s) is not callable", name)
		}
	}
}
