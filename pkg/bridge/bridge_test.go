package bridge

import (
	"math/big"
	"strings"
	"testing"

	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/runtime"
)

func TestFunction2PartialApplication(t *testing.T) {
	sub := Function2(func(a, b runtime.Any) runtime.Any {
		return runtime.FromInt(runtime.ToInt(a) - runtime.ToInt(b))
	})
	partial := runtime.Call(sub, runtime.FromInt(10))
	if partial.Repr.Tag() != runtime.TagPartialApply {
		t.Fatalf("expected partial application, got %s", partial.Repr)
	}
	if got := runtime.ToInt(runtime.Call(partial, runtime.FromInt(4))); got != 6 {
		t.Fatalf("10 - 4 = %d", got)
	}
}

func TestFunction3(t *testing.T) {
	f := Function3(func(a, b, c runtime.Any) runtime.Any {
		return runtime.MkList(c, b, a)
	})
	got := runtime.CallN(f, runtime.FromInt(1), runtime.FromInt(2), runtime.FromInt(3))
	if runtime.Show(got) != "[3,2,1]" {
		t.Fatalf("got %s", got)
	}
}

func TestClosureCarriesEnvironment(t *testing.T) {
	counter := 0
	c := Closure(func(env any, a runtime.Any) runtime.Any {
		n := env.(*int)
		*n += runtime.ToInt(a)
		return runtime.FromInt(*n)
	}, &counter)
	runtime.Call(c, runtime.FromInt(2))
	runtime.Call(c, runtime.FromInt(3))
	if counter != 5 {
		t.Fatalf("counter = %d", counter)
	}
}

func TestStrClosureCoercesArgument(t *testing.T) {
	c := StrClosure(func(env any, s runtime.Str) runtime.Any {
		return runtime.FromInt(s.Len())
	}, nil)
	if got := runtime.ToInt(runtime.Call(c, runtime.FromChar('x'))); got != 1 {
		t.Fatalf("len = %d", got)
	}
}

func TestNativeClosureShortCircuitsRoundTrip(t *testing.T) {
	double := Function1(func(a runtime.Any) runtime.Any {
		return runtime.FromInt(2 * runtime.ToInt(a))
	})
	native := NativeClosure(double)
	if runtime.ToInt(native(runtime.FromInt(4))) != 8 {
		t.Fatal("native closure mismatch")
	}
	clos := runtime.ToClos(ClosAnyToAny, double)
	back := runtime.FromClos(ClosAnyToAny, clos)
	if back.Repr != double.Repr {
		t.Fatalf("expected the original function, got %s", back.Repr)
	}
}

func TestTypedConversions(t *testing.T) {
	if s, err := AsString(runtime.FromChar('a')); err != nil || s != "a" {
		t.Fatalf("AsString = %q, %v", s, err)
	}
	if _, err := AsString(runtime.FromInt(1)); err == nil || !strings.Contains(err.Error(), "expected Str") {
		t.Fatalf("expected error, got %v", err)
	}
	if b, err := AsBool(ToBool(true)); err != nil || !b {
		t.Fatal("AsBool mismatch")
	}
	if c, err := AsChar(ToString("z")); err != nil || c != 'z' {
		t.Fatal("AsChar mismatch")
	}
	if v, err := AsInt(ToInt(127), 8); err != nil || v != 127 {
		t.Fatalf("AsInt = %d, %v", v, err)
	}
	if _, err := AsInt(ToInt(128), 8); err == nil {
		t.Fatal("expected 8-bit overflow")
	}
	if _, err := AsInt(ToInt(-129), 8); err == nil {
		t.Fatal("expected 8-bit underflow")
	}
	if v, err := AsInt(ToInt(-1<<40), NativeIntBits); err != nil || v != -1<<40 {
		t.Fatalf("AsInt(native) = %d, %v", v, err)
	}
	if _, err := AsInt(runtime.Any{}, 64); err == nil {
		t.Fatal("expected absent value error")
	}
}

func TestGuardAndCheckedInt(t *testing.T) {
	_, err := Guard(func() runtime.Any {
		return runtime.Call(runtime.FromInt(1), runtime.Nil())
	})
	if fe, ok := fatal.As(err); !ok || !strings.Contains(fe.Message, "cannot apply") {
		t.Fatalf("expected fatal error, got %v", err)
	}
	v, err := Guard(func() runtime.Any { return ToInt(3) })
	if err != nil || runtime.ToInt(v) != 3 {
		t.Fatal("Guard must pass results through")
	}
	huge := new(big.Int).Lsh(big.NewInt(1), 80)
	if ferr := fatal.Catch(func() { CheckedInt("mul", huge) }); ferr == nil {
		t.Fatal("expected overflow")
	}
	if CheckedInt("add", big.NewInt(-5)) != -5 {
		t.Fatal("CheckedInt mismatch")
	}
}
