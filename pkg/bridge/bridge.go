// Package bridge holds the descriptors and adapters that connect native Go
// functions to the dynamic calling convention, plus typed conversion helpers
// for code that works on tagged values.
package bridge

import (
	"fmt"
	"math/big"
	"strconv"

	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/runtime"
)

const NativeIntBits = strconv.IntSize

var reg = runtime.Primitives()

//-----------------------------------------------------------------------------
// Function descriptors
//-----------------------------------------------------------------------------

// FuncAnyToAny describes func(runtime.Any) runtime.Any.
var FuncAnyToAny = runtime.NewFunc([]runtime.Repr{reg.Any}, reg.Any,
	func(fn, env any, partial []runtime.Any, last runtime.Any) runtime.Any {
		return fn.(func(runtime.Any) runtime.Any)(last)
	})

// FuncAnyAnyToAny describes func(a, b runtime.Any) runtime.Any.
var FuncAnyAnyToAny = runtime.NewFunc([]runtime.Repr{reg.Any, reg.Any}, reg.Any,
	func(fn, env any, partial []runtime.Any, last runtime.Any) runtime.Any {
		return fn.(func(a, b runtime.Any) runtime.Any)(partial[0], last)
	})

// FuncAny3ToAny describes func(a, b, c runtime.Any) runtime.Any.
var FuncAny3ToAny = runtime.NewFunc([]runtime.Repr{reg.Any, reg.Any, reg.Any}, reg.Any,
	func(fn, env any, partial []runtime.Any, last runtime.Any) runtime.Any {
		return fn.(func(a, b, c runtime.Any) runtime.Any)(partial[0], partial[1], last)
	})

// ClosAnyToAny describes closures func(env any, a runtime.Any) runtime.Any.
var ClosAnyToAny = runtime.NewClos([]runtime.Repr{reg.Any}, reg.Any,
	func(fn, env any, partial []runtime.Any, last runtime.Any) runtime.Any {
		return fn.(func(env any, a runtime.Any) runtime.Any)(env, last)
	},
	func(env any, a runtime.Any) runtime.Any {
		return runtime.Call(env.(*runtime.FuncClosEnv).Func, a)
	})

// ClosStrToAny describes closures func(env any, s runtime.Str) runtime.Any.
var ClosStrToAny = runtime.NewClos([]runtime.Repr{reg.Str}, reg.Any,
	func(fn, env any, partial []runtime.Any, last runtime.Any) runtime.Any {
		return fn.(func(env any, s runtime.Str) runtime.Any)(env, runtime.ToStr(last))
	},
	func(env any, s runtime.Str) runtime.Any {
		return runtime.Call(env.(*runtime.FuncClosEnv).Func, runtime.Any{Repr: reg.Str, Value: s})
	})

// Function1 boxes a one-argument native function.
func Function1(fn func(runtime.Any) runtime.Any) runtime.Any {
	return runtime.FromFunc(FuncAnyToAny, fn)
}

// Function2 boxes a two-argument native function.
func Function2(fn func(a, b runtime.Any) runtime.Any) runtime.Any {
	return runtime.FromFunc(FuncAnyAnyToAny, fn)
}

// Function3 boxes a three-argument native function.
func Function3(fn func(a, b, c runtime.Any) runtime.Any) runtime.Any {
	return runtime.FromFunc(FuncAny3ToAny, fn)
}

// Closure boxes a native closure over env.
func Closure(fn func(env any, a runtime.Any) runtime.Any, env any) runtime.Any {
	return runtime.FromClos(ClosAnyToAny, runtime.Closure{Func: fn, Env: env})
}

// StrClosure boxes a native closure taking a string argument.
func StrClosure(fn func(env any, s runtime.Str) runtime.Any, env any) runtime.Any {
	return runtime.FromClos(ClosStrToAny, runtime.Closure{Func: fn, Env: env})
}

// NativeClosure presents a tagged function as a callable Go closure.
func NativeClosure(fn runtime.Any) func(runtime.Any) runtime.Any {
	c := runtime.ToClos(ClosAnyToAny, fn)
	call := c.Func.(func(env any, a runtime.Any) runtime.Any)
	return func(a runtime.Any) runtime.Any { return call(c.Env, a) }
}

//-----------------------------------------------------------------------------
// Typed conversions
//-----------------------------------------------------------------------------

// Recover converts a recovered fatal panic into an error.
func Recover(recovered any) error {
	return fatal.Recover(recovered)
}

// Guard runs fn and reports a fatal runtime failure as an error.
func Guard(fn func() runtime.Any) (result runtime.Any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Recover(r)
		}
	}()
	return fn(), nil
}

func AsString(value runtime.Any) (string, error) {
	v, ok := try(value, reg.Str)
	if !ok {
		return "", fmt.Errorf("expected Str, got %s", describe(value))
	}
	return v.(runtime.Str).Data, nil
}

func ToString(value string) runtime.Any {
	return runtime.FromStr(value)
}

func AsBool(value runtime.Any) (bool, error) {
	v, ok := try(value, reg.Bool)
	if !ok {
		return false, fmt.Errorf("expected Bool, got %s", describe(value))
	}
	return v.(bool), nil
}

func ToBool(value bool) runtime.Any {
	return runtime.FromBool(value)
}

func AsChar(value runtime.Any) (byte, error) {
	v, ok := try(value, reg.Char)
	if !ok {
		return 0, fmt.Errorf("expected Char, got %s", describe(value))
	}
	return byte(v.(runtime.Char)), nil
}

func ToChar(value byte) runtime.Any {
	return runtime.FromChar(value)
}

// AsInt extracts an integer and checks that it fits in bits signed bits.
func AsInt(value runtime.Any, bits int) (int, error) {
	v, ok := try(value, reg.Int)
	if !ok {
		return 0, fmt.Errorf("expected Int, got %s", describe(value))
	}
	n := v.(int)
	if bits > 0 && bits < NativeIntBits {
		limit := 1 << (bits - 1)
		if n < -limit || n >= limit {
			return 0, fmt.Errorf("%d does not fit in %d bits", n, bits)
		}
	}
	return n, nil
}

func ToInt(value int) runtime.Any {
	return runtime.FromInt(value)
}

// CheckedInt narrows an arbitrary precision result to a native integer,
// failing fatally on overflow.
func CheckedInt(operation string, val *big.Int) int {
	min, max := signedRange(NativeIntBits)
	if val.Cmp(min) < 0 || val.Cmp(max) > 0 {
		panic(fatal.Newf("integer overflow in %s: %s", operation, val.String()))
	}
	return int(val.Int64())
}

func describe(value runtime.Any) string {
	if value = runtime.ToAny(value); value.IsAbsent() {
		return "absent value"
	}
	return value.Repr.String()
}

func signedRange(bits int) (*big.Int, *big.Int) {
	if bits <= 0 || bits > 64 {
		bits = 64
	}
	one := big.NewInt(1)
	max := new(big.Int).Lsh(one, uint(bits-1))
	max.Sub(max, one)
	min := new(big.Int).Neg(new(big.Int).Lsh(one, uint(bits-1)))
	return min, max
}

func try(value runtime.Any, r runtime.Repr) (any, bool) {
	if value.IsAbsent() {
		return nil, false
	}
	return runtime.TryToValue(value, r)
}
