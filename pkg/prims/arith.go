// Package prims implements the primitive operations available to compiled
// programs: integer arithmetic, string manipulation and control flow over
// tagged values.
package prims

import (
	"math/big"

	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/runtime"
)

func intOp(name string, a, b runtime.Any, op func(z, x, y *big.Int) *big.Int) runtime.Any {
	x := big.NewInt(int64(runtime.ToInt(a)))
	y := big.NewInt(int64(runtime.ToInt(b)))
	return runtime.FromInt(bridge.CheckedInt(name, op(new(big.Int), x, y)))
}

// Add returns a + b, failing fatally on overflow.
func Add(a, b runtime.Any) runtime.Any { return intOp("add", a, b, (*big.Int).Add) }

// Sub returns a - b, failing fatally on overflow.
func Sub(a, b runtime.Any) runtime.Any { return intOp("sub", a, b, (*big.Int).Sub) }

// Mul returns a * b, failing fatally on overflow.
func Mul(a, b runtime.Any) runtime.Any { return intOp("mul", a, b, (*big.Int).Mul) }

func Gt(a, b runtime.Any) runtime.Any { return runtime.FromBool(runtime.ToInt(a) > runtime.ToInt(b)) }
func Lt(a, b runtime.Any) runtime.Any { return runtime.FromBool(runtime.ToInt(a) < runtime.ToInt(b)) }
func Gte(a, b runtime.Any) runtime.Any { return runtime.FromBool(runtime.ToInt(a) >= runtime.ToInt(b)) }
func Lte(a, b runtime.Any) runtime.Any { return runtime.FromBool(runtime.ToInt(a) <= runtime.ToInt(b)) }

// BoolAnd and BoolOr evaluate both operands; there is no short circuit.
func BoolAnd(a, b runtime.Any) runtime.Any {
	return runtime.FromBool(runtime.ToBool(a) && runtime.ToBool(b))
}

func BoolOr(a, b runtime.Any) runtime.Any {
	return runtime.FromBool(runtime.ToBool(a) || runtime.ToBool(b))
}

func Not(a runtime.Any) runtime.Any { return runtime.FromBool(!runtime.ToBool(a)) }

// Eq and Compare expose structural equality and ordering.
func Eq(a, b runtime.Any) runtime.Any { return runtime.FromBool(runtime.Eq(a, b)) }
func Compare(a, b runtime.Any) runtime.Any { return runtime.FromInt(runtime.Compare(a, b)) }
