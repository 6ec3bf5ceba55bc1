package prims

import (
	"fmt"
	"io"

	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/runtime"
)

const (
	loopContinue = "continue"
	loopBreak    = "break"
)

// branch calls the first or second continuation of the list k with arg.
func branch(cond bool, k, arg runtime.Any) runtime.Any {
	if cond {
		return runtime.Call(runtime.ListAt(k, 0), arg)
	}
	return runtime.Call(runtime.ListAt(k, 1), arg)
}

// If calls kTF[0] or kTF[1] with nil depending on cond.
func If(cond, kTF runtime.Any) runtime.Any { return branch(runtime.ToBool(cond), kTF, runtime.Nil()) }

func IfNil(a, k runtime.Any) runtime.Any {
	kT, kF := runtime.MatchTuple2(k)
	if runtime.IsNil(a) {
		return runtime.Call(kT, a)
	}
	return runtime.Call(kF, a)
}

func IfType(a, k runtime.Any) runtime.Any {
	kY, kN := runtime.MatchTuple2(k)
	if runtime.IsType(a) {
		return runtime.Call(kY, a)
	}
	return runtime.Call(kN, a)
}

func IfPair(a, k runtime.Any) runtime.Any { return branch(runtime.IsPair(a), k, a) }
func IfBool(a, k runtime.Any) runtime.Any { return branch(runtime.IsBool(a), k, a) }
func IfInt(a, k runtime.Any) runtime.Any { return branch(runtime.IsInt(a), k, a) }
func IfStr(a, k runtime.Any) runtime.Any { return branch(runtime.IsStr(a), k, a) }

// Break and Continue build the step results understood by LoopOne.
func Break(a runtime.Any) runtime.Any { return runtime.MkList(runtime.FromStatic(loopBreak), a) }
func Continue(a runtime.Any) runtime.Any { return runtime.MkList(runtime.FromStatic(loopContinue), a) }

// LoopOne calls fn repeatedly, starting with value, for as long as it
// returns ["continue", next]. The value carried by ["break", v] is returned.
func LoopOne(fn, value runtime.Any) runtime.Any {
	step := runtime.Call(fn, value)
	for runtime.ToStr(runtime.Head(step)).Data == loopContinue {
		step = runtime.Call(fn, runtime.ListAt(step, 1))
	}
	if runtime.ToStr(runtime.Head(step)).Data != loopBreak {
		panic(fatal.Newf("loopOne: loop must return either [\"break\", ...] or [\"continue\", ...], got %s", runtime.Show(step)))
	}
	return runtime.ListAt(step, 1)
}

// LoopTwo is LoopOne with the arguments swapped.
func LoopTwo(value, fn runtime.Any) runtime.Any { return LoopOne(fn, value) }

var fixCurried runtime.Any

// Fix computes f (fix f) x.
func Fix(f, x runtime.Any) runtime.Any {
	return runtime.Call(runtime.Call(f, runtime.Call(fixCurried, f)), x)
}

func Identity(a runtime.Any) runtime.Any { return a }

// NoOrA returns a when cond holds, otherwise nil.
func NoOrA(cond, a runtime.Any) runtime.Any {
	if runtime.ToBool(cond) {
		return a
	}
	return runtime.Nil()
}

// NoOrYesA returns [a] when cond holds, otherwise [].
func NoOrYesA(cond, a runtime.Any) runtime.Any {
	if runtime.ToBool(cond) {
		return runtime.MkList(a)
	}
	return runtime.Nil()
}

// Show renders a as a tagged string.
func Show(a runtime.Any) runtime.Any { return runtime.AnyShow(a) }

// Error aborts the program with msg.
func Error(msg runtime.Any) runtime.Any {
	panic(fatal.Newf("error: program invoked the \"error\" function\n    %s", runtime.Show(msg)))
}

// UnknownVariable reports a reference the compiler could not resolve. The
// failure is deferred until the reference is evaluated.
func UnknownVariable(name runtime.Any) runtime.Any {
	panic(fatal.Newf("unknown variable: %s", str(name)))
}

// Tracer writes trace messages for the trace primitives.
type Tracer struct {
	W io.Writer
}

// Trace prints msg and returns val.
func (t Tracer) Trace(msg, val runtime.Any) runtime.Any {
	fmt.Fprintf(t.W, "C_RuntimeTrace: %s\n", runtime.Show(msg))
	return val
}

// TraceTwo prints msg and calls k with nil.
func (t Tracer) TraceTwo(msg, k runtime.Any) runtime.Any {
	fmt.Fprintf(t.W, "C_RuntimeTrace: %s\n", runtime.Show(msg))
	return runtime.Call(k, runtime.Nil())
}

//-----------------------------------------------------------------------------
// Handler passing
//-----------------------------------------------------------------------------

var (
	hpsCallK = bridge.Function2(func(result, handler runtime.Any) runtime.Any { return result })
	hpsDoK   = bridge.Function2(func(result, handler runtime.Any) runtime.Any {
		return runtime.MkList(handler, result)
	})
)

// HpsHandlerMk instantiates a handler from its constructor and initial state.
func HpsHandlerMk(handlerMk, initState runtime.Any) runtime.Any {
	return runtime.Call(handlerMk, initState)
}

// HpsCall runs action with a continuation that discards the final handler.
func HpsCall(action, handler runtime.Any) runtime.Any {
	return runtime.Call(runtime.Call(action, hpsCallK), handler)
}

// HpsDo runs action with a continuation that returns [handler, result].
func HpsDo(action, handler runtime.Any) runtime.Any {
	return runtime.Call(runtime.Call(action, hpsDoK), handler)
}
