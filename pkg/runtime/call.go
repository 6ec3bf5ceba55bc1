package runtime

import (
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/mem"
)

// Call applies fn to a single argument. Functions of more than one parameter
// accumulate arguments in a PartialApply until the last one arrives.
func Call(fn, arg Any) Any {
	fn = canon("call", fn)
	switch fn.Repr.Tag() {
	case TagFunc, TagFuncNull, TagClos:
		r := fn.Repr.(*FuncRepr)
		native, env := splitFunc(r, fn.Value)
		if r.NumParams() == 1 {
			return r.ApplySD(native, env, nil, arg)
		}
		mem.Count()
		return FromPartial(&PartialApply{Repr: r, Func: native, Env: env, Args: []Any{arg}})
	case TagPartialApply:
		pa := fn.Value.(*PartialApply)
		if len(pa.Args)+1 == pa.Repr.NumParams() {
			return pa.Repr.ApplySD(pa.Func, pa.Env, pa.Args, arg)
		}
		args := make([]Any, len(pa.Args)+1)
		copy(args, pa.Args)
		args[len(pa.Args)] = arg
		mem.Count()
		return FromPartial(&PartialApply{Repr: pa.Repr, Func: pa.Func, Env: pa.Env, Args: args})
	default:
		panic(fatal.Newf("cannot apply %s", fn.Repr))
	}
}

// CallN applies fn to args one at a time.
func CallN(fn Any, args ...Any) Any {
	for _, arg := range args {
		fn = Call(fn, arg)
	}
	return fn
}

func splitFunc(r *FuncRepr, v any) (native, env any) {
	if r.Tag() == TagClos {
		c := v.(Closure)
		return c.Func, c.Env
	}
	return v, nil
}

// FromFunc boxes a plain native function.
func FromFunc(r *FuncRepr, fn any) Any {
	return Box(r, fn)
}

// FromClos boxes a native closure. A closure that only re-wraps a tagged
// function yields that function instead of another layer of adapters.
func FromClos(r *FuncRepr, c Closure) Any {
	if env, ok := c.Env.(*FuncClosEnv); ok {
		return env.Func
	}
	return Box(r, c)
}

// ToClos presents a tagged function as a native closure of type r. The
// closure calls back into fn through r.ApplyDS.
func ToClos(r *FuncRepr, fn Any) Closure {
	if r.ApplyDS == nil {
		panic(fatal.Newf("toClos: %s has no static call adapter", r))
	}
	if fn.Repr == Repr(r) {
		return fn.Value.(Closure)
	}
	mem.Count()
	return Closure{Func: r.ApplyDS, Env: &FuncClosEnv{Func: fn}}
}
