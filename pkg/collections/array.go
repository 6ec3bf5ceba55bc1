package collections

import (
	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/mem"
	"ferrum/runtime-go/pkg/runtime"
)

type arrayState struct {
	elems []any
	seq   int
}

type fastArray struct {
	state *arrayState
	seq   int
}

func arrayElems(src runtime.Any) []any {
	var elems []any
	for v := range runtime.Elems(src) {
		elems = append(elems, v)
	}
	return elems
}

func indexArg(v runtime.Any) int {
	pos, err := bridge.AsInt(v, bridge.NativeIntBits)
	if err != nil {
		panic(fatal.Newf("array: bad index: %v", err))
	}
	return pos
}

func checkIndex(kind string, pos, n int) {
	fatal.Check(pos >= 0 && pos < n, "%s: index %d out of range (%d)", kind, pos, n)
}

func checkSlice(kind string, start, end, n int) {
	fatal.Check(start >= 0 && start <= end && end <= n, "%s: slice [%d:%d] out of range (%d)", kind, start, end, n)
}

func elemsList(elems []any) runtime.Any {
	out := make([]runtime.Any, len(elems))
	for i, e := range elems {
		out[i] = e.(runtime.Any)
	}
	return runtime.MkList(out...)
}

//-----------------------------------------------------------------------------
// Fast access array: in place, generation checked
//-----------------------------------------------------------------------------

// ArrayFastAccess builds an ephemeral array holding the elements of the
// chain src.
func (f *Factory) ArrayFastAccess(src runtime.Any) runtime.Any {
	return f.fastArrayObject(&arrayState{elems: mem.Clone(arrayElems(src))}, 0)
}

func (f *Factory) fastArrayObject(st *arrayState, seq int) runtime.Any {
	return bridge.Closure(f.fastArrayRequest, &fastArray{state: st, seq: seq})
}

func (f *Factory) fastArrayRequest(env any, req runtime.Any) runtime.Any {
	arr := env.(*fastArray)
	st := arr.state
	if f.SafetyChecks {
		checkGeneration("array", arr.seq, st.seq)
	}
	st.seq++
	next := f.fastArrayObject(st, st.seq)

	name, args := requestName(req)
	switch name {
	case "length":
		return reply(next, runtime.FromInt(len(st.elems)))
	case "get":
		pos := indexArg(runtime.MatchTuple1(args))
		checkIndex("array", pos, len(st.elems))
		return reply(next, st.elems[pos].(runtime.Any))
	case "set":
		posArg, val := runtime.MatchTuple2(args)
		pos := indexArg(posArg)
		checkIndex("array", pos, len(st.elems))
		st.elems[pos] = val
		return reply(next, runtime.Nil())
	case "extend":
		more := arrayElems(runtime.MatchTuple1(args))
		n := len(st.elems)
		st.elems = mem.Grow(st.elems, n+len(more))
		copy(st.elems[n:], more)
		return reply(next, runtime.Nil())
	case "slice":
		startArg, endArg := runtime.MatchTuple2(args)
		start, end := indexArg(startArg), indexArg(endArg)
		checkSlice("array", start, end, len(st.elems))
		part := &arrayState{elems: mem.Clone(st.elems[start:end])}
		return reply(next, f.fastArrayObject(part, 0))
	case "snapshot":
		runtime.MatchNil(args)
		return reply(next, f.restoreCapability(st, mem.Clone(st.elems)))
	case "elems":
		return reply(next, elemsList(st.elems))
	case "persistent":
		return reply(next, f.slowArrayObject(mem.Clone(st.elems)))
	case "ephemeral", "copy":
		return reply(next, f.fastArrayObject(&arrayState{elems: mem.Clone(st.elems)}, 0))
	default:
		panic(unknownRequest("array", name))
	}
}

// restoreCapability replaces the contents of st with snap under a fresh
// generation, superseding every object issued before.
func (f *Factory) restoreCapability(st *arrayState, snap []any) runtime.Any {
	return bridge.Closure(func(_ any, arg runtime.Any) runtime.Any {
		runtime.MatchNil(arg)
		st.elems = mem.Clone(snap)
		st.seq++
		return f.fastArrayObject(st, st.seq)
	}, nil)
}

//-----------------------------------------------------------------------------
// Slow copy array: every write copies, no generations
//-----------------------------------------------------------------------------

type slowArray struct {
	elems []any
}

// ArraySlowCopy builds a persistent array holding the elements of src.
func (f *Factory) ArraySlowCopy(src runtime.Any) runtime.Any {
	return f.slowArrayObject(mem.Clone(arrayElems(src)))
}

func (f *Factory) slowArrayObject(elems []any) runtime.Any {
	return bridge.Closure(f.slowArrayRequest, &slowArray{elems: elems})
}

func (f *Factory) slowArrayRequest(env any, req runtime.Any) runtime.Any {
	arr := env.(*slowArray)
	self := bridge.Closure(f.slowArrayRequest, arr)

	name, args := requestName(req)
	switch name {
	case "length":
		return reply(self, runtime.FromInt(len(arr.elems)))
	case "get":
		pos := indexArg(runtime.MatchTuple1(args))
		checkIndex("array", pos, len(arr.elems))
		return reply(self, arr.elems[pos].(runtime.Any))
	case "set":
		posArg, val := runtime.MatchTuple2(args)
		pos := indexArg(posArg)
		checkIndex("array", pos, len(arr.elems))
		elems := mem.Clone(arr.elems)
		elems[pos] = val
		return reply(f.slowArrayObject(elems), runtime.Nil())
	case "extend":
		more := arrayElems(runtime.MatchTuple1(args))
		elems := mem.Values(len(arr.elems) + len(more))
		copy(elems, arr.elems)
		copy(elems[len(arr.elems):], more)
		return reply(f.slowArrayObject(elems), runtime.Nil())
	case "slice":
		startArg, endArg := runtime.MatchTuple2(args)
		start, end := indexArg(startArg), indexArg(endArg)
		checkSlice("array", start, end, len(arr.elems))
		return reply(self, f.slowArrayObject(mem.Clone(arr.elems[start:end])))
	case "snapshot":
		runtime.MatchNil(args)
		restore := bridge.Closure(func(_ any, arg runtime.Any) runtime.Any {
			runtime.MatchNil(arg)
			return self
		}, nil)
		return reply(self, restore)
	case "elems":
		return reply(self, elemsList(arr.elems))
	case "persistent", "copy":
		return reply(self, self)
	case "ephemeral":
		return reply(self, f.fastArrayObject(&arrayState{elems: mem.Clone(arr.elems)}, 0))
	default:
		panic(unknownRequest("array", name))
	}
}
