package collections

import (
	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/omap"
	"ferrum/runtime-go/pkg/runtime"
)

// An assoc object takes the request name first and its argument list second:
// obj(name)(args) answers [next, result].

type assocRequest struct {
	name string
	run  func(name string, args runtime.Any) runtime.Any
}

func assocHandler(name string, run func(name string, args runtime.Any) runtime.Any) runtime.Any {
	return bridge.Closure(func(env any, args runtime.Any) runtime.Any {
		req := env.(*assocRequest)
		return req.run(req.name, args)
	}, &assocRequest{name: name, run: run})
}

func lookupReply(m *omap.Map, args runtime.Any) runtime.Any {
	if v, ok := m.Get(runtime.MatchTuple1(args)); ok {
		return runtime.MkList(v)
	}
	return runtime.MkList()
}

func applySet(m *omap.Map, args runtime.Any) {
	key, valMb := runtime.MatchTuple2(args)
	if runtime.IsNil(valMb) {
		m.Erase(key)
		return
	}
	m.Set(key, runtime.MatchTuple1(valMb))
}

//-----------------------------------------------------------------------------
// Persistent assoc
//-----------------------------------------------------------------------------

// AssocPersistent builds a copy-on-write assoc from a chain of [key, value]
// pairs.
func (f *Factory) AssocPersistent(entries runtime.Any) runtime.Any {
	return f.persistentAssoc(omap.FromPairs(entries))
}

func (f *Factory) persistentAssoc(m *omap.Map) runtime.Any {
	return bridge.StrClosure(func(_ any, name runtime.Str) runtime.Any {
		return assocHandler(name.Data, func(name string, args runtime.Any) runtime.Any {
			return f.persistentAssocRequest(m, name, args)
		})
	}, nil)
}

func (f *Factory) persistentAssocRequest(m *omap.Map, name string, args runtime.Any) runtime.Any {
	self := f.persistentAssoc(m)
	switch name {
	case "get":
		return reply(self, lookupReply(m, args))
	case "set":
		cp := m.Copy()
		applySet(cp, args)
		return reply(f.persistentAssoc(cp), runtime.Nil())
	case "length":
		return reply(self, runtime.FromInt(m.Len()))
	case "entries":
		return reply(self, m.Entries())
	case "persistent", "copy":
		return reply(self, self)
	case "ephemeral":
		return reply(self, f.ephemeralAssoc(&assocState{m: m.Copy()}, 0))
	default:
		panic(unknownRequest("assoc", name))
	}
}

//-----------------------------------------------------------------------------
// Ephemeral assoc
//-----------------------------------------------------------------------------

type assocState struct {
	m   *omap.Map
	seq int
}

// AssocEphemeral builds an in-place assoc from a chain of [key, value] pairs.
func (f *Factory) AssocEphemeral(entries runtime.Any) runtime.Any {
	return f.ephemeralAssoc(&assocState{m: omap.FromPairs(entries)}, 0)
}

func (f *Factory) ephemeralAssoc(st *assocState, seq int) runtime.Any {
	return bridge.StrClosure(func(_ any, name runtime.Str) runtime.Any {
		return assocHandler(name.Data, func(name string, args runtime.Any) runtime.Any {
			return f.ephemeralAssocRequest(st, seq, name, args)
		})
	}, nil)
}

func (f *Factory) ephemeralAssocRequest(st *assocState, seq int, name string, args runtime.Any) runtime.Any {
	if f.SafetyChecks {
		checkGeneration("assoc", seq, st.seq)
	}
	st.seq++
	next := f.ephemeralAssoc(st, st.seq)
	switch name {
	case "get":
		return reply(next, lookupReply(st.m, args))
	case "set":
		applySet(st.m, args)
		return reply(next, runtime.Nil())
	case "length":
		return reply(next, runtime.FromInt(st.m.Len()))
	case "entries":
		return reply(next, st.m.Entries())
	case "persistent":
		return reply(next, f.persistentAssoc(st.m.Copy()))
	case "ephemeral", "copy":
		return reply(next, f.ephemeralAssoc(&assocState{m: st.m.Copy()}, 0))
	default:
		panic(unknownRequest("assoc", name))
	}
}
