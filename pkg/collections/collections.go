// Package collections implements the array and assoc collection objects.
//
// A collection object is a closure answering requests. Every reply is a
// two-element list [next, result] where next is the object to use for the
// following request. Persistent objects copy on every write, so any earlier
// object stays valid. Ephemeral objects mutate shared state and stamp each
// continuation with a generation number; presenting a superseded object is a
// protocol violation detected when safety checks are on.
package collections

import (
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/runtime"
)

// Factory builds collection objects.
type Factory struct {
	// SafetyChecks enables generation checks on ephemeral objects.
	SafetyChecks bool
}

// NewFactory returns a factory with the given safety setting.
func NewFactory(safetyChecks bool) *Factory {
	return &Factory{SafetyChecks: safetyChecks}
}

func reply(next, result runtime.Any) runtime.Any {
	return runtime.MkList(next, result)
}

func checkGeneration(kind string, presented, current int) {
	fatal.Check(presented == current, "%s: incorrect seqId %d, current is %d", kind, presented, current)
}

// requestName splits a request into its tag and argument chain. A bare
// string is a request without arguments.
func requestName(req runtime.Any) (string, runtime.Any) {
	if runtime.IsStr(req) {
		return runtime.ToStr(req).Data, runtime.Nil()
	}
	name, args := runtime.MatchPair(req)
	return runtime.ToStr(name).Data, args
}

func unknownRequest(kind, name string) *fatal.Error {
	return fatal.Newf("%s: unknown request %q", kind, name)
}

// SendArray issues [name, args...] to an array object and splits the reply.
func SendArray(obj runtime.Any, name string, args ...runtime.Any) (next, result runtime.Any) {
	req := runtime.MkList(append([]runtime.Any{runtime.FromStr(name)}, args...)...)
	return runtime.MatchTuple2(runtime.Call(obj, req))
}

// SendAssoc issues name with args to an assoc object and splits the reply.
func SendAssoc(obj runtime.Any, name string, args ...runtime.Any) (next, result runtime.Any) {
	handler := runtime.Call(obj, runtime.FromStr(name))
	return runtime.MatchTuple2(runtime.Call(handler, runtime.MkList(args...)))
}
