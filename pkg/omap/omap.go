// Package omap is the ordered associative map behind associative values.
//
// Keys are tagged values ordered by runtime.Compare, so nil sorts before
// booleans, booleans before integers, integers before strings and strings
// before pairs. Keys of incomparable kinds (functions, types) fail fatally
// when they meet another key.
package omap

import (
	"iter"

	"github.com/emirpasic/gods/maps/treemap"

	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/mem"
	"ferrum/runtime-go/pkg/runtime"
)

// Map is an ordered map from tagged values to tagged values.
type Map struct {
	tree *treemap.Map
}

func compareKeys(a, b interface{}) int {
	return runtime.Compare(a.(runtime.Any), b.(runtime.Any))
}

// New returns an empty map.
func New() *Map {
	mem.Count()
	return &Map{tree: treemap.NewWith(compareKeys)}
}

// FromPairs builds a map from a chain of [key, value] pairs. Later entries
// replace earlier ones.
func FromPairs(entries runtime.Any) *Map {
	m := New()
	for entry := range runtime.Elems(entries) {
		k, v := runtime.MatchTuple2(entry)
		m.Set(k, v)
	}
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key runtime.Any) (runtime.Any, bool) {
	v, ok := m.tree.Get(key)
	if !ok {
		return runtime.Any{}, false
	}
	return v.(runtime.Any), true
}

// MustGet returns the value stored under key, failing fatally when absent.
func (m *Map) MustGet(key runtime.Any) runtime.Any {
	v, ok := m.Get(key)
	if !ok {
		panic(fatal.Newf("omap: missing key %s", key))
	}
	return v
}

// Set stores val under key.
func (m *Map) Set(key, val runtime.Any) {
	m.tree.Put(key, val)
}

// Erase removes key if present.
func (m *Map) Erase(key runtime.Any) {
	m.tree.Remove(key)
}

// Len reports the number of entries.
func (m *Map) Len() int {
	return m.tree.Size()
}

// Copy returns an independent snapshot of m.
func (m *Map) Copy() *Map {
	out := New()
	it := m.tree.Iterator()
	for it.Next() {
		out.tree.Put(it.Key(), it.Value())
	}
	return out
}

// All iterates over the entries in key order.
func (m *Map) All() iter.Seq2[runtime.Any, runtime.Any] {
	return func(yield func(runtime.Any, runtime.Any) bool) {
		it := m.tree.Iterator()
		for it.Next() {
			if !yield(it.Key().(runtime.Any), it.Value().(runtime.Any)) {
				return
			}
		}
	}
}

// Keys returns the keys in order.
func (m *Map) Keys() []runtime.Any {
	keys := make([]runtime.Any, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Entries renders the map as a chain of [key, value] pairs in key order.
func (m *Map) Entries() runtime.Any {
	entries := make([]runtime.Any, 0, m.Len())
	for k, v := range m.All() {
		entries = append(entries, runtime.MkList(k, v))
	}
	return runtime.MkList(entries...)
}
