// Package mem is the allocation facade used by the value runtime.
//
// Payload memory is owned by the Go collector; the facade keeps the
// allocation contract of the runtime (fail fatally, never recoverably) and
// counts allocations for the diagnostics printed at exit.
package mem

import (
	"fmt"
	"io"
	"sync/atomic"

	"ferrum/runtime-go/pkg/fatal"
)

// MinGrowth is the smallest capacity produced by Grow.
const MinGrowth = 16

var allocations atomic.Int64

// Values allocates a zeroed buffer of n elements.
func Values(n int) []any {
	if n < 0 {
		panic(fatal.Newf("malloc failed: negative size %d", n))
	}
	allocations.Add(1)
	return make([]any, n)
}

// Clone copies buf into a freshly allocated buffer.
func Clone(buf []any) []any {
	out := Values(len(buf))
	copy(out, buf)
	return out
}

// Grow returns a buffer of length n holding the contents of buf. The backing
// capacity grows to max(n, 2*len(buf), MinGrowth) when a reallocation is
// needed; otherwise buf is extended in place.
func Grow(buf []any, n int) []any {
	if n < 0 {
		panic(fatal.Newf("realloc failed: negative size %d", n))
	}
	if n <= cap(buf) {
		return buf[:n]
	}
	capacity := max(n, max(2*len(buf), MinGrowth))
	allocations.Add(1)
	out := make([]any, n, capacity)
	copy(out, buf)
	return out
}

// Count records an allocation made outside the helpers above.
func Count() {
	allocations.Add(1)
}

// Allocations reports the number of allocations made through the facade.
func Allocations() int64 {
	return allocations.Load()
}

// WriteDiagnostics prints the allocation counters.
func WriteDiagnostics(w io.Writer) {
	fmt.Fprintf(w, "allocations: %d\n", Allocations())
}
