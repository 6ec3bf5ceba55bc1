// Package list implements the persistent, segment-chained list used for
// list-typed values.
//
// A list is a segment reference plus the offset of its logical head inside
// that segment. Elements are stored right-aligned so that prepending fills
// the segment leftward. A segment is only written in place when the list
// being extended sits exactly on the segment's frontier; every other
// prepend starts a new segment whose tail is the extended list.
package list

import (
	"iter"

	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/mem"
)

// MaxSegmentCapacity bounds the growth of a single segment allocation.
const MaxSegmentCapacity = 1000

// Desc identifies the element representation recorded in a segment.
// Descriptors are compared by identity.
type Desc interface {
	String() string
}

type segment struct {
	numElems int
	elems    []any
	tail     List
	desc     Desc
}

// List is a persistent list value. The zero value is the empty list.
type List struct {
	seg    *segment
	offset int
}

// Empty returns the empty list.
func Empty() List { return List{} }

// IsNil reports whether l is empty.
func (l List) IsNil() bool { return l.seg == nil }

// IsPair reports whether l has a head element.
func (l List) IsPair() bool { return l.seg != nil }

func newSegment(desc Desc, capacity int, tail List) *segment {
	return &segment{
		elems: mem.Values(capacity),
		tail:  tail,
		desc:  desc,
	}
}

func checkDesc(desc Desc, seg *segment) {
	if seg.desc != desc {
		panic(fatal.Newf("list: element repr %s does not match segment repr %s", descName(desc), descName(seg.desc)))
	}
}

func descName(desc Desc) string {
	if desc == nil {
		return "<nil>"
	}
	return desc.String()
}

// frontierRoom returns the number of free slots l may fill in place, or 0
// when another list already owns the segment's frontier.
func frontierRoom(l List) int {
	seg := l.seg
	available := len(seg.elems) - seg.numElems
	if available > l.offset {
		panic(fatal.Newf("list: impossible offset %d with %d free slots", l.offset, available))
	}
	if available == l.offset {
		return available
	}
	return 0
}

// Prepend returns a list with elem in front of l.
func Prepend(desc Desc, l List, elem any) List {
	if l.seg == nil {
		seg := newSegment(desc, 1, List{})
		seg.elems[0] = elem
		seg.numElems = 1
		return List{seg: seg}
	}
	checkDesc(desc, l.seg)
	if frontierRoom(l) > 0 {
		l.seg.elems[l.offset-1] = elem
		l.seg.numElems++
		return List{seg: l.seg, offset: l.offset - 1}
	}
	capacity := min(2*l.seg.numElems, MaxSegmentCapacity)
	seg := newSegment(desc, capacity, l)
	seg.elems[capacity-1] = elem
	seg.numElems = 1
	return List{seg: seg, offset: capacity - 1}
}

// PrependN returns a list with elems in front of l, elems[0] first.
func PrependN(desc Desc, l List, elems []any) List {
	n := len(elems)
	if n == 0 {
		return l
	}
	if l.seg == nil {
		seg := newSegment(desc, n, List{})
		copy(seg.elems, elems)
		seg.numElems = n
		return List{seg: seg}
	}
	checkDesc(desc, l.seg)
	fit := min(frontierRoom(l), n)
	if fit > 0 {
		copy(l.seg.elems[l.offset-fit:l.offset], elems[n-fit:])
		l.seg.numElems += fit
		l = List{seg: l.seg, offset: l.offset - fit}
	}
	left := n - fit
	if left == 0 {
		return l
	}
	capacity := max(min(2*l.seg.numElems, MaxSegmentCapacity), left)
	seg := newSegment(desc, capacity, l)
	copy(seg.elems[capacity-left:], elems[:left])
	seg.numElems = left
	return List{seg: seg, offset: capacity - left}
}

// FromSlice builds a list holding elems in order.
func FromSlice(desc Desc, elems []any) List {
	return PrependN(desc, List{}, elems)
}

// Head returns the first element of l.
func Head(desc Desc, l List) any {
	if l.seg == nil {
		panic(fatal.Newf("list: head of empty list"))
	}
	checkDesc(desc, l.seg)
	return l.seg.elems[l.offset]
}

// Tail returns l without its first element.
func Tail(desc Desc, l List) List {
	if l.seg == nil {
		panic(fatal.Newf("list: tail of empty list"))
	}
	checkDesc(desc, l.seg)
	if l.offset == len(l.seg.elems)-1 {
		return l.seg.tail
	}
	return List{seg: l.seg, offset: l.offset + 1}
}

// Len counts the elements of l.
func Len(l List) int {
	n := 0
	for l.seg != nil {
		n += len(l.seg.elems) - l.offset
		l = l.seg.tail
	}
	return n
}

// Next advances the cursor at *l and reports whether an element was produced.
func Next(desc Desc, l *List) (any, bool) {
	if l.seg == nil {
		return nil, false
	}
	v := Head(desc, *l)
	*l = Tail(desc, *l)
	return v, true
}

// All iterates over the elements of l in order.
func All(desc Desc, l List) iter.Seq[any] {
	return func(yield func(any) bool) {
		for cur := l; ; {
			v, ok := Next(desc, &cur)
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Slice copies the elements of l into a fresh buffer.
func Slice(desc Desc, l List) []any {
	out := mem.Values(Len(l))
	i := 0
	for cur := l; ; i++ {
		v, ok := Next(desc, &cur)
		if !ok {
			break
		}
		out[i] = v
	}
	return out
}

// Reverse returns a new list holding the elements of l in reverse order.
func Reverse(desc Desc, l List) List {
	n := Len(l)
	buf := mem.Values(n)
	for cur := l; n > 0; {
		n--
		buf[n], _ = Next(desc, &cur)
	}
	return PrependN(desc, List{}, buf)
}
