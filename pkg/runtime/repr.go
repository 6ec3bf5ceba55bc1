package runtime

import (
	"fmt"
	"strings"
	"unsafe"

	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/list"
)

// Repr describes how a payload is laid out and interpreted. Descriptors never
// change after construction and are compared by identity.
type Repr interface {
	Tag() Tag
	Size() uintptr
	String() string
}

// ApplySD calls a statically typed native function from a dynamic call site.
// partial holds the arguments accumulated by earlier partial applications.
type ApplySD func(fn, env any, partial []Any, last Any) Any

var (
	pointerSize  = unsafe.Sizeof(uintptr(0))
	pointerAlign = unsafe.Alignof(uintptr(0))
)

func alignUp(n, align uintptr) uintptr {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

func alignOf(r Repr) uintptr {
	switch r := r.(type) {
	case *BasicRepr:
		return r.align
	case *TupleRepr:
		return r.align
	case *UnionRepr:
		return r.align
	case *YesRepr:
		return alignOf(r.Elem)
	case *SingleRepr:
		return 1
	default:
		return pointerAlign
	}
}

//-----------------------------------------------------------------------------
// Atomic descriptors
//-----------------------------------------------------------------------------

// BasicRepr describes a kind that carries no metadata beyond its tag.
type BasicRepr struct {
	tag   Tag
	size  uintptr
	align uintptr
}

func (r *BasicRepr) Tag() Tag { return r.tag }
func (r *BasicRepr) Size() uintptr { return r.size }
func (r *BasicRepr) String() string { return showRepr(r) }

//-----------------------------------------------------------------------------
// Compound descriptors
//-----------------------------------------------------------------------------

// ListRepr describes a persistent list of Elem values.
type ListRepr struct {
	Elem Repr
}

func (r *ListRepr) Tag() Tag { return TagList }
func (r *ListRepr) Size() uintptr { return unsafe.Sizeof(list.List{}) }
func (r *ListRepr) String() string { return showRepr(r) }

// Field is one entry of a tuple schema.
type Field struct {
	Name   string
	Repr   Repr
	Offset uintptr
}

// TupleRepr describes a fixed-arity record.
type TupleRepr struct {
	Name   string
	Fields []Field
	size   uintptr
	align  uintptr
}

func (r *TupleRepr) Tag() Tag { return TagTuple }
func (r *TupleRepr) Size() uintptr { return r.size }
func (r *TupleRepr) String() string { return showRepr(r) }

// NumFields reports the arity of the tuple.
func (r *TupleRepr) NumFields() int { return len(r.Fields) }

// UnionRepr describes a tagged union over Alts. Offset is the position of the
// payload after the alternative index.
type UnionRepr struct {
	Alts   []Repr
	Offset uintptr
	size   uintptr
	align  uintptr
}

func (r *UnionRepr) Tag() Tag { return TagUnion }
func (r *UnionRepr) Size() uintptr { return r.size }
func (r *UnionRepr) String() string { return showRepr(r) }

// MaybeRepr describes an optional Value.
type MaybeRepr struct {
	Value Repr
}

func (r *MaybeRepr) Tag() Tag { return TagMaybe }
func (r *MaybeRepr) Size() uintptr { return unsafe.Sizeof(Maybe{}) }
func (r *MaybeRepr) String() string { return showRepr(r) }

// YesRepr describes a value that is statically known to be present.
type YesRepr struct {
	Elem Repr
}

func (r *YesRepr) Tag() Tag { return TagYes }
func (r *YesRepr) Size() uintptr { return r.Elem.Size() }
func (r *YesRepr) String() string { return showRepr(r) }

// PtrRepr describes an indirection to a heap cell holding a Value.
type PtrRepr struct {
	Value Repr
}

func (r *PtrRepr) Tag() Tag { return TagPtr }
func (r *PtrRepr) Size() uintptr { return pointerSize }
func (r *PtrRepr) String() string { return showRepr(r) }

// SingleRepr describes a singleton string type. The value lives in the
// descriptor; the payload is empty.
type SingleRepr struct {
	Value string
}

func (r *SingleRepr) Tag() Tag { return TagSingle }
func (r *SingleRepr) Size() uintptr { return 0 }
func (r *SingleRepr) String() string { return showRepr(r) }

// FuncRepr describes plain functions (TagFunc, TagFuncNull) and closures
// (TagClos). ApplySD adapts a dynamic call to the native function; ApplyDS is
// the native function that wraps a dynamic function value so it can be called
// with the static convention.
type FuncRepr struct {
	tag     Tag
	Params  []Repr
	Result  Repr
	ApplySD ApplySD
	ApplyDS any
}

func (r *FuncRepr) Tag() Tag { return r.tag }

func (r *FuncRepr) Size() uintptr {
	if r.tag == TagClos {
		return unsafe.Sizeof(Closure{})
	}
	return pointerSize
}

func (r *FuncRepr) String() string { return showRepr(r) }

// NumParams reports the arity of the function.
func (r *FuncRepr) NumParams() int { return len(r.Params) }

//-----------------------------------------------------------------------------
// Construction
//-----------------------------------------------------------------------------

// NewList returns a list descriptor.
func NewList(elem Repr) *ListRepr {
	return &ListRepr{Elem: elem}
}

// NewTuple lays out fields in order, computing offsets and the total size.
// Offsets supplied by the caller are ignored.
func NewTuple(name string, fields ...Field) *TupleRepr {
	r := &TupleRepr{Name: name, Fields: make([]Field, len(fields)), align: 1}
	var offset uintptr
	for i, f := range fields {
		if f.Repr == nil {
			panic(fatal.Newf("tuple %s: field %d has no repr", name, i))
		}
		a := alignOf(f.Repr)
		offset = alignUp(offset, a)
		r.Fields[i] = Field{Name: f.Name, Repr: f.Repr, Offset: offset}
		offset += f.Repr.Size()
		r.align = max(r.align, a)
	}
	r.size = alignUp(offset, r.align)
	return r
}

// NewTupleOf builds a tuple descriptor with positional field names.
func NewTupleOf(reprs ...Repr) *TupleRepr {
	fields := make([]Field, len(reprs))
	for i, r := range reprs {
		fields[i] = Field{Name: fmt.Sprintf("_%d", i), Repr: r}
	}
	return NewTuple("", fields...)
}

// NewUnion returns a union descriptor over alts, tried in order.
func NewUnion(alts ...Repr) *UnionRepr {
	if len(alts) == 0 {
		panic(fatal.Newf("union: no alternatives"))
	}
	tagSize := unsafe.Sizeof(int(0))
	align := unsafe.Alignof(int(0))
	var size uintptr
	for _, a := range alts {
		align = max(align, alignOf(a))
		size = max(size, a.Size())
	}
	offset := alignUp(tagSize, align)
	return &UnionRepr{
		Alts:   append([]Repr(nil), alts...),
		Offset: offset,
		size:   alignUp(offset+size, align),
		align:  align,
	}
}

// NewMaybe returns an optional descriptor.
func NewMaybe(value Repr) *MaybeRepr { return &MaybeRepr{Value: value} }

// NewYes returns a descriptor for a value known to be present.
func NewYes(elem Repr) *YesRepr { return &YesRepr{Elem: elem} }

// NewPtr returns an indirection descriptor.
func NewPtr(value Repr) *PtrRepr { return &PtrRepr{Value: value} }

// NewSingle returns a singleton string descriptor.
func NewSingle(value string) *SingleRepr { return &SingleRepr{Value: value} }

// NewFunc describes a plain native function.
func NewFunc(params []Repr, result Repr, applySD ApplySD) *FuncRepr {
	return newFuncRepr(TagFunc, params, result, applySD, nil)
}

// NewClos describes a native closure. applyDS is the native function used
// when a dynamic function value has to be presented as this closure type.
func NewClos(params []Repr, result Repr, applySD ApplySD, applyDS any) *FuncRepr {
	return newFuncRepr(TagClos, params, result, applySD, applyDS)
}

// NewFuncNull describes a native function called with the unit value.
func NewFuncNull(result Repr, applySD ApplySD) *FuncRepr {
	return newFuncRepr(TagFuncNull, []Repr{registry.No}, result, applySD, nil)
}

func newFuncRepr(tag Tag, params []Repr, result Repr, applySD ApplySD, applyDS any) *FuncRepr {
	if len(params) == 0 {
		panic(fatal.Newf("%s: functions take at least one parameter", tag))
	}
	if applySD == nil {
		panic(fatal.Newf("%s: missing dynamic call adapter", tag))
	}
	return &FuncRepr{
		tag:     tag,
		Params:  append([]Repr(nil), params...),
		Result:  result,
		ApplySD: applySD,
		ApplyDS: applyDS,
	}
}

//-----------------------------------------------------------------------------
// Registry
//-----------------------------------------------------------------------------

// Registry holds the primitive descriptors shared by the whole process.
type Registry struct {
	Bool         *BasicRepr
	Int          *BasicRepr
	Str          *BasicRepr
	Char         *BasicRepr
	No           *BasicRepr
	Any          *BasicRepr
	Type         *BasicRepr
	Pair         *BasicRepr
	TupleTail    *BasicRepr
	PartialApply *BasicRepr
	Object       *BasicRepr

	// ListAny describes lists of tagged values, the element type used by
	// request lists and collection payloads.
	ListAny *ListRepr
}

var registry = newRegistry()

// Primitives returns the read-only registry of primitive descriptors.
func Primitives() *Registry { return registry }

func basic(tag Tag, size, align uintptr) *BasicRepr {
	return &BasicRepr{tag: tag, size: size, align: align}
}

func newRegistry() *Registry {
	r := &Registry{
		Bool:         basic(TagBool, unsafe.Sizeof(false), 1),
		Int:          basic(TagInt, unsafe.Sizeof(int(0)), unsafe.Alignof(int(0))),
		Str:          basic(TagStr, unsafe.Sizeof(Str{}), pointerAlign),
		Char:         basic(TagChar, unsafe.Sizeof(Char(0)), 1),
		No:           basic(TagNo, 0, 1),
		Any:          basic(TagAny, unsafe.Sizeof(Any{}), pointerAlign),
		Type:         basic(TagType, 0, 1),
		Pair:         basic(TagPair, unsafe.Sizeof(Pair{}), pointerAlign),
		TupleTail:    basic(TagTupleTail, unsafe.Sizeof(TupleTail{}), pointerAlign),
		PartialApply: basic(TagPartialApply, pointerSize, pointerAlign),
		Object:       basic(TagObject, unsafe.Sizeof(Object{}), pointerAlign),
	}
	r.ListAny = NewList(r.Any)
	return r
}

//-----------------------------------------------------------------------------
// Descriptor printing
//-----------------------------------------------------------------------------

func showRepr(r Repr) string {
	var sb strings.Builder
	writeRepr(&sb, r)
	return sb.String()
}

func writeRepr(sb *strings.Builder, r Repr) {
	if r == nil {
		sb.WriteString("<absent>")
		return
	}
	switch r := r.(type) {
	case *BasicRepr:
		sb.WriteString(r.tag.String())
	case *ListRepr:
		sb.WriteString("List ")
		writeRepr(sb, r.Elem)
	case *TupleRepr:
		fmt.Fprintf(sb, "Tuple %d", len(r.Fields))
		for _, f := range r.Fields {
			sb.WriteByte(' ')
			writeRepr(sb, f.Repr)
		}
	case *UnionRepr:
		fmt.Fprintf(sb, "Union %d", len(r.Alts))
		for _, a := range r.Alts {
			sb.WriteByte(' ')
			writeRepr(sb, a)
		}
	case *MaybeRepr:
		sb.WriteString("Maybe ")
		writeRepr(sb, r.Value)
	case *YesRepr:
		sb.WriteString("Yes ")
		writeRepr(sb, r.Elem)
	case *PtrRepr:
		sb.WriteString("Ptr ")
		writeRepr(sb, r.Value)
	case *SingleRepr:
		sb.WriteString("Single ")
		writeStr(sb, r.Value)
	case *FuncRepr:
		fmt.Fprintf(sb, "(%s ", r.tag)
		for _, p := range r.Params {
			writeRepr(sb, p)
			sb.WriteString(" -> ")
		}
		writeRepr(sb, r.Result)
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "(unhandled repr %T)", r)
	}
}
