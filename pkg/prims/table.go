package prims

import (
	"io"
	"os"
	"sort"

	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/collections"
	"ferrum/runtime-go/pkg/driver"
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/runtime"
)

// Table maps primitive names to tagged function values.
type Table map[string]runtime.Any

var defaultTable Table

func init() {
	fixCurried = bridge.Function2(Fix)
	defaultTable = NewTable(os.Stderr, collections.NewFactory(true))
	defaultTable.BindIO(driver.New(nil, os.Stdout, nil).Primitive(os.Args[1:]))
}

// NewTable builds the primitive table. Trace output goes to traceOut and the
// collection constructors build their objects through factory. The ioDo
// entry is bound separately with BindIO.
func NewTable(traceOut io.Writer, factory *collections.Factory) Table {
	tr := Tracer{W: traceOut}
	f1, f2 := bridge.Function1, bridge.Function2
	// array constructors take the element repr first; elements are boxed
	withRepr := func(mk func(runtime.Any) runtime.Any) runtime.Any {
		return f2(func(_, elems runtime.Any) runtime.Any { return mk(elems) })
	}
	return Table{
		"mkArrayFastAccessNoCopy":   withRepr(factory.ArrayFastAccess),
		"mkArrayFastAccessSlowCopy": withRepr(factory.ArraySlowCopy),
		"assoc1MkPersistent":        f1(factory.AssocPersistent),
		"assoc1MkEphemeral":         f1(factory.AssocEphemeral),

		"+":               f2(Add),
		"-":               f2(Sub),
		"*":               f2(Mul),
		">":               f2(Gt),
		"<":               f2(Lt),
		">=":              f2(Gte),
		"<=":              f2(Lte),
		"&&":              f2(BoolAnd),
		"||":              f2(BoolOr),
		"not":             f1(Not),
		"==":              f2(Eq),
		"compare":         f2(Compare),
		"strAdd":          f2(StrAdd),
		"strLen":          f1(StrLen),
		"strEq":           f2(StrEq),
		"strCat":          f1(StrCat),
		"strJoin":         f2(StrJoin),
		"strOrd":          f1(StrOrd),
		"strChr":          f1(StrChr),
		"strCharAt":       f2(StrCharAt),
		"strCharAtMb":     f2(StrCharAtMb),
		"charConcat":      f1(CharConcat),
		"if":              f2(If),
		"ifNil":           f2(IfNil),
		"ifPair":          f2(IfPair),
		"ifBool":          f2(IfBool),
		"ifInt":           f2(IfInt),
		"ifStr":           f2(IfStr),
		"ifType":          f2(IfType),
		"loop1":           f2(LoopOne),
		"loop2":           f2(LoopTwo),
		"break":           f1(Break),
		"continue":        f1(Continue),
		"fix":             fixCurried,
		"id":              f1(Identity),
		"noOrA":           f2(NoOrA),
		"noOrYesA":        f2(NoOrYesA),
		"show":            f1(Show),
		"error":           f1(Error),
		"trace":           f2(tr.Trace),
		"trace2":          f2(tr.TraceTwo),
		"hpsCall":         f2(HpsCall),
		"hpsDo":           f2(HpsDo),
		"hpsHandlerMk":    f2(HpsHandlerMk),
		"unknownVariable": f1(UnknownVariable),
		"isNil":           f1(func(a runtime.Any) runtime.Any { return runtime.FromBool(runtime.IsNil(a)) }),
		"isPair":          f1(func(a runtime.Any) runtime.Any { return runtime.FromBool(runtime.IsPair(a)) }),
		"head":            f1(runtime.Head),
		"tail":            f1(runtime.Tail),
	}
}

// BindIO installs the I/O loop, a function of the program pair, as ioDo.
func (t Table) BindIO(ioDo runtime.Any) {
	t["ioDo"] = ioDo
}

// Lookup returns the named primitive. Unknown names are fatal.
func (t Table) Lookup(name string) runtime.Any {
	fn, ok := t[name]
	if !ok {
		panic(fatal.Newf("unknown primitive: %s", name))
	}
	return fn
}

// Names lists the table's primitives in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a primitive in the default table, which traces to stderr.
func Lookup(name string) runtime.Any { return defaultTable.Lookup(name) }
