package runtime

import (
	"cmp"
	"strings"

	"ferrum/runtime-go/pkg/fatal"
)

func isAtomic(a Any) bool {
	return IsNil(a) || IsBool(a) || IsInt(a) || IsStr(a)
}

// Eq reports structural equality. Functions and types are not comparable.
func Eq(a, b Any) bool {
	a = canon("eq", a)
	b = canon("eq", b)
	switch {
	case IsNil(a) && IsNil(b):
		return true
	case IsBool(a) && IsBool(b):
		return a.Value.(bool) == b.Value.(bool)
	case IsInt(a) && IsInt(b):
		return a.Value.(int) == b.Value.(int)
	case IsStr(a) && IsStr(b):
		return strEq(ToStr(a), ToStr(b))
	case isAtomic(a) || isAtomic(b):
		return false
	case IsPair(a) && IsPair(b):
		return Eq(Head(a), Head(b)) && Eq(Tail(a), Tail(b))
	default:
		panic(fatal.Newf("eq: cannot compare %s with %s", a.Repr, b.Repr))
	}
}

// compareRank orders the comparable categories: nil < bool < int < string
// < pair. Incomparable values rank -1.
func compareRank(a Any) int {
	switch {
	case IsNil(a):
		return 0
	case IsBool(a):
		return 1
	case IsInt(a):
		return 2
	case IsStr(a):
		return 3
	case IsPair(a):
		return 4
	default:
		return -1
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Compare is the total structural order used by ordered maps. It returns
// -1, 0 or +1. Functions, types and objects are incomparable.
func Compare(a, b Any) int {
	a = canon("compare", a)
	b = canon("compare", b)
	ra, rb := compareRank(a), compareRank(b)
	if ra < 0 || rb < 0 {
		panic(fatal.Newf("compare: incomparable reprs a(%s) b(%s)", a.Repr, b.Repr))
	}
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		return 0
	case 1:
		return cmp.Compare(boolRank(a.Value.(bool)), boolRank(b.Value.(bool)))
	case 2:
		return cmp.Compare(a.Value.(int), b.Value.(int))
	case 3:
		return strings.Compare(ToStr(a).Data, ToStr(b).Data)
	default:
		if c := Compare(Head(a), Head(b)); c != 0 {
			return c
		}
		return Compare(Tail(a), Tail(b))
	}
}
