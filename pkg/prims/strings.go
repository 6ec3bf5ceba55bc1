package prims

import (
	"strings"

	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/runtime"
)

func str(a runtime.Any) string { return runtime.ToStr(a).Data }

// StrAdd concatenates two strings.
func StrAdd(a, b runtime.Any) runtime.Any { return runtime.FromStr(str(a) + str(b)) }

// StrLen returns the length in bytes.
func StrLen(a runtime.Any) runtime.Any { return runtime.FromInt(len(str(a))) }

// StrEq compares two strings by content.
func StrEq(a, b runtime.Any) runtime.Any { return runtime.FromBool(str(a) == str(b)) }

// StrCat concatenates a list of strings.
func StrCat(l runtime.Any) runtime.Any {
	var sb strings.Builder
	for s := range runtime.Elems(l) {
		sb.WriteString(str(s))
	}
	return runtime.FromStr(sb.String())
}

// StrJoin concatenates a list of strings with delim between elements.
func StrJoin(delim, l runtime.Any) runtime.Any {
	sep := str(delim)
	var sb strings.Builder
	first := true
	for s := range runtime.Elems(l) {
		if !first {
			sb.WriteString(sep)
		}
		sb.WriteString(str(s))
		first = false
	}
	return runtime.FromStr(sb.String())
}

// StrOrd returns the code of the first byte, or -1 for the empty string.
func StrOrd(a runtime.Any) runtime.Any {
	s := str(a)
	if s == "" {
		return runtime.FromInt(-1)
	}
	return runtime.FromInt(int(s[0]))
}

// StrChr builds a one byte string. Only 7-bit codes are accepted.
func StrChr(a runtime.Any) runtime.Any {
	i := runtime.ToInt(a)
	if i < 0 || i > 127 {
		panic(fatal.Newf("strChr: expected a 7-bit char (%d)", i))
	}
	return runtime.FromStr(string([]byte{byte(i)}))
}

// StrCharAt returns the byte at pos as a string, or "" when pos is out of
// range. Callers rely on the empty result to detect the end of a string.
func StrCharAt(a, pos runtime.Any) runtime.Any {
	s, i := str(a), runtime.ToInt(pos)
	if i < 0 || i >= len(s) {
		return runtime.FromStr("")
	}
	return runtime.FromStr(s[i : i+1])
}

// StrCharAtMb returns [c] for the byte at pos, or [] when out of range.
func StrCharAtMb(a, pos runtime.Any) runtime.Any {
	s, i := str(a), runtime.ToInt(pos)
	if i < 0 || i >= len(s) {
		return runtime.Nil()
	}
	return runtime.MkList(runtime.FromChar(s[i]))
}

// CharConcat builds a string from a list of chars.
func CharConcat(l runtime.Any) runtime.Any {
	var buf []byte
	for c := range runtime.Elems(l) {
		b, err := bridge.AsChar(c)
		if err != nil {
			panic(fatal.Newf("charConcat: %v", err))
		}
		buf = append(buf, b)
	}
	return runtime.FromStr(string(buf))
}
