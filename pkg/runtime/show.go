package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// Show renders a tagged value in the wire notation read back by the reader
// package.
func Show(a Any) string {
	var sb strings.Builder
	writeAny(&sb, a)
	return sb.String()
}

// AnyShow renders a as a tagged string.
func AnyShow(a Any) Any {
	return FromStr(Show(a))
}

// ShowStr quotes s using the wire escapes.
func ShowStr(s string) string {
	var sb strings.Builder
	writeStr(&sb, s)
	return sb.String()
}

func writeStr(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\\':
			sb.WriteString(`\\`)
		case c >= 32 && c <= 126:
			sb.WriteByte(c)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteString(`\x`)
			sb.WriteByte(hexDigits[c>>4])
			sb.WriteByte(hexDigits[c&0x0F])
		}
	}
	sb.WriteByte('"')
}

func writeAny(sb *strings.Builder, a Any) {
	if a = ToAny(a); a.Repr == nil {
		sb.WriteString("<absent>")
		return
	}
	switch a.Repr.Tag() {
	case TagBool:
		sb.WriteString(strconv.FormatBool(a.Value.(bool)))
	case TagInt:
		sb.WriteString(strconv.Itoa(a.Value.(int)))
	case TagStr:
		writeStr(sb, a.Value.(Str).Data)
	case TagChar:
		writeStr(sb, string([]byte{byte(a.Value.(Char))}))
	case TagSingle:
		writeStr(sb, a.Repr.(*SingleRepr).Value)
	case TagFunc, TagFuncNull:
		sb.WriteString("#Func")
	case TagClos:
		sb.WriteString("#Clos")
	case TagType:
		sb.WriteString("#Type")
	case TagObject:
		sb.WriteString("#Object")
	case TagPartialApply:
		pa := a.Value.(*PartialApply)
		fmt.Fprintf(sb, "#PartialApply{%s, numArgs=%d, args=[", pa.Repr, len(pa.Args))
		for i, arg := range pa.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeAny(sb, arg)
		}
		sb.WriteString("]}")
	default:
		writeSeq(sb, a)
	}
}

func writeSeq(sb *strings.Builder, a Any) {
	sb.WriteByte('[')
	it := a
	for first := true; IsPair(it); first = false {
		if !first {
			sb.WriteByte(',')
		}
		writeAny(sb, Head(it))
		it = Tail(it)
	}
	if !IsNil(it) {
		sb.WriteString(",,")
		writeAny(sb, it)
	}
	sb.WriteByte(']')
}
