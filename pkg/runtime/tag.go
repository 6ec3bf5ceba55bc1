package runtime

import "fmt"

// Tag identifies the kind of a representation descriptor.
type Tag int

const (
	TagBool Tag = iota
	TagInt
	TagStr
	TagChar
	TagFunc
	TagClos
	TagFuncNull
	TagPair
	TagList
	TagTuple
	TagTupleTail
	TagNo
	TagYes
	TagMaybe
	TagAny
	TagType
	TagUnion
	TagPtr
	TagSingle
	TagPartialApply
	TagObject
)

func (t Tag) String() string {
	switch t {
	case TagBool:
		return "Bool"
	case TagInt:
		return "Int"
	case TagStr:
		return "Str"
	case TagChar:
		return "Char"
	case TagFunc:
		return "Func"
	case TagClos:
		return "Clos"
	case TagFuncNull:
		return "FuncNull"
	case TagPair:
		return "Pair"
	case TagList:
		return "List"
	case TagTuple:
		return "Tuple"
	case TagTupleTail:
		return "TupleTail"
	case TagNo:
		return "No"
	case TagYes:
		return "Yes"
	case TagMaybe:
		return "Maybe"
	case TagAny:
		return "Any"
	case TagType:
		return "Type"
	case TagUnion:
		return "Union"
	case TagPtr:
		return "Ptr"
	case TagSingle:
		return "Single"
	case TagPartialApply:
		return "PartialApply"
	case TagObject:
		return "Object"
	default:
		return fmt.Sprintf("unknown_tag_%d", int(t))
	}
}
