package runtime

func applyIntInt(fn, env any, partial []Any, last Any) Any {
	f := fn.(func(int, int) int)
	return FromInt(f(ToInt(partial[0]), ToInt(last)))
}

func add2Repr() *FuncRepr {
	return NewFunc([]Repr{reg.Int, reg.Int}, reg.Int, applyIntInt)
}

func addFunc() Any {
	return FromFunc(add2Repr(), func(a, b int) int { return a + b })
}

func ints(vals ...int) Any {
	elems := make([]Any, len(vals))
	for i, v := range vals {
		elems[i] = FromInt(v)
	}
	return MkList(elems...)
}
