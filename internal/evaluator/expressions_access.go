package evaluator

func (e *Evaluator) evalIndexExpression(left, index Object) Object {
	idx, ok := index.(*Integer)
	if !ok {
		if b, isBool := index.(*Boolean); isBool {
			idx = &Integer{Value: boolToInt(b.Value)}
		} else {
			return newError("index must be INTEGER, got %s", index.Type())
		}
	}

	switch l := left.(type) {
	case *List:
		el, ok := l.Get(idx.Value)
		if !ok {
			return newError("index %d out of range for list of length %d", idx.Value, len(l.Elements))
		}
		return el
	case *String:
		runes := []rune(l.Value)
		i := idx.Value
		if i < 0 {
			i += int64(len(runes))
		}
		if i < 0 || i >= int64(len(runes)) {
			return newError("index %d out of range for string of length %d", idx.Value, len(runes))
		}
		return &String{Value: string(runes[i])}
	}
	return newError("index operator not supported: %s", left.Type())
}
