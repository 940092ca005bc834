package evaluator

// ObjectsEqual performs a deep equality check. Integers and floats compare
// by numeric value.
func ObjectsEqual(a, b Object) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if af, ok := numeric(a); ok {
		if bf, ok := numeric(b); ok {
			return af == bf
		}
		return false
	}

	if a.Type() != b.Type() {
		return false
	}

	switch aVal := a.(type) {
	case *Boolean:
		return aVal.Value == b.(*Boolean).Value
	case *String:
		return aVal.Value == b.(*String).Value
	case *Nil:
		return true
	case *List:
		bVal := b.(*List)
		if len(aVal.Elements) != len(bVal.Elements) {
			return false
		}
		for i := range aVal.Elements {
			if !ObjectsEqual(aVal.Elements[i], bVal.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}
