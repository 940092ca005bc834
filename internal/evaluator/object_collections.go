package evaluator

import (
	"strings"
)

// List is an ordered sequence, used for array-valued fields such as
// trigger thresholds and waveforms.
type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }

func (l *List) Inspect() string {
	var out strings.Builder
	out.WriteString("[")
	for i, el := range l.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		if s, ok := el.(*String); ok {
			out.WriteString("\"" + s.Value + "\"")
			continue
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString("]")
	return out.String()
}

func (l *List) Len() int { return len(l.Elements) }

// Get supports negative indices counted from the end.
func (l *List) Get(idx int64) (Object, bool) {
	n := int64(len(l.Elements))
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return nil, false
	}
	return l.Elements[idx], true
}

func (l *List) concat(other *List) *List {
	elements := make([]Object, 0, len(l.Elements)+len(other.Elements))
	elements = append(elements, l.Elements...)
	elements = append(elements, other.Elements...)
	return &List{Elements: elements}
}
