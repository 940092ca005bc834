package evaluator

import (
	"math"
	"strings"
)

func (e *Evaluator) evalPrefixExpression(operator string, right Object) Object {
	switch operator {
	case "-":
		switch r := right.(type) {
		case *Integer:
			if r.Value == math.MinInt64 {
				return &Float{Value: -float64(r.Value)}
			}
			return &Integer{Value: -r.Value}
		case *Float:
			return &Float{Value: -r.Value}
		case *Boolean:
			return &Integer{Value: -boolToInt(r.Value)}
		}
	case "+":
		switch r := right.(type) {
		case *Integer, *Float:
			return r
		case *Boolean:
			return &Integer{Value: boolToInt(r.Value)}
		}
	}
	return newError("unknown operator: %s%s", operator, right.Type())
}

// EvalInfixExpression evaluates a binary, non short-circuit operator.
func (e *Evaluator) EvalInfixExpression(operator string, left, right Object) Object {
	left, right = promoteBooleans(operator, left, right)

	if left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ {
		return e.evalIntegerInfixExpression(operator, left.(*Integer).Value, right.(*Integer).Value)
	}

	// Implicit Int -> Float conversion
	if lf, ok := numeric(left); ok {
		if rf, ok := numeric(right); ok {
			return e.evalFloatInfixExpression(operator, lf, rf)
		}
	}

	if left.Type() == STRING_OBJ && right.Type() == STRING_OBJ {
		return e.evalStringInfixExpression(operator, left.(*String).Value, right.(*String).Value)
	}

	if left.Type() == LIST_OBJ && right.Type() == LIST_OBJ {
		return e.evalListInfixExpression(operator, left.(*List), right.(*List))
	}

	if operator == "*" {
		if s, ok := left.(*String); ok {
			if n, ok := right.(*Integer); ok {
				return repeatString(s.Value, n.Value)
			}
		}
	}

	switch operator {
	case "==":
		return nativeBoolToBooleanObject(ObjectsEqual(left, right))
	case "!=":
		return nativeBoolToBooleanObject(!ObjectsEqual(left, right))
	}

	return newError("type mismatch: %s %s %s", left.Type(), operator, right.Type())
}

// promoteBooleans lets booleans take part in arithmetic and ordering as 0/1.
// Equality between two booleans stays boolean.
func promoteBooleans(operator string, left, right Object) (Object, Object) {
	lb, lok := left.(*Boolean)
	rb, rok := right.(*Boolean)
	if lok && rok && (operator == "==" || operator == "!=") {
		return left, right
	}
	if lok {
		if _, ok := numeric(right); ok || rok {
			left = &Integer{Value: boolToInt(lb.Value)}
		}
	}
	if rok {
		if _, ok := numeric(left); ok {
			right = &Integer{Value: boolToInt(rb.Value)}
		}
	}
	return left, right
}

func (e *Evaluator) evalIntegerInfixExpression(operator string, l, r int64) Object {
	switch operator {
	case "+":
		if v, ok := addInt(l, r); ok {
			return &Integer{Value: v}
		}
		return &Float{Value: float64(l) + float64(r)}
	case "-":
		if v, ok := subInt(l, r); ok {
			return &Integer{Value: v}
		}
		return &Float{Value: float64(l) - float64(r)}
	case "*":
		if v, ok := mulInt(l, r); ok {
			return &Integer{Value: v}
		}
		return &Float{Value: float64(l) * float64(r)}
	case "/":
		if r == 0 {
			return newError("division by zero")
		}
		return &Float{Value: float64(l) / float64(r)}
	case "//":
		if r == 0 {
			return newError("integer division by zero")
		}
		if l == math.MinInt64 && r == -1 {
			return &Float{Value: -float64(l)}
		}
		return &Integer{Value: floorDiv(l, r)}
	case "%":
		if r == 0 {
			return newError("integer modulo by zero")
		}
		return &Integer{Value: l - r*floorDiv(l, r)}
	case "**":
		if r < 0 {
			return &Float{Value: math.Pow(float64(l), float64(r))}
		}
		if v, ok := intPow(l, r); ok {
			return &Integer{Value: v}
		}
		return &Float{Value: math.Pow(float64(l), float64(r))}
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	case "==":
		return nativeBoolToBooleanObject(l == r)
	case "!=":
		return nativeBoolToBooleanObject(l != r)
	}
	return newError("unknown operator: INTEGER %s INTEGER", operator)
}

func (e *Evaluator) evalFloatInfixExpression(operator string, l, r float64) Object {
	switch operator {
	case "+":
		return &Float{Value: l + r}
	case "-":
		return &Float{Value: l - r}
	case "*":
		return &Float{Value: l * r}
	case "/":
		if r == 0 {
			return newError("float division by zero")
		}
		return &Float{Value: l / r}
	case "//":
		if r == 0 {
			return newError("float floor division by zero")
		}
		return &Float{Value: math.Floor(l / r)}
	case "%":
		if r == 0 {
			return newError("float modulo by zero")
		}
		return &Float{Value: l - r*math.Floor(l/r)}
	case "**":
		return &Float{Value: math.Pow(l, r)}
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	case "==":
		return nativeBoolToBooleanObject(l == r)
	case "!=":
		return nativeBoolToBooleanObject(l != r)
	}
	return newError("unknown operator: FLOAT %s FLOAT", operator)
}

func (e *Evaluator) evalStringInfixExpression(operator string, l, r string) Object {
	switch operator {
	case "+":
		return &String{Value: l + r}
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	case "==":
		return nativeBoolToBooleanObject(l == r)
	case "!=":
		return nativeBoolToBooleanObject(l != r)
	}
	return newError("unknown operator: STRING %s STRING", operator)
}

func (e *Evaluator) evalListInfixExpression(operator string, l, r *List) Object {
	switch operator {
	case "+":
		return l.concat(r)
	case "==":
		return nativeBoolToBooleanObject(ObjectsEqual(l, r))
	case "!=":
		return nativeBoolToBooleanObject(!ObjectsEqual(l, r))
	}
	return newError("unknown operator: LIST %s LIST", operator)
}

func numeric(obj Object) (float64, bool) {
	switch o := obj.(type) {
	case *Integer:
		return float64(o.Value), true
	case *Float:
		return o.Value, true
	}
	return 0, false
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// floorDiv rounds toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// intPow reports false when the result does not fit in an int64.
func intPow(base, exp int64) (int64, bool) {
	result := int64(1)
	var ok bool
	for exp > 0 {
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func addInt(a, b int64) (int64, bool) {
	c := a + b
	return c, (b >= 0) == (c >= a)
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	return c, (b >= 0) == (c <= a)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	return c, c/b == a
}

// maxRepeatLen caps the length of a string built with *.
const maxRepeatLen = 1 << 24

func repeatString(s string, n int64) Object {
	if n <= 0 || s == "" {
		return &String{Value: ""}
	}
	if n > int64(maxRepeatLen/len(s)) {
		return newError("string repeat count too large")
	}
	return &String{Value: strings.Repeat(s, int(n))}
}
