package evaluator

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Builtins available to every expression.
var Builtins = map[string]*Builtin{
	"abs":    {Name: "abs", Fn: builtinAbs},
	"len":    {Name: "len", Fn: builtinLen},
	"min":    {Name: "min", Fn: builtinExtreme("min", -1)},
	"max":    {Name: "max", Fn: builtinExtreme("max", 1)},
	"sum":    {Name: "sum", Fn: builtinSum},
	"mean":   {Name: "mean", Fn: builtinStat("mean", stats.Mean)},
	"median": {Name: "median", Fn: builtinStat("median", stats.Median)},
	"stddev": {Name: "stddev", Fn: builtinStat("stddev", stats.StandardDeviation)},
	"sqrt":   {Name: "sqrt", Fn: builtinSqrt},
	"int":    {Name: "int", Fn: builtinInt},
	"float":  {Name: "float", Fn: builtinFloat},
}

func RegisterBuiltins(env *Environment) {
	for name, b := range Builtins {
		env.Set(name, b)
	}
}

func builtinAbs(args ...Object) Object {
	if len(args) != 1 {
		return newError("abs expects 1 argument, got %d", len(args))
	}
	switch a := args[0].(type) {
	case *Integer:
		if a.Value == math.MinInt64 {
			return &Float{Value: -float64(a.Value)}
		}
		if a.Value < 0 {
			return &Integer{Value: -a.Value}
		}
		return a
	case *Float:
		return &Float{Value: math.Abs(a.Value)}
	}
	return newError("abs: unsupported argument %s", args[0].Type())
}

func builtinLen(args ...Object) Object {
	if len(args) != 1 {
		return newError("len expects 1 argument, got %d", len(args))
	}
	switch a := args[0].(type) {
	case *List:
		return &Integer{Value: int64(len(a.Elements))}
	case *String:
		return &Integer{Value: int64(len([]rune(a.Value)))}
	}
	return newError("len: unsupported argument %s", args[0].Type())
}

func builtinSqrt(args ...Object) Object {
	if len(args) != 1 {
		return newError("sqrt expects 1 argument, got %d", len(args))
	}
	f, ok := numeric(args[0])
	if !ok {
		return newError("sqrt: unsupported argument %s", args[0].Type())
	}
	if f < 0 {
		return newError("sqrt: negative argument %g", f)
	}
	return &Float{Value: math.Sqrt(f)}
}

func builtinInt(args ...Object) Object {
	if len(args) != 1 {
		return newError("int expects 1 argument, got %d", len(args))
	}
	switch a := args[0].(type) {
	case *Integer:
		return a
	case *Float:
		if math.IsNaN(a.Value) || math.IsInf(a.Value, 0) {
			return newError("int: cannot convert %g", a.Value)
		}
		// float64(math.MaxInt64) rounds up to 2**63, which is out of range.
		if a.Value < math.MinInt64 || a.Value >= math.MaxInt64 {
			return newError("int: %g out of range", a.Value)
		}
		return &Integer{Value: int64(a.Value)}
	case *Boolean:
		return &Integer{Value: boolToInt(a.Value)}
	}
	return newError("int: unsupported argument %s", args[0].Type())
}

func builtinFloat(args ...Object) Object {
	if len(args) != 1 {
		return newError("float expects 1 argument, got %d", len(args))
	}
	if f, ok := ToFloat64(args[0]); ok {
		return &Float{Value: f}
	}
	return newError("float: unsupported argument %s", args[0].Type())
}

// sequenceArgs accepts either one list argument or several scalars.
func sequenceArgs(name string, args []Object) ([]Object, *Error) {
	if len(args) == 0 {
		return nil, newError("%s expects at least 1 argument", name)
	}
	if len(args) == 1 {
		list, ok := args[0].(*List)
		if !ok {
			return nil, newError("%s: expected LIST, got %s", name, args[0].Type())
		}
		if len(list.Elements) == 0 {
			return nil, newError("%s: empty list", name)
		}
		return list.Elements, nil
	}
	return args, nil
}

func floatData(name string, items []Object) (stats.Float64Data, *Error) {
	data := make(stats.Float64Data, len(items))
	for i, item := range items {
		f, ok := ToFloat64(item)
		if !ok {
			return nil, newError("%s: non-numeric element %s", name, item.Type())
		}
		data[i] = f
	}
	return data, nil
}

// builtinExtreme keeps the winning element as-is so integer inputs stay
// integers. sign is -1 for min and 1 for max.
func builtinExtreme(name string, sign float64) BuiltinFunction {
	return func(args ...Object) Object {
		items, err := sequenceArgs(name, args)
		if err != nil {
			return err
		}
		data, err := floatData(name, items)
		if err != nil {
			return err
		}
		best := 0
		for i := 1; i < len(data); i++ {
			if (data[i]-data[best])*sign > 0 {
				best = i
			}
		}
		return items[best]
	}
}

func builtinSum(args ...Object) Object {
	items, err := sequenceArgs("sum", args)
	if err != nil {
		return err
	}
	allInts := true
	var total int64
	for _, item := range items {
		i, ok := item.(*Integer)
		if !ok {
			allInts = false
			break
		}
		if total, ok = addInt(total, i.Value); !ok {
			allInts = false
			break
		}
	}
	if allInts {
		return &Integer{Value: total}
	}
	data, err := floatData("sum", items)
	if err != nil {
		return err
	}
	s, serr := stats.Sum(data)
	if serr != nil {
		return newError("sum: %s", serr)
	}
	return &Float{Value: s}
}

func builtinStat(name string, fn func(stats.Float64Data) (float64, error)) BuiltinFunction {
	return func(args ...Object) Object {
		items, err := sequenceArgs(name, args)
		if err != nil {
			return err
		}
		data, err := floatData(name, items)
		if err != nil {
			return err
		}
		v, serr := fn(data)
		if serr != nil {
			return newError("%s: %s", name, serr)
		}
		return &Float{Value: v}
	}
}
