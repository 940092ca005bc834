package evaluator

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

type ObjectType string

const (
	INTEGER_OBJ = "INTEGER"
	FLOAT_OBJ   = "FLOAT"
	BOOLEAN_OBJ = "BOOLEAN"
	STRING_OBJ  = "STRING"
	LIST_OBJ    = "LIST"
	NIL_OBJ     = "NIL"
	ERROR_OBJ   = "ERROR"
	BUILTIN_OBJ = "BUILTIN"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NIL   = &Nil{}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// FromGo converts a record field value into an Object. Integer kinds become
// Integer, floats become Float, and any slice or array becomes a List.
func FromGo(v interface{}) (Object, error) {
	switch x := v.(type) {
	case nil:
		return NIL, nil
	case Object:
		return x, nil
	case bool:
		return nativeBoolToBooleanObject(x), nil
	case int:
		return &Integer{Value: int64(x)}, nil
	case int64:
		return &Integer{Value: x}, nil
	case uint32:
		return &Integer{Value: int64(x)}, nil
	case float64:
		return &Float{Value: x}, nil
	case string:
		return &String{Value: x}, nil
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (Object, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return nativeBoolToBooleanObject(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Integer{Value: rv.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return &Float{Value: float64(u)}, nil
		}
		return &Integer{Value: int64(u)}, nil
	case reflect.Float32, reflect.Float64:
		return &Float{Value: rv.Float()}, nil
	case reflect.String:
		return &String{Value: rv.String()}, nil
	case reflect.Slice, reflect.Array:
		elements := make([]Object, rv.Len())
		for i := range elements {
			el, err := fromReflect(rv.Index(i))
			if err != nil {
				return nil, err
			}
			elements[i] = el
		}
		return &List{Elements: elements}, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return NIL, nil
		}
		return fromReflect(rv.Elem())
	}
	return nil, errors.Newf("unsupported field value type %s", rv.Type())
}

// ToFloat64 returns the numeric value of a scalar object. Booleans count as
// 0 and 1.
func ToFloat64(obj Object) (float64, bool) {
	switch o := obj.(type) {
	case *Integer:
		return float64(o.Value), true
	case *Float:
		return o.Value, true
	case *Boolean:
		if o.Value {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// IsTruthy follows the usual scripting rules: nil, false, zero, and empty
// strings and lists are false.
func IsTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *Boolean:
		return o.Value
	case *Nil:
		return false
	case *Integer:
		return o.Value != 0
	case *Float:
		return o.Value != 0
	case *String:
		return o.Value != ""
	case *List:
		return len(o.Elements) > 0
	}
	return true
}
