package evaluator

import (
	"fmt"

	"github.com/funvibe/beacontau/internal/ast"
)

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

// withLocation stamps the position of node on an error that has none.
func withLocation(obj Object, node ast.TokenProvider) Object {
	if errObj, ok := obj.(*Error); ok && errObj.Line == 0 {
		tok := node.GetToken()
		errObj.Line = tok.Line
		errObj.Column = tok.Column
	}
	return obj
}
