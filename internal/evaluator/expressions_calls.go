package evaluator

import (
	"github.com/funvibe/beacontau/internal/ast"
)

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	function := e.Eval(node.Function, env)
	if isError(function) {
		return function
	}
	builtin, ok := function.(*Builtin)
	if !ok {
		return withLocation(newError("not a function: %s", function.Type()), node)
	}

	args := e.evalExpressions(node.Arguments, env)
	if len(args) == 1 && isError(args[0]) {
		return args[0]
	}
	return withLocation(builtin.Fn(args...), node)
}
