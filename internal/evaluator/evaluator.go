package evaluator

import (
	"github.com/funvibe/beacontau/internal/ast"
)

// maxEvalDepth bounds recursion; the parser already limits nesting so this
// only guards hand-built trees.
const maxEvalDepth = 1024

type Evaluator struct {
	// GlobalEnv holds the builtins. Per-entry environments chain to it.
	GlobalEnv *Environment

	evalDepth int
}

func New() *Evaluator {
	env := NewEnvironment()
	RegisterBuiltins(env)
	return &Evaluator{GlobalEnv: env}
}

// Run evaluates node with slots bound to its placeholders.
func (e *Evaluator) Run(node ast.Expression, slots []Object) (Object, error) {
	env := NewSlotEnvironment(e.GlobalEnv, slots)
	result := e.Eval(node, env)
	if errObj, ok := result.(*Error); ok {
		return nil, errObj
	}
	return result, nil
}

func (e *Evaluator) Eval(node ast.Expression, env *Environment) Object {
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.evalDepth > maxEvalDepth {
		return newError("expression too deeply nested")
	}

	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *ast.FloatLiteral:
		return &Float{Value: node.Value}
	case *ast.StringLiteral:
		return &String{Value: node.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)
	case *ast.NilLiteral:
		return NIL
	case *ast.Placeholder:
		return e.evalPlaceholder(node, env)
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.ListLiteral:
		elements := e.evalExpressions(node.Elements, env)
		if len(elements) == 1 && isError(elements[0]) {
			return elements[0]
		}
		return &List{Elements: elements}
	case *ast.PrefixExpression:
		if node.Operator == "not" {
			right := e.Eval(node.Right, env)
			if isError(right) {
				return right
			}
			return nativeBoolToBooleanObject(!IsTruthy(right))
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return withLocation(e.evalPrefixExpression(node.Operator, right), node)
	case *ast.InfixExpression:
		if node.Operator == "and" || node.Operator == "or" {
			return e.evalLogicalExpression(node, env)
		}
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return withLocation(e.EvalInfixExpression(node.Operator, left, right), node)
	case *ast.ComparisonExpression:
		return e.evalComparisonChain(node, env)
	case *ast.IndexExpression:
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		index := e.Eval(node.Index, env)
		if isError(index) {
			return index
		}
		return withLocation(e.evalIndexExpression(left, index), node)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case nil:
		return newError("nil expression")
	}
	return newError("unsupported expression %T", node)
}

func (e *Evaluator) evalPlaceholder(node *ast.Placeholder, env *Environment) Object {
	val, ok := env.Slot(node.Index)
	if !ok {
		return withLocation(newError("no value bound to %s", node.Token.Lexeme), node)
	}
	return val
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	return withLocation(newError("unknown identifier: %s", node.Value), node)
}

// evalExpressions evaluates exps in order. On failure it returns a
// single-element slice holding the error.
func (e *Evaluator) evalExpressions(exps []ast.Expression, env *Environment) []Object {
	result := make([]Object, 0, len(exps))
	for _, exp := range exps {
		evaluated := e.Eval(exp, env)
		if isError(evaluated) {
			return []Object{evaluated}
		}
		result = append(result, evaluated)
	}
	return result
}

// evalLogicalExpression short-circuits and returns the deciding operand.
func (e *Evaluator) evalLogicalExpression(node *ast.InfixExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	truthy := IsTruthy(left)
	if (node.Operator == "and" && !truthy) || (node.Operator == "or" && truthy) {
		return left
	}
	return e.Eval(node.Right, env)
}

func (e *Evaluator) evalComparisonChain(node *ast.ComparisonExpression, env *Environment) Object {
	left := e.Eval(node.Operands[0], env)
	if isError(left) {
		return left
	}
	for i, op := range node.Operators {
		right := e.Eval(node.Operands[i+1], env)
		if isError(right) {
			return right
		}
		res := e.EvalInfixExpression(op, left, right)
		if isError(res) {
			return withLocation(res, node)
		}
		if !IsTruthy(res) {
			return FALSE
		}
		left = right
	}
	return TRUE
}
