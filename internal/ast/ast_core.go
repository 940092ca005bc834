package ast

import (
	"github.com/funvibe/beacontau/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Visitor walks expression trees. Printers and the evaluator's static
// checks implement it.
type Visitor interface {
	VisitIdentifier(node *Identifier)
	VisitPlaceholder(node *Placeholder)
	VisitIntegerLiteral(node *IntegerLiteral)
	VisitFloatLiteral(node *FloatLiteral)
	VisitStringLiteral(node *StringLiteral)
	VisitBooleanLiteral(node *BooleanLiteral)
	VisitNilLiteral(node *NilLiteral)
	VisitListLiteral(node *ListLiteral)
	VisitPrefixExpression(node *PrefixExpression)
	VisitInfixExpression(node *InfixExpression)
	VisitComparisonExpression(node *ComparisonExpression)
	VisitIndexExpression(node *IndexExpression)
	VisitCallExpression(node *CallExpression)
}

// Walk visits node and all of its children depth-first, calling fn before
// descending. Returning false from fn skips the children of that node.
func Walk(node Expression, fn func(Expression) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *ListLiteral:
		for _, el := range n.Elements {
			Walk(el, fn)
		}
	case *PrefixExpression:
		Walk(n.Right, fn)
	case *InfixExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *ComparisonExpression:
		for _, op := range n.Operands {
			Walk(op, fn)
		}
	case *IndexExpression:
		Walk(n.Left, fn)
		Walk(n.Index, fn)
	case *CallExpression:
		Walk(n.Function, fn)
		for _, arg := range n.Arguments {
			Walk(arg, fn)
		}
	}
}
