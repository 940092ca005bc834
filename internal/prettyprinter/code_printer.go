package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/funvibe/beacontau/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"or":  1,
	"and": 2,
	"not": 3,
	"==":  4,
	"!=":  4,
	"<":   4,
	">":   4,
	"<=":  4,
	">=":  4,
	"+":   5,
	"-":   5,
	"*":   6,
	"/":   6,
	"//":  6,
	"%":   6,
	"**":  8, // Power (right-assoc)
}

const prefixPrecedence = 7

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"**": true,
}

type CodePrinter struct {
	buf bytes.Buffer
	// ShowFieldNames prints bound placeholders by field name instead of {k}.
	ShowFieldNames bool
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders expr with field names restored.
func Print(expr ast.Expression) string {
	p := &CodePrinter{ShowFieldNames: true}
	p.printExpr(expr, 0, false)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		needParens := prec < parentPrec
		// For same precedence, check associativity
		if prec == parentPrec {
			if prec == getPrecedence("==") {
				// a == b == c would reparse as a chain
				needParens = true
			} else if isRight && !rightAssoc[e.Operator] {
				needParens = true
			} else if !isRight && rightAssoc[e.Operator] {
				needParens = true
			}
		}
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
	case *ast.ComparisonExpression:
		prec := getPrecedence("==")
		needParens := prec <= parentPrec
		if needParens {
			p.write("(")
		}
		for i, operand := range e.Operands {
			if i > 0 {
				p.write(" " + e.Operators[i-1] + " ")
			}
			p.printExpr(operand, prec, true)
		}
		if needParens {
			p.write(")")
		}
	case *ast.PrefixExpression:
		if e.Operator == "not" {
			prec := getPrecedence("not")
			if prec < parentPrec {
				p.write("(")
			}
			p.write("not ")
			p.printExpr(e.Right, prec, false)
			if prec < parentPrec {
				p.write(")")
			}
			return
		}
		if prefixPrecedence < parentPrec {
			p.write("(")
		}
		p.write(e.Operator)
		p.printExpr(e.Right, prefixPrecedence, false)
		if prefixPrecedence < parentPrec {
			p.write(")")
		}
	default:
		// For non-operator expressions, just use visitor
		expr.Accept(p)
	}
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitPlaceholder(n *ast.Placeholder) {
	if p.ShowFieldNames && n.Name != "" {
		p.write(n.Name)
		return
	}
	p.write("{" + strconv.Itoa(n.Index) + "}")
}

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitFloatLiteral(n *ast.FloatLiteral) {
	s := strconv.FormatFloat(n.Value, 'g', -1, 64)
	if !bytes.ContainsAny([]byte(s), ".eE") {
		s += ".0"
	}
	p.write(s)
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	if n.Value {
		p.write("true")
	} else {
		p.write("false")
	}
}

func (p *CodePrinter) VisitNilLiteral(n *ast.NilLiteral) {
	p.write("nil")
}

func (p *CodePrinter) VisitListLiteral(n *ast.ListLiteral) {
	p.write("[")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(el, 0, false)
	}
	p.write("]")
}

func (p *CodePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	// When called directly (not via printExpr), use lowest precedence context
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitComparisonExpression(n *ast.ComparisonExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitIndexExpression(n *ast.IndexExpression) {
	p.printExpr(n.Left, 100, false)
	p.write("[")
	p.printExpr(n.Index, 0, false)
	p.write("]")
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.printExpr(n.Function, 100, false)
	p.write("(")
	for i, arg := range n.Arguments {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg, 0, false)
	}
	p.write(")")
}
