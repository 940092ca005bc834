package parser

import (
	"github.com/funvibe/beacontau/internal/ast"
	"github.com/funvibe/beacontau/internal/diagnostics"
	"github.com/funvibe/beacontau/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP005,
			p.curToken,
			"expression too complex: recursion depth limit exceeded",
		))
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		nextExp := infix(leftExp)
		if nextExp == nil {
			return nil
		}
		leftExp = nextExp
	}

	return leftExp
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseNotExpression binds looser than comparisons: not a == b is not (a == b).
func (p *Parser) parseNotExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: "not",
	}
	p.nextToken()
	expression.Right = p.parseExpression(NOT)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: operatorName(p.curToken),
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseRightAssocInfixExpression parses right-associative operators like **
// 2 ** 3 ** 2 parses as 2 ** (3 ** 2)
func (p *Parser) parseRightAssocInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: operatorName(p.curToken),
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	// Use precedence - 1 to make it right-associative
	expression.Right = p.parseExpression(precedence - 1)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseComparison collects a chain of comparison operators. A single
// comparison stays a plain InfixExpression.
func (p *Parser) parseComparison(left ast.Expression) ast.Expression {
	first := p.curToken
	operands := []ast.Expression{left}
	operators := []string{operatorName(first)}

	p.nextToken()
	right := p.parseExpression(COMPARE)
	if right == nil {
		return nil
	}
	operands = append(operands, right)

	for isComparison(p.peekToken.Type) {
		p.nextToken()
		operators = append(operators, operatorName(p.curToken))
		p.nextToken()
		next := p.parseExpression(COMPARE)
		if next == nil {
			return nil
		}
		operands = append(operands, next)
	}

	if len(operators) == 1 {
		return &ast.InfixExpression{Token: first, Left: left, Operator: operators[0], Right: right}
	}
	return &ast.ComparisonExpression{Token: first, Operands: operands, Operators: operators}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // consume '('

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func isComparison(t token.TokenType) bool {
	switch t {
	case token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE:
		return true
	}
	return false
}

// operatorName normalizes spelling variants (&& vs and).
func operatorName(tok token.Token) string {
	switch tok.Type {
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	case token.BANG:
		return "not"
	}
	return string(tok.Type)
}
