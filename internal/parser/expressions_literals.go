package parser

import (
	"github.com/funvibe/beacontau/internal/ast"
	"github.com/funvibe/beacontau/internal/diagnostics"
	"github.com/funvibe/beacontau/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parsePlaceholder() ast.Expression {
	idx := int(p.curToken.Literal.(int64))
	ph := &ast.Placeholder{Token: p.curToken, Index: idx}
	if p.ctx.Bound != nil {
		if idx >= len(p.ctx.Bound) {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewErrorf(
				diagnostics.ErrP004,
				p.curToken,
				"placeholder %s has no bound field (%d bound)", p.curToken.Lexeme, len(p.ctx.Bound),
			))
			return nil
		}
		ph.Name = p.ctx.Bound[idx]
	}
	return ph
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.Literal.(int64)}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	return &ast.FloatLiteral{Token: p.curToken, Value: p.curToken.Literal.(float64)}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNil() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseListLiteral() ast.Expression {
	list := &ast.ListLiteral{Token: p.curToken}
	elements, ok := p.parseExpressionList(token.RBRACKET)
	if !ok {
		return nil
	}
	list.Elements = elements
	return list
}

// parseExpressionList parses comma separated expressions up to end. The
// current token is the opening delimiter. A trailing comma is allowed.
func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	for {
		p.nextToken()
		exp := p.parseExpression(LOWEST)
		if exp == nil {
			return nil, false
		}
		list = append(list, exp)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // consume comma
		if p.peekTokenIs(end) {
			break
		}
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}
