package parser

import (
	"github.com/funvibe/beacontau/internal/ast"
	"github.com/funvibe/beacontau/internal/diagnostics"
	"github.com/funvibe/beacontau/internal/pipeline"
	"github.com/funvibe/beacontau/internal/token"
)

// MaxRecursionDepth bounds expression nesting.
const MaxRecursionDepth = 256

const (
	_ int = iota
	LOWEST
	OR      // or ||
	AND     // and &&
	NOT     // not x
	COMPARE // == != < <= > >=
	SUM     // + -
	PRODUCT // * / // %
	PREFIX  // -x
	POWER   // **
	CALL    // f(x) x[i]
)

var precedences = map[token.TokenType]int{
	token.OR:        OR,
	token.AND:       AND,
	token.EQ:        COMPARE,
	token.NOT_EQ:    COMPARE,
	token.LT:        COMPARE,
	token.LTE:       COMPARE,
	token.GT:        COMPARE,
	token.GTE:       COMPARE,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.FLOOR_DIV: PRODUCT,
	token.PERCENT:   PRODUCT,
	token.POWER:     POWER,
	token.LPAREN:    CALL,
	token.LBRACKET:  CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *pipeline.PipelineContext
	depth  int

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:       p.parseIdentifier,
		token.PLACEHOLDER: p.parsePlaceholder,
		token.INT:         p.parseIntegerLiteral,
		token.FLOAT:       p.parseFloatLiteral,
		token.STRING:      p.parseStringLiteral,
		token.TRUE:        p.parseBoolean,
		token.FALSE:       p.parseBoolean,
		token.NONE:        p.parseNil,
		token.MINUS:       p.parsePrefixExpression,
		token.PLUS:        p.parsePrefixExpression,
		token.BANG:        p.parseNotExpression,
		token.LPAREN:      p.parseGroupedExpression,
		token.LBRACKET:    p.parseListLiteral,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.OR:        p.parseInfixExpression,
		token.AND:       p.parseInfixExpression,
		token.PLUS:      p.parseInfixExpression,
		token.MINUS:     p.parseInfixExpression,
		token.ASTERISK:  p.parseInfixExpression,
		token.SLASH:     p.parseInfixExpression,
		token.FLOOR_DIV: p.parseInfixExpression,
		token.PERCENT:   p.parseInfixExpression,
		token.POWER:     p.parseRightAssocInfixExpression,
		token.EQ:        p.parseComparison,
		token.NOT_EQ:    p.parseComparison,
		token.LT:        p.parseComparison,
		token.LTE:       p.parseComparison,
		token.GT:        p.parseComparison,
		token.GTE:       p.parseComparison,
		token.LPAREN:    p.parseCallExpression,
		token.LBRACKET:  p.parseIndexExpression,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewErrorf(
		diagnostics.ErrP003,
		p.peekToken,
		"expected next token to be %s, got %s instead", t, describe(p.peekToken),
	))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewErrorf(
		diagnostics.ErrP002,
		tok,
		"unexpected %s at start of expression", describe(tok),
	))
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseExpression parses the whole token stream as a single expression.
func (p *Parser) ParseExpression() ast.Expression {
	if p.curTokenIs(token.EOF) {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(diagnostics.ErrP002, p.curToken, "empty expression"))
		return nil
	}
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.peekTokenIs(token.EOF) {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewErrorf(
			diagnostics.ErrP001,
			p.peekToken,
			"unexpected %s after expression", describe(p.peekToken),
		))
		return nil
	}
	return exp
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of expression"
	}
	return "'" + tok.Lexeme + "'"
}
