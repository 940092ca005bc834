package ast

import (
	"github.com/funvibe/beacontau/internal/token"
)

// Identifier is a bare name. After field substitution only builtin function
// names are expected to remain.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v Visitor)      { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// Placeholder is a {k} slot bound to the k-th substituted field.
type Placeholder struct {
	Token token.Token
	Index int
	Name  string // field name bound to this slot, filled in by the binder
}

func (p *Placeholder) Accept(v Visitor)      { v.VisitPlaceholder(p) }
func (p *Placeholder) expressionNode()       {}
func (p *Placeholder) TokenLiteral() string  { return p.Token.Lexeme }
func (p *Placeholder) GetToken() token.Token { return p.Token }

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Accept(v Visitor)      { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) Accept(v Visitor)      { v.VisitFloatLiteral(fl) }
func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Accept(v Visitor)      { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

type NilLiteral struct {
	Token token.Token
}

func (n *NilLiteral) Accept(v Visitor)      { v.VisitNilLiteral(n) }
func (n *NilLiteral) expressionNode()       {}
func (n *NilLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NilLiteral) GetToken() token.Token { return n.Token }

// ListLiteral represents [a, b, c]
type ListLiteral struct {
	Token    token.Token // [
	Elements []Expression
}

func (ll *ListLiteral) Accept(v Visitor)      { v.VisitListLiteral(ll) }
func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// PrefixExpression represents -x or not x
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v Visitor)      { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression represents a binary operation. Logical operators are
// normalized to "and" / "or" regardless of spelling.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)      { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// ComparisonExpression is a chain such as a < b <= c, meaning
// (a < b) and (b <= c) with b evaluated once.
// len(Operands) == len(Operators)+1 and len(Operators) >= 2.
type ComparisonExpression struct {
	Token     token.Token // the first operator
	Operands  []Expression
	Operators []string
}

func (ce *ComparisonExpression) Accept(v Visitor)      { v.VisitComparisonExpression(ce) }
func (ce *ComparisonExpression) expressionNode()       {}
func (ce *ComparisonExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *ComparisonExpression) GetToken() token.Token { return ce.Token }

// IndexExpression represents indexing, e.g. arr[i]
type IndexExpression struct {
	Token token.Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) Accept(v Visitor)      { v.VisitIndexExpression(ie) }
func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// CallExpression represents a builtin call, e.g. mean(trigger_thresholds)
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }
