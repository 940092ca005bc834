package lexer

import (
	"testing"

	"github.com/funvibe/beacontau/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `{0} >= 1.5e3 and not ({12} // 2 ** 3) != 'a\'b' || x[-1] % 0x1F <= .5`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral interface{}
	}{
		{token.PLACEHOLDER, int64(0)},
		{token.GTE, ">="},
		{token.FLOAT, 1.5e3},
		{token.AND, "and"},
		{token.BANG, "not"},
		{token.LPAREN, "("},
		{token.PLACEHOLDER, int64(12)},
		{token.FLOOR_DIV, "//"},
		{token.INT, int64(2)},
		{token.POWER, "**"},
		{token.INT, int64(3)},
		{token.RPAREN, ")"},
		{token.NOT_EQ, "!="},
		{token.STRING, "a'b"},
		{token.OR, "||"},
		{token.IDENT, "x"},
		{token.LBRACKET, "["},
		{token.MINUS, "-"},
		{token.INT, int64(1)},
		{token.RBRACKET, "]"},
		{token.PERCENT, "%"},
		{token.INT, int64(31)},
		{token.LTE, "<="},
		{token.FLOAT, 0.5},
		{token.EOF, nil},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tt.expectedLiteral != nil && tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%v, got=%v", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	tests := map[string]token.TokenType{
		"True":  token.TRUE,
		"false": token.FALSE,
		"None":  token.NONE,
		"nil":   token.NONE,
		"or":    token.OR,
		"order": token.IDENT,
		"_n1":   token.IDENT,
	}
	for input, want := range tests {
		tok := New(input).NextToken()
		if tok.Type != want {
			t.Errorf("%q: expected %s, got %s", input, want, tok.Type)
		}
	}
}

func TestIllegalTokens(t *testing.T) {
	tests := []string{
		"a = b",
		"a & b",
		"a | b",
		"{x}",
		"{1",
		"'open",
		"99999999999999999999",
		"$",
	}
	for _, input := range tests {
		l := New(input)
		found := false
		for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
			if tok.Type == token.ILLEGAL {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%q: expected an ILLEGAL token", input)
		}
	}
}

func TestPositions(t *testing.T) {
	l := New("a +\n  bb")
	want := []struct{ line, col int }{{1, 1}, {1, 3}, {2, 3}}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Line != w.line || tok.Column != w.col {
			t.Errorf("token %d (%q): expected %d:%d, got %d:%d", i, tok.Lexeme, w.line, w.col, tok.Line, tok.Column)
		}
	}
}

func TestIntegerLiteralErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0x", "malformed integer literal 0x"},
		{"1__0", "malformed integer literal 1__0"},
		{"0b", "malformed integer literal 0b"},
		{"99999999999999999999", "integer literal out of range"},
	}
	for _, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Type != token.ILLEGAL {
			t.Fatalf("%q: expected ILLEGAL, got %s", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}
