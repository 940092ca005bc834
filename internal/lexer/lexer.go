package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/funvibe/beacontau/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.twoCharToken(token.EQ, "==")
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.twoCharToken(token.NOT_EQ, "!=")
		} else {
			tok = newToken(token.BANG, l.ch, l.line, l.column)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.twoCharToken(token.LTE, "<=")
		} else {
			tok = newToken(token.LT, l.ch, l.line, l.column)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.twoCharToken(token.GTE, ">=")
		} else {
			tok = newToken(token.GT, l.ch, l.line, l.column)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.twoCharToken(token.AND, "&&")
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.twoCharToken(token.OR, "||")
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case '+':
		tok = newToken(token.PLUS, l.ch, l.line, l.column)
	case '-':
		tok = newToken(token.MINUS, l.ch, l.line, l.column)
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok = l.twoCharToken(token.POWER, "**")
		} else {
			tok = newToken(token.ASTERISK, l.ch, l.line, l.column)
		}
	case '/':
		if l.peekChar() == '/' {
			l.readChar()
			tok = l.twoCharToken(token.FLOOR_DIV, "//")
		} else {
			tok = newToken(token.SLASH, l.ch, l.line, l.column)
		}
	case '%':
		tok = newToken(token.PERCENT, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case '{':
		return l.readPlaceholder()
	case '"', '\'':
		startLine, startCol := l.line, l.column
		str, err := l.readString(l.ch)
		if err != nil {
			tok = token.Token{Type: token.ILLEGAL, Lexeme: str, Literal: err.Error(), Line: startLine, Column: startCol}
		} else {
			tok = token.Token{Type: token.STRING, Lexeme: strconv.Quote(str), Literal: str, Line: startLine, Column: startCol}
		}
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		tok = newToken(token.DOT, l.ch, l.line, l.column)
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			startLine, startCol := l.line, l.column
			ident := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: startLine, Column: startCol}
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

func (l *Lexer) twoCharToken(t token.TokenType, lexeme string) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: l.line, Column: l.column - 1}
}

// readPlaceholder reads a positional slot of the form {k}.
func (l *Lexer) readPlaceholder() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	l.readChar() // {
	digits := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch != '}' || digits == l.position {
		lexeme := l.input[position:l.position]
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "malformed placeholder " + lexeme, Line: startLine, Column: startCol}
	}
	idx, err := strconv.ParseInt(l.input[digits:l.position], 10, 64)
	l.readChar() // }
	lexeme := l.input[position:l.position]
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: err.Error(), Line: startLine, Column: startCol}
	}
	return token.Token{Type: token.PLACEHOLDER, Lexeme: lexeme, Literal: idx, Line: startLine, Column: startCol}
}

// readString reads a quoted string; the current char is the opening quote.
func (l *Lexer) readString(quote rune) (string, error) {
	var out []rune
	for {
		l.readChar()
		switch l.ch {
		case 0:
			return string(out), fmt.Errorf("unterminated string literal")
		case quote:
			return string(out), nil
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\', '"', '\'':
				out = append(out, l.ch)
			case 0:
				return string(out), fmt.Errorf("unterminated string literal")
			default:
				out = append(out, '\\', l.ch)
			}
		default:
			out = append(out, l.ch)
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	base := 10
	isFloat := false

	if l.ch == '0' {
		peek := l.peekChar()
		if peek == 'x' || peek == 'X' {
			l.readChar()
			l.readChar()
			base = 16
		} else if peek == 'b' || peek == 'B' {
			l.readChar()
			l.readChar()
			base = 2
		} else if peek == 'o' || peek == 'O' {
			l.readChar()
			l.readChar()
			base = 8
		}
	}

	for {
		if base == 16 {
			if !isHexDigit(l.ch) && l.ch != '_' {
				break
			}
		} else if !isDigit(l.ch) && l.ch != '_' {
			break
		}
		l.readChar()
	}

	if base == 10 && l.ch == '.' {
		isFloat = true
		l.readChar() // .
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if base == 10 && (l.ch == 'e' || l.ch == 'E') {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekChar2())) {
			isFloat = true
			l.readChar() // e
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	lexeme := l.input[position:l.position]

	if isFloat {
		val, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: err.Error(), Line: startLine, Column: startCol}
		}
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
	}

	// strconv.ParseInt(s, 0, 64) auto-detects base and accepts underscores
	val, err := strconv.ParseInt(lexeme, 0, 64)
	if err != nil {
		msg := "malformed integer literal " + lexeme
		if errors.Is(err, strconv.ErrRange) {
			msg = "integer literal out of range"
		}
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: msg, Line: startLine, Column: startCol}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekChar2() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	pos2 := l.readPosition + w
	if pos2 >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos2:])
	return r
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}
