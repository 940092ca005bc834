package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int64, float64, string or nil
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT       TokenType = "IDENT"
	INT         TokenType = "INT"
	FLOAT       TokenType = "FLOAT"
	STRING      TokenType = "STRING"
	PLACEHOLDER TokenType = "PLACEHOLDER" // {0}, {1}, ... left behind by field substitution

	// Operators
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	FLOOR_DIV TokenType = "//"
	PERCENT   TokenType = "%"
	POWER     TokenType = "**"

	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LT     TokenType = "<"
	LTE    TokenType = "<="
	GT     TokenType = ">"
	GTE    TokenType = ">="

	AND  TokenType = "and"
	OR   TokenType = "or"
	BANG TokenType = "not"

	// Delimiters
	COMMA    TokenType = ","
	DOT      TokenType = "."
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
	NONE  TokenType = "NONE"
)

var keywords = map[string]TokenType{
	"and":   AND,
	"or":    OR,
	"not":   BANG,
	"true":  TRUE,
	"True":  TRUE,
	"false": FALSE,
	"False": FALSE,
	"None":  NONE,
	"nil":   NONE,
}

// LookupIdent maps keywords to their token type; anything else is an IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
