package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/beacontau/internal/ast"
	"github.com/funvibe/beacontau/internal/diagnostics"
	"github.com/funvibe/beacontau/internal/lexer"
	"github.com/funvibe/beacontau/internal/parser"
	"github.com/funvibe/beacontau/internal/pipeline"
	"github.com/funvibe/beacontau/internal/prettyprinter"
)

func parse(input string, bound []string) *pipeline.PipelineContext {
	ctx := &pipeline.PipelineContext{SourceCode: input, Bound: bound}
	return pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
}

// parseWithErrors runs the lexer+parser and returns all diagnostic errors.
func parseWithErrors(input string) []*diagnostics.DiagnosticError {
	return parse(input, nil).Errors
}

// expectError asserts an error with the given code.
func expectError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := parseWithErrors(input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

func mustParse(t *testing.T, input string) ast.Expression {
	t.Helper()
	ctx := parse(input, nil)
	if len(ctx.Errors) > 0 {
		t.Fatalf("unexpected error for %q: %v", input, diagnostics.Join(ctx.Errors))
	}
	return ctx.AstRoot
}

// TestPrecedence checks grouping by printing the tree fully parenthesized.
func TestPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "(-(2 ** 2))"},
		{"2 ** -1", "(2 ** (-1))"},
		{"a or b and c", "(a or (b and c))"},
		{"a || b && c", "(a or (b and c))"},
		{"not a == b", "(not (a == b))"},
		{"! a and b", "((not a) and b)"},
		{"a < b < c", "(a < b < c)"},
		{"1 + 2 < 3 * 4", "((1 + 2) < (3 * 4))"},
		{"x[1][2] + f(y)", "(x[1][2] + f(y))"},
		{"10 // 3 % 2", "((10 // 3) % 2)"},
		{"[1, 2,][0]", "[1, 2][0]"},
	}
	for _, tt := range tests {
		got := paren(mustParse(t, tt.input))
		if got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func paren(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.InfixExpression:
		return "(" + paren(n.Left) + " " + n.Operator + " " + paren(n.Right) + ")"
	case *ast.PrefixExpression:
		if n.Operator == "not" {
			return "(not " + paren(n.Right) + ")"
		}
		return "(" + n.Operator + paren(n.Right) + ")"
	case *ast.ComparisonExpression:
		var sb strings.Builder
		sb.WriteString("(")
		for i, op := range n.Operands {
			if i > 0 {
				sb.WriteString(" " + n.Operators[i-1] + " ")
			}
			sb.WriteString(paren(op))
		}
		sb.WriteString(")")
		return sb.String()
	case *ast.IndexExpression:
		return paren(n.Left) + "[" + paren(n.Index) + "]"
	}
	return prettyprinter.Print(e)
}

func TestPlaceholderNames(t *testing.T) {
	ctx := parse("{0} + {1} * {0}", []string{"readout_time", "deadtime"})
	if len(ctx.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", diagnostics.Join(ctx.Errors))
	}
	var names []string
	ast.Walk(ctx.AstRoot, func(e ast.Expression) bool {
		if ph, ok := e.(*ast.Placeholder); ok {
			names = append(names, ph.Name)
		}
		return true
	})
	if strings.Join(names, ",") != "readout_time,deadtime,readout_time" {
		t.Errorf("unexpected placeholder names %v", names)
	}
}

func TestP001_TrailingTokens(t *testing.T) {
	expectError(t, "1 2", diagnostics.ErrP001)
	expectError(t, "a.b", diagnostics.ErrP001)
}

func TestP002_NoPrefix(t *testing.T) {
	expectError(t, "", diagnostics.ErrP002)
	expectError(t, "* 2", diagnostics.ErrP002)
	expectError(t, "1 +", diagnostics.ErrP002)
}

func TestP003_ExpectedToken(t *testing.T) {
	e := expectError(t, "(1 + 2", diagnostics.ErrP003)
	if !strings.Contains(e.Message, "end of expression") {
		t.Errorf("unexpected message %q", e.Message)
	}
	expectError(t, "x[1", diagnostics.ErrP003)
	expectError(t, "f(1, 2", diagnostics.ErrP003)
}

func TestP004_UnboundPlaceholder(t *testing.T) {
	ctx := parse("{0} + {3}", []string{"a"})
	if len(ctx.Errors) != 1 || ctx.Errors[0].Code != diagnostics.ErrP004 {
		t.Fatalf("expected one P004 error, got %v", ctx.Errors)
	}
}

func TestP005_TooDeep(t *testing.T) {
	input := strings.Repeat("(", parser.MaxRecursionDepth+1) + "1" + strings.Repeat(")", parser.MaxRecursionDepth+1)
	expectError(t, input, diagnostics.ErrP005)
}

func TestL001_StopsBeforeParsing(t *testing.T) {
	ctx := parse("a = 1", nil)
	if len(ctx.Errors) == 0 || ctx.Errors[0].Code != diagnostics.ErrL001 {
		t.Fatalf("expected L001, got %v", ctx.Errors)
	}
	if ctx.AstRoot != nil {
		t.Errorf("parser should not run after lexer errors")
	}
}
