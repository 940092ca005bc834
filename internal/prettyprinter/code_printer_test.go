package prettyprinter

import (
	"testing"

	"github.com/funvibe/beacontau/internal/lexer"
	"github.com/funvibe/beacontau/internal/parser"
	"github.com/funvibe/beacontau/internal/pipeline"
)

func TestPrintRoundTrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1+2*3", "1 + 2 * 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"(1 - 2) - 3", "1 - 2 - 3"},
		{"(2 ** 3) ** 2", "(2 ** 3) ** 2"},
		{"2 ** 3 ** 2", "2 ** 3 ** 2"},
		{"-(1 + 2)", "-(1 + 2)"},
		{"a && (b || c)", "a and (b or c)"},
		{"not (a and b)", "not (a and b)"},
		{"(a == b) == c", "(a == b) == c"},
		{"a < b <= c", "a < b <= c"},
		{"f(x, [1, 2.0, 'q'])[0]", `f(x, [1, 2.0, "q"])[0]`},
		{"True or None", "true or nil"},
		{"1e20", "1e+20"},
	}
	for _, tt := range tests {
		ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
			Run(&pipeline.PipelineContext{SourceCode: tt.input})
		if len(ctx.Errors) > 0 {
			t.Fatalf("%q: %v", tt.input, ctx.Errors[0])
		}
		got := Print(ctx.AstRoot)
		if got != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.expected, got)
		}

		// Printing must be stable.
		again := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
			Run(&pipeline.PipelineContext{SourceCode: got})
		if len(again.Errors) > 0 || Print(again.AstRoot) != got {
			t.Errorf("%q does not reprint to itself", got)
		}
	}
}

func TestPrintPlaceholders(t *testing.T) {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
		Run(&pipeline.PipelineContext{SourceCode: "{0} > {1}", Bound: []string{"header.readout_time", "deadtime"}})
	if len(ctx.Errors) > 0 {
		t.Fatal(ctx.Errors[0])
	}
	if got := Print(ctx.AstRoot); got != "header.readout_time > deadtime" {
		t.Errorf("got %q", got)
	}
	p := NewCodePrinter()
	ctx.AstRoot.Accept(p)
	if got := p.String(); got != "{0} > {1}" {
		t.Errorf("got %q", got)
	}
}
