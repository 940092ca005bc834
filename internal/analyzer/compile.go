package analyzer

import (
	"github.com/cockroachdb/errors"

	"github.com/funvibe/beacontau/internal/ast"
	"github.com/funvibe/beacontau/internal/diagnostics"
	"github.com/funvibe/beacontau/internal/lexer"
	"github.com/funvibe/beacontau/internal/parser"
	"github.com/funvibe/beacontau/internal/pipeline"
	"github.com/funvibe/beacontau/internal/prettyprinter"
)

// Program is a compiled expression. It can be evaluated any number of times.
type Program struct {
	source   string
	text     string
	bindings []Binding
	root     ast.Expression
}

// Source is the expression as written.
func (p *Program) Source() string { return p.source }

// Text is the expression with field names replaced by {k} placeholders.
func (p *Program) Text() string { return p.text }

// Bound lists the field name behind each placeholder, in placeholder order.
// A name appears once per occurrence.
func (p *Program) Bound() []string {
	names := make([]string, len(p.bindings))
	for i, b := range p.bindings {
		names[i] = b.Name
	}
	return names
}

func (p *Program) Bindings() []Binding { return p.bindings }

func (p *Program) Root() ast.Expression { return p.root }

// String renders the parsed expression with field names restored and
// redundant parentheses removed.
func (p *Program) String() string {
	return prettyprinter.Print(p.root)
}

// Compile substitutes field names in expr and parses the result.
func (a *Analyzer) Compile(expr string) (*Program, error) {
	b := &binder{registry: a.registry, collided: a.warnCollision}
	ctx := pipeline.New(
		b,
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	).Run(&pipeline.PipelineContext{SourceCode: expr})

	if err := diagnostics.Join(ctx.Errors); err != nil {
		return nil, errors.Wrapf(err, "compiling %q", expr)
	}
	return &Program{
		source:   expr,
		text:     ctx.Text(),
		bindings: append([]Binding(nil), b.bindings...),
		root:     ctx.AstRoot,
	}, nil
}
