package pipeline

import (
	"github.com/funvibe/beacontau/internal/ast"
	"github.com/funvibe/beacontau/internal/diagnostics"
	"github.com/funvibe/beacontau/internal/token"
)

// PipelineContext carries an expression through the compile stages.
type PipelineContext struct {
	// SourceCode is the expression as written by the user.
	SourceCode string
	// BoundCode is SourceCode with every known field name replaced by a {k}
	// placeholder. Stages that run without a binder read SourceCode instead.
	BoundCode string
	// Bound holds the field name for each placeholder, in placeholder order.
	Bound []string

	TokenStream []token.Token
	AstRoot     ast.Expression
	Errors      []*diagnostics.DiagnosticError
}

// Text returns the text the lexer should consume.
func (ctx *PipelineContext) Text() string {
	if ctx.BoundCode != "" {
		return ctx.BoundCode
	}
	return ctx.SourceCode
}

// Processor is a single compile stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. A stage that records errors stops the run;
// later stages would only report follow-on noise.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if len(ctx.Errors) > 0 {
			break
		}
	}
	return ctx
}
