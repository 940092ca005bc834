package lexer

import (
	"fmt"

	"github.com/funvibe/beacontau/internal/diagnostics"
	"github.com/funvibe/beacontau/internal/pipeline"
	"github.com/funvibe/beacontau/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.Text())
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			msg := fmt.Sprintf("illegal token %q", tok.Lexeme)
			if s, ok := tok.Literal.(string); ok && s != tok.Lexeme {
				msg = s
			}
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrL001, tok, msg))
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	ctx.TokenStream = tokens
	return ctx
}
