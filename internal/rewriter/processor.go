package rewriter

import (
	"github.com/funvibe/modgud/internal/diagnostics"
	"github.com/funvibe/modgud/internal/pipeline"
)

// RewriteProcessor is the pipeline stage that applies the implicit
// return transformation to ctx.TargetName within ctx.Program.
type RewriteProcessor struct {
	Options []Option
}

func (p *RewriteProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() || ctx.Program == nil {
		return ctx
	}

	rw, err := RewriteFunction(ctx.Program, ctx.TargetName, p.Options...)
	if err != nil {
		if de, ok := err.(*diagnostics.DiagnosticError); ok {
			ctx.AddError(de)
		} else {
			ctx.AddError(&diagnostics.DiagnosticError{Code: diagnostics.ErrT003, Message: err.Error()})
		}
		return ctx
	}

	ctx.Function = rw.Function
	ctx.Tag = rw.Tag
	ctx.TraceID = rw.TraceID
	return ctx
}
