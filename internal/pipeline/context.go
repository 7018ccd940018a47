package pipeline

import (
	"github.com/funvibe/modgud/internal/ast"
	"github.com/funvibe/modgud/internal/diagnostics"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext is the shared state threaded through the stages.
type PipelineContext struct {
	FilePath   string
	Program    *ast.Program
	TargetName string

	// Function holds the rewritten declaration once the rewrite stage ran.
	Function *ast.FunctionDeclaration
	// Tag is the synthetic attribution name for the materializer.
	Tag string
	// TraceID identifies this rewrite in logs.
	TraceID string

	Errors []*diagnostics.DiagnosticError
}

// AddError appends a diagnostic to the context.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	ctx.Errors = append(ctx.Errors, err)
}

// HasErrors reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
