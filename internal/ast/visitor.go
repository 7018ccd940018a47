package ast

// Visitor dispatches on concrete node kinds. Traversal is the visitor's
// own responsibility; Accept never descends.
type Visitor interface {
	VisitProgram(p *Program)

	VisitExpressionStatement(s *ExpressionStatement)
	VisitAssignStatement(s *AssignStatement)
	VisitConditionalStatement(s *ConditionalStatement)
	VisitTryStatement(s *TryStatement)
	VisitMatchStatement(s *MatchStatement)
	VisitWithStatement(s *WithStatement)
	VisitLoopStatement(s *LoopStatement)
	VisitNoOpStatement(s *NoOpStatement)
	VisitReturnStatement(s *ReturnStatement)
	VisitRaiseStatement(s *RaiseStatement)
	VisitFunctionDeclaration(s *FunctionDeclaration)

	VisitIdentifier(e *Identifier)
	VisitIntegerLiteral(e *IntegerLiteral)
	VisitStringLiteral(e *StringLiteral)
	VisitBooleanLiteral(e *BooleanLiteral)
	VisitNilLiteral(e *NilLiteral)
	VisitBinaryExpression(e *BinaryExpression)
	VisitCallExpression(e *CallExpression)
	VisitLambdaLiteral(e *LambdaLiteral)
}

// BaseVisitor provides no-op implementations for every node kind so a
// visitor only overrides what it cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(*Program)                           {}
func (BaseVisitor) VisitExpressionStatement(*ExpressionStatement)   {}
func (BaseVisitor) VisitAssignStatement(*AssignStatement)           {}
func (BaseVisitor) VisitConditionalStatement(*ConditionalStatement) {}
func (BaseVisitor) VisitTryStatement(*TryStatement)                 {}
func (BaseVisitor) VisitMatchStatement(*MatchStatement)             {}
func (BaseVisitor) VisitWithStatement(*WithStatement)               {}
func (BaseVisitor) VisitLoopStatement(*LoopStatement)               {}
func (BaseVisitor) VisitNoOpStatement(*NoOpStatement)               {}
func (BaseVisitor) VisitReturnStatement(*ReturnStatement)           {}
func (BaseVisitor) VisitRaiseStatement(*RaiseStatement)             {}
func (BaseVisitor) VisitFunctionDeclaration(*FunctionDeclaration)   {}
func (BaseVisitor) VisitIdentifier(*Identifier)                     {}
func (BaseVisitor) VisitIntegerLiteral(*IntegerLiteral)             {}
func (BaseVisitor) VisitStringLiteral(*StringLiteral)               {}
func (BaseVisitor) VisitBooleanLiteral(*BooleanLiteral)             {}
func (BaseVisitor) VisitNilLiteral(*NilLiteral)                     {}
func (BaseVisitor) VisitBinaryExpression(*BinaryExpression)         {}
func (BaseVisitor) VisitCallExpression(*CallExpression)             {}
func (BaseVisitor) VisitLambdaLiteral(*LambdaLiteral)               {}
