package sema

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
)

// checkBody checks every statement in a function/pipeline body against
// the declared return type, within scope.
func (a *analyzer) checkBody(file string, ns NamespaceStack, body []ast.Stmt, retType string, scope *VarScope) {
	for i := range body {
		a.checkStmt(file, ns, &body[i], retType, scope)
	}
}

func (a *analyzer) checkStmt(file string, ns NamespaceStack, s *ast.Stmt, retType string, scope *VarScope) {
	switch s.Kind() {
	case ast.StmtVarDecl:
		a.checkVarDecl(file, ns, s.VarDecl, scope)
	case ast.StmtAssign:
		a.checkAssign(file, ns, s.Assign, scope)
	case ast.StmtReturn:
		a.checkReturn(file, ns, s.Return, retType, scope)
	case ast.StmtDiscard:
		// Accepted anywhere inside a pipeline body; emits no type.
	case ast.StmtIf:
		a.checkIf(file, ns, s.If, retType, scope)
	case ast.StmtWhile:
		a.checkWhile(file, ns, s.While, retType, scope)
	case ast.StmtFor:
		a.checkFor(file, ns, s.For, retType, scope)
	case ast.StmtExpr:
		a.resolveExprType(file, ns, scope, &s.ExprStmt.Expr)
	}
}

func (a *analyzer) checkVarDecl(file string, ns NamespaceStack, v *ast.VarDeclStmt, scope *VarScope) {
	typeName := resolveTypeRef(a.universe, ns, v.Type)
	if typeName == "" {
		a.diags.Addf(diag.CodeUnresolvedName, "Unresolved type ["+v.Type.String()+"]", v.Tok)
		return
	}
	if !scope.Declare(v.Name, typeName) {
		a.diags.Addf(diag.CodeDuplicateDeclaration, "Variable ["+v.Name+"] is already declared in this scope", v.Tok)
		return
	}
	if v.Init == nil {
		return
	}
	initType := a.resolveExprType(file, ns, scope, v.Init)
	if initType == "" {
		return
	}
	if !a.universe.ConvertibleTo(initType, typeName) {
		a.diags.Addf(diag.CodeIncompatibleConversion,
			"Cannot convert ["+initType+"] to ["+typeName+"]", v.Tok)
	}
}

func (a *analyzer) checkAssign(file string, ns NamespaceStack, as *ast.AssignStmt, scope *VarScope) {
	if len(as.Path) == 0 {
		return
	}
	receiverType, ok := scope.Lookup(as.Path[0])
	if !ok {
		a.diags.Addf(diag.CodeUnresolvedName, "Unresolved name ["+as.Path[0]+"]", as.Tok)
		return
	}
	for _, field := range as.Path[1:] {
		t := a.universe.Types[receiverType]
		if t == nil {
			a.diags.Addf(diag.CodeUnresolvedName, "Unresolved type ["+receiverType+"]", as.Tok)
			return
		}
		attr, ok := t.Attr(field)
		if !ok {
			a.diags.Addf(diag.CodeUnresolvedName, "Type ["+receiverType+"] has no member ["+field+"]", as.Tok)
			return
		}
		receiverType = attr.Type
	}

	exprType := a.resolveExprType(file, ns, scope, &as.Expr)
	if exprType == "" {
		return
	}
	if !a.universe.ConvertibleTo(exprType, receiverType) {
		a.diags.Addf(diag.CodeIncompatibleConversion,
			"Cannot convert ["+exprType+"] to ["+receiverType+"]", as.Tok)
	}
}

func (a *analyzer) checkReturn(file string, ns NamespaceStack, r *ast.ReturnStmt, retType string, scope *VarScope) {
	if retType == "void" {
		if r.Expr != nil {
			a.diags.Addf(diag.CodeWrongReturnType, "Void function must return no expression", r.Tok)
		}
		return
	}
	if r.Expr == nil {
		a.diags.Addf(diag.CodeWrongReturnType, "Expected return type ["+retType+"]", r.Tok)
		return
	}
	exprType := a.resolveExprType(file, ns, scope, r.Expr)
	if exprType == "" {
		return
	}
	if !a.universe.ConvertibleTo(exprType, retType) {
		a.diags.Addf(diag.CodeWrongReturnType, "Expected return type ["+retType+"]", r.Tok)
	}
}

// checkCondition requires the resolved condition type be bool, the
// shared rule behind if/while/for.
func (a *analyzer) checkCondition(file string, ns NamespaceStack, cond *ast.Condition, scope *VarScope) {
	typeName := a.resolveConditionType(file, ns, scope, cond)
	if typeName == "" {
		return
	}
	if typeName != "bool" {
		a.diags.Addf(diag.CodeIncompatibleConversion, "Condition must be of type [bool], found ["+typeName+"]", cond.Tok)
	}
}

func (a *analyzer) checkIf(file string, ns NamespaceStack, s *ast.IfStmt, retType string, scope *VarScope) {
	a.checkCondition(file, ns, &s.Cond, scope)
	a.checkBody(file, ns, s.Body, retType, scope.Push())
	switch {
	case s.ElseIf != nil:
		a.checkIf(file, ns, s.ElseIf, retType, scope)
	case s.ElseBody != nil:
		a.checkBody(file, ns, s.ElseBody, retType, scope.Push())
	}
}

func (a *analyzer) checkWhile(file string, ns NamespaceStack, s *ast.WhileStmt, retType string, scope *VarScope) {
	a.checkCondition(file, ns, &s.Cond, scope)
	a.checkBody(file, ns, s.Body, retType, scope.Push())
}

func (a *analyzer) checkFor(file string, ns NamespaceStack, s *ast.ForStmt, retType string, scope *VarScope) {
	inner := scope.Push()
	switch {
	case s.InitDecl != nil:
		a.checkVarDecl(file, ns, s.InitDecl, inner)
	case s.InitStmt != nil:
		a.checkStmt(file, ns, s.InitStmt, retType, inner)
	}
	if s.Cond != nil {
		a.checkCondition(file, ns, s.Cond, inner)
	}
	if s.Incr != nil {
		a.checkStmt(file, ns, s.Incr, retType, inner)
	}
	a.checkBody(file, ns, s.Body, retType, inner.Push())
}
