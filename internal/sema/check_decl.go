package sema

import (
	"fmt"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/token"
)

// checkPipelineFlow enforces the allowed stage pairs, the element
// type restriction, and cross-flow name uniqueness.
func (a *analyzer) checkPipelineFlow(file string, ns NamespaceStack, f *ast.PipelineFlow) {
	pair := f.From.Text + "->" + f.To.Text
	if pair != token.StageInput+"->"+token.StageVertex && pair != token.StageVertex+"->"+token.StageFragment {
		a.diags.Addf(diag.CodeForbiddenPipelinePair,
			fmt.Sprintf("Only pipeline flow acceptable for [%s] input is [%s]", f.From.Text, expectedNext(f.From.Text)),
			f.Tok)
		return
	}

	typeName := resolveTypeRef(a.universe, ns, f.Type)
	if typeName == "" {
		a.diags.Addf(diag.CodeUnresolvedName, "Unresolved type ["+f.Type.String()+"]", f.Tok)
		return
	}
	t := a.universe.Types[typeName]
	if t.Kind != KindPrimitive && t.Kind != KindVector {
		a.diags.Addf(diag.CodeUnsupportedElementType,
			"Pipeline flow element type must be a primitive or vector type, found ["+typeName+"]", f.Tok)
		return
	}

	for _, existing := range a.program.pipelineFlows {
		if existing.name == f.Name {
			a.diags.Addf(diag.CodeNonUniquePipelineVar, "Pipeline flow variable ["+f.Name+"] is already declared", f.Tok)
			return
		}
	}
	a.program.pipelineFlows = append(a.program.pipelineFlows, flowDecl{from: f.From.Text, to: f.To.Text, name: f.Name, typeName: typeName})
}

func expectedNext(from string) string {
	if from == token.StageInput {
		return token.StageVertex
	}
	return token.StageFragment
}

// checkBlock resolves every element's type, enforces unique element
// names, and registers the resulting Type into the universe under the
// given kind.
func (a *analyzer) checkBlock(file string, ns NamespaceStack, b *ast.Block, kind TypeKind) {
	qualified := ns.Qualify(b.Name)
	if _, exists := a.universe.Types[qualified]; exists {
		a.diags.Addf(diag.CodeDuplicateDeclaration, formatDuplicate(qualified, a.universe.typeOrigin[qualified]), b.Tok)
		return
	}

	t := newType(qualified, kind)
	seen := make(map[string]bool)
	for _, el := range b.Elements {
		if el.Name == "" {
			continue
		}
		if seen[el.Name] {
			a.diags.Addf(diag.CodeDuplicateDeclaration, "Element ["+el.Name+"] is already declared in ["+qualified+"]", el.Tok)
			continue
		}
		seen[el.Name] = true

		typeName := resolveTypeRef(a.universe, ns, el.Type)
		if typeName == "" {
			a.diags.Addf(diag.CodeUnresolvedName, "Unresolved type ["+el.Type.String()+"]", el.Tok)
			continue
		}
		elemType := a.universe.Types[typeName]
		if elemType.Kind == KindAttribute || elemType.Kind == KindConstant {
			a.diags.Addf(diag.CodeUnsupportedElementType,
				"Type ["+typeName+"] is not a legal block element type", el.Tok)
			continue
		}
		if el.ArraySize != nil && *el.ArraySize < 0 {
			a.diags.Addf(diag.CodeArraySizeConstraint, "Array size must be a non-negative integer", el.Tok)
			continue
		}
		t.addAttr(el.Name, typeName)
	}

	a.universe.Types[qualified] = t
	a.universe.typeOrigin[qualified] = fmt.Sprintf("%s:%d", file, b.Tok.Pos.Line)
}

func formatDuplicate(name, origin string) string {
	if origin == "" {
		return "[" + name + "] is already declared"
	}
	return "[" + name + "] is already declared at " + origin
}

// checkTexture enforces unique texture names within a namespace
// partition, separate from the type and symbol universes.
func (a *analyzer) checkTexture(file string, ns NamespaceStack, tex *ast.Texture) {
	qualified := ns.Qualify(tex.Name)
	if a.universe.Textures[qualified] {
		a.diags.Addf(diag.CodeDuplicateDeclaration, "Texture ["+qualified+"] is already declared", tex.Tok)
		return
	}
	a.universe.Textures[qualified] = true
}

// globalVars aggregates every attribute/constant block member into one
// name->type map, the seed environment for function and pipeline-body
// scopes: every attribute block member and every constant block member
// is visible as a variable everywhere.
//
// Declared pipeline-flow variables are not part of this map; the
// function and pipeline-body checkers add them to the seed separately
// via Program.flowVars, so a named value passed between stages is
// readable there. This is our own resolution of an underspecified
// corner.
func (u *Universe) globalVars() map[string]string {
	vars := make(map[string]string)
	for _, t := range u.Types {
		if t.Kind == KindAttribute || t.Kind == KindConstant {
			for _, attr := range t.Attrs {
				vars[attr.Name] = attr.Type
			}
		}
	}
	return vars
}

func (p *Program) flowVars() map[string]string {
	vars := make(map[string]string)
	for _, f := range p.pipelineFlows {
		vars[f.name] = f.typeName
	}
	return vars
}

// checkSymbol resolves the return and parameter types, enforces the
// overload-compatibility rules, builds the function scope, and checks
// the body.
func (a *analyzer) checkSymbol(file string, ns NamespaceStack, sym *ast.Symbol) {
	qualified := ns.Qualify(sym.Name)

	retType := resolveTypeRef(a.universe, ns, sym.ReturnType)
	if retType == "" {
		a.diags.Addf(diag.CodeUnresolvedName, "Unresolved return type ["+sym.ReturnType.String()+"]", sym.Tok)
		return
	}

	paramTypes := make([]string, 0, len(sym.Params))
	paramNames := make([]string, 0, len(sym.Params))
	ok := true
	for _, p := range sym.Params {
		pt := resolveTypeRef(a.universe, ns, p.Type)
		if pt == "" {
			a.diags.Addf(diag.CodeUnresolvedName, "Unresolved parameter type ["+p.Type.String()+"]", sym.Tok)
			ok = false
			continue
		}
		paramTypes = append(paramTypes, pt)
		paramNames = append(paramNames, p.Name)
	}
	if !ok {
		return
	}

	for _, existing := range a.universe.Functions[qualified] {
		if existing.ReturnType != retType {
			a.diags.Addf(diag.CodeDuplicateDeclaration,
				"Symbol ["+qualified+"] already defined with another return type", sym.Tok)
			return
		}
		if sameSignature(existing.Params, paramTypes) {
			a.diags.Addf(diag.CodeDuplicateDeclaration,
				"Symbol ["+qualified+"] is already defined with this parameter list", sym.Tok)
			return
		}
	}

	seen := make(map[string]bool)
	for _, n := range paramNames {
		if n == "" {
			continue
		}
		if seen[n] {
			a.diags.Addf(diag.CodeDuplicateDeclaration, "Parameter ["+n+"] is already declared", sym.Tok)
			return
		}
		seen[n] = true
	}

	a.universe.Functions[qualified] = append(a.universe.Functions[qualified], &Func{
		Name: qualified, ReturnType: retType, Params: paramTypes, ParamNames: paramNames,
	})

	seed := a.universe.globalVars()
	for k, v := range a.program.flowVars() {
		if v == "" {
			continue
		}
		seed[k] = v
	}
	for i, n := range paramNames {
		if n != "" {
			seed[n] = paramTypes[i]
		}
	}
	scope := NewRootScope(seed)
	a.checkBody(file, ns, sym.Body, retType, scope)
}

func sameSignature(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkPipelineBody rejects an Input-stage body, enforces at most one
// body per stage, and checks the body as a void function with the
// stage's visible variables.
func (a *analyzer) checkPipelineBody(file string, ns NamespaceStack, body *ast.PipelineBody) {
	if body.Stage.Text == token.StageInput {
		a.diags.Addf(diag.CodeUnsupportedElementType, "Input stage cannot define a pipeline body", body.Tok)
		return
	}
	if a.program.pipelineBodySeen[body.Stage.Text] {
		a.diags.Addf(diag.CodeRepeatedPipelineBody, "Pipeline body for ["+body.Stage.Text+"] is already defined", body.Tok)
		return
	}
	a.program.pipelineBodySeen[body.Stage.Text] = true

	seed := a.universe.globalVars()
	for k, v := range a.program.flowVars() {
		if v != "" {
			seed[k] = v
		}
	}
	scope := NewRootScope(seed)
	a.checkBody(file, ns, body.Body, "void", scope)
}
