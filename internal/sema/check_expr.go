package sema

import (
	"fmt"
	"strings"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/token"
	"github.com/lumina-lang/luminac/internal/util/strutil"
)

// suggestName appends a "did you mean" hint to message when a fuzzy
// search of candidates turns up a plausible near-miss for want. An
// exact match among candidates means the lookup that produced message
// failed for some other reason, so it is left unsuggested.
func suggestName(message, want string, candidates []string) string {
	matches, exact := strutil.FuzzySearch(candidates, want)
	if exact || len(matches) == 0 {
		return message
	}
	return fmt.Sprintf("%s (did you mean [%s]?)", message, matches[0])
}

// resolveExprType computes an Expr's single resolved type: every
// element's type must be equal or implicitly convertible to one common
// type, preferring the type with more attributes when promoting (so
// Vector2 wins over float). Returns "" (already diagnosed) if any
// element or the combination fails to resolve.
func (a *analyzer) resolveExprType(file string, ns NamespaceStack, scope *VarScope, e *ast.Expr) string {
	if len(e.Elements) == 0 {
		return ""
	}
	result := a.resolveElementType(file, ns, scope, &e.Elements[0])
	if result == "" {
		return ""
	}
	for i, op := range e.Ops {
		next := &e.Elements[i+1]
		nextType := a.resolveElementType(file, ns, scope, next)
		if nextType == "" {
			return ""
		}
		t := a.universe.Types[result]
		if t == nil || !t.BinaryOps[op] {
			a.diags.Addf(diag.CodeUnsupportedOperator, "Type ["+result+"] does not support operator ["+op+"]", e.Tok)
			return ""
		}
		promoted := a.promote(result, nextType)
		if promoted == "" {
			a.diags.Addf(diag.CodeIncompatibleConversion,
				"Cannot combine ["+result+"] and ["+nextType+"] in an expression", e.Tok)
			return ""
		}
		result = promoted
	}
	return result
}

// promote resolves the common type of a and b, preferring the type
// with more attributes (so Vector2 wins over float). A scalar combines
// with a vector when it converts to the vector's component type.
// Returns "" if neither converts to the other.
func (a *analyzer) promote(typeA, typeB string) string {
	if typeA == typeB {
		return typeA
	}
	ta, tb := a.universe.Types[typeA], a.universe.Types[typeB]
	if ta == nil || tb == nil {
		return ""
	}
	convertible := a.universe.ConvertibleTo(typeA, typeB)
	if !convertible && ta.Kind == KindPrimitive && tb.Kind == KindVector {
		convertible = a.universe.ConvertibleTo(typeA, tb.Attrs[0].Type)
	}
	if !convertible && tb.Kind == KindPrimitive && ta.Kind == KindVector {
		convertible = a.universe.ConvertibleTo(typeB, ta.Attrs[0].Type)
	}
	if !convertible {
		return ""
	}
	if len(tb.Attrs) > len(ta.Attrs) {
		return typeB
	}
	return typeA
}

func (a *analyzer) resolveElementType(file string, ns NamespaceStack, scope *VarScope, el *ast.Element) string {
	switch el.Kind() {
	case ast.ElemNumber:
		// Lexical-shape literal typing (decided Open Question, see
		// DESIGN.md): a literal with a "." is float, otherwise int.
		if el.Number.HasDot {
			return "float"
		}
		return "int"
	case ast.ElemString:
		return "string"
	case ast.ElemParen:
		return a.resolveExprType(file, ns, scope, el.Paren)
	case ast.ElemVar:
		return a.resolveVarRefType(el.Var, scope)
	case ast.ElemCall:
		return a.resolveCallType(file, ns, scope, el.Call)
	}
	return ""
}

// resolveVarRefType resolves a dotted/scoped variable reference: the
// first scope component must be a visible variable; every subsequent
// scope or field component walks an attribute access on the preceding
// type (namespace separators and field accessors are never interleaved,
// so Scope is resolved first, then Fields — matching the parser's
// VarRef shape).
func (a *analyzer) resolveVarRefType(v *ast.VarRef, scope *VarScope) string {
	if len(v.Scope) == 0 {
		return ""
	}
	result, ok := scope.Lookup(v.Scope[0])
	if !ok {
		if !v.Root && len(v.Scope) == 1 && len(v.Fields) == 0 && (v.Scope[0] == "true" || v.Scope[0] == "false") {
			return "bool"
		}
		msg := suggestName("Unresolved name ["+v.Scope[0]+"]", v.Scope[0], scope.Names())
		a.diags.Addf(diag.CodeUnresolvedName, msg, v.Tok)
		return ""
	}
	for _, part := range v.Scope[1:] {
		result = a.resolveMember(result, part, v.Tok)
		if result == "" {
			return ""
		}
	}
	for _, field := range v.Fields {
		result = a.resolveMember(result, field, v.Tok)
		if result == "" {
			return ""
		}
	}
	return result
}

func (a *analyzer) resolveMember(typeName, member string, tok token.Token) string {
	t := a.universe.Types[typeName]
	if t == nil {
		names := make([]string, 0, len(a.universe.Types))
		for n := range a.universe.Types {
			names = append(names, n)
		}
		msg := suggestName("Unresolved type ["+typeName+"]", typeName, names)
		a.diags.Addf(diag.CodeUnresolvedName, msg, tok)
		return ""
	}
	attr, ok := t.Attr(member)
	if !ok {
		names := make([]string, 0, len(t.Attrs))
		for _, at := range t.Attrs {
			names = append(names, at.Name)
		}
		msg := suggestName("Type ["+typeName+"] has no member ["+member+"]", member, names)
		a.diags.Addf(diag.CodeUnresolvedName, msg, tok)
		return ""
	}
	return attr.Type
}

// resolveCallType resolves a symbol call's overload by matching every
// argument's type against each namespace-search candidate's parameter
// list (via the conversion table), tie-breaking toward exact matches.
// The call's type is the selected overload's return type, further
// reduced by any trailing accessor chain.
func (a *analyzer) resolveCallType(file string, ns NamespaceStack, scope *VarScope, c *ast.CallExpr) string {
	argTypes := make([]string, 0, len(c.Args))
	for i := range c.Args {
		t := a.resolveExprType(file, ns, scope, &c.Args[i])
		if t == "" {
			return ""
		}
		argTypes = append(argTypes, t)
	}

	name := strings.Join(c.Scope, "::")
	var candidates []string
	if c.Root {
		candidates = []string{name}
	} else {
		candidates = ns.candidates(name)
	}

	var best *Func
	bestScore := -1
	for _, qualified := range candidates {
		for _, f := range a.universe.Functions[qualified] {
			score, ok := a.matchOverload(f, argTypes)
			if !ok {
				continue
			}
			if score > bestScore {
				best, bestScore = f, score
			}
		}
	}

	if best == nil {
		msg := fmt.Sprintf("No overload of [%s] accepts argument types %v", name, argTypes)
		if _, known := a.universe.Functions[name]; !known {
			names := make([]string, 0, len(a.universe.Functions))
			for n := range a.universe.Functions {
				names = append(names, n)
			}
			msg = suggestName(msg, name, names)
		}
		a.diags.Addf(diag.CodeArgumentMismatch, msg, c.Tok)
		return ""
	}

	result := best.ReturnType
	for _, field := range c.Fields {
		result = a.resolveMember(result, field, c.Tok)
		if result == "" {
			return ""
		}
	}
	return result
}

// matchOverload reports whether f accepts argTypes (via exact match or
// the conversion table), and a score rewarding exact matches so the
// resolver can tie-break toward the most specific candidate.
func (a *analyzer) matchOverload(f *Func, argTypes []string) (int, bool) {
	if len(f.Params) != len(argTypes) {
		return 0, false
	}
	score := 0
	for i, want := range f.Params {
		got := argTypes[i]
		switch {
		case got == want:
			score++
		case a.universe.ConvertibleTo(got, want):
			// accepted, no score bump
		default:
			return 0, false
		}
	}
	return score, true
}

// resolveConditionType resolves a Condition's overall type. Each
// ConditionElement with a comparator produces a bool; a bare element
// (no comparator) passes through its own expression type, which the
// caller checks is bool. Elements chained by && / || must both be bool,
// and the combination itself is bool.
func (a *analyzer) resolveConditionType(file string, ns NamespaceStack, scope *VarScope, cond *ast.Condition) string {
	result := a.resolveConditionElementType(file, ns, scope, &cond.Elements[0])
	if result == "" {
		return ""
	}
	for i, op := range cond.Ops {
		next := &cond.Elements[i+1]
		nextType := a.resolveConditionElementType(file, ns, scope, next)
		if nextType == "" {
			return ""
		}
		if result != "bool" || nextType != "bool" {
			combinator := op
			if combinator == "" {
				combinator = "&&"
			}
			a.diags.Addf(diag.CodeIncompatibleConversion,
				fmt.Sprintf("Cannot combine [%s] and [%s] with [%s]", result, nextType, combinator), cond.Tok)
			return ""
		}
		result = "bool"
	}
	return result
}

func (a *analyzer) resolveConditionElementType(file string, ns NamespaceStack, scope *VarScope, el *ast.ConditionElement) string {
	lhsType := a.resolveExprType(file, ns, scope, &el.LHS)
	if lhsType == "" {
		return ""
	}
	if el.Op == "" {
		return lhsType
	}
	lhs := a.universe.Types[lhsType]
	if lhs == nil || !lhs.CompareOps[el.Op] {
		a.diags.Addf(diag.CodeUnsupportedOperator, "Type ["+lhsType+"] does not support comparator ["+el.Op+"]", el.Tok)
		return ""
	}
	if el.RHS != nil {
		rhsType := a.resolveExprType(file, ns, scope, el.RHS)
		if rhsType == "" {
			return ""
		}
		if a.promote(lhsType, rhsType) == "" {
			a.diags.Addf(diag.CodeIncompatibleConversion,
				"Cannot compare ["+lhsType+"] with ["+rhsType+"]", el.Tok)
			return ""
		}
	}
	return "bool"
}
