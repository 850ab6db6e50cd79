package sema

import (
	"strings"

	"github.com/lumina-lang/luminac/internal/ast"
)

// NamespaceStack is the ordered stack of enclosing namespace identifiers
// used to form a newly declared name's fully qualified prefix and to
// search imported names outward.
type NamespaceStack []string

// Qualify joins the stack with name to build a fully qualified name for
// a new declaration.
func (ns NamespaceStack) Qualify(name string) string {
	if len(ns) == 0 {
		return name
	}
	return strings.Join(ns, "::") + "::" + name
}

// push returns a copy of ns with name appended, leaving ns unmodified
// (namespaces are walked recursively, so siblings must not see each
// other's frame).
func (ns NamespaceStack) push(name string) NamespaceStack {
	out := make(NamespaceStack, len(ns)+1)
	copy(out, ns)
	out[len(ns)] = name
	return out
}

// candidates returns the search order for resolving an unqualified
// reference "name" against this namespace stack: most-specific first,
// ("A::B::C::N, A::B::N, A::N, N").
func (ns NamespaceStack) candidates(name string) []string {
	out := make([]string, 0, len(ns)+1)
	for i := len(ns); i >= 0; i-- {
		if i == 0 {
			out = append(out, name)
			continue
		}
		out = append(out, strings.Join(ns[:i], "::")+"::"+name)
	}
	return out
}

// resolveTypeRef resolves a TypeRef against the namespace stack,
// returning the fully qualified name of a registered type, or "" if
// none matches. A leading "::" disables the search and requires an
// exact root-qualified match.
func resolveTypeRef(u *Universe, ns NamespaceStack, ref ast.TypeRef) string {
	name := strings.Join(ref.Parts, "::")
	if ref.Root {
		if _, ok := u.Types[name]; ok {
			return name
		}
		return ""
	}
	for _, c := range ns.candidates(name) {
		if _, ok := u.Types[c]; ok {
			return c
		}
	}
	return ""
}

// VarScope is one lexical block's variable frame: names visible in this
// block and every enclosing one, per the statement checks' "fresh inner
// scope that inherits the current scope" rule.
type VarScope struct {
	vars   map[string]string // name -> type name, declared directly in this frame
	parent *VarScope
}

// NewRootScope creates the outermost frame for a function or pipeline
// body, already seeded with the given variables (attribute/constant
// block members, parameters).
func NewRootScope(seed map[string]string) *VarScope {
	vars := make(map[string]string, len(seed))
	for k, v := range seed {
		vars[k] = v
	}
	return &VarScope{vars: vars}
}

// Push opens a fresh inner scope (if/while/for body, for-loop
// initializer) inheriting everything visible in s.
func (s *VarScope) Push() *VarScope {
	return &VarScope{vars: make(map[string]string), parent: s}
}

// Declare adds name with the given type to this exact frame, reporting
// false if it is already declared directly in this frame (shadowing an
// outer frame is allowed; redeclaring within the same frame is not).
func (s *VarScope) Declare(name, typ string) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = typ
	return true
}

// Lookup searches this frame, then each enclosing frame, returning the
// variable's type name and whether it was found.
func (s *VarScope) Lookup(name string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return "", false
}

// Names returns every variable name visible from this scope, across all
// enclosing frames, for did-you-mean suggestions on an unresolved name.
func (s *VarScope) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for cur := s; cur != nil; cur = cur.parent {
		for name := range cur.vars {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
