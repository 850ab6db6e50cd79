package sema

import (
	"fmt"
	"path/filepath"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/lexer"
	"github.com/lumina-lang/luminac/internal/parser"
	"github.com/lumina-lang/luminac/internal/util/strutil"
	"github.com/lumina-lang/luminac/internal/vfs"
)

// analyzer carries the mutable state threaded through every checker
// call: the universe, diagnostic sink, include resolver and program
// result — all passed explicitly rather than held as package globals,
// per the source's "shared traversal state" design note.
type analyzer struct {
	universe *Universe
	diags    *diag.Collector
	resolver *vfs.Resolver
	program  *Program
}

// workItem is one (file, top-level declaration) pair on the analysis
// worklist. Splicing an include's expansion means inserting its
// workItems immediately after the include's own position in the queue.
type workItem struct {
	file string
	decl *ast.Decl
}

// Analyze tokenizes and parses the entry file, then walks the resulting
// declarations with include splicing and full semantic checking. It
// returns the best-effort Program even when diagnostics were recorded;
// the caller's exit code is driven by diags.Empty(), not by this
// return value.
func Analyze(entryPath string, resolver *vfs.Resolver, diags *diag.Collector) (*Program, error) {
	absEntry, err := filepath.Abs(entryPath)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.Tokenize(absEntry)
	if err != nil {
		return nil, err
	}
	decls := parser.Parse(absEntry, tokens, diags)
	resolver.MarkSeen(absEntry)

	prog := newProgram(absEntry)
	prog.Files = append(prog.Files, absEntry)
	u := NewUniverse()
	prog.Universe = u

	a := &analyzer{universe: u, diags: diags, resolver: resolver, program: prog}

	queue := make([]workItem, 0, len(decls))
	for _, d := range decls {
		queue = append(queue, workItem{absEntry, d})
	}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.decl.Kind() == ast.DeclInclude {
			resolved, expanded := a.expandInclude(item.file, item.decl.Include)
			if resolved == "" {
				continue
			}
			spliced := make([]workItem, 0, len(expanded))
			for _, d := range expanded {
				spliced = append(spliced, workItem{resolved, d})
			}
			queue = append(spliced, queue...)
			continue
		}
		a.checkTopLevel(item.file, nil, item.decl)
	}
	return prog, nil
}

// expandInclude resolves, tokenizes and parses an include target,
// deduplicating by absolute path so the same file is never expanded
// twice. A missing file is diagnosed once and compilation continues.
func (a *analyzer) expandInclude(fromFile string, inc *ast.Include) (string, []*ast.Decl) {
	if inc.Path == "" {
		return "", nil
	}
	resolved, err := a.resolver.Resolve(fromFile, inc.Path, !inc.Angled)
	if err != nil {
		a.diags.Addf(diag.CodeIncludeNotFound, fmt.Sprintf("Include file [%s] not found", strutil.EscapeQuotes(inc.Path)), inc.Tok)
		return "", nil
	}
	if a.resolver.MarkSeen(resolved) {
		return "", nil
	}
	tokens, err := lexer.Tokenize(resolved)
	if err != nil {
		a.diags.Addf(diag.CodeIncludeNotFound, fmt.Sprintf("Include file [%s] not found", strutil.EscapeQuotes(inc.Path)), inc.Tok)
		return "", nil
	}
	decls := parser.Parse(resolved, tokens, a.diags)
	a.program.Files = append(a.program.Files, resolved)
	return resolved, decls
}

// checkTopLevel dispatches a single top-level declaration to its
// checker. ns is the enclosing namespace stack (nil at file scope).
func (a *analyzer) checkTopLevel(file string, ns NamespaceStack, d *ast.Decl) {
	switch d.Kind() {
	case ast.DeclInclude:
		// Only reachable at file scope, handled by the worklist loop.
	case ast.DeclPipelineFlow:
		a.checkPipelineFlow(file, ns, d.PipelineFlow)
	case ast.DeclStructure:
		a.checkBlock(file, ns, d.Structure, KindStruct)
	case ast.DeclAttributeBlock:
		a.checkBlock(file, ns, d.AttributeBlock, KindAttribute)
	case ast.DeclConstantBlock:
		a.checkBlock(file, ns, d.ConstantBlock, KindConstant)
	case ast.DeclTexture:
		a.checkTexture(file, ns, d.Texture)
	case ast.DeclSymbol:
		a.checkSymbol(file, ns, d.Symbol)
	case ast.DeclPipelineBody:
		a.checkPipelineBody(file, ns, d.PipelineBody)
	case ast.DeclNamespace:
		inner := ns.push(d.Namespace.Name)
		for _, child := range d.Namespace.Decls {
			a.checkTopLevel(file, inner, child)
		}
	}
}
