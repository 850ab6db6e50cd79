// Package parser is the hand-written recursive-descent syntactic
// analyzer. It is grounded directly on LuminaCompiler's
// src/lexer/parsing/*.cpp production functions rather than on the
// teacher repo's declarative grammar (github.com/alecthomas/participle),
// which cannot express this language's "record a diagnostic, discard the
// rest of the line, resume at the next production" recovery rule — see
// DESIGN.md for the full justification.
package parser

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/token"
)

// Parser walks a flat token stream, building top-level declarations and
// recording diagnostics without ever aborting the walk.
type Parser struct {
	file   string
	tokens []token.Token
	index  int
	diags  *diag.Collector
}

// Parse consumes the full token stream, returning every top-level
// declaration it could recover a parse for.
func Parse(file string, tokens []token.Token, diags *diag.Collector) []*ast.Decl {
	p := &Parser{file: file, tokens: tokens, diags: diags}
	return p.parseTopLevel()
}

var noToken = token.Token{Category: token.Unknown, Text: ""}

func (p *Parser) hasNext() bool { return p.index < len(p.tokens) }

// current returns the token at the cursor, or a synthetic empty token
// past end of stream so callers never index out of range.
func (p *Parser) current() token.Token {
	return p.at(0)
}

// at returns the token offset tokens ahead of the cursor without
// consuming anything, mirroring LexerChecker::tokenAtIndex.
func (p *Parser) at(offset int) token.Token {
	i := p.index + offset
	if i < 0 || i >= len(p.tokens) {
		return noToken
	}
	return p.tokens[i]
}

func (p *Parser) advance() { p.index++ }

// skipLine discards every remaining token on the current token's source
// line, the error-recovery resumption point for statement productions.
func (p *Parser) skipLine() {
	if !p.hasNext() {
		return
	}
	line := p.current().Pos.Line
	for p.hasNext() && p.current().Pos.Line == line {
		p.advance()
	}
}

// expect consumes and returns the current token if it has category cat,
// else records a diagnostic naming the expectation and returns the
// token unconsumed (the caller's recovery path is responsible for
// calling skipLine).
func (p *Parser) expect(cat token.Category, message string) (token.Token, bool) {
	tok := p.current()
	if tok.Category != cat {
		p.diags.Addf(diag.CodeUnexpectedToken, message, tok)
		return tok, false
	}
	p.advance()
	return tok, true
}

// bailout is panicked by must/fail to unwind to the nearest statement
// boundary, mirroring LexerChecker's use of C++ exceptions
// (Lumina::TokenBasedError) to abort a deeply-nested production and let
// the enclosing try/catch perform skipLine-based recovery. Top-level
// declaration productions use the non-panicking expect/expectAny
// instead, since they hand-recover at each step (see decl.go).
type bailout struct{}

// fail records a diagnostic and unwinds to the nearest recover point.
func (p *Parser) fail(code, message string, tok token.Token) {
	p.diags.Addf(code, message, tok)
	panic(bailout{})
}

// must is expect for productions that cannot sensibly continue on
// failure (expression and statement internals): it records a diagnostic
// and unwinds rather than returning an ok flag.
func (p *Parser) must(cat token.Category, message string) token.Token {
	tok := p.current()
	if tok.Category != cat {
		p.fail(diag.CodeUnexpectedToken, message, tok)
	}
	p.advance()
	return tok
}

// recoverStatement runs fn, catching a bailout and skipping to the end
// of the current line, exactly like parseSymbolBodyInstruction's
// per-element try/catch.
func (p *Parser) recoverStatement(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.skipLine()
		}
	}()
	fn()
}

// expectAny is expect for an alternation of acceptable categories.
func (p *Parser) expectAny(cats []token.Category, message string) (token.Token, bool) {
	tok := p.current()
	for _, c := range cats {
		if tok.Category == c {
			p.advance()
			return tok, true
		}
	}
	p.diags.Addf(diag.CodeUnexpectedToken, message, tok)
	return tok, false
}

// parseTopLevel dispatches on the current token's category, grounded
// on LuminaCompiler::Lexer::checkGrammar's top-level switch.
func (p *Parser) parseTopLevel() []*ast.Decl {
	var decls []*ast.Decl
	for p.hasNext() {
		switch p.current().Category {
		case token.SingleLineComment, token.MultiLineCommentStart, token.Comment, token.MultiLineCommentStop:
			p.advance()
		case token.Include:
			decls = append(decls, &ast.Decl{Include: p.parseInclude()})
		case token.PipelineFlow:
			decls = append(decls, p.parsePipelineFlowOrBody())
		case token.StructureBlock:
			decls = append(decls, &ast.Decl{Structure: p.parseBlock(token.StructureBlock, "struct")})
		case token.AttributeBlock:
			decls = append(decls, &ast.Decl{AttributeBlock: p.parseBlock(token.AttributeBlock, "AttributeBlock")})
		case token.ConstantBlock:
			decls = append(decls, &ast.Decl{ConstantBlock: p.parseBlock(token.ConstantBlock, "ConstantBlock")})
		case token.Texture:
			decls = append(decls, &ast.Decl{Texture: p.parseTexture()})
		case token.Namespace:
			decls = append(decls, &ast.Decl{Namespace: p.parseNamespace()})
		case token.Identifier, token.NamespaceSeparator:
			decls = append(decls, &ast.Decl{Symbol: p.parseSymbol()})
		default:
			p.diags.Addf(diag.CodeUnexpectedToken, "Unexpected instruction detected", p.current())
			p.skipLine()
		}
	}
	return decls
}
