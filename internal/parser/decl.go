package parser

import (
	"strconv"
	"strings"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/token"
)

// parseInclude parses "#include "path"" or "#include <name>", grounded
// on LexerChecker::parseIncludeInstruction.
func (p *Parser) parseInclude() *ast.Include {
	tok := p.current()
	p.expect(token.Include, "Unexpected token found.")
	pathTok, ok := p.expectAny([]token.Category{token.StringLiteral, token.IncludeLiteral},
		"Expected a valid include file token.")
	if !ok {
		p.skipLine()
		return &ast.Include{Tok: tok}
	}
	if pathTok.Category == token.IncludeLiteral {
		return &ast.Include{Path: strings.Trim(pathTok.Text, "<>"), Angled: true, Tok: tok}
	}
	return &ast.Include{Path: strings.Trim(pathTok.Text, `"`), Angled: false, Tok: tok}
}

// parsePipelineFlowOrBody distinguishes "Input -> VertexPass : ..." from
// "VertexPass() { ... }" by looking one token ahead, per the dispatch
// table's "Pipeline keyword followed by -> / (" rule.
func (p *Parser) parsePipelineFlowOrBody() *ast.Decl {
	if p.at(1).Category == token.PipelineFlowSeparator {
		return &ast.Decl{PipelineFlow: p.parsePipelineFlow()}
	}
	return &ast.Decl{PipelineBody: p.parsePipelineBody()}
}

// parsePipelineFlow parses "From -> To : Type Name ;", grounded on
// LexerChecker::parsePipelineFlowInstruction.
func (p *Parser) parsePipelineFlow() *ast.PipelineFlow {
	result := &ast.PipelineFlow{Tok: p.current()}
	from, ok := p.expect(token.PipelineFlow, "Expected a pipeline flow token.")
	if !ok {
		p.skipLine()
		return result
	}
	result.From = from
	if _, ok := p.expect(token.PipelineFlowSeparator, "Expected a pipeline flow separator token."); !ok {
		p.skipLine()
		return result
	}
	to, ok := p.expect(token.PipelineFlow, "Expected a pipeline flow token.")
	if !ok {
		p.skipLine()
		return result
	}
	result.To = to
	if _, ok := p.expect(token.Separator, "Expected a separator token."); !ok {
		p.skipLine()
		return result
	}
	result.Type = p.parseTypeRef()
	if name, ok := p.expect(token.Identifier, "Expected an identifier name."); ok {
		result.Name = name.Text
	}
	if _, ok := p.expect(token.EndOfSentence, "Expected end of sentence."); !ok {
		p.skipLine()
	}
	return result
}

// parsePipelineBody parses "Stage ( ) { body }", grounded on
// LexerChecker::parsePipelineBodyInstruction.
func (p *Parser) parsePipelineBody() *ast.PipelineBody {
	result := &ast.PipelineBody{Tok: p.current()}
	stage, ok := p.expect(token.PipelineFlow, "Expected a pipeline flow token.")
	if !ok {
		p.skipLine()
		return result
	}
	result.Stage = stage
	if _, ok := p.expect(token.OpenParenthesis, "Expected an open parenthesis."); !ok {
		p.skipLine()
		return result
	}
	if _, ok := p.expect(token.CloseParenthesis, "Expected a close parenthesis."); !ok {
		p.skipLine()
		return result
	}
	result.Body = p.parseBody()
	return result
}

// parseBlockElement parses "Type Identifier ([Number])? ;", grounded on
// LexerChecker::parseBlockElementInstruction.
func (p *Parser) parseBlockElement() ast.BlockElement {
	result := ast.BlockElement{Tok: p.current()}
	result.Type = p.parseTypeRef()
	if name, ok := p.expect(token.Identifier, "Expected an identifier name."); ok {
		result.Name = name.Text
	}
	if p.current().Category != token.EndOfSentence {
		if _, ok := p.expect(token.OpenBracket, "Expected an opening bracket to define an array or an end of sentence."); ok {
			if numTok, ok := p.expect(token.Number, "Expected a number of elements for the array."); ok {
				if n, err := strconv.Atoi(numTok.Text); err == nil {
					result.ArraySize = &n
				}
			}
			p.expect(token.CloseBracket, "Expected a closing bracket.")
		}
	}
	p.expect(token.EndOfSentence, "Expected end of sentence.")
	return result
}

// parseBlock parses the shared struct/AttributeBlock/ConstantBlock
// shape: keyword, name, brace-delimited elements, grounded on
// LexerChecker::parseStructureBlockInstruction and siblings. Individual
// elements are recovered independently (matching the constant-block
// variant's per-element try/catch), so one bad element does not lose
// the rest of the block.
func (p *Parser) parseBlock(kw token.Category, message string) *ast.Block {
	result := &ast.Block{Tok: p.current()}
	if _, ok := p.expect(kw, "Expected a "+message+" token."); !ok {
		p.skipLine()
		return result
	}
	if name, ok := p.expect(token.Identifier, "Expected a "+message+" type name."); ok {
		result.Name = name.Text
	}
	if _, ok := p.expect(token.OpenCurlyBracket, "Expected an open curly bracket."); !ok {
		p.skipLine()
		return result
	}
	for p.hasNext() && p.current().Category != token.CloseCurlyBracket {
		before := p.index
		result.Elements = append(result.Elements, p.parseBlockElement())
		if p.index == before {
			p.skipLine()
		}
	}
	p.expect(token.CloseCurlyBracket, "Expected a close curly bracket.")
	p.expect(token.EndOfSentence, "Expected end of sentence.")
	return result
}

// parseTexture parses "Texture Identifier ;", grounded on
// LexerChecker::parseTextureInstruction.
func (p *Parser) parseTexture() *ast.Texture {
	result := &ast.Texture{Tok: p.current()}
	if _, ok := p.expect(token.Texture, "Expected a texture token."); !ok {
		p.skipLine()
		return result
	}
	if name, ok := p.expect(token.Identifier, "Expected an identifier token."); ok {
		result.Name = name.Text
	}
	p.expect(token.EndOfSentence, "Expected end of sentence.")
	return result
}

// parseNamespace parses "namespace Identifier { decls }", grounded on
// the Lexer::parseNamespace top-level loop, reusing the same dispatch
// as parseTopLevel restricted to the productions namespaces may nest
// (struct/AttributeBlock/ConstantBlock/Texture/Symbol/nested namespace).
func (p *Parser) parseNamespace() *ast.Namespace {
	result := &ast.Namespace{Tok: p.current()}
	if _, ok := p.expect(token.Namespace, "Expected a 'namespace' token."); !ok {
		p.skipLine()
		return result
	}
	if name, ok := p.expect(token.Identifier, "Expected a namespace name."); ok {
		result.Name = name.Text
	}
	if _, ok := p.expect(token.OpenCurlyBracket, "Expected an open curly bracket."); !ok {
		p.skipLine()
		return result
	}
	for p.hasNext() && p.current().Category != token.CloseCurlyBracket {
		before := p.index
		switch p.current().Category {
		case token.SingleLineComment, token.MultiLineCommentStart, token.Comment, token.MultiLineCommentStop:
			p.advance()
			continue
		case token.StructureBlock:
			result.Decls = append(result.Decls, &ast.Decl{Structure: p.parseBlock(token.StructureBlock, "struct")})
		case token.AttributeBlock:
			result.Decls = append(result.Decls, &ast.Decl{AttributeBlock: p.parseBlock(token.AttributeBlock, "AttributeBlock")})
		case token.ConstantBlock:
			result.Decls = append(result.Decls, &ast.Decl{ConstantBlock: p.parseBlock(token.ConstantBlock, "ConstantBlock")})
		case token.Texture:
			result.Decls = append(result.Decls, &ast.Decl{Texture: p.parseTexture()})
		case token.Namespace:
			result.Decls = append(result.Decls, &ast.Decl{Namespace: p.parseNamespace()})
		case token.Identifier, token.NamespaceSeparator:
			result.Decls = append(result.Decls, &ast.Decl{Symbol: p.parseSymbol()})
		default:
			p.diags.Addf(diag.CodeUnexpectedToken, "Unexpected token", p.current())
			p.skipLine()
		}
		if p.index == before {
			p.skipLine()
		}
	}
	p.expect(token.CloseCurlyBracket, "Expected a close curly bracket.")
	return result
}

// parseSymbol parses "Type Identifier ( params ) { body }", grounded on
// LexerChecker::parseSymbolInstruction.
func (p *Parser) parseSymbol() *ast.Symbol {
	result := &ast.Symbol{Tok: p.current()}
	result.ReturnType = p.parseTypeRef()
	if name, ok := p.expect(token.Identifier, "Expected an identifier token."); ok {
		result.Name = name.Text
	}
	if _, ok := p.expect(token.OpenParenthesis, "Expected an open parenthesis."); !ok {
		p.skipLine()
		return result
	}
	for p.hasNext() && p.current().Category != token.CloseParenthesis {
		pType := p.parseTypeRef()
		pName := ""
		if id, ok := p.expect(token.Identifier, "Expected an identifier token."); ok {
			pName = id.Text
		}
		result.Params = append(result.Params, ast.Param{Type: pType, Name: pName})
		if p.current().Category != token.CloseParenthesis {
			if _, ok := p.expect(token.Comma, "Expected a comma."); !ok {
				break
			}
		}
	}
	p.expect(token.CloseParenthesis, "Expected a close parenthesis.")
	result.Body = p.parseBody()
	return result
}
