package parser

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/token"
)

// parseBody parses "{ statements }", grounded on
// LexerChecker::parseSymbolBodyInstruction: every statement is parsed
// under recoverStatement, so one bad statement only loses the rest of
// its own source line, not the whole body.
func (p *Parser) parseBody() []ast.Stmt {
	if _, ok := p.expect(token.OpenCurlyBracket, "Expected an open curly bracket."); !ok {
		p.skipLine()
		return nil
	}
	var body []ast.Stmt
	for p.hasNext() && p.current().Category != token.CloseCurlyBracket {
		before := p.index
		p.recoverStatement(func() {
			if s, ok := p.parseStatement(); ok {
				body = append(body, s)
			}
		})
		if p.index == before {
			p.skipLine()
		}
	}
	p.expect(token.CloseCurlyBracket, "Expected a close curly bracket.")
	return body
}

// parseStatement dispatches on the current token's category, grounded
// on parseSymbolBodyInstruction's inner switch. The second return value
// is false for a token that produced no statement (a skipped comment).
func (p *Parser) parseStatement() (ast.Stmt, bool) {
	switch p.current().Category {
	case token.SingleLineComment, token.MultiLineCommentStart, token.Comment, token.MultiLineCommentStop:
		p.advance()
		return ast.Stmt{}, false
	case token.Identifier, token.NamespaceSeparator:
		switch {
		case p.describeVariableDeclaration():
			return ast.Stmt{VarDecl: p.parseVarDecl()}, true
		case p.describeSymbolCall():
			tok := p.current()
			call := p.parseSymbolCall()
			p.must(token.EndOfSentence, "Expected end of sentence.")
			return ast.Stmt{ExprStmt: &ast.ExprStmt{Expr: ast.Expr{Elements: []ast.Element{{Call: call}}, Tok: tok}, Tok: tok}}, true
		case p.describeVariableAssignment():
			return ast.Stmt{Assign: p.parseAssign()}, true
		default:
			p.fail(diag.CodeUnexpectedToken, "Unexpected token type: "+string(p.current().Category), p.current())
			return ast.Stmt{}, false
		}
	case token.Return:
		return ast.Stmt{Return: p.parseReturn()}, true
	case token.Discard:
		return ast.Stmt{Discard: p.parseDiscard()}, true
	case token.IfStatement:
		return ast.Stmt{If: p.parseIf()}, true
	case token.WhileStatement:
		return ast.Stmt{While: p.parseWhile()}, true
	case token.ForStatement:
		return ast.Stmt{For: p.parseFor()}, true
	default:
		p.fail(diag.CodeUnexpectedToken, "Unexpected token type: "+string(p.current().Category), p.current())
		return ast.Stmt{}, false
	}
}

// parseVarDecl parses "Type Identifier (= Expr)? ;", grounded on
// Lexer::parseVariableDeclarationInstruction.
func (p *Parser) parseVarDecl() *ast.VarDeclStmt {
	tok := p.current()
	result := &ast.VarDeclStmt{Tok: tok}
	result.Type = p.parseTypeRef()
	result.Name = p.must(token.Identifier, "Expected an identifier token.").Text
	if p.current().Category != token.EndOfSentence {
		p.must(token.Assignator, "Expected an assignator token.")
		init := p.parseExpr()
		result.Init = &init
	}
	p.must(token.EndOfSentence, "Expected end of sentence.")
	return result
}

// parseAssign parses "Path Op Expr ;", grounded on
// Lexer::parseVariableAssignationInstruction /
// parseVariableDesignationInstruction.
func (p *Parser) parseAssign() *ast.AssignStmt {
	tok := p.current()
	result := &ast.AssignStmt{Tok: tok}
	result.Path = append(result.Path, p.must(token.Identifier, "Expected an identifier token.").Text)
	for p.current().Category == token.Accessor {
		p.advance()
		result.Path = append(result.Path, p.must(token.Identifier, "Expected an identifier token.").Text)
	}
	result.Op = p.must(token.Assignator, "Expected an assignator token.").Text
	result.Expr = p.parseExpr()
	p.must(token.EndOfSentence, "Expected end of sentence.")
	return result
}

// parseReturn parses "return Expr? ;", grounded on
// Lexer::parseReturnInstruction. The source always parses an argument
// expression; we additionally accept a bare "return;" for void
// functions and pipeline bodies, which the original grammar listing
// does not exercise but void-returning code needs.
func (p *Parser) parseReturn() *ast.ReturnStmt {
	tok := p.current()
	p.must(token.Return, "Expected a return token.")
	result := &ast.ReturnStmt{Tok: tok}
	if p.current().Category != token.EndOfSentence {
		expr := p.parseExpr()
		result.Expr = &expr
	}
	p.must(token.EndOfSentence, "Expected end of sentence.")
	return result
}

// parseDiscard parses "discard ;", grounded on
// Lexer::parseDiscardInstruction.
func (p *Parser) parseDiscard() *ast.DiscardStmt {
	tok := p.current()
	p.must(token.Discard, "Expected a discard token.")
	p.must(token.EndOfSentence, "Expected end of sentence.")
	return &ast.DiscardStmt{Tok: tok}
}

// parseIf parses "if (Cond) Body (else if (Cond) Body)* (else Body)?",
// grounded on LexerChecker::parseIfStatementInstruction.
func (p *Parser) parseIf() *ast.IfStmt {
	tok := p.current()
	p.must(token.IfStatement, "Expected an 'if' statement token.")
	p.must(token.OpenParenthesis, "Expected an open parenthesis.")
	cond := p.parseCondition()
	p.must(token.CloseParenthesis, "Expected a close parenthesis.")
	body := p.parseBody()

	result := &ast.IfStmt{Cond: cond, Body: body, Tok: tok}
	cur := result
	for p.current().Category == token.ElseStatement {
		p.advance()
		if p.current().Category == token.IfStatement {
			elseIfTok := p.current()
			p.advance()
			p.must(token.OpenParenthesis, "Expected an open parenthesis.")
			elseCond := p.parseCondition()
			p.must(token.CloseParenthesis, "Expected a close parenthesis.")
			elseBody := p.parseBody()
			next := &ast.IfStmt{Cond: elseCond, Body: elseBody, Tok: elseIfTok}
			cur.ElseIf = next
			cur = next
			continue
		}
		cur.ElseBody = p.parseBody()
		break
	}
	return result
}

// parseWhile parses "while (Cond) Body", grounded on
// LexerChecker::parseWhileLoopInstruction.
func (p *Parser) parseWhile() *ast.WhileStmt {
	tok := p.current()
	p.must(token.WhileStatement, "Expected a 'while' statement token.")
	p.must(token.OpenParenthesis, "Expected an open parenthesis.")
	cond := p.parseCondition()
	p.must(token.CloseParenthesis, "Expected a close parenthesis.")
	body := p.parseBody()
	return &ast.WhileStmt{Cond: cond, Body: body, Tok: tok}
}

// parseFor parses "for (Init; Cond; Incr) Body", grounded on
// LexerChecker::parseForLoopInstruction.
func (p *Parser) parseFor() *ast.ForStmt {
	tok := p.current()
	result := &ast.ForStmt{Tok: tok}
	p.must(token.ForStatement, "Expected a 'for' statement token.")
	p.must(token.OpenParenthesis, "Expected an open parenthesis.")

	if p.current().Category != token.EndOfSentence {
		if p.describeVariableDeclaration() {
			result.InitDecl = p.parseVarDeclNoSemicolon()
		} else {
			expr := p.parseExpr()
			stmt := ast.Stmt{ExprStmt: &ast.ExprStmt{Expr: expr, Tok: tok}}
			result.InitStmt = &stmt
		}
	}
	p.must(token.EndOfSentence, "Expected end of sentence.")

	if p.current().Category != token.EndOfSentence {
		cond := p.parseCondition()
		result.Cond = &cond
	}
	p.must(token.EndOfSentence, "Expected end of sentence.")

	if p.current().Category != token.CloseParenthesis {
		expr := p.parseExpr()
		stmt := ast.Stmt{ExprStmt: &ast.ExprStmt{Expr: expr, Tok: tok}}
		result.Incr = &stmt
	}
	p.must(token.CloseParenthesis, "Expected a close parenthesis.")

	result.Body = p.parseBody()
	return result
}

// parseVarDeclNoSemicolon is parseVarDecl without the trailing ";",
// used by a for-loop's initializer clause (terminated by the loop's own
// ";" instead).
func (p *Parser) parseVarDeclNoSemicolon() *ast.VarDeclStmt {
	tok := p.current()
	result := &ast.VarDeclStmt{Tok: tok}
	result.Type = p.parseTypeRef()
	result.Name = p.must(token.Identifier, "Expected an identifier token.").Text
	if p.current().Category == token.Assignator {
		p.advance()
		init := p.parseExpr()
		result.Init = &init
	}
	return result
}
