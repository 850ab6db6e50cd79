package parser

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/token"
)

// parseTypeRef parses an optional leading "::" followed by a
// "::"-separated identifier path, grounded on
// LexerChecker::parseTypeInstruction.
func (p *Parser) parseTypeRef() ast.TypeRef {
	var ref ast.TypeRef
	tok := p.current()
	if p.current().Category == token.NamespaceSeparator {
		ref.Root = true
		p.advance()
	}
	if id, ok := p.expect(token.Identifier, "Expected an identifier token."); ok {
		ref.Parts = append(ref.Parts, id.Text)
	}
	for p.current().Category == token.NamespaceSeparator {
		p.advance()
		if id, ok := p.expect(token.Identifier, "Expected an identifier token."); ok {
			ref.Parts = append(ref.Parts, id.Text)
		}
	}
	ref.Tok = tok
	return ref
}

// parseScopedPath parses an optional leading "::" and a
// "::"-separated identifier run, returning the component texts. Used
// for variable references and symbol call names, which share this
// shape (parseVariableExpressionValueInstruction /
// parseSymbolCallNameInstruction).
func (p *Parser) parseScopedPath() (root bool, parts []string) {
	if p.current().Category == token.NamespaceSeparator {
		root = true
		p.advance()
	}
	if id, ok := p.expect(token.Identifier, "Expected an identifier token."); ok {
		parts = append(parts, id.Text)
	}
	for p.current().Category == token.NamespaceSeparator {
		p.advance()
		if id, ok := p.expect(token.Identifier, "Expected an identifier token."); ok {
			parts = append(parts, id.Text)
		}
	}
	return root, parts
}

// parseAccessorChain consumes zero or more ".Identifier" accessors.
func (p *Parser) parseAccessorChain() []string {
	var fields []string
	for p.current().Category == token.Accessor {
		p.advance()
		if id, ok := p.expect(token.Identifier, "Expected an identifier token."); ok {
			fields = append(fields, id.Text)
		}
	}
	return fields
}

// describeSymbolCall reports whether the token stream starting at the
// cursor names a symbol call: an optional "::", an Identifier
// ("::"Identifier)* run, then "(". Grounded on
// LexerChecker::describeSymbolCallName — pure lookahead, no consumption.
func (p *Parser) describeSymbolCall() bool {
	offset := 0
	if p.at(offset).Category == token.NamespaceSeparator {
		offset++
	}
	if p.at(offset).Category != token.Identifier {
		return false
	}
	offset++
	for p.at(offset).Category == token.NamespaceSeparator {
		offset++
		if p.at(offset).Category != token.Identifier {
			return false
		}
		offset++
	}
	return p.at(offset).Category == token.OpenParenthesis
}

// describeVariableDeclaration reports whether the token stream starting
// at the cursor names a variable declaration: a type reference followed
// by another identifier. Grounded on
// LexerChecker::describeVariableDeclarationInstruction.
func (p *Parser) describeVariableDeclaration() bool {
	offset := 0
	if p.at(offset).Category == token.NamespaceSeparator {
		offset++
	}
	if p.at(offset).Category != token.Identifier {
		return false
	}
	offset++
	for p.at(offset).Category == token.NamespaceSeparator {
		offset++
		if p.at(offset).Category != token.Identifier {
			return false
		}
		offset++
	}
	return p.at(offset).Category == token.Identifier
}

// describeVariableAssignment reports whether the token stream starting
// at the cursor names an assignment: an Identifier, followed by a run
// of "::"/"." accessors, followed by an Assignator. Grounded on
// LexerChecker::describeVariableAssignationInstruction.
func (p *Parser) describeVariableAssignment() bool {
	offset := 0
	if p.at(offset).Category != token.Identifier {
		return false
	}
	offset++
	for p.at(offset).Category == token.NamespaceSeparator || p.at(offset).Category == token.Accessor {
		offset++
		if p.at(offset).Category != token.Identifier {
			return false
		}
		offset++
	}
	return p.at(offset).Category == token.Assignator
}
