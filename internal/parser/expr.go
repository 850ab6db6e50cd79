package parser

import (
	"strconv"
	"strings"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/token"
)

// parseExpr parses a left-to-right sequence of elements separated by
// Operator tokens, grounded on LexerChecker::parseExpression. Unlike
// the original's flat open-parenthesis counter, a parenthesized
// sub-expression is parsed recursively into one Paren element — an
// equivalent grammar expressed as a tree rather than a running count,
// which this AST's shape calls for. An empty "()" is diagnosed and
// unwinds the current statement, matching the original throwing on the
// same condition.
func (p *Parser) parseExpr() ast.Expr {
	start := p.current()
	var elements []ast.Element
	var ops []string

	for {
		elements = append(elements, p.parseElement())

		if p.current().Category == token.Operator {
			ops = append(ops, p.current().Text)
			p.advance()
			continue
		}
		break
	}

	return ast.Expr{Elements: elements, Ops: ops, Tok: start}
}

func (p *Parser) parseElement() ast.Element {
	tok := p.current()
	switch tok.Category {
	case token.OpenParenthesis:
		if p.at(1).Category == token.CloseParenthesis {
			p.fail(diag.CodeEmptyParens, "Unexpected couple token '()'.", tok)
		}
		p.advance()
		inner := p.parseExpr()
		p.must(token.CloseParenthesis, "Expected a close parenthesis.")
		return ast.Element{Paren: &inner}
	case token.Number:
		p.advance()
		return ast.Element{Number: &ast.NumberLit{Text: tok.Text, HasDot: strings.Contains(tok.Text, "."), Tok: tok}}
	case token.StringLiteral:
		p.advance()
		return ast.Element{String: &ast.StringLit{Value: strings.Trim(tok.Text, `"`), Tok: tok}}
	case token.Identifier, token.NamespaceSeparator:
		if p.describeSymbolCall() {
			call := p.parseSymbolCall()
			return ast.Element{Call: call}
		}
		return ast.Element{Var: p.parseVarRef()}
	default:
		p.fail(diag.CodeUnexpectedToken, "Expected an expression.", tok)
		return ast.Element{}
	}
}

// parseVarRef parses a dotted/scoped variable reference, grounded on
// LexerChecker::parseVariableExpressionValueInstruction.
func (p *Parser) parseVarRef() *ast.VarRef {
	tok := p.current()
	root, scope := p.parseScopedPathMust()
	fields := p.parseAccessorChain()
	return &ast.VarRef{Root: root, Scope: scope, Fields: fields, Tok: tok}
}

// parseScopedPathMust is parseScopedPath's bailout-on-failure sibling,
// used within expression/statement parsing.
func (p *Parser) parseScopedPathMust() (root bool, parts []string) {
	if p.current().Category == token.NamespaceSeparator {
		root = true
		p.advance()
	}
	parts = append(parts, p.must(token.Identifier, "Expected an identifier token.").Text)
	for p.current().Category == token.NamespaceSeparator {
		p.advance()
		parts = append(parts, p.must(token.Identifier, "Expected an identifier token.").Text)
	}
	return root, parts
}

// parseSymbolCall parses "Path ( Args,* )", grounded on
// LexerChecker::parseSymbolCallInstruction /
// parseSymbolCallNameInstruction.
func (p *Parser) parseSymbolCall() *ast.CallExpr {
	tok := p.current()
	root, scope := p.parseScopedPathMust()
	result := &ast.CallExpr{Root: root, Scope: scope, Tok: tok}
	p.must(token.OpenParenthesis, "Expected an open parenthesis.")
	for p.hasNext() && p.current().Category != token.CloseParenthesis {
		if len(result.Args) != 0 {
			p.must(token.Comma, "Expected a comma.")
		}
		result.Args = append(result.Args, p.parseExpr())
	}
	p.must(token.CloseParenthesis, "Expected a close parenthesis.")
	result.Fields = p.parseAccessorChain()
	return result
}

// numberValue parses a NumberLit's text as a float64, for constant
// folding contexts that need the literal's value (array-size bound
// checks use strconv directly on the raw text instead; this exists for
// completeness of the literal leaf).
func numberValue(n *ast.NumberLit) (float64, error) {
	return strconv.ParseFloat(n.Text, 64)
}

// parseCondition parses one or more ConditionElements chained by &&/||
// (ConditionOperator) tokens, with a bare run of ComparatorOperator
// tokens also accepted as an implicit-&& chain for elements that omit
// the combinator entirely.
func (p *Parser) parseCondition() ast.Condition {
	tok := p.current()
	result := ast.Condition{Tok: tok}
	result.Elements = append(result.Elements, p.parseConditionElement())
	for p.current().Category == token.ComparatorOperator || p.current().Category == token.ConditionOperator {
		op := p.current()
		p.advance()
		result.Elements = append(result.Elements, p.parseConditionElement())
		if op.Category == token.ConditionOperator {
			result.Ops = append(result.Ops, op.Text)
		} else {
			result.Ops = append(result.Ops, "")
		}
	}
	return result
}

func (p *Parser) parseConditionElement() ast.ConditionElement {
	tok := p.current()
	elem := ast.ConditionElement{Tok: tok}
	elem.LHS = p.parseExpr()
	if p.current().Category != token.CloseParenthesis && p.current().Category != token.ConditionOperator {
		op := p.must(token.ComparatorOperator, "Expected a valid comparator operator token.")
		elem.Op = op.Text
		rhs := p.parseExpr()
		elem.RHS = &rhs
	}
	return elem
}
