package parser

import (
	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/mof/token"
)

var flavorKeywords = map[token.Type]bool{
	token.ENABLEOVERRIDE: true, token.DISABLEOVERRIDE: true,
	token.RESTRICTED: true, token.TOSUBCLASS: true,
	token.TRANSLATABLE: true, token.TOINSTANCE: true, token.AMENDED: true,
}

// parseQualifierList parses a `[ Key, Description("x") : ToSubclass, ... ]`
// block preceding a class, property, method, parameter, or qualifier-type
// declaration (DSP0004 §5.5's qualifierList production).
func (p *Parser) parseQualifierList() *ast.QualifierList {
	tok := p.cur
	p.expect(token.LBRACKET)
	list := &ast.QualifierList{}
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		list.Qualifiers = append(list.Qualifiers, p.parseQualifierApplication())
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(token.RBRACKET) {
		p.fail("unterminated qualifier list starting at %s", tok.Pos)
	}
	return list
}

func (p *Parser) parseQualifierApplication() *ast.QualifierApplication {
	if !p.curIs(token.IDENT) {
		p.fail("expected a qualifier name, found %q", p.cur.Literal)
	}
	q := &ast.QualifierApplication{Token: ast.Token{Literal: p.cur.Literal, Pos: p.cur.Pos}, Name: p.cur.Literal}
	p.nextToken()

	if p.curIs(token.LPAREN) {
		p.nextToken()
		q.Value = p.parseInitializer()
		p.expect(token.RPAREN)
	}

	if p.curIs(token.COLON) {
		p.nextToken()
		for isFlavorKeyword(p.cur.Type) {
			q.Flavors = append(q.Flavors, p.cur.Literal)
			p.nextToken()
		}
	}
	return q
}

func isFlavorKeyword(t token.Type) bool { return flavorKeywords[t] }

// parseQualifierTypeDecl parses `Qualifier Name : Type [array] [= default]
// [, Scope(...)] [, Flavor(...)] ;` (DSP0004 §5.5). leadingQuals is any
// qualifier list written before the `qualifier` keyword itself — rare
// in practice, but DSP0004's grammar permits it (e.g. re-declaring a
// qualifier type's own flavor defaults via a meta-qualifier).
func (p *Parser) parseQualifierTypeDecl(leadingQuals *ast.QualifierList) *ast.QualifierTypeDecl {
	tok := p.cur
	p.expect(token.QUALIFIER)
	if !p.curIs(token.IDENT) {
		p.fail("expected a qualifier name, found %q", p.cur.Literal)
	}
	decl := &ast.QualifierTypeDecl{Token: ast.Token{Literal: tok.Literal, Pos: tok.Pos}, Name: p.cur.Literal}
	p.nextToken()

	p.expect(token.COLON)
	if !p.curIs(token.IDENT) {
		p.fail("expected a type name, found %q", p.cur.Literal)
	}
	decl.Type = p.cur.Literal
	p.nextToken()

	if p.curIs(token.LBRACKET) {
		p.nextToken()
		decl.IsArray = true
		if p.curIs(token.INTEGER) {
			decl.ArraySize = parseIntLiteral(p.cur.Literal)
			p.nextToken()
		}
		p.expect(token.RBRACKET)
	}

	if p.curIs(token.EQUALS) {
		p.nextToken()
		decl.Default = p.parseInitializer()
	}

	for p.curIs(token.COMMA) {
		p.nextToken()
		p.parseQualifierDeclClause(decl)
	}

	p.expect(token.SEMICOLON)
	return decl
}

// parseQualifierDeclClause parses one `Scope(Class, Property)` or
// `Flavor(ToSubclass, Translatable)` clause following a qualifier-type
// declaration's default value.
func (p *Parser) parseQualifierDeclClause(decl *ast.QualifierTypeDecl) {
	if !p.curIs(token.SCOPE) && !p.curIs(token.FLAVOR) {
		p.fail("expected Scope(...) or Flavor(...), found %q", p.cur.Literal)
	}
	isScope := p.curIs(token.SCOPE)
	p.nextToken()
	p.expect(token.LPAREN)
	for {
		if !p.curIs(token.IDENT) && !p.curIs(token.CLASS) && !isFlavorKeyword(p.cur.Type) {
			p.fail("expected an identifier, found %q", p.cur.Literal)
		}
		name := p.cur.Literal
		if isScope {
			decl.Scopes = append(decl.Scopes, name)
		} else {
			decl.Flavors = append(decl.Flavors, name)
		}
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
}
