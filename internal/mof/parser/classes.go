package parser

import (
	"strings"

	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/mof/token"
)

// parseClassDecl parses `[quals] class Name [: Super] { members } ;`
// (DSP0004 §5.3).
func (p *Parser) parseClassDecl(quals *ast.QualifierList) *ast.ClassDecl {
	tok := p.cur
	p.expect(token.CLASS)
	if !p.curIs(token.IDENT) {
		p.fail("expected a class name, found %q", p.cur.Literal)
	}
	decl := &ast.ClassDecl{Token: ast.Token{Literal: tok.Literal, Pos: tok.Pos}, Qualifiers: quals, Name: p.cur.Literal}
	p.nextToken()

	if p.curIs(token.COLON) {
		p.nextToken()
		if !p.curIs(token.IDENT) {
			p.fail("expected a superclass name, found %q", p.cur.Literal)
		}
		decl.Superclass = p.cur.Literal
		p.nextToken()
	}

	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		p.parseClassMember(decl)
	}
	p.expect(token.RBRACE)
	p.expect(token.SEMICOLON)
	return decl
}

func (p *Parser) parseClassMember(decl *ast.ClassDecl) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(syncSignal); !ok {
				panic(r)
			}
			p.synchronizeMember()
		}
	}()

	var memberQuals *ast.QualifierList
	if p.curIs(token.LBRACKET) {
		memberQuals = p.parseQualifierList()
	}

	if !p.curIs(token.IDENT) {
		p.fail("expected a property or method declaration, found %q", p.cur.Literal)
	}
	typeName := p.cur.Literal
	p.nextToken()

	isRef := false
	refClass := ""
	if p.curIs(token.IDENT) && strings.EqualFold(p.cur.Literal, "ref") {
		isRef = true
		refClass = typeName
		typeName = ""
		p.nextToken()
	}

	if !p.curIs(token.IDENT) {
		p.fail("expected a member name, found %q", p.cur.Literal)
	}
	name := p.cur.Literal
	memberTok := ast.Token{Literal: name, Pos: p.cur.Pos}
	p.nextToken()

	if p.curIs(token.LPAREN) {
		decl.Methods = append(decl.Methods, p.parseMethodDecl(memberTok, memberQuals, typeName, name))
		return
	}

	prop := &ast.PropertyDecl{Token: memberTok, Qualifiers: memberQuals, Type: typeName, Name: name, IsRef: isRef, RefClass: refClass}
	if p.curIs(token.LBRACKET) {
		p.nextToken()
		prop.IsArray = true
		if p.curIs(token.INTEGER) {
			prop.ArraySize = parseIntLiteral(p.cur.Literal)
			p.nextToken()
		}
		p.expect(token.RBRACKET)
	}
	if p.curIs(token.EQUALS) {
		p.nextToken()
		prop.Default = p.parseInitializer()
	}
	p.expect(token.SEMICOLON)
	decl.Properties = append(decl.Properties, prop)
}

func (p *Parser) parseMethodDecl(tok ast.Token, quals *ast.QualifierList, returnType, name string) *ast.MethodDecl {
	m := &ast.MethodDecl{Token: tok, Qualifiers: quals, ReturnType: returnType, Name: name}
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		m.Parameters = append(m.Parameters, p.parseParameterDecl())
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	return m
}

func (p *Parser) parseParameterDecl() *ast.ParameterDecl {
	var quals *ast.QualifierList
	if p.curIs(token.LBRACKET) {
		quals = p.parseQualifierList()
	}
	if !p.curIs(token.IDENT) {
		p.fail("expected a parameter type, found %q", p.cur.Literal)
	}
	typeName := p.cur.Literal
	tok := ast.Token{Literal: typeName, Pos: p.cur.Pos}
	p.nextToken()

	isRef := false
	refClass := ""
	if p.curIs(token.IDENT) && strings.EqualFold(p.cur.Literal, "ref") {
		isRef = true
		refClass = typeName
		typeName = ""
		p.nextToken()
	}

	if !p.curIs(token.IDENT) {
		p.fail("expected a parameter name, found %q", p.cur.Literal)
	}
	param := &ast.ParameterDecl{Token: tok, Qualifiers: quals, Type: typeName, IsRef: isRef, RefClass: refClass, Name: p.cur.Literal}
	p.nextToken()

	if p.curIs(token.LBRACKET) {
		p.nextToken()
		param.IsArray = true
		p.expect(token.RBRACKET)
	}
	return param
}

// synchronizeMember recovers from a malformed class member by skipping
// to the next ';' without leaving the enclosing '{...}', so the
// containing class declaration itself is not abandoned.
func (p *Parser) synchronizeMember() {
	for {
		switch p.cur.Type {
		case token.SEMICOLON:
			p.nextToken()
			return
		case token.RBRACE, token.EOF:
			return
		default:
			p.nextToken()
		}
	}
}
