package parser

import (
	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/mof/token"
)

// parseInstanceDecl parses `[quals] instance of ClassName [as $alias]
// { propertyName = value ; ... } ;` (DSP0004 §5.7).
func (p *Parser) parseInstanceDecl(quals *ast.QualifierList) *ast.InstanceDecl {
	tok := p.cur
	p.expect(token.INSTANCE)
	p.expect(token.OF)
	if !p.curIs(token.IDENT) {
		p.fail("expected a class name, found %q", p.cur.Literal)
	}
	decl := &ast.InstanceDecl{Token: ast.Token{Literal: tok.Literal, Pos: tok.Pos}, Qualifiers: quals, ClassName: p.cur.Literal}
	p.nextToken()

	if p.curIs(token.AS) {
		p.nextToken()
		p.expect(token.DOLLAR)
		if !p.curIs(token.IDENT) {
			p.fail("expected an alias name after 'as $', found %q", p.cur.Literal)
		}
		decl.Alias = p.cur.Literal
		p.nextToken()
	}

	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if v := p.parseInstancePropertyValue(); v != nil {
			decl.Properties = append(decl.Properties, v)
		}
	}
	p.expect(token.RBRACE)
	p.expect(token.SEMICOLON)
	return decl
}

func (p *Parser) parseInstancePropertyValue() (v *ast.InstancePropertyValue) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(syncSignal); !ok {
				panic(r)
			}
			p.synchronizeMember()
			v = nil
		}
	}()

	if p.curIs(token.LBRACKET) {
		p.parseQualifierList() // per-value qualifiers (rare); not retained on instance bindings
	}
	if !p.curIs(token.IDENT) {
		p.fail("expected a property name, found %q", p.cur.Literal)
	}
	v = &ast.InstancePropertyValue{Token: ast.Token{Literal: p.cur.Literal, Pos: p.cur.Pos}, Name: p.cur.Literal}
	p.nextToken()
	p.expect(token.EQUALS)
	v.Value = p.parseInitializer()
	p.expect(token.SEMICOLON)
	return v
}
