package parser

import (
	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/mof/token"
)

// parseDeclaration dispatches on the current token to one of
// DSP0004 §5.2's four top-level productions: compiler directive,
// qualifier-type declaration, class declaration, instance declaration.
func (p *Parser) parseDeclaration() ast.Decl {
	if p.curIs(token.HASH) {
		return p.parsePragma()
	}

	var quals *ast.QualifierList
	if p.curIs(token.LBRACKET) {
		quals = p.parseQualifierList()
	}

	switch p.cur.Type {
	case token.QUALIFIER:
		return p.parseQualifierTypeDecl(quals)
	case token.CLASS:
		return p.parseClassDecl(quals)
	case token.INSTANCE:
		return p.parseInstanceDecl(quals)
	default:
		p.fail("expected a qualifier, class, or instance declaration, found %q", p.cur.Literal)
		return nil
	}
}

// parsePragma parses `# pragma name ( value ) ;`. On an `include`
// pragma it resolves and pushes the referenced file and returns nil, so
// the include itself adds no declaration to the unit; any other pragma
// name is kept verbatim on the returned node for the caller to act on
// (e.g. a server-specific `#pragma locale(...)`).
func (p *Parser) parsePragma() ast.Decl {
	tok := ast.Token{Literal: p.cur.Literal, Pos: p.cur.Pos}
	p.expect(token.HASH)
	if !p.expect(token.PRAGMA) {
		p.fail("malformed pragma")
	}

	if !p.curIs(token.IDENT) && p.cur.Type != token.INCLUDE {
		p.fail("expected a pragma name, found %q", p.cur.Literal)
	}
	name := p.cur.Literal
	isInclude := p.cur.Type == token.INCLUDE
	p.nextToken()

	p.expect(token.LPAREN)
	if !p.curIs(token.STRING) {
		p.fail("expected a quoted pragma argument, found %q", p.cur.Literal)
	}
	value := p.cur.Literal
	p.nextToken()
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)

	if isInclude {
		p.resolveInclude(value)
		return nil
	}

	return &ast.Pragma{Token: tok, Name: name, Value: value}
}

func (p *Parser) resolveInclude(name string) {
	path, source, err := p.includer.Resolve(name)
	if err != nil {
		p.errorf("cannot include %q: %s", name, err)
		return
	}
	if p.open[path] {
		p.errorf("include cycle detected: %q is already being compiled", path)
		return
	}
	p.pushInclude(path, source)
}
