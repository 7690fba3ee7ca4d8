package parser

import (
	"strconv"
	"strings"

	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/mof/token"
)

// parseInitializer parses one value-initializer expression (DSP0004
// §5.8): a scalar literal (with adjacent string-literal concatenation),
// an array literal, a `$alias` reference, or NULL.
func (p *Parser) parseInitializer() ast.Initializer {
	switch {
	case p.curIs(token.LBRACE):
		return p.parseArrayLiteral()
	case p.curIs(token.DOLLAR):
		return p.parseReference()
	case p.curIs(token.NULL):
		n := &ast.NullLiteral{TokenPos: ast.Token{Literal: p.cur.Literal, Pos: p.cur.Pos}}
		p.nextToken()
		return n
	case p.curIs(token.MINUS) && (p.peekIs(token.INTEGER) || p.peekIs(token.REAL)):
		tok := p.cur
		p.nextToken()
		lit := &ast.ScalarLiteral{TokenPos: ast.Token{Literal: p.cur.Literal, Pos: tok.Pos}, Kind: p.cur.Type, Literal: "-" + p.cur.Literal}
		p.nextToken()
		return lit
	case p.curIs(token.STRING):
		return p.parseStringLiteral()
	case p.curIs(token.CHAR), p.curIs(token.INTEGER), p.curIs(token.REAL), p.curIs(token.TRUE), p.curIs(token.FALSE):
		lit := &ast.ScalarLiteral{TokenPos: ast.Token{Literal: p.cur.Literal, Pos: p.cur.Pos}, Kind: p.cur.Type, Literal: p.cur.Literal}
		p.nextToken()
		return lit
	default:
		p.fail("expected a value, found %q", p.cur.Literal)
		return nil
	}
}

// parseStringLiteral consumes one or more adjacent STRING tokens,
// concatenating them (DSP0004 §A: "a long string value MAY be broken
// into multiple string literals placed next to each other").
func (p *Parser) parseStringLiteral() ast.Initializer {
	tok := ast.Token{Literal: p.cur.Literal, Pos: p.cur.Pos}
	var sb strings.Builder
	sb.WriteString(p.cur.Literal)
	p.nextToken()
	for p.curIs(token.STRING) {
		sb.WriteString(p.cur.Literal)
		p.nextToken()
	}
	return &ast.ScalarLiteral{TokenPos: tok, Kind: token.STRING, Literal: sb.String()}
}

func (p *Parser) parseArrayLiteral() ast.Initializer {
	tok := ast.Token{Literal: p.cur.Literal, Pos: p.cur.Pos}
	p.expect(token.LBRACE)
	arr := &ast.ArrayLiteral{TokenPos: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		arr.Elements = append(arr.Elements, p.parseInitializer())
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(token.RBRACE) {
		p.fail("unterminated array literal starting at %s", tok.Pos)
	}
	return arr
}

func (p *Parser) parseReference() ast.Initializer {
	tok := ast.Token{Literal: p.cur.Literal, Pos: p.cur.Pos}
	p.expect(token.DOLLAR)
	if !p.curIs(token.IDENT) {
		p.fail("expected an alias name after '$', found %q", p.cur.Literal)
	}
	alias := p.cur.Literal
	p.nextToken()
	return &ast.Reference{TokenPos: tok, Alias: alias}
}

func parseIntLiteral(lit string) int {
	n, _ := strconv.Atoi(lit)
	return n
}
