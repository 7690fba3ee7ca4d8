// Package parser builds a MOF ast.CompilationUnit from source text
// (DSP0004 §5): a two-token (cur/peek) lookahead cursor, accumulated
// errors instead of stopping at the first one, and panic/recover-driven
// synchronization at statement boundaries (here, ';' and '}').
package parser

import (
	"errors"
	"fmt"

	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/mof/lexer"
	"github.com/wbemix/gowbem/internal/mof/token"
	"github.com/wbemix/gowbem/internal/werrors"
)

var errIncludesUnsupported = errors.New("mof: #pragma include is not supported by this compiler configuration")

// Parser parses one top-level MOF file (plus any files it transitively
// includes) into a single flattened ast.CompilationUnit.
type Parser struct {
	includer Includer
	frames   []*frame
	open     map[string]bool // files currently on the include stack, for cycle detection

	cur, peek token.Token
	errors    []error
}

// New constructs a Parser over file's source, using includer to
// resolve any `#pragma include` directives encountered.
func New(file, source string, includer Includer) *Parser {
	if includer == nil {
		includer = NoIncludes{}
	}
	p := &Parser{
		includer: includer,
		frames:   []*frame{{file: file, lex: lexer.New(source)}},
		open:     map[string]bool{file: true},
	}
	p.cur = p.rawNext()
	p.peek = p.rawNext()
	return p
}

// Errors returns every accumulated parse error, in encounter order.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.rawNext()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

// expect advances past cur if it has type t, reporting a MOFParseError
// and returning false otherwise.
func (p *Parser) expect(t token.Type) bool {
	if p.curIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, found %q", t, p.cur.Literal)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &werrors.MOFParseError{
		File:    p.currentFile(),
		Pos:     werrors.Position{Line: p.cur.Pos.Line, Column: p.cur.Pos.Column, Offset: p.cur.Pos.Offset},
		Message: fmt.Sprintf(format, args...),
	})
}

// syncSignal is panicked by parsing helpers that hit an unrecoverable
// local error, unwound by parseDeclaration's recover to the top of the
// per-declaration loop so one bad declaration doesn't abort the unit.
type syncSignal struct{}

func (p *Parser) fail(format string, args ...any) {
	p.errorf(format, args...)
	panic(syncSignal{})
}

// synchronize advances past tokens until it consumes a ';' or '}' or
// reaches EOF, the statement-boundary recovery point DSP0004's flat
// declaration grammar affords (spec.md §4.E).
func (p *Parser) synchronize() {
	for {
		switch p.cur.Type {
		case token.SEMICOLON, token.RBRACE:
			p.nextToken()
			return
		case token.EOF:
			return
		default:
			p.nextToken()
		}
	}
}

// ParseCompilationUnit parses every declaration in the input (and its
// transitive includes) into one ast.CompilationUnit, accumulating
// errors rather than stopping at the first one.
func (p *Parser) ParseCompilationUnit() *ast.CompilationUnit {
	unit := &ast.CompilationUnit{File: p.currentFile()}
	for !p.curIs(token.EOF) {
		if d := p.parseDeclarationRecovering(); d != nil {
			unit.Declarations = append(unit.Declarations, d)
		}
	}
	return unit
}

func (p *Parser) parseDeclarationRecovering() (decl ast.Decl) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(syncSignal); !ok {
				panic(r)
			}
			p.synchronize()
			decl = nil
		}
	}()
	return p.parseDeclaration()
}

// Compile is the package-level convenience entry point: parse file's
// source (resolving includes through includer) and return the
// resulting unit plus any accumulated errors.
func Compile(file, source string, includer Includer) (*ast.CompilationUnit, []error) {
	p := New(file, source, includer)
	unit := p.ParseCompilationUnit()
	return unit, p.Errors()
}
