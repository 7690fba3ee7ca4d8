// Package ast defines the MOF abstract syntax tree (DSP0004 §5), with
// one node kind per the grammar's compilation-unit-level constructs.
package ast

import (
	"strings"

	"github.com/wbemix/gowbem/internal/mof/token"
)

// Node is the common interface of every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Decl is a top-level declaration that can appear directly in a
// CompilationUnit: a pragma, a qualifier-type declaration, a class
// declaration, or an instance declaration.
type Decl interface {
	Node
	declNode()
}

// CompilationUnit is the root node: the ordered sequence of
// declarations parsed from one MOF source file (DSP0004 §5.2).
type CompilationUnit struct {
	File         string
	Declarations []Decl
}

func (u *CompilationUnit) Pos() token.Position {
	if len(u.Declarations) > 0 {
		return u.Declarations[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (u *CompilationUnit) String() string {
	var sb strings.Builder
	for _, d := range u.Declarations {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Pragma is a compiler directive: `#pragma include ("file.mof")` or
// `#pragma namespace ("root/cimv2")` (DSP0004 §5.2's pragma production,
// generalized beyond just `include` since servers define vendor pragmas
// too — unrecognized pragma names are preserved for the caller to
// interpret or ignore).
type Pragma struct {
	Token Token
	Name  string
	Value string
}

func (p *Pragma) declNode()          {}
func (p *Pragma) Pos() token.Position { return p.Token.Pos }
func (p *Pragma) String() string {
	return "#pragma " + p.Name + "(\"" + p.Value + "\")"
}

// QualifierApplication is one `[Key, Description("x")]`-style qualifier
// name plus optional initializer, attached to a class, property,
// method, parameter, or another qualifier declaration.
type QualifierApplication struct {
	Token Token
	Name  string
	Value Initializer // nil if the qualifier was named with no value
	Flavors []string   // explicit flavor keywords written alongside it
}

func (q *QualifierApplication) Pos() token.Position { return q.Token.Pos }
func (q *QualifierApplication) String() string {
	if q.Value == nil {
		return q.Name
	}
	return q.Name + "(" + q.Value.String() + ")"
}

// QualifierList is the `[...]` block preceding a declaration.
type QualifierList struct {
	Qualifiers []*QualifierApplication
}

func (ql *QualifierList) Get(name string) (*QualifierApplication, bool) {
	if ql == nil {
		return nil, false
	}
	for _, q := range ql.Qualifiers {
		if strings.EqualFold(q.Name, name) {
			return q, true
		}
	}
	return nil, false
}

// QualifierTypeDecl is a `Qualifier Name : Type [= default] [, Scope(...)] [, Flavor(...)];`
// declaration (DSP0004 §5.5).
type QualifierTypeDecl struct {
	Token      Token
	Name       string
	Type       string // CIM type name, e.g. "string", "boolean", "uint32"
	IsArray    bool
	ArraySize  int
	Default    Initializer
	Scopes     []string
	Flavors    []string
}

func (q *QualifierTypeDecl) declNode()          {}
func (q *QualifierTypeDecl) Pos() token.Position { return q.Token.Pos }
func (q *QualifierTypeDecl) String() string {
	return "qualifier " + q.Name + " : " + q.Type
}

// ClassDecl is a `[qualifiers] class Name : Super { members }` declaration
// (DSP0004 §5.3).
type ClassDecl struct {
	Token      Token
	Qualifiers *QualifierList
	Name       string
	Superclass string
	Properties []*PropertyDecl
	Methods    []*MethodDecl
}

func (c *ClassDecl) declNode()          {}
func (c *ClassDecl) Pos() token.Position { return c.Token.Pos }
func (c *ClassDecl) String() string {
	if c.Superclass != "" {
		return "class " + c.Name + " : " + c.Superclass
	}
	return "class " + c.Name
}

// PropertyDecl is one property member of a ClassDecl or InstanceDecl
// body (DSP0004 §5.4): `[qualifiers] Type Name [= default];` or, for a
// reference property, `Type REF Name;`.
type PropertyDecl struct {
	Token      Token
	Qualifiers *QualifierList
	Type       string
	IsArray    bool
	ArraySize  int
	IsRef      bool
	RefClass   string // target class name when IsRef
	Name       string
	Default    Initializer
}

func (p *PropertyDecl) Pos() token.Position { return p.Token.Pos }
func (p *PropertyDecl) String() string      { return p.Type + " " + p.Name }

// ParameterDecl is one formal parameter of a MethodDecl (DSP0004 §5.6).
type ParameterDecl struct {
	Token      Token
	Qualifiers *QualifierList
	Type       string
	IsArray    bool
	IsRef      bool
	RefClass   string
	Name       string
}

func (p *ParameterDecl) Pos() token.Position { return p.Token.Pos }
func (p *ParameterDecl) String() string      { return p.Type + " " + p.Name }

// MethodDecl is one method member of a ClassDecl body (DSP0004 §5.6):
// `[qualifiers] ReturnType Name(parameters);`.
type MethodDecl struct {
	Token      Token
	Qualifiers *QualifierList
	ReturnType string
	Name       string
	Parameters []*ParameterDecl
}

func (m *MethodDecl) Pos() token.Position { return m.Token.Pos }
func (m *MethodDecl) String() string      { return m.ReturnType + " " + m.Name + "(...)" }

// InstanceDecl is an `instance of ClassName { properties };` declaration
// (DSP0004 §5.7), optionally bound to an alias for later reference via
// `as $alias`.
type InstanceDecl struct {
	Token      Token
	Qualifiers *QualifierList
	ClassName  string
	Alias      string // "" if not aliased
	Properties []*InstancePropertyValue
}

func (i *InstanceDecl) declNode()          {}
func (i *InstanceDecl) Pos() token.Position { return i.Token.Pos }
func (i *InstanceDecl) String() string {
	if i.Alias != "" {
		return "instance of " + i.ClassName + " as $" + i.Alias
	}
	return "instance of " + i.ClassName
}

// InstancePropertyValue binds one property name to a value initializer
// inside an InstanceDecl body.
type InstancePropertyValue struct {
	Token Token
	Name  string
	Value Initializer
}

func (v *InstancePropertyValue) Pos() token.Position { return v.Token.Pos }
func (v *InstancePropertyValue) String() string      { return v.Name + " = " + v.Value.String() }

// Token is a position-carrying lexeme; ast nodes keep the minimal slice
// of token.Token needed for error reporting (position and literal),
// without importing the lexer.
type Token struct {
	Literal string
	Pos     token.Position
}
