package ast

import (
	"fmt"
	"strings"

	"github.com/wbemix/gowbem/internal/mof/token"
)

// Initializer is a value expression on the right-hand side of `=`: a
// scalar literal, an array literal, a reference, or NULL (DSP0004 §5.8
// value-initializer production).
type Initializer interface {
	Node
	initializerNode()
}

// ScalarLiteral is a single string/char/integer/real/boolean literal.
type ScalarLiteral struct {
	TokenPos Token
	Kind     token.Type // STRING, CHAR, INTEGER, REAL, TRUE, FALSE
	Literal  string      // raw source text (un-escaped for STRING/CHAR)
}

func (s *ScalarLiteral) initializerNode()        {}
func (s *ScalarLiteral) Pos() token.Position     { return s.TokenPos.Pos }
func (s *ScalarLiteral) String() string          { return s.Literal }

// NullLiteral is the `NULL` initializer.
type NullLiteral struct {
	TokenPos Token
}

func (n *NullLiteral) initializerNode()    {}
func (n *NullLiteral) Pos() token.Position { return n.TokenPos.Pos }
func (n *NullLiteral) String() string      { return "NULL" }

// ArrayLiteral is an `{ v1, v2, ... }` array initializer.
type ArrayLiteral struct {
	TokenPos Token
	Elements []Initializer
}

func (a *ArrayLiteral) initializerNode()    {}
func (a *ArrayLiteral) Pos() token.Position { return a.TokenPos.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Reference is a `$alias` reference to a previously declared, aliased
// InstanceDecl within the same compilation unit, used as a property
// value for a reference-typed property (DSP0004 §5.8).
type Reference struct {
	TokenPos Token
	Alias    string
}

func (r *Reference) initializerNode()    {}
func (r *Reference) Pos() token.Position { return r.TokenPos.Pos }
func (r *Reference) String() string      { return fmt.Sprintf("$%s", r.Alias) }
