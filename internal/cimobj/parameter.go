package cimobj

import (
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/ident"
)

// Parameter is a formal parameter of a method declaration, or an
// actual argument/return value of a method invocation (spec §3). The
// same type is reused for both: a declaration has no Value, an
// invocation's input/output arguments do.
type Parameter struct {
	Name       string
	Type       cimtype.Kind
	IsArray    bool
	RefClass   string // target class name when Type == cimtype.KindReference
	Value      cimtype.Value
	Qualifiers *ident.Map[*Qualifier]
}

// NewParameter constructs a parameter declaration with no qualifiers set.
func NewParameter(name string, kind cimtype.Kind, isArray bool) *Parameter {
	return &Parameter{
		Name:       name,
		Type:       kind,
		IsArray:    isArray,
		Qualifiers: ident.NewMap[*Qualifier](),
	}
}

// WithValue returns p with its Value set, for use as an actual argument.
func (p *Parameter) WithValue(v cimtype.Value) *Parameter {
	p.Value = v
	return p
}

// Qualifier looks up a qualifier by name, case-insensitively.
func (p *Parameter) Qualifier(name string) (*Qualifier, bool) {
	return p.Qualifiers.Get(name)
}

// SetQualifier sets (or overwrites) a qualifier on the parameter.
func (p *Parameter) SetQualifier(q *Qualifier) {
	p.Qualifiers.Set(q.Name, q)
}

// IsIn reports whether the parameter carries a true-valued In
// qualifier; DSP0004 §5.6 defaults an unqualified parameter to IN.
func (p *Parameter) IsIn() bool {
	q, ok := p.Qualifiers.Get("In")
	if !ok {
		return true
	}
	b, ok := q.Value.(cimtype.Boolean)
	return !ok || bool(b)
}

// IsOut reports whether the parameter carries a true-valued Out qualifier.
func (p *Parameter) IsOut() bool {
	q, ok := p.Qualifiers.Get("Out")
	if !ok || q.Value == nil {
		return false
	}
	b, ok := q.Value.(cimtype.Boolean)
	return ok && bool(b)
}

// Clone returns a copy of p with its own qualifier map.
func (p *Parameter) Clone() *Parameter {
	return &Parameter{
		Name:       p.Name,
		Type:       p.Type,
		IsArray:    p.IsArray,
		RefClass:   p.RefClass,
		Value:      p.Value,
		Qualifiers: p.Qualifiers.Clone(),
	}
}

// Equal reports whether two parameters have the same name, type, and value.
func (p *Parameter) Equal(o *Parameter) bool {
	if p == nil || o == nil {
		return p == o
	}
	if !ident.Equal(p.Name, o.Name) || p.Type != o.Type || p.IsArray != o.IsArray {
		return false
	}
	if p.Value == nil || o.Value == nil {
		return p.Value == nil && o.Value == nil
	}
	return p.Value.Equal(o.Value)
}
