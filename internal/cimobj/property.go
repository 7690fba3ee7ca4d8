package cimobj

import (
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/ident"
)

// Property is a named, typed value slot on a class or instance (spec
// §3). A class-level Property carries no Value (it declares shape
// only); an instance-level Property carries the actual value.
type Property struct {
	Name         string
	Type         cimtype.Kind
	IsArray      bool
	RefClass     string // target class name when Type == cimtype.KindReference
	Value        cimtype.Value
	Qualifiers   *ident.Map[*Qualifier]
	ClassOrigin  string // class that first declared this property
	Propagated   bool   // true if inherited unchanged from ClassOrigin
}

// NewProperty constructs a property declaration with no qualifiers set.
func NewProperty(name string, kind cimtype.Kind, isArray bool) *Property {
	return &Property{
		Name:       name,
		Type:       kind,
		IsArray:    isArray,
		Qualifiers: ident.NewMap[*Qualifier](),
	}
}

// WithValue returns p with its Value set (used when building an
// instance property from a class property declaration).
func (p *Property) WithValue(v cimtype.Value) *Property {
	p.Value = v
	return p
}

// Qualifier looks up a qualifier by name, case-insensitively.
func (p *Property) Qualifier(name string) (*Qualifier, bool) {
	return p.Qualifiers.Get(name)
}

// SetQualifier sets (or overwrites) a qualifier on the property.
func (p *Property) SetQualifier(q *Qualifier) {
	p.Qualifiers.Set(q.Name, q)
}

// IsKey reports whether the property carries a true-valued Key
// qualifier (DSP0004 §5.4 key properties).
func (p *Property) IsKey() bool {
	q, ok := p.Qualifiers.Get("Key")
	if !ok || q.Value == nil {
		return false
	}
	b, ok := q.Value.(cimtype.Boolean)
	return ok && bool(b)
}

// Clone returns a deep-enough copy of p suitable for inheritance into a
// subclass or an instance: qualifiers are copied, the value itself is
// shared (CIM values are treated as immutable once constructed).
func (p *Property) Clone() *Property {
	clone := &Property{
		Name:        p.Name,
		Type:        p.Type,
		IsArray:     p.IsArray,
		RefClass:    p.RefClass,
		Value:       p.Value,
		Qualifiers:  p.Qualifiers.Clone(),
		ClassOrigin: p.ClassOrigin,
		Propagated:  p.Propagated,
	}
	return clone
}

// Equal reports whether two properties have the same name, type, and
// value (qualifiers and origin metadata are not compared).
func (p *Property) Equal(o *Property) bool {
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
