package cimobj

import (
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/ident"
)

// Scope names a schema element a qualifier declaration may be applied
// to (DSP0004 §5.5, the SCOPE clause).
type Scope string

const (
	ScopeClass      Scope = "CLASS"
	ScopeAssociation Scope = "ASSOCIATION"
	ScopeIndication Scope = "INDICATION"
	ScopeProperty   Scope = "PROPERTY"
	ScopeReference  Scope = "REFERENCE"
	ScopeMethod     Scope = "METHOD"
	ScopeParameter  Scope = "PARAMETER"
	ScopeAny        Scope = "ANY"
)

// QualifierDeclaration is a QUALIFIER TYPE declaration: a qualifier's
// name, value type, default value, declared scopes, and default
// flavors, shared by every qualifier application that names it (spec
// §3, DSP0004 §5.5).
type QualifierDeclaration struct {
	Name         string
	Type         cimtype.Kind
	IsArray      bool
	ArraySize    int // 0 means unbounded/unspecified
	DefaultValue cimtype.Value
	Scopes       []Scope
	Flavors      []Flavor
}

// NewQualifierDeclaration constructs a declaration with the given type
// and default value; Scopes/Flavors default empty and are set via the
// returned value's fields or WithScope/WithFlavor.
func NewQualifierDeclaration(name string, kind cimtype.Kind, isArray bool, defaultValue cimtype.Value) *QualifierDeclaration {
	return &QualifierDeclaration{
		Name:         name,
		Type:         kind,
		IsArray:      isArray,
		DefaultValue: defaultValue,
	}
}

// HasScope reports whether s (or ScopeAny) is declared.
func (d *QualifierDeclaration) HasScope(s Scope) bool {
	for _, existing := range d.Scopes {
		if existing == s || existing == ScopeAny {
			return true
		}
	}
	return false
}

// WithScope returns d with s added, if not already present.
func (d *QualifierDeclaration) WithScope(s Scope) *QualifierDeclaration {
	for _, existing := range d.Scopes {
		if existing == s {
			return d
		}
	}
	d.Scopes = append(d.Scopes, s)
	return d
}

// HasFlavor reports whether f is one of the declaration's default flavors.
func (d *QualifierDeclaration) HasFlavor(f Flavor) bool {
	for _, existing := range d.Flavors {
		if existing == f {
			return true
		}
	}
	return false
}

// WithFlavor returns d with f added, if not already present.
func (d *QualifierDeclaration) WithFlavor(f Flavor) *QualifierDeclaration {
	if d.HasFlavor(f) {
		return d
	}
	d.Flavors = append(d.Flavors, f)
	return d
}

// NewQualifier builds a Qualifier instance from this declaration,
// taking the declared default value and flavors unless value is
// non-nil, in which case value overrides the default (DSP0004 §5.5.1:
// "a qualifier value not given takes the qualifier type's default").
func (d *QualifierDeclaration) NewQualifier(value cimtype.Value) *Qualifier {
	v := value
	if v == nil {
		v = d.DefaultValue
	}
	q := NewQualifier(d.Name, v)
	q.Type = d.Type
	q.IsArray = d.IsArray
	q.Flavors = append([]Flavor(nil), d.Flavors...)
	return q
}

// Equal reports whether two declarations have the same name, type, and
// default value.
func (d *QualifierDeclaration) Equal(o *QualifierDeclaration) bool {
	if d == nil || o == nil {
		return d == o
	}
	if !ident.Equal(d.Name, o.Name) || d.Type != o.Type || d.IsArray != o.IsArray {
		return false
	}
	if d.DefaultValue == nil || o.DefaultValue == nil {
		return d.DefaultValue == nil && o.DefaultValue == nil
	}
	return d.DefaultValue.Equal(o.DefaultValue)
}
