package cimobj

import (
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/ident"
)

// Flavor controls how a qualifier value propagates to subclasses,
// derived instances, and further qualifier applications (DSP0004 §5.5).
type Flavor int

const (
	FlavorToSubclass Flavor = iota
	FlavorRestricted
	FlavorTranslatable
	FlavorOverridable
	FlavorDisableOverride
	FlavorToInstance
	FlavorEnableOverride
)

// Qualifier is a qualifier value attached to a class, property, method,
// parameter, or another qualifier's declaration (spec §3).
type Qualifier struct {
	Name        string
	Value       cimtype.Value
	Type        cimtype.Kind
	IsArray     bool
	Propagated  bool
	Flavors     []Flavor
}

// NewQualifier constructs a Qualifier with no flavors set; flavors
// default per DSP0004 §5.5.1 (TOSUBCLASS, non-translatable) unless
// explicitly overridden via WithFlavor.
func NewQualifier(name string, value cimtype.Value) *Qualifier {
	kind := cimtype.KindInvalid
	isArray := false
	if value != nil {
		if a, ok := value.(*cimtype.Array); ok {
			kind = a.ElementKind()
			isArray = true
		} else {
			kind = value.Kind()
		}
	}
	return &Qualifier{Name: name, Value: value, Type: kind, IsArray: isArray}
}

// HasFlavor reports whether f has been explicitly set on the qualifier.
func (q *Qualifier) HasFlavor(f Flavor) bool {
	for _, existing := range q.Flavors {
		if existing == f {
			return true
		}
	}
	return false
}

// WithFlavor returns q with f added, if not already present.
func (q *Qualifier) WithFlavor(f Flavor) *Qualifier {
	if q.HasFlavor(f) {
		return q
	}
	q.Flavors = append(q.Flavors, f)
	return q
}

// ToSubclass reports whether the qualifier propagates to subclasses:
// true unless FlavorRestricted was explicitly set (DSP0004 default).
func (q *Qualifier) ToSubclass() bool {
	return !q.HasFlavor(FlavorRestricted)
}

// Overridable reports whether a subclass may override the qualifier's
// value: true unless FlavorDisableOverride was explicitly set.
func (q *Qualifier) Overridable() bool {
	return !q.HasFlavor(FlavorDisableOverride)
}

// Equal reports whether two qualifiers have the same name, type, and
// value (flavors and Propagated are metadata, not identity).
func (q *Qualifier) Equal(o *Qualifier) bool {
	if q == nil || o == nil {
		return q == o
	}
	if !ident.Equal(q.Name, o.Name) || q.Type != o.Type || q.IsArray != o.IsArray {
		return false
	}
	if q.Value == nil || o.Value == nil {
		return q.Value == nil && o.Value == nil
	}
	return q.Value.Equal(o.Value)
}
