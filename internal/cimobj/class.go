package cimobj

import (
	"github.com/wbemix/gowbem/internal/ident"
	"github.com/wbemix/gowbem/internal/werrors"
)

// Class is a CIM class declaration: a name, an optional superclass,
// properties, methods, and qualifiers (spec §3). Properties and
// methods declared directly on this class are distinguished from
// inherited ones by each member's ClassOrigin/Propagated fields.
type Class struct {
	Name       string
	Superclass string // "" if this is a root class
	Namespace  string
	Properties *ident.Map[*Property]
	Methods    *ident.Map[*Method]
	Qualifiers *ident.Map[*Qualifier]
}

// NewClass constructs an empty class declaration.
func NewClass(name, superclass string) *Class {
	return &Class{
		Name:       name,
		Superclass: superclass,
		Properties: ident.NewMap[*Property](),
		Methods:    ident.NewMap[*Method](),
		Qualifiers: ident.NewMap[*Qualifier](),
	}
}

// AddProperty sets (or overwrites, case-insensitively) a property.
func (c *Class) AddProperty(p *Property) {
	if p.ClassOrigin == "" {
		p.ClassOrigin = c.Name
	}
	c.Properties.Set(p.Name, p)
}

// Property looks up a property by name, case-insensitively.
func (c *Class) Property(name string) (*Property, bool) {
	return c.Properties.Get(name)
}

// AddMethod sets (or overwrites, case-insensitively) a method.
func (c *Class) AddMethod(m *Method) {
	if m.ClassOrigin == "" {
		m.ClassOrigin = c.Name
	}
	c.Methods.Set(m.Name, m)
}

// Method looks up a method by name, case-insensitively.
func (c *Class) Method(name string) (*Method, bool) {
	return c.Methods.Get(name)
}

// Qualifier looks up a qualifier by name, case-insensitively.
func (c *Class) Qualifier(name string) (*Qualifier, bool) {
	return c.Qualifiers.Get(name)
}

// SetQualifier sets (or overwrites) a qualifier on the class.
func (c *Class) SetQualifier(q *Qualifier) {
	c.Qualifiers.Set(q.Name, q)
}

// KeyPropertyNames returns the names of all properties carrying a
// true-valued Key qualifier, in declaration order.
func (c *Class) KeyPropertyNames() []string {
	var keys []string
	for _, name := range c.Properties.Keys() {
		p, _ := c.Properties.Get(name)
		if p.IsKey() {
			keys = append(keys, name)
		}
	}
	return keys
}

// IsAssociation reports whether the class carries a true-valued
// Association qualifier (DSP0004 §5.3.1).
func (c *Class) IsAssociation() bool {
	q, ok := c.Qualifiers.Get("Association")
	if !ok {
		return false
	}
	return q.Value != nil && q.Value.String() == "true"
}

// DeriveFrom populates c's inherited properties and methods from a
// resolved superclass, marking each with Propagated=true and keeping
// the ClassOrigin of the class that declared it, unless c already declares its own
// member of the same name (a local declaration overrides, matching
// DSP0004 §5.3's override rules). The semantic analyzer calls this
// during the resolve sub-pass once a superclass is itself resolved.
func (c *Class) DeriveFrom(super *Class) error {
	if super == nil {
		return &werrors.ModelError{Message: "cannot derive from a nil superclass"}
	}
	for _, name := range super.Properties.Keys() {
		if c.Properties.Has(name) {
			continue
		}
		sp, _ := super.Properties.Get(name)
		inherited := sp.Clone()
		inherited.Propagated = true
		c.Properties.Set(name, inherited)
	}
	for _, name := range super.Methods.Keys() {
		if c.Methods.Has(name) {
			continue
		}
		sm, _ := super.Methods.Get(name)
		inherited := sm.Clone()
		inherited.Propagated = true
		c.Methods.Set(name, inherited)
	}
	for _, name := range super.Qualifiers.Keys() {
		if c.Qualifiers.Has(name) {
			continue
		}
		sq, _ := super.Qualifiers.Get(name)
		if !sq.ToSubclass() {
			continue
		}
		propagated := NewQualifier(sq.Name, sq.Value)
		propagated.Type = sq.Type
		propagated.IsArray = sq.IsArray
		propagated.Flavors = append([]Flavor(nil), sq.Flavors...)
		propagated.Propagated = true
		c.Qualifiers.Set(name, propagated)
	}
	return nil
}

// NewInstance builds a keyless-or-keyed Instance of this class with
// every property initialized from its declared default value (nil if
// none), ready for the caller to populate and submit via CreateInstance.
func (c *Class) NewInstance() *Instance {
	inst := &Instance{
		ClassName:  c.Name,
		Namespace:  c.Namespace,
		Properties: ident.NewMapWithCapacity[*Property](c.Properties.Len()),
	}
	for _, name := range c.Properties.Keys() {
		p, _ := c.Properties.Get(name)
		inst.Properties.Set(name, p.Clone())
	}
	return inst
}
