package cimxml

import (
	"fmt"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
)

// WriteQualifier writes a QUALIFIER element.
func (e *Encoder) WriteQualifier(q *cimobj.Qualifier) {
	e.raw(fmt.Sprintf(`<QUALIFIER NAME=%q TYPE=%q`, q.Name, q.Type.String()))
	if q.Propagated {
		e.raw(` PROPAGATED="true"`)
	}
	e.raw(">")
	if q.Value != nil {
		e.WriteValue(q.Value)
	}
	e.raw("</QUALIFIER>")
}

// WriteProperty writes a PROPERTY, PROPERTY.ARRAY, or
// PROPERTY.REFERENCE element for p, chosen by its declared shape.
func (e *Encoder) WriteProperty(p *cimobj.Property) {
	switch {
	case p.Type == cimtype.KindReference && !p.IsArray:
		e.raw(fmt.Sprintf(`<PROPERTY.REFERENCE NAME=%q`, p.Name))
		e.writePropagated(p.Propagated)
		e.raw(">")
		e.writeObjQualifiers(p.Qualifiers)
		if p.Value != nil {
			e.WriteValue(p.Value)
		}
		e.raw("</PROPERTY.REFERENCE>")
	case p.IsArray:
		e.raw(fmt.Sprintf(`<PROPERTY.ARRAY NAME=%q TYPE=%q`, p.Name, p.Type.String()))
		e.writePropagated(p.Propagated)
		e.raw(">")
		e.writeObjQualifiers(p.Qualifiers)
		if p.Value != nil {
			e.WriteValue(p.Value)
		}
		e.raw("</PROPERTY.ARRAY>")
	default:
		e.raw(fmt.Sprintf(`<PROPERTY NAME=%q TYPE=%q`, p.Name, p.Type.String()))
		e.writePropagated(p.Propagated)
		e.raw(">")
		e.writeObjQualifiers(p.Qualifiers)
		if p.Value != nil {
			e.WriteValue(p.Value)
		}
		e.raw("</PROPERTY>")
	}
}

func (e *Encoder) writePropagated(propagated bool) {
	if propagated {
		e.raw(` PROPAGATED="true"`)
	}
}

func (e *Encoder) writeObjQualifiers(qs interface {
	Keys() []string
	Get(string) (*cimobj.Qualifier, bool)
}) {
	for _, name := range qs.Keys() {
		q, _ := qs.Get(name)
		e.WriteQualifier(q)
	}
}

// WriteQualifierDeclaration writes a QUALIFIER.DECLARATION element:
// flavor attributes on the start tag, then its SCOPE, then default value.
func (e *Encoder) WriteQualifierDeclaration(d *cimobj.QualifierDeclaration) {
	e.raw(fmt.Sprintf(`<QUALIFIER.DECLARATION NAME=%q TYPE=%q`, d.Name, d.Type.String()))
	if d.IsArray {
		e.raw(` ISARRAY="true"`)
		if d.ArraySize > 0 {
			e.raw(fmt.Sprintf(` ARRAYSIZE="%d"`, d.ArraySize))
		}
	}
	if d.HasFlavor(cimobj.FlavorDisableOverride) {
		e.raw(fmt.Sprintf(` OVERRIDABLE=%q`, boolAttr(false)))
	}
	if d.HasFlavor(cimobj.FlavorRestricted) {
		e.raw(fmt.Sprintf(` TOSUBCLASS=%q`, boolAttr(false)))
	}
	if d.HasFlavor(cimobj.FlavorToInstance) {
		e.raw(fmt.Sprintf(` TOINSTANCE=%q`, boolAttr(true)))
	}
	if d.HasFlavor(cimobj.FlavorTranslatable) {
		e.raw(fmt.Sprintf(` TRANSLATABLE=%q`, boolAttr(true)))
	}
	e.raw(">")
	if len(d.Scopes) > 0 {
		e.writeScope(d.Scopes)
	}
	if d.DefaultValue != nil {
		e.WriteValue(d.DefaultValue)
	}
	e.raw("</QUALIFIER.DECLARATION>")
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (e *Encoder) writeScope(scopes []cimobj.Scope) {
	has := make(map[cimobj.Scope]bool, len(scopes))
	for _, s := range scopes {
		has[s] = true
	}
	e.raw("<SCOPE")
	for _, pair := range []struct {
		attr  string
		scope cimobj.Scope
	}{
		{"CLASS", cimobj.ScopeClass},
		{"ASSOCIATION", cimobj.ScopeAssociation},
		{"INDICATION", cimobj.ScopeIndication},
		{"PROPERTY", cimobj.ScopeProperty},
		{"REFERENCE", cimobj.ScopeReference},
		{"METHOD", cimobj.ScopeMethod},
		{"PARAMETER", cimobj.ScopeParameter},
	} {
		if has[pair.scope] || has[cimobj.ScopeAny] {
			e.raw(fmt.Sprintf(` %s="true"`, pair.attr))
		}
	}
	e.raw("/>")
}

// WriteInstance writes an INSTANCE element with its properties in
// declaration order.
func (e *Encoder) WriteInstance(inst *cimobj.Instance) {
	e.raw(fmt.Sprintf(`<INSTANCE CLASSNAME=%q>`, inst.ClassName))
	for _, name := range inst.Properties.Keys() {
		p, _ := inst.Properties.Get(name)
		e.WriteProperty(p)
	}
	e.raw("</INSTANCE>")
}

// WriteValueNamedInstance writes a VALUE.NAMEDINSTANCE element: an
// INSTANCENAME followed by its INSTANCE, the form enumeration results
// use to carry both path and value together.
func (e *Encoder) WriteValueNamedInstance(path *cimobj.InstanceName, inst *cimobj.Instance) {
	e.raw("<VALUE.NAMEDINSTANCE>")
	e.WriteInstanceName(path)
	e.WriteInstance(inst)
	e.raw("</VALUE.NAMEDINSTANCE>")
}

// WriteClass writes a CLASS element: qualifiers, then properties,
// then methods, in that fixed DSP0201 order.
func (e *Encoder) WriteClass(c *cimobj.Class) {
	e.raw(fmt.Sprintf(`<CLASS NAME=%q`, c.Name))
	if c.Superclass != "" {
		e.raw(fmt.Sprintf(` SUPERCLASS=%q`, c.Superclass))
	}
	e.raw(">")
	for _, name := range c.Qualifiers.Keys() {
		q, _ := c.Qualifiers.Get(name)
		e.WriteQualifier(q)
	}
	for _, name := range c.Properties.Keys() {
		p, _ := c.Properties.Get(name)
		e.WriteProperty(p)
	}
	for _, name := range c.Methods.Keys() {
		m, _ := c.Methods.Get(name)
		e.writeMethod(m)
	}
	e.raw("</CLASS>")
}

func (e *Encoder) writeMethod(m *cimobj.Method) {
	e.raw(fmt.Sprintf(`<METHOD NAME=%q`, m.Name))
	if m.ReturnType != cimtype.KindInvalid {
		e.raw(fmt.Sprintf(` TYPE=%q`, m.ReturnType.String()))
	}
	e.writePropagated(m.Propagated)
	e.raw(">")
	for _, name := range m.Qualifiers.Keys() {
		q, _ := m.Qualifiers.Get(name)
		e.WriteQualifier(q)
	}
	for _, name := range m.Parameters.Keys() {
		p, _ := m.Parameters.Get(name)
		e.writeParameter(p)
	}
	e.raw("</METHOD>")
}

func (e *Encoder) writeParameter(p *cimobj.Parameter) {
	tag := "PARAMETER"
	switch {
	case p.Type == cimtype.KindReference && p.IsArray:
		tag = "PARAMETER.REFARRAY"
	case p.Type == cimtype.KindReference:
		tag = "PARAMETER.REFERENCE"
	case p.IsArray:
		tag = "PARAMETER.ARRAY"
	}
	if tag == "PARAMETER.REFERENCE" || tag == "PARAMETER.REFARRAY" {
		e.raw(fmt.Sprintf(`<%s NAME=%q>`, tag, p.Name))
	} else {
		e.raw(fmt.Sprintf(`<%s NAME=%q TYPE=%q>`, tag, p.Name, p.Type.String()))
	}
	for _, name := range p.Qualifiers.Keys() {
		q, _ := p.Qualifiers.Get(name)
		e.WriteQualifier(q)
	}
	e.raw(fmt.Sprintf(`</%s>`, tag))
}
