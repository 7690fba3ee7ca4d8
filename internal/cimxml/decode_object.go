package cimxml

import (
	"encoding/xml"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/werrors"
)

// unexpectedChild builds the CIMXMLParseError returned when a
// recognized element's default branch meets a child element outside
// its DSP0201 grammar (spec.md §4.C: unknown attributes are ignored,
// unknown elements are not).
func (d *Decoder) unexpectedChild(parent string, child xml.StartElement) error {
	return &werrors.CIMXMLParseError{
		Element: child.Name.Local,
		Offset:  int(d.offset()),
		Message: "unexpected child <" + child.Name.Local + "> in " + parent,
	}
}

var allKinds = []cimtype.Kind{
	cimtype.KindSint8, cimtype.KindUint8, cimtype.KindSint16, cimtype.KindUint16,
	cimtype.KindSint32, cimtype.KindUint32, cimtype.KindSint64, cimtype.KindUint64,
	cimtype.KindReal32, cimtype.KindReal64, cimtype.KindBoolean, cimtype.KindChar16,
	cimtype.KindString, cimtype.KindDatetime, cimtype.KindReference,
}

// kindFromAttr maps a TYPE attribute's DSP0201 spelling back onto a
// cimtype.Kind using Kind.String() as the single source of truth for
// the spelling, rather than a second hand-maintained name table.
func kindFromAttr(start xml.StartElement) cimtype.Kind {
	t, ok := attr(start, "TYPE")
	if !ok {
		return cimtype.KindInvalid
	}
	return KindFromAttrValue(t)
}

// KindFromAttrValue maps a DSP0201 TYPE/PARAMTYPE attribute spelling
// back onto a cimtype.Kind. Exported so component D's extrinsic
// envelope (METHODRESPONSE's PARAMTYPE attribute, which names the same
// vocabulary as TYPE) can reuse this lookup rather than duplicating it.
func KindFromAttrValue(t string) cimtype.Kind {
	for _, k := range allKinds {
		if k.String() == t {
			return k
		}
	}
	return cimtype.KindInvalid
}

// ReadProperty reads a PROPERTY, PROPERTY.ARRAY, or PROPERTY.REFERENCE
// element whose start tag is start.
func (d *Decoder) ReadProperty(start xml.StartElement) (*cimobj.Property, error) {
	name, err := requireAttr(start, "NAME", int(d.offset()))
	if err != nil {
		return nil, err
	}
	isArray := start.Name.Local == "PROPERTY.ARRAY"
	kind := cimtype.KindReference
	if start.Name.Local != "PROPERTY.REFERENCE" {
		kind = kindFromAttr(start)
	}
	prop := cimobj.NewProperty(name, kind, isArray)
	if v, ok := attr(start, "PROPAGATED"); ok && v == "true" {
		prop.Propagated = true
	}
	d.logUnknownAttrs(start, "NAME", "TYPE", "PROPAGATED", "CLASSORIGIN", "REFERENCECLASS", "EmbeddedObject")

	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch child.Name.Local {
		case "QUALIFIER":
			q, err := d.ReadQualifier(child)
			if err != nil {
				return nil, err
			}
			prop.SetQualifier(q)
		case "VALUE", "VALUE.ARRAY", "VALUE.REFERENCE", "VALUE.NULL":
			v, err := d.ReadValue(child, kind)
			if err != nil {
				return nil, err
			}
			prop.Value = v
		default:
			return nil, d.unexpectedChild(start.Name.Local, child)
		}
	}
	return prop, nil
}

// ReadQualifier reads a QUALIFIER element whose start tag is start.
func (d *Decoder) ReadQualifier(start xml.StartElement) (*cimobj.Qualifier, error) {
	name, err := requireAttr(start, "NAME", int(d.offset()))
	if err != nil {
		return nil, err
	}
	kind := kindFromAttr(start)
	q := cimobj.NewQualifier(name, nil)
	q.Type = kind
	if v, ok := attr(start, "PROPAGATED"); ok && v == "true" {
		q.Propagated = true
	}
	d.logUnknownAttrs(start, "NAME", "TYPE", "PROPAGATED", "OVERRIDABLE", "TOSUBCLASS", "TOINSTANCE", "TRANSLATABLE")
	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := d.ReadValue(child, kind)
		if err != nil {
			return nil, err
		}
		q.Value = v
	}
	return q, nil
}

// ReadQualifierDeclaration reads a QUALIFIER.DECLARATION element whose
// start tag is start.
func (d *Decoder) ReadQualifierDeclaration(start xml.StartElement) (*cimobj.QualifierDeclaration, error) {
	name, err := requireAttr(start, "NAME", int(d.offset()))
	if err != nil {
		return nil, err
	}
	kind := kindFromAttr(start)
	isArray := false
	if v, ok := attr(start, "ISARRAY"); ok && v == "true" {
		isArray = true
	}
	decl := cimobj.NewQualifierDeclaration(name, kind, isArray, nil)
	if v, ok := attr(start, "OVERRIDABLE"); ok && v == "false" {
		decl = decl.WithFlavor(cimobj.FlavorDisableOverride)
	}
	if v, ok := attr(start, "TOSUBCLASS"); ok && v == "false" {
		decl = decl.WithFlavor(cimobj.FlavorRestricted)
	}
	if v, ok := attr(start, "TOINSTANCE"); ok && v == "true" {
		decl = decl.WithFlavor(cimobj.FlavorToInstance)
	}
	if v, ok := attr(start, "TRANSLATABLE"); ok && v == "true" {
		decl = decl.WithFlavor(cimobj.FlavorTranslatable)
	}
	d.logUnknownAttrs(start, "NAME", "TYPE", "ISARRAY", "ARRAYSIZE", "OVERRIDABLE", "TOSUBCLASS", "TOINSTANCE", "TRANSLATABLE")

	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch child.Name.Local {
		case "SCOPE":
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
				if v, ok := attr(child, pair.attr); ok && v == "true" {
					decl = decl.WithScope(pair.scope)
				}
			}
			if err := d.skipToEnd(); err != nil {
				return nil, err
			}
		case "VALUE", "VALUE.ARRAY":
			v, err := d.ReadValue(child, kind)
			if err != nil {
				return nil, err
			}
			decl.DefaultValue = v
		default:
			return nil, d.unexpectedChild("QUALIFIER.DECLARATION", child)
		}
	}
	return decl, nil
}

// ReadInstance reads an INSTANCE element whose start tag is start.
func (d *Decoder) ReadInstance(start xml.StartElement) (*cimobj.Instance, error) {
	className, err := requireAttr(start, "CLASSNAME", int(d.offset()))
	if err != nil {
		return nil, err
	}
	inst := cimobj.NewInstance(className, "")
	d.logUnknownAttrs(start, "CLASSNAME")
	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch child.Name.Local {
		case "PROPERTY", "PROPERTY.ARRAY", "PROPERTY.REFERENCE":
			p, err := d.ReadProperty(child)
			if err != nil {
				return nil, err
			}
			inst.Properties.Set(p.Name, p)
		case "QUALIFIER":
			if err := d.skipToEnd(); err != nil {
				return nil, err
			}
		default:
			return nil, d.unexpectedChild("INSTANCE", child)
		}
	}
	return inst, nil
}

// ReadClass reads a CLASS element whose start tag is start.
func (d *Decoder) ReadClass(start xml.StartElement) (*cimobj.Class, error) {
	name, err := requireAttr(start, "NAME", int(d.offset()))
	if err != nil {
		return nil, err
	}
	super, _ := attr(start, "SUPERCLASS")
	class := cimobj.NewClass(name, super)
	d.logUnknownAttrs(start, "NAME", "SUPERCLASS")

	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch child.Name.Local {
		case "QUALIFIER":
			q, err := d.ReadQualifier(child)
			if err != nil {
				return nil, err
			}
			class.SetQualifier(q)
		case "PROPERTY", "PROPERTY.ARRAY", "PROPERTY.REFERENCE":
			p, err := d.ReadProperty(child)
			if err != nil {
				return nil, err
			}
			class.AddProperty(p)
		case "METHOD":
			m, err := d.readMethod(child)
			if err != nil {
				return nil, err
			}
			class.AddMethod(m)
		default:
			return nil, d.unexpectedChild("CLASS", child)
		}
	}
	return class, nil
}

func (d *Decoder) readMethod(start xml.StartElement) (*cimobj.Method, error) {
	name, err := requireAttr(start, "NAME", int(d.offset()))
	if err != nil {
		return nil, err
	}
	returnType := kindFromAttr(start)
	m := cimobj.NewMethod(name, returnType, false)
	if v, ok := attr(start, "PROPAGATED"); ok && v == "true" {
		m.Propagated = true
	}
	d.logUnknownAttrs(start, "NAME", "TYPE", "PROPAGATED", "CLASSORIGIN")
	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch child.Name.Local {
		case "QUALIFIER":
			q, err := d.ReadQualifier(child)
			if err != nil {
				return nil, err
			}
			m.SetQualifier(q)
		case "PARAMETER", "PARAMETER.ARRAY", "PARAMETER.REFERENCE", "PARAMETER.REFARRAY":
			p, err := d.readParameter(child)
			if err != nil {
				return nil, err
			}
			m.AddParameter(p)
		default:
			return nil, d.unexpectedChild("METHOD", child)
		}
	}
	return m, nil
}

func (d *Decoder) readParameter(start xml.StartElement) (*cimobj.Parameter, error) {
	name, err := requireAttr(start, "NAME", int(d.offset()))
	if err != nil {
		return nil, err
	}
	isArray := start.Name.Local == "PARAMETER.ARRAY" || start.Name.Local == "PARAMETER.REFARRAY"
	kind := cimtype.KindReference
	if start.Name.Local == "PARAMETER" || start.Name.Local == "PARAMETER.ARRAY" {
		kind = kindFromAttr(start)
	}
	p := cimobj.NewParameter(name, kind, isArray)
	d.logUnknownAttrs(start, "NAME", "TYPE", "REFERENCECLASS", "ARRAYSIZE")
	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch child.Name.Local {
		case "QUALIFIER":
			q, err := d.ReadQualifier(child)
			if err != nil {
				return nil, err
			}
			p.SetQualifier(q)
		default:
			return nil, d.unexpectedChild(start.Name.Local, child)
		}
	}
	return p, nil
}

// ReadValueNamedInstance reads a VALUE.NAMEDINSTANCE element whose
// start tag is start, returning its path and instance.
func (d *Decoder) ReadValueNamedInstance(start xml.StartElement) (*cimobj.InstanceName, *cimobj.Instance, error) {
	var path *cimobj.InstanceName
	var inst *cimobj.Instance
	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			break
		}
		switch child.Name.Local {
		case "INSTANCENAME":
			path, err = d.ReadInstanceName(child)
			if err != nil {
				return nil, nil, err
			}
		case "INSTANCE":
			inst, err = d.ReadInstance(child)
			if err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, d.unexpectedChild("VALUE.NAMEDINSTANCE", child)
		}
	}
	return path, inst, nil
}
