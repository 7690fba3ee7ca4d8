package cimxml

import (
	"fmt"
	"strings"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
)

// Encoder accumulates CIM-XML output byte-exactly: attributes are
// written in the fixed order spec.md §4.C requires, and an attribute
// whose value equals its DSP0201 default is omitted rather than
// written out (no emitted-defaults policy).
type Encoder struct {
	sb strings.Builder
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Bytes returns the accumulated output. The caller is responsible for
// prefixing the XML declaration via WriteDeclaration if one is wanted;
// Encoder never appends a trailing newline.
func (e *Encoder) Bytes() []byte { return []byte(e.sb.String()) }

// String returns the accumulated output as a string.
func (e *Encoder) String() string { return e.sb.String() }

// WriteDeclaration writes the fixed DSP0201 XML declaration
// (spec.md §4.C: `<?xml version="1.0" encoding="utf-8" ?>`).
func (e *Encoder) WriteDeclaration() {
	e.sb.WriteString(`<?xml version="1.0" encoding="utf-8" ?>`)
}

func (e *Encoder) raw(s string) { e.sb.WriteString(s) }

// WriteRawForEnvelope appends literal XML text verbatim. It exists
// solely so component D's envelope writer (CIM/MESSAGE/SIMPLEREQ/
// IMETHODCALL/IPARAMVALUE — tags with no object-model type of their
// own to hang an Encoder method off of) can share this Encoder's
// accumulated buffer instead of building its own.
func (e *Encoder) WriteRawForEnvelope(s string) { e.raw(s) }

// WriteValue writes a VALUE, VALUE.ARRAY, or VALUE.REFERENCE element
// for v, choosing the element by v's Go type.
func (e *Encoder) WriteValue(v cimtype.Value) {
	switch val := v.(type) {
	case nil:
		e.raw("<VALUE.NULL/>")
	case *cimtype.Array:
		e.writeValueArray(val)
	case cimtype.Reference:
		e.writeValueReference(val)
	default:
		e.raw("<VALUE>")
		e.raw(escapeText(v.String()))
		e.raw("</VALUE>")
	}
}

func (e *Encoder) writeValueArray(a *cimtype.Array) {
	e.raw("<VALUE.ARRAY>")
	for i := 0; i < a.Len(); i++ {
		el := a.At(i)
		if el == nil {
			e.raw("<VALUE.NULL/>")
			continue
		}
		e.raw("<VALUE>")
		e.raw(escapeText(el.String()))
		e.raw("</VALUE>")
	}
	e.raw("</VALUE.ARRAY>")
}

func (e *Encoder) writeValueReference(r cimtype.Reference) {
	e.raw("<VALUE.REFERENCE>")
	if in, ok := r.Target().(*cimobj.InstanceName); ok {
		e.WriteInstanceName(in)
	}
	e.raw("</VALUE.REFERENCE>")
}

// WriteInstanceName writes an INSTANCENAME element: CLASSNAME attribute
// plus one KEYBINDING (or KEYVALUE-less VALUE.REFERENCE nesting, for a
// reference-typed key) per key property, in key declaration order.
func (e *Encoder) WriteInstanceName(n *cimobj.InstanceName) {
	e.raw(fmt.Sprintf(`<INSTANCENAME CLASSNAME=%q>`, n.ClassName))
	for _, name := range n.KeyNames() {
		v, _ := n.Key(name)
		e.writeKeyBinding(name, v)
	}
	e.raw("</INSTANCENAME>")
}

func (e *Encoder) writeKeyBinding(name string, v cimtype.Value) {
	e.raw(fmt.Sprintf(`<KEYBINDING NAME=%q>`, name))
	if ref, ok := v.(cimtype.Reference); ok {
		e.writeValueReference(ref)
	} else {
		e.raw(fmt.Sprintf(`<KEYVALUE VALUETYPE=%q>`, keyValueType(v)))
		e.raw(escapeText(v.String()))
		e.raw("</KEYVALUE>")
	}
	e.raw("</KEYBINDING>")
}

// keyValueType maps a key's CIM kind onto DSP0201's KEYVALUE
// VALUETYPE vocabulary, which is coarser than the full TYPE set
// ("string", "boolean", or "numeric").
func keyValueType(v cimtype.Value) string {
	switch v.Kind() {
	case cimtype.KindBoolean:
		return "boolean"
	case cimtype.KindString, cimtype.KindChar16, cimtype.KindDatetime:
		return "string"
	default:
		return "numeric"
	}
}

// WriteNamespace writes a sequence of NAMESPACE elements for a
// normalized namespace path, one per path segment (spec.md §4.C).
func (e *Encoder) WriteNamespace(namespace string) {
	for _, seg := range cimobj.NamespaceSegments(namespace) {
		e.raw(fmt.Sprintf(`<NAMESPACE NAME=%q/>`, seg))
	}
}

// WriteLocalNamespacePath writes a LOCALNAMESPACEPATH wrapping
// WriteNamespace's output.
func (e *Encoder) WriteLocalNamespacePath(namespace string) {
	e.raw("<LOCALNAMESPACEPATH>")
	e.WriteNamespace(namespace)
	e.raw("</LOCALNAMESPACEPATH>")
}
