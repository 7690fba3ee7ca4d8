package cimxml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/werrors"
	"github.com/wbemix/gowbem/internal/wlog"
)

// Decoder tokenizes CIM-XML with encoding/xml.Decoder and drives its
// own DSP0201 element state machine on top of the token stream.
type Decoder struct {
	xd     *xml.Decoder
	logger wlog.Logger
}

// NewDecoder wraps r for CIM-XML parsing. The decoder logs nothing
// until SetLogger attaches a logger.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{xd: xml.NewDecoder(r), logger: wlog.Nop()}
}

// SetLogger attaches l so the decoder can report ignored unknown
// attributes at debug level (spec.md §4.C, §4.D EXPANSION).
func (d *Decoder) SetLogger(l wlog.Logger) { d.logger = l }

func (d *Decoder) offset() int64 { return d.xd.InputOffset() }

// logUnknownAttrs reports, at debug level, every attribute on start
// not named in known — unrecognized attributes on a known element are
// ignored for parsing purposes but still surfaced to the log (spec.md
// §4.C).
func (d *Decoder) logUnknownAttrs(start xml.StartElement, known ...string) {
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		recognized := false
		for _, k := range known {
			if a.Name.Local == k {
				recognized = true
				break
			}
		}
		if !recognized {
			d.logger.UnknownAttribute(start.Name.Local, a.Name.Local)
		}
	}
}

// NextStart, SkipToEnd, and CharData re-export the push-down walking
// primitives below for component D's envelope parser, which drives the
// same element-name-keyed state machine one layer further out (around
// CIM/MESSAGE/SIMPLEREQ/IMETHODRESPONSE, tags with no object-model
// type of their own).
func (d *Decoder) NextStart() (xml.StartElement, bool, error) { return d.nextStart() }
func (d *Decoder) SkipToEnd() error                            { return d.skipToEnd() }
func (d *Decoder) CharData(name string) (string, error)        { return d.charData(name) }

func (d *Decoder) token() (xml.Token, error) {
	tok, err := d.xd.Token()
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, &werrors.XMLParseError{Offset: int(d.offset()), Err: err}
	}
	return tok, nil
}

// nextStart skips character data, comments, and processing instructions
// until it finds either the next StartElement (returned with ok=true)
// or an EndElement closing the enclosing element (ok=false, err=nil).
func (d *Decoder) nextStart() (xml.StartElement, bool, error) {
	for {
		tok, err := d.token()
		if err != nil {
			return xml.StartElement{}, false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, true, nil
		case xml.EndElement:
			return xml.StartElement{}, false, nil
		}
	}
}

// skipToEnd discards tokens (including nested elements) until the
// matching EndElement is consumed — used to drain the body of an
// element whose content the caller has already decided not to inspect
// further (e.g. an ERROR element after its CODE/DESCRIPTION attributes
// are read). It is not a substitute for rejecting an unrecognized child
// element: unknown attributes on known elements are ignored (spec.md
// §4.C), but an unrecognized child element is a CIMXMLParseError.
func (d *Decoder) skipToEnd() error {
	depth := 1
	for depth > 0 {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// charData reads character data until the enclosing element's
// EndElement, concatenating text and rejecting any nested element.
func (d *Decoder) charData(elementName string) (string, error) {
	var sb strings.Builder
	for {
		tok, err := d.token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			return sb.String(), nil
		case xml.StartElement:
			return "", &werrors.CIMXMLParseError{
				Element: elementName,
				Offset:  int(d.offset()),
				Message: "unexpected child element <" + t.Name.Local + "> in character-data content",
			}
		}
	}
}

func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func requireAttr(start xml.StartElement, name string, offset int) (string, error) {
	v, ok := attr(start, name)
	if !ok {
		return "", &werrors.CIMXMLParseError{
			Element: start.Name.Local,
			Offset:  offset,
			Message: "missing required attribute " + name,
		}
	}
	return v, nil
}

// ReadValue reads a VALUE, VALUE.ARRAY, or VALUE.NULL element whose
// start tag has already been consumed as start. kind is the type
// carried by the enclosing PROPERTY/PARAMETER/QUALIFIER, needed
// because VALUE's character data alone doesn't self-describe its type.
func (d *Decoder) ReadValue(start xml.StartElement, kind cimtype.Kind) (cimtype.Value, error) {
	switch start.Name.Local {
	case "VALUE.NULL":
		return nil, nil
	case "VALUE":
		text, err := d.charData("VALUE")
		if err != nil {
			return nil, err
		}
		return parseScalar(kind, text)
	case "VALUE.ARRAY":
		return d.readValueArray(kind)
	case "VALUE.REFERENCE":
		return d.readValueReference()
	default:
		return nil, &werrors.CIMXMLParseError{
			Element: start.Name.Local,
			Offset:  int(d.offset()),
			Message: "expected VALUE, VALUE.ARRAY, or VALUE.REFERENCE",
		}
	}
}

func (d *Decoder) readValueArray(kind cimtype.Kind) (*cimtype.Array, error) {
	var elems []cimtype.Value
	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch child.Name.Local {
		case "VALUE.NULL":
			elems = append(elems, nil)
		case "VALUE":
			text, err := d.charData("VALUE")
			if err != nil {
				return nil, err
			}
			v, err := parseScalar(kind, text)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		default:
			return nil, &werrors.CIMXMLParseError{
				Element: child.Name.Local,
				Offset:  int(d.offset()),
				Message: "unexpected child <" + child.Name.Local + "> in VALUE.ARRAY",
			}
		}
	}
	return cimtype.NewArray(kind, elems)
}

func (d *Decoder) readValueReference() (cimtype.Reference, error) {
	child, ok, err := d.nextStart()
	if err != nil {
		return cimtype.Reference{}, err
	}
	if !ok || child.Name.Local != "INSTANCENAME" {
		return cimtype.Reference{}, &werrors.CIMXMLParseError{
			Element: "VALUE.REFERENCE",
			Offset:  int(d.offset()),
			Message: "expected INSTANCENAME child",
		}
	}
	in, err := d.ReadInstanceName(child)
	if err != nil {
		return cimtype.Reference{}, err
	}
	if err := d.expectEnd("VALUE.REFERENCE"); err != nil {
		return cimtype.Reference{}, err
	}
	return cimtype.NewReference(in), nil
}

// expectEnd consumes tokens until the EndElement for name, used after
// reading a single known child to tolerate (and discard) anything
// trailing it rather than failing strictly.
func (d *Decoder) expectEnd(name string) error {
	depth := 0
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// ReadInstanceName reads an INSTANCENAME element whose start tag is start.
func (d *Decoder) ReadInstanceName(start xml.StartElement) (*cimobj.InstanceName, error) {
	className, err := requireAttr(start, "CLASSNAME", int(d.offset()))
	if err != nil {
		return nil, err
	}
	d.logUnknownAttrs(start, "CLASSNAME")
	keys := make(map[string]cimtype.Value)
	order := make([]string, 0, 4)
	for {
		child, ok, err := d.nextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if child.Name.Local != "KEYBINDING" {
			return nil, &werrors.CIMXMLParseError{
				Element: child.Name.Local,
				Offset:  int(d.offset()),
				Message: "unexpected child <" + child.Name.Local + "> in INSTANCENAME",
			}
		}
		name, v, err := d.readKeyBinding(child)
		if err != nil {
			return nil, err
		}
		keys[name] = v
		order = append(order, name)
	}
	if len(order) == 0 {
		return cimobj.NewKeylessInstanceName(className, ""), nil
	}
	return cimobj.NewInstanceName(className, "", keys)
}

func (d *Decoder) readKeyBinding(start xml.StartElement) (string, cimtype.Value, error) {
	name, err := requireAttr(start, "NAME", int(d.offset()))
	if err != nil {
		return "", nil, err
	}
	d.logUnknownAttrs(start, "NAME")
	child, ok, err := d.nextStart()
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, &werrors.CIMXMLParseError{
			Element: "KEYBINDING",
			Offset:  int(d.offset()),
			Message: "missing KEYVALUE or VALUE.REFERENCE child",
		}
	}
	switch child.Name.Local {
	case "VALUE.REFERENCE":
		ref, err := d.readValueReference()
		if err != nil {
			return "", nil, err
		}
		return name, ref, nil
	case "KEYVALUE":
		vt, _ := attr(child, "VALUETYPE")
		text, err := d.charData("KEYVALUE")
		if err != nil {
			return "", nil, err
		}
		v, err := parseScalar(keyValueKind(vt), text)
		if err != nil {
			return "", nil, err
		}
		return name, v, nil
	default:
		return "", nil, &werrors.CIMXMLParseError{
			Element: "KEYBINDING",
			Offset:  int(d.offset()),
			Message: "unexpected child <" + child.Name.Local + ">",
		}
	}
}

func keyValueKind(valuetype string) cimtype.Kind {
	switch valuetype {
	case "boolean":
		return cimtype.KindBoolean
	case "numeric":
		return cimtype.KindSint64
	default:
		return cimtype.KindString
	}
}

func parseScalar(kind cimtype.Kind, text string) (cimtype.Value, error) {
	switch {
	case kind.IsInteger():
		return cimtype.ParseInteger(kind, text)
	case kind == cimtype.KindReal32 || kind == cimtype.KindReal64:
		return cimtype.ParseReal(kind, text)
	case kind == cimtype.KindBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, &werrors.CIMXMLParseError{Element: "VALUE", Offset: 0, Message: "invalid boolean " + strconv.Quote(text)}
		}
		return cimtype.NewBoolean(b), nil
	case kind == cimtype.KindChar16:
		r := []rune(text)
		if len(r) != 1 {
			return nil, &werrors.CIMXMLParseError{Element: "VALUE", Offset: 0, Message: "char16 value must be exactly one code point"}
		}
		return cimtype.NewChar(r[0]), nil
	case kind == cimtype.KindDatetime:
		return cimtype.ParseDateTime(text)
	default:
		return cimtype.NewString(text), nil
	}
}
