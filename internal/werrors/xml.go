package werrors

import "fmt"

// XMLParseError reports XML that is not well-formed at all: the failure
// surfaces as-is from the underlying encoding/xml tokenizer, wrapped so
// callers can type-switch on it alongside the rest of the hierarchy.
type XMLParseError struct {
	Offset int
	Err    error
}

func (e *XMLParseError) Error() string {
	return fmt.Sprintf("malformed XML at byte %d: %s", e.Offset, e.Err)
}

func (e *XMLParseError) Unwrap() error { return e.Err }

// CIMXMLParseError reports XML that is well-formed but violates DSP0201:
// an unknown element, a missing required attribute, a child in the wrong
// position. Element and Offset name exactly what was rejected.
type CIMXMLParseError struct {
	Element string
	Offset  int
	Message string
}

func (e *CIMXMLParseError) Error() string {
	return fmt.Sprintf("CIM-XML violation in <%s> at byte %d: %s", e.Element, e.Offset, e.Message)
}

// CIMVersionError reports an unsupported CIMVERSION attribute on the
// root <CIM> element.
type CIMVersionError struct {
	Declared string
	Accepted []string
}

func (e *CIMVersionError) Error() string {
	return fmt.Sprintf("unsupported CIMVERSION %q (accept %v)", e.Declared, e.Accepted)
}

// DTDVersionError reports an unsupported DTDVERSION attribute.
type DTDVersionError struct {
	Declared string
	Accepted []string
}

func (e *DTDVersionError) Error() string {
	return fmt.Sprintf("unsupported DTDVERSION %q (accept %v)", e.Declared, e.Accepted)
}

// ProtocolVersionError reports an unsupported PROTOCOLVERSION attribute
// on <MESSAGE>.
type ProtocolVersionError struct {
	Declared string
	Accepted []string
}

func (e *ProtocolVersionError) Error() string {
	return fmt.Sprintf("unsupported PROTOCOLVERSION %q (accept %v)", e.Declared, e.Accepted)
}
