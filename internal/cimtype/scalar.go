package cimtype

// Boolean is a CIM boolean value.
type Boolean bool

func NewBoolean(v bool) Boolean { return Boolean(v) }
func (b Boolean) Kind() Kind    { return KindBoolean }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Boolean) Equal(other Value) bool {
	o, ok := other.(Boolean)
	return ok && o == b
}

// Char is a single Unicode code point (DSP0004 char16: despite the name
// a full rune, not limited to the BMP, matching how every modern CIM
// provider actually emits it).
type Char rune

func NewChar(r rune) Char    { return Char(r) }
func (c Char) Kind() Kind    { return KindChar16 }
func (c Char) String() string { return string(rune(c)) }
func (c Char) Equal(other Value) bool {
	o, ok := other.(Char)
	return ok && o == c
}

// String is a CIM string value (arbitrary Unicode text).
type String string

func NewString(s string) String { return String(s) }
func (s String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }
func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && o == s
}

// Reference is a CIM reference value: a value carrying an instance
// name. InstanceRef is an opaque identifier implemented by cimobj so
// cimtype (a leaf package) doesn't depend on it; codec and object
// packages type-assert to their concrete instance-name type.
type Reference struct {
	target InstanceRef
}

// InstanceRef is satisfied by cimobj.InstanceName; kept minimal here so
// cimtype has no dependency on cimobj.
type InstanceRef interface {
	URIString() string
}

func NewReference(target InstanceRef) Reference { return Reference{target: target} }
func (r Reference) Kind() Kind                   { return KindReference }
func (r Reference) Target() InstanceRef          { return r.target }
func (r Reference) String() string {
	if r.target == nil {
		return ""
	}
	return r.target.URIString()
}
func (r Reference) Equal(other Value) bool {
	o, ok := other.(Reference)
	if !ok {
		return false
	}
	if r.target == nil || o.target == nil {
		return r.target == nil && o.target == nil
	}
	return r.target.URIString() == o.target.URIString()
}
