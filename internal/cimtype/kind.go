// Package cimtype implements the CIM scalar and array value model: the
// closed set of DSP0004 data types (signed/unsigned fixed-width
// integers, 32/64-bit reals, boolean, char16, string, datetime, and
// reference), each carrying its own declared type/width, plus uniform
// one-dimensional arrays of any of them.
//
// Values are immutable: every constructor validates width/typing
// invariants up front and returns an error rather than a partially
// valid Value (spec §3 "Lifecycle and ownership").
package cimtype

import "fmt"

// Kind tags which CIM data type a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindSint8
	KindUint8
	KindSint16
	KindUint16
	KindSint32
	KindUint32
	KindSint64
	KindUint64
	KindReal32
	KindReal64
	KindBoolean
	KindChar16
	KindString
	KindDatetime
	KindReference
)

var kindNames = map[Kind]string{
	KindSint8:     "sint8",
	KindUint8:     "uint8",
	KindSint16:    "sint16",
	KindUint16:    "uint16",
	KindSint32:    "sint32",
	KindUint32:    "uint32",
	KindSint64:    "sint64",
	KindUint64:    "uint64",
	KindReal32:    "real32",
	KindReal64:    "real64",
	KindBoolean:   "boolean",
	KindChar16:    "char16",
	KindString:    "string",
	KindDatetime:  "datetime",
	KindReference: "reference",
}

// String returns the DSP0201 CIMTYPE attribute spelling for k.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("invalid(%d)", int(k))
}

// IsInteger reports whether k is one of the eight integer kinds.
func (k Kind) IsInteger() bool {
	return k >= KindSint8 && k <= KindUint64
}

// IsSigned reports whether an integer kind is signed. Undefined for
// non-integer kinds.
func (k Kind) IsSigned() bool {
	switch k {
	case KindSint8, KindSint16, KindSint32, KindSint64:
		return true
	default:
		return false
	}
}

// Width returns the bit width of an integer or real kind, or 0 for
// kinds with no fixed width.
func (k Kind) Width() int {
	switch k {
	case KindSint8, KindUint8:
		return 8
	case KindSint16, KindUint16:
		return 16
	case KindSint32, KindUint32, KindReal32:
		return 32
	case KindSint64, KindUint64, KindReal64:
		return 64
	default:
		return 0
	}
}

// Value is implemented by every CIM scalar type.
type Value interface {
	Kind() Kind
	// String renders the canonical CIM string form (spec §4.A), the
	// same form used as a CIM-XML VALUE element's character data.
	String() string
	// Equal reports value equality; kinds must match exactly (a
	// Uint8 never equals a Uint16 holding the same number).
	Equal(Value) bool
}
