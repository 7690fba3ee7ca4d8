package cimtype

import "fmt"

// Array is a one-dimensional, uniformly-typed CIM array value. Per
// spec §3 "Invariants", an array never holds a nil element unless the
// caller explicitly allows null elements (DSP0201 ParamValue rules,
// enforced by the codec/property layer, not here).
type Array struct {
	elemKind Kind
	elems    []Value
}

// NewArray builds an Array, failing if any non-nil element's Kind
// doesn't match elemKind.
func NewArray(elemKind Kind, elems []Value) (*Array, error) {
	for i, e := range elems {
		if e == nil {
			continue
		}
		if e.Kind() != elemKind {
			return nil, fmt.Errorf("cimtype: array element %d has kind %s, want %s", i, e.Kind(), elemKind)
		}
	}
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return &Array{elemKind: elemKind, elems: cp}, nil
}

func (a *Array) ElementKind() Kind { return a.elemKind }
func (a *Array) Len() int          { return len(a.elems) }
func (a *Array) At(i int) Value    { return a.elems[i] }

// Elements returns a copy of the underlying slice.
func (a *Array) Elements() []Value {
	cp := make([]Value, len(a.elems))
	copy(cp, a.elems)
	return cp
}

// Kind always returns the element kind; arrays are distinguished from
// scalars by type (*Array), not by a separate Kind value, mirroring how
// DSP0201 flags arrays via a sibling TYPE+ISARRAY attribute pair rather
// than a distinct CIMTYPE.
func (a *Array) Kind() Kind { return a.elemKind }

func (a *Array) String() string {
	s := "{"
	for i, e := range a.elems {
		if i > 0 {
			s += ","
		}
		if e == nil {
			s += "NULL"
		} else {
			s += e.String()
		}
	}
	return s + "}"
}

func (a *Array) Equal(other Value) bool {
	o, ok := other.(*Array)
	if !ok || o.elemKind != a.elemKind || len(o.elems) != len(a.elems) {
		return false
	}
	for i := range a.elems {
		if (a.elems[i] == nil) != (o.elems[i] == nil) {
			return false
		}
		if a.elems[i] != nil && !a.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}
