package cimtype

import (
	"math"
	"strconv"
)

// Real is a CIM real32 or real64 IEEE-754 value.
type Real struct {
	kind Kind
	val  float64
}

// NewReal32 constructs a 32-bit real, narrowing v through float32 so
// String/Equal reflect the precision a real32 actually carries on the
// wire.
func NewReal32(v float64) *Real {
	return &Real{kind: KindReal32, val: float64(float32(v))}
}

// NewReal64 constructs a 64-bit real.
func NewReal64(v float64) *Real {
	return &Real{kind: KindReal64, val: v}
}

func (r *Real) Kind() Kind     { return r.kind }
func (r *Real) Float64() float64 { return r.val }

func (r *Real) String() string {
	bitSize := 64
	if r.kind == KindReal32 {
		bitSize = 32
	}
	return strconv.FormatFloat(r.val, 'g', -1, bitSize)
}

func (r *Real) Equal(other Value) bool {
	o, ok := other.(*Real)
	if !ok || o.kind != r.kind {
		return false
	}
	if math.IsNaN(r.val) && math.IsNaN(o.val) {
		return true
	}
	return r.val == o.val
}

// ParseReal parses s into a real value of the given kind.
func ParseReal(kind Kind, s string) (*Real, error) {
	bitSize := 64
	if kind == KindReal32 {
		bitSize = 32
	}
	v, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		return nil, err
	}
	if kind == KindReal32 {
		return NewReal32(v), nil
	}
	return NewReal64(v), nil
}
