package cimtype

import "testing"

func TestNewUnsignedIntegerRange(t *testing.T) {
	if _, err := NewUnsignedInteger(KindUint8, 255); err != nil {
		t.Fatalf("Uint8(255) should succeed: %v", err)
	}
	if _, err := NewUnsignedInteger(KindUint8, 256); err == nil {
		t.Fatal("Uint8(256) should fail with a range error")
	} else if _, ok := err.(*RangeError); !ok {
		t.Fatalf("expected *RangeError, got %T", err)
	}
}

func TestNewIntegerSignedBounds(t *testing.T) {
	tests := []struct {
		kind    Kind
		v       int64
		wantErr bool
	}{
		{KindSint8, -128, false},
		{KindSint8, 127, false},
		{KindSint8, 128, true},
		{KindSint8, -129, true},
		{KindSint16, 32767, false},
		{KindSint16, 32768, true},
		{KindSint32, 2147483647, false},
		{KindSint32, 2147483648, true},
		{KindSint64, 9223372036854775807, false},
	}
	for _, tt := range tests {
		_, err := NewInteger(tt.kind, tt.v)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewInteger(%s, %d) error = %v, wantErr %v", tt.kind, tt.v, err, tt.wantErr)
		}
	}
}

func TestIntegerStringRoundTrip(t *testing.T) {
	v, err := NewUnsignedInteger(KindUint8, 255)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.String(); got != "255" {
		t.Errorf("String() = %q, want %q", got, "255")
	}

	parsed, err := ParseInteger(KindUint8, "255")
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Equal(v) {
		t.Error("ParseInteger(String()) should round-trip to an equal value")
	}
}

func TestIntegerEqualityRequiresSameKind(t *testing.T) {
	a, _ := NewUnsignedInteger(KindUint8, 5)
	b, _ := NewUnsignedInteger(KindUint16, 5)
	if a.Equal(b) {
		t.Error("values of different widths must never compare equal")
	}
}

func TestNewUnsignedIntegerRejectsSignedKind(t *testing.T) {
	if _, err := NewUnsignedInteger(KindSint8, 1); err == nil {
		t.Error("expected error constructing unsigned value for a signed kind")
	}
}
