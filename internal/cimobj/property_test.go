package cimobj

import (
	"testing"

	"github.com/wbemix/gowbem/internal/cimtype"
)

func TestPropertyIsKey(t *testing.T) {
	p := NewProperty("Name", cimtype.KindString, false)
	if p.IsKey() {
		t.Error("expected IsKey() false with no Key qualifier")
	}
	p.SetQualifier(NewQualifier("Key", cimtype.NewBoolean(true)))
	if !p.IsKey() {
		t.Error("expected IsKey() true once a true-valued Key qualifier is set")
	}
}

func TestPropertyCloneIsIndependent(t *testing.T) {
	p := NewProperty("Name", cimtype.KindString, false).WithValue(cimtype.NewString("x"))
	p.SetQualifier(NewQualifier("Key", cimtype.NewBoolean(true)))
	clone := p.Clone()
	clone.SetQualifier(NewQualifier("Description", cimtype.NewString("d")))
	if p.Qualifiers.Has("Description") {
		t.Error("expected clone's qualifier mutation not to affect original")
	}
}

func TestPropertyEqual(t *testing.T) {
	a := NewProperty("Name", cimtype.KindString, false).WithValue(cimtype.NewString("x"))
	b := NewProperty("name", cimtype.KindString, false).WithValue(cimtype.NewString("x"))
	if !a.Equal(b) {
		t.Error("expected equal name/type/value properties to compare equal")
	}
}
