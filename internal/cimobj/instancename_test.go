package cimobj

import (
	"testing"

	"github.com/wbemix/gowbem/internal/cimtype"
)

func TestNewInstanceNameRejectsEmptyKeybindings(t *testing.T) {
	if _, err := NewInstanceName("Foo", "root/cimv2", nil); err == nil {
		t.Error("expected error for empty keybindings")
	}
}

func TestNewInstanceNameRejectsArrayKey(t *testing.T) {
	a, _ := cimtype.NewArray(cimtype.KindUint8, nil)
	_, err := NewInstanceName("Foo", "root/cimv2", map[string]cimtype.Value{"K": a})
	if err == nil {
		t.Error("expected error for array-valued key")
	}
}

func TestInstanceNameEqualCaseInsensitive(t *testing.T) {
	a, _ := NewInstanceName("Foo", "root/cimv2", map[string]cimtype.Value{"Name": cimtype.NewString("x")})
	b, _ := NewInstanceName("FOO", "ROOT/CIMV2", map[string]cimtype.Value{"NAME": cimtype.NewString("x")})
	if !a.Equal(b) {
		t.Error("expected case-insensitive equality to hold")
	}
}

func TestInstanceNameEqualDetectsValueMismatch(t *testing.T) {
	a, _ := NewInstanceName("Foo", "root/cimv2", map[string]cimtype.Value{"Name": cimtype.NewString("x")})
	b, _ := NewInstanceName("Foo", "root/cimv2", map[string]cimtype.Value{"Name": cimtype.NewString("y")})
	if a.Equal(b) {
		t.Error("expected different key values to compare unequal")
	}
}

func TestInstanceNameURIString(t *testing.T) {
	n, err := NewInstanceName("Foo", "root/cimv2", map[string]cimtype.Value{"Name": cimtype.NewString("bar")})
	if err != nil {
		t.Fatal(err)
	}
	got := n.URIString()
	want := `root/cimv2:Foo.Name="bar"`
	if got != want {
		t.Errorf("URIString() = %q, want %q", got, want)
	}
}

func TestNamespaceNormalization(t *testing.T) {
	if got := NormalizeNamespace("//root/mycim//"); got != "root/mycim" {
		t.Errorf("NormalizeNamespace = %q, want %q", got, "root/mycim")
	}
	if segs := NamespaceSegments("//root/mycim//"); len(segs) != 2 || segs[0] != "root" || segs[1] != "mycim" {
		t.Errorf("NamespaceSegments = %v, want [root mycim]", segs)
	}
}
