package cimobj

import (
	"testing"

	"github.com/wbemix/gowbem/internal/cimtype"
)

func TestInstanceSetAndGetProperty(t *testing.T) {
	inst := NewInstance("MyDevice", "root/cimv2")
	inst.SetProperty("Name", cimtype.NewString("dev0"))
	if inst.Value("Name").(cimtype.String) != cimtype.NewString("dev0") {
		t.Errorf("Value(Name) = %v, want dev0", inst.Value("Name"))
	}
}

func TestInstancePathRequiresKeyValues(t *testing.T) {
	inst := NewInstance("MyDevice", "root/cimv2")
	if _, err := inst.Path([]string{"Name"}); err == nil {
		t.Error("expected error deriving a path with an unset key property")
	}
}

func TestInstancePathSucceeds(t *testing.T) {
	inst := NewInstance("MyDevice", "root/cimv2")
	inst.SetProperty("Name", cimtype.NewString("dev0"))
	path, err := inst.Path([]string{"Name"})
	if err != nil {
		t.Fatal(err)
	}
	if path.ClassName != "MyDevice" {
		t.Errorf("ClassName = %q, want %q", path.ClassName, "MyDevice")
	}
	v, ok := path.Key("Name")
	if !ok || v.(cimtype.String) != cimtype.NewString("dev0") {
		t.Errorf("Key(Name) = %v, %v, want dev0, true", v, ok)
	}
}

func TestInstancePathKeyless(t *testing.T) {
	inst := NewInstance("MyDevice", "root/cimv2")
	path, err := inst.Path(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(path.KeyNames()) != 0 {
		t.Errorf("KeyNames() = %v, want none", path.KeyNames())
	}
}

func TestInstanceEqual(t *testing.T) {
	a := NewInstance("MyDevice", "root/cimv2")
	a.SetProperty("Name", cimtype.NewString("dev0"))
	b := NewInstance("MyDevice", "root/other")
	b.SetProperty("Name", cimtype.NewString("dev0"))
	if !a.Equal(b) {
		t.Error("expected instances with equal properties to compare equal regardless of namespace")
	}
}

func TestInstanceCloneIsIndependent(t *testing.T) {
	a := NewInstance("MyDevice", "root/cimv2")
	a.SetProperty("Name", cimtype.NewString("dev0"))
	clone := a.Clone()
	clone.SetProperty("Name", cimtype.NewString("dev1"))
	if a.Value("Name").(cimtype.String) != cimtype.NewString("dev0") {
		t.Error("expected clone mutation not to affect original")
	}
}
