package mofcompiler

import (
	"context"
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/wbemix/gowbem/internal/repository"
)

// TestCompileClassHierarchySnapshot compiles a small class hierarchy
// and qualifier type, then snapshots the resulting repository state.
func TestCompileClassHierarchySnapshot(t *testing.T) {
	repo := repository.NewMock()
	c := New(repo, "root/cimv2", nil)

	const source = `
Qualifier Description : string = null,
	Scope(class, property),
	Flavor(ToSubclass);

[Description("a base device")]
class CIM_Device {
	[Description("the device name")]
	string Name;
};

[Description("a network device")]
class CIM_NetworkDevice : CIM_Device {
	string MACAddress;
};
`
	res := c.Compile(context.Background(), "hierarchy.mof", source)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	var out string
	for _, name := range []string{"CIM_Device", "CIM_NetworkDevice"} {
		cls, err := repo.GetClass(context.Background(), "root/cimv2", name, false, true, false)
		if err != nil {
			t.Fatalf("GetClass(%s): %v", name, err)
		}
		out += fmt.Sprintf("class %s : %q\n", cls.Name, cls.Superclass)
		for _, pname := range cls.Properties.Keys() {
			p, _ := cls.Properties.Get(pname)
			out += fmt.Sprintf("  %s %s (origin=%s propagated=%v)\n", p.Type, p.Name, p.ClassOrigin, p.Propagated)
		}
	}

	snaps.MatchSnapshot(t, out)
}
