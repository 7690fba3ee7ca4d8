package semantic

import (
	"context"
	"testing"

	"github.com/wbemix/gowbem/internal/mof/parser"
	"github.com/wbemix/gowbem/internal/repository"
	"github.com/wbemix/gowbem/internal/wlog"
)

func compileSource(t *testing.T, repo repository.Repository, src string) *Result {
	t.Helper()
	unit, errs := parser.Compile("test.mof", src, nil)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return Compile(context.Background(), repo, "root/cimv2", "test.mof", unit, false, wlog.Nop())
}

func TestCompileQualifierTypeThenClassUsingIt(t *testing.T) {
	repo := repository.NewMock()
	src := `
Qualifier Key : boolean = false, Scope(property), Flavor(DisableOverride, ToSubclass);
Qualifier Description : string, Scope(any);

[Description("a key'd class")]
class CIM_Foo {
	[Key] string Name;
};
`
	res := compileSource(t, repo, src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	decl, err := repo.GetQualifier(context.Background(), "root/cimv2", "Key")
	if err != nil {
		t.Fatalf("GetQualifier: %v", err)
	}
	if decl.Name != "Key" {
		t.Fatalf("got %+v", decl)
	}

	class, err := repo.GetClass(context.Background(), "root/cimv2", "CIM_Foo", false, true, true)
	if err != nil {
		t.Fatalf("GetClass: %v", err)
	}
	prop, ok := class.Property("Name")
	if !ok {
		t.Fatalf("expected Name property")
	}
	if _, ok := prop.Qualifier("Key"); !ok {
		t.Errorf("expected Key qualifier on Name property")
	}
}

func TestCompileForwardReferencedQualifierWithinUnit(t *testing.T) {
	repo := repository.NewMock()
	src := `
[Abstract]
class CIM_Foo { };

Qualifier Abstract : boolean = false, Scope(class);
`
	res := compileSource(t, repo, src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	class, err := repo.GetClass(context.Background(), "root/cimv2", "CIM_Foo", false, true, true)
	if err != nil {
		t.Fatalf("GetClass: %v", err)
	}
	if _, ok := class.Qualifier("Abstract"); !ok {
		t.Errorf("expected Abstract qualifier to resolve despite being declared after the class")
	}
}

func TestCompileSubclassBeforeSuperclassInSourceOrder(t *testing.T) {
	repo := repository.NewMock()
	src := `
Qualifier Key : boolean = false, Scope(property), Flavor(DisableOverride, ToSubclass);

class CIM_Child : CIM_Parent {
	string Extra;
};

class CIM_Parent {
	[Key] string Name;
};
`
	res := compileSource(t, repo, src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	child, err := repo.GetClass(context.Background(), "root/cimv2", "CIM_Child", false, true, true)
	if err != nil {
		t.Fatalf("GetClass: %v", err)
	}
	if _, ok := child.Property("Name"); !ok {
		t.Errorf("expected Name to be inherited from CIM_Parent")
	}
	if _, ok := child.Property("Extra"); !ok {
		t.Errorf("expected Extra to remain on CIM_Child")
	}
}

func TestCompileUnresolvableSuperclassReportsError(t *testing.T) {
	repo := repository.NewMock()
	src := `class CIM_Orphan : CIM_Nonexistent { };`
	res := compileSource(t, repo, src)
	if len(res.Errors) == 0 {
		t.Fatalf("expected an unresolved-superclass error")
	}
	if _, err := repo.GetClass(context.Background(), "root/cimv2", "CIM_Orphan", false, true, true); err == nil {
		t.Errorf("expected CIM_Orphan to never be created")
	}
}

func TestCompileInstanceWithAliasReference(t *testing.T) {
	repo := repository.NewMock()
	src := `
Qualifier Key : boolean = false, Scope(property), Flavor(DisableOverride, ToSubclass);

class CIM_Foo {
	[Key] string Name;
};

class CIM_Bar {
	CIM_Foo REF Target;
};

instance of CIM_Foo as $f1 {
	Name = "widget";
};

instance of CIM_Bar {
	Target = $f1;
};
`
	res := compileSource(t, repo, src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestCompileUndefinedAliasReportsError(t *testing.T) {
	repo := repository.NewMock()
	src := `
class CIM_Bar { string Target; };

instance of CIM_Bar {
	Target = $missing;
};
`
	res := compileSource(t, repo, src)
	if len(res.Errors) == 0 {
		t.Fatalf("expected an undefined-alias error")
	}
}

func TestCompileUndeclaredQualifierReportsErrorButContinues(t *testing.T) {
	repo := repository.NewMock()
	src := `
[NoSuchQualifier]
class CIM_Foo {
	string Name;
};
`
	res := compileSource(t, repo, src)
	if len(res.Errors) == 0 {
		t.Fatalf("expected an undeclared-qualifier error")
	}
	if res.Plan.Len() != 1 {
		t.Fatalf("got plan length %d, want 1 (the class is still resolved despite the bad qualifier)", res.Plan.Len())
	}
	cm, ok := res.Plan.Mutations[0].(*classMutation)
	if !ok {
		t.Fatalf("got %T, want *classMutation", res.Plan.Mutations[0])
	}
	if _, ok := cm.class.Property("Name"); !ok {
		t.Errorf("expected Name property to survive")
	}
}

func TestCompileDryRunProducesPlanWithoutMutatingRepository(t *testing.T) {
	repo := repository.NewMock()
	unit, errs := parser.Compile("test.mof", `class CIM_Foo { };`, nil)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	res := Compile(context.Background(), repo, "root/cimv2", "test.mof", unit, true, wlog.Nop())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Plan.Len() != 1 {
		t.Fatalf("got plan length %d, want 1", res.Plan.Len())
	}
	if _, err := repo.GetClass(context.Background(), "root/cimv2", "CIM_Foo", false, true, true); err == nil {
		t.Errorf("expected dry run to leave the repository untouched")
	}
}

func TestCompileResolveErrorsSkipApplyEntirely(t *testing.T) {
	repo := repository.NewMock()
	src := `
class CIM_Good { };
class CIM_Bad : CIM_Missing { };
`
	res := compileSource(t, repo, src)
	if len(res.Errors) == 0 {
		t.Fatalf("expected errors")
	}
	if _, err := repo.GetClass(context.Background(), "root/cimv2", "CIM_Good", false, true, true); err == nil {
		t.Errorf("expected apply to be skipped entirely, including for the well-formed class")
	}
}

func TestCompileInstanceAlreadyExistsModifiesAndWarnsOnRollbackLimitation(t *testing.T) {
	repo := repository.NewMock()
	src := `
Qualifier Key : boolean = false, Scope(property), Flavor(DisableOverride, ToSubclass);

class CIM_Foo {
	[Key] string Name;
	string Extra;
};
instance of CIM_Foo {
	Name = "widget";
	Extra = "first";
};
`
	res := compileSource(t, repo, src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	src2 := `
instance of CIM_Foo {
	Name = "widget";
	Extra = "second";
};
`
	res2 := compileSource(t, repo, src2)
	if len(res2.Errors) != 0 {
		t.Fatalf("unexpected errors on second compile: %v", res2.Errors)
	}
}
