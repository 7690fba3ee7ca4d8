package parser

import (
	"testing"

	"github.com/wbemix/gowbem/internal/mof/ast"
)

func mustParse(t *testing.T, source string) *ast.CompilationUnit {
	t.Helper()
	unit, errs := Compile("test.mof", source, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	return unit
}

func TestParseClassDeclWithPropertiesAndMethods(t *testing.T) {
	src := `
[Abstract, Description("a class")]
class CIM_Foo : CIM_Bar {
	[Key] string Name;
	uint32 Count[] = {1, 2, 3};
	CIM_Foo REF Parent;

	[Static] uint32 DoThing([In] string arg);
};
`
	unit := mustParse(t, src)
	if len(unit.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(unit.Declarations))
	}
	class, ok := unit.Declarations[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassDecl", unit.Declarations[0])
	}
	if class.Name != "CIM_Foo" || class.Superclass != "CIM_Bar" {
		t.Fatalf("got name=%q superclass=%q", class.Name, class.Superclass)
	}
	if _, ok := class.Qualifiers.Get("Abstract"); !ok {
		t.Errorf("expected Abstract qualifier")
	}
	if len(class.Properties) != 3 {
		t.Fatalf("got %d properties, want 3", len(class.Properties))
	}

	name := class.Properties[0]
	if name.Name != "Name" || name.Type != "string" || name.IsRef {
		t.Errorf("Name property: got %+v", name)
	}
	if _, ok := name.Qualifiers.Get("Key"); !ok {
		t.Errorf("expected Key qualifier on Name")
	}

	count := class.Properties[1]
	if count.Name != "Count" || count.Type != "uint32" || !count.IsArray {
		t.Errorf("Count property: got %+v", count)
	}
	arr, ok := count.Default.(*ast.ArrayLiteral)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("Count default: got %#v", count.Default)
	}

	parent := class.Properties[2]
	if !parent.IsRef || parent.RefClass != "CIM_Foo" || parent.Name != "Parent" {
		t.Errorf("Parent property: got %+v", parent)
	}

	if len(class.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(class.Methods))
	}
	method := class.Methods[0]
	if method.Name != "DoThing" || method.ReturnType != "uint32" {
		t.Errorf("method: got %+v", method)
	}
	if len(method.Parameters) != 1 || method.Parameters[0].Name != "arg" {
		t.Fatalf("method parameters: got %+v", method.Parameters)
	}
	if _, ok := method.Parameters[0].Qualifiers.Get("In"); !ok {
		t.Errorf("expected In qualifier on arg")
	}
}

func TestParseQualifierTypeDecl(t *testing.T) {
	src := `Qualifier Key : boolean = false, Scope(property, reference), Flavor(DisableOverride, ToSubclass);`
	unit := mustParse(t, src)
	decl, ok := unit.Declarations[0].(*ast.QualifierTypeDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.QualifierTypeDecl", unit.Declarations[0])
	}
	if decl.Name != "Key" || decl.Type != "boolean" {
		t.Fatalf("got %+v", decl)
	}
	lit, ok := decl.Default.(*ast.ScalarLiteral)
	if !ok || lit.Literal != "false" {
		t.Fatalf("default: got %#v", decl.Default)
	}
	if len(decl.Scopes) != 2 || len(decl.Flavors) != 2 {
		t.Fatalf("got scopes=%v flavors=%v", decl.Scopes, decl.Flavors)
	}
}

func TestParseInstanceDeclWithAliasAndReference(t *testing.T) {
	src := `
instance of CIM_Foo as $foo1 {
	Name = "widget";
	Count = {1, 2};
};

instance of CIM_Bar {
	Ref1 = $foo1;
	Missing = NULL;
};
`
	unit := mustParse(t, src)
	if len(unit.Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2", len(unit.Declarations))
	}
	first, ok := unit.Declarations[0].(*ast.InstanceDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.InstanceDecl", unit.Declarations[0])
	}
	if first.ClassName != "CIM_Foo" || first.Alias != "foo1" {
		t.Fatalf("got %+v", first)
	}
	if len(first.Properties) != 2 || first.Properties[0].Name != "Name" {
		t.Fatalf("got properties %+v", first.Properties)
	}

	second := unit.Declarations[1].(*ast.InstanceDecl)
	ref, ok := second.Properties[0].Value.(*ast.Reference)
	if !ok || ref.Alias != "foo1" {
		t.Fatalf("Ref1 value: got %#v", second.Properties[0].Value)
	}
	if _, ok := second.Properties[1].Value.(*ast.NullLiteral); !ok {
		t.Fatalf("Missing value: got %#v", second.Properties[1].Value)
	}
}

func TestParseQualifierApplicationWithFlavors(t *testing.T) {
	src := `[Description("x") : ToSubclass Translatable] class CIM_Foo { };`
	unit := mustParse(t, src)
	class := unit.Declarations[0].(*ast.ClassDecl)
	app, ok := class.Qualifiers.Get("Description")
	if !ok {
		t.Fatalf("expected Description qualifier")
	}
	if len(app.Flavors) != 2 || app.Flavors[0] != "ToSubclass" || app.Flavors[1] != "Translatable" {
		t.Fatalf("got flavors %v", app.Flavors)
	}
}

func TestParseStringLiteralConcatenation(t *testing.T) {
	src := `instance of CIM_Foo { Name = "abc" "def"; };`
	unit := mustParse(t, src)
	inst := unit.Declarations[0].(*ast.InstanceDecl)
	lit, ok := inst.Properties[0].Value.(*ast.ScalarLiteral)
	if !ok || lit.Literal != "abcdef" {
		t.Fatalf("got %#v", inst.Properties[0].Value)
	}
}

func TestParseNegativeNumberLiteral(t *testing.T) {
	src := `instance of CIM_Foo { Offset = -7; Ratio = -3.5; };`
	unit := mustParse(t, src)
	inst := unit.Declarations[0].(*ast.InstanceDecl)
	offset := inst.Properties[0].Value.(*ast.ScalarLiteral)
	if offset.Literal != "-7" {
		t.Errorf("got %q, want -7", offset.Literal)
	}
	ratio := inst.Properties[1].Value.(*ast.ScalarLiteral)
	if ratio.Literal != "-3.5" {
		t.Errorf("got %q, want -3.5", ratio.Literal)
	}
}

func TestParseMalformedDeclarationRecovers(t *testing.T) {
	src := `
class ;

class CIM_Good { };
`
	unit, errs := Compile("test.mof", src, nil)
	if len(errs) == 0 {
		t.Fatalf("expected at least one error from the malformed declaration")
	}
	if len(unit.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1 (only the well-formed class)", len(unit.Declarations))
	}
	class, ok := unit.Declarations[0].(*ast.ClassDecl)
	if !ok || class.Name != "CIM_Good" {
		t.Fatalf("got %#v", unit.Declarations[0])
	}
}

func TestParseMalformedClassMemberRecoversWithinClass(t *testing.T) {
	src := `
class CIM_Foo {
	string Name;
	;;;
	uint32 Count;
};
`
	unit, errs := Compile("test.mof", src, nil)
	if len(errs) == 0 {
		t.Fatalf("expected an error from the stray semicolons")
	}
	class := unit.Declarations[0].(*ast.ClassDecl)
	if len(class.Properties) != 2 {
		t.Fatalf("got %d properties, want 2 (Name and Count survive)", len(class.Properties))
	}
	if class.Properties[0].Name != "Name" || class.Properties[1].Name != "Count" {
		t.Fatalf("got %+v", class.Properties)
	}
}

type fakeIncluder struct {
	files map[string]string
}

func (f fakeIncluder) Resolve(name string) (string, string, error) {
	src, ok := f.files[name]
	if !ok {
		return "", "", errIncludesUnsupported
	}
	return name, src, nil
}

func TestParsePragmaIncludeMergesDeclarations(t *testing.T) {
	includer := fakeIncluder{files: map[string]string{
		"base.mof": `class CIM_Base { };`,
	}}
	src := `
#pragma include ("base.mof");
class CIM_Derived : CIM_Base { };
`
	unit, errs := Compile("main.mof", src, includer)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(unit.Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2", len(unit.Declarations))
	}
	base, ok := unit.Declarations[0].(*ast.ClassDecl)
	if !ok || base.Name != "CIM_Base" {
		t.Fatalf("got %#v", unit.Declarations[0])
	}
	derived, ok := unit.Declarations[1].(*ast.ClassDecl)
	if !ok || derived.Name != "CIM_Derived" {
		t.Fatalf("got %#v", unit.Declarations[1])
	}
}

func TestParsePragmaIncludeCycleDetected(t *testing.T) {
	includer := fakeIncluder{files: map[string]string{
		"a.mof": `#pragma include ("main.mof");`,
	}}
	src := `#pragma include ("a.mof");`
	_, errs := Compile("main.mof", src, includer)
	if len(errs) == 0 {
		t.Fatalf("expected an include-cycle error")
	}
}

func TestParseNoIncludesRejectsPragma(t *testing.T) {
	src := `#pragma include ("anything.mof");`
	_, errs := Compile("main.mof", src, nil)
	if len(errs) == 0 {
		t.Fatalf("expected NoIncludes to reject the include pragma")
	}
}
