package mofcompiler

import (
	"context"
	"testing"

	"github.com/wbemix/gowbem/internal/repository"
)

func TestCompileClassDeclarationCreatesClassInRepository(t *testing.T) {
	repo := repository.NewMock()
	c := New(repo, "root/cimv2", nil)

	res := c.Compile(context.Background(), "test.mof", `
class CIM_Widget {
	string Name;
};
`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	cls, err := repo.GetClass(context.Background(), "root/cimv2", "CIM_Widget", true, false, false)
	if err != nil {
		t.Fatalf("GetClass: %v", err)
	}
	if cls == nil {
		t.Fatal("expected CIM_Widget to exist after Compile")
	}
}

func TestDryRunDoesNotMutateRepository(t *testing.T) {
	repo := repository.NewMock()
	c := New(repo, "root/cimv2", nil)

	res := c.DryRun(context.Background(), "test.mof", `
class CIM_Gadget {
	string Name;
};
`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Plan == nil {
		t.Fatal("expected a plan from a dry run")
	}

	if _, err := repo.GetClass(context.Background(), "root/cimv2", "CIM_Gadget", true, false, false); err == nil {
		t.Fatal("expected CIM_Gadget to not exist after a dry run")
	}
}

func TestCompileParseErrorSkipsSemanticPass(t *testing.T) {
	repo := repository.NewMock()
	c := New(repo, "root/cimv2", nil)

	res := c.Compile(context.Background(), "test.mof", `class {{{`)
	if len(res.Errors) == 0 {
		t.Fatal("expected at least one parse error")
	}
	if res.Plan != nil {
		t.Fatal("expected no plan when parsing fails")
	}
}

func TestCompileRejectsIncludeWithoutAnIncluder(t *testing.T) {
	repo := repository.NewMock()
	c := New(repo, "root/cimv2", nil)

	res := c.Compile(context.Background(), "test.mof", `#pragma include ("shared.mof")`)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error rejecting the include directive")
	}
}
