// Package mofcompiler is the supported entry point for compiling MOF
// source against a repository: it fronts internal/mof/parser and
// internal/mof/semantic behind one Compile/DryRun pair, so a caller
// outside this module never imports internal/mof directly.
package mofcompiler

import (
	"context"

	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/mof/parser"
	"github.com/wbemix/gowbem/internal/mof/semantic"
	"github.com/wbemix/gowbem/internal/repository"
	"github.com/wbemix/gowbem/internal/wlog"
)

// Includer resolves a `#pragma include(...)` file name to its
// canonical path and source text. NoIncludes rejects every include
// directive for callers compiling a single self-contained document.
type Includer = parser.Includer

// NoIncludes is an Includer that turns every #pragma include into a
// hard parse error.
type NoIncludes = parser.NoIncludes

// Plan is the ordered mutation plan a compilation resolves before
// applying it: qualifier types, then classes, then instances.
type Plan = semantic.Plan

// Result is the outcome of compiling one document: the plan it
// resolved (populated whenever parsing succeeded, even when resolution
// failed, so a caller can inspect what a dry run would have done; nil
// when parsing failed) and every error accumulated along the way.
type Result struct {
	Unit   *ast.CompilationUnit
	Plan   *Plan
	Errors []error
}

// Compiler compiles MOF source against one repository and namespace.
type Compiler struct {
	Repo      repository.Repository
	Namespace string
	Includer  Includer
	Logger    wlog.Logger
}

// New builds a Compiler. A nil includer rejects #pragma include; a
// zero-value logger is a no-op logger, matching the defaults
// internal/wclient and internal/mof/semantic already use.
func New(repo repository.Repository, namespace string, includer Includer) *Compiler {
	if includer == nil {
		includer = NoIncludes{}
	}
	return &Compiler{Repo: repo, Namespace: namespace, Includer: includer}
}

// Compile parses source and, unless dryRun, applies the resulting
// plan to the Compiler's repository. Parse errors short-circuit
// before any semantic pass runs; the semantic pass's own Resolve
// errors likewise skip Apply entirely (internal/mof/semantic.Compile's
// contract), so a non-empty Result.Errors after a successful parse
// still carries a preview Plan but never a partially applied one.
func (c *Compiler) Compile(ctx context.Context, file, source string) *Result {
	unit, parseErrs := parser.Compile(file, source, c.Includer)
	if len(parseErrs) > 0 {
		return &Result{Unit: unit, Errors: parseErrs}
	}
	sem := semantic.Compile(ctx, c.Repo, c.Namespace, file, unit, false, c.Logger)
	return &Result{Unit: unit, Plan: sem.Plan, Errors: sem.Errors}
}

// DryRun parses source and resolves the plan it would apply without
// mutating the repository.
func (c *Compiler) DryRun(ctx context.Context, file, source string) *Result {
	unit, parseErrs := parser.Compile(file, source, c.Includer)
	if len(parseErrs) > 0 {
		return &Result{Unit: unit, Errors: parseErrs}
	}
	sem := semantic.Compile(ctx, c.Repo, c.Namespace, file, unit, true, c.Logger)
	return &Result{Unit: unit, Plan: sem.Plan, Errors: sem.Errors}
}
