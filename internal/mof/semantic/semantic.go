package semantic

import (
	"context"

	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/repository"
	"github.com/wbemix/gowbem/internal/wlog"
)

// Result is the outcome of compiling one ast.CompilationUnit: the plan
// the resolve sub-pass derived (always returned, even on error, so a
// dry-run caller can inspect it) and every error accumulated resolving
// or applying it.
type Result struct {
	Plan   *Plan
	Errors []error
}

// Compile runs the resolve sub-pass over unit against the state of
// namespace in repo, then — unless dryRun or resolution produced any
// error — applies the resulting plan, rolling back on the first
// mutation failure. Resolution errors are never partially applied: if
// Resolve reports any error, Apply is skipped entirely and the caller
// sees Result.Plan only as a preview of what would have run.
func Compile(ctx context.Context, repo repository.Repository, namespace, file string, unit *ast.CompilationUnit, dryRun bool, log wlog.Logger) *Result {
	resolver := NewResolver(repo, namespace, file)
	plan, errs := resolver.Resolve(unit)
	res := &Result{Plan: plan, Errors: errs}
	if len(errs) > 0 || dryRun {
		return res
	}
	if err := Apply(ctx, repo, plan, false, log); err != nil {
		res.Errors = append(res.Errors, err)
	}
	return res
}
