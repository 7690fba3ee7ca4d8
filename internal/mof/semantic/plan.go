package semantic

import (
	"context"
	"errors"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/repository"
	"github.com/wbemix/gowbem/internal/werrors"
	"github.com/wbemix/gowbem/internal/wlog"
)

// Plan is the ordered set of repository mutations the resolve sub-pass
// derived from one compilation unit: qualifier types, then classes
// (superclass before subclass), then instances — the dependency order
// spec.md §4.F requires the apply sub-pass to honor.
type Plan struct {
	Namespace string
	Mutations []mutation
}

// Len reports how many mutations the plan carries; a unit containing
// only pragmas produces a valid, empty plan.
func (p *Plan) Len() int { return len(p.Mutations) }

type undoFunc func(ctx context.Context, repo repository.Repository) error

// mutation is one repository create/modify the resolve pass derived
// from a declaration. apply performs it and returns a closure that
// reverses it; Apply only ever invokes undo in reverse order, after
// a later mutation in the same plan fails.
type mutation interface {
	apply(ctx context.Context, repo repository.Repository, log wlog.Logger) (undoFunc, error)
	describe() string
}

// Apply executes plan against repo in order. If any mutation fails,
// every mutation applied so far is undone in reverse before the error
// is returned. With dryRun set, Apply performs no repository calls at
// all — the plan itself is the result the caller inspects. log may be
// the zero value (wlog.Nop()); it only receives best-effort-rollback
// advisories, never anything load-bearing.
func Apply(ctx context.Context, repo repository.Repository, plan *Plan, dryRun bool, log wlog.Logger) error {
	if dryRun {
		return nil
	}
	var undoLog []undoFunc
	for _, m := range plan.Mutations {
		undo, err := m.apply(ctx, repo, log)
		if err != nil {
			rollback(ctx, repo, undoLog)
			return &werrors.MOFRepositoryError{Operation: "apply", Namespace: plan.Namespace, Target: m.describe(), Err: err}
		}
		if undo != nil {
			undoLog = append(undoLog, undo)
		}
	}
	return nil
}

// rollback plays the undo log back in reverse. Individual undo
// failures are not escalated: by the time rollback runs, the caller
// already has the original apply error to report, and a partially
// undone plan is still strictly better than an untouched one.
func rollback(ctx context.Context, repo repository.Repository, undoLog []undoFunc) {
	for i := len(undoLog) - 1; i >= 0; i-- {
		_ = undoLog[i](ctx, repo)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, &werrors.CIMError{Code: werrors.CIMErrNotFound})
}

func isAlreadyExists(err error) bool {
	return errors.Is(err, &werrors.CIMError{Code: werrors.CIMErrAlreadyExists})
}

// qualifierMutation applies one QUALIFIER TYPE declaration. Repository
// has no separate create/modify split for qualifier types (SetQualifier
// covers both), so rollback of an overwritten declaration is
// best-effort: a SetQualifier that replaced an existing declaration
// restores the prior one verbatim, but a create's rollback can only
// delete, not resurrect a declaration another unit depended on in the
// same run.
type qualifierMutation struct {
	namespace string
	decl      *cimobj.QualifierDeclaration
}

func (m *qualifierMutation) describe() string { return "qualifier " + m.decl.Name }

func (m *qualifierMutation) apply(ctx context.Context, repo repository.Repository, _ wlog.Logger) (undoFunc, error) {
	previous, err := repo.GetQualifier(ctx, m.namespace, m.decl.Name)
	existed := err == nil
	if err := repo.SetQualifier(ctx, m.namespace, m.decl); err != nil {
		return nil, err
	}
	if existed {
		return func(ctx context.Context, repo repository.Repository) error {
			return repo.SetQualifier(ctx, m.namespace, previous)
		}, nil
	}
	return func(ctx context.Context, repo repository.Repository) error {
		return repo.DeleteQualifier(ctx, m.namespace, m.decl.Name)
	}, nil
}

// classMutation creates or (if already present) modifies one class.
type classMutation struct {
	namespace string
	class     *cimobj.Class
}

func (m *classMutation) describe() string { return "class " + m.class.Name }

func (m *classMutation) apply(ctx context.Context, repo repository.Repository, _ wlog.Logger) (undoFunc, error) {
	previous, err := repo.GetClass(ctx, m.namespace, m.class.Name, false, true, true)
	switch {
	case err == nil:
		if err := repo.ModifyClass(ctx, m.namespace, m.class); err != nil {
			return nil, err
		}
		return func(ctx context.Context, repo repository.Repository) error {
			return repo.ModifyClass(ctx, m.namespace, previous)
		}, nil
	case isNotFound(err):
		if err := repo.CreateClass(ctx, m.namespace, m.class); err != nil {
			return nil, err
		}
		return func(ctx context.Context, repo repository.Repository) error {
			return repo.DeleteClass(ctx, m.namespace, m.class.Name)
		}, nil
	default:
		return nil, err
	}
}

// instanceMutation creates or (if the path already exists) modifies one
// instance. Repository exposes no GetInstance, so a modify's rollback
// cannot restore the overwritten property values — only a freshly
// created instance can be cleanly undone, by deleting it.
type instanceMutation struct {
	namespace string
	instance  *cimobj.Instance
}

func (m *instanceMutation) describe() string { return "instance of " + m.instance.ClassName }

func (m *instanceMutation) apply(ctx context.Context, repo repository.Repository, log wlog.Logger) (undoFunc, error) {
	path, err := repo.CreateInstance(ctx, m.namespace, m.instance)
	if err == nil {
		return func(ctx context.Context, repo repository.Repository) error {
			return repo.DeleteInstance(ctx, m.namespace, path)
		}, nil
	}
	if !isAlreadyExists(err) {
		return nil, err
	}
	if err := repo.ModifyInstance(ctx, m.namespace, m.instance, true, nil); err != nil {
		return nil, err
	}
	log.RollbackWarning(m.describe(), "no GetInstance operation to snapshot prior property values; modify cannot be undone")
	return nil, nil
}
