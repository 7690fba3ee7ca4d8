package semantic

import (
	"context"
	"strings"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/repository"
	"github.com/wbemix/gowbem/internal/werrors"
)

// Resolver runs the resolve sub-pass (spec.md §4.F) over one
// ast.CompilationUnit: it registers qualifier-type declarations, binds
// qualifier applications against them (deferred within the unit — a
// class may apply a qualifier type declared later in the same file,
// since every QualifierTypeDecl is registered before any class or
// instance is converted), links each class to its resolved superclass
// and propagates inherited members via cimobj.Class.DeriveFrom, and
// derives each instance's path from its class's key properties.
//
// A Resolver is single-use: construct one per compilation unit.
type Resolver struct {
	repo      repository.Repository
	namespace string
	file      string

	qualTypes map[string]*cimobj.QualifierDeclaration
	classes   map[string]*cimobj.Class
	aliases   map[string]*cimobj.Instance

	errs []error
}

// NewResolver constructs a Resolver targeting namespace, consulting
// repo for qualifier types and superclasses not declared in the unit
// being resolved.
func NewResolver(repo repository.Repository, namespace, file string) *Resolver {
	return &Resolver{
		repo:      repo,
		namespace: namespace,
		file:      file,
		qualTypes: make(map[string]*cimobj.QualifierDeclaration),
		classes:   make(map[string]*cimobj.Class),
		aliases:   make(map[string]*cimobj.Instance),
	}
}

func lower(s string) string { return strings.ToLower(s) }

func (r *Resolver) lookupQualifierType(name string) (*cimobj.QualifierDeclaration, bool) {
	if qt, ok := r.qualTypes[lower(name)]; ok {
		return qt, true
	}
	if r.repo == nil {
		return nil, false
	}
	qt, err := r.repo.GetQualifier(context.Background(), r.namespace, name)
	if err != nil {
		return nil, false
	}
	r.qualTypes[lower(name)] = qt
	return qt, true
}

func (r *Resolver) lookupClass(name string) (*cimobj.Class, bool) {
	if c, ok := r.classes[lower(name)]; ok {
		return c, true
	}
	if r.repo == nil {
		return nil, false
	}
	c, err := r.repo.GetClass(context.Background(), r.namespace, name, false, true, true)
	if err != nil {
		return nil, false
	}
	r.classes[lower(name)] = c
	return c, true
}

func (r *Resolver) pathFor(inst *cimobj.Instance) (*cimobj.InstanceName, error) {
	var keyNames []string
	if c, ok := r.lookupClass(inst.ClassName); ok {
		keyNames = c.KeyPropertyNames()
	}
	return inst.Path(keyNames)
}

// Resolve walks unit and produces the ordered Plan the apply sub-pass
// consumes, plus every error accumulated along the way. Resolve never
// touches the repository for writes; GetQualifier/GetClass lookups are
// read-only fallbacks for names not declared in this unit.
func (r *Resolver) Resolve(unit *ast.CompilationUnit) (*Plan, []error) {
	plan := &Plan{Namespace: r.namespace}

	r.resolveQualifierTypes(unit, plan)
	r.resolveClasses(unit, plan)
	r.resolveInstances(unit, plan)

	return plan, r.errs
}

func (r *Resolver) resolveQualifierTypes(unit *ast.CompilationUnit, plan *Plan) {
	for _, decl := range unit.Declarations {
		qd, ok := decl.(*ast.QualifierTypeDecl)
		if !ok {
			continue
		}
		kind, ok := kindFromTypeName(qd.Type)
		if !ok {
			r.errs = append(r.errs, &werrors.MOFResolveError{
				File: r.file, Pos: pos(qd.Pos()), Element: "qualifier " + qd.Name,
				Message: "unknown type " + qd.Type,
			})
			continue
		}
		decln := cimobj.NewQualifierDeclaration(qd.Name, kind, qd.IsArray, nil)
		decln.ArraySize = qd.ArraySize
		for _, s := range qd.Scopes {
			if sc, ok := scopeFromName(s); ok {
				decln.WithScope(sc)
			}
		}
		for _, f := range qd.Flavors {
			if fl, ok := flavorFromName(f); ok {
				decln.WithFlavor(fl)
			}
		}
		if qd.Default != nil {
			v, err := r.evalValue(qd.Default, kind, qd.IsArray, r.file)
			if err != nil {
				r.errs = append(r.errs, err)
				continue
			}
			decln.DefaultValue = v
		}
		r.qualTypes[lower(decln.Name)] = decln
		plan.Mutations = append(plan.Mutations, &qualifierMutation{namespace: r.namespace, decl: decln})
	}
}
