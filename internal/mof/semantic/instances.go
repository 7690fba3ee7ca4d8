package semantic

import (
	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/mof/token"
	"github.com/wbemix/gowbem/internal/werrors"
)

// resolveInstances converts every ast.InstanceDecl into a cimobj.Instance,
// in declaration order: an instance's $alias becomes available to every
// later instance in the unit ("instance of Foo as $f"; a following
// instance may assign a reference property the value $f), matching
// DSP0004 §5.7's informative examples, none of which alias-reference a
// not-yet-declared instance.
func (r *Resolver) resolveInstances(unit *ast.CompilationUnit, plan *Plan) {
	for _, decl := range unit.Declarations {
		id, ok := decl.(*ast.InstanceDecl)
		if !ok {
			continue
		}
		inst := r.buildInstance(id)
		if id.Alias != "" {
			r.aliases[id.Alias] = inst
		}
		plan.Mutations = append(plan.Mutations, &instanceMutation{namespace: r.namespace, instance: inst})
	}
}

func (r *Resolver) buildInstance(decl *ast.InstanceDecl) *cimobj.Instance {
	class, ok := r.lookupClass(decl.ClassName)

	var inst *cimobj.Instance
	if ok {
		inst = class.NewInstance()
	} else {
		inst = cimobj.NewInstance(decl.ClassName, r.namespace)
		r.errs = append(r.errs, &werrors.MOFResolveError{
			File: r.file, Pos: pos(decl.Pos()), Element: "instance of " + decl.ClassName,
			Message: "class " + decl.ClassName + " not found",
		})
	}
	inst.Namespace = r.namespace

	for _, pv := range decl.Properties {
		kind, isArray := propertyType(class, pv.Name, pv.Value)
		v, err := r.evalValue(pv.Value, kind, isArray, r.file)
		if err != nil {
			r.errs = append(r.errs, err)
			continue
		}
		inst.SetProperty(pv.Name, v)
	}
	return inst
}

// propertyType resolves the type an instance property value should be
// evaluated against: the declaring class's property type when known,
// otherwise a type inferred from the initializer's own literal kind
// (for an instance whose class didn't resolve, which is already a
// reported error — inference just lets compilation continue).
func propertyType(class *cimobj.Class, name string, init ast.Initializer) (cimtype.Kind, bool) {
	if class != nil {
		if p, ok := class.Property(name); ok {
			return p.Type, p.IsArray
		}
	}
	return inferKind(init), false
}

func inferKind(init ast.Initializer) cimtype.Kind {
	lit, ok := init.(*ast.ScalarLiteral)
	if !ok {
		if _, isArr := init.(*ast.ArrayLiteral); isArr {
			return cimtype.KindString
		}
		return cimtype.KindString
	}
	switch lit.Kind {
	case token.STRING:
		return cimtype.KindString
	case token.CHAR:
		return cimtype.KindChar16
	case token.INTEGER:
		return cimtype.KindSint64
	case token.REAL:
		return cimtype.KindReal64
	case token.TRUE, token.FALSE:
		return cimtype.KindBoolean
	default:
		return cimtype.KindString
	}
}
