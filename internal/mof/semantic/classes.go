package semantic

import (
	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/werrors"
)

// resolveClasses converts every ast.ClassDecl in unit into a
// cimobj.Class, in dependency order: a class whose superclass is
// itself declared in this unit is only converted once that superclass
// has been resolved. Classes are emitted to plan in the same
// (superclass-before-subclass) order the apply sub-pass requires.
func (r *Resolver) resolveClasses(unit *ast.CompilationUnit, plan *Plan) {
	var pending []*ast.ClassDecl
	for _, decl := range unit.Declarations {
		if c, ok := decl.(*ast.ClassDecl); ok {
			pending = append(pending, c)
		}
	}

	for len(pending) > 0 {
		progressed := false
		var next []*ast.ClassDecl
		for _, decl := range pending {
			var super *cimobj.Class
			if decl.Superclass != "" {
				var ok bool
				super, ok = r.lookupClass(decl.Superclass)
				if !ok {
					next = append(next, decl)
					continue
				}
			}
			class := r.buildClass(decl)
			if super != nil {
				if err := class.DeriveFrom(super); err != nil {
					r.errs = append(r.errs, &werrors.MOFResolveError{
						File: r.file, Pos: pos(decl.Pos()), Element: "class " + decl.Name,
						Message: err.Error(),
					})
				}
			}
			r.classes[lower(class.Name)] = class
			plan.Mutations = append(plan.Mutations, &classMutation{namespace: r.namespace, class: class})
			progressed = true
		}
		if !progressed {
			for _, decl := range next {
				r.errs = append(r.errs, &werrors.MOFResolveError{
					File: r.file, Pos: pos(decl.Pos()), Element: "class " + decl.Name,
					Message: "superclass " + decl.Superclass + " not found",
				})
			}
			return
		}
		pending = next
	}
}

func (r *Resolver) buildClass(decl *ast.ClassDecl) *cimobj.Class {
	class := cimobj.NewClass(decl.Name, decl.Superclass)
	class.Namespace = r.namespace

	element := "class " + decl.Name
	r.resolveQualifierList(decl.Qualifiers, element, r.file, class.SetQualifier)

	for _, pd := range decl.Properties {
		class.AddProperty(r.buildProperty(pd, element))
	}
	for _, md := range decl.Methods {
		class.AddMethod(r.buildMethod(md, element))
	}
	return class
}

func (r *Resolver) buildProperty(pd *ast.PropertyDecl, element string) *cimobj.Property {
	kind, refClass := r.resolveMemberType(pd.Type, pd.IsRef, pd.RefClass)
	p := cimobj.NewProperty(pd.Name, kind, pd.IsArray)
	p.RefClass = refClass

	r.resolveQualifierList(pd.Qualifiers, element+"."+pd.Name, r.file, p.SetQualifier)

	if pd.Default != nil {
		v, err := r.evalValue(pd.Default, kind, pd.IsArray, r.file)
		if err != nil {
			r.errs = append(r.errs, err)
		} else {
			p.Value = v
		}
	}
	return p
}

func (r *Resolver) buildMethod(md *ast.MethodDecl, element string) *cimobj.Method {
	kind, _ := r.resolveMemberType(md.ReturnType, false, "")
	m := cimobj.NewMethod(md.Name, kind, false)

	methodElement := element + "." + md.Name
	r.resolveQualifierList(md.Qualifiers, methodElement, r.file, m.SetQualifier)

	for _, pd := range md.Parameters {
		pk, refClass := r.resolveMemberType(pd.Type, pd.IsRef, pd.RefClass)
		param := cimobj.NewParameter(pd.Name, pk, pd.IsArray)
		param.RefClass = refClass
		r.resolveQualifierList(pd.Qualifiers, methodElement+"("+pd.Name+")", r.file, param.SetQualifier)
		m.AddParameter(param)
	}
	return m
}

// resolveMemberType maps a MOF type name to a cimtype.Kind, treating a
// REF-marked member as cimtype.KindReference regardless of the parsed
// type name (DSP0004 gives a reference property's "type" as the target
// class name, not a scalar type keyword).
func (r *Resolver) resolveMemberType(typeName string, isRef bool, refClass string) (cimtype.Kind, string) {
	if isRef {
		return cimtype.KindReference, refClass
	}
	kind, ok := kindFromTypeName(typeName)
	if !ok {
		r.errs = append(r.errs, &werrors.MOFResolveError{File: r.file, Message: "unknown type " + typeName})
		return cimtype.KindInvalid, ""
	}
	return kind, ""
}
