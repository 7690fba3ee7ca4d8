package semantic

import (
	"strings"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/werrors"
)

var flavorNames = map[string]cimobj.Flavor{
	"tosubclass":      cimobj.FlavorToSubclass,
	"restricted":      cimobj.FlavorRestricted,
	"translatable":    cimobj.FlavorTranslatable,
	"enableoverride":  cimobj.FlavorOverridable,
	"disableoverride": cimobj.FlavorDisableOverride,
	"toinstance":      cimobj.FlavorToInstance,
	"amended":         cimobj.FlavorEnableOverride,
}

func flavorFromName(name string) (cimobj.Flavor, bool) {
	f, ok := flavorNames[strings.ToLower(name)]
	return f, ok
}

var scopeNames = map[string]cimobj.Scope{
	"class":       cimobj.ScopeClass,
	"association": cimobj.ScopeAssociation,
	"indication":  cimobj.ScopeIndication,
	"property":    cimobj.ScopeProperty,
	"reference":   cimobj.ScopeReference,
	"method":      cimobj.ScopeMethod,
	"parameter":   cimobj.ScopeParameter,
	"any":         cimobj.ScopeAny,
}

func scopeFromName(name string) (cimobj.Scope, bool) {
	s, ok := scopeNames[strings.ToLower(name)]
	return s, ok
}

// resolveQualifierList binds every qualifier application in list against
// r's known qualifier types (this unit's own declarations first,
// falling back to the target namespace's repository), evaluates each
// application's initializer against the declaration's type, and hands
// the resulting Qualifier to set for attachment to whatever element
// (class, property, method, parameter) the list belongs to.
//
// An application naming an undeclared qualifier, or whose value fails
// to convert, is reported via r.errs and skipped — it does not abort
// the rest of the member's qualifiers.
func (r *Resolver) resolveQualifierList(list *ast.QualifierList, element, file string, set func(*cimobj.Qualifier)) {
	if list == nil {
		return
	}
	for _, app := range list.Qualifiers {
		qt, ok := r.lookupQualifierType(app.Name)
		if !ok {
			r.errs = append(r.errs, &werrors.MOFResolveError{
				File: file, Pos: pos(app.Pos()), Element: element,
				Message: "undeclared qualifier " + app.Name,
			})
			continue
		}
		var val cimtype.Value
		var err error
		if app.Value != nil {
			val, err = r.evalValue(app.Value, qt.Type, qt.IsArray, file)
			if err != nil {
				r.errs = append(r.errs, err)
				continue
			}
		}
		q := qt.NewQualifier(val)
		for _, fname := range app.Flavors {
			if f, ok := flavorFromName(fname); ok {
				q.WithFlavor(f)
			}
		}
		set(q)
	}
}
