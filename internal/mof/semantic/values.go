package semantic

import (
	"fmt"

	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/mof/ast"
	"github.com/wbemix/gowbem/internal/mof/token"
	"github.com/wbemix/gowbem/internal/werrors"
)

// evalScalar converts one ast.Initializer (already known not to be an
// array) into a cimtype.Value of kind. References ($alias) are resolved
// through r's alias table, which must already hold every instance
// declared earlier in the unit (DSP0004 permits forward references
// only within the same array/property list, never across instances).
func (r *Resolver) evalScalar(init ast.Initializer, kind cimtype.Kind, file string) (cimtype.Value, error) {
	switch v := init.(type) {
	case *ast.NullLiteral:
		return nil, nil
	case *ast.Reference:
		inst, ok := r.aliases[v.Alias]
		if !ok {
			return nil, &werrors.MOFResolveError{File: file, Pos: pos(v.Pos()), Message: fmt.Sprintf("undefined alias $%s", v.Alias)}
		}
		path, err := r.pathFor(inst)
		if err != nil {
			return nil, &werrors.MOFResolveError{File: file, Pos: pos(v.Pos()), Message: err.Error()}
		}
		return cimtype.NewReference(path), nil
	case *ast.ScalarLiteral:
		return evalLiteral(v, kind, file)
	case *ast.ArrayLiteral:
		return nil, &werrors.MOFResolveError{File: file, Pos: pos(v.Pos()), Message: "array value not permitted here"}
	default:
		return nil, &werrors.MOFResolveError{File: file, Message: "unsupported initializer"}
	}
}

func evalLiteral(lit *ast.ScalarLiteral, kind cimtype.Kind, file string) (cimtype.Value, error) {
	switch kind {
	case cimtype.KindBoolean:
		switch lit.Kind {
		case token.TRUE:
			return cimtype.NewBoolean(true), nil
		case token.FALSE:
			return cimtype.NewBoolean(false), nil
		}
	case cimtype.KindString:
		return cimtype.NewString(lit.Literal), nil
	case cimtype.KindChar16:
		r := []rune(lit.Literal)
		if len(r) != 1 {
			return nil, &werrors.MOFResolveError{File: file, Pos: pos(lit.Pos()), Message: "char16 literal must be exactly one character"}
		}
		return cimtype.NewChar(r[0]), nil
	case cimtype.KindDatetime:
		dt, err := cimtype.ParseDateTime(lit.Literal)
		if err != nil {
			return nil, &werrors.MOFResolveError{File: file, Pos: pos(lit.Pos()), Message: err.Error()}
		}
		return dt, nil
	case cimtype.KindReal32, cimtype.KindReal64:
		f, err := parseFloatLiteral(lit.Literal)
		if err != nil {
			return nil, &werrors.MOFResolveError{File: file, Pos: pos(lit.Pos()), Message: "invalid real literal: " + lit.Literal}
		}
		if kind == cimtype.KindReal32 {
			return cimtype.NewReal32(f), nil
		}
		return cimtype.NewReal64(f), nil
	default:
		if kind.IsInteger() {
			n, err := parseIntLiteral(lit.Literal)
			if err != nil {
				return nil, &werrors.MOFResolveError{File: file, Pos: pos(lit.Pos()), Message: "invalid integer literal: " + lit.Literal}
			}
			if kind.IsSigned() {
				v, err := cimtype.NewInteger(kind, n)
				if err != nil {
					return nil, &werrors.MOFResolveError{File: file, Pos: pos(lit.Pos()), Message: err.Error()}
				}
				return v, nil
			}
			v, err := cimtype.NewUnsignedInteger(kind, uint64(n))
			if err != nil {
				return nil, &werrors.MOFResolveError{File: file, Pos: pos(lit.Pos()), Message: err.Error()}
			}
			return v, nil
		}
	}
	return nil, &werrors.MOFResolveError{File: file, Pos: pos(lit.Pos()), Message: fmt.Sprintf("cannot convert literal %q to type %s", lit.Literal, kind)}
}

// evalValue converts init into a cimtype.Value of kind, honoring
// isArray: an array-typed slot requires an ast.ArrayLiteral (or NULL),
// converted element-wise through evalScalar.
func (r *Resolver) evalValue(init ast.Initializer, kind cimtype.Kind, isArray bool, file string) (cimtype.Value, error) {
	if _, ok := init.(*ast.NullLiteral); ok {
		return nil, nil
	}
	if !isArray {
		return r.evalScalar(init, kind, file)
	}
	arr, ok := init.(*ast.ArrayLiteral)
	if !ok {
		return nil, &werrors.MOFResolveError{File: file, Pos: pos(init.Pos()), Message: "expected an array value"}
	}
	elems := make([]cimtype.Value, 0, len(arr.Elements))
	for _, e := range arr.Elements {
		v, err := r.evalScalar(e, kind, file)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return cimtype.NewArray(kind, elems)
}

func pos(p token.Position) werrors.Position {
	return werrors.Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}
