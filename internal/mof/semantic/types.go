// Package semantic implements the two-pass MOF compiler backend
// (spec.md §4.F): a resolve pass that binds qualifier applications and
// class inheritance over an ast.CompilationUnit, and an apply pass
// that emits the resulting repository mutations in dependency order,
// with rollback on the first failure.
package semantic

import (
	"strconv"
	"strings"

	"github.com/wbemix/gowbem/internal/cimtype"
)

var typeNames = map[string]cimtype.Kind{
	"sint8": cimtype.KindSint8, "uint8": cimtype.KindUint8,
	"sint16": cimtype.KindSint16, "uint16": cimtype.KindUint16,
	"sint32": cimtype.KindSint32, "uint32": cimtype.KindUint32,
	"sint64": cimtype.KindSint64, "uint64": cimtype.KindUint64,
	"real32": cimtype.KindReal32, "real64": cimtype.KindReal64,
	"boolean": cimtype.KindBoolean, "char16": cimtype.KindChar16,
	"string": cimtype.KindString, "datetime": cimtype.KindDatetime,
}

// kindFromTypeName maps a MOF data-type name (DSP0004 §5.4) to its
// cimtype.Kind, case-insensitively; ok is false for an unknown name or
// for a reference type (those are carried as RefClass, not a Kind).
func kindFromTypeName(name string) (cimtype.Kind, bool) {
	k, ok := typeNames[strings.ToLower(name)]
	return k, ok
}

func parseFloatLiteral(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}

func parseIntLiteral(lit string) (int64, error) {
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		return strconv.ParseInt(lit[2:], 16, 64)
	}
	if strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B") {
		return strconv.ParseInt(lit[2:], 2, 64)
	}
	if strings.HasPrefix(lit, "-0x") || strings.HasPrefix(lit, "-0X") {
		v, err := strconv.ParseInt(lit[3:], 16, 64)
		return -v, err
	}
	return strconv.ParseInt(lit, 10, 64)
}
