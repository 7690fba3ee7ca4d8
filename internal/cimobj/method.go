package cimobj

import (
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/ident"
)

// Method is an extrinsic method declaration on a class (spec §3,
// §4.D "extrinsic operations"): a return type, an ordered parameter
// list, and qualifiers.
type Method struct {
	Name        string
	ReturnType  cimtype.Kind
	ReturnArray bool
	Parameters  *ident.Map[*Parameter]
	Qualifiers  *ident.Map[*Qualifier]
	ClassOrigin string
	Propagated  bool
}

// NewMethod constructs a method declaration with no parameters or
// qualifiers set.
func NewMethod(name string, returnType cimtype.Kind, returnArray bool) *Method {
	return &Method{
		Name:        name,
		ReturnType:  returnType,
		ReturnArray: returnArray,
		Parameters:  ident.NewMap[*Parameter](),
		Qualifiers:  ident.NewMap[*Qualifier](),
	}
}

// AddParameter appends (or overwrites, case-insensitively) a parameter.
func (m *Method) AddParameter(p *Parameter) {
	m.Parameters.Set(p.Name, p)
}

// Parameter looks up a parameter by name, case-insensitively.
func (m *Method) Parameter(name string) (*Parameter, bool) {
	return m.Parameters.Get(name)
}

// ParameterNames returns parameter names in declaration order.
func (m *Method) ParameterNames() []string {
	return m.Parameters.Keys()
}

// Qualifier looks up a qualifier by name, case-insensitively.
func (m *Method) Qualifier(name string) (*Qualifier, bool) {
	return m.Qualifiers.Get(name)
}

// SetQualifier sets (or overwrites) a qualifier on the method.
func (m *Method) SetQualifier(q *Qualifier) {
	m.Qualifiers.Set(q.Name, q)
}

// Clone returns a deep-enough copy of m: parameter and qualifier maps
// are cloned, each parameter itself copied.
func (m *Method) Clone() *Method {
	clone := &Method{
		Name:        m.Name,
		ReturnType:  m.ReturnType,
		ReturnArray: m.ReturnArray,
		Parameters:  ident.NewMapWithCapacity[*Parameter](m.Parameters.Len()),
		Qualifiers:  m.Qualifiers.Clone(),
		ClassOrigin: m.ClassOrigin,
		Propagated:  m.Propagated,
	}
	for _, name := range m.Parameters.Keys() {
		p, _ := m.Parameters.Get(name)
		clone.Parameters.Set(name, p.Clone())
	}
	return clone
}

// Equal reports whether two methods have the same name, return type,
// and parameter list (by name/type, not by value — methods describe
// shape, invocations carry the values).
func (m *Method) Equal(o *Method) bool {
	if m == nil || o == nil {
		return m == o
	}
	if !ident.Equal(m.Name, o.Name) || m.ReturnType != o.ReturnType || m.ReturnArray != o.ReturnArray {
		return false
	}
	if m.Parameters.Len() != o.Parameters.Len() {
		return false
	}
	for _, name := range m.Parameters.Keys() {
		mp, _ := m.Parameters.Get(name)
		op, ok := o.Parameters.Get(name)
		if !ok || mp.Type != op.Type || mp.IsArray != op.IsArray {
			return false
		}
	}
	return true
}
