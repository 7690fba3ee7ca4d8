package cimobj

import (
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/ident"
	"github.com/wbemix/gowbem/internal/werrors"
)

// Instance is a CIM instance: a class name, a namespace, and a set of
// property values (spec §3). An Instance carries no identity of its
// own beyond its properties; InstanceName is derived from it via
// Path, which reads the values bound to key properties.
type Instance struct {
	ClassName  string
	Namespace  string
	Properties *ident.Map[*Property]
}

// NewInstance constructs an empty instance of className with no
// properties set; callers typically start from Class.NewInstance
// instead, which pre-populates declared properties.
func NewInstance(className, namespace string) *Instance {
	return &Instance{
		ClassName:  className,
		Namespace:  NormalizeNamespace(namespace),
		Properties: ident.NewMap[*Property](),
	}
}

// SetProperty sets (or overwrites, case-insensitively) a property value.
func (inst *Instance) SetProperty(name string, v cimtype.Value) {
	if p, ok := inst.Properties.Get(name); ok {
		p.Value = v
		inst.Properties.Set(name, p)
		return
	}
	inst.Properties.Set(name, NewProperty(name, valueKind(v), isArrayValue(v)).WithValue(v))
}

// Property looks up a property, case-insensitively.
func (inst *Instance) Property(name string) (*Property, bool) {
	return inst.Properties.Get(name)
}

// Value returns the value bound to a property, or nil if unset/absent.
func (inst *Instance) Value(name string) cimtype.Value {
	p, ok := inst.Properties.Get(name)
	if !ok {
		return nil
	}
	return p.Value
}

// Path derives this instance's InstanceName from the properties named
// in keyNames (normally Class.KeyPropertyNames() for inst's class).
// Returns a ModelError if any key property is unset or nil-valued.
func (inst *Instance) Path(keyNames []string) (*InstanceName, error) {
	if len(keyNames) == 0 {
		return NewKeylessInstanceName(inst.ClassName, inst.Namespace), nil
	}
	keys := make(map[string]cimtype.Value, len(keyNames))
	for _, name := range keyNames {
		v := inst.Value(name)
		if v == nil {
			return nil, &werrors.ModelError{Message: "instance of " + inst.ClassName + ": key property " + name + " has no value"}
		}
		keys[name] = v
	}
	return NewInstanceName(inst.ClassName, inst.Namespace, keys)
}

// Equal reports whether two instances have the same class name and
// identical property values (namespace is not compared — the same
// instance data may be addressed through different namespaces during
// a copy/move operation).
func (inst *Instance) Equal(o *Instance) bool {
	if inst == nil || o == nil {
		return inst == o
	}
	if !ident.Equal(inst.ClassName, o.ClassName) {
		return false
	}
	if inst.Properties.Len() != o.Properties.Len() {
		return false
	}
	equal := true
	inst.Properties.Range(func(name string, p *Property) bool {
		op, ok := o.Properties.Get(name)
		if !ok || !p.Equal(op) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// Clone returns a deep-enough copy of inst with its own property map.
func (inst *Instance) Clone() *Instance {
	clone := &Instance{
		ClassName:  inst.ClassName,
		Namespace:  inst.Namespace,
		Properties: ident.NewMapWithCapacity[*Property](inst.Properties.Len()),
	}
	for _, name := range inst.Properties.Keys() {
		p, _ := inst.Properties.Get(name)
		clone.Properties.Set(name, p.Clone())
	}
	return clone
}

func valueKind(v cimtype.Value) cimtype.Kind {
	if v == nil {
		return cimtype.KindInvalid
	}
	if a, ok := v.(*cimtype.Array); ok {
		return a.ElementKind()
	}
	return v.Kind()
}

func isArrayValue(v cimtype.Value) bool {
	_, ok := v.(*cimtype.Array)
	return ok
}
