package cimobj

import (
	"fmt"
	"strings"

	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/ident"
	"github.com/wbemix/gowbem/internal/werrors"
)

// InstanceName identifies an instance: a class name, an optional
// namespace, and its keybindings (spec §3 "Instance name"). It
// implements cimtype.InstanceRef so a Reference value can carry one.
type InstanceName struct {
	ClassName   string
	Namespace   string // normalized; "" if not namespace-qualified
	Host        string // authority for a WBEM URI; "" for a local path
	keybindings *ident.Map[cimtype.Value]
}

// NewInstanceName constructs an InstanceName. Keybinding values must be
// non-null, non-array CIM values (string, integer, boolean, datetime, or
// reference) per spec §3; any other kind fails with a ModelError.
// Classes with at least one key property must not be given an empty
// keybindings map (spec §3 invariants) — callers of classes known to be
// keyless should use NewKeylessInstanceName.
func NewInstanceName(className, namespace string, keybindings map[string]cimtype.Value) (*InstanceName, error) {
	if len(keybindings) == 0 {
		return nil, &werrors.ModelError{Message: fmt.Sprintf("instance name for class %q: keybindings must not be empty", className)}
	}
	return newInstanceName(className, namespace, keybindings)
}

// NewKeylessInstanceName constructs an InstanceName for a class with no
// key properties (DSP0004 classes are not required to declare keys).
func NewKeylessInstanceName(className, namespace string) *InstanceName {
	in, _ := newInstanceName(className, namespace, nil)
	return in
}

func newInstanceName(className, namespace string, keybindings map[string]cimtype.Value) (*InstanceName, error) {
	m := ident.NewMapWithCapacity[cimtype.Value](len(keybindings))
	for k, v := range keybindings {
		if err := validateKeyValue(k, v); err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
	return &InstanceName{
		ClassName:   className,
		Namespace:   NormalizeNamespace(namespace),
		keybindings: m,
	}, nil
}

func validateKeyValue(name string, v cimtype.Value) error {
	if v == nil {
		return &werrors.ModelError{Message: fmt.Sprintf("keybinding %q: value must not be null", name)}
	}
	switch v.(type) {
	case *cimtype.Array:
		return &werrors.ModelError{Message: fmt.Sprintf("keybinding %q: array value not permitted as a key", name)}
	case *cimtype.Real, cimtype.Char:
		return &werrors.ModelError{Message: fmt.Sprintf("keybinding %q: %s value not permitted as a key", name, v.Kind())}
	}
	return nil
}

// SetKey sets (or overwrites) a keybinding, re-validating it.
func (n *InstanceName) SetKey(name string, v cimtype.Value) error {
	if err := validateKeyValue(name, v); err != nil {
		return err
	}
	n.keybindings.Set(name, v)
	return nil
}

// Key returns the value bound to a key property, case-insensitively.
func (n *InstanceName) Key(name string) (cimtype.Value, bool) {
	return n.keybindings.Get(name)
}

// KeyNames returns key property names in the order they were set.
func (n *InstanceName) KeyNames() []string {
	return n.keybindings.Keys()
}

// Equal reports structural, case-insensitive equality: same class name,
// same namespace, and the same set of keybindings with equal values
// (spec §3 "Equality is structural and case-insensitive over keys").
func (n *InstanceName) Equal(o *InstanceName) bool {
	if n == nil || o == nil {
		return n == o
	}
	if !ident.Equal(n.ClassName, o.ClassName) || !ident.Equal(n.Namespace, o.Namespace) {
		return false
	}
	if n.keybindings.Len() != o.keybindings.Len() {
		return false
	}
	equal := true
	n.keybindings.Range(func(key string, v cimtype.Value) bool {
		ov, ok := o.keybindings.Get(key)
		if !ok || !v.Equal(ov) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// URIString renders the canonical DSP0207 WBEM URI form:
//
//	scheme://authority/namespace:ClassName.Key1="v1",Key2=v2
//
// The scheme/authority prefix is only included when Host is set; a
// purely local path omits it, matching how LOCALINSTANCEPATH encodes.
func (n *InstanceName) URIString() string {
	var sb strings.Builder
	if n.Host != "" {
		sb.WriteString("https://")
		sb.WriteString(n.Host)
		sb.WriteString("/")
	}
	if n.Namespace != "" {
		sb.WriteString(n.Namespace)
	}
	sb.WriteString(":")
	sb.WriteString(n.ClassName)
	sb.WriteString(".")

	keys := n.keybindings.Keys()
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(",")
		}
		v, _ := n.keybindings.Get(k)
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(keyValueURIForm(v))
	}
	return sb.String()
}

func keyValueURIForm(v cimtype.Value) string {
	switch v.(type) {
	case cimtype.String, cimtype.Char, cimtype.DateTime, cimtype.Reference:
		return fmt.Sprintf("%q", v.String())
	default:
		return v.String()
	}
}

func (n *InstanceName) String() string { return n.URIString() }
