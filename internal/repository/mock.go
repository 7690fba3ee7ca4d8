package repository

import (
	"context"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/ident"
	"github.com/wbemix/gowbem/internal/werrors"
)

// Mock is an in-memory Repository whose storage is a nested map
// (namespace → case-folded name → object), with separate stores for
// classes, instances (keyed by canonical path string), and qualifier
// declarations (spec.md §4.G). It is safe for the compiler's
// dry-run-free apply pass and for repository-level unit tests;
// it is not safe for concurrent use from multiple goroutines (no
// component in this module promises that, per spec.md §5).
type Mock struct {
	classes    *ident.Map[*ident.Map[*cimobj.Class]]
	qualifiers *ident.Map[*ident.Map[*cimobj.QualifierDeclaration]]
	instances  *ident.Map[*ident.Map[*cimobj.Instance]] // keyed by InstanceName.URIString()
	namespaces *ident.Map[bool]
}

// NewMock constructs an empty Mock with "root/cimv2" pre-created, the
// namespace every retrieved example schema assumes exists by default.
func NewMock() *Mock {
	m := &Mock{
		classes:    ident.NewMap[*ident.Map[*cimobj.Class]](),
		qualifiers: ident.NewMap[*ident.Map[*cimobj.QualifierDeclaration]](),
		instances:  ident.NewMap[*ident.Map[*cimobj.Instance]](),
		namespaces: ident.NewMap[bool](),
	}
	m.namespaces.Set("root/cimv2", true)
	return m
}

func (m *Mock) classesIn(namespace string) *ident.Map[*cimobj.Class] {
	ns, ok := m.classes.Get(namespace)
	if !ok {
		ns = ident.NewMap[*cimobj.Class]()
		m.classes.Set(namespace, ns)
	}
	return ns
}

func (m *Mock) qualifiersIn(namespace string) *ident.Map[*cimobj.QualifierDeclaration] {
	ns, ok := m.qualifiers.Get(namespace)
	if !ok {
		ns = ident.NewMap[*cimobj.QualifierDeclaration]()
		m.qualifiers.Set(namespace, ns)
	}
	return ns
}

func (m *Mock) instancesIn(namespace string) *ident.Map[*cimobj.Instance] {
	ns, ok := m.instances.Get(namespace)
	if !ok {
		ns = ident.NewMap[*cimobj.Instance]()
		m.instances.Set(namespace, ns)
	}
	return ns
}

func (m *Mock) GetClass(_ context.Context, namespace, name string, localOnly, _, _ bool) (*cimobj.Class, error) {
	c, ok := m.classesIn(namespace).Get(name)
	if !ok {
		return nil, &werrors.CIMError{Code: werrors.CIMErrNotFound, Description: name}
	}
	if !localOnly {
		return c, nil
	}
	local := cimobj.NewClass(c.Name, c.Superclass)
	local.Namespace = c.Namespace
	c.Properties.Range(func(pname string, p *cimobj.Property) bool {
		if !p.Propagated {
			local.AddProperty(p.Clone())
		}
		return true
	})
	c.Methods.Range(func(mname string, meth *cimobj.Method) bool {
		if !meth.Propagated {
			local.AddMethod(meth.Clone())
		}
		return true
	})
	return local, nil
}

func (m *Mock) CreateClass(_ context.Context, namespace string, class *cimobj.Class) error {
	store := m.classesIn(namespace)
	if store.Has(class.Name) {
		return &werrors.CIMError{Code: werrors.CIMErrAlreadyExists, Description: class.Name}
	}
	class.Namespace = namespace
	store.Set(class.Name, class)
	return nil
}

func (m *Mock) ModifyClass(_ context.Context, namespace string, class *cimobj.Class) error {
	store := m.classesIn(namespace)
	if !store.Has(class.Name) {
		return &werrors.CIMError{Code: werrors.CIMErrNotFound, Description: class.Name}
	}
	class.Namespace = namespace
	store.Set(class.Name, class)
	return nil
}

func (m *Mock) DeleteClass(_ context.Context, namespace, name string) error {
	if !m.classesIn(namespace).Delete(name) {
		return &werrors.CIMError{Code: werrors.CIMErrNotFound, Description: name}
	}
	return nil
}

func (m *Mock) GetQualifier(_ context.Context, namespace, name string) (*cimobj.QualifierDeclaration, error) {
	d, ok := m.qualifiersIn(namespace).Get(name)
	if !ok {
		return nil, &werrors.CIMError{Code: werrors.CIMErrNotFound, Description: name}
	}
	return d, nil
}

func (m *Mock) SetQualifier(_ context.Context, namespace string, decl *cimobj.QualifierDeclaration) error {
	m.qualifiersIn(namespace).Set(decl.Name, decl)
	return nil
}

func (m *Mock) DeleteQualifier(_ context.Context, namespace, name string) error {
	if !m.qualifiersIn(namespace).Delete(name) {
		return &werrors.CIMError{Code: werrors.CIMErrNotFound, Description: name}
	}
	return nil
}

func (m *Mock) CreateInstance(_ context.Context, namespace string, inst *cimobj.Instance) (*cimobj.InstanceName, error) {
	class, ok := m.classesIn(namespace).Get(inst.ClassName)
	var keyNames []string
	if ok {
		keyNames = class.KeyPropertyNames()
	}
	path, err := inst.Path(keyNames)
	if err != nil {
		return nil, err
	}
	store := m.instancesIn(namespace)
	if store.Has(path.URIString()) {
		return nil, &werrors.CIMError{Code: werrors.CIMErrAlreadyExists, Description: path.URIString()}
	}
	inst.Namespace = namespace
	store.Set(path.URIString(), inst)
	return path, nil
}

func (m *Mock) ModifyInstance(_ context.Context, namespace string, modified *cimobj.Instance, includeQualifiers bool, propertyList []string) error {
	class, _ := m.classesIn(namespace).Get(modified.ClassName)
	var keyNames []string
	if class != nil {
		keyNames = class.KeyPropertyNames()
	}
	path, err := modified.Path(keyNames)
	if err != nil {
		return err
	}
	store := m.instancesIn(namespace)
	existing, ok := store.Get(path.URIString())
	if !ok {
		return &werrors.CIMError{Code: werrors.CIMErrNotFound, Description: path.URIString()}
	}
	if len(propertyList) == 0 {
		store.Set(path.URIString(), modified)
		return nil
	}
	for _, name := range propertyList {
		existing.SetProperty(name, modified.Value(name))
	}
	return nil
}

func (m *Mock) DeleteInstance(_ context.Context, namespace string, path *cimobj.InstanceName) error {
	if !m.instancesIn(namespace).Delete(path.URIString()) {
		return &werrors.CIMError{Code: werrors.CIMErrNotFound, Description: path.URIString()}
	}
	return nil
}

func (m *Mock) Namespaces(_ context.Context) ([]string, error) {
	return m.namespaces.Keys(), nil
}

func (m *Mock) CreateNamespace(_ context.Context, name string) error {
	if m.namespaces.Has(name) {
		return &werrors.CIMError{Code: werrors.CIMErrAlreadyExists, Description: name}
	}
	m.namespaces.Set(name, true)
	return nil
}

func (m *Mock) DeleteNamespace(_ context.Context, name string) error {
	if !m.namespaces.Delete(name) {
		return &werrors.CIMError{Code: werrors.CIMErrNotFound, Description: name}
	}
	return nil
}
