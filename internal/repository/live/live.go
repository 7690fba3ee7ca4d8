// Package live implements internal/repository.Repository against a real
// server over internal/wclient, the backend a MOF compilation consumes
// outside of tests and dry runs (spec.md §4.F/§4.G).
package live

import (
	"context"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/repository"
	"github.com/wbemix/gowbem/internal/wclient"
)

var _ repository.Repository = (*Repository)(nil)

// interopNamespace is where namespace-management instances live, per
// the WBEM convention of exposing namespaces themselves as CIM_Namespace
// instances rather than through a dedicated intrinsic (DSP0200 defines
// no CreateNamespace/DeleteNamespace/EnumerateNamespaces operation).
const interopNamespace = "root/interop"

// namespaceClass names the class whose instances this package manages
// to implement Repository's namespace operations.
const namespaceClass = "CIM_Namespace"

// Repository adapts a *wclient.Connection to internal/repository's
// mutation contract, translating each method onto the corresponding
// intrinsic operation.
type Repository struct {
	conn *wclient.Connection
}

// New wraps conn as a Repository.
func New(conn *wclient.Connection) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) GetClass(ctx context.Context, namespace, name string, localOnly, includeQualifiers, includeClassOrigin bool) (*cimobj.Class, error) {
	return r.conn.GetClass(ctx, namespace, name, localOnly, includeQualifiers, includeClassOrigin)
}

func (r *Repository) CreateClass(ctx context.Context, namespace string, class *cimobj.Class) error {
	return r.conn.CreateClass(ctx, namespace, class)
}

func (r *Repository) ModifyClass(ctx context.Context, namespace string, class *cimobj.Class) error {
	return r.conn.ModifyClass(ctx, namespace, class)
}

func (r *Repository) DeleteClass(ctx context.Context, namespace, name string) error {
	return r.conn.DeleteClass(ctx, namespace, name)
}

func (r *Repository) GetQualifier(ctx context.Context, namespace, name string) (*cimobj.QualifierDeclaration, error) {
	return r.conn.GetQualifier(ctx, namespace, name)
}

func (r *Repository) SetQualifier(ctx context.Context, namespace string, decl *cimobj.QualifierDeclaration) error {
	return r.conn.SetQualifier(ctx, namespace, decl)
}

func (r *Repository) DeleteQualifier(ctx context.Context, namespace, name string) error {
	return r.conn.DeleteQualifier(ctx, namespace, name)
}

func (r *Repository) CreateInstance(ctx context.Context, namespace string, inst *cimobj.Instance) (*cimobj.InstanceName, error) {
	return r.conn.CreateInstance(ctx, namespace, inst)
}

func (r *Repository) ModifyInstance(ctx context.Context, namespace string, modified *cimobj.Instance, includeQualifiers bool, propertyList []string) error {
	return r.conn.ModifyInstance(ctx, namespace, modified, includeQualifiers, propertyList)
}

func (r *Repository) DeleteInstance(ctx context.Context, namespace string, path *cimobj.InstanceName) error {
	return r.conn.DeleteInstance(ctx, namespace, path)
}

// Namespaces enumerates the server's namespaces via CIM_Namespace
// instances in the well-known interop namespace, reading each one's
// Name key property.
func (r *Repository) Namespaces(ctx context.Context) ([]string, error) {
	names, err := r.conn.EnumerateInstanceNames(ctx, interopNamespace, namespaceClass)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if v, ok := n.Key("Name"); ok {
			out = append(out, v.String())
		}
	}
	return out, nil
}

// CreateNamespace creates a CIM_Namespace instance naming the new
// namespace.
func (r *Repository) CreateNamespace(ctx context.Context, name string) error {
	inst := cimobj.NewInstance(namespaceClass, interopNamespace)
	inst.SetProperty("Name", cimtype.NewString(name))
	_, err := r.conn.CreateInstance(ctx, interopNamespace, inst)
	return err
}

// DeleteNamespace deletes the CIM_Namespace instance naming namespace.
func (r *Repository) DeleteNamespace(ctx context.Context, name string) error {
	keys := map[string]cimtype.Value{"Name": cimtype.NewString(name)}
	path, err := cimobj.NewInstanceName(namespaceClass, interopNamespace, keys)
	if err != nil {
		return err
	}
	return r.conn.DeleteInstance(ctx, interopNamespace, path)
}
