// Package repository defines the contract a MOF compilation consumes
// to apply schema and instance mutations (spec.md §4.G), and ships two
// implementations: a live one backed by internal/wclient, and an
// in-memory mock for compiler tests and dry runs.
package repository

import (
	"context"

	"github.com/wbemix/gowbem/internal/cimobj"
)

// Repository is the contract the MOF compiler's apply sub-pass
// consumes (spec.md §4.G). Every method is scoped to one namespace.
type Repository interface {
	GetClass(ctx context.Context, namespace, name string, localOnly, includeQualifiers, includeClassOrigin bool) (*cimobj.Class, error)
	CreateClass(ctx context.Context, namespace string, class *cimobj.Class) error
	ModifyClass(ctx context.Context, namespace string, class *cimobj.Class) error
	DeleteClass(ctx context.Context, namespace, name string) error

	GetQualifier(ctx context.Context, namespace, name string) (*cimobj.QualifierDeclaration, error)
	SetQualifier(ctx context.Context, namespace string, decl *cimobj.QualifierDeclaration) error
	DeleteQualifier(ctx context.Context, namespace, name string) error

	CreateInstance(ctx context.Context, namespace string, inst *cimobj.Instance) (*cimobj.InstanceName, error)
	ModifyInstance(ctx context.Context, namespace string, modified *cimobj.Instance, includeQualifiers bool, propertyList []string) error
	DeleteInstance(ctx context.Context, namespace string, path *cimobj.InstanceName) error

	Namespaces(ctx context.Context) ([]string, error)
	CreateNamespace(ctx context.Context, name string) error
	DeleteNamespace(ctx context.Context, name string) error
}
