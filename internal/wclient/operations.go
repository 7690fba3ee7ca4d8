package wclient

import (
	"context"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
)

// GetInstanceOptions mirrors DSP0200's GetInstance input flags.
type GetInstanceOptions struct {
	LocalOnly          bool
	IncludeQualifiers  bool
	IncludeClassOrigin bool
	PropertyList       []string
}

func boolParam(name string, v bool) IParam {
	return IParam{Name: name, Value: cimtype.NewBoolean(v)}
}

// GetInstance retrieves a single instance by path.
func (c *Connection) GetInstance(ctx context.Context, namespace string, path *cimobj.InstanceName, opts GetInstanceOptions) (*cimobj.Instance, error) {
	params := []IParam{
		{Name: "InstanceName", InstanceName: path},
		boolParam("LocalOnly", opts.LocalOnly),
		boolParam("IncludeQualifiers", opts.IncludeQualifiers),
		boolParam("IncludeClassOrigin", opts.IncludeClassOrigin),
	}
	resp, err := c.intrinsicCall(ctx, "GetInstance", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if len(resp.Instances) == 0 {
		return nil, nil
	}
	return resp.Instances[0], nil
}

// GetClass retrieves a single class declaration.
func (c *Connection) GetClass(ctx context.Context, namespace, className string, localOnly, includeQualifiers, includeClassOrigin bool) (*cimobj.Class, error) {
	params := []IParam{
		{Name: "ClassName", ClassName: className},
		boolParam("LocalOnly", localOnly),
		boolParam("IncludeQualifiers", includeQualifiers),
		boolParam("IncludeClassOrigin", includeClassOrigin),
	}
	resp, err := c.intrinsicCall(ctx, "GetClass", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if len(resp.Classes) == 0 {
		return nil, nil
	}
	return resp.Classes[0], nil
}

// CreateClass submits a new class declaration. Never retried (spec.md
// §4.D: non-idempotent intrinsics are not retried).
func (c *Connection) CreateClass(ctx context.Context, namespace string, class *cimobj.Class) error {
	params := []IParam{{Name: "NewClass", Class: class}}
	resp, err := c.intrinsicCall(ctx, "CreateClass", namespace, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// ModifyClass replaces an existing class declaration. Never retried.
func (c *Connection) ModifyClass(ctx context.Context, namespace string, class *cimobj.Class) error {
	params := []IParam{{Name: "ModifiedClass", Class: class}}
	resp, err := c.intrinsicCall(ctx, "ModifyClass", namespace, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// DeleteClass removes a class declaration by name. Never retried.
func (c *Connection) DeleteClass(ctx context.Context, namespace, className string) error {
	params := []IParam{{Name: "ClassName", ClassName: className}}
	resp, err := c.intrinsicCall(ctx, "DeleteClass", namespace, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// EnumerateInstanceOptions mirrors DSP0200's EnumerateInstances input flags.
type EnumerateInstanceOptions struct {
	DeepInheritance    bool
	LocalOnly          bool
	IncludeQualifiers  bool
	IncludeClassOrigin bool
	PropertyList       []string
}

// EnumerateInstances returns every instance of class (and, when
// DeepInheritance, its subclasses) with paths populated.
func (c *Connection) EnumerateInstances(ctx context.Context, namespace, class string, opts EnumerateInstanceOptions) ([]NamedInstance, error) {
	params := []IParam{
		{Name: "ClassName", ClassName: class},
		boolParam("DeepInheritance", opts.DeepInheritance),
		boolParam("LocalOnly", opts.LocalOnly),
		boolParam("IncludeQualifiers", opts.IncludeQualifiers),
		boolParam("IncludeClassOrigin", opts.IncludeClassOrigin),
	}
	resp, err := c.intrinsicCall(ctx, "EnumerateInstances", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.NamedInstances, nil
}

// EnumerateInstanceNames returns the paths of every instance of class.
func (c *Connection) EnumerateInstanceNames(ctx context.Context, namespace, class string) ([]*cimobj.InstanceName, error) {
	params := []IParam{{Name: "ClassName", ClassName: class}}
	resp, err := c.intrinsicCall(ctx, "EnumerateInstanceNames", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.InstanceNames, nil
}

// EnumerateClassNames returns the names of class's subclasses (or root
// classes when class is "").
func (c *Connection) EnumerateClassNames(ctx context.Context, namespace, class string, deepInheritance bool) ([]string, error) {
	params := []IParam{
		{Name: "ClassName", ClassName: class},
		boolParam("DeepInheritance", deepInheritance),
	}
	resp, err := c.intrinsicCall(ctx, "EnumerateClassNames", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	names := make([]string, len(resp.Values))
	for i, v := range resp.Values {
		names[i] = v.String()
	}
	return names, nil
}

// EnumerateClasses returns class declarations for class's subclasses.
func (c *Connection) EnumerateClasses(ctx context.Context, namespace, class string, deepInheritance, localOnly, includeQualifiers, includeClassOrigin bool) ([]*cimobj.Class, error) {
	params := []IParam{
		{Name: "ClassName", ClassName: class},
		boolParam("DeepInheritance", deepInheritance),
		boolParam("LocalOnly", localOnly),
		boolParam("IncludeQualifiers", includeQualifiers),
		boolParam("IncludeClassOrigin", includeClassOrigin),
	}
	resp, err := c.intrinsicCall(ctx, "EnumerateClasses", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Classes, nil
}

// AssociatorNames returns the paths of instances associated with path.
func (c *Connection) AssociatorNames(ctx context.Context, namespace string, path *cimobj.InstanceName, assocClass, resultClass, role, resultRole string) ([]*cimobj.InstanceName, error) {
	params := associationParams(path, assocClass, resultClass, role, resultRole)
	resp, err := c.intrinsicCall(ctx, "AssociatorNames", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.InstanceNames, nil
}

// Associators returns associated instances and their paths.
func (c *Connection) Associators(ctx context.Context, namespace string, path *cimobj.InstanceName, assocClass, resultClass, role, resultRole string) ([]NamedInstance, error) {
	params := associationParams(path, assocClass, resultClass, role, resultRole)
	resp, err := c.intrinsicCall(ctx, "Associators", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.NamedInstances, nil
}

// ReferenceNames returns the paths of association instances that name path.
func (c *Connection) ReferenceNames(ctx context.Context, namespace string, path *cimobj.InstanceName, resultClass, role string) ([]*cimobj.InstanceName, error) {
	params := []IParam{
		{Name: "ObjectName", InstanceName: path},
		{Name: "ResultClass", ClassName: resultClass},
		{Name: "Role", Value: cimtype.NewString(role)},
	}
	resp, err := c.intrinsicCall(ctx, "ReferenceNames", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.InstanceNames, nil
}

// References returns association instances that name path.
func (c *Connection) References(ctx context.Context, namespace string, path *cimobj.InstanceName, resultClass, role string) ([]NamedInstance, error) {
	params := []IParam{
		{Name: "ObjectName", InstanceName: path},
		{Name: "ResultClass", ClassName: resultClass},
		{Name: "Role", Value: cimtype.NewString(role)},
	}
	resp, err := c.intrinsicCall(ctx, "References", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.NamedInstances, nil
}

func associationParams(path *cimobj.InstanceName, assocClass, resultClass, role, resultRole string) []IParam {
	return []IParam{
		{Name: "ObjectName", InstanceName: path},
		{Name: "AssocClass", ClassName: assocClass},
		{Name: "ResultClass", ClassName: resultClass},
		{Name: "Role", Value: cimtype.NewString(role)},
		{Name: "ResultRole", Value: cimtype.NewString(resultRole)},
	}
}

// CreateInstance submits a new instance, returning its server-assigned
// path. Never retried (spec.md §4.D).
func (c *Connection) CreateInstance(ctx context.Context, namespace string, inst *cimobj.Instance) (*cimobj.InstanceName, error) {
	params := []IParam{{Name: "NewInstance", Instance: inst}}
	resp, err := c.intrinsicCall(ctx, "CreateInstance", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if len(resp.InstanceNames) > 0 {
		return resp.InstanceNames[0], nil
	}
	return nil, nil
}

// ModifyInstance updates an existing instance's properties. Never retried.
func (c *Connection) ModifyInstance(ctx context.Context, namespace string, inst *cimobj.Instance, includeQualifiers bool, propertyList []string) error {
	params := []IParam{
		{Name: "ModifiedInstance", Instance: inst},
		boolParam("IncludeQualifiers", includeQualifiers),
	}
	resp, err := c.intrinsicCall(ctx, "ModifyInstance", namespace, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// DeleteInstance removes an instance by path. Never retried.
func (c *Connection) DeleteInstance(ctx context.Context, namespace string, path *cimobj.InstanceName) error {
	params := []IParam{{Name: "InstanceName", InstanceName: path}}
	resp, err := c.intrinsicCall(ctx, "DeleteInstance", namespace, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// GetQualifier retrieves a qualifier declaration by name.
func (c *Connection) GetQualifier(ctx context.Context, namespace, name string) (*cimobj.QualifierDeclaration, error) {
	params := []IParam{{Name: "QualifierName", Value: cimtype.NewString(name)}}
	resp, err := c.intrinsicCall(ctx, "GetQualifier", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if len(resp.QualifierDeclarations) == 0 {
		return nil, nil
	}
	return resp.QualifierDeclarations[0], nil
}

// EnumerateQualifiers lists every qualifier declaration in namespace.
func (c *Connection) EnumerateQualifiers(ctx context.Context, namespace string) ([]*cimobj.QualifierDeclaration, error) {
	resp, err := c.intrinsicCall(ctx, "EnumerateQualifiers", namespace, nil)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.QualifierDeclarations, nil
}

// SetQualifier creates or replaces a qualifier declaration. Never retried.
func (c *Connection) SetQualifier(ctx context.Context, namespace string, decl *cimobj.QualifierDeclaration) error {
	params := []IParam{{Name: "QualifierDeclaration", QualifierDeclaration: decl}}
	resp, err := c.intrinsicCall(ctx, "SetQualifier", namespace, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// DeleteQualifier removes a qualifier declaration by name.
func (c *Connection) DeleteQualifier(ctx context.Context, namespace, name string) error {
	params := []IParam{{Name: "QualifierName", Value: cimtype.NewString(name)}}
	resp, err := c.intrinsicCall(ctx, "DeleteQualifier", namespace, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// ExecQuery runs a query in the given query language (e.g. "WQL",
// "CQL") and returns matching instances.
func (c *Connection) ExecQuery(ctx context.Context, namespace, query, queryLanguage string) ([]*cimobj.Instance, error) {
	params := []IParam{
		{Name: "QueryLanguage", Value: cimtype.NewString(queryLanguage)},
		{Name: "Query", Value: cimtype.NewString(query)},
	}
	resp, err := c.intrinsicCall(ctx, "ExecQuery", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Instances, nil
}
