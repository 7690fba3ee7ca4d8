package wclient

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/werrors"
)

// pullKind distinguishes Closed/Open/Drained per spec.md §4.D's pull
// state machine: `states: Closed → Open(ctx) → Drained → Closed`.
type pullKind int

const (
	pullClosed pullKind = iota
	pullOpen
	pullDrained
)

type pullState struct {
	state     pullKind
	className string
	namespace string
}

// OpenResult is the common shape of every Open*/Pull* response: a
// batch of results plus the enumeration context to continue with.
type OpenResult struct {
	EnumerationContext string
	EndOfSequence      bool
	NamedInstances     []NamedInstance
	InstanceNames      []*cimobj.InstanceName
}

// OpenEnumerateInstances opens a pulled enumeration of instances of
// class (spec.md §4.D pull state machine).
func (c *Connection) OpenEnumerateInstances(ctx context.Context, namespace, class string, maxObjectCount int) (*OpenResult, error) {
	params := []IParam{
		{Name: "ClassName", ClassName: class},
	}
	if maxObjectCount > 0 {
		v, _ := cimtype.NewUnsignedInteger(cimtype.KindUint32, uint64(maxObjectCount))
		params = append(params, IParam{Name: "MaxObjectCount", Value: v})
	}
	resp, err := c.intrinsicCall(ctx, "OpenEnumerateInstances", namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	id := uuid.NewString()
	c.pulls[id] = &pullState{state: pullOpen, className: class, namespace: namespace}
	result := &OpenResult{
		EnumerationContext: id,
		EndOfSequence:      resp.EndOfSequence,
		NamedInstances:     resp.NamedInstances,
	}
	if resp.EndOfSequence {
		delete(c.pulls, id)
	}
	return result, nil
}

// PullInstancesWithPath continues an open enumeration.
func (c *Connection) PullInstancesWithPath(ctx context.Context, enumerationContext string, maxObjectCount int) (*OpenResult, error) {
	st, ok := c.pulls[enumerationContext]
	if !ok || st.state != pullOpen {
		return nil, &werrors.CIMError{Code: werrors.CIMErrInvalidEnumerationContext, Description: "enumeration context is not open"}
	}
	v, _ := cimtype.NewUnsignedInteger(cimtype.KindUint32, uint64(maxObjectCount))
	params := []IParam{
		{Name: "EnumerationContext", Value: cimtype.NewString(enumerationContext)},
		{Name: "MaxObjectCount", Value: v},
	}
	resp, err := c.intrinsicCall(ctx, "PullInstancesWithPath", st.namespace, params)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.EndOfSequence {
		st.state = pullDrained
		delete(c.pulls, enumerationContext)
	}
	return &OpenResult{
		EnumerationContext: enumerationContext,
		EndOfSequence:      resp.EndOfSequence,
		NamedInstances:     resp.NamedInstances,
	}, nil
}

// defaultPullBatchSize bounds each Open/Pull round trip when the
// caller's iteration helper doesn't otherwise need a specific batch.
const defaultPullBatchSize = 100

// IterateInstances walks every instance of class, calling fn once per
// instance, hiding pull-vs-non-pull selection (spec.md §4.D "Iteration
// helper"): it probes OpenEnumerateInstances once per connection and
// falls back to the non-pulled EnumerateInstances on
// CIM_ERR_NOT_SUPPORTED, caching that decision for later calls. fn
// returning an error stops iteration (closing any open enumeration)
// and returns that error.
func (c *Connection) IterateInstances(ctx context.Context, namespace, class string, opts EnumerateInstanceOptions, fn func(NamedInstance) error) error {
	if c.pullSupported == nil {
		supported, err := c.probePullSupport(ctx, namespace, class)
		if err != nil {
			return err
		}
		c.pullSupported = &supported
	}
	if !*c.pullSupported {
		instances, err := c.EnumerateInstances(ctx, namespace, class, opts)
		if err != nil {
			return err
		}
		for _, ni := range instances {
			if err := fn(ni); err != nil {
				return err
			}
		}
		return nil
	}

	open, err := c.OpenEnumerateInstances(ctx, namespace, class, defaultPullBatchSize)
	if err != nil {
		return err
	}
	for _, ni := range open.NamedInstances {
		if err := fn(ni); err != nil {
			c.closeQuietly(ctx, open.EnumerationContext)
			return err
		}
	}
	enumerationContext := open.EnumerationContext
	endOfSequence := open.EndOfSequence
	for !endOfSequence {
		batch, err := c.PullInstancesWithPath(ctx, enumerationContext, defaultPullBatchSize)
		if err != nil {
			return err
		}
		for _, ni := range batch.NamedInstances {
			if err := fn(ni); err != nil {
				c.closeQuietly(ctx, enumerationContext)
				return err
			}
		}
		enumerationContext = batch.EnumerationContext
		endOfSequence = batch.EndOfSequence
	}
	return nil
}

// probePullSupport attempts one OpenEnumerateInstances call, reporting
// pulled-enumeration support unless the server answers
// CIM_ERR_NOT_SUPPORTED (spec.md §4.D).
func (c *Connection) probePullSupport(ctx context.Context, namespace, class string) (bool, error) {
	open, err := c.OpenEnumerateInstances(ctx, namespace, class, defaultPullBatchSize)
	if err != nil {
		var cimErr *werrors.CIMError
		if errors.As(err, &cimErr) && cimErr.Code == werrors.CIMErrNotSupported {
			return false, nil
		}
		return false, err
	}
	if !open.EndOfSequence {
		c.closeQuietly(ctx, open.EnumerationContext)
	}
	return true, nil
}

func (c *Connection) closeQuietly(ctx context.Context, enumerationContext string) {
	_ = c.CloseEnumeration(ctx, enumerationContext)
}

// CloseEnumeration closes an open enumeration early. Only valid while
// the enumeration is Open (spec.md §4.D).
func (c *Connection) CloseEnumeration(ctx context.Context, enumerationContext string) error {
	st, ok := c.pulls[enumerationContext]
	if !ok || st.state != pullOpen {
		return &werrors.CIMError{Code: werrors.CIMErrInvalidEnumerationContext, Description: "enumeration context is not open"}
	}
	params := []IParam{
		{Name: "EnumerationContext", Value: cimtype.NewString(enumerationContext)},
	}
	resp, err := c.intrinsicCall(ctx, "CloseEnumeration", st.namespace, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	delete(c.pulls, enumerationContext)
	return nil
}
