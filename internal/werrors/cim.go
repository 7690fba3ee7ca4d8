package werrors

import "fmt"

// CIM status codes per DSP0200 §7 (the <ERROR CODE="n"/> element).
const (
	CIMErrFailed                      = 1
	CIMErrAccessDenied                = 2
	CIMErrInvalidNamespace            = 3
	CIMErrInvalidParameter            = 4
	CIMErrInvalidClass                = 5
	CIMErrNotFound                    = 6
	CIMErrNotSupported                = 7
	CIMErrClassHasChildren            = 8
	CIMErrClassHasInstances           = 9
	CIMErrInvalidSuperclass           = 10
	CIMErrAlreadyExists               = 11
	CIMErrNoSuchProperty              = 12
	CIMErrTypeMismatch                = 13
	CIMErrQueryLanguageNotSupported   = 14
	CIMErrInvalidQuery                = 15
	CIMErrMethodNotAvailable          = 16
	CIMErrMethodNotFound              = 17
	CIMErrUnexpectedResponse          = 18
	CIMErrInvalidResponseDestination  = 19
	CIMErrNamespaceNotEmpty           = 20
	CIMErrInvalidEnumerationContext   = 21
	CIMErrInvalidOperationTimeout     = 22
	CIMErrPullHasBeenAbandoned        = 23
	CIMErrPullCannotBeAbandoned       = 24
	CIMErrFilteredEnumerationNotSupp  = 25
	CIMErrContinuationOnErrorNotSupp  = 26
	CIMErrServerLimitsExceeded        = 27
	CIMErrServerIsShuttingDown        = 28
)

var cimStatusNames = map[int]string{
	CIMErrFailed:                     "CIM_ERR_FAILED",
	CIMErrAccessDenied:               "CIM_ERR_ACCESS_DENIED",
	CIMErrInvalidNamespace:           "CIM_ERR_INVALID_NAMESPACE",
	CIMErrInvalidParameter:           "CIM_ERR_INVALID_PARAMETER",
	CIMErrInvalidClass:               "CIM_ERR_INVALID_CLASS",
	CIMErrNotFound:                   "CIM_ERR_NOT_FOUND",
	CIMErrNotSupported:               "CIM_ERR_NOT_SUPPORTED",
	CIMErrClassHasChildren:           "CIM_ERR_CLASS_HAS_CHILDREN",
	CIMErrClassHasInstances:          "CIM_ERR_CLASS_HAS_INSTANCES",
	CIMErrInvalidSuperclass:          "CIM_ERR_INVALID_SUPERCLASS",
	CIMErrAlreadyExists:              "CIM_ERR_ALREADY_EXISTS",
	CIMErrNoSuchProperty:             "CIM_ERR_NO_SUCH_PROPERTY",
	CIMErrTypeMismatch:               "CIM_ERR_TYPE_MISMATCH",
	CIMErrQueryLanguageNotSupported:  "CIM_ERR_QUERY_LANGUAGE_NOT_SUPPORTED",
	CIMErrInvalidQuery:               "CIM_ERR_INVALID_QUERY",
	CIMErrMethodNotAvailable:         "CIM_ERR_METHOD_NOT_AVAILABLE",
	CIMErrMethodNotFound:             "CIM_ERR_METHOD_NOT_FOUND",
	CIMErrUnexpectedResponse:         "CIM_ERR_UNEXPECTED_RESPONSE",
	CIMErrInvalidResponseDestination: "CIM_ERR_INVALID_RESPONSE_DESTINATION",
	CIMErrNamespaceNotEmpty:          "CIM_ERR_NAMESPACE_NOT_EMPTY",
	CIMErrInvalidEnumerationContext:  "CIM_ERR_INVALID_ENUMERATION_CONTEXT",
	CIMErrInvalidOperationTimeout:    "CIM_ERR_INVALID_OPERATION_TIMEOUT",
	CIMErrPullHasBeenAbandoned:       "CIM_ERR_PULL_HAS_BEEN_ABANDONED",
	CIMErrPullCannotBeAbandoned:      "CIM_ERR_PULL_CANNOT_BE_ABANDONED",
	CIMErrFilteredEnumerationNotSupp: "CIM_ERR_FILTERED_ENUMERATION_NOT_SUPPORTED",
	CIMErrContinuationOnErrorNotSupp: "CIM_ERR_CONTINUATION_ON_ERROR_NOT_SUPPORTED",
	CIMErrServerLimitsExceeded:       "CIM_ERR_SERVER_LIMITS_EXCEEDED",
	CIMErrServerIsShuttingDown:       "CIM_ERR_SERVER_IS_SHUTTING_DOWN",
}

// CIMStatusName returns the DSP0200 symbolic name for a status code, or
// "" if code is not one of the 28 defined codes.
func CIMStatusName(code int) string {
	return cimStatusNames[code]
}

// CIMError reports a server-returned CIM status code, carried through
// from a response's <ERROR CODE="n" DESCRIPTION="..."/> element.
type CIMError struct {
	Code        int
	Description string
}

func (e *CIMError) Error() string {
	name := CIMStatusName(e.Code)
	if name == "" {
		name = fmt.Sprintf("CIM_ERR_%d", e.Code)
	}
	if e.Description == "" {
		return name
	}
	return fmt.Sprintf("%s: %s", name, e.Description)
}

// Is lets errors.Is(err, &CIMError{Code: werrors.CIMErrNotFound}) match by
// code alone, ignoring Description.
func (e *CIMError) Is(target error) bool {
	t, ok := target.(*CIMError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
