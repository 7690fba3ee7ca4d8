package wclient

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/cimxml"
	"github.com/wbemix/gowbem/internal/werrors"
	"github.com/wbemix/gowbem/internal/wlog"
)

// MethodResult is the decoded result of one extrinsic InvokeMethod
// call: a return value and any OUT parameters the method produced.
type MethodResult struct {
	ReturnValue cimtype.Value
	OutParams   []*cimobj.Parameter
}

// InvokeMethod calls an extrinsic method on the instance named by
// path, the DSP0200 operation distinct from the intrinsic catalogue in
// operations.go — it builds its own METHODCALL/PARAMVALUE/
// METHODRESPONSE/RETURNVALUE envelope rather than IMETHODCALL's. Never
// retried: extrinsic methods carry arbitrary, usually non-idempotent,
// side effects (spec.md §4.D).
func (c *Connection) InvokeMethod(ctx context.Context, namespace string, path *cimobj.InstanceName, methodName string, inParams []*cimobj.Parameter) (*MethodResult, error) {
	if namespace == "" {
		namespace = c.namespace
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messageID := c.nextMessageID()
	reqBody := encodeMethodCall(messageID, methodName, namespace, path, inParams)

	// CIMObject names the target instance path for an extrinsic call,
	// not just its namespace (spec.md §6).
	bodyBytes, err := c.sendRequest(ctx, methodName, path.URIString(), reqBody)
	c.logger.OperationAttempt(methodName, namespace, messageID, 1, err)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &werrors.TimeoutError{Operation: methodName, Timeout: c.timeout}
		}
		return nil, err
	}

	result, cimErr, err := decodeMethodCallResponse(bodyBytes, c.logger)
	if err != nil {
		return nil, err
	}
	if cimErr != nil {
		return nil, cimErr
	}
	return result, nil
}

func encodeMethodCall(messageID, methodName, namespace string, path *cimobj.InstanceName, params []*cimobj.Parameter) []byte {
	e := cimxml.NewEncoder()
	e.WriteDeclaration()
	e.WriteRawForEnvelope(fmt.Sprintf(`<CIM CIMVERSION=%q DTDVERSION=%q>`, cimVersion, dtdVersion))
	e.WriteRawForEnvelope(fmt.Sprintf(`<MESSAGE ID=%q PROTOCOLVERSION=%q>`, messageID, protocolVersion))
	e.WriteRawForEnvelope("<SIMPLEREQ>")
	e.WriteRawForEnvelope(fmt.Sprintf(`<METHODCALL NAME=%q>`, methodName))
	e.WriteRawForEnvelope("<LOCALINSTANCEPATH>")
	e.WriteLocalNamespacePath(namespace)
	e.WriteInstanceName(path)
	e.WriteRawForEnvelope("</LOCALINSTANCEPATH>")
	for _, p := range params {
		writeParamValue(e, p)
	}
	e.WriteRawForEnvelope("</METHODCALL>")
	e.WriteRawForEnvelope("</SIMPLEREQ>")
	e.WriteRawForEnvelope("</MESSAGE>")
	e.WriteRawForEnvelope("</CIM>")
	return e.Bytes()
}

func writeParamValue(e *cimxml.Encoder, p *cimobj.Parameter) {
	e.WriteRawForEnvelope(fmt.Sprintf(`<PARAMVALUE NAME=%q PARAMTYPE=%q>`, p.Name, p.Type.String()))
	if p.Value != nil {
		e.WriteValue(p.Value)
	}
	e.WriteRawForEnvelope("</PARAMVALUE>")
}

// decodeMethodCallResponse parses a full METHODRESPONSE document,
// mirroring DecodeMethodResponse's envelope walk but for the extrinsic
// tag set (METHODRESPONSE/RETURNVALUE/PARAMVALUE) rather than the
// intrinsic one.
func decodeMethodCallResponse(body []byte, logger wlog.Logger) (*MethodResult, *werrors.CIMError, error) {
	dec := cimxml.NewDecoder(bytes.NewReader(body))
	dec.SetLogger(logger)

	cim, ok, err := dec.NextStart()
	if err != nil {
		return nil, nil, err
	}
	if !ok || cim.Name.Local != "CIM" {
		return nil, nil, &werrors.CIMXMLParseError{Element: "CIM", Message: "missing root CIM element"}
	}
	msg, ok, err := dec.NextStart()
	if err != nil {
		return nil, nil, err
	}
	if !ok || msg.Name.Local != "MESSAGE" {
		return nil, nil, &werrors.CIMXMLParseError{Element: "MESSAGE", Message: "missing MESSAGE element"}
	}
	simplersp, ok, err := dec.NextStart()
	if err != nil {
		return nil, nil, err
	}
	if !ok || simplersp.Name.Local != "SIMPLERSP" {
		return nil, nil, &werrors.CIMXMLParseError{Element: "SIMPLERSP", Message: "missing SIMPLERSP element"}
	}
	mr, ok, err := dec.NextStart()
	if err != nil {
		return nil, nil, err
	}
	if !ok || mr.Name.Local != "METHODRESPONSE" {
		return nil, nil, &werrors.CIMXMLParseError{Element: "METHODRESPONSE", Message: "missing METHODRESPONSE element"}
	}

	result := &MethodResult{}
	var cimErr *werrors.CIMError
	for {
		child, ok, err := dec.NextStart()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			break
		}
		switch child.Name.Local {
		case "ERROR":
			code, _ := attrValue(child, "CODE")
			desc, _ := attrValue(child, "DESCRIPTION")
			n, _ := strconv.Atoi(code)
			cimErr = &werrors.CIMError{Code: n, Description: desc}
			if err := dec.SkipToEnd(); err != nil {
				return nil, nil, err
			}
		case "RETURNVALUE":
			paramType, _ := attrValue(child, "PARAMTYPE")
			kind := kindFromParamType(paramType)
			v, err := readValueChild(dec, kind)
			if err != nil {
				return nil, nil, err
			}
			result.ReturnValue = v
		case "PARAMVALUE":
			name, _ := attrValue(child, "NAME")
			paramType, _ := attrValue(child, "PARAMTYPE")
			kind := kindFromParamType(paramType)
			v, err := readValueChild(dec, kind)
			if err != nil {
				return nil, nil, err
			}
			_, isArray := v.(*cimtype.Array)
			p := cimobj.NewParameter(name, kind, isArray).WithValue(v)
			result.OutParams = append(result.OutParams, p)
		default:
			if err := dec.SkipToEnd(); err != nil {
				return nil, nil, err
			}
		}
	}
	return result, cimErr, nil
}

// readValueChild reads the single VALUE/VALUE.ARRAY/VALUE.REFERENCE
// child of a RETURNVALUE or PARAMVALUE element, if any, then drains any
// further tokens up to that enclosing element's own end tag.
func readValueChild(dec *cimxml.Decoder, kind cimtype.Kind) (cimtype.Value, error) {
	var v cimtype.Value
	for {
		child, ok, err := dec.NextStart()
		if err != nil {
			return nil, err
		}
		if !ok {
			return v, nil
		}
		switch child.Name.Local {
		case "VALUE", "VALUE.ARRAY", "VALUE.REFERENCE", "VALUE.NULL":
			v, err = dec.ReadValue(child, kind)
			if err != nil {
				return nil, err
			}
		default:
			if err := dec.SkipToEnd(); err != nil {
				return nil, err
			}
		}
	}
}

func kindFromParamType(paramType string) cimtype.Kind {
	if k := cimxml.KindFromAttrValue(paramType); k != cimtype.KindInvalid {
		return k
	}
	return cimtype.KindString
}
