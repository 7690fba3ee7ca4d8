// Package wclient implements the CIM operation client: the HTTP/TLS
// transport, the DSP0200 request/response envelope built on
// internal/cimxml's object-level codec, the pulled-enumeration state
// machine, retry and recording policy (spec.md §4.D).
package wclient

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/cimxml"
	"github.com/wbemix/gowbem/internal/werrors"
	"github.com/wbemix/gowbem/internal/wlog"
)

const (
	cimVersion      = "2.0"
	dtdVersion      = "2.0"
	protocolVersion = "1.0"
)

// IParam is one IPARAMVALUE child of an intrinsic method call.
type IParam struct {
	Name                string
	Value               cimtype.Value
	ClassName           string // non-"" writes a <CLASSNAME NAME=.../> child
	InstanceName        *cimobj.InstanceName
	Instance            *cimobj.Instance
	Class               *cimobj.Class
	QualifierDeclaration *cimobj.QualifierDeclaration
}

// EncodeIMethodCall writes a full CIM-XML request document invoking an
// intrinsic method (spec.md §6 envelope skeleton). CIM/MESSAGE/
// SIMPLEREQ/IMETHODCALL/IPARAMVALUE have no object-model type of their
// own to hang an Encoder method off of, so this function (and its
// extrinsic counterpart encodeMethodCall in extrinsic.go) writes
// envelope tags directly via WriteRawForEnvelope.
func EncodeIMethodCall(messageID, methodName, namespace string, params []IParam) []byte {
	e := cimxml.NewEncoder()
	e.WriteDeclaration()
	e.WriteRawForEnvelope(fmt.Sprintf(`<CIM CIMVERSION=%q DTDVERSION=%q>`, cimVersion, dtdVersion))
	e.WriteRawForEnvelope(fmt.Sprintf(`<MESSAGE ID=%q PROTOCOLVERSION=%q>`, messageID, protocolVersion))
	e.WriteRawForEnvelope("<SIMPLEREQ>")
	e.WriteRawForEnvelope(fmt.Sprintf(`<IMETHODCALL NAME=%q>`, methodName))
	e.WriteLocalNamespacePath(namespace)
	for _, p := range params {
		writeIParamValue(e, p)
	}
	e.WriteRawForEnvelope("</IMETHODCALL>")
	e.WriteRawForEnvelope("</SIMPLEREQ>")
	e.WriteRawForEnvelope("</MESSAGE>")
	e.WriteRawForEnvelope("</CIM>")
	return e.Bytes()
}

func writeIParamValue(e *cimxml.Encoder, p IParam) {
	e.WriteRawForEnvelope(fmt.Sprintf(`<IPARAMVALUE NAME=%q>`, p.Name))
	switch {
	case p.ClassName != "":
		e.WriteRawForEnvelope(fmt.Sprintf(`<CLASSNAME NAME=%q/>`, p.ClassName))
	case p.InstanceName != nil:
		e.WriteInstanceName(p.InstanceName)
	case p.Instance != nil:
		e.WriteInstance(p.Instance)
	case p.Class != nil:
		e.WriteClass(p.Class)
	case p.QualifierDeclaration != nil:
		e.WriteQualifierDeclaration(p.QualifierDeclaration)
	case p.Value != nil:
		e.WriteValue(p.Value)
	}
	e.WriteRawForEnvelope("</IPARAMVALUE>")
}

// NamedInstance pairs an instance's path with its value, the form
// EnumerateInstances/pull results carry (spec.md §4.D "typed sequence
// of CIM objects with their paths populated").
type NamedInstance struct {
	Path     *cimobj.InstanceName
	Instance *cimobj.Instance
}

// MethodResponse is the decoded result of one IMETHODRESPONSE: exactly
// one of Error or the populated result slices is meaningful, depending
// on which operation produced it.
type MethodResponse struct {
	MessageID          string
	MethodName         string
	Error              *werrors.CIMError
	NamedInstances     []NamedInstance
	Instances          []*cimobj.Instance
	InstanceNames      []*cimobj.InstanceName
	Classes               []*cimobj.Class
	Values                []cimtype.Value
	QualifierDeclarations []*cimobj.QualifierDeclaration
	EnumerationContext    string
	EndOfSequence         bool
}

// DecodeMethodResponse parses a full CIM-XML response document,
// driving the same push-down element walk component C's object parser
// uses, one layer further out around the envelope tags. logger
// receives the decoder's ignored-unknown-attribute debug events.
func DecodeMethodResponse(r io.Reader, logger wlog.Logger) (*MethodResponse, error) {
	dec := cimxml.NewDecoder(r)
	dec.SetLogger(logger)

	cim, ok, err := dec.NextStart()
	if err != nil {
		return nil, err
	}
	if !ok || cim.Name.Local != "CIM" {
		return nil, &werrors.CIMXMLParseError{Element: "CIM", Message: "missing root CIM element"}
	}
	if v, found := attrValue(cim, "CIMVERSION"); found && v != cimVersion {
		return nil, &werrors.CIMVersionError{Declared: v, Accepted: []string{cimVersion}}
	}

	msg, ok, err := dec.NextStart()
	if err != nil {
		return nil, err
	}
	if !ok || msg.Name.Local != "MESSAGE" {
		return nil, &werrors.CIMXMLParseError{Element: "MESSAGE", Message: "missing MESSAGE element"}
	}
	resp := &MethodResponse{}
	resp.MessageID, _ = attrValue(msg, "ID")
	if v, found := attrValue(msg, "PROTOCOLVERSION"); found && v != protocolVersion {
		return nil, &werrors.ProtocolVersionError{Declared: v, Accepted: []string{protocolVersion}}
	}

	simplersp, ok, err := dec.NextStart()
	if err != nil {
		return nil, err
	}
	if !ok || simplersp.Name.Local != "SIMPLERSP" {
		return nil, &werrors.CIMXMLParseError{Element: "SIMPLERSP", Message: "missing SIMPLERSP element"}
	}

	imr, ok, err := dec.NextStart()
	if err != nil {
		return nil, err
	}
	if !ok || imr.Name.Local != "IMETHODRESPONSE" {
		return nil, &werrors.CIMXMLParseError{Element: "IMETHODRESPONSE", Message: "missing IMETHODRESPONSE element"}
	}
	resp.MethodName, _ = attrValue(imr, "NAME")

	if err := readIMethodResponseBody(dec, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func readIMethodResponseBody(dec *cimxml.Decoder, resp *MethodResponse) error {
	for {
		child, ok, err := dec.NextStart()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch child.Name.Local {
		case "ERROR":
			codeStr, _ := attrValue(child, "CODE")
			desc, _ := attrValue(child, "DESCRIPTION")
			code, _ := strconv.Atoi(codeStr)
			resp.Error = &werrors.CIMError{Code: code, Description: desc}
			if err := dec.SkipToEnd(); err != nil {
				return err
			}
		case "IRETURNVALUE":
			if err := readIReturnValue(dec, resp); err != nil {
				return err
			}
		default:
			if err := dec.SkipToEnd(); err != nil {
				return err
			}
		}
	}
}

func readIReturnValue(dec *cimxml.Decoder, resp *MethodResponse) error {
	for {
		child, ok, err := dec.NextStart()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch child.Name.Local {
		case "VALUE.NAMEDINSTANCE":
			path, inst, err := dec.ReadValueNamedInstance(child)
			if err != nil {
				return err
			}
			resp.NamedInstances = append(resp.NamedInstances, NamedInstance{Path: path, Instance: inst})
		case "INSTANCE":
			inst, err := dec.ReadInstance(child)
			if err != nil {
				return err
			}
			resp.Instances = append(resp.Instances, inst)
		case "INSTANCENAME":
			in, err := dec.ReadInstanceName(child)
			if err != nil {
				return err
			}
			resp.InstanceNames = append(resp.InstanceNames, in)
		case "CLASS":
			cls, err := dec.ReadClass(child)
			if err != nil {
				return err
			}
			resp.Classes = append(resp.Classes, cls)
		case "QUALIFIER.DECLARATION":
			decl, err := dec.ReadQualifierDeclaration(child)
			if err != nil {
				return err
			}
			resp.QualifierDeclarations = append(resp.QualifierDeclarations, decl)
		case "VALUE":
			text, err := dec.CharData("VALUE")
			if err != nil {
				return err
			}
			resp.Values = append(resp.Values, cimtype.NewString(text))
		case "EnumerationContext":
			text, err := dec.CharData("EnumerationContext")
			if err != nil {
				return err
			}
			resp.EnumerationContext = text
		case "EndOfSequence":
			if err := dec.SkipToEnd(); err != nil {
				return err
			}
			resp.EndOfSequence = true
		default:
			if err := dec.SkipToEnd(); err != nil {
				return err
			}
		}
	}
}

func attrValue(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
