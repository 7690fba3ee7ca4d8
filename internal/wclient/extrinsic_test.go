package wclient

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
)

func TestInvokeMethodEncodesMethodCallEnvelope(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="utf-8" ?>
<CIM CIMVERSION="2.0" DTDVERSION="2.0">
<MESSAGE ID="1" PROTOCOLVERSION="1.0">
<SIMPLERSP><METHODRESPONSE NAME="Reboot">
<RETURNVALUE PARAMTYPE="uint32"><VALUE>0</VALUE></RETURNVALUE>
<PARAMVALUE NAME="Status" PARAMTYPE="string"><VALUE>ok</VALUE></PARAMVALUE>
</METHODRESPONSE></SIMPLERSP>
</MESSAGE></CIM>`

	var capturedBody string
	var gotCIMObject string
	conn, _ := newTestConnection(t, func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		capturedBody = string(buf)
		gotCIMObject = r.Header.Get("CIMObject")
		respondXML(w, doc)
	})

	path := cimobj.NewKeylessInstanceName("MyDevice", "root/cimv2")
	inParam := cimobj.NewParameter("Force", cimtype.KindBoolean, false).WithValue(cimtype.NewBoolean(true))
	result, err := conn.InvokeMethod(context.Background(), "root/cimv2", path, "Reboot", []*cimobj.Parameter{inParam})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(capturedBody, `<METHODCALL NAME="Reboot">`) {
		t.Errorf("request missing METHODCALL: %s", capturedBody)
	}
	if gotCIMObject != path.URIString() {
		t.Errorf("CIMObject header = %q, want %q", gotCIMObject, path.URIString())
	}
	if !strings.Contains(capturedBody, `<PARAMVALUE NAME="Force" PARAMTYPE="boolean">`) {
		t.Errorf("request missing input PARAMVALUE: %s", capturedBody)
	}
	if result.ReturnValue == nil || result.ReturnValue.String() != "0" {
		t.Errorf("ReturnValue = %v, want 0", result.ReturnValue)
	}
	if len(result.OutParams) != 1 || result.OutParams[0].Name != "Status" {
		t.Fatalf("unexpected OutParams: %+v", result.OutParams)
	}
}

func TestInvokeMethodSurfacesCIMError(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="utf-8" ?>
<CIM CIMVERSION="2.0" DTDVERSION="2.0">
<MESSAGE ID="1" PROTOCOLVERSION="1.0">
<SIMPLERSP><METHODRESPONSE NAME="Reboot">
<ERROR CODE="1" DESCRIPTION="not supported"/>
</METHODRESPONSE></SIMPLERSP>
</MESSAGE></CIM>`
	conn, _ := newTestConnection(t, func(w http.ResponseWriter, r *http.Request) {
		respondXML(w, doc)
	})

	path := cimobj.NewKeylessInstanceName("MyDevice", "root/cimv2")
	_, err := conn.InvokeMethod(context.Background(), "root/cimv2", path, "Reboot", nil)
	if err == nil {
		t.Fatal("expected a CIMError")
	}
}
