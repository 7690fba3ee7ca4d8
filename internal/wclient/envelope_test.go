package wclient

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/wlog"
)

func TestEncodeIMethodCallShape(t *testing.T) {
	out := EncodeIMethodCall("1001", "EnumerateInstances", "root/cimv2", []IParam{
		{Name: "ClassName", ClassName: "MyDevice"},
		{Name: "DeepInheritance", Value: cimtype.NewBoolean(true)},
	})
	s := string(out)
	for _, want := range []string{
		`<?xml version="1.0" encoding="utf-8" ?>`,
		`<MESSAGE ID="1001" PROTOCOLVERSION="1.0">`,
		`<IMETHODCALL NAME="EnumerateInstances">`,
		`<NAMESPACE NAME="root"/><NAMESPACE NAME="cimv2"/>`,
		`<IPARAMVALUE NAME="ClassName"><CLASSNAME NAME="MyDevice"/></IPARAMVALUE>`,
		`<IPARAMVALUE NAME="DeepInheritance"><VALUE>true</VALUE></IPARAMVALUE>`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("expected output to contain %q, got %q", want, s)
		}
	}
}

func TestDecodeMethodResponseSuccess(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8" ?>
<CIM CIMVERSION="2.0" DTDVERSION="2.0">
<MESSAGE ID="1001" PROTOCOLVERSION="1.0">
<SIMPLERSP>
<IMETHODRESPONSE NAME="EnumerateInstances">
<IRETURNVALUE>
<VALUE.NAMEDINSTANCE>
<INSTANCENAME CLASSNAME="MyDevice"><KEYBINDING NAME="Name"><KEYVALUE VALUETYPE="string">dev0</KEYVALUE></KEYBINDING></INSTANCENAME>
<INSTANCE CLASSNAME="MyDevice"><PROPERTY NAME="Name" TYPE="string"><VALUE>dev0</VALUE></PROPERTY></INSTANCE>
</VALUE.NAMEDINSTANCE>
</IRETURNVALUE>
</IMETHODRESPONSE>
</SIMPLERSP>
</MESSAGE>
</CIM>`
	resp, err := DecodeMethodResponse(bytes.NewReader([]byte(doc)), wlog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if resp.MessageID != "1001" || resp.MethodName != "EnumerateInstances" {
		t.Errorf("unexpected MessageID/MethodName: %+v", resp)
	}
	if len(resp.NamedInstances) != 1 {
		t.Fatalf("NamedInstances = %d, want 1", len(resp.NamedInstances))
	}
	if resp.NamedInstances[0].Path.ClassName != "MyDevice" {
		t.Errorf("Path.ClassName = %q, want MyDevice", resp.NamedInstances[0].Path.ClassName)
	}
}

func TestDecodeMethodResponseError(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8" ?>
<CIM CIMVERSION="2.0" DTDVERSION="2.0">
<MESSAGE ID="1002" PROTOCOLVERSION="1.0">
<SIMPLERSP>
<IMETHODRESPONSE NAME="GetInstance">
<ERROR CODE="6" DESCRIPTION="instance not found"/>
</IMETHODRESPONSE>
</SIMPLERSP>
</MESSAGE>
</CIM>`
	resp, err := DecodeMethodResponse(bytes.NewReader([]byte(doc)), wlog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Code != 6 {
		t.Fatalf("expected CIMError code 6, got %+v", resp.Error)
	}
}
