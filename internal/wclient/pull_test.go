package wclient

import (
	"context"
	"net/http"
	"testing"
)

func TestIterateInstancesFallsBackWhenPullNotSupported(t *testing.T) {
	const enumDoc = `<?xml version="1.0" encoding="utf-8" ?>
<CIM CIMVERSION="2.0" DTDVERSION="2.0">
<MESSAGE ID="1" PROTOCOLVERSION="1.0">
<SIMPLERSP><IMETHODRESPONSE NAME="EnumerateInstances"><IRETURNVALUE>
<VALUE.NAMEDINSTANCE>
<INSTANCENAME CLASSNAME="MyDevice"><KEYBINDING NAME="Name"><KEYVALUE VALUETYPE="string">dev0</KEYVALUE></KEYBINDING></INSTANCENAME>
<INSTANCE CLASSNAME="MyDevice"><PROPERTY NAME="Name" TYPE="string"><VALUE>dev0</VALUE></PROPERTY></INSTANCE>
</VALUE.NAMEDINSTANCE>
</IRETURNVALUE></IMETHODRESPONSE></SIMPLERSP>
</MESSAGE></CIM>`
	const notSupportedDoc = `<?xml version="1.0" encoding="utf-8" ?>
<CIM CIMVERSION="2.0" DTDVERSION="2.0">
<MESSAGE ID="1" PROTOCOLVERSION="1.0">
<SIMPLERSP><IMETHODRESPONSE NAME="OpenEnumerateInstances">
<ERROR CODE="7" DESCRIPTION="pulled enumeration unsupported"/>
</IMETHODRESPONSE></SIMPLERSP>
</MESSAGE></CIM>`

	conn, _ := newTestConnection(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("CIMMethod") {
		case "OpenEnumerateInstances":
			respondXML(w, notSupportedDoc)
		case "EnumerateInstances":
			respondXML(w, enumDoc)
		default:
			t.Errorf("unexpected CIMMethod %q", r.Header.Get("CIMMethod"))
		}
	})

	var seen []string
	err := conn.IterateInstances(context.Background(), "root/cimv2", "MyDevice", EnumerateInstanceOptions{}, func(ni NamedInstance) error {
		seen = append(seen, ni.Path.ClassName)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != "MyDevice" {
		t.Fatalf("unexpected results: %+v", seen)
	}
	if conn.pullSupported == nil || *conn.pullSupported {
		t.Error("expected pullSupported to be cached as false")
	}
}

func TestIterateInstancesUsesPullWhenSupported(t *testing.T) {
	const openDoc = `<?xml version="1.0" encoding="utf-8" ?>
<CIM CIMVERSION="2.0" DTDVERSION="2.0">
<MESSAGE ID="1" PROTOCOLVERSION="1.0">
<SIMPLERSP><IMETHODRESPONSE NAME="OpenEnumerateInstances"><IRETURNVALUE>
<VALUE.NAMEDINSTANCE>
<INSTANCENAME CLASSNAME="MyDevice"><KEYBINDING NAME="Name"><KEYVALUE VALUETYPE="string">dev0</KEYVALUE></KEYBINDING></INSTANCENAME>
<INSTANCE CLASSNAME="MyDevice"><PROPERTY NAME="Name" TYPE="string"><VALUE>dev0</VALUE></PROPERTY></INSTANCE>
</VALUE.NAMEDINSTANCE>
<EndOfSequence/>
</IRETURNVALUE></IMETHODRESPONSE></SIMPLERSP>
</MESSAGE></CIM>`

	conn, _ := newTestConnection(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("CIMMethod") != "OpenEnumerateInstances" {
			t.Errorf("unexpected CIMMethod %q", r.Header.Get("CIMMethod"))
		}
		respondXML(w, openDoc)
	})

	var seen []string
	err := conn.IterateInstances(context.Background(), "root/cimv2", "MyDevice", EnumerateInstanceOptions{}, func(ni NamedInstance) error {
		seen = append(seen, ni.Path.ClassName)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 {
		t.Fatalf("unexpected results: %+v", seen)
	}
	if conn.pullSupported == nil || !*conn.pullSupported {
		t.Error("expected pullSupported to be cached as true")
	}
	if len(conn.pulls) != 0 {
		t.Errorf("pulls map should be empty after EndOfSequence, got %d entries", len(conn.pulls))
	}
}
