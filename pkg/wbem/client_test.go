package wbem

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/wclient"
	"github.com/wbemix/gowbem/internal/wconfig"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	host, port, ok := strings.Cut(strings.TrimPrefix(srv.URL, "http://"), ":")
	if !ok {
		t.Fatalf("unexpected test server URL %q", srv.URL)
	}
	var portNum int
	for _, r := range port {
		portNum = portNum*10 + int(r-'0')
	}
	client, err := Dial(Config{Host: host, Port: portNum, Scheme: "http", Namespace: "root/cimv2"})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestDialPromotesConnectionOperations(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="utf-8" ?>
<CIM CIMVERSION="2.0" DTDVERSION="2.0">
<MESSAGE ID="1" PROTOCOLVERSION="1.0">
<SIMPLERSP><IMETHODRESPONSE NAME="GetInstance"><IRETURNVALUE>
<INSTANCE CLASSNAME="MyDevice"><PROPERTY NAME="Name" TYPE="string"><VALUE>dev0</VALUE></PROPERTY></INSTANCE>
</IRETURNVALUE></IMETHODRESPONSE></SIMPLERSP>
</MESSAGE></CIM>`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", `application/xml; charset="utf-8"`)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(doc))
	})

	path := cimobj.NewKeylessInstanceName("MyDevice", "root/cimv2")
	inst, err := client.GetInstance(context.Background(), "root/cimv2", path, wclient.GetInstanceOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if inst == nil || inst.ClassName != "MyDevice" {
		t.Fatalf("unexpected instance: %+v", inst)
	}
}

func TestDialProfileRejectsUnknownProfile(t *testing.T) {
	file := &wconfig.File{Profiles: map[string]wconfig.Profile{}}
	if _, err := DialProfile(file, "missing", "secret"); err == nil {
		t.Fatal("expected an error for an unknown profile")
	}
}

func TestDialProfileBuildsClientFromNamedProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	host, port, ok := strings.Cut(strings.TrimPrefix(srv.URL, "http://"), ":")
	if !ok {
		t.Fatalf("unexpected test server URL %q", srv.URL)
	}
	var portNum int
	for _, r := range port {
		portNum = portNum*10 + int(r-'0')
	}
	file := &wconfig.File{Profiles: map[string]wconfig.Profile{
		"dev": {Host: host, Port: portNum, Scheme: "http", Namespace: "root/cimv2"},
	}}
	client, err := DialProfile(file, "dev", "")
	if err != nil {
		t.Fatalf("DialProfile: %v", err)
	}
	if client == nil {
		t.Fatal("expected a non-nil client")
	}
}
