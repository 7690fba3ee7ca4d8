package cimxml

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/cimtype"
	"github.com/wbemix/gowbem/internal/wlog"
)

func TestEncodeValueScalar(t *testing.T) {
	e := NewEncoder()
	v, _ := cimtype.NewUnsignedInteger(cimtype.KindUint8, 42)
	e.WriteValue(v)
	want := "<VALUE>42</VALUE>"
	if got := e.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeValueEscapesText(t *testing.T) {
	e := NewEncoder()
	e.WriteValue(cimtype.NewString("a<b&c"))
	want := "<VALUE>a&lt;b&amp;c</VALUE>"
	if got := e.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeValueArray(t *testing.T) {
	a1, _ := cimtype.NewUnsignedInteger(cimtype.KindUint8, 1)
	a2, _ := cimtype.NewUnsignedInteger(cimtype.KindUint8, 2)
	arr, _ := cimtype.NewArray(cimtype.KindUint8, []cimtype.Value{a1, a2})
	e := NewEncoder()
	e.WriteValue(arr)
	want := "<VALUE.ARRAY><VALUE>1</VALUE><VALUE>2</VALUE></VALUE.ARRAY>"
	if got := e.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeInstanceNameRoundTrip(t *testing.T) {
	n, err := cimobj.NewInstanceName("MyDevice", "root/cimv2", map[string]cimtype.Value{
		"Name": cimtype.NewString("dev0"),
	})
	if err != nil {
		t.Fatal(err)
	}
	e := NewEncoder()
	e.WriteInstanceName(n)
	out := e.String()

	dec := NewDecoder(strings.NewReader(out))
	start, ok, err := dec.nextStart()
	if err != nil || !ok {
		t.Fatalf("nextStart: ok=%v err=%v", ok, err)
	}
	got, err := dec.ReadInstanceName(start)
	if err != nil {
		t.Fatal(err)
	}
	if got.ClassName != "MyDevice" {
		t.Errorf("ClassName = %q, want MyDevice", got.ClassName)
	}
	v, ok := got.Key("Name")
	if !ok || v.(cimtype.String) != cimtype.NewString("dev0") {
		t.Errorf("Key(Name) = %v, %v, want dev0, true", v, ok)
	}
}

func TestEncodeDecodeInstanceRoundTrip(t *testing.T) {
	inst := cimobj.NewInstance("MyDevice", "root/cimv2")
	inst.SetProperty("Name", cimtype.NewString("dev0"))
	uv, _ := cimtype.NewUnsignedInteger(cimtype.KindUint32, 7)
	inst.SetProperty("Count", uv)

	e := NewEncoder()
	e.WriteInstance(inst)
	out := e.String()

	dec := NewDecoder(strings.NewReader(out))
	start, ok, err := dec.nextStart()
	if err != nil || !ok {
		t.Fatalf("nextStart: ok=%v err=%v", ok, err)
	}
	got, err := dec.ReadInstance(start)
	if err != nil {
		t.Fatal(err)
	}
	if got.ClassName != "MyDevice" {
		t.Errorf("ClassName = %q, want MyDevice", got.ClassName)
	}
	if got.Value("Name").(cimtype.String) != cimtype.NewString("dev0") {
		t.Errorf("Name = %v, want dev0", got.Value("Name"))
	}
	countProp, ok := got.Property("Count")
	if !ok || countProp.Type != cimtype.KindUint32 {
		t.Errorf("Count property type = %v, want uint32", countProp)
	}
}

func TestEncodeQualifierWithPropagated(t *testing.T) {
	q := cimobj.NewQualifier("Description", cimtype.NewString("hi"))
	q.Propagated = true
	e := NewEncoder()
	e.WriteQualifier(q)
	want := `<QUALIFIER NAME="Description" TYPE="string" PROPAGATED="true"><VALUE>hi</VALUE></QUALIFIER>`
	if got := e.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeClassOrdering(t *testing.T) {
	c := cimobj.NewClass("MyDevice", "CIM_ManagedElement")
	c.AddProperty(cimobj.NewProperty("Name", cimtype.KindString, false))
	e := NewEncoder()
	e.WriteClass(c)
	got := e.String()
	if !strings.HasPrefix(got, `<CLASS NAME="MyDevice" SUPERCLASS="CIM_ManagedElement">`) {
		t.Errorf("unexpected CLASS open tag: %q", got)
	}
	if !strings.Contains(got, `<PROPERTY NAME="Name" TYPE="string">`) {
		t.Errorf("expected PROPERTY element, got %q", got)
	}
}

func TestDecoderRejectsMalformedXML(t *testing.T) {
	dec := NewDecoder(strings.NewReader("<VALUE>unterminated"))
	start, ok, err := dec.nextStart()
	if err != nil || !ok {
		t.Fatalf("nextStart: ok=%v err=%v", ok, err)
	}
	if _, err := dec.charData(start.Name.Local); err == nil {
		t.Fatal("expected error reading character data of an unterminated element")
	}
}

func TestDecoderRejectsUnknownChildElement(t *testing.T) {
	const doc = `<INSTANCE CLASSNAME="MyDevice"><BOGUS/></INSTANCE>`
	dec := NewDecoder(strings.NewReader(doc))
	start, ok, err := dec.nextStart()
	if err != nil || !ok {
		t.Fatalf("nextStart: ok=%v err=%v", ok, err)
	}
	_, err = dec.ReadInstance(start)
	if err == nil {
		t.Fatal("expected a CIMXMLParseError for an unrecognized INSTANCE child")
	}
	if _, ok := err.(interface{ Error() string }); !ok {
		t.Fatalf("unexpected error type: %T", err)
	}
}

func TestDecoderLogsIgnoredUnknownAttribute(t *testing.T) {
	const doc = `<INSTANCE CLASSNAME="MyDevice" EXPERIMENTAL="true"></INSTANCE>`
	var buf bytes.Buffer
	dec := NewDecoder(strings.NewReader(doc))
	dec.SetLogger(wlog.New(&buf, zerolog.DebugLevel))

	start, ok, err := dec.nextStart()
	if err != nil || !ok {
		t.Fatalf("nextStart: ok=%v err=%v", ok, err)
	}
	if _, err := dec.ReadInstance(start); err != nil {
		t.Fatal(err)
	}

	logged := buf.String()
	if !strings.Contains(logged, `"attribute":"EXPERIMENTAL"`) {
		t.Errorf("expected a debug log for the unknown EXPERIMENTAL attribute, got %q", logged)
	}
}
