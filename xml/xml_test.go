package xml

import (
	"testing"
)

func TestNew(t *testing.T) {
	e := New()
	if e == nil {
		t.Error("New() should return non-nil encoder")
	}
}

func TestFormat(t *testing.T) {
	e := New()
	if e.Format() != "xml" {
		t.Errorf("Format() = %q, want %q", e.Format(), "xml")
	}
}

func TestEncodeMap(t *testing.T) {
	e := New()

	data, err := e.Encode(map[string]any{
		"name":  "test",
		"value": 42,
	})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := "<data><name>test</name><value>42</value></data>"
	if string(data) != want {
		t.Errorf("Encode() = %q, want %q", data, want)
	}
}

func TestEncodeSlice(t *testing.T) {
	e := New()

	data, err := e.Encode([]any{"a", "b"})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := "<data><item>a</item><item>b</item></data>"
	if string(data) != want {
		t.Errorf("Encode() = %q, want %q", data, want)
	}
}

func TestEncodeEscapes(t *testing.T) {
	e := New()

	data, err := e.Encode(map[string]any{"note": "a < b & c"})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := "<data><note>a &lt; b &amp; c</note></data>"
	if string(data) != want {
		t.Errorf("Encode() = %q, want %q", data, want)
	}
}

func TestEncodeStruct(t *testing.T) {
	e := New()

	type record struct {
		Name string `xml:"name"`
	}

	data, err := e.Encode(record{Name: "test"})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := "<record><name>test</name></record>"
	if string(data) != want {
		t.Errorf("Encode() = %q, want %q", data, want)
	}
}

func TestDecodeGeneric(t *testing.T) {
	e := New()

	var out any
	err := e.Decode([]byte("<data><name>test</name><value>42</value></data>"), &out)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("Decode() produced %T, want map[string]any", out)
	}
	if m["name"] != "test" {
		t.Errorf("name = %v, want %q", m["name"], "test")
	}
	// Scalars decode as strings.
	if m["value"] != "42" {
		t.Errorf("value = %v (%T), want %q", m["value"], m["value"], "42")
	}
}

func TestDecodeGenericSlice(t *testing.T) {
	e := New()

	var out any
	err := e.Decode([]byte("<data><item>a</item><item>b</item></data>"), &out)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	items, ok := out.([]any)
	if !ok {
		t.Fatalf("Decode() produced %T, want []any", out)
	}
	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Errorf("items = %v, want [a b]", items)
	}
}

func TestDecodeGenericNested(t *testing.T) {
	e := New()

	var out any
	err := e.Decode([]byte("<data><profile><city>Berlin</city></profile></data>"), &out)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	m := out.(map[string]any)
	profile, ok := m["profile"].(map[string]any)
	if !ok {
		t.Fatalf("profile decoded as %T, want map[string]any", m["profile"])
	}
	if profile["city"] != "Berlin" {
		t.Errorf("city = %v, want %q", profile["city"], "Berlin")
	}
}

func TestDecodeStruct(t *testing.T) {
	e := New()

	type record struct {
		Name string `xml:"name"`
	}

	var out record
	if err := e.Decode([]byte("<record><name>test</name></record>"), &out); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if out.Name != "test" {
		t.Errorf("Name = %q, want %q", out.Name, "test")
	}
}

func TestRoundTrip(t *testing.T) {
	e := New()

	original := map[string]any{
		"name": "test",
		"tags": []any{"x", "y"},
	}

	data, err := e.Encode(original)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var restored any
	if err := e.Decode(data, &restored); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	m := restored.(map[string]any)
	if m["name"] != "test" {
		t.Errorf("name = %v, want %q", m["name"], "test")
	}
	tags, ok := m["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Fatalf("tags = %v, want [x y]", m["tags"])
	}
}
