package yaml

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
	if e.Format() != "yaml" {
		t.Errorf("Format() = %q, want %q", e.Format(), "yaml")
	}
}

func TestEncodeDecode(t *testing.T) {
	e := New()

	original := map[string]any{
		"name":  "test",
		"value": 42,
	}

	data, err := e.Encode(original)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var restored any
	if err := e.Decode(data, &restored); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	m, ok := restored.(map[string]any)
	if !ok {
		t.Fatalf("Decode() produced %T, want map[string]any", restored)
	}
	if m["name"] != "test" || m["value"] != 42 {
		t.Errorf("round-trip failed: got %+v, want %+v", m, original)
	}
}

func TestDecodeInvalid(t *testing.T) {
	e := New()

	var out any
	if err := e.Decode([]byte("\t{not: yaml"), &out); err == nil {
		t.Error("Decode() should fail on invalid YAML")
	}
}
