package normalize_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/zoobzio/normalize"
)

func defaultChain() *normalize.Chain {
	return normalize.NewChain(normalize.DefaultRegistry())
}

func TestTimeNormalizer_RoundTrip(t *testing.T) {
	chain := defaultChain()
	ctx := context.Background()

	original := time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)

	out, err := chain.Normalize(ctx, original, "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	s, ok := out.(string)
	if !ok {
		t.Fatalf("Normalize produced %T, want string", out)
	}

	back, err := chain.Denormalize(ctx, s, reflect.TypeOf(time.Time{}), "json")
	if err != nil {
		t.Fatalf("Denormalize error: %v", err)
	}
	if !back.(time.Time).Equal(original) {
		t.Errorf("round-trip produced %v, want %v", back, original)
	}
}

func TestTimeNormalizer_PointerForms(t *testing.T) {
	chain := defaultChain()
	ctx := context.Background()

	original := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	out, err := chain.Normalize(ctx, &original, "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	back, err := chain.Denormalize(ctx, out, reflect.TypeOf(&time.Time{}), "json")
	if err != nil {
		t.Fatalf("Denormalize error: %v", err)
	}
	ptr, ok := back.(*time.Time)
	if !ok {
		t.Fatalf("Denormalize produced %T, want *time.Time", back)
	}
	if !ptr.Equal(original) {
		t.Errorf("round-trip produced %v, want %v", ptr, original)
	}
}

func TestTimeNormalizer_OutranksObject(t *testing.T) {
	// time.Time is a struct, but it must reach the time normalizer, not
	// the object fallback.
	chain := defaultChain()

	out, err := chain.Normalize(context.Background(), time.Unix(0, 0).UTC(), "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if _, ok := out.(string); !ok {
		t.Errorf("time.Time normalized to %T, want string", out)
	}
}

func TestTimeNormalizer_RejectsBadInput(t *testing.T) {
	chain := defaultChain()

	_, err := chain.Denormalize(context.Background(), "not a timestamp", reflect.TypeOf(time.Time{}), "json")
	if err == nil {
		t.Error("Denormalize should fail on malformed timestamps")
	}
}

func TestDurationNormalizer_RoundTrip(t *testing.T) {
	chain := defaultChain()
	ctx := context.Background()

	original := 90 * time.Minute

	out, err := chain.Normalize(ctx, original, "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if out != "1h30m0s" {
		t.Errorf("Normalize = %v, want 1h30m0s", out)
	}

	back, err := chain.Denormalize(ctx, out, reflect.TypeOf(time.Duration(0)), "json")
	if err != nil {
		t.Fatalf("Denormalize error: %v", err)
	}
	if back.(time.Duration) != original {
		t.Errorf("round-trip produced %v, want %v", back, original)
	}
}

func TestBytesNormalizer_RoundTrip(t *testing.T) {
	chain := defaultChain()
	ctx := context.Background()

	original := []byte{0x00, 0x01, 0xff}

	out, err := chain.Normalize(ctx, original, "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if out != "AAH/" {
		t.Errorf("Normalize = %v, want AAH/", out)
	}

	back, err := chain.Denormalize(ctx, out, reflect.TypeOf([]byte(nil)), "json")
	if err != nil {
		t.Fatalf("Denormalize error: %v", err)
	}
	if string(back.([]byte)) != string(original) {
		t.Errorf("round-trip produced %v, want %v", back, original)
	}
}

func TestCollectionNormalizer_Slice(t *testing.T) {
	chain := defaultChain()
	ctx := context.Background()

	out, err := chain.Normalize(ctx, []int{1, 2, 3}, "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	items, ok := out.([]any)
	if !ok {
		t.Fatalf("Normalize produced %T, want []any", out)
	}
	if len(items) != 3 || items[0] != 1 {
		t.Errorf("Normalize = %v, want [1 2 3]", items)
	}

	back, err := chain.Denormalize(ctx, items, reflect.TypeOf([]int(nil)), "json")
	if err != nil {
		t.Fatalf("Denormalize error: %v", err)
	}
	got := back.([]int)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("round-trip produced %v, want [1 2 3]", got)
	}
}

func TestCollectionNormalizer_SliceOfStructs(t *testing.T) {
	type point struct {
		X int `normalize:"x"`
		Y int `normalize:"y"`
	}

	chain := defaultChain()
	ctx := context.Background()

	out, err := chain.Normalize(ctx, []point{{1, 2}, {3, 4}}, "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	items := out.([]any)
	first, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("element normalized to %T, want map[string]any", items[0])
	}
	if first["x"] != 1 || first["y"] != 2 {
		t.Errorf("element = %v, want map[x:1 y:2]", first)
	}

	back, err := chain.Denormalize(ctx, out, reflect.TypeOf([]point(nil)), "json")
	if err != nil {
		t.Fatalf("Denormalize error: %v", err)
	}
	points := back.([]point)
	if len(points) != 2 || points[1] != (point{3, 4}) {
		t.Errorf("round-trip produced %v", points)
	}
}

func TestCollectionNormalizer_Map(t *testing.T) {
	chain := defaultChain()
	ctx := context.Background()

	out, err := chain.Normalize(ctx, map[string]time.Duration{"ttl": time.Second}, "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("Normalize produced %T, want map[string]any", out)
	}
	if m["ttl"] != "1s" {
		t.Errorf("ttl = %v, want 1s", m["ttl"])
	}

	back, err := chain.Denormalize(ctx, m, reflect.TypeOf(map[string]time.Duration(nil)), "json")
	if err != nil {
		t.Fatalf("Denormalize error: %v", err)
	}
	if back.(map[string]time.Duration)["ttl"] != time.Second {
		t.Errorf("round-trip produced %v", back)
	}
}

func TestCollectionNormalizer_Array(t *testing.T) {
	chain := defaultChain()
	ctx := context.Background()

	out, err := chain.Normalize(ctx, [2]string{"a", "b"}, "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	back, err := chain.Denormalize(ctx, out, reflect.TypeOf([2]string{}), "json")
	if err != nil {
		t.Fatalf("Denormalize error: %v", err)
	}
	if back.([2]string) != [2]string{"a", "b"} {
		t.Errorf("round-trip produced %v", back)
	}

	_, err = chain.Denormalize(ctx, []any{"a"}, reflect.TypeOf([2]string{}), "json")
	if err == nil {
		t.Error("Denormalize should fail on array length mismatch")
	}
}

func TestCollectionNormalizer_LeavesBytesAlone(t *testing.T) {
	chain := defaultChain()

	// []byte must reach the bytes normalizer even though it is a slice.
	out, err := chain.Normalize(context.Background(), []byte("hi"), "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if out != "aGk=" {
		t.Errorf("[]byte normalized to %v, want base64 aGk=", out)
	}
}

func TestCollectionNormalizer_NilSlice(t *testing.T) {
	chain := defaultChain()

	out, err := chain.Normalize(context.Background(), []int(nil), "json")
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if out != nil {
		t.Errorf("nil slice normalized to %v, want nil", out)
	}
}

func TestCollectionNormalizer_NotAttached(t *testing.T) {
	// A chain-aware candidate invoked outside a chain reports it clearly.
	n := normalize.CollectionNormalizer()

	_, err := n.Normalize(context.Background(), []time.Duration{time.Second}, "json")
	if err == nil {
		t.Error("Normalize without a chain should fail for non-scalar elements")
	}
}
