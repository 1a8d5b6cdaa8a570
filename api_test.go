package normalize_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/normalize"
	"github.com/zoobzio/normalize/json"
	"github.com/zoobzio/normalize/msgpack"
	"github.com/zoobzio/normalize/xml"
	"github.com/zoobzio/normalize/yaml"
)

// Interface conformance for the encoder providers.
var (
	_ normalize.Encoder = json.New()
	_ normalize.Encoder = yaml.New()
	_ normalize.Encoder = msgpack.New()
	_ normalize.Encoder = xml.New()
)

func TestEncoderFormats(t *testing.T) {
	got := map[string]string{
		"json":    json.New().Format(),
		"yaml":    yaml.New().Format(),
		"msgpack": msgpack.New().Format(),
		"xml":     xml.New().Format(),
	}
	want := map[string]string{
		"json":    "json",
		"yaml":    "yaml",
		"msgpack": "msgpack",
		"xml":     "xml",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("encoder formats mismatch (-want +got):\n%s", diff)
	}
}

// Round trip a struct through every encoder provider. The denormalization
// step converts each format's native scalar types back into the struct's
// field types, so the result should match the input exactly.
func TestSerializer_AllEncoders(t *testing.T) {
	in := profile{Name: "ada", Email: "ada@example.com", Age: 36}

	for _, enc := range []normalize.Encoder{json.New(), yaml.New(), msgpack.New(), xml.New()} {
		s := normalize.NewSerializer(defaultChain(), normalize.WithEncoder(enc))

		data, err := s.Serialize(context.Background(), in, enc.Format())
		if err != nil {
			t.Fatalf("%s: Serialize failed: %v", enc.Format(), err)
		}

		out, err := s.Deserialize(context.Background(), data, reflect.TypeOf(profile{}), enc.Format())
		if err != nil {
			t.Fatalf("%s: Deserialize failed: %v", enc.Format(), err)
		}
		if diff := cmp.Diff(in, out.(profile)); diff != "" {
			t.Errorf("%s: round trip mismatch (-want +got):\n%s", enc.Format(), diff)
		}
	}
}

// One serializer can carry every encoder at once, routing by format name.
func TestSerializer_MultiFormat(t *testing.T) {
	s := normalize.NewSerializer(defaultChain(),
		normalize.WithEncoder(json.New()),
		normalize.WithEncoder(yaml.New()),
		normalize.WithEncoder(msgpack.New()),
		normalize.WithEncoder(xml.New()),
	)
	in := profile{Name: "ada"}

	for _, format := range []string{"json", "yaml", "msgpack", "xml"} {
		data, err := s.Serialize(context.Background(), in, format)
		if err != nil {
			t.Fatalf("%s: Serialize failed: %v", format, err)
		}
		if len(data) == 0 {
			t.Errorf("%s: Serialize produced no output", format)
		}
	}
}
