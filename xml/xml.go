// Package xml provides an XML encoder implementation.
//
// XML has no native representation for normalized data (maps, slices,
// scalars), so Encode writes it as a <data> document: map keys become
// element names, slice items repeat as <item> elements, and scalars become
// character data. Map keys must therefore be valid XML element names.
// Structs and pointers to structs encode through encoding/xml directly.
//
// Decode reverses the generic form for *any targets and falls back to
// encoding/xml for concrete targets. Scalars decode as strings; the
// denormalization layer parses them into typed targets. Empty elements
// decode as empty strings, and a map whose only key is "item" decodes as
// a slice, since the generic form cannot distinguish the two.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zoobzio/normalize"
)

const (
	rootElement = "data"
	itemElement = "item"
)

// xmlEncoder implements normalize.Encoder for XML.
type xmlEncoder struct{}

// New returns an XML encoder.
func New() normalize.Encoder {
	return &xmlEncoder{}
}

// Format returns the format name for XML.
func (e *xmlEncoder) Format() string {
	return "xml"
}

// Encode encodes v as XML.
func (e *xmlEncoder) Encode(v any) ([]byte, error) {
	if v != nil {
		switch reflect.TypeOf(v).Kind() {
		case reflect.Struct, reflect.Pointer:
			return xml.Marshal(v)
		}
	}

	var buf bytes.Buffer
	if err := writeElement(&buf, rootElement, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes XML data into v.
func (e *xmlEncoder) Decode(data []byte, v any) error {
	out, ok := v.(*any)
	if !ok {
		return xml.Unmarshal(data, v)
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := skipToRoot(dec); err != nil {
		return err
	}
	val, err := decodeElement(dec)
	if err != nil {
		return err
	}
	*out = val
	return nil
}

// writeElement writes <name>value</name>.
func writeElement(buf *bytes.Buffer, name string, v any) error {
	buf.WriteString("<" + name + ">")
	if err := writeValue(buf, v); err != nil {
		return err
	}
	buf.WriteString("</" + name + ">")
	return nil
}

// writeValue writes the element content for a normalized value. Map keys
// are sorted so output is deterministic.
func writeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := writeElement(buf, k, val[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, item := range val {
			if err := writeElement(buf, itemElement, item); err != nil {
				return err
			}
		}
		return nil
	case string:
		return xml.EscapeText(buf, []byte(val))
	default:
		return xml.EscapeText(buf, []byte(fmt.Sprint(val)))
	}
}

// skipToRoot advances the decoder past the document's root start element.
func skipToRoot(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			return nil
		}
	}
}

// decodeElement reads element content up to the matching end element.
// Child elements produce a map[string]any, a run of <item> children
// produces a []any, and bare character data produces a string.
func decodeElement(dec *xml.Decoder) (any, error) {
	var text strings.Builder
	children := make(map[string][]any)
	var order []string

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec)
			if err != nil {
				return nil, err
			}
			name := t.Name.Local
			if _, seen := children[name]; !seen {
				order = append(order, name)
			}
			children[name] = append(children[name], child)

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			if len(children) == 0 {
				return strings.TrimSpace(text.String()), nil
			}
			if len(order) == 1 && order[0] == itemElement {
				return children[itemElement], nil
			}
			out := make(map[string]any, len(order))
			for name, vals := range children {
				if len(vals) == 1 {
					out[name] = vals[0]
				} else {
					out[name] = vals
				}
			}
			return out, nil
		}
	}
}
