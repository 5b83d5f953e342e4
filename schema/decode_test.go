package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/zodforge/schema"
)

func TestDecodeJSON_BareArray(t *testing.T) {
	doc := `[
	  {"id": "f1", "name": "email", "type": "string", "validations": [{"type": "email", "message": "bad address"}]},
	  {"id": "f2", "name": "age", "type": "number", "params": {"coerce": true}}
	]`
	fields, err := schema.DecodeJSON([]byte(doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := []schema.Field{
		{ID: "f1", Name: "email", Type: "string", Validations: []schema.Rule{{Type: "email", Message: "bad address"}}},
		{ID: "f2", Name: "age", Type: "number", Params: schema.Params{Coerce: true}},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON_Envelope(t *testing.T) {
	doc := `{"version": 3, "fields": [{"name": "id", "type": "string", "validations": [{"type": "uuid"}]}]}`
	fields, err := schema.DecodeJSON([]byte(doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "id" || fields[0].Validations[0].Type != "uuid" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	if _, err := schema.DecodeJSON([]byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDecodeJSON_Params(t *testing.T) {
	doc := `[{
	  "name": "shape",
	  "type": "union",
	  "params": {
	    "isDiscriminatedUnion": true,
	    "discriminatedUnion": {
	      "discriminator": "kind",
	      "cases": {
	        "circle": {"value": "circle", "fields": [{"name": "radius", "type": "number"}]}
	      }
	    }
	  }
	}]`
	fields, err := schema.DecodeJSON([]byte(doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	p := fields[0].Params
	if !p.IsDiscriminatedUnion || p.DiscriminatedUnion == nil {
		t.Fatalf("discriminated union params lost: %+v", p)
	}
	c, ok := p.DiscriminatedUnion.Cases["circle"]
	if !ok || c.Value != "circle" || len(c.Fields) != 1 {
		t.Fatalf("unexpected case: %+v", c)
	}
}

func TestDecodeYAML_Document(t *testing.T) {
	doc := `
fields:
  - name: title
    type: string
    validations:
      - type: min
        value: "1"
  - name: tags
    type: array
    params:
      elementType: string
`
	fields, err := schema.DecodeYAML([]byte(doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(fields) != 2 || fields[0].Name != "title" || fields[1].Params.ElementType != "string" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestDecodeYAML_MultiDocumentPicksFirstWithFields(t *testing.T) {
	doc := "---\nnote: preamble\n---\n- name: id\n  type: string\n"
	fields, err := schema.DecodeYAML([]byte(doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "id" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestDecodeYAML_NoFields(t *testing.T) {
	if _, err := schema.DecodeYAML([]byte("just: a scalar map\n")); err == nil {
		t.Fatalf("expected decode error")
	}
}
