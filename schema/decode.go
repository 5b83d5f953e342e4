package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a schema document from JSON. The document may be either
// a bare field array or an envelope object with a "fields" property. Unknown
// keys are ignored; decoding never fails on unrecognized tags or params.
func DecodeJSON(data []byte) ([]Field, error) {
	var fields []Field
	if err := json.Unmarshal(data, &fields); err == nil {
		return fields, nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("schema: invalid JSON document: %w", err)
	}
	return env.Fields, nil
}

// DecodeYAML decodes a schema document from YAML. Multi-document streams are
// scanned and the first document carrying fields wins.
func DecodeYAML(data []byte) ([]Field, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("schema: invalid YAML document: %w", err)
		}
		var fields []Field
		if err := node.Decode(&fields); err == nil && len(fields) > 0 {
			return fields, nil
		}
		var env envelope
		if err := node.Decode(&env); err == nil && len(env.Fields) > 0 {
			return env.Fields, nil
		}
	}
	return nil, errors.New("schema: no fields found in YAML document")
}

type envelope struct {
	Fields []Field `json:"fields" yaml:"fields"`
}
