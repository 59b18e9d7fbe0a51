package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(format string) error {
	switch strings.ToLower(format) {
	case formatJSON, formatYAML, "yml":
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

// render writes v as indented JSON or as YAML. YAML output goes through the
// JSON encoding first so both formats share the same field names.
func render(w io.Writer, format string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	switch strings.ToLower(format) {
	case formatJSON:
		_, err = fmt.Fprintln(w, string(raw))
		return err
	case formatYAML, "yml":
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode output: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return validFormat(format)
	}
}
