package loader

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// decodeYAML parses YAML data into v. Unknown fields are rejected.
func decodeYAML(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(v); err != nil {
		// An empty document leaves v untouched.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	return nil
}
