package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOML parses TOML data into v.
func decodeTOML(source string, data []byte, v any) error {
	if err := toml.Unmarshal(data, v); err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}
