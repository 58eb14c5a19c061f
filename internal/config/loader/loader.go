// Package loader provides configuration file loading for leap.
//
// The loader package parses configuration files in TOML or YAML into Go
// values. The format is chosen by file extension.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format is a configuration file format.
type Format uint8

const (
	// FormatTOML is the TOML format.
	FormatTOML Format = iota
	// FormatYAML is the YAML format.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FileSystem is an abstraction for reading configuration files.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ErrUnsupportedFormat indicates a file extension no decoder handles.
var ErrUnsupportedFormat = errors.New("loader: unsupported config format")

// DetectFormat returns the format for a path by extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatTOML, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Loader decodes configuration files into Go values.
type Loader struct {
	fs FileSystem
}

// New creates a loader reading from the OS file system.
func New() *Loader {
	return &Loader{fs: DefaultFS()}
}

// NewWithFS creates a loader with a custom file system.
func NewWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// LoadInto decodes the file at path into v.
// found is false, with a nil error, if the file does not exist.
func (l *Loader) LoadInto(path string, v any) (found bool, err error) {
	format, err := DetectFormat(path)
	if err != nil {
		return false, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return true, Decode(format, path, data, v)
}

// Decode decodes data in the given format into v. source names the data in
// errors.
func Decode(format Format, source string, data []byte, v any) error {
	switch format {
	case FormatYAML:
		return decodeYAML(source, data, v)
	default:
		return decodeTOML(source, data, v)
	}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
