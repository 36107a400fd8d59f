// Package loader reads model documents from JSON, YAML or HCL into the
// normalised values of package model. Mapping key order follows the
// document, which is the enumeration order the `*` and `^` collection sigils
// rely on.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a document syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// ErrUnsupportedFormat reports a file extension or format name the loader
// cannot parse.
var ErrUnsupportedFormat = errors.New("loader: unsupported format")

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load reads and parses the file at path.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return parseFile(data, path)
}

// LoadFS reads and parses path from fsys.
func LoadFS(fsys fs.FS, path string) (any, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return parseFile(data, path)
}

func parseFile(data []byte, path string) (any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format, path)
}

// Parse decodes data in the given format. source names the document in
// error messages.
func Parse(data []byte, format Format, source string) (any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("loader: file %s is empty", source)
	}
	switch format {
	case FormatJSON:
		return parseJSON(data, source)
	case FormatYAML:
		return parseYAML(data, source)
	case FormatHCL:
		return parseHCL(data, source)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
