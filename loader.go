package callout

import (
	"github.com/goliatone/go-callout/pkg/loader"
)

// LoadModel reads a JSON, YAML or HCL model file, keeping document key order.
func LoadModel(path string) (any, error) {
	return loader.Load(path)
}

// ParseModel decodes an in-memory model document.
func ParseModel(data []byte, format loader.Format) (any, error) {
	return loader.Parse(data, format, string(format))
}
