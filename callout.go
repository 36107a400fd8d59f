// Package callout is the convenience entry point of the module: it renders
// an HTML document whose foreach templates are instantiated from a model.
// Callers needing live links or change propagation use package engine
// directly.
package callout

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goliatone/go-callout/pkg/dom"
	"github.com/goliatone/go-callout/pkg/engine"
)

// Option configures the engine used by RenderHTML.
type Option = engine.Option

// Request aliases engine.Request for callers driving an engine themselves.
type Request = engine.Request

// NewEngine exposes the engine constructor from the top-level module.
func NewEngine(options ...Option) *engine.Engine {
	return engine.New(options...)
}

// RenderHTML parses document, binds model as the root frame, instantiates
// every top-level template, removes the dormant templates and returns the
// rendered markup. Options are applied after the document and globals, so
// they may replace either.
func RenderHTML(document io.Reader, model any, options ...Option) ([]byte, error) {
	doc, err := dom.Parse(document)
	if err != nil {
		return nil, fmt.Errorf("callout: %w", err)
	}

	base := []Option{
		engine.WithGlobals(model),
		engine.WithDocument(doc),
		engine.WithNames(engine.NewNames()),
	}
	eng := engine.New(append(base, options...)...)
	for _, tmpl := range engine.TopLevelTemplates(doc) {
		eng.Instantiate(engine.Request{Template: tmpl})
	}
	dom.PruneTemplates(doc)

	var buf bytes.Buffer
	if err := dom.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("callout: %w", err)
	}
	return buf.Bytes(), nil
}
