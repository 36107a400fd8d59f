package hooks

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/model"
)

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithCompilerLogger sets the logger used for execution failures.
func WithCompilerLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithGlobals exposes values to every compiled hook.
func WithGlobals(globals map[string]any) CompilerOption {
	return func(c *Compiler) {
		for k, v := range globals {
			c.globals[k] = v
		}
	}
}

// Compiler turns hook attribute text into handlers by compiling it as a
// pongo2 template. The template sees the instance as `model`, `n`, `hook`
// and `attrs`; a rendered result of "false" (case and surrounding space
// ignored) vetoes the instance.
//
//	<li foreach="item" in="items" pre="{% if model.hidden %}false{% endif %}">
//
// Compiled templates are cached by source text.
type Compiler struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	globals   pongo2.Context
	logger    *slog.Logger
}

// NewCompiler builds a compiler whose template set cannot reach the file
// system.
func NewCompiler(options ...CompilerOption) (*Compiler, error) {
	c := &Compiler{
		set:       pongo2.NewSet("callout-hooks", pongo2.NewFSLoader(noFiles{})),
		templates: make(map[string]*pongo2.Template),
		globals:   make(pongo2.Context),
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	for _, tag := range []string{"include", "import", "extends", "ssi"} {
		if err := c.set.BanTag(tag); err != nil {
			return nil, fmt.Errorf("hooks: ban tag %q: %w", tag, err)
		}
	}
	return c, nil
}

// Resolve implements Resolver.
func (c *Compiler) Resolve(source string) (Handler, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("hooks: %w: empty source", ErrUnknownHandler)
	}
	tpl, err := c.compile(source)
	if err != nil {
		return nil, err
	}
	return func(ev Event) bool {
		out, err := tpl.Execute(c.context(ev))
		if err != nil {
			c.logger.Warn("hook execution failed", "hook", ev.Hook, "error", err)
			return true
		}
		return !strings.EqualFold(strings.TrimSpace(out), "false")
	}, nil
}

func (c *Compiler) compile(source string) (*pongo2.Template, error) {
	c.mu.RLock()
	if tpl, ok := c.templates[source]; ok {
		c.mu.RUnlock()
		return tpl, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if tpl, ok := c.templates[source]; ok {
		return tpl, nil
	}
	tpl, err := c.set.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("hooks: compile %q: %w", source, err)
	}
	c.templates[source] = tpl
	return tpl, nil
}

func (c *Compiler) context(ev Event) pongo2.Context {
	ctx := make(pongo2.Context, len(c.globals)+5)
	for k, v := range c.globals {
		ctx[k] = v
	}
	ctx["hook"] = ev.Hook
	ctx["model"] = model.Plain(ev.Model)
	ctx["n"] = ev.N
	ctx["length"] = ev.Collection.Len()
	ctx["attrs"] = attrMap(ev.Node)
	return ctx
}

func attrMap(n *html.Node) map[string]string {
	out := make(map[string]string)
	if n == nil {
		return out
	}
	for _, a := range n.Attr {
		out[a.Key] = a.Val
	}
	return out
}

type noFiles struct{}

func (noFiles) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
