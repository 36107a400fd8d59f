package engine

import (
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/hooks"
	"github.com/goliatone/go-callout/pkg/model"
	"github.com/goliatone/go-callout/pkg/plural"
	"github.com/goliatone/go-callout/pkg/scope"
)

const (
	// DefaultBatchSize is how many finished instances may wait before they
	// are attached mid-iteration.
	DefaultBatchSize = 20
	// DefaultMaxDepth bounds the number of frames a context may hold.
	DefaultMaxDepth = 10000
)

// ErrRecursionLimit is the panic value (wrapped) raised when an
// unterminated reapply exceeds the configured context depth.
var ErrRecursionLimit = errors.New("engine: recursion limit exceeded")

// BreakpointFunc is invoked for `#` debug markers found on templates.
type BreakpointFunc func(node *html.Node, marker string)

// Option customises the engine configuration.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithGlobals sets the model of the root frame used when a request carries
// no context.
func WithGlobals(globals any) Option {
	return func(e *Engine) {
		e.globals = model.From(globals)
	}
}

// WithDocument sets the document used to look templates and parents up by
// id.
func WithDocument(doc *html.Node) Option {
	return func(e *Engine) {
		e.document = doc
	}
}

// WithResolver replaces the host resolver.
func WithResolver(resolver Resolver) Option {
	return func(e *Engine) {
		e.resolver = resolver
	}
}

// WithNames sets the named registry consulted before the document.
func WithNames(names *Names) Option {
	return func(e *Engine) {
		if names != nil {
			e.names = names
		}
	}
}

// WithHandlers sets the resolver for pre, post and load hook attributes.
func WithHandlers(resolver hooks.Resolver) Option {
	return func(e *Engine) {
		e.handlers = resolver
	}
}

// WithBatchSize sets the attachment batch size. Zero disables mid-iteration
// attachment.
func WithBatchSize(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.batch = n
		}
	}
}

// WithPlural sets the plural-marker strategy used by `$`.
func WithPlural(p plural.Pluralizer) Option {
	return func(e *Engine) {
		if p != nil {
			e.plural = p
		}
	}
}

// WithMaxDepth bounds the context depth.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithBreakpoint installs the breakpoint hook.
func WithBreakpoint(fn BreakpointFunc) Option {
	return func(e *Engine) {
		e.breakpoint = fn
	}
}

// Engine instantiates templates against models and keeps the model to view
// links needed to regenerate views on change.
//
// Instantiation is synchronous. The side tables are guarded so distinct
// documents may be processed from different goroutines, but one document
// must not be instantiated concurrently.
type Engine struct {
	logger     *slog.Logger
	globals    any
	document   *html.Node
	names      *Names
	resolver   Resolver
	handlers   hooks.Resolver
	batch      int
	plural     plural.Pluralizer
	maxDepth   int
	breakpoint BreakpointFunc

	mu        sync.Mutex
	templates map[*html.Node]*Template
	instances map[*html.Node]*Instance
	owners    map[*html.Node]*Instance
	views     map[any][]*Instance
	consumers map[*model.List][]*html.Node
	sources   map[*html.Node][]any
	models    map[*html.Node]any
}

// New constructs an Engine applying any provided options.
func New(options ...Option) *Engine {
	e := &Engine{
		logger:    slog.Default(),
		globals:   model.NewObject(),
		names:     DefaultNames,
		batch:     DefaultBatchSize,
		plural:    plural.English,
		maxDepth:  DefaultMaxDepth,
		templates: make(map[*html.Node]*Template),
		instances: make(map[*html.Node]*Instance),
		owners:    make(map[*html.Node]*Instance),
		views:     make(map[any][]*Instance),
		consumers: make(map[*model.List][]*html.Node),
		sources:   make(map[*html.Node][]any),
		models:    make(map[*html.Node]any),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.resolver == nil {
		e.resolver = HostResolver{Names: e.names, Document: e.document}
	}
	if e.handlers == nil {
		e.handlers = hooks.NewRegistry()
	}
	if e.breakpoint == nil {
		e.breakpoint = func(node *html.Node, marker string) {
			e.logger.Debug("breakpoint", "element", node.Data, "marker", marker)
		}
	}
	return e
}

// Request describes one top-level instantiation.
type Request struct {
	// Template is a *html.Node, a *Template or a name for the host resolver.
	Template any

	// Collection is iterated when set; otherwise it is derived from the
	// template's in, of or foreach attribute.
	Collection any

	// Context defaults to a single root frame over the engine globals.
	Context scope.Context

	// Parent is a *html.Node, an *Instance or a name for the host resolver.
	// It defaults to the template's ParentForInstances, then its parent node.
	Parent any

	// Embargo attaches instances without stripping their directives.
	Embargo bool
}

// Instantiate renders the request's template once per collection item,
// attaches the instances to the parent and runs their load hooks. Missing
// templates and collections produce no instances.
func (e *Engine) Instantiate(req Request) []*Instance {
	tmpl := e.resolveTemplate(req.Template)
	if tmpl == nil {
		e.logger.Debug("template not found", "template", req.Template)
		return nil
	}

	ctx := req.Context
	if ctx.IsEmpty() {
		ctx = e.RootContext()
	}

	parent := e.resolveParent(req.Parent)
	if parent == nil {
		parent = tmpl.ParentForInstances
	}
	if parent == nil {
		parent = tmpl.Node.Parent
	}

	collection := req.Collection
	if collection == nil {
		collection = e.collectionFor(tmpl.Node, ctx)
	}
	if collection == nil {
		e.logger.Debug("collection not found", "template", tmpl.BindingName())
		return nil
	}

	out := e.instantiate(tmpl, collection, ctx, parent, !req.Embargo)
	e.runLoad(out)
	return out
}

// RootContext returns a fresh context holding one frame over the globals.
func (e *Engine) RootContext() scope.Context {
	return scope.NewContext(&scope.Frame{Model: e.globals, Plural: e.plural})
}

// Template returns the template record for node, creating it on first use.
func (e *Engine) Template(node *html.Node) *Template {
	if node == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.templates[node]; ok {
		return t
	}
	t := &Template{Node: node}
	e.templates[node] = t
	return t
}

func (e *Engine) resolveTemplate(ref any) *Template {
	switch typed := ref.(type) {
	case *Template:
		return typed
	case *html.Node:
		return e.Template(typed)
	case string:
		if node, ok := e.resolver.Lookup(typed); ok {
			return e.Template(node)
		}
	}
	return nil
}

func (e *Engine) resolveParent(ref any) *html.Node {
	switch typed := ref.(type) {
	case *html.Node:
		return typed
	case *Instance:
		if typed != nil {
			return typed.Node
		}
	case string:
		if node, ok := e.resolver.Lookup(typed); ok {
			return node
		}
	}
	return nil
}
