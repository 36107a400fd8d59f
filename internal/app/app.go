// Package app wires the callout command: it loads the document and model,
// registers configured hooks, instantiates the selected templates and writes
// the rendered document.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/internal/config"
	"github.com/goliatone/go-callout/pkg/dom"
	"github.com/goliatone/go-callout/pkg/engine"
	"github.com/goliatone/go-callout/pkg/hooks"
	"github.com/goliatone/go-callout/pkg/loader"
	"github.com/goliatone/go-callout/pkg/model"
	"github.com/goliatone/go-callout/pkg/plural"
	"github.com/goliatone/go-callout/pkg/sanitize"
)

// App runs one configuration against the file system.
type App struct {
	out    io.Writer
	logOut io.Writer
	prompt Prompter
}

// Option configures an App.
type Option func(*App)

// WithPrompter replaces the terminal prompt used in interactive mode.
func WithPrompter(p Prompter) Option {
	return func(a *App) {
		if p != nil {
			a.prompt = p
		}
	}
}

// WithLogOutput sets the log destination. It defaults to stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.logOut = w
		}
	}
}

// New returns an App writing the rendered document to out unless the
// configuration names an output file.
func New(out io.Writer, options ...Option) *App {
	a := &App{
		out:    out,
		logOut: os.Stderr,
		prompt: surveyPrompter{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Result summarises a run.
type Result struct {
	Templates int
	Instances int
	Pruned    int
}

// Run executes cfg.
func (a *App) Run(ctx context.Context, cfg *config.Config) (Result, error) {
	var result Result
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, a.logOut)

	doc, err := readDocument(cfg.Document)
	if err != nil {
		return result, err
	}
	globals, err := loadModel(cfg)
	if err != nil {
		return result, err
	}
	pluralizer, err := plural.ForLocale(cfg.Locale, "s")
	if err != nil {
		return result, fmt.Errorf("app: %w", err)
	}
	handlers, err := buildHandlers(cfg, logger)
	if err != nil {
		return result, err
	}

	names := engine.NewNames()
	eng := engine.New(
		engine.WithLogger(logger),
		engine.WithGlobals(globals),
		engine.WithDocument(doc),
		engine.WithNames(names),
		engine.WithHandlers(handlers),
		engine.WithBatchSize(cfg.BatchSize),
		engine.WithPlural(pluralizer),
	)

	selected, err := a.selectTemplates(ctx, cfg, doc, engine.HostResolver{Names: names, Document: doc})
	if err != nil {
		return result, err
	}
	for _, node := range selected {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		label := templateLabel(node)
		instances := eng.Instantiate(engine.Request{Template: node, Embargo: cfg.Embargo})
		logger.Info("template instantiated", "template", label, "instances", len(instances))
		result.Templates++
		result.Instances += len(instances)
	}

	if cfg.StripTemplates {
		result.Pruned = dom.PruneTemplates(doc)
		logger.Debug("templates pruned", "count", result.Pruned)
	}

	if err := a.write(cfg, doc); err != nil {
		return result, err
	}
	return result, nil
}

func readDocument(path string) (*html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("app: open document: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("app: %s: %w", path, err)
	}
	return doc, nil
}

// loadModel reads the model file and lays the configured globals over its
// root object.
func loadModel(cfg *config.Config) (any, error) {
	var root any = model.NewObject()
	if cfg.Model != "" {
		loaded, err := loader.Load(cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("app: load model: %w", err)
		}
		root = loaded
	}
	if len(cfg.Globals) == 0 {
		return root, nil
	}

	obj, ok := root.(*model.Object)
	if !ok {
		return nil, fmt.Errorf("app: globals need an object model, got %T", root)
	}
	keys := make([]string, 0, len(cfg.Globals))
	for k := range cfg.Globals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		obj.Set(k, cfg.Globals[k])
	}
	return obj, nil
}

// buildHandlers registers the configured named hooks and falls back to
// compiling inline hook text.
func buildHandlers(cfg *config.Config, logger *slog.Logger) (hooks.Resolver, error) {
	compiler, err := hooks.NewCompiler(
		hooks.WithCompilerLogger(logger),
		hooks.WithGlobals(cfg.Globals),
	)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	registry := hooks.NewRegistry()
	names := make([]string, 0, len(cfg.Hooks))
	for name := range cfg.Hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		handler, err := compiler.Resolve(cfg.Hooks[name])
		if err != nil {
			return nil, fmt.Errorf("app: hook %q: %w", name, err)
		}
		if err := registry.Register(name, handler); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}
	return hooks.Chain{registry, compiler}, nil
}

func (a *App) selectTemplates(ctx context.Context, cfg *config.Config, doc *html.Node, resolver engine.Resolver) ([]*html.Node, error) {
	if len(cfg.Templates) > 0 {
		out := make([]*html.Node, 0, len(cfg.Templates))
		for _, ref := range cfg.Templates {
			node, ok := resolver.Lookup(strings.TrimPrefix(ref, "#"))
			if !ok {
				return nil, fmt.Errorf("app: template %q not found", ref)
			}
			out = append(out, node)
		}
		return out, nil
	}

	candidates := engine.TopLevelTemplates(doc)
	if !cfg.Interactive || len(candidates) == 0 {
		return candidates, nil
	}

	labels := make([]string, len(candidates))
	for i, node := range candidates {
		labels[i] = fmt.Sprintf("%d: %s", i+1, templateLabel(node))
	}
	picked, err := a.prompt.MultiSelect(ctx, "Templates to instantiate", labels)
	if err != nil {
		return nil, fmt.Errorf("app: select templates: %w", err)
	}
	out := make([]*html.Node, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(candidates) {
			out = append(out, candidates[idx])
		}
	}
	return out, nil
}

func templateLabel(n *html.Node) string {
	var b strings.Builder
	b.WriteString(n.Data)
	if id := dom.AttrValue(n, "id"); id != "" {
		b.WriteString("#" + id)
	}
	fmt.Fprintf(&b, " foreach=%q", dom.AttrValue(n, engine.AttrForeach))
	for _, attr := range []string{engine.AttrIn, engine.AttrOf} {
		if v, ok := dom.Attr(n, attr); ok {
			fmt.Fprintf(&b, " %s=%q", attr, v)
		}
	}
	return b.String()
}

func (a *App) write(cfg *config.Config, doc *html.Node) error {
	rendered := dom.RenderString(doc)
	if cfg.Sanitize {
		rendered = sanitize.HTML(rendered)
	}
	if cfg.Out != "" {
		if err := os.WriteFile(cfg.Out, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("app: write output: %w", err)
		}
		return nil
	}
	if _, err := io.WriteString(a.out, rendered); err != nil {
		return fmt.Errorf("app: write output: %w", err)
	}
	return nil
}
