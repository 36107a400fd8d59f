package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-callout/internal/app"
	"github.com/goliatone/go-callout/internal/config"
)

const page = `<!DOCTYPE html><html><head><title>t</title></head><body>` +
	`<ul id="list"><li id="rows" foreach="item" in="items" pre="hideDrafts">@{item.name}</li></ul>` +
	`<p id="tags"><span foreach="tag" in="tags">@{tag}@{,}</span></p>` +
	`</body></html>`

const data = `
items:
  - name: a
  - name: b
    draft: true
  - name: c
tags: [x, y]
`

type fakePrompter struct {
	options []string
	pick    []int
	err     error
}

func (f *fakePrompter) MultiSelect(_ context.Context, _ string, options []string) ([]int, error) {
	f.options = options
	return f.pick, f.err
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Document = writeFixture(t, dir, "page.html", page)
	cfg.Model = writeFixture(t, dir, "data.yaml", data)
	cfg.Hooks = map[string]string{"hideDrafts": "{% if model.draft %}false{% endif %}"}
	return &cfg
}

func newApp(out io.Writer, options ...app.Option) *app.App {
	return app.New(out, append([]app.Option{app.WithLogOutput(io.Discard)}, options...)...)
}

func TestRunInstantiatesTopLevelTemplates(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(t)
	cfg.StripTemplates = true

	var out bytes.Buffer
	result, err := newApp(&out).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if diff := cmp.Diff(app.Result{Templates: 2, Instances: 4, Pruned: 2}, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	rendered := out.String()
	for _, want := range []string{
		`<ul id="list"><li>a</li><li>c</li></ul>`,
		`<p id="tags"><span>x,</span><span>y</span></p>`,
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in output:\n%s", want, rendered)
		}
	}
}

func TestRunNamedTemplate(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(t)
	cfg.Templates = []string{"#rows"}

	var out bytes.Buffer
	result, err := newApp(&out).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Templates != 1 || result.Instances != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunUnknownTemplate(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(t)
	cfg.Templates = []string{"missing"}

	_, err := newApp(io.Discard).Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), `template "missing" not found`) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRunInteractiveSelection(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(t)
	cfg.Interactive = true
	prompt := &fakePrompter{pick: []int{1}}

	var out bytes.Buffer
	result, err := newApp(&out, app.WithPrompter(prompt)).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	wantOptions := []string{
		`1: li#rows foreach="item" in="items"`,
		`2: span foreach="tag" in="tags"`,
	}
	if diff := cmp.Diff(wantOptions, prompt.options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if result.Templates != 1 || result.Instances != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunInteractiveAbort(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(t)
	cfg.Interactive = true
	prompt := &fakePrompter{err: app.ErrAborted}

	_, err := newApp(io.Discard, app.WithPrompter(prompt)).Run(context.Background(), cfg)
	if !errors.Is(err, app.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRunGlobalsSanitizeAndOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Document = writeFixture(t, dir, "page.html",
		`<html><body><div><b foreach="item" in="items">@{title}:@{item}</b></div></body></html>`)
	cfg.Globals = map[string]any{
		"title": "T",
		"items": []any{`<script>alert(1)</script>`, "ok"},
	}
	cfg.StripTemplates = true
	cfg.Sanitize = true
	cfg.Out = filepath.Join(dir, "out.html")

	var out bytes.Buffer
	if _, err := newApp(&out).Run(context.Background(), &cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", out.String())
	}

	written, err := os.ReadFile(cfg.Out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	rendered := string(written)
	if strings.Contains(rendered, "<script") {
		t.Fatalf("expected script to be sanitized:\n%s", rendered)
	}
	if !strings.Contains(rendered, "<b>T:ok</b>") {
		t.Fatalf("expected substituted globals:\n%s", rendered)
	}
}

func TestRunModelErrors(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(t)
	cfg.Model = writeFixture(t, t.TempDir(), "data.txt", "x")
	if _, err := newApp(io.Discard).Run(context.Background(), cfg); err == nil || !strings.Contains(err.Error(), "app: load model") {
		t.Fatalf("expected model error, got %v", err)
	}

	cfg = baseConfig(t)
	cfg.Model = writeFixture(t, t.TempDir(), "list.json", `[1, 2]`)
	cfg.Globals = map[string]any{"k": "v"}
	if _, err := newApp(io.Discard).Run(context.Background(), cfg); err == nil || !strings.Contains(err.Error(), "object model") {
		t.Fatalf("expected globals error, got %v", err)
	}
}
