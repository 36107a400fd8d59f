package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-callout/pkg/loader"
	"github.com/goliatone/go-callout/pkg/model"
)

func TestFormatOf(t *testing.T) {
	t.Parallel()

	cases := map[string]loader.Format{
		"model.json":     loader.FormatJSON,
		"model.YAML":     loader.FormatYAML,
		"dir/model.yml":  loader.FormatYAML,
		"infra/site.hcl": loader.FormatHCL,
	}
	for path, want := range cases {
		got, err := loader.FormatOf(path)
		if err != nil {
			t.Fatalf("FormatOf(%q): %v", path, err)
		}
		if got != want {
			t.Fatalf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}

	if _, err := loader.FormatOf("model.toml"); !errors.Is(err, loader.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseJSONKeepsKeyOrder(t *testing.T) {
	t.Parallel()

	data := []byte(`{"zeta": 1, "alpha": 2.5, "mid": [true, null, "x"], "nested": {"b": 1, "a": 2}}`)
	got, err := loader.Parse(data, loader.FormatJSON, "inline.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	obj := mustObject(t, got)
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid", "nested"}, obj.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	nested, _ := obj.Get("nested")
	if diff := cmp.Diff([]string{"b", "a"}, mustObject(t, nested).Keys()); diff != "" {
		t.Fatalf("nested key order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]any{
		"zeta":   int64(1),
		"alpha":  2.5,
		"mid":    []any{true, nil, "x"},
		"nested": map[string]any{"b": int64(1), "a": int64(2)},
	}
	if diff := cmp.Diff(want, model.Plain(got)); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	t.Parallel()

	_, err := loader.Parse([]byte(`{"a": 1} {"b": 2}`), loader.FormatJSON, "two.json")
	if err == nil || !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("expected trailing data error, got %v", err)
	}
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
defaults: &defaults
  color: red
  size: 1
items:
  - name: b
    <<: *defaults
  - name: a
    size: 2
    <<: *defaults
ratio: 0.25
enabled: true
empty: ~
`)
	got, err := loader.Parse(data, loader.FormatYAML, "inline.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	obj := mustObject(t, got)
	if diff := cmp.Diff([]string{"defaults", "items", "ratio", "enabled", "empty"}, obj.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]any{
		"defaults": map[string]any{"color": "red", "size": int64(1)},
		"items": []any{
			map[string]any{"name": "b", "color": "red", "size": int64(1)},
			map[string]any{"name": "a", "size": int64(2), "color": "red"},
		},
		"ratio":   0.25,
		"enabled": true,
		"empty":   nil,
	}
	if diff := cmp.Diff(want, model.Plain(got)); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHCL(t *testing.T) {
	t.Parallel()

	data := []byte(`
title = "Inventory"
count = 3

item "bolt" {
  price = 0.5
  tags  = ["small", "steel"]
}

ratio = 1.5

item "nut" {
  name  = "hex nut"
  price = 2
  meta  = { zeta = 1, alpha = "x" }
}
`)
	got, err := loader.Parse(data, loader.FormatHCL, "inline.hcl")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	obj := mustObject(t, got)
	if diff := cmp.Diff([]string{"title", "count", "item", "ratio"}, obj.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]any{
		"title": "Inventory",
		"count": int64(3),
		"ratio": 1.5,
		"item": []any{
			map[string]any{"price": 0.5, "tags": []any{"small", "steel"}, "name": "bolt"},
			map[string]any{"name": "hex nut", "price": int64(2), "meta": map[string]any{"zeta": int64(1), "alpha": "x"}},
		},
	}
	if diff := cmp.Diff(want, model.Plain(got)); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	items, _ := obj.Get("item")
	second := items.(*model.List).Items[1]
	meta, _ := mustObject(t, second).Get("meta")
	if diff := cmp.Diff([]string{"zeta", "alpha"}, mustObject(t, meta).Keys()); diff != "" {
		t.Fatalf("object constructor order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHCLReportsDiagnostics(t *testing.T) {
	t.Parallel()

	_, err := loader.Parse([]byte(`title = `), loader.FormatHCL, "broken.hcl")
	if err == nil || !strings.HasPrefix(err.Error(), "loader: parse broken.hcl") {
		t.Fatalf("expected parse error, got %v", err)
	}

	_, err = loader.Parse([]byte(`value = var.missing`), loader.FormatHCL, "vars.hcl")
	if err == nil || !strings.Contains(err.Error(), `attribute "value"`) {
		t.Fatalf("expected evaluation error, got %v", err)
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	t.Parallel()

	_, err := loader.Parse([]byte("  \n"), loader.FormatYAML, "blank.yaml")
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty document error, got %v", err)
	}
}

func TestLoadAndLoadFS(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, []byte(`["a", "b"]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := loader.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]any{"a", "b"}, model.Plain(got)); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}

	fsys := fstest.MapFS{"data/model.yml": {Data: []byte("- 1\n- 2\n")}}
	got, err = loader.LoadFS(fsys, "data/model.yml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff([]any{int64(1), int64(2)}, model.Plain(got)); diff != "" {
		t.Fatalf("LoadFS mismatch (-want +got):\n%s", diff)
	}

	if _, err := loader.Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := loader.LoadFS(fstest.MapFS{"x.txt": {Data: []byte("x")}}, "x.txt"); !errors.Is(err, loader.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func mustObject(t *testing.T, v any) *model.Object {
	t.Helper()
	obj, ok := v.(*model.Object)
	if !ok {
		t.Fatalf("expected *model.Object, got %T", v)
	}
	return obj
}
