// Package testsupport holds fixture helpers shared by package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/dom"
)

// MustFragment parses src into a detached <div> root. Testing helpers fail
// the test on error to keep call sites concise.
func MustFragment(t *testing.T, src string) *html.Node {
	t.Helper()

	root, err := dom.ParseFragment(src)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	return root
}

// MustDocument parses a complete HTML document.
func MustDocument(t *testing.T, src string) *html.Node {
	t.Helper()

	doc, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// MustElementByID returns the element with id below root.
func MustElementByID(t *testing.T, root *html.Node, id string) *html.Node {
	t.Helper()

	node := dom.ElementByID(root, id)
	if node == nil {
		t.Fatalf("element #%s not found", id)
	}
	return node
}

// MustFirst returns the first element below root (root excluded) matching
// tag.
func MustFirst(t *testing.T, root *html.Node, tag string) *html.Node {
	t.Helper()

	found := dom.Elements(root, func(n *html.Node) bool { return n != root && n.Data == tag })
	if len(found) == 0 {
		t.Fatalf("no <%s> element found", tag)
	}
	return found[0]
}

// Texts returns the trimmed text of every direct element child of n.
func Texts(n *html.Node) []string {
	var out []string
	for _, child := range dom.Children(n) {
		out = append(out, strings.TrimSpace(dom.Text(child)))
	}
	return out
}

// Inner renders the children of n.
func Inner(n *html.Node) string {
	return dom.RenderChildren(n)
}

// AssertHTML fails when the rendered children of n differ from want.
func AssertHTML(t *testing.T, want string, n *html.Node) {
	t.Helper()

	if diff := cmp.Diff(want, Inner(n)); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s", diff)
	}
}

// UpdateGoldenEnv names the environment variable that rewrites golden
// files instead of comparing against them.
const UpdateGoldenEnv = "CALLOUT_UPDATE_GOLDEN"

// AssertGolden compares got with the golden file at path, ignoring leading
// and trailing whitespace.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()

	if os.Getenv(UpdateGoldenEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if diff := cmp.Diff(strings.TrimSpace(string(want)), strings.TrimSpace(string(got))); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}
