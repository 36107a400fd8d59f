package dom_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/dom"
)

func TestCloneIsDeepAndDetached(t *testing.T) {
	t.Parallel()

	root, err := dom.ParseFragment(`<ul><li id="a" class="x">one<b>two</b></li></ul>`)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	li := dom.ElementByID(root, "a")
	if li == nil {
		t.Fatalf("expected element #a")
	}

	clone := dom.Clone(li)
	if clone.Parent != nil {
		t.Fatalf("clone should be detached")
	}
	dom.SetAttr(clone, "id", "b")
	if got := dom.AttrValue(li, "id"); got != "a" {
		t.Fatalf("mutating clone attribute leaked into original: %q", got)
	}
	if got := dom.Text(clone); got != "onetwo" {
		t.Fatalf("clone text = %q, want onetwo", got)
	}
}

func TestAttributeHelpers(t *testing.T) {
	t.Parallel()

	n := &html.Node{Type: html.ElementNode, Data: "div"}
	dom.SetAttr(n, "foreach", "item")
	dom.SetAttr(n, "in", "items")
	dom.SetAttr(n, "class", "template row")
	dom.SetAttr(n, "in", "others")

	if got := dom.AttrValue(n, "in"); got != "others" {
		t.Fatalf("in = %q, want others", got)
	}

	dom.RemoveAttr(n, "foreach", "in")
	if dom.HasAttr(n, "foreach") || dom.HasAttr(n, "in") {
		t.Fatalf("expected foreach and in to be removed: %+v", n.Attr)
	}

	dom.RemoveClass(n, "template")
	if got := dom.AttrValue(n, "class"); got != "row" {
		t.Fatalf("class = %q, want row", got)
	}
	dom.RemoveClass(n, "row")
	if dom.HasAttr(n, "class") {
		t.Fatalf("empty class attribute should be dropped")
	}
}

func TestReplaceAndAppend(t *testing.T) {
	t.Parallel()

	root, err := dom.ParseFragment(`<p id="old">old</p><p id="keep">keep</p>`)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	old := dom.ElementByID(root, "old")
	next := &html.Node{Type: html.ElementNode, Data: "span"}
	next.AppendChild(&html.Node{Type: html.TextNode, Data: "new"})

	if !dom.Replace(old, next) {
		t.Fatalf("replace reported detached node")
	}
	if dom.Replace(old, next) {
		t.Fatalf("replacing a detached node should be a no-op")
	}

	dom.Append(root, dom.ElementByID(root, "keep"))
	want := `<span>new</span><p id="keep">keep</p>`
	if diff := cmp.Diff(want, dom.RenderChildren(root)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestPruneTemplates(t *testing.T) {
	t.Parallel()

	root, err := dom.ParseFragment(`<ul><li foreach="a"><i foreach="b"></i></li><li>static</li><li reapply="." to="x"></li></ul>`)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	if got := dom.PruneTemplates(root); got != 2 {
		t.Fatalf("pruned %d templates, want 2", got)
	}
	if got := dom.RenderChildren(root); !strings.Contains(got, "static") || strings.Contains(got, "foreach") {
		t.Fatalf("unexpected markup after prune: %s", got)
	}
}
