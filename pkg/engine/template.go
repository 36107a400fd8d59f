package engine

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/dom"
	"github.com/goliatone/go-callout/pkg/hooks"
)

// Directive attributes.
const (
	AttrForeach = "foreach"
	AttrIn      = "in"
	AttrOf      = "of"
	AttrReapply = "reapply"
	AttrTo      = "to"
	AttrID      = "id"
	AttrGenID   = "genid"

	// TemplateClass marks dormant templates.
	TemplateClass = "template"

	breakpointMarker = "#"
	generatedMarker  = ":"
)

// directives are stripped from instances when they are revealed.
var directives = append([]string{AttrForeach, AttrIn, AttrOf, AttrReapply, AttrTo}, hooks.Names...)

// Template is the engine's record of a dormant template element.
type Template struct {
	Node *html.Node

	// ParentForInstances receives the instances of top-level requests that
	// name no parent. Nil means the template's own parent node.
	ParentForInstances *html.Node

	instances []*Instance
	handlers  map[string]hooks.Handler
	restartAt *Template
}

// BindingName is the name each item is bound to, the foreach value without
// its breakpoint marker.
func (t *Template) BindingName() string {
	if t == nil {
		return ""
	}
	return strings.TrimPrefix(dom.AttrValue(t.Node, AttrForeach), breakpointMarker)
}

// Instances lists every instance the template has produced, in creation
// order. Vetoed and regenerated instances stay in the list.
func (t *Template) Instances() []*Instance {
	if t == nil {
		return nil
	}
	return append([]*Instance(nil), t.instances...)
}

// RestartAt is the ancestor template a reapply stub re-enters, or nil.
func (t *Template) RestartAt() *Template {
	if t == nil {
		return nil
	}
	return t.restartAt
}

func (t *Template) hasBreakpoint() bool {
	return strings.HasPrefix(dom.AttrValue(t.Node, AttrForeach), breakpointMarker)
}

// TopLevelTemplates returns the foreach elements below root that are not
// nested inside another template, in document order. Nested templates are
// reached through their enclosing instance.
func TopLevelTemplates(root *html.Node) []*html.Node {
	return dom.Elements(root, func(n *html.Node) bool {
		if !dom.HasAttr(n, AttrForeach) {
			return false
		}
		for p := n.Parent; p != nil && p != root; p = p.Parent {
			if dom.HasAttr(p, AttrForeach) || dom.HasAttr(p, AttrReapply) {
				return false
			}
		}
		return true
	})
}
