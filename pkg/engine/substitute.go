package engine

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/dom"
	"github.com/goliatone/go-callout/pkg/reference"
	"github.com/goliatone/go-callout/pkg/scope"
)

// substitute resolves every reference in node's attributes and text and
// returns the uninstantiated sub-templates found below it, in document
// order. Sub-templates are not descended into.
func (e *Engine) substitute(node *html.Node, ctx scope.Context, owner *Instance) []*html.Node {
	e.substituteAttrs(node, ctx)

	var subtemplates []*html.Node
	for child := node.FirstChild; child != nil; {
		next := child.NextSibling
		switch child.Type {
		case html.TextNode:
			child.Data = reference.Substitute(child.Data, ctx)
		case html.ElementNode:
			switch {
			case dom.HasAttr(child, AttrForeach):
				subtemplates = append(subtemplates, child)
				if id, ok := dom.Attr(child, AttrID); ok {
					dom.SetAttr(child, AttrID, reference.Substitute(id, ctx))
				}
			case dom.HasAttr(child, AttrReapply):
				if e.resolveRestart(child, ctx) != nil {
					subtemplates = append(subtemplates, child)
				}
			default:
				subtemplates = append(subtemplates, e.substitute(child, ctx, owner)...)
				e.setOwner(child, owner)
			}
		case html.RawNode:
		default:
			node.RemoveChild(child)
		}
		child = next
	}
	return subtemplates
}

func (e *Engine) substituteAttrs(node *html.Node, ctx scope.Context) {
	if len(node.Attr) == 0 {
		return
	}

	kept := make([]html.Attribute, 0, len(node.Attr))
	var generated []html.Attribute
	var genid *string
	for _, attr := range node.Attr {
		attr.Val = reference.Substitute(attr.Val, ctx)
		switch {
		case attr.Key == AttrID && attr.Namespace == "":
			continue
		case attr.Key == AttrGenID && attr.Namespace == "":
			v := attr.Val
			genid = &v
			continue
		case strings.HasPrefix(attr.Key, breakpointMarker):
			e.breakpoint(node, attr.Key)
			continue
		case strings.HasPrefix(attr.Key, generatedMarker):
			attr.Key = strings.TrimPrefix(attr.Key, generatedMarker)
			generated = append(generated, attr)
			continue
		}
		kept = append(kept, attr)
	}
	node.Attr = kept

	for _, attr := range generated {
		dom.SetAttr(node, attr.Key, attr.Val)
	}
	if genid != nil {
		dom.SetAttr(node, AttrID, *genid)
	}
}

// resolveRestart binds a reapply stub to the ancestor template it re-enters
// and rewrites it into an ordinary sub-template over its `to` collection.
func (e *Engine) resolveRestart(stub *html.Node, ctx scope.Context) *Template {
	record := e.Template(stub)
	if record.restartAt != nil {
		return record.restartAt
	}

	name := dom.AttrValue(stub, AttrReapply)
	var target *Template
	if inner := ctx.Innermost(); inner != nil {
		target, _ = inner.Template.(*Template)
	}
	if name != "" && name != "." {
		for _, frame := range ctx.Frames() {
			t, ok := frame.Template.(*Template)
			if ok && t != nil && t.BindingName() == name {
				target = t
				break
			}
		}
	}
	if target == nil {
		e.logger.Warn("reapply target not found", "reapply", name)
		return nil
	}

	record.restartAt = target
	dom.SetAttr(stub, AttrForeach, target.BindingName())
	dom.SetAttr(stub, AttrIn, dom.AttrValue(stub, AttrTo))
	return target
}
