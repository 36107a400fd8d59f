package engine

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/dom"
	"github.com/goliatone/go-callout/pkg/hooks"
	"github.com/goliatone/go-callout/pkg/model"
	"github.com/goliatone/go-callout/pkg/scope"
)

// instantiate renders tmpl once per item of collection and attaches the
// results to parent in batches.
func (e *Engine) instantiate(tmpl *Template, collection any, ctx scope.Context, parent *html.Node, reveal bool) []*Instance {
	list := asList(collection)
	if list == nil {
		return nil
	}

	name := tmpl.BindingName()
	if tmpl.hasBreakpoint() {
		e.breakpoint(tmpl.Node, AttrForeach)
	}

	e.addConsumer(list, parent)
	if parent != nil {
		source := any(list)
		if list.Represents != nil {
			source = list.Represents
		}
		e.addSource(parent, source, list)
	}

	var (
		out     []*Instance
		flushed int
	)
	for i := 0; i < len(list.Items); i++ {
		item := list.Items[i]

		explicit := ctx.Innermost().Explicit
		if name != "" {
			explicit = explicit.With(name, item)
		}
		if boxed, ok := model.Box(item); ok {
			list.Items[i] = boxed
			item = boxed
		}

		inst := e.instantiateOnce(tmpl, item, ctx, explicit, list, i)
		if inst == nil {
			continue
		}
		inst.parent = parent
		out = append(out, inst)

		if parent != nil && e.batch > 0 && len(out)-flushed > e.batch {
			e.Attach(out[flushed:], parent, reveal)
			flushed = len(out)
		}
	}
	if parent != nil {
		e.Attach(out[flushed:], parent, reveal)
	}
	return out
}

// instantiateOnce renders a single item. It returns nil when a pre or post
// hook vetoes the instance.
func (e *Engine) instantiateOnce(tmpl *Template, item any, ctx scope.Context, explicit *scope.Bindings, collection *model.List, n int) *Instance {
	if ctx.Len() >= e.maxDepth {
		panic(fmt.Errorf("%w: %d frames instantiating %q", ErrRecursionLimit, ctx.Len(), tmpl.BindingName()))
	}

	inst := &Instance{
		Node:       dom.Clone(tmpl.Node),
		Template:   tmpl,
		Model:      item,
		Collection: collection,
		N:          n,
		Context:    ctx,
		explicit:   explicit,
	}
	e.register(inst)
	e.link(item, inst)

	inner := ctx.Push(&scope.Frame{
		Model:      item,
		Explicit:   explicit,
		Template:   tmpl,
		Instance:   inst,
		Collection: collection,
		N:          n,
		Plural:     e.plural,
	})

	subtemplates := e.substitute(inst.Node, inner, inst)

	if !e.invoke(inst, hooks.Pre) {
		e.discard(inst)
		return nil
	}

	for _, sub := range subtemplates {
		subcollection := e.collectionFor(sub, inner)
		if !model.Truthy(subcollection) {
			e.logger.Debug("sub-template skipped", "template", dom.AttrValue(sub, AttrForeach))
			continue
		}
		target := e.Template(sub)
		if restart := target.RestartAt(); restart != nil {
			target = restart
		}
		inst.Subinstances = append(inst.Subinstances, e.instantiate(target, subcollection, inner, sub.Parent, true)...)
	}

	if !e.invoke(inst, hooks.Post) {
		e.discard(inst)
		return nil
	}
	return inst
}
