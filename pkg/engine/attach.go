package engine

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/dom"
	"github.com/goliatone/go-callout/pkg/hooks"
)

// Attach appends every instance that is not already in a tree to parent and
// returns how many were appended. With reveal, directives and the template
// class are stripped first.
func (e *Engine) Attach(instances []*Instance, parent *html.Node, reveal bool) int {
	if parent == nil {
		return 0
	}
	appended := 0
	for _, inst := range instances {
		if inst == nil || inst.Node == nil || inst.Node.Parent != nil {
			continue
		}
		if reveal {
			Reveal(inst.Node)
			inst.revealed = true
		}
		dom.Append(parent, inst.Node)
		inst.parent = parent
		appended++
	}
	return appended
}

// Reveal strips binding directives, hook attributes and the template class
// so node reads as ordinary content.
func Reveal(node *html.Node) {
	dom.RemoveAttr(node, directives...)
	dom.RemoveClass(node, TemplateClass)
}

func (e *Engine) runLoad(instances []*Instance) {
	for _, inst := range instances {
		if inst == nil {
			continue
		}
		if !inst.Loaded {
			e.invoke(inst, hooks.Load)
			inst.Loaded = true
		}
		if len(inst.Subinstances) > 0 {
			e.runLoad(inst.Subinstances)
		}
	}
}

// invoke runs the named hook of inst's template. A missing or unresolvable
// hook continues.
func (e *Engine) invoke(inst *Instance, hook string) bool {
	handler := e.handler(inst.Template, hook)
	if handler == nil {
		return true
	}
	return handler(hooks.Event{
		Hook:       hook,
		Node:       inst.Node,
		Model:      inst.Model,
		Collection: inst.Collection,
		N:          inst.N,
		Instance:   inst,
	})
}

// handler resolves a hook attribute once per template. Failures are cached
// as absent.
func (e *Engine) handler(tmpl *Template, hook string) hooks.Handler {
	if tmpl == nil {
		return nil
	}
	if h, ok := tmpl.handlers[hook]; ok {
		return h
	}
	if tmpl.handlers == nil {
		tmpl.handlers = make(map[string]hooks.Handler)
	}

	source, ok := dom.Attr(tmpl.Node, hook)
	if !ok || source == "" {
		tmpl.handlers[hook] = nil
		return nil
	}
	h, err := e.handlers.Resolve(source)
	if err != nil {
		e.logger.Warn("hook not installed", "hook", hook, "source", source, "error", err)
		h = nil
	} else {
		e.logger.Debug("hook installed", "hook", hook, "source", source)
	}
	tmpl.handlers[hook] = h
	return h
}
