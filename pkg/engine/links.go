package engine

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/model"
)

// linkable reports whether v has an identity the side tables can key on.
func linkable(v any) bool {
	switch typed := v.(type) {
	case *model.Object:
		return typed != nil
	case *model.List:
		return typed != nil
	case *model.Boxed:
		return typed != nil
	}
	return false
}

func (e *Engine) register(inst *Instance) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.instances[inst.Node] = inst
	inst.Template.instances = append(inst.Template.instances, inst)
}

func (e *Engine) setOwner(node *html.Node, owner *Instance) {
	if owner == nil {
		return
	}
	e.mu.Lock()
	e.owners[node] = owner
	owner.owned = append(owner.owned, node)
	e.mu.Unlock()
}

func (e *Engine) link(m any, inst *Instance) {
	if !linkable(m) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, existing := range e.views[m] {
		if existing == inst {
			return
		}
	}
	e.views[m] = append(e.views[m], inst)
}

func (e *Engine) unlink(m any, inst *Instance) {
	if !linkable(m) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	views := e.views[m]
	kept := views[:0]
	for _, v := range views {
		if v != inst {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(e.views, m)
		return
	}
	e.views[m] = kept
}

// discard drops the link and ownership records of inst and its
// subinstances. Templates keep them in their instance lists.
func (e *Engine) discard(inst *Instance) {
	inst.Walk(func(cur *Instance) bool {
		e.unlink(cur.Model, cur)
		e.mu.Lock()
		delete(e.instances, cur.Node)
		for _, node := range cur.owned {
			if e.owners[node] == cur {
				delete(e.owners, node)
			}
		}
		cur.owned = nil
		e.mu.Unlock()
		return true
	})
}

func (e *Engine) addConsumer(list *model.List, parent *html.Node) {
	if parent == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, existing := range e.consumers[list] {
		if existing == parent {
			return
		}
	}
	e.consumers[list] = append(e.consumers[list], parent)
}

// addSource records source as a model of parent. The first collection a
// parent view receives also becomes its model unless it is an instance.
func (e *Engine) addSource(parent *html.Node, source any, list *model.List) {
	e.mu.Lock()
	defer e.mu.Unlock()

	found := false
	for _, existing := range e.sources[parent] {
		if existing == source {
			found = true
			break
		}
	}
	if !found {
		e.sources[parent] = append(e.sources[parent], source)
	}
	if _, isInstance := e.instances[parent]; isInstance {
		return
	}
	if _, ok := e.models[parent]; !ok {
		e.models[parent] = list
	}
}

// ViewsOf lists the instances rendered from m.
func (e *Engine) ViewsOf(m any) []*Instance {
	if !linkable(m) {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Instance(nil), e.views[m]...)
}

// ConsumersOf lists the parent views that iterated list.
func (e *Engine) ConsumersOf(list *model.List) []*html.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*html.Node(nil), e.consumers[list]...)
}

// SourcesOf lists the collections (or the objects they were extracted from)
// rendered into parent.
func (e *Engine) SourcesOf(parent *html.Node) []any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]any(nil), e.sources[parent]...)
}

// ModelOf returns the model of node: the item of the instance it is, or the
// first collection rendered into it.
func (e *Engine) ModelOf(node *html.Node) any {
	e.mu.Lock()
	defer e.mu.Unlock()

	if inst, ok := e.instances[node]; ok {
		return inst.Model
	}
	return e.models[node]
}

// InstanceOf returns the instance whose root is node.
func (e *Engine) InstanceOf(node *html.Node) *Instance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.instances[node]
}

// OwnerOf returns the instance a descendant element belongs to.
func (e *Engine) OwnerOf(node *html.Node) *Instance {
	e.mu.Lock()
	defer e.mu.Unlock()

	if inst, ok := e.instances[node]; ok {
		return inst
	}
	return e.owners[node]
}
