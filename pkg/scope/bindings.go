package scope

import (
	"sort"

	"github.com/goliatone/go-callout/pkg/model"
)

// Bindings holds the symbolic names introduced by foreach="name". Bindings
// are immutable: With returns a child that shadows the parent, so a binding
// made for one iteration never leaks to its siblings.
type Bindings struct {
	name   string
	value  any
	parent *Bindings
}

// BindingsOf seeds bindings from a map, in key order.
func BindingsOf(values map[string]any) *Bindings {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out *Bindings
	for _, k := range keys {
		out = out.With(k, model.From(values[k]))
	}
	return out
}

// With returns bindings where name resolves to v.
func (b *Bindings) With(name string, v any) *Bindings {
	return &Bindings{name: name, value: v, parent: b}
}

// Lookup returns the innermost value bound to name.
func (b *Bindings) Lookup(name string) (any, bool) {
	for cur := b; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.value, true
		}
	}
	return nil, false
}

// Names lists the visible names, innermost first, without duplicates.
func (b *Bindings) Names() []string {
	var out []string
	seen := make(map[string]struct{})
	for cur := b; cur != nil; cur = cur.parent {
		if _, dup := seen[cur.name]; dup {
			continue
		}
		seen[cur.name] = struct{}{}
		out = append(out, cur.name)
	}
	return out
}
