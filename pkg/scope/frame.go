// Package scope implements the frames and contexts references are resolved
// in. A Context is a persistent stack: Push returns a new context and leaves
// the receiver untouched, so an instantiation can hand its context to nested
// calls without any pop bookkeeping.
package scope

import (
	"github.com/goliatone/go-callout/pkg/model"
	"github.com/goliatone/go-callout/pkg/plural"
)

// Separator is what the `,` special name renders for every item except the
// last one of its collection.
const Separator = ","

// TemplateRef is the template a frame was pushed for. BindingName is the
// symbolic name the template binds each item to (its foreach value).
type TemplateRef interface {
	BindingName() string
}

// Frame is one scope record. Fields are set when the frame is pushed; the
// lookup cache is private to the frame and never survives Copy.
type Frame struct {
	Model      any
	Explicit   *Bindings
	Template   TemplateRef
	Instance   any
	Collection *model.List
	N          int
	Plural     plural.Pluralizer

	cache map[string]any
}

// NewFrame returns a root-style frame over m.
func NewFrame(m any, explicit *Bindings) *Frame {
	return &Frame{Model: model.From(m), Explicit: explicit}
}

// Copy returns a frame with every field of f and a fresh, empty cache.
func (f *Frame) Copy() *Frame {
	if f == nil {
		return nil
	}
	out := *f
	out.cache = nil
	return &out
}

// Lookup resolves a single name in this frame.
//
// Single-character specials: `@` is the 1-based position, `$` the plural
// marker for the collection length, `#` the collection length and `,` the
// separator (empty for the last item). `length` and `size` are aliases of
// `#`. Any other name is read from the cache, then the model, then the
// explicit bindings; the first defined value is cached.
func (f *Frame) Lookup(name string) any {
	if f == nil {
		return nil
	}
	switch name {
	case "@":
		if f.Collection == nil {
			return nil
		}
		return f.N + 1
	case "$":
		if f.Collection == nil {
			return nil
		}
		return f.pluralizer().Suffix(f.Collection.Len())
	case "#", "length", "size":
		if f.Collection == nil {
			return nil
		}
		return f.Collection.Len()
	case ",":
		if f.Collection == nil {
			return nil
		}
		if f.N < f.Collection.Len()-1 {
			return Separator
		}
		return ""
	}

	if v, ok := f.Cached(name); ok {
		return v
	}
	if v := f.accessor().Property(f.Model, name); v != nil {
		f.Remember(name, v)
		return v
	}
	if v, ok := f.Explicit.Lookup(name); ok && v != nil {
		f.Remember(name, v)
		return v
	}
	return nil
}

// Cached returns a previously remembered value for key.
func (f *Frame) Cached(key string) (any, bool) {
	if f == nil || f.cache == nil {
		return nil, false
	}
	v, ok := f.cache[key]
	return v, ok
}

// Remember stores v under key. Undefined (nil) values are never cached.
func (f *Frame) Remember(key string, v any) {
	if f == nil || v == nil {
		return
	}
	if f.cache == nil {
		f.cache = make(map[string]any)
	}
	f.cache[key] = v
}

// Accessor returns the property accessor configured for this frame.
func (f *Frame) Accessor() model.Accessor {
	return f.accessor()
}

func (f *Frame) accessor() model.Accessor {
	return model.Accessor{Plural: f.pluralizer()}
}

func (f *Frame) pluralizer() plural.Pluralizer {
	if f == nil || f.Plural == nil {
		return plural.English
	}
	return f.Plural
}
