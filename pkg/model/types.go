package model

import (
	"fmt"
)

// Object is an ordered mapping. Key order is the enumeration order used by
// property-extraction sigils.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// ObjectOf builds an object from alternating key/value pairs, keeping the
// given order. Values are normalised with From.
func ObjectOf(pairs ...any) *Object {
	obj := NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			key = fmt.Sprint(pairs[i])
		}
		obj.Set(key, pairs[i+1])
	}
	return obj
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores v under key, appending the key when it is new. v is normalised
// with From.
func (o *Object) Set(key string, v any) {
	if o == nil {
		return
	}
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = From(v)
}

// Delete removes key.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in enumeration order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// List is an ordered collection of model items.
type List struct {
	Items []any
	// Represents is the value this list was extracted from by a `*` or `^`
	// sigil; nil for lists that are model data themselves.
	Represents any
}

// NewList builds a list from items normalised with From.
func NewList(items ...any) *List {
	out := &List{Items: make([]any, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, From(item))
	}
	return out
}

// Len returns the number of items; a nil list is empty.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// Append adds items normalised with From.
func (l *List) Append(items ...any) {
	for _, item := range items {
		l.Items = append(l.Items, From(item))
	}
}

// Boxed wraps a scalar item so it can be linked to views by identity.
type Boxed struct {
	Value any
}

// String renders the wrapped scalar.
func (b *Boxed) String() string {
	if b == nil {
		return ""
	}
	return Stringify(b.Value)
}

// Box wraps strings, numbers and booleans. Other values are returned as-is
// with ok=false.
func Box(v any) (any, bool) {
	if !IsScalar(v) {
		return v, false
	}
	return &Boxed{Value: v}, true
}

// Unbox returns the scalar inside a *Boxed, or v itself.
func Unbox(v any) any {
	if b, ok := v.(*Boxed); ok && b != nil {
		return b.Value
	}
	return v
}

// IsScalar reports whether v is a string, number or boolean.
func IsScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// IsSequence reports whether v is a *List.
func IsSequence(v any) bool {
	l, ok := v.(*List)
	return ok && l != nil
}

// Record builds the {name, value} object produced by the `^` sigil.
func Record(name string, value any) *Object {
	obj := NewObject()
	obj.keys = []string{"name", "value"}
	obj.values["name"] = name
	obj.values["value"] = value
	return obj
}
