package engine

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/model"
	"github.com/goliatone/go-callout/pkg/scope"
)

// ChangeFunc reacts to a change of the instance's model.
type ChangeFunc func(inst *Instance)

// Instance is one rendered application of a template to a model item.
type Instance struct {
	Node         *html.Node
	Template     *Template
	Model        any
	Collection   *model.List
	N            int
	Subinstances []*Instance

	// Context is the context the instance was created in, without its own
	// frame.
	Context scope.Context
	Loaded  bool

	// OnChange replaces the default regeneration when set.
	OnChange ChangeFunc

	explicit *scope.Bindings
	parent   *html.Node
	revealed bool
	owned    []*html.Node
}

// Parent is the view the instance is attached to, or designated for.
func (i *Instance) Parent() *html.Node {
	if i == nil {
		return nil
	}
	if i.Node != nil && i.Node.Parent != nil {
		return i.Node.Parent
	}
	return i.parent
}

// Attached reports whether the instance node is in a tree.
func (i *Instance) Attached() bool {
	return i != nil && i.Node != nil && i.Node.Parent != nil
}

// Walk visits the instance and its subinstances depth first.
func (i *Instance) Walk(fn func(*Instance) bool) {
	if i == nil {
		return
	}
	if !fn(i) {
		return
	}
	for _, sub := range i.Subinstances {
		sub.Walk(fn)
	}
}
