// Package hooks resolves the handler names templates carry in their pre,
// post and load attributes into callables.
//
// Attribute text is never executed as code: a Resolver maps it onto a
// Handler, either by name through a Registry or by compiling it as a pongo2
// expression template through a Compiler. Chain tries resolvers in order.
package hooks

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/model"
)

// Hook names recognised on templates.
const (
	Pre  = "pre"
	Post = "post"
	Load = "load"
)

// Names lists every hook attribute.
var Names = []string{Pre, Post, Load}

// ErrUnknownHandler reports a name no resolver knows.
var ErrUnknownHandler = errors.New("unknown handler")

// Event describes the instance a hook runs for.
type Event struct {
	Hook       string
	Node       *html.Node
	Model      any
	Collection *model.List
	N          int
	// Instance is the engine's instance record for Node.
	Instance any
}

// Handler runs a hook. For pre and post, returning false vetoes the
// instance; the result of load handlers is ignored.
type Handler func(ev Event) bool

// Resolver turns hook attribute text into a Handler.
type Resolver interface {
	Resolve(source string) (Handler, error)
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func(source string) (Handler, error)

// Resolve delegates to the underlying function.
func (fn ResolverFunc) Resolve(source string) (Handler, error) {
	return fn(source)
}

// Chain tries each resolver in order and returns the first success.
type Chain []Resolver

// Resolve implements Resolver.
func (c Chain) Resolve(source string) (Handler, error) {
	var errs []error
	for _, r := range c {
		if r == nil {
			continue
		}
		h, err := r.Resolve(source)
		if err == nil && h != nil {
			return h, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil, ErrUnknownHandler
	}
	return nil, errors.Join(errs...)
}

// Continue is a Handler that never vetoes.
func Continue(Event) bool { return true }

// Stop is a Handler that always vetoes.
func Stop(Event) bool { return false }
