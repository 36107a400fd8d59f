package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/dom"
)

// Resolver finds templates and parent views by name.
type Resolver interface {
	Lookup(name string) (*html.Node, bool)
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func(name string) (*html.Node, bool)

// Lookup delegates to the underlying function.
func (fn ResolverFunc) Lookup(name string) (*html.Node, bool) {
	return fn(name)
}

// DefaultNames is the process-wide registry engines consult unless
// configured otherwise.
var DefaultNames = NewNames()

// Names is a registry of named nodes.
type Names struct {
	mu    sync.RWMutex
	nodes map[string]*html.Node
}

// NewNames creates an empty registry.
func NewNames() *Names {
	return &Names{nodes: make(map[string]*html.Node)}
}

// Register stores node under name, replacing any previous entry.
func (n *Names) Register(name string, node *html.Node) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("engine: name is required")
	}
	if node == nil {
		return fmt.Errorf("engine: node for %q is required", name)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.nodes == nil {
		n.nodes = make(map[string]*html.Node)
	}
	n.nodes[name] = node
	return nil
}

// Lookup implements Resolver.
func (n *Names) Lookup(name string) (*html.Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	node, ok := n.nodes[name]
	return node, ok
}

// List returns the registered names, sorted.
func (n *Names) List() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]string, 0, len(n.nodes))
	for name := range n.nodes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HostResolver looks names up in Names first and then by id in Document.
type HostResolver struct {
	Names    *Names
	Document *html.Node
}

// Lookup implements Resolver.
func (r HostResolver) Lookup(name string) (*html.Node, bool) {
	if r.Names != nil {
		if node, ok := r.Names.Lookup(name); ok {
			return node, true
		}
	}
	if r.Document != nil {
		if node := dom.ElementByID(r.Document, name); node != nil {
			return node, true
		}
	}
	return nil, false
}
