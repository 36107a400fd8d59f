// Package dom holds the view-tree primitives the binding engine relies on:
// parsing and rendering, deep cloning, attribute access, class tokens,
// child insertion/removal/replacement and lookup by id. Nodes are plain
// golang.org/x/net/html nodes so documents round-trip through the standard
// HTML5 parser and renderer.
package dom
