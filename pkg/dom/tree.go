package dom

import (
	"golang.org/x/net/html"
)

// Append attaches child as the last child of parent, detaching it from any
// previous position first.
func Append(parent, child *html.Node) {
	if parent == nil || child == nil {
		return
	}
	Detach(child)
	parent.AppendChild(child)
}

// Detach removes n from its parent. It is a no-op for detached nodes.
func Detach(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Replace puts next where old is and detaches old. It reports false when old
// is not attached to a parent.
func Replace(old, next *html.Node) bool {
	if old == nil || next == nil || old.Parent == nil {
		return false
	}
	Detach(next)
	parent := old.Parent
	parent.InsertBefore(next, old)
	parent.RemoveChild(old)
	return true
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Walk(c, fn)
		c = next
	}
}

// ElementByID finds the first element below root whose id matches.
func ElementByID(root *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode {
			if v, ok := Attr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// Elements collects the elements below root matching pred in document order.
func Elements(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Children returns the direct element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	if n == nil {
		return out
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// PruneTemplates removes every dormant template element (one still carrying
// a foreach or reapply directive) below root and returns how many were
// removed.
func PruneTemplates(root *html.Node) int {
	var dormant []*html.Node
	Walk(root, func(n *html.Node) bool {
		if n == root || n.Type != html.ElementNode {
			return true
		}
		if HasAttr(n, "foreach") || HasAttr(n, "reapply") {
			dormant = append(dormant, n)
			return false
		}
		return true
	})
	for _, n := range dormant {
		Detach(n)
	}
	return len(dormant)
}
