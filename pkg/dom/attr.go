package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of the named attribute.
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// AttrValue is Attr without the presence flag.
func AttrValue(n *html.Node, name string) string {
	v, _ := Attr(n, name)
	return v
}

// HasAttr reports whether n carries the named attribute.
func HasAttr(n *html.Node, name string) bool {
	_, ok := Attr(n, name)
	return ok
}

// SetAttr sets or appends the named attribute.
func SetAttr(n *html.Node, name, value string) {
	if n == nil {
		return
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes every occurrence of the named attribute.
func RemoveAttr(n *html.Node, names ...string) {
	if n == nil || len(n.Attr) == 0 {
		return
	}
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && contains(names, a.Key) {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// RemoveClass drops the class token from the class attribute. The attribute
// is removed when no tokens remain.
func RemoveClass(n *html.Node, class string) {
	raw, ok := Attr(n, "class")
	if !ok {
		return
	}
	fields := strings.Fields(raw)
	kept := fields[:0]
	for _, f := range fields {
		if f != class {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// HasClass reports whether class is one of n's class tokens.
func HasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(AttrValue(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
