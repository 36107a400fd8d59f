// Package sanitize strips unsafe markup from rendered documents. Models are
// untrusted input: substitution copies their text into attributes and text
// nodes verbatim, so output meant for a browser should pass through here.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// HTML sanitizes raw with the document policy. Whitespace-only results
// collapse to "".
func HTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(Policy().Sanitize(trimmed))
}

// Policy returns the shared document policy: user-generated content rules
// plus the identity, class and data attributes instantiated views carry.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("id", "class", "title", "role").Globally()
		p.AllowDataAttributes()
		p.AllowElements("section", "article", "header", "footer", "nav", "main", "span", "div")
		policy = p
	})
	return policy
}
