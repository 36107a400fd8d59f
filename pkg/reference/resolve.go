// Package reference implements the `@{...}` reference language: address
// parsing, resolution against a scope.Context and substitution of every
// reference embedded in a string.
//
// Resolution starts at the frame chosen by the address prefix and walks
// outward to the root; the first frame whose Lookup yields a defined value
// for the first path component wins and the remaining components are plain
// property reads. Nothing here returns an error: an unresolvable reference
// is nil and substitutes as empty text.
package reference

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-callout/pkg/model"
	"github.com/goliatone/go-callout/pkg/scope"
)

var pattern = regexp.MustCompile(`@\{([\[\]/<>()*.:a-zA-Z0-9_,@#$]+?)\}`)

// Resolve looks raw up in ctx without consulting the resolution cache.
func Resolve(raw string, ctx scope.Context) any {
	return ResolveAddress(Parse(raw), ctx)
}

// ResolveAddress resolves a parsed address. An empty path yields the model
// of the addressed frame.
func ResolveAddress(addr Address, ctx scope.Context) any {
	frames := ctx.Frames()
	if len(frames) == 0 {
		return nil
	}
	start := addr.FrameIndex(len(frames))
	if len(addr.Path) == 0 {
		return frames[start].Model
	}

	for _, frame := range frames[start:] {
		value := frame.Lookup(addr.Path[0])
		if value == nil {
			continue
		}
		accessor := frame.Accessor()
		for _, name := range addr.Path[1:] {
			if value == nil {
				return nil
			}
			value = accessor.Property(value, name)
		}
		return value
	}
	return nil
}

// ResolveCached resolves raw and remembers the result in the innermost
// frame so repeated references within one substitution pass agree.
func ResolveCached(raw string, ctx scope.Context) any {
	frame := ctx.Innermost()
	if v, ok := frame.Cached(raw); ok {
		return v
	}
	v := Resolve(raw, ctx)
	frame.Remember(raw, v)
	return v
}

// Substitute replaces every reference in text with its resolved value.
func Substitute(text string, ctx scope.Context) string {
	if !strings.Contains(text, "@{") {
		return text
	}
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		raw := match[2 : len(match)-1]
		return model.Stringify(ResolveCached(raw, ctx))
	})
}
