package engine

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-callout/pkg/dom"
	"github.com/goliatone/go-callout/pkg/model"
	"github.com/goliatone/go-callout/pkg/reference"
	"github.com/goliatone/go-callout/pkg/scope"
)

// Collection sigils.
const (
	sigilValues = '*'
	sigilRecord = '^'
	sigilSort   = '$'
)

type sigils struct {
	extract bool
	records bool
	sorted  bool
}

func parseSigils(source string) (string, sigils) {
	var s sigils
	for source != "" {
		switch source[0] {
		case sigilValues:
			s.extract = true
		case sigilRecord:
			s.extract = true
			s.records = true
		case sigilSort:
			s.sorted = true
		default:
			return source, s
		}
		source = source[1:]
	}
	return source, s
}

// collectionSource returns the first non-empty of in, of and foreach.
func collectionSource(node *html.Node) string {
	for _, name := range []string{AttrIn, AttrOf} {
		if v := dom.AttrValue(node, name); v != "" {
			return v
		}
	}
	return strings.TrimPrefix(dom.AttrValue(node, AttrForeach), breakpointMarker)
}

// Collection resolves the collection a template element iterates in ctx.
func (e *Engine) Collection(node *html.Node, ctx scope.Context) any {
	return e.collectionFor(node, ctx)
}

func (e *Engine) collectionFor(node *html.Node, ctx scope.Context) any {
	if dom.HasAttr(node, AttrReapply) {
		ctx = ctx.Truncate(1)
	}

	name, flags := parseSigils(collectionSource(node))

	var collection any
	if name == "" {
		inner := ctx.Innermost()
		if inner == nil {
			return nil
		}
		switch m := inner.Model.(type) {
		case *model.List:
			collection = m
		case *model.Object:
			if flags.extract {
				collection = m
			}
		}
	} else {
		collection = reference.ResolveCached(name, ctx)
	}

	if obj, ok := collection.(*model.Object); ok {
		if v, _ := obj.Get("debug"); model.Truthy(v) {
			e.breakpoint(node, "debug")
		}
	}

	list, isList := collection.(*model.List)
	switch {
	case flags.extract && !isList:
		obj, ok := collection.(*model.Object)
		if !ok {
			return collection
		}
		return extract(obj, flags)
	case flags.sorted && isList:
		model.Sort(list)
	}
	return collection
}

func extract(obj *model.Object, flags sigils) *model.List {
	keys := obj.Keys()
	if flags.sorted {
		sort.Strings(keys)
	}
	out := &model.List{Items: make([]any, 0, len(keys)), Represents: obj}
	for _, k := range keys {
		v, _ := obj.Get(k)
		if flags.records {
			out.Items = append(out.Items, model.Record(k, v))
			continue
		}
		out.Items = append(out.Items, v)
	}
	return out
}

// asList coerces a collection value into a list. Non-sequences become a
// one-element list.
func asList(collection any) *model.List {
	switch typed := collection.(type) {
	case nil:
		return nil
	case *model.List:
		return typed
	}
	normalised := model.From(collection)
	if list, ok := normalised.(*model.List); ok {
		return list
	}
	return &model.List{Items: []any{normalised}}
}
