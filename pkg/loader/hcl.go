package loader

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/goliatone/go-callout/pkg/model"
)

// parseHCL maps an HCL body onto an object: attributes become keys in
// source order and blocks are grouped into a list per block type. A block's
// first label is exposed as its "name" unless the body defines one.
//
//	title = "Doc"
//	item "a" { label = "first" }
//	item "b" { label = "second" }
//
// yields {title: "Doc", item: [{label: "first", name: "a"}, ...]}.
func parseHCL(data []byte, source string) (any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, source)
	if diags.HasErrors() {
		return nil, fmt.Errorf("loader: parse %s: %s", source, diags.Error())
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("loader: parse %s: unexpected body type %T", source, file.Body)
	}
	obj, err := fromHCLBody(body)
	if err != nil {
		return nil, fmt.Errorf("loader: decode %s: %w", source, err)
	}
	return obj, nil
}

type hclEntry struct {
	offset int
	attr   *hclsyntax.Attribute
	block  *hclsyntax.Block
}

func fromHCLBody(body *hclsyntax.Body) (*model.Object, error) {
	entries := make([]hclEntry, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		entries = append(entries, hclEntry{offset: attr.SrcRange.Start.Byte, attr: attr})
	}
	for _, block := range body.Blocks {
		entries = append(entries, hclEntry{offset: block.TypeRange.Start.Byte, block: block})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].offset < entries[j].offset })

	obj := model.NewObject()
	for _, entry := range entries {
		if entry.attr != nil {
			value, err := fromHCLExpr(entry.attr.Expr)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", entry.attr.Name, err)
			}
			obj.Set(entry.attr.Name, value)
			continue
		}

		block := entry.block
		inner, err := fromHCLBody(block.Body)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", block.Type, err)
		}
		if len(block.Labels) > 0 {
			if _, exists := inner.Get("name"); !exists {
				inner.Set("name", block.Labels[0])
			}
		}
		existing, _ := obj.Get(block.Type)
		list, ok := existing.(*model.List)
		if !ok {
			list = model.NewList()
			obj.Set(block.Type, list)
		}
		list.Append(inner)
	}
	return obj, nil
}

// fromHCLExpr keeps the source order of object constructors; everything
// else is evaluated without variables or functions.
func fromHCLExpr(expr hclsyntax.Expression) (any, error) {
	switch typed := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		obj := model.NewObject()
		for _, item := range typed.Items {
			key, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() {
				return nil, diagsError(diags)
			}
			if key.Type() != cty.String || key.IsNull() {
				return nil, fmt.Errorf("object key must be a string")
			}
			value, err := fromHCLExpr(item.ValueExpr)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", key.AsString(), err)
			}
			obj.Set(key.AsString(), value)
		}
		return obj, nil
	case *hclsyntax.TupleConsExpr:
		list := model.NewList()
		for _, elem := range typed.Exprs {
			value, err := fromHCLExpr(elem)
			if err != nil {
				return nil, err
			}
			list.Append(value)
		}
		return list, nil
	}

	value, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diagsError(diags)
	}
	return fromCty(value)
}

func diagsError(diags hcl.Diagnostics) error {
	return fmt.Errorf("%s", diags.Error())
}

// fromCty converts an evaluated value. Whole numbers become int64.
func fromCty(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return i, nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("convert number: %w", err)
		}
		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := model.NewList()
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			value, err := fromCty(elem)
			if err != nil {
				return nil, err
			}
			list.Append(value)
		}
		return list, nil
	case ty.IsObjectType() || ty.IsMapType():
		obj := model.NewObject()
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			value, err := fromCty(elem)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", key.AsString(), err)
			}
			obj.Set(key.AsString(), value)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
