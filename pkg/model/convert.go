package model

import (
	"reflect"
	"sort"
	"strings"
)

// From normalises an arbitrary Go value:
//
//   - *Object, *List and *Boxed are returned unchanged
//   - maps with string keys become *Object with keys sorted lexicographically
//   - structs (and pointers to structs) become *Object in field order, honouring
//     `json` tag names; the result is a snapshot, not a view of the struct
//   - slices and arrays (except []byte) become *List
//   - []byte becomes a string, other scalars are returned unchanged
//
// Nested values are normalised recursively.
func From(v any) any {
	switch typed := v.(type) {
	case nil:
		return nil
	case *Object, *List, *Boxed:
		return typed
	case string, bool, int, int64, float64:
		return typed
	case []byte:
		return string(typed)
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, typed[k])
		}
		return obj
	case []any:
		return NewList(typed...)
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return From(rv.Elem().Interface())
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k.String(), rv.MapIndex(k).Interface())
		}
		return obj
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		list := &List{Items: make([]any, 0, rv.Len())}
		for i := 0; i < rv.Len(); i++ {
			list.Items = append(list.Items, From(rv.Index(i).Interface()))
		}
		return list
	case reflect.Struct:
		return fromStruct(rv)
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		if rv.CanInterface() {
			return rv.Interface()
		}
		return nil
	}
}

func fromStruct(rv reflect.Value) *Object {
	obj := NewObject()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag := field.Tag.Get("json"); tag != "" {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		obj.Set(name, rv.Field(i).Interface())
	}
	return obj
}
