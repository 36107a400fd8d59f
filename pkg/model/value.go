package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-callout/pkg/plural"
)

// Accessor reads properties off model values. The zero value uses English
// plural markers.
type Accessor struct {
	Plural plural.Pluralizer
}

// Property reads name off v using English plural markers.
func Property(v any, name string) any {
	return Accessor{}.Property(v, name)
}

// Property reads name off v:
//
//   - *Object: the stored value
//   - *List: `#`, `length`, `size` (item count), `$` (plural marker of the
//     count) or a numeric index
//   - strings (boxed or not): `length` in runes
//   - numbers (boxed or not): `$`, the plural marker of the number
//
// Anything else yields nil.
func (a Accessor) Property(v any, name string) any {
	switch typed := v.(type) {
	case nil:
		return nil
	case *Object:
		out, _ := typed.Get(name)
		return out
	case *List:
		if typed == nil {
			return nil
		}
		switch name {
		case "#", "length", "size":
			return typed.Len()
		case "$":
			return a.pluralizer().Suffix(typed.Len())
		}
		if idx, err := strconv.Atoi(name); err == nil && idx >= 0 && idx < len(typed.Items) {
			return typed.Items[idx]
		}
		return nil
	case *Boxed:
		if typed == nil {
			return nil
		}
		return a.Property(typed.Value, name)
	case string:
		if name == "length" {
			return utf8.RuneCountInString(typed)
		}
		return nil
	}
	if name == "$" {
		if n, ok := toInt(v); ok {
			return a.pluralizer().Suffix(n)
		}
	}
	return nil
}

func (a Accessor) pluralizer() plural.Pluralizer {
	if a.Plural == nil {
		return plural.English
	}
	return a.Plural
}

// Truthy mirrors the usual scripting truthiness: nil, false, zero numbers,
// NaN and "" are false; every object (including boxed scalars) is true.
func Truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	case float64:
		return typed != 0 && !math.IsNaN(typed)
	case float32:
		return typed != 0 && !math.IsNaN(float64(typed))
	case *Object:
		return typed != nil
	case *List:
		return typed != nil
	case *Boxed:
		return typed != nil
	case uint64:
		return typed != 0
	}
	if n, ok := toInt64(v); ok {
		return n != 0
	}
	return true
}

// Stringify renders v as substitution text. nil renders as "", lists join
// their items with "," and objects render as "".
func Stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return formatFloat(typed)
	case float32:
		return formatFloat(float64(typed))
	case *Boxed:
		if typed == nil {
			return ""
		}
		return Stringify(typed.Value)
	case *List:
		if typed == nil {
			return ""
		}
		parts := make([]string, len(typed.Items))
		for i, item := range typed.Items {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case *Object:
		return ""
	case fmt.Stringer:
		return typed.String()
	}
	if n, ok := toInt64(v); ok {
		return strconv.FormatInt(n, 10)
	}
	if u, ok := v.(uint64); ok {
		return strconv.FormatUint(u, 10)
	}
	return fmt.Sprint(v)
}

// Sort orders the list in place by the text form of its items.
func Sort(l *List) {
	if l == nil {
		return
	}
	sort.SliceStable(l.Items, func(i, j int) bool {
		return Stringify(l.Items[i]) < Stringify(l.Items[j])
	})
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toInt(v any) (int, bool) {
	if n, ok := toInt64(v); ok {
		return int(n), true
	}
	switch typed := v.(type) {
	case float64:
		if typed == math.Trunc(typed) {
			return int(typed), true
		}
	case float32:
		if float64(typed) == math.Trunc(float64(typed)) {
			return int(typed), true
		}
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch typed := v.(type) {
	case int:
		return int64(typed), true
	case int8:
		return int64(typed), true
	case int16:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case uint:
		return int64(typed), true
	case uint8:
		return int64(typed), true
	case uint16:
		return int64(typed), true
	case uint32:
		return int64(typed), true
	}
	return 0, false
}

// Plain converts v back into plain Go values: objects become
// map[string]any, lists []any and boxed scalars their inner value. Template
// engines and encoders that know nothing about this package consume it.
func Plain(v any) any {
	switch typed := v.(type) {
	case *Object:
		if typed == nil {
			return nil
		}
		out := make(map[string]any, len(typed.keys))
		for _, k := range typed.keys {
			out[k] = Plain(typed.values[k])
		}
		return out
	case *List:
		if typed == nil {
			return nil
		}
		out := make([]any, len(typed.Items))
		for i, item := range typed.Items {
			out[i] = Plain(item)
		}
		return out
	case *Boxed:
		if typed == nil {
			return nil
		}
		return Plain(typed.Value)
	}
	return v
}
