package model_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-callout/pkg/model"
	"github.com/goliatone/go-callout/pkg/plural"
)

type article struct {
	Title  string   `json:"title"`
	Tags   []string `json:"tags,omitempty"`
	Hidden string   `json:"-"`
	Draft  bool
	secret string
}

func TestFromNormalisesNestedValues(t *testing.T) {
	t.Parallel()

	got := model.From(map[string]any{
		"b":     2,
		"a":     []any{"x", map[string]any{"k": true}},
		"bytes": []byte("raw"),
	})

	obj, ok := got.(*model.Object)
	if !ok {
		t.Fatalf("expected *model.Object, got %T", got)
	}
	if diff := cmp.Diff([]string{"a", "b", "bytes"}, obj.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	list, ok := model.Property(obj, "a").(*model.List)
	if !ok || list.Len() != 2 {
		t.Fatalf("expected two-item list, got %#v", model.Property(obj, "a"))
	}
	if _, ok := list.Items[1].(*model.Object); !ok {
		t.Fatalf("nested map should be an object, got %T", list.Items[1])
	}
	if got := model.Property(obj, "bytes"); got != "raw" {
		t.Fatalf("bytes = %#v, want raw", got)
	}
}

func TestFromStructHonoursJSONTags(t *testing.T) {
	t.Parallel()

	obj := model.From(&article{Title: "Hello", Tags: []string{"go"}, Hidden: "no", Draft: true, secret: "s"}).(*model.Object)

	if diff := cmp.Diff([]string{"title", "tags", "Draft"}, obj.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if got := model.Property(model.Property(obj, "tags"), "0"); got != "go" {
		t.Fatalf("tags.0 = %#v, want go", got)
	}
}

func TestObjectSetDeleteKeepsOrder(t *testing.T) {
	t.Parallel()

	obj := model.ObjectOf("z", 1, "a", 2, "m", 3)
	obj.Delete("a")
	obj.Set("a", 4)

	if diff := cmp.Diff([]string{"z", "m", "a"}, obj.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestListSpecialProperties(t *testing.T) {
	t.Parallel()

	list := model.NewList("a", "b", "c")
	for _, name := range []string{"#", "length", "size"} {
		if got := model.Property(list, name); got != 3 {
			t.Fatalf("%s = %#v, want 3", name, got)
		}
	}
	if got := model.Property(list, "$"); got != "s" {
		t.Fatalf("$ = %#v, want s", got)
	}
	if got := model.Property(model.NewList("only"), "$"); got != "" {
		t.Fatalf("$ for one item = %#v, want empty", got)
	}
	if got := model.Property(1, "$"); got != "" {
		t.Fatalf("number $ = %#v, want empty", got)
	}
	if got := model.Property(&model.Boxed{Value: "héllo"}, "length"); got != 5 {
		t.Fatalf("boxed length = %#v, want 5", got)
	}

	custom := model.Accessor{Plural: plural.Func(func(n int) string { return "en" })}
	if got := custom.Property(list, "$"); got != "en" {
		t.Fatalf("custom $ = %#v, want en", got)
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	falsy := []any{nil, false, 0, int64(0), 0.0, math.NaN(), ""}
	for _, v := range falsy {
		if model.Truthy(v) {
			t.Fatalf("Truthy(%#v) = true, want false", v)
		}
	}
	truthy := []any{true, 1, "x", model.NewObject(), model.NewList(), &model.Boxed{Value: false}}
	for _, v := range truthy {
		if !model.Truthy(v) {
			t.Fatalf("Truthy(%#v) = false, want true", v)
		}
	}
}

func TestStringify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{1.5, "1.5"},
		{float64(3), "3"},
		{42, "42"},
		{true, "true"},
		{&model.Boxed{Value: 7}, "7"},
		{model.NewList(1, nil, "b"), "1,,b"},
		{model.NewObject(), ""},
	}
	for _, tc := range cases {
		if got := model.Stringify(tc.in); got != tc.want {
			t.Fatalf("Stringify(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBoxAndSort(t *testing.T) {
	t.Parallel()

	boxed, ok := model.Box("x")
	if !ok {
		t.Fatalf("expected string to box")
	}
	if got := model.Unbox(boxed); got != "x" {
		t.Fatalf("Unbox = %#v, want x", got)
	}
	if _, ok := model.Box(model.NewObject()); ok {
		t.Fatalf("objects must not be boxed")
	}

	list := model.NewList("pear", "apple", "fig")
	model.Sort(list)
	if diff := cmp.Diff([]any{"apple", "fig", "pear"}, list.Items); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainUnwrapsModelValues(t *testing.T) {
	t.Parallel()

	boxed, _ := model.Box("x")
	in := model.ObjectOf(
		"name", "doc",
		"items", model.NewList(boxed, int64(2), model.ObjectOf("k", true)),
	)

	want := map[string]any{
		"name":  "doc",
		"items": []any{"x", int64(2), map[string]any{"k": true}},
	}
	if diff := cmp.Diff(want, model.Plain(in)); diff != "" {
		t.Fatalf("Plain mismatch (-want +got):\n%s", diff)
	}
	if got := model.Plain(nil); got != nil {
		t.Fatalf("Plain(nil) = %v", got)
	}
}
