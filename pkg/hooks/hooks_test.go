package hooks_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-callout/pkg/hooks"
	"github.com/goliatone/go-callout/pkg/model"
)

func TestRegistryRegisterAndResolve(t *testing.T) {
	t.Parallel()

	reg := hooks.NewRegistry()
	reg.MustRegister("skip", hooks.Stop)
	reg.MustRegister("keep", hooks.Continue)

	if err := reg.Register("skip", hooks.Continue); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register("  ", hooks.Continue); err == nil {
		t.Fatalf("expected empty name error")
	}

	h, err := reg.Resolve(" skip ")
	if err != nil {
		t.Fatalf("resolve skip: %v", err)
	}
	if h(hooks.Event{}) {
		t.Fatalf("skip handler should veto")
	}

	if _, err := reg.Resolve("missing"); !errors.Is(err, hooks.ErrUnknownHandler) {
		t.Fatalf("expected ErrUnknownHandler, got %v", err)
	}
	if diff := cmp.Diff([]string{"keep", "skip"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("keep") || reg.Has("other") {
		t.Fatalf("Has reported wrong membership")
	}
}

func TestCompilerVetoesOnFalse(t *testing.T) {
	t.Parallel()

	c, err := hooks.NewCompiler()
	if err != nil {
		t.Fatalf("new compiler: %v", err)
	}
	h, err := c.Resolve(`{% if model.hidden %}false{% endif %}`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if h(hooks.Event{Hook: hooks.Pre, Model: model.ObjectOf("hidden", true)}) {
		t.Fatalf("hidden model should be vetoed")
	}
	if !h(hooks.Event{Hook: hooks.Pre, Model: model.ObjectOf("hidden", false)}) {
		t.Fatalf("visible model should pass")
	}
}

func TestCompilerSeesIndexAndGlobals(t *testing.T) {
	t.Parallel()

	c, err := hooks.NewCompiler(hooks.WithGlobals(map[string]any{"limit": 2}))
	if err != nil {
		t.Fatalf("new compiler: %v", err)
	}
	h, err := c.Resolve(`{% if n >= limit %}FALSE{% endif %}`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	var kept []int
	for n := 0; n < 4; n++ {
		if h(hooks.Event{N: n}) {
			kept = append(kept, n)
		}
	}
	if diff := cmp.Diff([]int{0, 1}, kept); diff != "" {
		t.Fatalf("kept mismatch (-want +got):\n%s", diff)
	}
}

func TestCompilerRejectsBadSource(t *testing.T) {
	t.Parallel()

	c, err := hooks.NewCompiler()
	if err != nil {
		t.Fatalf("new compiler: %v", err)
	}
	if _, err := c.Resolve(`{% if %}`); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := c.Resolve(`{% include "x.html" %}`); err == nil {
		t.Fatalf("expected banned tag error")
	}
}

func TestChainFallsThrough(t *testing.T) {
	t.Parallel()

	reg := hooks.NewRegistry()
	reg.MustRegister("named", hooks.Stop)
	c, err := hooks.NewCompiler()
	if err != nil {
		t.Fatalf("new compiler: %v", err)
	}
	chain := hooks.Chain{reg, c}

	h, err := chain.Resolve("named")
	if err != nil {
		t.Fatalf("resolve named: %v", err)
	}
	if h(hooks.Event{}) {
		t.Fatalf("registry handler should win")
	}

	h, err = chain.Resolve("{{ n }}")
	if err != nil {
		t.Fatalf("resolve expression: %v", err)
	}
	if !h(hooks.Event{N: 3}) {
		t.Fatalf("expression rendering 3 should not veto")
	}

	if _, err := (hooks.Chain{}).Resolve("x"); !errors.Is(err, hooks.ErrUnknownHandler) {
		t.Fatalf("empty chain should report ErrUnknownHandler, got %v", err)
	}
}
