package engine

import (
	"github.com/goliatone/go-callout/pkg/dom"
	"github.com/goliatone/go-callout/pkg/model"
	"github.com/goliatone/go-callout/pkg/scope"
)

// Notify tells every view rendered from m that m changed and returns how
// many views were notified. Views without an OnChange handler are
// regenerated.
func (e *Engine) Notify(m any) int {
	views := e.ViewsOf(m)
	for _, view := range views {
		if view.OnChange != nil {
			view.OnChange(view)
			continue
		}
		e.Regenerate(view)
	}
	return len(views)
}

// Regenerate re-renders old from its template, model and remembered
// context and swaps the result into old's place. It returns nil when the
// new rendering is vetoed, in which case old is removed from the tree.
//
// The remembered context is reused with fresh caches, so ancestor frames
// still see the models they held when old was created.
func (e *Engine) Regenerate(old *Instance) *Instance {
	if old == nil || old.Template == nil {
		return nil
	}
	e.unlink(old.Model, old)

	ctx := old.Context.Fresh()
	if ctx.IsEmpty() {
		ctx = scope.Empty()
	}
	explicit := old.explicit
	if name := old.Template.BindingName(); name != "" {
		explicit = explicit.With(name, model.Unbox(old.Model))
	}

	fresh := e.instantiateOnce(old.Template, old.Model, ctx, explicit, old.Collection, old.N)
	attached := old.Attached()
	if fresh == nil {
		e.logger.Debug("regeneration vetoed", "template", old.Template.BindingName(), "n", old.N)
		if attached {
			dom.Detach(old.Node)
		}
		e.discard(old)
		return nil
	}

	fresh.parent = old.parent
	if attached {
		if old.revealed {
			Reveal(fresh.Node)
			fresh.revealed = true
		}
		dom.Replace(old.Node, fresh.Node)
	}
	e.discard(old)
	e.runLoad([]*Instance{fresh})
	return fresh
}
