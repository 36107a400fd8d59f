// Package engine instantiates directive-annotated HTML templates against
// models.
//
// A template is any element carrying a foreach attribute:
//
//	<ul>
//	  <li class="template" foreach="item" in="items">@{item.label}@{,}</li>
//	</ul>
//
// Engine.Instantiate clones the template once per item of its collection,
// substitutes the `@{...}` references of each clone against a context of
// frames, recursively instantiates nested templates (and reapply stubs that
// re-enter an ancestor template) and appends the clones, stripped of their
// directives, next to the template.
//
// The engine remembers which views each model produced. After mutating a
// model, Notify regenerates its views in place.
package engine
