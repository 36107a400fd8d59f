// Package model normalises application data into the shapes the binding
// engine iterates and links views to.
//
// Mappings become *Object (ordered keys), sequences become *List and scalars
// are boxed into *Boxed once they are iterated, so every model the engine
// touches has pointer identity. The special properties templates rely on
// (`#`, `length`, `size` and `$` on lists, `$` on numbers) are answered by
// Property rather than by extending built-in types.
package model
