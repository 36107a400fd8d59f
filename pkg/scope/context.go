package scope

type link struct {
	frame *Frame
	next  *link
}

// Context is an ordered stack of frames, innermost first. The zero value is
// an empty context.
type Context struct {
	top   *link
	depth int
}

// NewContext returns a context holding only root.
func NewContext(root *Frame) Context {
	return Context{}.Push(root)
}

// Empty returns a context over a single frame with an empty model.
func Empty() Context {
	return NewContext(&Frame{})
}

// Push returns a new context with f as the innermost frame.
func (c Context) Push(f *Frame) Context {
	return Context{top: &link{frame: f, next: c.top}, depth: c.depth + 1}
}

// Pop returns the context without its innermost frame.
func (c Context) Pop() Context {
	if c.top == nil {
		return c
	}
	return Context{top: c.top.next, depth: c.depth - 1}
}

// Len is the number of frames.
func (c Context) Len() int {
	return c.depth
}

// IsEmpty reports whether the context has no frames.
func (c Context) IsEmpty() bool {
	return c.depth == 0
}

// Frame returns frame i counting outward from the innermost (0). Out of
// range indexes return nil.
func (c Context) Frame(i int) *Frame {
	if i < 0 {
		return nil
	}
	cur := c.top
	for ; cur != nil && i > 0; i-- {
		cur = cur.next
	}
	if cur == nil {
		return nil
	}
	return cur.frame
}

// Innermost returns frame 0.
func (c Context) Innermost() *Frame {
	if c.top == nil {
		return nil
	}
	return c.top.frame
}

// Root returns the outermost frame.
func (c Context) Root() *Frame {
	return c.Frame(c.depth - 1)
}

// Frames lists the frames innermost first.
func (c Context) Frames() []*Frame {
	out := make([]*Frame, 0, c.depth)
	for cur := c.top; cur != nil; cur = cur.next {
		out = append(out, cur.frame)
	}
	return out
}

// Truncate keeps only the n innermost frames.
func (c Context) Truncate(n int) Context {
	if n >= c.depth {
		return c
	}
	if n <= 0 {
		return Context{}
	}
	frames := c.Frames()[:n]
	var out Context
	for i := len(frames) - 1; i >= 0; i-- {
		out = out.Push(frames[i])
	}
	return out
}

// Fresh returns a context of copied frames whose caches are all empty.
func (c Context) Fresh() Context {
	frames := c.Frames()
	var out Context
	for i := len(frames) - 1; i >= 0; i-- {
		out = out.Push(frames[i].Copy())
	}
	return out
}
