package behaviortreex

// Composite holds the ordered children of a composite node. Children may only
// be added before the composite's first tick; Reset does not lift that.
type Composite struct {
	Node
	children []Behavior
	started  bool
}

// AddChild appends b to the child list.
func (c *Composite) AddChild(b Behavior) {
	if b == nil {
		Fault(ErrNilBehavior, "add nil child")
	}
	if c.started {
		Fault(ErrAlreadyActive, "add child after first tick")
	}
	c.children = append(c.children, b)
}

// insertChild puts b at the front of the child list.
func (c *Composite) insertChild(b Behavior) {
	if b == nil {
		Fault(ErrNilBehavior, "insert nil child")
	}
	if c.started {
		Fault(ErrAlreadyActive, "insert child after first tick")
	}
	c.children = append([]Behavior{b}, c.children...)
}

// Child returns the child at index i.
func (c *Composite) Child(i int) Behavior {
	if i < 0 || i >= len(c.children) {
		Fault(ErrChildIndex, "child %d of %d", i, len(c.children))
	}
	return c.children[i]
}

// Children returns the child list. The slice must not be modified.
func (c *Composite) Children() []Behavior {
	return c.children
}

func (c *Composite) Len() int {
	return len(c.children)
}

// MustHaveChildren faults when the composite is empty and marks it started,
// closing the child list. Composite kinds call it on activation.
func (c *Composite) MustHaveChildren() {
	c.started = true
	if len(c.children) == 0 {
		Fault(ErrNoChildren, "activate empty composite")
	}
}

// abortRunning aborts b if it is still running.
func abortRunning(b Behavior) {
	if b.Status() == Running {
		b.Abort()
	}
}
