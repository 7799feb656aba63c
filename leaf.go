package behaviortreex

// Action is a leaf whose decision is a plain function.
type Action struct {
	Node
	fn func() Status
}

// NewAction returns an action leaf deciding with fn.
func NewAction(fn func() Status) *Action {
	if fn == nil {
		Fault(ErrNilBehavior, "action with nil func")
	}
	a := &Action{fn: fn}
	a.Init(a)
	return a
}

// Decide returns the result of fn.
func (a *Action) Decide() Status {
	return a.fn()
}

// Condition is a leaf that succeeds when its predicate holds and fails
// otherwise. It never reports Running.
type Condition struct {
	Node
	fn func() bool
}

// NewCondition returns a condition leaf testing fn.
func NewCondition(fn func() bool) *Condition {
	if fn == nil {
		Fault(ErrNilBehavior, "condition with nil func")
	}
	c := &Condition{fn: fn}
	c.Init(c)
	return c
}

// Decide maps the predicate to Success or Failure.
func (c *Condition) Decide() Status {
	if c.fn() {
		return Success
	}
	return Failure
}
