package behaviortreex

// Repeat runs its child to success a fixed number of times. Each completed
// iteration resets the child and loops again within the same tick, so the
// loop is bounded by the count and by the child reaching a terminal result.
// A child failure fails the repeat.
type Repeat struct {
	Node
	child Behavior
	limit int
	count int
}

// NewRepeat returns a decorator running child to success count times.
func NewRepeat(child Behavior, count int) *Repeat {
	if child == nil {
		Fault(ErrNilBehavior, "repeat of nil child")
	}
	if count < 1 {
		Fault(ErrInvalidCount, "repeat count %d", count)
	}
	r := &Repeat{child: child, limit: count}
	r.Init(r)
	return r
}

// Children returns the decorated child.
func (r *Repeat) Children() []Behavior {
	return []Behavior{r.child}
}

// Count returns the iterations completed in the current activation.
func (r *Repeat) Count() int {
	return r.count
}

func (r *Repeat) OnActivate() {
	r.count = 0
}

func (r *Repeat) Decide() Status {
	for {
		switch r.child.Tick() {
		case Running:
			return Running
		case Failure:
			return Failure
		}
		r.count++
		if r.count == r.limit {
			return Success
		}
		r.child.Reset()
	}
}

func (r *Repeat) OnDeactivate(status Status) {
	if status == Aborted {
		abortRunning(r.child)
	}
}
