package behaviortreex

// Selector is the dual of Sequence: it stops at the first child that does
// not fail and propagates that result, failing only once every child failed.
type Selector struct {
	Composite
	current int
}

// NewSelector returns a selector over children, in priority order.
func NewSelector(children ...Behavior) *Selector {
	s := &Selector{}
	s.Init(s)
	for _, child := range children {
		s.AddChild(child)
	}
	return s
}

// OnActivate rewinds the cursor to the first child.
func (s *Selector) OnActivate() {
	s.MustHaveChildren()
	s.current = 0
}

// Decide ticks children from the cursor until one does not fail.
func (s *Selector) Decide() Status {
	for {
		status := s.children[s.current].Tick()
		if status != Failure {
			return status
		}
		s.current++
		if s.current == len(s.children) {
			return Failure
		}
	}
}

// OnDeactivate aborts the current child when the selector is aborted.
func (s *Selector) OnDeactivate(status Status) {
	if status == Aborted && s.current < len(s.children) {
		abortRunning(s.children[s.current])
	}
}

// ActiveSelector re-evaluates its children from the first one on every tick,
// so a higher priority branch interrupts a lower priority one that is
// already running. The interrupted child is aborted.
type ActiveSelector struct {
	Selector
}

// NewActiveSelector returns an active selector over children, in priority
// order.
func NewActiveSelector(children ...Behavior) *ActiveSelector {
	s := &ActiveSelector{}
	s.Init(s)
	for _, child := range children {
		s.AddChild(child)
	}
	return s
}

func (s *ActiveSelector) OnActivate() {
	s.MustHaveChildren()
	// No child has run yet in this activation.
	s.current = len(s.children)
}

// Decide re-runs the selection from the first child and aborts the child
// that was running before if another one won.
func (s *ActiveSelector) Decide() Status {
	previous := s.current
	s.current = 0
	status := s.Selector.Decide()
	if previous < len(s.children) && previous != s.current {
		abortRunning(s.children[previous])
	}
	return status
}
