package behaviortreex

// Sequence ticks its children in order. A Failure or Running child result is
// propagated at once; the sequence succeeds once every child has succeeded.
// Within one activation an earlier child is never ticked again.
type Sequence struct {
	Composite
	current int
}

// NewSequence returns a sequence over children, in order.
func NewSequence(children ...Behavior) *Sequence {
	s := &Sequence{}
	s.Init(s)
	for _, child := range children {
		s.AddChild(child)
	}
	return s
}

// OnActivate rewinds the cursor to the first child.
func (s *Sequence) OnActivate() {
	s.MustHaveChildren()
	s.current = 0
}

// Decide ticks children from the cursor until one does not succeed.
func (s *Sequence) Decide() Status {
	for {
		status := s.children[s.current].Tick()
		if status != Success {
			return status
		}
		s.current++
		if s.current == len(s.children) {
			return Success
		}
	}
}

// OnDeactivate aborts the current child when the sequence is aborted.
func (s *Sequence) OnDeactivate(status Status) {
	if status == Aborted && s.current < len(s.children) {
		abortRunning(s.children[s.current])
	}
}

// Filter is a Sequence split into conditions, kept at the front, and actions,
// kept at the back. The actions only run while every condition holds.
type Filter struct {
	Sequence
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	f := &Filter{}
	f.Init(&f.Sequence)
	return f
}

// AddCondition inserts b ahead of every existing child.
func (f *Filter) AddCondition(b Behavior) {
	f.insertChild(b)
}

// AddAction appends b after every existing child.
func (f *Filter) AddAction(b Behavior) {
	f.AddChild(b)
}
