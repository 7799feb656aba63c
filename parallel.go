package behaviortreex

// Policy decides how many children must reach a result before a Parallel
// adopts it.
type Policy uint8

const (
	RequireOne Policy = iota
	RequireAll
)

func (p Policy) String() string {
	if p == RequireAll {
		return "require-all"
	}
	return "require-one"
}

// Parallel ticks every child that has not yet terminated on each of its own
// ticks. Terminal children keep their last result and are skipped.
//
// With RequireOne the first child reaching the result decides the parallel
// immediately. With RequireAll the result is adopted only after a full scan
// in which every child reached it; failure is checked before success.
// Otherwise the parallel keeps running.
type Parallel struct {
	Composite
	success Policy
	failure Policy
	results []Status
}

// NewParallel returns a parallel over children joined by the given policies.
func NewParallel(success, failure Policy, children ...Behavior) *Parallel {
	p := &Parallel{success: success, failure: failure}
	p.Init(p)
	for _, child := range children {
		p.AddChild(child)
	}
	return p
}

func (p *Parallel) SuccessPolicy() Policy { return p.success }
func (p *Parallel) FailurePolicy() Policy { return p.failure }

func (p *Parallel) OnActivate() {
	p.MustHaveChildren()
	if cap(p.results) < len(p.children) {
		p.results = make([]Status, len(p.children))
	}
	p.results = p.results[:len(p.children)]
	for i := range p.results {
		p.results[i] = Invalid
	}
}

// Decide ticks every child not yet terminal and applies the policies.
func (p *Parallel) Decide() Status {
	var succeeded, failed int
	for i, child := range p.children {
		status := p.results[i]
		if !status.Terminal() {
			status = child.Tick()
			p.results[i] = status
			if status == Success && p.success == RequireOne {
				return Success
			}
			if status == Failure && p.failure == RequireOne {
				return Failure
			}
		}
		switch status {
		case Success:
			succeeded++
		case Failure:
			failed++
		}
	}
	if p.failure == RequireAll && failed == len(p.children) {
		return Failure
	}
	if p.success == RequireAll && succeeded == len(p.children) {
		return Success
	}
	return Running
}

// OnDeactivate aborts every child still running so none outlives the parallel.
func (p *Parallel) OnDeactivate(Status) {
	for _, child := range p.children {
		abortRunning(child)
	}
}

// Monitor is a Parallel that fails or succeeds as soon as any child does.
// Conditions are kept ahead of actions so they get the first chance to end
// the group.
type Monitor struct {
	Parallel
}

// NewMonitor returns an empty monitor.
func NewMonitor() *Monitor {
	m := &Monitor{Parallel: Parallel{success: RequireOne, failure: RequireOne}}
	m.Init(&m.Parallel)
	return m
}

// AddCondition inserts b ahead of every existing child.
func (m *Monitor) AddCondition(b Behavior) {
	m.insertChild(b)
}

// AddAction appends b after every existing child.
func (m *Monitor) AddAction(b Behavior) {
	m.AddChild(b)
}
