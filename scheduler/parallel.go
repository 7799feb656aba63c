package scheduler

import (
	btx "github.com/comalice/behaviortreex"
)

// Parallel is the cooperative counterpart of behaviortreex.Parallel.
// Activation starts every child on the scheduler; each child continuation
// records the result and applies the policies:
//
//   - a RequireOne policy ends the parallel as soon as one child reaches its
//     result
//   - a RequireAll policy ends it once every child has terminated with that
//     result, failure checked before success
//
// Ending the parallel stops every child still scheduled.
type Parallel struct {
	btx.Composite
	sched   *Scheduler
	success btx.Policy
	failure btx.Policy
	results []btx.Status
	conts   []Continuation
	done    bool
}

func NewParallel(s *Scheduler, success, failure btx.Policy, children ...btx.Behavior) *Parallel {
	p := &Parallel{sched: s, success: success, failure: failure}
	p.Init(p)
	for _, child := range children {
		p.AddChild(child)
	}
	return p
}

func (p *Parallel) OnActivate() {
	p.MustHaveChildren()
	n := p.Len()
	if len(p.conts) != n {
		p.results = make([]btx.Status, n)
		p.conts = make([]Continuation, n)
		for i := range p.conts {
			p.conts[i] = p.childComplete(i)
		}
	}
	for i := range p.results {
		p.results[i] = btx.Invalid
	}
	p.done = false
	// Start pushes to the front, so go backwards to run children in order.
	for i := n - 1; i >= 0; i-- {
		p.sched.Start(p.Child(i), p.conts[i])
	}
}

func (p *Parallel) Decide() btx.Status {
	return btx.Running
}

func (p *Parallel) OnDeactivate(btx.Status) {
	p.done = true
	for _, child := range p.Children() {
		if p.sched.Scheduled(child) {
			p.sched.Stop(child, btx.Aborted)
		}
	}
}

func (p *Parallel) childComplete(i int) Continuation {
	return func(status btx.Status) {
		if p.done || status == btx.Aborted {
			return
		}
		p.results[i] = status
		if status == btx.Success && p.success == btx.RequireOne {
			p.finish(btx.Success)
			return
		}
		if status == btx.Failure && p.failure == btx.RequireOne {
			p.finish(btx.Failure)
			return
		}
		var succeeded, failed int
		for _, r := range p.results {
			switch r {
			case btx.Success:
				succeeded++
			case btx.Failure:
				failed++
			}
		}
		n := len(p.results)
		if p.failure == btx.RequireAll && failed == n {
			p.finish(btx.Failure)
			return
		}
		if p.success == btx.RequireAll && succeeded == n {
			p.finish(btx.Success)
		}
	}
}

func (p *Parallel) finish(status btx.Status) {
	p.done = true
	p.sched.Stop(p, status)
}
