package scheduler

import (
	btx "github.com/comalice/behaviortreex"
)

// chain runs children one at a time through the scheduler. The composite
// itself only waits: each child is started with a continuation that either
// ends the composite or starts the next child.
type chain struct {
	btx.Composite
	sched   *Scheduler
	self    btx.Behavior
	halt    btx.Status
	current int
}

func (c *chain) OnActivate() {
	c.MustHaveChildren()
	c.current = 0
	c.sched.Start(c.Child(0), c.onChildComplete)
}

// Decide always reports Running; termination comes from onChildComplete.
func (c *chain) Decide() btx.Status {
	return btx.Running
}

func (c *chain) OnDeactivate(btx.Status) {
	if c.current < c.Len() {
		if child := c.Child(c.current); c.sched.Scheduled(child) {
			c.sched.Stop(child, btx.Aborted)
		}
	}
}

func (c *chain) onChildComplete(status btx.Status) {
	switch status {
	case btx.Aborted:
		// Stopped by OnDeactivate.
		return
	case c.halt:
		c.sched.Stop(c.self, c.halt)
		return
	}
	c.current++
	if c.current == c.Len() {
		c.sched.Stop(c.self, opposite(c.halt))
		return
	}
	c.sched.Start(c.Child(c.current), c.onChildComplete)
}

func opposite(s btx.Status) btx.Status {
	if s == btx.Failure {
		return btx.Success
	}
	return btx.Failure
}

// Sequence is the cooperative counterpart of behaviortreex.Sequence. It must
// itself be run by the scheduler it was created with.
type Sequence struct {
	chain
}

func NewSequence(s *Scheduler, children ...btx.Behavior) *Sequence {
	seq := &Sequence{chain: chain{sched: s, halt: btx.Failure}}
	seq.self = seq
	seq.Init(&seq.chain)
	for _, child := range children {
		seq.AddChild(child)
	}
	return seq
}

// Selector is the cooperative counterpart of behaviortreex.Selector.
type Selector struct {
	chain
}

func NewSelector(s *Scheduler, children ...btx.Behavior) *Selector {
	sel := &Selector{chain: chain{sched: s, halt: btx.Success}}
	sel.self = sel
	sel.Init(&sel.chain)
	for _, child := range children {
		sel.AddChild(child)
	}
	return sel
}
