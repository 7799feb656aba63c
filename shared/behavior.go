// Package shared separates immutable, shareable node definitions from the
// per-activation state that runs them.
//
// A Node is a definition that can be used by any number of trees at once. It
// only knows how to Create a Task, which holds the state of one run, and how
// to Destroy it. A Behavior binds a Node for the duration of a setup and runs
// the standard lifecycle on the Task.
//
//	patrol := shared.NewSequence(goTo, lookAround)
//	guard1, guard2 := shared.NewBehavior(patrol), shared.NewBehavior(patrol)
package shared

import (
	"errors"

	btx "github.com/comalice/behaviortreex"
)

var (
	ErrTeardownRunning = errors.New("teardown of running behavior")
	ErrNoTask          = errors.New("behavior has no task")
)

// Task is the state of one run of a Node. It may implement
// behaviortreex.Activator and behaviortreex.Deactivator.
type Task interface {
	btx.Decider
}

// Node is an immutable behavior definition.
type Node interface {
	Create() Task
	Destroy(Task)
}

// Behavior runs the Task of the Node it is set up with.
type Behavior struct {
	btx.Node
	node Node
	task Task
}

var _ btx.Behavior = (*Behavior)(nil)

// NewBehavior returns a Behavior set up with n, or an empty one when n is
// nil.
func NewBehavior(n Node) *Behavior {
	b := &Behavior{}
	b.Init(b)
	if n != nil {
		b.Setup(n)
	}
	return b
}

// Setup releases the current task and creates a new one from n. The status
// goes back to Invalid.
func (b *Behavior) Setup(n Node) {
	if n == nil {
		btx.Fault(btx.ErrNilBehavior, "setup with nil node")
	}
	b.Teardown()
	b.node = n
	b.task = n.Create()
	b.Reset()
}

// Teardown returns the task to its node. It faults while the behavior is
// Running.
func (b *Behavior) Teardown() {
	if b.task == nil {
		return
	}
	if b.Status() == btx.Running {
		btx.Fault(ErrTeardownRunning, "teardown of %T", b.task)
	}
	b.node.Destroy(b.task)
	b.task = nil
	b.node = nil
}

// Task returns the current task, nil before Setup or after Teardown.
func (b *Behavior) Task() Task {
	return b.task
}

func (b *Behavior) OnActivate() {
	if b.task == nil {
		btx.Fault(ErrNoTask, "tick without setup")
	}
	if a, ok := b.task.(btx.Activator); ok {
		a.OnActivate()
	}
}

func (b *Behavior) Decide() btx.Status {
	return b.task.Decide()
}

func (b *Behavior) OnDeactivate(status btx.Status) {
	if d, ok := b.task.(btx.Deactivator); ok {
		d.OnDeactivate(status)
	}
}
