package testutil

import (
	btx "github.com/comalice/behaviortreex"
	"github.com/comalice/behaviortreex/scheduler"
)

// Runtime drives a root behavior under one execution model. This allows
// running the same test suite on both models.
type Runtime interface {
	// Tick advances the model by one external tick and returns the root's
	// status afterwards.
	Tick() btx.Status
	Root() btx.Behavior
}

// SyncRuntime ticks the root by synchronous recursion.
type SyncRuntime struct {
	root btx.Behavior
}

func NewSyncRuntime(root btx.Behavior) *SyncRuntime {
	return &SyncRuntime{root: root}
}

func (r *SyncRuntime) Tick() btx.Status {
	return r.root.Tick()
}

func (r *SyncRuntime) Root() btx.Behavior {
	return r.root
}

// CooperativeRuntime runs the root on a scheduler, restarting it on the next
// tick after it terminated, as the synchronous model reactivates it.
type CooperativeRuntime struct {
	Scheduler *scheduler.Scheduler
	root      btx.Behavior
	final     btx.Status
}

func NewCooperativeRuntime(s *scheduler.Scheduler, root btx.Behavior) *CooperativeRuntime {
	return &CooperativeRuntime{Scheduler: s, root: root}
}

func (r *CooperativeRuntime) Tick() btx.Status {
	if !r.Scheduler.Scheduled(r.root) {
		r.final = btx.Invalid
		r.Scheduler.Start(r.root, func(status btx.Status) {
			r.final = status
		})
	}
	r.Scheduler.Tick()
	if r.Scheduler.Scheduled(r.root) {
		return btx.Running
	}
	return r.final
}

func (r *CooperativeRuntime) Root() btx.Behavior {
	return r.root
}

// Model builds composites for one execution model.
type Model struct {
	Name        string
	NewSequence func(children ...btx.Behavior) Runtime
	NewSelector func(children ...btx.Behavior) Runtime
	NewParallel func(success, failure btx.Policy, children ...btx.Behavior) Runtime
}

// Models returns the synchronous and the cooperative model.
func Models() []Model {
	return []Model{
		{
			Name: "sync",
			NewSequence: func(children ...btx.Behavior) Runtime {
				return NewSyncRuntime(btx.NewSequence(children...))
			},
			NewSelector: func(children ...btx.Behavior) Runtime {
				return NewSyncRuntime(btx.NewSelector(children...))
			},
			NewParallel: func(success, failure btx.Policy, children ...btx.Behavior) Runtime {
				return NewSyncRuntime(btx.NewParallel(success, failure, children...))
			},
		},
		{
			Name: "cooperative",
			NewSequence: func(children ...btx.Behavior) Runtime {
				s := scheduler.New()
				return NewCooperativeRuntime(s, scheduler.NewSequence(s, children...))
			},
			NewSelector: func(children ...btx.Behavior) Runtime {
				s := scheduler.New()
				return NewCooperativeRuntime(s, scheduler.NewSelector(s, children...))
			},
			NewParallel: func(success, failure btx.Policy, children ...btx.Behavior) Runtime {
				s := scheduler.New()
				return NewCooperativeRuntime(s, scheduler.NewParallel(s, success, failure, children...))
			},
		},
	}
}
