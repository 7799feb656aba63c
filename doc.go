// Package behaviortreex is a behavior tree engine for agent decision logic.
//
// Small reusable nodes are composed into trees that are ticked repeatedly,
// each tick producing an incremental decision without blocking.
//
// # Lifecycle
//
// Every node stores a Status. Tick calls OnActivate when the stored status is
// not Running, then Decide, and OnDeactivate once Decide returns anything but
// Running. Abort ends a running activation with Aborted without deciding.
// OnActivate and OnDeactivate are paired exactly once per activation.
//
// Node kinds embed Node and bind themselves with Init:
//
//	type Patrol struct {
//		behaviortreex.Node
//		waypoint int
//	}
//
//	func NewPatrol() *Patrol {
//		p := &Patrol{}
//		p.Init(p)
//		return p
//	}
//
//	func (p *Patrol) OnActivate()       { p.waypoint = 0 }
//	func (p *Patrol) Decide() behaviortreex.Status { ... }
//
// # Composites
//
//   - Sequence: children in order until one fails or keeps running
//   - Selector: children in order until one does not fail
//   - Parallel: every child each tick, joined by success and failure policies
//   - Repeat: a child run to success a fixed number of times
//   - Monitor: a Parallel whose conditions come before its actions
//   - Filter: a Sequence whose conditions come before its actions
//   - ActiveSelector: a Selector re-arbitrating priorities every tick
//
// # Execution Models
//
// Composites in this package tick their children by synchronous recursion.
// Package scheduler runs the cooperative, event-driven model in which
// composites start children on a work queue and resume through
// continuations. Package arena lays a tree out in one fixed-capacity block
// addressed by relative offsets, and package shared separates immutable
// node definitions from per-activation task state.
//
// # Faults
//
// Contract violations such as ticking an empty composite or aborting a node
// that is not running panic through Fault with an error wrapping one of the
// Err sentinels. Failure is an ordinary result and is never a fault.
//
// The engine is single-threaded. A tree must not be ticked from more than one
// goroutine.
package behaviortreex
