// Package scheduler provides the cooperative, event-driven runtime for
// behaviortreex.
//
// The synchronous model expresses control flow as nested calls: a parent's
// Decide blocks on its child's Tick. Here every running behavior is an entry
// in one work queue instead, and composites express control flow as a chain
// of continuations, so behaviors can stay suspended across ticks without
// holding a call stack.
//
// # Example Usage
//
//	s := scheduler.New(scheduler.WithLogger(logger))
//	root := scheduler.NewSequence(s, moveTo, pickUp, moveBack)
//	s.Start(root, func(status behaviortreex.Status) {
//		log.Printf("done: %s", status)
//	})
//	for s.Scheduled(root) {
//		s.Tick()
//	}
//
// # Rounds
//
// Tick appends an end-of-round marker and pops entries until it reaches it:
//   - a running entry goes to the back, behind the marker, for the next round
//   - a terminated entry fires its continuation synchronously
//   - Start pushes to the front, so children started by a continuation run
//     before the marker, within the same Tick
//
// A behavior is queued at most once and ticked at most once per round.
//
// # Cancellation
//
// Stop is the only cancellation primitive. A coordinating parent uses it to
// force-terminate a child it owns; the child's continuation fires
// synchronously with the forced status. Composites ignore Aborted
// completions, which only come from their own Stop calls.
//
// # Runner
//
// Runner ticks a scheduler at a fixed rate on the calling goroutine until a
// root behavior terminates, the context ends or a tick limit is reached.
//
// Like the rest of the engine, a Scheduler is single-threaded: the queue is
// only touched from Start/Stop calls made before the first Tick or from
// inside tick-driven continuations.
package scheduler
