package scheduler

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/rs/zerolog"

	btx "github.com/comalice/behaviortreex"
)

var (
	ErrAlreadyScheduled = errors.New("behavior already scheduled")
	ErrNotScheduled     = errors.New("behavior not scheduled")
	ErrReentrantStop    = errors.New("stop of the behavior being ticked")
)

// Continuation runs synchronously when a scheduled behavior terminates,
// carrying its final status. It may call Start and Stop.
type Continuation func(status btx.Status)

// Observer receives scheduling notifications. Implementations must not call
// back into the scheduler. RoundComplete gets the number of entries ticked in
// the round.
type Observer interface {
	Started(b btx.Behavior)
	Terminated(b btx.Behavior, status btx.Status)
	RoundComplete(round uint64, steps int)
}

// Option applies configuration to a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for debug tracing. The default discards.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithObserver registers an Observer. Observers are notified in
// registration order.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		s.observers = append(s.observers, o)
	}
}

// entry is one queued behavior. Stopped entries stay in the deque until
// popped and are skipped then.
type entry struct {
	behavior btx.Behavior
	cont     Continuation
	stopped  bool
}

// endOfRound is pushed at the back by every Tick and marks where it stops.
var endOfRound = &entry{}

// Scheduler ticks independently started behaviors through a double-ended
// work queue. A behavior is in the queue at most once. Exactly one entry
// executes at a time and none is ticked twice within one round.
type Scheduler struct {
	queue     *doublylinkedlist.List
	index     map[btx.Behavior]*entry
	current   *entry
	round     uint64
	logger    zerolog.Logger
	observers []Observer
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		queue:  doublylinkedlist.New(),
		index:  make(map[btx.Behavior]*entry),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start queues b at the front so it runs before sibling work already queued
// in the current round. cont may be nil.
func (s *Scheduler) Start(b btx.Behavior, cont Continuation) {
	if b == nil {
		btx.Fault(btx.ErrNilBehavior, "start nil behavior")
	}
	if _, ok := s.index[b]; ok {
		btx.Fault(ErrAlreadyScheduled, "start %T", b)
	}
	e := &entry{behavior: b, cont: cont}
	s.index[b] = e
	s.queue.Prepend(e)
	s.logger.Debug().Uint64("round", s.round).Str("behavior", fmt.Sprintf("%T", b)).Msg("start")
	for _, o := range s.observers {
		o.Started(b)
	}
}

// Stop force-terminates a scheduled behavior owned by the caller and fires
// its continuation synchronously. A running behavior is deactivated with
// status; one that was never ticked is dropped without lifecycle hooks.
func (s *Scheduler) Stop(b btx.Behavior, status btx.Status) {
	if !status.Terminal() {
		btx.Fault(btx.ErrInvalidStatus, "stop with %s", status)
	}
	e, ok := s.index[b]
	if !ok {
		btx.Fault(ErrNotScheduled, "stop %T", b)
	}
	if e == s.current {
		btx.Fault(ErrReentrantStop, "stop %T", b)
	}
	delete(s.index, b)
	e.stopped = true
	if b.Status() == btx.Running {
		b.Terminate(status)
	}
	s.logger.Debug().Uint64("round", s.round).Str("behavior", fmt.Sprintf("%T", b)).Stringer("status", status).Msg("stop")
	s.terminated(e, status)
}

// Scheduled reports whether b is queued.
func (s *Scheduler) Scheduled(b btx.Behavior) bool {
	_, ok := s.index[b]
	return ok
}

// Len returns the number of queued behaviors.
func (s *Scheduler) Len() int {
	return len(s.index)
}

// Round returns the number of completed Tick calls.
func (s *Scheduler) Round() uint64 {
	return s.round
}

// Tick runs one round. Every entry queued before the round starts is visited
// once; entries started by continuations during the round are queued ahead
// of the end marker and also run in this round. Running entries move behind
// the marker for the next round.
func (s *Scheduler) Tick() {
	s.queue.Append(endOfRound)
	steps := 0
	for {
		more, ticked := s.step()
		if !more {
			break
		}
		if ticked {
			steps++
		}
	}
	s.round++
	s.logger.Debug().Uint64("round", s.round).Int("steps", steps).Int("queued", len(s.index)).Msg("round complete")
	for _, o := range s.observers {
		o.RoundComplete(s.round, steps)
	}
}

// step pops and runs the front entry. more is false at the end marker;
// ticked is false for stopped entries, which are discarded.
func (s *Scheduler) step() (more, ticked bool) {
	v, _ := s.queue.Get(0)
	s.queue.Remove(0)
	e := v.(*entry)
	if e == endOfRound {
		return false, false
	}
	if e.stopped {
		return true, false
	}

	s.current = e
	status := e.behavior.Tick()
	s.current = nil

	if status == btx.Running {
		s.queue.Append(e)
		return true, true
	}
	delete(s.index, e.behavior)
	s.terminated(e, status)
	return true, true
}

func (s *Scheduler) terminated(e *entry, status btx.Status) {
	for _, o := range s.observers {
		o.Terminated(e.behavior, status)
	}
	if e.cont != nil {
		e.cont(status)
	}
}
