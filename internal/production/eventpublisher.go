package production

import (
	"time"

	btx "github.com/comalice/behaviortreex"
	"github.com/comalice/behaviortreex/scheduler"
)

type EventKind string

const (
	EventStarted    EventKind = "started"
	EventTerminated EventKind = "terminated"
	EventRound      EventKind = "round"
)

// PublishedEvent is one scheduler notification.
type PublishedEvent struct {
	Kind     EventKind
	Behavior string     // empty for rounds
	Status   btx.Status // terminal status for EventTerminated
	Round    uint64     // completed rounds for EventRound
	Steps    int
	Time     time.Time
}

// ChannelPublisher is a scheduler.Observer forwarding notifications to a
// channel. Publishing never blocks the scheduler: events are dropped while
// the channel is full.
type ChannelPublisher struct {
	ch      chan<- PublishedEvent
	dropped uint64
}

var _ scheduler.Observer = (*ChannelPublisher)(nil)

func NewChannelPublisher(ch chan<- PublishedEvent) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Started(b btx.Behavior) {
	p.publish(PublishedEvent{Kind: EventStarted, Behavior: nameOf(b)})
}

func (p *ChannelPublisher) Terminated(b btx.Behavior, status btx.Status) {
	p.publish(PublishedEvent{Kind: EventTerminated, Behavior: nameOf(b), Status: status})
}

func (p *ChannelPublisher) RoundComplete(round uint64, steps int) {
	p.publish(PublishedEvent{Kind: EventRound, Round: round, Steps: steps})
}

// Dropped returns the number of events lost to backpressure.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped
}

func (p *ChannelPublisher) publish(ev PublishedEvent) {
	ev.Time = time.Now()
	select {
	case p.ch <- ev:
	default:
		p.dropped++
	}
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
