// Package interop bridges behaviortreex and github.com/joeycumines/go-behaviortree.
//
// A behaviortreex.Behavior can be mounted as a bt.Node inside a
// go-behaviortree tree, a bt.Node can be used as a leaf of a behaviortreex
// tree, and a Behavior can be driven by a bt.Ticker until it terminates.
//
// go-behaviortree has no Aborted or Invalid status and no activation hooks,
// so only Running, Success and Failure cross the bridge.
package interop

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	bt "github.com/joeycumines/go-behaviortree"

	btx "github.com/comalice/behaviortreex"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// Node exposes b as a go-behaviortree leaf. A fault raised while ticking b
// is recovered and returned as the tick error with a Failure status.
func Node(b btx.Behavior) bt.Node {
	if b == nil {
		btx.Fault(btx.ErrNilBehavior, "interop node of nil behavior")
	}
	return bt.New(func([]bt.Node) (bt.Status, error) {
		status, err := tick(b)
		if err != nil {
			return bt.Failure, err
		}
		return toBT(status)
	})
}

func tick(b btx.Behavior) (status btx.Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	return b.Tick(), nil
}

func toBT(s btx.Status) (bt.Status, error) {
	switch s {
	case btx.Running:
		return bt.Running, nil
	case btx.Success:
		return bt.Success, nil
	case btx.Failure:
		return bt.Failure, nil
	}
	return bt.Failure, fmt.Errorf("%s: %w", s, ErrUnexpectedStatus)
}

// Leaf runs a go-behaviortree node as a behaviortreex leaf. A tick error
// fails the leaf and is kept until the next activation.
type Leaf struct {
	btx.Node
	node bt.Node
	err  error
}

func NewLeaf(n bt.Node) *Leaf {
	if n == nil {
		btx.Fault(btx.ErrNilBehavior, "leaf of nil bt.Node")
	}
	l := &Leaf{node: n}
	l.Init(l)
	return l
}

// Err returns the error of the last tick in the current activation.
func (l *Leaf) Err() error {
	return l.err
}

func (l *Leaf) OnActivate() {
	l.err = nil
}

func (l *Leaf) Decide() btx.Status {
	tickFn, children := l.node()
	if tickFn == nil {
		l.err = errors.New("bt.Node has no tick")
		return btx.Failure
	}
	status, err := tickFn(children)
	if err != nil {
		l.err = err
		return btx.Failure
	}
	switch status {
	case bt.Running:
		return btx.Running
	case bt.Success:
		return btx.Success
	case bt.Failure:
		return btx.Failure
	}
	l.err = fmt.Errorf("%v: %w", status, ErrUnexpectedStatus)
	return btx.Failure
}

// Ticker drives a Behavior with a bt.Ticker until it terminates.
type Ticker struct {
	bt.Ticker
	final atomic.Uint32
}

// NewTicker ticks b every d on a background goroutine. The ticker finishes
// once b reaches Success or Failure, when ctx ends or on Stop. b must not be
// touched by other goroutines until Done is closed.
func NewTicker(ctx context.Context, d time.Duration, b btx.Behavior) *Ticker {
	if b == nil {
		btx.Fault(btx.ErrNilBehavior, "ticker of nil behavior")
	}
	t := &Ticker{}
	t.Ticker = bt.NewTickerStopOnFailure(ctx, d, bt.New(func([]bt.Node) (bt.Status, error) {
		status, err := tick(b)
		if err != nil {
			return bt.Failure, err
		}
		if status == btx.Running {
			return bt.Running, nil
		}
		t.final.Store(uint32(status))
		// Failure ends a stop-on-failure ticker without an error.
		return bt.Failure, nil
	}))
	return t
}

// Status returns the final status of the behavior, or Invalid while it has
// not terminated.
func (t *Ticker) Status() btx.Status {
	return btx.Status(t.final.Load())
}
