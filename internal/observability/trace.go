package observability

import (
	"time"

	"github.com/rs/zerolog"

	btx "github.com/comalice/behaviortreex"
)

// Traced wraps a Behavior and logs its status changes. It forwards every
// call to the wrapped behavior, so it can replace it anywhere in a tree.
type Traced struct {
	inner  btx.Behavior
	name   string
	logger zerolog.Logger
}

var _ btx.Behavior = (*Traced)(nil)

func Trace(name string, b btx.Behavior, logger zerolog.Logger) *Traced {
	if b == nil {
		btx.Fault(btx.ErrNilBehavior, "trace of nil behavior")
	}
	return &Traced{inner: b, name: name, logger: logger}
}

// Name returns the label used in log lines and metrics.
func (t *Traced) Name() string {
	return t.name
}

// Unwrap returns the traced behavior.
func (t *Traced) Unwrap() btx.Behavior {
	return t.inner
}

// Tick logs activations at Debug and terminal results at Info; ticks that
// stay Running are logged at Trace.
func (t *Traced) Tick() btx.Status {
	before := t.inner.Status()
	if before != btx.Running {
		t.logger.Debug().Str("behavior", t.name).Stringer("from", before).Msg("activate")
	}
	start := time.Now()
	status := t.inner.Tick()
	var ev *zerolog.Event
	if status == btx.Running {
		ev = t.logger.Trace()
	} else {
		ev = t.logger.Info()
	}
	ev.Str("behavior", t.name).Stringer("status", status).Dur("took", time.Since(start)).Msg("tick")
	return status
}

func (t *Traced) Abort() {
	t.logger.Info().Str("behavior", t.name).Msg("abort")
	t.inner.Abort()
}

func (t *Traced) Terminate(status btx.Status) {
	t.logger.Info().Str("behavior", t.name).Stringer("status", status).Msg("terminate")
	t.inner.Terminate(status)
}

func (t *Traced) Reset() {
	t.inner.Reset()
}

func (t *Traced) Status() btx.Status {
	return t.inner.Status()
}

// Children returns the children of the wrapped behavior, if it has any.
func (t *Traced) Children() []btx.Behavior {
	if c, ok := t.inner.(interface{ Children() []btx.Behavior }); ok {
		return c.Children()
	}
	return nil
}
