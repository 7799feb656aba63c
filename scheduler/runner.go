package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	btx "github.com/comalice/behaviortreex"
)

// ErrTickLimit is returned by Run when the root is still running after
// Config.MaxTicks rounds.
var ErrTickLimit = errors.New("tick limit reached")

// Config configures a Runner.
type Config struct {
	TickRate time.Duration // Fixed interval between rounds; zero ticks back to back
	MaxTicks uint64        // Rounds before giving up; zero means no limit
}

// Runner drives a scheduler at a fixed tick rate until a root behavior
// terminates. Rounds run on the goroutine calling Run.
type Runner struct {
	sched *Scheduler
	cfg   Config
}

func NewRunner(s *Scheduler, cfg Config) *Runner {
	return &Runner{sched: s, cfg: cfg}
}

// Run starts root on the scheduler and ticks until it terminates, returning
// its final status. When ctx ends or the tick limit is reached the root is
// stopped with Aborted and the cause is returned.
func (r *Runner) Run(ctx context.Context, root btx.Behavior) (btx.Status, error) {
	runID := uuid.NewString()
	logger := r.sched.logger.With().Str("run", runID).Logger()

	var (
		final btx.Status
		done  bool
	)
	r.sched.Start(root, func(status btx.Status) {
		final = status
		done = true
	})

	var tick <-chan time.Time
	if r.cfg.TickRate > 0 {
		ticker := time.NewTicker(r.cfg.TickRate)
		defer ticker.Stop()
		tick = ticker.C
	}

	logger.Info().Dur("tick_rate", r.cfg.TickRate).Uint64("max_ticks", r.cfg.MaxTicks).Msg("run started")
	var ticks uint64
	for {
		if r.cfg.MaxTicks > 0 && ticks >= r.cfg.MaxTicks {
			r.abort(root)
			logger.Warn().Uint64("ticks", ticks).Msg("tick limit reached")
			return btx.Aborted, fmt.Errorf("run %s after %d ticks: %w", runID, ticks, ErrTickLimit)
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				r.abort(root)
				logger.Info().Err(ctx.Err()).Uint64("ticks", ticks).Msg("run cancelled")
				return btx.Aborted, fmt.Errorf("run %s: %w", runID, ctx.Err())
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			r.abort(root)
			logger.Info().Err(err).Uint64("ticks", ticks).Msg("run cancelled")
			return btx.Aborted, fmt.Errorf("run %s: %w", runID, err)
		}

		r.sched.Tick()
		ticks++
		if done {
			logger.Info().Stringer("status", final).Uint64("ticks", ticks).Msg("run finished")
			return final, nil
		}
	}
}

func (r *Runner) abort(root btx.Behavior) {
	if r.sched.Scheduled(root) {
		r.sched.Stop(root, btx.Aborted)
	}
}
