package main

import (
	"fmt"

	"github.com/rs/zerolog"

	btx "github.com/comalice/behaviortreex"
	"github.com/comalice/behaviortreex/arena"
	"github.com/comalice/behaviortreex/internal/observability"
	"github.com/comalice/behaviortreex/scheduler"
	"github.com/comalice/behaviortreex/shared"
)

// attackTicks is how many ticks an attack stays running.
const attackTicks = 3

// guard patrols until an enemy shows up, then attacks it. Without a visible
// enemy it retreats.
type guard struct {
	logger  zerolog.Logger
	enemyAt int // patrol steps before the enemy appears
	patrols int
	attacks int
}

func (g *guard) patrol() btx.Status {
	g.patrols++
	return btx.Success
}

func (g *guard) enemyVisible() bool {
	return g.patrols >= g.enemyAt
}

func (g *guard) attack() btx.Status {
	g.attacks++
	if g.attacks < attackTicks {
		return btx.Running
	}
	g.logger.Info().Int("ticks", g.attacks).Msg("enemy down")
	return btx.Success
}

func (g *guard) watchFlank() btx.Status {
	return btx.Success
}

func (g *guard) retreat() btx.Status {
	g.logger.Info().Msg("retreat")
	return btx.Success
}

// tree builds the guard on the synchronous composites.
func (g *guard) tree(logger zerolog.Logger) (btx.Behavior, error) {
	return btx.NewBuilder().
		Sequence().
		Repeat(g.enemyAt).
		Leaf(observability.Trace("patrol", btx.NewAction(g.patrol), logger)).
		End().
		Selector().
		Sequence().
		Condition(g.enemyVisible).
		Leaf(observability.Trace("attack", btx.NewAction(g.attack), logger)).
		End().
		Action(g.retreat).
		End().
		End().
		Build()
}

// cooperativeTree builds the guard on scheduler-driven composites. Each child
// is ticked as its own scheduler entry.
func (g *guard) cooperativeTree(s *scheduler.Scheduler, logger zerolog.Logger) btx.Behavior {
	patrol := btx.NewRepeat(observability.Trace("patrol", btx.NewAction(g.patrol), logger), g.enemyAt)
	engage := scheduler.NewSequence(s,
		btx.NewCondition(g.enemyVisible),
		scheduler.NewParallel(s, btx.RequireAll, btx.RequireOne,
			observability.Trace("attack", btx.NewAction(g.attack), logger),
			btx.NewAction(g.watchFlank),
		),
	)
	return scheduler.NewSequence(s, patrol, scheduler.NewSelector(s, engage, btx.NewAction(g.retreat)))
}

type check func() bool

func (c check) Decide() btx.Status {
	if c() {
		return btx.Success
	}
	return btx.Failure
}

// arenaTree lays the guard out in a contiguous arena of capacity bytes.
func (g *guard) arenaTree(capacity int) (root btx.Behavior, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("arena guard: %w", e)
		}
	}()

	t := arena.New(capacity)
	seq := t.NewSequence()
	repeat := t.NewRepeat(g.enemyAt)
	t.AddChild(repeat, t.NewAction(g.patrol))
	t.AddChild(seq, repeat)

	sel := t.NewSelector()
	engage := t.NewSequence()
	t.AddChild(engage, t.NewLeaf(check(g.enemyVisible)))
	par := t.NewParallel(btx.RequireAll, btx.RequireOne)
	t.AddChild(par, t.NewAction(g.attack))
	t.AddChild(par, t.NewAction(g.watchFlank))
	t.AddChild(engage, par)
	t.AddChild(sel, engage)
	t.AddChild(sel, t.NewAction(g.retreat))
	t.AddChild(seq, sel)
	return t.Behavior(seq), nil
}

// sentries runs two behaviors off one shared definition. Each owns its own
// task state while the attack counter is the guard's.
func (g *guard) sentries() btx.Behavior {
	def := shared.NewSequence(shared.NewAction(g.patrol), shared.NewAction(g.attack))
	return btx.NewParallel(btx.RequireAll, btx.RequireOne, shared.NewBehavior(def), shared.NewBehavior(def))
}
