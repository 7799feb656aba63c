package scheduler_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	btx "github.com/comalice/behaviortreex"
	"github.com/comalice/behaviortreex/scheduler"
	"github.com/comalice/behaviortreex/testutil"
)

func TestRunnerRunsToCompletion(t *testing.T) {
	var buf bytes.Buffer
	s := scheduler.New(scheduler.WithLogger(zerolog.New(&buf)))

	ticks := 0
	root := btx.NewAction(func() btx.Status {
		ticks++
		if ticks == 3 {
			return btx.Success
		}
		return btx.Running
	})

	status, err := scheduler.NewRunner(s, scheduler.Config{}).Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, btx.Success, status)
	assert.Equal(t, 3, ticks)
	assert.Contains(t, buf.String(), `"message":"run finished"`)
	assert.Contains(t, buf.String(), `"run":"`)
}

func TestRunnerTickLimit(t *testing.T) {
	s := scheduler.New()
	m := testutil.NewMock()

	status, err := scheduler.NewRunner(s, scheduler.Config{MaxTicks: 5}).Run(context.Background(), m)
	require.ErrorIs(t, err, scheduler.ErrTickLimit)
	assert.Equal(t, btx.Aborted, status)
	assert.Equal(t, 5, m.Decisions)
	assert.Equal(t, btx.Aborted, m.Deactivated)
	assert.False(t, s.Scheduled(m))
}

func TestRunnerContextCancel(t *testing.T) {
	s := scheduler.New()
	m := testutil.NewMock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	status, err := scheduler.NewRunner(s, scheduler.Config{TickRate: time.Millisecond}).Run(ctx, m)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, btx.Aborted, status)
	assert.Positive(t, m.Decisions)
	assert.Equal(t, btx.Aborted, m.Status())
}

func TestRunnerCancelledBeforeFirstTick(t *testing.T) {
	s := scheduler.New()
	m := testutil.NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := scheduler.NewRunner(s, scheduler.Config{}).Run(ctx, m)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, btx.Aborted, status)
	assert.Equal(t, 0, m.Activations)
	assert.Equal(t, 0, s.Len())
}
