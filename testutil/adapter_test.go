package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	btx "github.com/comalice/behaviortreex"
)

// Both models must report the same root status for the same script.
func TestModelsAgree(t *testing.T) {
	for _, model := range Models() {
		t.Run(model.Name, func(t *testing.T) {
			mocks, children := NewMocks(2)
			rt := model.NewSequence(children...)

			require.Equal(t, btx.Running, rt.Tick())
			mocks[0].Result = btx.Success
			mocks[1].Result = btx.Success
			require.Equal(t, btx.Success, rt.Tick())
			assert.Equal(t, btx.Success, rt.Root().Status())
		})
	}
}

func TestCooperativeRuntimeRestartsRoot(t *testing.T) {
	model := Models()[1]
	mocks, children := NewMocks(1)
	mocks[0].Result = btx.Failure
	rt := model.NewSelector(children...).(*CooperativeRuntime)

	require.Equal(t, btx.Failure, rt.Tick())
	require.False(t, rt.Scheduler.Scheduled(rt.Root()))

	require.Equal(t, btx.Failure, rt.Tick())
	assert.Equal(t, 2, mocks[0].Activations)
	assert.Equal(t, uint64(2), rt.Scheduler.Round())
}

func TestMockCounts(t *testing.T) {
	m := NewMock()
	require.Equal(t, btx.Running, m.Tick())
	m.Abort()
	assert.Equal(t, 1, m.Activations)
	assert.Equal(t, 1, m.Deactivations)
	assert.Equal(t, 1, m.Decisions)
	assert.Equal(t, btx.Aborted, m.Deactivated)
}

func TestRequireFault(t *testing.T) {
	RequireFault(t, btx.ErrNotRunning, func() { NewMock().Abort() })
}
