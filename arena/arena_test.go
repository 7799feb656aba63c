package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	btx "github.com/comalice/behaviortreex"
	"github.com/comalice/behaviortreex/arena"
	"github.com/comalice/behaviortreex/scheduler"
	"github.com/comalice/behaviortreex/testutil"
)

// composite allocates a composite of kind with n mock leaves.
func composite(tree *arena.Tree, kind arena.Kind, n int) (arena.Handle, []*testutil.Mock) {
	var h arena.Handle
	switch kind {
	case arena.Sequence:
		h = tree.NewSequence()
	case arena.Selector:
		h = tree.NewSelector()
	}
	mocks := make([]*testutil.Mock, n)
	for i := range mocks {
		mocks[i] = testutil.NewMock()
		tree.AddChild(h, tree.NewLeaf(mocks[i]))
	}
	return h, mocks
}

func TestLeafLifecycle(t *testing.T) {
	tree := arena.New(0)
	m := testutil.NewMock()
	h := tree.NewLeaf(m)

	require.Equal(t, btx.Running, tree.Tick(h))
	require.Equal(t, btx.Running, tree.Tick(h))
	assert.Equal(t, 1, m.Activations)
	assert.Equal(t, 2, m.Decisions)
	assert.Equal(t, 0, m.Deactivations)

	m.Result = btx.Success
	require.Equal(t, btx.Success, tree.Tick(h))
	assert.Equal(t, 1, m.Deactivations)
	assert.Equal(t, btx.Success, tree.Status(h))

	tree.Reset(h)
	assert.Equal(t, btx.Invalid, tree.Status(h))
}

func TestSequencePassThrough(t *testing.T) {
	for _, status := range []btx.Status{btx.Success, btx.Failure} {
		t.Run(status.String(), func(t *testing.T) {
			tree := arena.New(0)
			seq, mocks := composite(tree, arena.Sequence, 1)

			require.Equal(t, btx.Running, tree.Tick(seq))
			require.Equal(t, 0, mocks[0].Deactivations)

			mocks[0].Result = status
			require.Equal(t, status, tree.Tick(seq))
			require.Equal(t, 1, mocks[0].Deactivations)
		})
	}
}

func TestSequenceTwoChildren(t *testing.T) {
	tree := arena.New(0)
	seq, mocks := composite(tree, arena.Sequence, 2)

	require.Equal(t, btx.Running, tree.Tick(seq))
	mocks[0].Result = btx.Success
	require.Equal(t, btx.Running, tree.Tick(seq))
	assert.Equal(t, 1, mocks[0].Deactivations)
	assert.Equal(t, 1, mocks[1].Activations)

	mocks[1].Result = btx.Failure
	require.Equal(t, btx.Failure, tree.Tick(seq))
	assert.Equal(t, 2, mocks[0].Decisions)
}

func TestSelectorTwoChildren(t *testing.T) {
	tree := arena.New(0)
	sel, mocks := composite(tree, arena.Selector, 2)

	require.Equal(t, btx.Running, tree.Tick(sel))
	mocks[0].Result = btx.Failure
	require.Equal(t, btx.Running, tree.Tick(sel))
	assert.Equal(t, 1, mocks[1].Activations)

	mocks[1].Result = btx.Success
	require.Equal(t, btx.Success, tree.Tick(sel))
}

func TestParallel(t *testing.T) {
	tree := arena.New(0)
	par := tree.NewParallel(btx.RequireAll, btx.RequireOne)
	a, b := testutil.NewMock(), testutil.NewMock()
	tree.AddChild(par, tree.NewLeaf(a))
	tree.AddChild(par, tree.NewLeaf(b))

	require.Equal(t, btx.Running, tree.Tick(par))
	a.Result = btx.Success
	require.Equal(t, btx.Running, tree.Tick(par))
	b.Result = btx.Success
	require.Equal(t, btx.Success, tree.Tick(par))
	assert.Equal(t, 2, a.Decisions)
	assert.Equal(t, 3, b.Decisions)

	// A new activation rescans every child.
	require.Equal(t, btx.Success, tree.Tick(par))
	assert.Equal(t, 2, a.Activations)
}

func TestParallelAbortsRunningChildren(t *testing.T) {
	tree := arena.New(0)
	par := tree.NewParallel(btx.RequireOne, btx.RequireOne)
	a, b := testutil.NewMock(), testutil.NewMock()
	tree.AddChild(par, tree.NewLeaf(a))
	tree.AddChild(par, tree.NewLeaf(b))

	require.Equal(t, btx.Running, tree.Tick(par))
	a.Result = btx.Failure
	require.Equal(t, btx.Failure, tree.Tick(par))
	assert.Equal(t, btx.Aborted, b.Deactivated)
}

func TestRepeat(t *testing.T) {
	tree := arena.New(0)
	m := testutil.NewMock()
	m.Result = btx.Success
	r := tree.NewRepeat(3)
	tree.AddChild(r, tree.NewLeaf(m))
	testutil.RequireFault(t, arena.ErrTooManyChildren, func() { tree.AddChild(r, tree.NewSequence()) })
	testutil.RequireFault(t, btx.ErrInvalidCount, func() { tree.NewRepeat(0) })

	require.Equal(t, btx.Success, tree.Tick(r))
	assert.Equal(t, 3, m.Activations)
	assert.Equal(t, 3, m.Deactivations)
}

func TestAbortPropagates(t *testing.T) {
	tree := arena.New(0)
	outer := tree.NewSequence()
	inner, mocks := composite(tree, arena.Selector, 2)
	tree.AddChild(outer, inner)

	require.Equal(t, btx.Running, tree.Tick(outer))
	tree.Abort(outer)
	assert.Equal(t, btx.Aborted, tree.Status(outer))
	assert.Equal(t, btx.Aborted, tree.Status(inner))
	assert.Equal(t, btx.Aborted, mocks[0].Deactivated)

	testutil.RequireFault(t, btx.ErrNotRunning, func() { tree.Abort(outer) })
}

// A child allocated before its parent gets a negative offset.
func TestBottomUpLayout(t *testing.T) {
	tree := arena.New(0)
	m := testutil.NewMock()
	m.Result = btx.Success
	leaf := tree.NewLeaf(m)
	seq := tree.NewSequence()
	tree.AddChild(seq, leaf)

	assert.Equal(t, leaf, tree.Child(seq, 0))
	assert.Equal(t, btx.Success, tree.Tick(seq))
}

func TestCapacity(t *testing.T) {
	tree := arena.New(3 * arena.NodeSize)
	for i := 0; i < 3; i++ {
		tree.NewSequence()
	}
	assert.Equal(t, 3*arena.NodeSize, tree.Size())
	testutil.RequireFault(t, arena.ErrCapacity, func() { tree.NewSelector() })
	assert.Equal(t, 3, tree.Len())

	def := arena.New(0)
	assert.Equal(t, arena.DefaultCapacity, def.Capacity())
}

func TestDefaultCapacity(t *testing.T) {
	tree := arena.New(0)
	n := arena.DefaultCapacity / arena.NodeSize
	for i := 0; i < n; i++ {
		tree.NewSequence()
	}
	assert.LessOrEqual(t, tree.Size(), arena.DefaultCapacity)
	testutil.RequireFault(t, arena.ErrCapacity, func() { tree.NewSequence() })
}

func TestOffsetRange(t *testing.T) {
	tree := arena.New((1 << 15) * 2 * arena.NodeSize)
	root := tree.NewSequence()
	for i := 0; i < 1<<15-2; i++ {
		tree.NewSequence()
	}
	edge := tree.NewSequence() // offset 1<<15 - 1
	tree.AddChild(root, edge)

	far := tree.NewSequence()
	testutil.RequireFault(t, arena.ErrOffsetRange, func() { tree.AddChild(root, far) })
}

func TestChildLimits(t *testing.T) {
	tree := arena.New(0)
	seq := tree.NewSequence()
	for i := 0; i < arena.MaxChildren; i++ {
		tree.AddChild(seq, tree.NewSequence())
	}
	testutil.RequireFault(t, arena.ErrTooManyChildren, func() { tree.AddChild(seq, tree.NewSequence()) })

	leaf := tree.NewAction(func() btx.Status { return btx.Success })
	testutil.RequireFault(t, arena.ErrNotComposite, func() { tree.AddChild(leaf, seq) })
	testutil.RequireFault(t, btx.ErrChildIndex, func() { tree.Child(seq, arena.MaxChildren) })
	testutil.RequireFault(t, arena.ErrHandle, func() { tree.Tick(arena.Handle(tree.Len())) })
	testutil.RequireFault(t, btx.ErrNoChildren, func() { tree.Tick(tree.NewSelector()) })
}

func TestAddChildAfterTickFaults(t *testing.T) {
	tree := arena.New(0)
	seq, _ := composite(tree, arena.Sequence, 1)
	tree.Tick(seq)
	testutil.RequireFault(t, btx.ErrAlreadyActive, func() { tree.AddChild(seq, tree.NewSequence()) })

	tree.Abort(seq)
	tree.Reset(seq)
	testutil.RequireFault(t, btx.ErrAlreadyActive, func() { tree.AddChild(seq, tree.NewSequence()) })
	assert.Equal(t, 1, tree.ChildCount(seq))
}

func TestCloneRelocates(t *testing.T) {
	tree := arena.New(0)
	seq, mocks := composite(tree, arena.Sequence, 2)
	mocks[0].Result = btx.Success
	require.Equal(t, btx.Running, tree.Tick(seq))

	clone := tree.Clone()
	assert.Equal(t, tree.Size(), clone.Size())
	assert.Equal(t, tree.Child(seq, 1), clone.Child(seq, 1))
	assert.Equal(t, btx.Running, clone.Status(seq))

	clone.Abort(seq)
	assert.Equal(t, btx.Aborted, clone.Status(seq))
	assert.Equal(t, btx.Running, tree.Status(seq), "source tree is untouched")

	mocks[1].Result = btx.Success
	assert.Equal(t, btx.Success, tree.Tick(seq))
}

func TestRefRunsOnBothModels(t *testing.T) {
	tree := arena.New(0)
	seq, mocks := composite(tree, arena.Sequence, 2)
	ref := tree.Behavior(seq)
	assert.Equal(t, arena.Sequence, ref.Kind())
	require.Len(t, ref.Children(), 2)

	// Synchronous parent.
	root := btx.NewSelector(ref)
	require.Equal(t, btx.Running, root.Tick())
	root.Abort()
	assert.Equal(t, btx.Aborted, ref.Status())

	// Cooperative scheduler.
	ref.Reset()
	for _, m := range mocks {
		m.Result = btx.Success
	}
	s := scheduler.New()
	var final btx.Status
	s.Start(ref, func(status btx.Status) { final = status })
	s.Tick()
	assert.Equal(t, btx.Success, final)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "parallel", arena.Parallel.String())
	assert.Equal(t, "unknown", arena.Kind(42).String())
}
