package production

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	btx "github.com/comalice/behaviortreex"
	"github.com/comalice/behaviortreex/arena"
	"github.com/comalice/behaviortreex/internal/observability"
)

func guardTree() (btx.Behavior, *btx.Sequence) {
	attack := btx.NewSequence(
		btx.NewCondition(func() bool { return true }),
		btx.NewAction(func() btx.Status { return btx.Running }),
	)
	patrol := observability.Trace("patrol", btx.NewAction(func() btx.Status { return btx.Success }), zerolog.Nop())
	return btx.NewActiveSelector(attack, patrol), attack
}

func TestExportDOT(t *testing.T) {
	root, _ := guardTree()
	root.Tick()

	dot := ExportDOT(root)
	assert.True(t, strings.HasPrefix(dot, "digraph BehaviorTree {"))
	assert.Contains(t, dot, `n0 [label="ActiveSelector\nrunning", fillcolor=lightblue];`)
	assert.Contains(t, dot, `n2 [label="Condition\nsuccess", fillcolor=palegreen];`)
	assert.Contains(t, dot, `n4 [label="patrol\ninvalid"];`)
	assert.Contains(t, dot, `n0 -> n1 [label="0"];`)
	assert.Contains(t, dot, `n0 -> n4 [label="1"];`)
	assert.Contains(t, dot, `n1 -> n3 [label="1"];`)
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestExportDOTArena(t *testing.T) {
	tree := arena.New(0)
	seq := tree.NewSequence()
	tree.AddChild(seq, tree.NewAction(func() btx.Status { return btx.Failure }))
	ref := tree.Behavior(seq)
	ref.Tick()

	dot := ExportDOT(ref)
	assert.Contains(t, dot, `n0 [label="Ref\nfailure", fillcolor=salmon];`)
	assert.Contains(t, dot, `n0 -> n1 [label="0"];`)
}

func TestTake(t *testing.T) {
	root, attack := guardTree()
	root.Tick()
	root.Abort()

	snap := Take(root)
	assert.Equal(t, "ActiveSelector", snap.Name)
	assert.Equal(t, "aborted", snap.Status)
	require.Len(t, snap.Children, 2)
	assert.Equal(t, attack.Status().String(), snap.Children[0].Status)
	assert.Equal(t, "patrol", snap.Children[1].Name)
	assert.Empty(t, snap.Children[1].Children)
}

func TestExportYAML(t *testing.T) {
	root, _ := guardTree()
	root.Tick()

	data, err := ExportYAML(root)
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, Take(root), back)
	assert.Contains(t, string(data), "status: running")
}
