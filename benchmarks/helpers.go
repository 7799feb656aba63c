// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	btx "github.com/comalice/behaviortreex"
	"github.com/comalice/behaviortreex/arena"
	"github.com/comalice/behaviortreex/internal/production"
	"github.com/comalice/behaviortreex/scheduler"
	"github.com/comalice/behaviortreex/shared"
)

func succeed() btx.Status { return btx.Success }

// GenFlatSequence creates a sequence of n succeeding actions.
func GenFlatSequence(n int) btx.Behavior {
	if n < 1 {
		n = 1
	}
	children := make([]btx.Behavior, n)
	for i := range children {
		children[i] = btx.NewAction(succeed)
	}
	return btx.NewSequence(children...)
}

// GenDeepSequence nests depth sequences, each holding the next level and one
// action.
func GenDeepSequence(depth int) btx.Behavior {
	var node btx.Behavior = btx.NewAction(succeed)
	for i := 1; i < depth; i++ {
		node = btx.NewSequence(node, btx.NewAction(succeed))
	}
	return node
}

// GenArenaFlat lays out the same tree as GenFlatSequence in an arena. Children
// are allocated before their parent.
func GenArenaFlat(n int) (*arena.Tree, arena.Handle) {
	if n < 1 {
		n = 1
	}
	t := arena.New((n + 1) * arena.NodeSize)
	var leaves []arena.Handle
	for i := 0; i < n; i++ {
		leaves = append(leaves, t.NewAction(succeed))
	}
	root := t.NewSequence()
	for _, h := range leaves {
		t.AddChild(root, h)
	}
	return t, root
}

// GenArenaDeep lays out the same tree as GenDeepSequence in an arena.
func GenArenaDeep(depth int) (*arena.Tree, arena.Handle) {
	t := arena.New(2 * depth * arena.NodeSize)
	node := t.NewAction(succeed)
	for i := 1; i < depth; i++ {
		seq := t.NewSequence()
		t.AddChild(seq, node)
		t.AddChild(seq, t.NewAction(succeed))
		node = seq
	}
	return t, node
}

// GenCooperativeFlat creates a scheduler-driven sequence of n succeeding
// actions.
func GenCooperativeFlat(s *scheduler.Scheduler, n int) btx.Behavior {
	children := make([]btx.Behavior, n)
	for i := range children {
		children[i] = btx.NewAction(succeed)
	}
	return scheduler.NewSequence(s, children...)
}

// GenSharedFlat creates a shared sequence definition of n actions.
func GenSharedFlat(n int) shared.Node {
	children := make([]shared.Node, n)
	for i := range children {
		children[i] = shared.NewAction(succeed)
	}
	return shared.NewSequence(children...)
}

// GenSnapshotYAML returns the YAML snapshot of a tree with numChildren
// children under the root, nested one level deeper when hierarchical.
func GenSnapshotYAML(numChildren int, hierarchical bool) []byte {
	snap := production.Snapshot{Name: "Sequence", Status: btx.Running.String()}
	for i := 0; i < numChildren; i++ {
		child := production.Snapshot{Name: fmt.Sprintf("Action%d", i), Status: btx.Success.String()}
		if hierarchical {
			child.Children = []production.Snapshot{{Name: "Condition", Status: btx.Success.String()}}
		}
		snap.Children = append(snap.Children, child)
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		panic(err)
	}
	return data
}
