package shared

import (
	"sync"

	btx "github.com/comalice/behaviortreex"
)

// Leaf is a Node whose tasks come from a pool, so a definition ticked by
// many trees does not allocate a task per activation. A pooled task keeps
// whatever state it had; it is expected to reinitialise in OnActivate.
type Leaf struct {
	pool sync.Pool
}

func NewLeaf(newTask func() Task) *Leaf {
	if newTask == nil {
		btx.Fault(btx.ErrNilBehavior, "leaf with nil task factory")
	}
	l := &Leaf{}
	l.pool.New = func() any { return newTask() }
	return l
}

// NewAction returns a Leaf whose tasks decide with fn.
func NewAction(fn func() btx.Status) *Leaf {
	if fn == nil {
		btx.Fault(btx.ErrNilBehavior, "action with nil func")
	}
	return NewLeaf(func() Task { return actionTask(fn) })
}

type actionTask func() btx.Status

func (a actionTask) Decide() btx.Status { return a() }

func (l *Leaf) Create() Task {
	return l.pool.Get().(Task)
}

func (l *Leaf) Destroy(t Task) {
	l.pool.Put(t)
}

// Composite holds the child definitions of a composite node.
type Composite struct {
	children []Node
}

func (c *Composite) AddChild(n Node) {
	if n == nil {
		btx.Fault(btx.ErrNilBehavior, "add nil child")
	}
	c.children = append(c.children, n)
}

func (c *Composite) Children() []Node {
	return c.children
}

// SequenceNode runs its children in order until one does not succeed.
type SequenceNode struct {
	Composite
}

func NewSequence(children ...Node) *SequenceNode {
	s := &SequenceNode{}
	for _, child := range children {
		s.AddChild(child)
	}
	return s
}

func (s *SequenceNode) Create() Task {
	return newChainTask(s.children, btx.Success)
}

func (s *SequenceNode) Destroy(Task) {}

// SelectorNode runs its children in order until one does not fail.
type SelectorNode struct {
	Composite
}

func NewSelector(children ...Node) *SelectorNode {
	s := &SelectorNode{}
	for _, child := range children {
		s.AddChild(child)
	}
	return s
}

func (s *SelectorNode) Create() Task {
	return newChainTask(s.children, btx.Failure)
}

func (s *SelectorNode) Destroy(Task) {}

// chainTask holds a single child behavior, set up with the current child
// node on each advance.
type chainTask struct {
	children []Node
	next     btx.Status
	current  int
	child    Behavior
}

func newChainTask(children []Node, next btx.Status) *chainTask {
	t := &chainTask{children: children, next: next}
	t.child.Init(&t.child)
	return t
}

func (t *chainTask) OnActivate() {
	if len(t.children) == 0 {
		btx.Fault(btx.ErrNoChildren, "activate empty composite")
	}
	t.current = 0
	t.child.Setup(t.children[0])
}

func (t *chainTask) Decide() btx.Status {
	for {
		status := t.child.Tick()
		if status != t.next {
			return status
		}
		t.current++
		if t.current == len(t.children) {
			return t.next
		}
		t.child.Setup(t.children[t.current])
	}
}

func (t *chainTask) OnDeactivate(status btx.Status) {
	if status == btx.Aborted && t.child.Status() == btx.Running {
		t.child.Abort()
	}
	t.child.Teardown()
}
