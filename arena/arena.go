package arena

import (
	"errors"
	"math"
	"slices"
	"unsafe"

	btx "github.com/comalice/behaviortreex"
)

const (
	// DefaultCapacity is the byte budget of a tree created with New(0).
	DefaultCapacity = 8192
	// MaxChildren is the child limit of every composite node.
	MaxChildren = 7
)

var (
	ErrCapacity        = errors.New("arena capacity exceeded")
	ErrOffsetRange     = errors.New("child offset out of range")
	ErrTooManyChildren = errors.New("too many children")
	ErrHandle          = errors.New("unknown handle")
	ErrNotComposite    = errors.New("node does not take children")
)

// Kind selects the decision logic of a node record.
type Kind uint8

const (
	Leaf Kind = iota
	Sequence
	Selector
	Parallel
	Repeat
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Sequence:
		return "sequence"
	case Selector:
		return "selector"
	case Parallel:
		return "parallel"
	case Repeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// Handle addresses a node record inside its Tree. Handles stay valid in a
// clone of the tree.
type Handle int32

// node is the fixed-size record stored in the block. Children are stored as
// offsets relative to the node's own handle.
type node struct {
	kind     Kind
	status   btx.Status
	count    uint8
	current  uint8
	started  bool // set on first activation; closes the child list
	success  btx.Policy
	failure  btx.Policy
	leaf     uint16
	limit    uint16
	iter     uint16
	children [MaxChildren]int16
}

// NodeSize is the number of bytes a node record takes from the budget.
const NodeSize = int(unsafe.Sizeof(node{}))

// Tree is a behavior tree laid out in one pre-sized block of node records.
// Records are bump allocated and never freed individually; the tree is
// dropped as a whole. Leaf deciders live in a side table indexed by the
// leaf record.
type Tree struct {
	nodes    []node
	leaves   []leaf
	capacity int
}

type leaf struct {
	decider btx.Decider
	act     btx.Activator
	deact   btx.Deactivator
}

// New returns an empty tree with a byte budget of capacity, or
// DefaultCapacity when capacity is not positive.
func New(capacity int) *Tree {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tree{
		nodes:    make([]node, 0, capacity/NodeSize),
		capacity: capacity,
	}
}

// Capacity returns the byte budget.
func (t *Tree) Capacity() int {
	return t.capacity
}

// Size returns the bytes allocated so far.
func (t *Tree) Size() int {
	return len(t.nodes) * NodeSize
}

// Len returns the number of allocated records.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) alloc(n node) Handle {
	if t.Size()+NodeSize > t.capacity {
		btx.Fault(ErrCapacity, "%d bytes used of %d, record needs %d", t.Size(), t.capacity, NodeSize)
	}
	t.nodes = append(t.nodes, n)
	return Handle(len(t.nodes) - 1)
}

// NewLeaf allocates a leaf deciding with d. The hooks of d are called when d
// also implements behaviortreex.Activator or behaviortreex.Deactivator.
func (t *Tree) NewLeaf(d btx.Decider) Handle {
	if d == nil {
		btx.Fault(btx.ErrNilBehavior, "leaf with nil decider")
	}
	if len(t.leaves) > math.MaxUint16 {
		btx.Fault(ErrCapacity, "leaf table full")
	}
	l := leaf{decider: d}
	l.act, _ = d.(btx.Activator)
	l.deact, _ = d.(btx.Deactivator)
	t.leaves = append(t.leaves, l)
	return t.alloc(node{kind: Leaf, leaf: uint16(len(t.leaves) - 1)})
}

// NewAction allocates a leaf deciding with fn.
func (t *Tree) NewAction(fn func() btx.Status) Handle {
	return t.NewLeaf(btx.NewAction(fn))
}

// NewSequence allocates an empty sequence record.
func (t *Tree) NewSequence() Handle {
	return t.alloc(node{kind: Sequence})
}

// NewSelector allocates an empty selector record.
func (t *Tree) NewSelector() Handle {
	return t.alloc(node{kind: Selector})
}

// NewParallel allocates an empty parallel record with the given policies.
func (t *Tree) NewParallel(success, failure btx.Policy) Handle {
	return t.alloc(node{kind: Parallel, success: success, failure: failure})
}

// NewRepeat allocates a decorator running its single child to success count
// times.
func (t *Tree) NewRepeat(count int) Handle {
	if count < 1 || count > math.MaxUint16 {
		btx.Fault(btx.ErrInvalidCount, "repeat count %d", count)
	}
	return t.alloc(node{kind: Repeat, limit: uint16(count)})
}

// AddChild appends child to parent, storing the child as an offset from the
// parent. It faults when the offset does not fit 16 bits or the parent is
// full.
func (t *Tree) AddChild(parent, child Handle) {
	p := t.node(parent)
	t.node(child)
	limit := MaxChildren
	switch p.kind {
	case Leaf:
		btx.Fault(ErrNotComposite, "add child to leaf %d", parent)
	case Repeat:
		limit = 1
	}
	if p.started {
		btx.Fault(btx.ErrAlreadyActive, "add child to %s %d after first tick", p.kind, parent)
	}
	if int(p.count) >= limit {
		btx.Fault(ErrTooManyChildren, "%s %d already has %d", p.kind, parent, p.count)
	}
	offset := int(child) - int(parent)
	if offset < math.MinInt16 || offset > math.MaxInt16 {
		btx.Fault(ErrOffsetRange, "offset %d from %d to %d", offset, parent, child)
	}
	p.children[p.count] = int16(offset)
	p.count++
}

// Child returns the handle of the i-th child of parent.
func (t *Tree) Child(parent Handle, i int) Handle {
	p := t.node(parent)
	if i < 0 || i >= int(p.count) {
		btx.Fault(btx.ErrChildIndex, "child %d of %d", i, p.count)
	}
	return parent + Handle(p.children[i])
}

// ChildCount returns the number of children attached to h.
func (t *Tree) ChildCount(h Handle) int {
	return int(t.node(h).count)
}

// Kind returns the node kind of h.
func (t *Tree) Kind(h Handle) Kind {
	return t.node(h).kind
}

// Status returns the stored status of h.
func (t *Tree) Status(h Handle) btx.Status {
	return t.node(h).status
}

// Clone copies the record block into a new tree. Handles and child offsets
// are unchanged; node statuses are copied. The leaf deciders are shared with
// the source tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		nodes:    make([]node, len(t.nodes), cap(t.nodes)),
		leaves:   slices.Clone(t.leaves),
		capacity: t.capacity,
	}
	copy(c.nodes, t.nodes)
	return c
}

func (t *Tree) node(h Handle) *node {
	if h < 0 || int(h) >= len(t.nodes) {
		btx.Fault(ErrHandle, "handle %d of %d", h, len(t.nodes))
	}
	return &t.nodes[h]
}
