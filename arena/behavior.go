package arena

import (
	btx "github.com/comalice/behaviortreex"
)

// Ref is a node of a Tree seen as a behaviortreex.Behavior, so an arena
// subtree can be a child of a regular composite or be started on a
// scheduler.
type Ref struct {
	tree   *Tree
	handle Handle
}

var _ btx.Behavior = (*Ref)(nil)

// Behavior returns a Ref to the node at h.
func (t *Tree) Behavior(h Handle) *Ref {
	t.node(h)
	return &Ref{tree: t, handle: h}
}

func (r *Ref) Tick() btx.Status { return r.tree.Tick(r.handle) }
func (r *Ref) Abort() { r.tree.Abort(r.handle) }
func (r *Ref) Reset() { r.tree.Reset(r.handle) }
func (r *Ref) Terminate(status btx.Status) { r.tree.Terminate(r.handle, status) }
func (r *Ref) Status() btx.Status { return r.tree.Status(r.handle) }
func (r *Ref) Handle() Handle { return r.handle }
func (r *Ref) Kind() Kind { return r.tree.Kind(r.handle) }

// Children returns Refs to the children of the node.
func (r *Ref) Children() []btx.Behavior {
	n := r.tree.ChildCount(r.handle)
	children := make([]btx.Behavior, n)
	for i := range children {
		children[i] = r.tree.Behavior(r.tree.Child(r.handle, i))
	}
	return children
}
