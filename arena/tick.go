package arena

import (
	btx "github.com/comalice/behaviortreex"
)

// Tick runs one evaluation step of the node at h with the same lifecycle as
// behaviortreex.Node: activation when not Running, a decision, and
// deactivation on a terminal result.
func (t *Tree) Tick(h Handle) btx.Status {
	n := t.node(h)
	if n.status != btx.Running {
		t.activate(h, n)
	}
	status := t.decide(h, n)
	switch status {
	case btx.Success, btx.Failure, btx.Running:
	default:
		btx.Fault(btx.ErrInvalidStatus, "%s %d decided %s", n.kind, h, status)
	}
	n.status = status
	if status != btx.Running {
		t.deactivate(h, n, status)
	}
	return status
}

// Abort ends the running activation of h with Aborted.
func (t *Tree) Abort(h Handle) {
	t.Terminate(h, btx.Aborted)
}

// Terminate forces a running node into a terminal status.
func (t *Tree) Terminate(h Handle, status btx.Status) {
	n := t.node(h)
	if !status.Terminal() {
		btx.Fault(btx.ErrInvalidStatus, "terminate with %s", status)
	}
	if n.status != btx.Running {
		btx.Fault(btx.ErrNotRunning, "terminate(%s) of %s %d while %s", status, n.kind, h, n.status)
	}
	n.status = status
	t.deactivate(h, n, status)
}

// Reset returns h to Invalid.
func (t *Tree) Reset(h Handle) {
	t.node(h).status = btx.Invalid
}

func (t *Tree) activate(h Handle, n *node) {
	n.started = true
	if n.kind != Leaf && n.count == 0 {
		btx.Fault(btx.ErrNoChildren, "activate empty %s %d", n.kind, h)
	}
	switch n.kind {
	case Leaf:
		if l := t.leaves[n.leaf]; l.act != nil {
			l.act.OnActivate()
		}
	case Sequence, Selector:
		n.current = 0
	case Parallel:
		for i := 0; i < int(n.count); i++ {
			t.Reset(t.Child(h, i))
		}
	case Repeat:
		n.iter = 0
	}
}

func (t *Tree) decide(h Handle, n *node) btx.Status {
	switch n.kind {
	case Leaf:
		return t.leaves[n.leaf].decider.Decide()
	case Sequence:
		return t.chain(h, n, btx.Success)
	case Selector:
		return t.chain(h, n, btx.Failure)
	case Parallel:
		return t.parallel(h, n)
	case Repeat:
		return t.repeat(h, n)
	}
	btx.Fault(btx.ErrInvalidStatus, "unknown kind %d", n.kind)
	return btx.Invalid
}

// chain ticks children from the cursor while they return next.
func (t *Tree) chain(h Handle, n *node, next btx.Status) btx.Status {
	for {
		status := t.Tick(t.Child(h, int(n.current)))
		if status != next {
			return status
		}
		n.current++
		if n.current == n.count {
			return next
		}
	}
}

// parallel skips children already terminal in this activation; activation
// reset them to Invalid.
func (t *Tree) parallel(h Handle, n *node) btx.Status {
	var succeeded, failed uint8
	for i := 0; i < int(n.count); i++ {
		child := t.Child(h, i)
		status := t.Status(child)
		if !status.Terminal() {
			status = t.Tick(child)
			if status == btx.Success && n.success == btx.RequireOne {
				return btx.Success
			}
			if status == btx.Failure && n.failure == btx.RequireOne {
				return btx.Failure
			}
		}
		switch status {
		case btx.Success:
			succeeded++
		case btx.Failure:
			failed++
		}
	}
	if n.failure == btx.RequireAll && failed == n.count {
		return btx.Failure
	}
	if n.success == btx.RequireAll && succeeded == n.count {
		return btx.Success
	}
	return btx.Running
}

func (t *Tree) repeat(h Handle, n *node) btx.Status {
	child := t.Child(h, 0)
	for {
		switch t.Tick(child) {
		case btx.Running:
			return btx.Running
		case btx.Failure:
			return btx.Failure
		}
		n.iter++
		if n.iter == n.limit {
			return btx.Success
		}
		t.Reset(child)
	}
}

func (t *Tree) deactivate(h Handle, n *node, status btx.Status) {
	switch n.kind {
	case Leaf:
		if l := t.leaves[n.leaf]; l.deact != nil {
			l.deact.OnDeactivate(status)
		}
	case Sequence, Selector:
		if status == btx.Aborted && n.current < n.count {
			t.abortRunning(t.Child(h, int(n.current)))
		}
	case Parallel:
		for i := 0; i < int(n.count); i++ {
			t.abortRunning(t.Child(h, i))
		}
	case Repeat:
		if status == btx.Aborted {
			t.abortRunning(t.Child(h, 0))
		}
	}
}

func (t *Tree) abortRunning(h Handle) {
	if t.Status(h) == btx.Running {
		t.Abort(h)
	}
}
