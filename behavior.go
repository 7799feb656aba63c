package behaviortreex

// Behavior is a node instance. Tick, Abort and Reset are the only entry
// points external callers use; Terminate is reserved for coordinators such as
// the cooperative scheduler that need to force a specific terminal status.
type Behavior interface {
	Tick() Status
	Abort()
	Reset()
	Terminate(status Status)
	Status() Status
}

// Decider is the overridable decision of a node kind. It returns Success,
// Failure or Running.
type Decider interface {
	Decide() Status
}

// Activator is implemented by node kinds needing one-time setup when they
// move from a non-Running state into evaluation.
type Activator interface {
	OnActivate()
}

// Deactivator is implemented by node kinds needing cleanup once an
// activation ends, whether by a terminal decision or a forced abort.
type Deactivator interface {
	OnDeactivate(status Status)
}

// Node implements the Behavior lifecycle. Node kinds embed it and call Init
// with themselves from their constructor:
//
//	type Wait struct {
//		behaviortreex.Node
//		ticks int
//	}
//
//	func NewWait(ticks int) *Wait {
//		w := &Wait{ticks: ticks}
//		w.Init(w)
//		return w
//	}
type Node struct {
	status Status
	impl   Decider
	act    Activator
	deact  Deactivator
}

// Init binds the node kind whose Decide (and optional hooks) the lifecycle
// dispatches to. It resets the stored status.
func (n *Node) Init(impl Decider) {
	if impl == nil {
		Fault(ErrNilBehavior, "init with nil decider")
	}
	n.impl = impl
	n.act, _ = impl.(Activator)
	n.deact, _ = impl.(Deactivator)
	n.status = Invalid
}

// Tick runs one evaluation step.
func (n *Node) Tick() Status {
	if n.impl == nil {
		Fault(ErrNilBehavior, "tick of uninitialised node")
	}
	if n.status != Running && n.act != nil {
		n.act.OnActivate()
	}
	status := n.impl.Decide()
	if !status.decision() {
		Fault(ErrInvalidStatus, "decide returned %s", status)
	}
	n.status = status
	if status != Running && n.deact != nil {
		n.deact.OnDeactivate(status)
	}
	return status
}

// Abort pre-empts a running node; Decide is not called.
func (n *Node) Abort() {
	n.Terminate(Aborted)
}

// Terminate forces a running node into a terminal status and runs its
// deactivation hook with that status.
func (n *Node) Terminate(status Status) {
	if !status.Terminal() {
		Fault(ErrInvalidStatus, "terminate with %s", status)
	}
	if n.status != Running {
		Fault(ErrNotRunning, "terminate(%s) while %s", status, n.status)
	}
	n.status = status
	if n.deact != nil {
		n.deact.OnDeactivate(status)
	}
}

// Reset returns the node to Invalid so it can be reused.
func (n *Node) Reset() {
	n.status = Invalid
}

// Status returns the stored status.
func (n *Node) Status() Status {
	return n.status
}
