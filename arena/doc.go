// Package arena lays a behavior tree out in one fixed-capacity block of node
// records.
//
// Records are allocated with a bump pointer from a budget of bytes fixed at
// construction (DefaultCapacity by default) and are never freed one by one.
// A composite stores each child as a signed 16-bit offset from its own
// handle instead of a reference, so the block is relocatable: Clone is one
// copy and every handle stays valid in the copy.
//
// Decisions are dispatched on the record kind rather than through an
// interface per node. Only leaves call out, to the behaviortreex.Decider they
// were registered with.
//
//	tree := arena.New(0)
//	root := tree.NewSequence()
//	tree.AddChild(root, tree.NewAction(moveTo))
//	tree.AddChild(root, tree.NewAction(pickUp))
//	status := tree.Tick(root)
//
// Running out of budget, an offset that does not fit 16 bits and more than
// MaxChildren children are faults raised when the node is registered.
//
// Tree.Behavior adapts a node to behaviortreex.Behavior so an arena subtree
// runs under either execution model.
package arena
