package behaviortreex

import (
	"errors"
	"fmt"
)

// Builder provides a fluent API for assembling a tree in code. Composite
// methods open a scope that End closes; leaves attach to the innermost open
// scope.
//
//	root, err := NewBuilder().
//		ActiveSelector().
//			Sequence().
//				Condition(enemyVisible).
//				Action(attack).
//			End().
//			Action(patrol).
//		End().
//		Build()
type Builder struct {
	stack []*scope
	root  Behavior
	err   error
}

type scope struct {
	name     string
	children []Behavior
	build    func(children []Behavior) (Behavior, error)
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Sequence() *Builder {
	return b.open("sequence", func(children []Behavior) (Behavior, error) {
		return NewSequence(children...), nil
	})
}

func (b *Builder) Selector() *Builder {
	return b.open("selector", func(children []Behavior) (Behavior, error) {
		return NewSelector(children...), nil
	})
}

func (b *Builder) ActiveSelector() *Builder {
	return b.open("active selector", func(children []Behavior) (Behavior, error) {
		return NewActiveSelector(children...), nil
	})
}

func (b *Builder) Parallel(success, failure Policy) *Builder {
	return b.open("parallel", func(children []Behavior) (Behavior, error) {
		return NewParallel(success, failure, children...), nil
	})
}

// Repeat opens a decorator scope that must contain exactly one child.
func (b *Builder) Repeat(count int) *Builder {
	if count < 1 {
		b.fail(fmt.Errorf("repeat count %d: %w", count, ErrInvalidCount))
	}
	return b.open("repeat", func(children []Behavior) (Behavior, error) {
		if len(children) != 1 {
			return nil, fmt.Errorf("repeat has %d children, want 1", len(children))
		}
		return NewRepeat(children[0], count), nil
	})
}

// Leaf attaches an existing behavior, which may itself be a subtree.
func (b *Builder) Leaf(child Behavior) *Builder {
	if child == nil {
		b.fail(ErrNilBehavior)
		return b
	}
	b.attach(child)
	return b
}

func (b *Builder) Action(fn func() Status) *Builder {
	if fn == nil {
		b.fail(fmt.Errorf("action: %w", ErrNilBehavior))
		return b
	}
	return b.Leaf(NewAction(fn))
}

func (b *Builder) Condition(fn func() bool) *Builder {
	if fn == nil {
		b.fail(fmt.Errorf("condition: %w", ErrNilBehavior))
		return b
	}
	return b.Leaf(NewCondition(fn))
}

// End closes the innermost scope.
func (b *Builder) End() *Builder {
	if b.err != nil {
		return b
	}
	if len(b.stack) == 0 {
		b.fail(errors.New("end without open scope"))
		return b
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if len(top.children) == 0 {
		b.fail(fmt.Errorf("%s: %w", top.name, ErrNoChildren))
		return b
	}
	node, err := top.build(top.children)
	if err != nil {
		b.fail(err)
		return b
	}
	b.attach(node)
	return b
}

// Build returns the root. Every scope must have been closed.
func (b *Builder) Build() (Behavior, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.stack) != 0 {
		return nil, fmt.Errorf("%d unclosed scope(s), innermost %s", len(b.stack), b.stack[len(b.stack)-1].name)
	}
	if b.root == nil {
		return nil, errors.New("empty tree")
	}
	return b.root, nil
}

func (b *Builder) open(name string, build func([]Behavior) (Behavior, error)) *Builder {
	if b.err == nil {
		b.stack = append(b.stack, &scope{name: name, build: build})
	}
	return b
}

func (b *Builder) attach(node Behavior) {
	if b.err != nil {
		return
	}
	if len(b.stack) == 0 {
		if b.root != nil {
			b.fail(errors.New("tree already has a root"))
			return
		}
		b.root = node
		return
	}
	top := b.stack[len(b.stack)-1]
	top.children = append(top.children, node)
}

// fail records the first error; later calls are no-ops.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
