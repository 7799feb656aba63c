// Package testutil provides mock behaviors, runtime adapters running one test
// suite on both execution models, and fault assertions.
package testutil

import (
	btx "github.com/comalice/behaviortreex"
)

// Mock is a scripted leaf that counts its lifecycle calls.
type Mock struct {
	btx.Node

	Activations   int
	Deactivations int
	Decisions     int

	// Result is returned by Decide. It starts as Running.
	Result btx.Status
	// Deactivated is the status passed to the last OnDeactivate.
	Deactivated btx.Status
}

func NewMock() *Mock {
	m := &Mock{Result: btx.Running}
	m.Init(m)
	return m
}

func (m *Mock) OnActivate() {
	m.Activations++
}

func (m *Mock) Decide() btx.Status {
	m.Decisions++
	return m.Result
}

func (m *Mock) OnDeactivate(status btx.Status) {
	m.Deactivations++
	m.Deactivated = status
}

// NewMocks returns n mocks along with the same values as behaviors, ready to
// pass to composite constructors.
func NewMocks(n int) ([]*Mock, []btx.Behavior) {
	mocks := make([]*Mock, n)
	behaviors := make([]btx.Behavior, n)
	for i := range mocks {
		mocks[i] = NewMock()
		behaviors[i] = mocks[i]
	}
	return mocks, behaviors
}
