package state

import (
	"errors"
	"fmt"
)

// ErrFailed is returned by any transition attempted after Fail.
var ErrFailed = errors.New("run already failed")

// Machine walks a fixed, strictly ordered list of phases. It keeps the full
// history so the summary can show how far a run got.
type Machine[T ~int] struct {
	History []T

	order  []T
	failed T
}

// New returns a machine positioned at the first entry of order. failed is the
// absorbing phase entered by Fail.
func New[T ~int](failed T, order ...T) *Machine[T] {
	if len(order) == 0 {
		panic("state: empty phase order")
	}
	return &Machine[T]{
		History: []T{order[0]},
		order:   order,
		failed:  failed,
	}
}

// Current returns the current phase
func (m *Machine[T]) Current() T {
	return m.History[len(m.History)-1]
}

// Failed reports whether the machine is in its absorbing failure phase.
func (m *Machine[T]) Failed() bool {
	return m.Current() == m.failed
}

// Done reports whether the last phase of the order has been reached.
func (m *Machine[T]) Done() bool {
	return m.Current() == m.order[len(m.order)-1]
}

// Next returns the phase that follows the current one.
func (m *Machine[T]) Next() (T, bool) {
	if m.Failed() {
		return m.failed, false
	}
	for i, p := range m.order {
		if p == m.Current() && i+1 < len(m.order) {
			return m.order[i+1], true
		}
	}
	return m.Current(), false
}

// Advance moves to p, which must be exactly the next phase.
func (m *Machine[T]) Advance(p T) error {
	if m.Failed() {
		return ErrFailed
	}
	next, ok := m.Next()
	if !ok {
		return fmt.Errorf("no phase after %d", m.Current())
	}
	if p != next {
		return fmt.Errorf("invalid transition %d -> %d, expected %d", m.Current(), p, next)
	}
	m.History = append(m.History, p)
	return nil
}

// Fail moves to the failure phase. Calling it twice is a no-op.
func (m *Machine[T]) Fail() {
	if m.Failed() {
		return
	}
	m.History = append(m.History, m.failed)
}

// LastGood returns the last phase that was reached before a failure.
func (m *Machine[T]) LastGood() T {
	for i := len(m.History) - 1; i >= 0; i-- {
		if m.History[i] != m.failed {
			return m.History[i]
		}
	}
	return m.order[0]
}
