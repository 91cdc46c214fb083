package views

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/socrates/internal/client/api"
)

// ModalState is the phase of a creation form.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalIdle
	ModalSubmitting
)

func (s ModalState) String() string {
	switch s {
	case ModalClosed:
		return "closed"
	case ModalIdle:
		return "idle"
	case ModalSubmitting:
		return "submitting"
	}
	return "unknown"
}

// modal is the state machine shared by the creation forms:
// closed -> idle -> submitting -> idle with error, or closed on success.
// Closing at any point resets the fields, and a submission still in flight
// when the form closes no longer touches it.
type modal struct {
	mu      sync.Mutex
	state   ModalState
	errMsg  string
	generic string
	reset   func()
	// closes counts Close calls; a submit that sees it change was abandoned.
	closes uint64
}

func (m *modal) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == ModalClosed {
		m.state = ModalIdle
		m.errMsg = ""
	}
}

func (m *modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *modal) closeLocked() {
	m.closes++
	m.state = ModalClosed
	m.errMsg = ""
	m.reset()
}

func (m *modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Error is the inline message of the last failed submission.
func (m *modal) FormError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

// edit applies fn to the fields while the form is open.
func (m *modal) edit(fn func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case ModalClosed:
		return ErrClosed
	case ModalSubmitting:
		return ErrBusy
	}
	fn()
	return nil
}

// submit runs the request produced by prepare. prepare runs under the lock
// and may reject the input with a message shown inline.
func submit[T any](ctx context.Context, m *modal, prepare func() (func(context.Context) (T, error), string), onSuccess func(T)) (T, error) {
	var zero T

	m.mu.Lock()
	switch m.state {
	case ModalClosed:
		m.mu.Unlock()
		return zero, ErrClosed
	case ModalSubmitting:
		m.mu.Unlock()
		return zero, ErrBusy
	}
	call, invalid := prepare()
	if invalid != "" {
		m.errMsg = invalid
		m.mu.Unlock()
		return zero, ErrInvalidInput
	}
	m.state = ModalSubmitting
	m.errMsg = ""
	closes := m.closes
	m.mu.Unlock()

	out, err := call(ctx)

	m.mu.Lock()
	abandoned := m.closes != closes
	if abandoned {
		m.mu.Unlock()
		if err != nil {
			return zero, err
		}
		// The record exists server-side, so the parent still refetches.
		if onSuccess != nil {
			onSuccess(out)
		}
		return out, nil
	}
	if err != nil {
		m.state = ModalIdle
		if d, ok := api.Detail(err); ok && !errors.Is(err, api.ErrUnauthorized) {
			m.errMsg = d
		} else {
			m.errMsg = m.generic
		}
		m.mu.Unlock()
		return zero, err
	}
	m.closeLocked()
	m.mu.Unlock()

	if onSuccess != nil {
		onSuccess(out)
	}
	return out, nil
}
