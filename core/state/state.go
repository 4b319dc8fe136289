// Package state defines the session lifecycle state machine.
package state

import "fmt"

// SessionState represents the lifecycle state of a browser session.
type SessionState int

const (
	// StateUninitialized is the initial state before launch.
	StateUninitialized SessionState = iota
	// StateLaunching indicates the remote session is being negotiated.
	StateLaunching
	// StateReady indicates the session accepts navigate/locate/capture calls.
	StateReady
	// StateClosed indicates the session has been terminated.
	StateClosed
)

// String returns the string representation of the state.
func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateLaunching:
		return "Launching"
	case StateReady:
		return "Ready"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the allowed state transitions.
// Key is the current state, value is a list of valid target states.
var validTransitions = map[SessionState][]SessionState{
	StateUninitialized: {StateLaunching, StateClosed},
	StateLaunching:     {StateReady, StateClosed},
	StateReady:         {StateClosed},
	StateClosed:        {}, // Terminal state, no transitions allowed
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s SessionState) CanTransitionTo(target SessionState) bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the state is a terminal state (no further transitions).
func (s SessionState) IsTerminal() bool {
	return s == StateClosed
}

// CanAcceptOperations returns true if the session can accept
// navigate, locate and capture operations.
func (s SessionState) CanAcceptOperations() bool {
	return s == StateReady
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From   SessionState
	To     SessionState
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid state transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to SessionState, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}
