package transport

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestCmdError_Message(t *testing.T) {
	err := &CmdError{Status: StatusNoSuchElement, Message: "no such element"}

	want := "command failed with status 7: no such element"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := &CmdError{Status: 13}
	if bare.Error() != "command failed with status 13" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestStatusOf(t *testing.T) {
	inner := &CmdError{Status: StatusNoSuchElement}
	wrapped := fmt.Errorf("find element: %w", inner)

	status, ok := StatusOf(wrapped)
	if !ok || status != StatusNoSuchElement {
		t.Errorf("StatusOf() = %d, %v; want 7, true", status, ok)
	}

	if _, ok := StatusOf(errors.New("plain")); ok {
		t.Error("StatusOf() matched a non-command error")
	}
}

func TestIsConnectionRefused(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"econnrefused", syscall.ECONNREFUSED, true},
		{"wrapped econnrefused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"textual refusal", errors.New("dial tcp 127.0.0.1:4444: connection refused"), true},
		{"node style refusal", errors.New("connect ECONNREFUSED 127.0.0.1:4444"), true},
		{"other failure", errors.New("session not created"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConnectionRefused(tt.err); got != tt.want {
				t.Errorf("IsConnectionRefused() = %v, want %v", got, tt.want)
			}
		})
	}
}
