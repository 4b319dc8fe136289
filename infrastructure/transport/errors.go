package transport

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
)

// WebDriver wire-protocol status codes the controller cares about.
const (
	// StatusNoSuchElement is reported when a lookup matches nothing.
	StatusNoSuchElement = 7
)

// CmdError is a protocol command failure carrying the endpoint's
// status code and message.
type CmdError struct {
	Status  int
	Message string
}

func (e *CmdError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("command failed with status %d", e.Status)
	}
	return fmt.Sprintf("command failed with status %d: %s", e.Status, e.Message)
}

// StatusOf extracts the protocol status code from an error chain.
func StatusOf(err error) (int, bool) {
	var ce *CmdError
	if errors.As(err, &ce) {
		return ce.Status, true
	}
	return 0, false
}

// IsConnectionRefused reports whether err is the coarse
// connection-refused signal. Selenium-family transports expose refusal
// only as ECONNREFUSED or message text; no finer classification of
// launch failures is derivable.
func IsConnectionRefused(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "ECONNREFUSED")
}
