package session

import "fmt"

// LaunchError reports a failed session launch. The transport can only
// distinguish connection refusal from every other failure cause, so the
// classification stays that coarse.
type LaunchError struct {
	SessionID string
	GridURL   string
	Refused   bool
	Err       error
}

func (e *LaunchError) Error() string {
	if e.Refused {
		return fmt.Sprintf(
			"can not connect to WebDriver at %s: %v; make sure the gridUrl setting is correct and the remote endpoint is running",
			e.GridURL, e.Err)
	}
	return fmt.Sprintf("cannot launch browser %s: %v", e.SessionID, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// LookupError reports an element lookup that matched nothing, carrying
// the selector that failed so the caller can name it in reports.
type LookupError struct {
	Selector string
	Err      error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("could not find element with selector %q: %v", e.Selector, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// StateError reports a problem the in-page hook found with the page
// while preparing a screenshot.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return "failed to prepare page for screenshot: " + e.Message
}
