// Package transport abstracts the asynchronous channel to a remote
// browser-automation endpoint.
package transport

import (
	"context"

	"ocular-go/core/caps"
	"ocular-go/core/config"
)

// Strategy selects how an element lookup interprets its selector.
type Strategy string

const (
	// ByCSS locates elements with a CSS selector.
	ByCSS Strategy = "css selector"
	// ByXPath locates elements with an XPath expression.
	ByXPath Strategy = "xpath"
)

// ElementRef is an opaque handle to a located element. The controller
// never retains it; ownership is transient and belongs to the caller.
type ElementRef string

// Transport is the channel to a remote automation endpoint, keyed by
// protocol verbs. A transport is exclusively owned by one session
// controller for the controller's lifetime.
// This abstraction allows for different backends (Selenium grid, CDP, fakes).
type Transport interface {
	// Init negotiates a new session with the desired capabilities and
	// returns the effective set the endpoint granted.
	Init(ctx context.Context, desired caps.Capabilities) (caps.Capabilities, error)

	// Navigate loads the given URL in the remote browser.
	Navigate(ctx context.Context, url string) error

	// FindElement locates a single element and returns its handle.
	FindElement(ctx context.Context, strategy Strategy, selector string) (ElementRef, error)

	// MoveTo moves the virtual pointer to an offset within an element.
	MoveTo(ctx context.Context, ref ElementRef, xOffset, yOffset int) error

	// Execute evaluates a script in the page and returns the raw JSON
	// result bytes.
	Execute(ctx context.Context, script string) ([]byte, error)

	// Screenshot captures the full viewport and returns it base64-encoded.
	Screenshot(ctx context.Context) (string, error)

	// SetWindowSize resizes the browser window.
	SetWindowSize(ctx context.Context, width, height int) error

	// MaximizeWindow maximizes the browser window.
	MaximizeWindow(ctx context.Context) error

	// Quit terminates the session and releases the channel.
	Quit(ctx context.Context) error
}

// Configurable is implemented by transports that accept connection
// options before session init.
type Configurable interface {
	SetHTTPOptions(opts *config.HTTPOptions)
}
