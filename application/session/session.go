// Package session implements the session controller that drives one
// remote browser for visual-regression capture work.
package session

import (
	"context"
	"log/slog"

	"ocular-go/core/caps"
	"ocular-go/core/config"
	"ocular-go/core/event"
	"ocular-go/core/state"
	"ocular-go/infrastructure/transport"
	"ocular-go/resources"
)

// browserPhantomJS is the one engine whose default window is too small
// to render box shadows reliably; it gets maximized after launch.
const browserPhantomJS = "phantomjs"

// Controller owns exactly one transport handle for its lifetime and
// sequences all calls against it. Operations are issued and awaited by
// the caller in program order; the controller does no internal
// scheduling of its own, so no locking is needed. Independent
// controllers may run concurrently, one per browser under test.
type Controller struct {
	id          string
	cfg         *config.Config
	sessionCaps caps.Capabilities
	transport   transport.Transport
	events      *event.Dispatcher
	logger      *slog.Logger

	state state.SessionState
	caps  caps.Capabilities
}

// Options holds configuration for creating a new Controller.
type Options struct {
	// ID is an opaque caller-chosen identifier used in diagnostics.
	ID string
	// Config provides the endpoint address and launch options.
	Config *config.Config
	// Capabilities are session-level overrides, the highest-precedence
	// capability layer.
	Capabilities caps.Capabilities
	// Transport is the channel to the remote endpoint. The controller
	// takes exclusive ownership until Quit.
	Transport transport.Transport
	// Events is the dispatcher the transport emits diagnostics on. May
	// be nil when Config.Debug is off.
	Events *event.Dispatcher
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a session controller. When Config.Debug is set, the four
// trace observers are attached to the dispatcher; they only format
// diagnostic lines and never influence any result.
func New(opts *Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	events := opts.Events
	if events == nil {
		events = event.NewDispatcher()
	}
	if cfg.Debug {
		events.Attach(newTraceObserver(nil))
	}

	return &Controller{
		id:          opts.ID,
		cfg:         cfg,
		sessionCaps: opts.Capabilities,
		transport:   opts.Transport,
		events:      events,
		logger:      logger.With("session_id", opts.ID),
		state:       state.StateUninitialized,
		// Pre-launch reads see the resolved request; Launch replaces
		// this with what the endpoint actually granted.
		caps: caps.Resolve(caps.Defaults(), cfg.Capabilities, opts.Capabilities),
	}
}

// Launch negotiates the remote session: connection options first, then
// session init with the resolved capabilities, then the optional window
// resize, then maximize for the one engine that needs it.
func (c *Controller) Launch(ctx context.Context) error {
	if err := c.transitionTo(state.StateLaunching); err != nil {
		return err
	}

	if ct, ok := c.transport.(transport.Configurable); ok && c.cfg.HTTP != nil {
		ct.SetHTTPOptions(c.cfg.HTTP)
	}

	desired := caps.Resolve(caps.Defaults(), c.cfg.Capabilities, c.sessionCaps)
	granted, err := c.transport.Init(ctx, desired)
	if err != nil {
		return c.launchFailed(err)
	}
	c.caps = granted

	if ws := c.cfg.WindowSize; ws != nil {
		if err := c.transport.SetWindowSize(ctx, ws.Width, ws.Height); err != nil {
			return c.launchFailed(err)
		}
	}

	if c.caps.BrowserName() == browserPhantomJS {
		if err := c.transport.MaximizeWindow(ctx); err != nil {
			return c.launchFailed(err)
		}
	}

	if err := c.transitionTo(state.StateReady); err != nil {
		return err
	}
	c.logger.Info("session launched", "browser", c.caps.BrowserName())
	return nil
}

// launchFailed classifies a launch failure into the two buckets the
// transport can actually distinguish: connection refusal, or anything
// else.
func (c *Controller) launchFailed(err error) error {
	_ = c.transitionTo(state.StateClosed)

	lerr := &LaunchError{
		SessionID: c.id,
		GridURL:   c.cfg.GridURL,
		Refused:   transport.IsConnectionRefused(err),
		Err:       err,
	}
	c.logger.Error("launch failed", "error", lerr)
	return lerr
}

// Open navigates to url. The pointer is first reset to the document
// body's origin (cursor position left over from a previous page is
// nondeterministic across browsers), then the page is loaded and the
// client script injected; the coverage script follows only when
// coverage collection is configured.
func (c *Controller) Open(ctx context.Context, url string) error {
	body, err := c.transport.FindElement(ctx, transport.ByCSS, "body")
	if err != nil {
		return err
	}
	if err := c.transport.MoveTo(ctx, body, 0, 0); err != nil {
		return err
	}

	if err := c.transport.Navigate(ctx, url); err != nil {
		return err
	}

	if _, err := c.transport.Execute(ctx, resources.ClientScript); err != nil {
		return err
	}
	if c.cfg.Coverage {
		if _, err := c.transport.Execute(ctx, resources.CoverageScript); err != nil {
			return err
		}
	}

	c.logger.Debug("page opened", "url", url)
	return nil
}

// Quit terminates the session and releases the transport handle. Any
// operation after Quit has undefined effect.
func (c *Controller) Quit(ctx context.Context) error {
	err := c.transport.Quit(ctx)
	_ = c.transitionTo(state.StateClosed)
	c.logger.Info("session quit")
	return err
}

// ID returns the caller-chosen session identifier.
func (c *Controller) ID() string {
	return c.id
}

// State returns the current lifecycle state.
func (c *Controller) State() state.SessionState {
	return c.state
}

// BrowserName returns the effective browser identifier. Pure read; no
// transport call.
func (c *Controller) BrowserName() string {
	return c.caps.BrowserName()
}

// Version returns the effective browser version. Pure read.
func (c *Controller) Version() string {
	return c.caps.Version()
}

// Capabilities returns a copy of the effective capability set.
func (c *Controller) Capabilities() caps.Capabilities {
	return c.caps.Clone()
}

// NewActionSequence returns a fresh action-sequence builder bound to
// this controller as its execution context.
func (c *Controller) NewActionSequence() *ActionSequence {
	return &ActionSequence{controller: c}
}

func (c *Controller) transitionTo(target state.SessionState) error {
	if !c.state.CanTransitionTo(target) {
		return state.NewTransitionError(c.state, target, "")
	}
	c.state = target
	return nil
}
