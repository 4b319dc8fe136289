// Package cdp implements the transport against a locally launched
// Chrome over the DevTools protocol. It exists so the controller can be
// exercised without a running grid; the verb contract is identical.
package cdp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"sync"

	"github.com/chromedp/cdproto/browser"
	cdp "github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"

	"ocular-go/core/caps"
	"ocular-go/core/event"
	"ocular-go/infrastructure/transport"
)

// Options holds launch options for the local browser.
type Options struct {
	// Headless runs the browser without a visible window.
	Headless bool

	// WindowWidth is the initial browser window width.
	WindowWidth int

	// WindowHeight is the initial browser window height.
	WindowHeight int

	// DisableGPU disables GPU acceleration.
	DisableGPU bool

	// HideScrollbars hides scrollbars in captures.
	HideScrollbars bool

	// UserDataDir specifies a custom user data directory.
	UserDataDir string
}

// DefaultOptions returns launch options suited for capture work.
func DefaultOptions() *Options {
	return &Options{
		Headless:       true,
		WindowWidth:    1280,
		WindowHeight:   1024,
		HideScrollbars: true,
	}
}

// Transport drives a local Chrome instance through chromedp.
type Transport struct {
	opts   *Options
	events *event.Dispatcher

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	running     bool
}

// New creates a local-Chrome transport. The dispatcher may be nil.
func New(opts *Options, events *event.Dispatcher) *Transport {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Transport{opts: opts, events: events}
}

func (t *Transport) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", t.opts.Headless),
		chromedp.Flag("hide-scrollbars", t.opts.HideScrollbars),
		chromedp.Flag("disable-gpu", t.opts.DisableGPU),
		chromedp.WindowSize(t.opts.WindowWidth, t.opts.WindowHeight),
	)
	if t.opts.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(t.opts.UserDataDir))
	}
	return opts
}

// Init launches the browser and synthesizes the granted capabilities.
func (t *Transport) Init(ctx context.Context, desired caps.Capabilities) (caps.Capabilities, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return nil, fmt.Errorf("cdp: browser already running")
	}

	// Allocate from context.Background() so the browser lifecycle is
	// independent of the caller's context.
	t.allocCtx, t.allocCancel = chromedp.NewExecAllocator(
		context.Background(),
		t.allocatorOptions()...,
	)
	t.ctx, t.cancel = chromedp.NewContext(t.allocCtx)

	if err := chromedp.Run(t.ctx); err != nil {
		t.cleanupLocked()
		if transport.IsConnectionRefused(err) {
			t.events.ConnectionError(0, err.Error())
		}
		return nil, err
	}
	t.running = true

	granted := desired.Clone()
	if granted.BrowserName() == "" {
		granted[caps.KeyBrowserName] = "chrome"
	}

	t.events.Status("local browser started")
	t.events.Command("init", granted)
	return granted, nil
}

// Navigate loads the given URL.
func (t *Transport) Navigate(ctx context.Context, url string) error {
	browserCtx, err := t.browserCtx(ctx)
	if err != nil {
		return err
	}

	t.events.Raw("CDP", "Page.navigate", url)
	if err := chromedp.Run(browserCtx, chromedp.Navigate(url)); err != nil {
		return err
	}
	t.events.Command("get", url)
	return nil
}

// FindElement locates a single element and returns its node id as the
// opaque handle. A lookup that matches nothing maps to the protocol's
// no-such-element status so callers see one failure shape across
// transports.
func (t *Transport) FindElement(ctx context.Context, strategy transport.Strategy, selector string) (transport.ElementRef, error) {
	browserCtx, err := t.browserCtx(ctx)
	if err != nil {
		return "", err
	}

	t.events.Raw("CDP", "DOM.querySelector", selector)
	var nodeID cdp.NodeID
	err = chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		root, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		if strategy == transport.ByXPath {
			nodeID, err = queryByXPath(ctx, selector)
			return err
		}
		nodeID, err = dom.QuerySelector(root.NodeID, selector).Do(ctx)
		return err
	}))
	if err != nil {
		return "", err
	}
	if nodeID == 0 {
		return "", &transport.CmdError{
			Status:  transport.StatusNoSuchElement,
			Message: "no such element",
		}
	}

	ref := transport.ElementRef(strconv.FormatInt(int64(nodeID), 10))
	t.events.Command("element", string(ref))
	return ref, nil
}

func queryByXPath(ctx context.Context, expr string) (cdp.NodeID, error) {
	searchID, count, err := dom.PerformSearch(expr).Do(ctx)
	if err != nil {
		return 0, err
	}
	defer dom.DiscardSearchResults(searchID).Do(ctx)

	if count == 0 {
		return 0, nil
	}
	ids, err := dom.GetSearchResults(searchID, 0, 1).Do(ctx)
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	return ids[0], nil
}

// MoveTo moves the pointer to an offset within the element's box.
func (t *Transport) MoveTo(ctx context.Context, ref transport.ElementRef, xOffset, yOffset int) error {
	browserCtx, err := t.browserCtx(ctx)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(string(ref), 10, 64)
	if err != nil {
		return fmt.Errorf("cdp: bad element handle %q", ref)
	}

	t.events.Raw("CDP", "Input.dispatchMouseEvent", ref)
	err = chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		box, err := dom.GetBoxModel().WithNodeID(cdp.NodeID(id)).Do(ctx)
		if err != nil {
			return err
		}
		// Content quad starts at the element's top-left corner.
		x := box.Content[0] + float64(xOffset)
		y := box.Content[1] + float64(yOffset)

		p := &input.DispatchMouseEventParams{
			Type: input.MouseMoved,
			X:    x,
			Y:    y,
		}
		return p.Do(ctx)
	}))
	if err != nil {
		return err
	}
	t.events.Command("moveto", nil)
	return nil
}

// Execute evaluates a script and returns raw JSON result bytes.
func (t *Transport) Execute(ctx context.Context, script string) ([]byte, error) {
	browserCtx, err := t.browserCtx(ctx)
	if err != nil {
		return nil, err
	}

	t.events.Raw("CDP", "Runtime.evaluate", script)
	var raw []byte
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(script, &raw)); err != nil {
		return nil, err
	}
	t.events.Command("execute", string(raw))
	return raw, nil
}

// Screenshot captures the viewport, base64-encoded.
func (t *Transport) Screenshot(ctx context.Context) (string, error) {
	browserCtx, err := t.browserCtx(ctx)
	if err != nil {
		return "", err
	}

	t.events.Raw("CDP", "Page.captureScreenshot", nil)
	var buf []byte
	if err := chromedp.Run(browserCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return "", fmt.Errorf("cdp: failed to capture screenshot: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(buf)
	t.events.Command("takeScreenshot", encoded)
	return encoded, nil
}

// SetWindowSize adjusts the emulated viewport.
func (t *Transport) SetWindowSize(ctx context.Context, width, height int) error {
	browserCtx, err := t.browserCtx(ctx)
	if err != nil {
		return err
	}

	t.events.Raw("CDP", "Emulation.setDeviceMetricsOverride", fmt.Sprintf("%dx%d", width, height))
	if err := chromedp.Run(browserCtx, chromedp.EmulateViewport(int64(width), int64(height))); err != nil {
		return err
	}
	t.events.Command("setWindowSize", nil)
	return nil
}

// MaximizeWindow maximizes the browser window.
func (t *Transport) MaximizeWindow(ctx context.Context) error {
	browserCtx, err := t.browserCtx(ctx)
	if err != nil {
		return err
	}

	t.events.Raw("CDP", "Browser.setWindowBounds", "maximized")
	err = chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		windowID, _, err := browser.GetWindowForTarget().Do(ctx)
		if err != nil {
			return err
		}
		return browser.SetWindowBounds(windowID, &browser.Bounds{
			WindowState: browser.WindowStateMaximized,
		}).Do(ctx)
	}))
	if err != nil {
		return err
	}
	t.events.Command("maximize", nil)
	return nil
}

// Quit closes the browser and releases resources.
func (t *Transport) Quit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}
	t.cleanupLocked()
	t.events.Status("local browser stopped")
	return nil
}

func (t *Transport) cleanupLocked() {
	t.running = false
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if t.allocCancel != nil {
		t.allocCancel()
		t.allocCancel = nil
	}
	t.ctx = nil
	t.allocCtx = nil
}

func (t *Transport) browserCtx(ctx context.Context) (context.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	browserCtx := t.ctx
	running := t.running
	t.mu.Unlock()
	if !running || browserCtx == nil {
		return nil, fmt.Errorf("cdp: browser not running")
	}
	return browserCtx, nil
}
