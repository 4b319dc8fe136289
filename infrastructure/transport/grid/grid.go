// Package grid implements the transport over a remote Selenium grid.
package grid

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/tebeka/selenium"

	"ocular-go/core/caps"
	"ocular-go/core/config"
	"ocular-go/core/event"
	"ocular-go/infrastructure/transport"
)

// Transport drives a remote browser through the Selenium wire protocol.
// The protocol encoding itself is handled by the selenium client; this
// type only maps verbs and translates failures.
type Transport struct {
	url    string
	events *event.Dispatcher

	mu       sync.Mutex
	wd       selenium.WebDriver
	elements map[transport.ElementRef]selenium.WebElement
	nextRef  int
}

// New creates a transport for the grid at url. The dispatcher may be
// nil, in which case no diagnostics are emitted.
func New(url string, events *event.Dispatcher) *Transport {
	return &Transport{
		url:      url,
		events:   events,
		elements: make(map[transport.ElementRef]selenium.WebElement),
	}
}

// SetHTTPOptions applies transport-level connection options. The
// selenium client shares one HTTP client per process, so options apply
// to every grid transport in it.
func (t *Transport) SetHTTPOptions(opts *config.HTTPOptions) {
	if opts == nil {
		return
	}
	selenium.HTTPClient.Timeout = opts.Timeout.Std()
	selenium.HTTPClient.Transport = &http.Transport{
		DisableKeepAlives: !opts.KeepAlive,
	}
}

// Init negotiates a new session and returns the granted capabilities.
func (t *Transport) Init(ctx context.Context, desired caps.Capabilities) (caps.Capabilities, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.events.Raw("POST", "/session", map[string]any{"desiredCapabilities": desired})
	wd, err := selenium.NewRemote(selenium.Capabilities(desired), t.url)
	if err != nil {
		err = wrapErr(err)
		if transport.IsConnectionRefused(err) {
			t.events.ConnectionError(int(syscallRefusedCode), err.Error())
		}
		return nil, err
	}

	t.mu.Lock()
	t.wd = wd
	t.mu.Unlock()

	granted := desired.Clone()
	if actual, err := wd.Capabilities(); err == nil {
		for k, v := range actual {
			granted[k] = v
		}
	}

	t.events.Status(fmt.Sprintf("session established with %s", t.url))
	t.events.Command("init", granted)
	return granted, nil
}

// Navigate loads the given URL.
func (t *Transport) Navigate(ctx context.Context, url string) error {
	wd, err := t.driver(ctx)
	if err != nil {
		return err
	}

	t.events.Raw("POST", "/session/:id/url", map[string]any{"url": url})
	if err := wd.Get(url); err != nil {
		return wrapErr(err)
	}
	t.events.Command("get", url)
	return nil
}

// FindElement locates a single element and returns an opaque handle.
func (t *Transport) FindElement(ctx context.Context, strategy transport.Strategy, selector string) (transport.ElementRef, error) {
	wd, err := t.driver(ctx)
	if err != nil {
		return "", err
	}

	by := selenium.ByCSSSelector
	if strategy == transport.ByXPath {
		by = selenium.ByXPATH
	}

	t.events.Raw("POST", "/session/:id/element", map[string]any{"using": by, "value": selector})
	el, err := wd.FindElement(by, selector)
	if err != nil {
		return "", wrapErr(err)
	}

	t.mu.Lock()
	t.nextRef++
	ref := transport.ElementRef(fmt.Sprintf("element-%d", t.nextRef))
	t.elements[ref] = el
	t.mu.Unlock()

	t.events.Command("element", string(ref))
	return ref, nil
}

// MoveTo moves the virtual pointer to an offset within an element.
func (t *Transport) MoveTo(ctx context.Context, ref transport.ElementRef, xOffset, yOffset int) error {
	if _, err := t.driver(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	el, ok := t.elements[ref]
	t.mu.Unlock()
	if !ok {
		return fmt.Errorf("grid: unknown element handle %q", ref)
	}

	t.events.Raw("POST", "/session/:id/moveto", map[string]any{
		"element": string(ref), "xoffset": xOffset, "yoffset": yOffset,
	})
	if err := el.MoveTo(xOffset, yOffset); err != nil {
		return wrapErr(err)
	}
	t.events.Command("moveto", nil)
	return nil
}

// Execute evaluates a script in the page and returns raw JSON bytes.
func (t *Transport) Execute(ctx context.Context, script string) ([]byte, error) {
	wd, err := t.driver(ctx)
	if err != nil {
		return nil, err
	}

	t.events.Raw("POST", "/session/:id/execute", map[string]any{"script": script})
	result, err := wd.ExecuteScriptRaw(script, []interface{}{})
	if err != nil {
		return nil, wrapErr(err)
	}
	t.events.Command("execute", string(result))
	return result, nil
}

// Screenshot captures the viewport, base64-encoded.
func (t *Transport) Screenshot(ctx context.Context) (string, error) {
	wd, err := t.driver(ctx)
	if err != nil {
		return "", err
	}

	t.events.Raw("GET", "/session/:id/screenshot", nil)
	// The selenium client decodes the payload; re-encode to keep the
	// verb's base64 contract.
	raw, err := wd.Screenshot()
	if err != nil {
		return "", wrapErr(err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	t.events.Command("takeScreenshot", encoded)
	return encoded, nil
}

// SetWindowSize resizes the current browser window.
func (t *Transport) SetWindowSize(ctx context.Context, width, height int) error {
	wd, err := t.driver(ctx)
	if err != nil {
		return err
	}

	t.events.Raw("POST", "/session/:id/window/size", map[string]any{"width": width, "height": height})
	if err := wd.ResizeWindow("", width, height); err != nil {
		return wrapErr(err)
	}
	t.events.Command("setWindowSize", nil)
	return nil
}

// MaximizeWindow maximizes the current browser window.
func (t *Transport) MaximizeWindow(ctx context.Context) error {
	wd, err := t.driver(ctx)
	if err != nil {
		return err
	}

	t.events.Raw("POST", "/session/:id/window/maximize", nil)
	if err := wd.MaximizeWindow(""); err != nil {
		return wrapErr(err)
	}
	t.events.Command("maximize", nil)
	return nil
}

// Quit terminates the session.
func (t *Transport) Quit(ctx context.Context) error {
	wd, err := t.driver(ctx)
	if err != nil {
		return err
	}

	t.events.Raw("DELETE", "/session/:id", nil)
	err = wd.Quit()

	t.mu.Lock()
	t.wd = nil
	t.elements = make(map[transport.ElementRef]selenium.WebElement)
	t.mu.Unlock()

	if err != nil {
		return wrapErr(err)
	}
	t.events.Status("session terminated")
	return nil
}

func (t *Transport) driver(ctx context.Context) (selenium.WebDriver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	wd := t.wd
	t.mu.Unlock()
	if wd == nil {
		return nil, errors.New("grid: session not initialized")
	}
	return wd, nil
}

// wrapErr converts selenium client failures into command errors
// carrying the legacy wire status, where one is available.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	var se *selenium.Error
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = se.Err
		}
		return &transport.CmdError{Status: se.LegacyCode, Message: msg}
	}
	return err
}

// syscallRefusedCode mirrors ECONNREFUSED for the diagnostic event.
const syscallRefusedCode = 111
