package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"ocular-go/resources"
)

// PrepareScreenshot runs phase one of the capture protocol: a single
// in-page evaluation of the prepareScreenshot hook with the selector
// list and the options map. The hook's envelope decides the outcome;
// on success the payload is returned untouched. Phase two
// (CaptureFullscreenImage) is never chained automatically; composing
// the phases is the caller's job.
func (c *Controller) PrepareScreenshot(ctx context.Context, selectors []string, opts map[string]any) (json.RawMessage, error) {
	if opts == nil {
		opts = map[string]any{}
	}

	selJSON, err := json.Marshal(selectors)
	if err != nil {
		return nil, fmt.Errorf("prepare screenshot: bad selector list: %w", err)
	}
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("prepare screenshot: bad options: %w", err)
	}

	command := fmt.Sprintf("window.%s.prepareScreenshot(%s, %s)",
		resources.HookName, selJSON, optsJSON)

	raw, err := c.transport.Execute(ctx, command)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("prepare screenshot: malformed hook response: %w", err)
	}
	if envelope.Error {
		return nil, &StateError{Message: envelope.Message}
	}
	return json.RawMessage(raw), nil
}

// CaptureFullscreenImage runs phase two: a full-viewport screenshot
// from the transport, decoded from base64 into an Image.
func (c *Controller) CaptureFullscreenImage(ctx context.Context) (*Image, error) {
	encoded, err := c.transport.Screenshot(ctx)
	if err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("capture: invalid base64 screenshot payload: %w", err)
	}
	return NewImage(data), nil
}
