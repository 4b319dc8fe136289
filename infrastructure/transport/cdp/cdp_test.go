package cdp

import (
	"context"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts == nil {
		t.Fatal("DefaultOptions returned nil")
	}
	if !opts.Headless {
		t.Error("Headless = false, want true")
	}
	if opts.WindowWidth != 1280 || opts.WindowHeight != 1024 {
		t.Errorf("window = %dx%d, want 1280x1024", opts.WindowWidth, opts.WindowHeight)
	}
	if !opts.HideScrollbars {
		t.Error("HideScrollbars = false, want true")
	}
}

func TestNew_NilOptions(t *testing.T) {
	tr := New(nil, nil)
	if tr == nil {
		t.Fatal("New returned nil")
	}
	if tr.opts == nil {
		t.Fatal("transport options are nil")
	}
}

func TestVerbs_NotRunning(t *testing.T) {
	tr := New(nil, nil)
	ctx := context.Background()

	if err := tr.Navigate(ctx, "http://example.com"); err == nil {
		t.Error("Navigate() expected error before Init()")
	}
	if _, err := tr.Execute(ctx, "1"); err == nil {
		t.Error("Execute() expected error before Init()")
	}
	if _, err := tr.Screenshot(ctx); err == nil {
		t.Error("Screenshot() expected error before Init()")
	}
}

func TestQuit_NotRunning(t *testing.T) {
	tr := New(nil, nil)

	// Should not panic or error when quitting a transport that was never started.
	if err := tr.Quit(context.Background()); err != nil {
		t.Errorf("Quit() returned error: %v", err)
	}
}

func TestVerbs_CancelledContext(t *testing.T) {
	tr := New(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tr.Navigate(ctx, "http://example.com"); err != context.Canceled {
		t.Errorf("Navigate() error = %v, want context.Canceled", err)
	}
}
