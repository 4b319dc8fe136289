package event

import (
	"fmt"
	"testing"
)

// recordObserver records every event it receives as a formatted line.
type recordObserver struct {
	lines []string
}

func (r *recordObserver) ConnectionError(code int, message string) {
	r.lines = append(r.lines, fmt.Sprintf("conn:%d:%s", code, message))
}

func (r *recordObserver) Status(message string) {
	r.lines = append(r.lines, "status:"+message)
}

func (r *recordObserver) Command(name string, response any) {
	r.lines = append(r.lines, fmt.Sprintf("cmd:%s:%v", name, response))
}

func (r *recordObserver) Raw(method, path string, body any) {
	r.lines = append(r.lines, fmt.Sprintf("raw:%s:%s:%v", method, path, body))
}

func TestDispatcher_FanOut(t *testing.T) {
	first := &recordObserver{}
	second := &recordObserver{}
	d := NewDispatcher(first, second)

	d.ConnectionError(111, "refused")
	d.Status("ready")
	d.Command("screenshot", "<payload>")
	d.Raw("POST", "/session/1/url", map[string]any{"url": "http://x"})

	for i, obs := range []*recordObserver{first, second} {
		if len(obs.lines) != 4 {
			t.Fatalf("observer %d received %d events, want 4", i, len(obs.lines))
		}
		if obs.lines[0] != "conn:111:refused" {
			t.Errorf("observer %d line 0 = %q", i, obs.lines[0])
		}
		if obs.lines[1] != "status:ready" {
			t.Errorf("observer %d line 1 = %q", i, obs.lines[1])
		}
	}
}

func TestDispatcher_AttachOrder(t *testing.T) {
	var order []string
	d := NewDispatcher()
	for _, name := range []string{"a", "b", "c"} {
		d.Attach(observerFunc(func() { order = append(order, name) }))
	}

	d.Status("x")

	if got := fmt.Sprint(order); got != "[a b c]" {
		t.Errorf("dispatch order = %v, want [a b c]", order)
	}
}

func TestDispatcher_NilSafe(t *testing.T) {
	var d *Dispatcher

	// Must not panic.
	d.ConnectionError(1, "x")
	d.Status("x")
	d.Command("x", nil)
	d.Raw("GET", "/", nil)
}

func TestDispatcher_AttachNilIgnored(t *testing.T) {
	d := NewDispatcher()
	d.Attach(nil)
	d.Status("x") // must not panic
}

// observerFunc adapts a func to Observer for ordering tests.
type observerFunc func()

func (f observerFunc) ConnectionError(int, string) { f() }
func (f observerFunc) Status(string)               { f() }
func (f observerFunc) Command(string, any)         { f() }
func (f observerFunc) Raw(string, string, any)     { f() }
