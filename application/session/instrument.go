package session

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// traceObserver formats transport diagnostics as color-coded lines.
// It is attached only in debug mode and has no effect on control flow.
type traceObserver struct {
	out    io.Writer
	conn   *color.Color
	status *color.Color
	cmd    *color.Color
	raw    *color.Color
}

func newTraceObserver(out io.Writer) *traceObserver {
	if out == nil {
		out = os.Stderr
	}
	return &traceObserver{
		out:    out,
		conn:   color.New(color.FgRed),
		status: color.New(color.FgCyan),
		cmd:    color.New(color.FgGreen),
		raw:    color.New(color.FgMagenta),
	}
}

func (o *traceObserver) ConnectionError(code int, message string) {
	o.conn.Fprintf(o.out, "CONNECTION ERROR %d: %s\n", code, message)
}

func (o *traceObserver) Status(message string) {
	o.status.Fprintf(o.out, "STATUS %s\n", message)
}

func (o *traceObserver) Command(name string, response any) {
	if name == "takeScreenshot" || name == "screenshot" {
		response = "<binary-data>"
	}
	o.cmd.Fprintf(o.out, "COMMAND %s: %s\n", name, stringify(response))
}

func (o *traceObserver) Raw(method, path string, body any) {
	o.raw.Fprintf(o.out, "DATA %s %s: %s\n", method, path, stringify(body))
}

// stringify serializes non-string payloads to text before printing.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
		return fmt.Sprint(v)
	}
}
