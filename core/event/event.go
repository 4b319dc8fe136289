// Package event defines the diagnostic events a transport can emit and
// the observer fan-out that delivers them. Observers are side-effect
// only: no controller result may depend on whether any are attached.
package event

// Observer receives transport diagnostics.
type Observer interface {
	// ConnectionError is invoked when the transport's underlying
	// connection reports an error.
	ConnectionError(code int, message string)

	// Status is invoked for transport status notifications.
	Status(message string)

	// Command is invoked after each protocol command with the request
	// name and the decoded response payload.
	Command(name string, response any)

	// Raw is invoked for each wire-level exchange with the HTTP method,
	// path and request body.
	Raw(method, path string, body any)
}

// Dispatcher fans transport events out to zero or more observers in
// attach order. A nil *Dispatcher is valid and drops all events.
type Dispatcher struct {
	observers []Observer
}

// NewDispatcher creates a dispatcher with the given observers attached.
func NewDispatcher(observers ...Observer) *Dispatcher {
	return &Dispatcher{observers: observers}
}

// Attach adds an observer. Not safe for concurrent use with dispatch;
// attach everything before handing the dispatcher to a transport.
func (d *Dispatcher) Attach(o Observer) {
	if o != nil {
		d.observers = append(d.observers, o)
	}
}

// ConnectionError dispatches a connection error event.
func (d *Dispatcher) ConnectionError(code int, message string) {
	if d == nil {
		return
	}
	for _, o := range d.observers {
		o.ConnectionError(code, message)
	}
}

// Status dispatches a status notification.
func (d *Dispatcher) Status(message string) {
	if d == nil {
		return
	}
	for _, o := range d.observers {
		o.Status(message)
	}
}

// Command dispatches a command trace.
func (d *Dispatcher) Command(name string, response any) {
	if d == nil {
		return
	}
	for _, o := range d.observers {
		o.Command(name, response)
	}
}

// Raw dispatches a wire-level trace.
func (d *Dispatcher) Raw(method, path string, body any) {
	if d == nil {
		return
	}
	for _, o := range d.observers {
		o.Raw(method, path, body)
	}
}
