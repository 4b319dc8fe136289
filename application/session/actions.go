package session

import (
	"context"

	"ocular-go/infrastructure/transport"
)

// ActionSequence builds an ordered list of user-interaction steps bound
// to one controller as their execution context. Each NewActionSequence
// call returns a fresh, independent builder.
type ActionSequence struct {
	controller *Controller
	steps      []func(ctx context.Context) error
}

// MoveTo appends a pointer move to an offset within an element.
func (s *ActionSequence) MoveTo(ref transport.ElementRef, xOffset, yOffset int) *ActionSequence {
	s.steps = append(s.steps, func(ctx context.Context) error {
		return s.controller.transport.MoveTo(ctx, ref, xOffset, yOffset)
	})
	return s
}

// ExecuteScript appends an in-page script evaluation.
func (s *ActionSequence) ExecuteScript(script string) *ActionSequence {
	s.steps = append(s.steps, func(ctx context.Context) error {
		_, err := s.controller.transport.Execute(ctx, script)
		return err
	})
	return s
}

// Len returns the number of queued steps.
func (s *ActionSequence) Len() int {
	return len(s.steps)
}

// Perform executes the queued steps in order, stopping at the first
// failure.
func (s *ActionSequence) Perform(ctx context.Context) error {
	for _, step := range s.steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
