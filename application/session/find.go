package session

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ocular-go/infrastructure/transport"
)

// FindElement locates a single element by CSS selector.
func (c *Controller) FindElement(ctx context.Context, selector string) (transport.ElementRef, error) {
	return c.find(ctx, transport.ByCSS, selector)
}

// FindByXPath locates a single element by XPath expression.
func (c *Controller) FindByXPath(ctx context.Context, selector string) (transport.ElementRef, error) {
	return c.find(ctx, transport.ByXPath, selector)
}

// find attaches the originating selector to no-such-element failures so
// the caller can report which selector failed. Every other failure
// passes through unmodified.
func (c *Controller) find(ctx context.Context, strategy transport.Strategy, selector string) (transport.ElementRef, error) {
	ref, err := c.transport.FindElement(ctx, strategy, selector)
	if err != nil {
		if status, ok := transport.StatusOf(err); ok && status == transport.StatusNoSuchElement {
			return "", &LookupError{Selector: selector, Err: err}
		}
		return "", err
	}
	return ref, nil
}

// FindElements locates several CSS selectors, issuing the lookups
// independently and joining the results in input order. The batch fails
// with the first lookup error.
func (c *Controller) FindElements(ctx context.Context, selectors ...string) ([]transport.ElementRef, error) {
	refs := make([]transport.ElementRef, len(selectors))

	g, gctx := errgroup.WithContext(ctx)
	for i, sel := range selectors {
		g.Go(func() error {
			ref, err := c.FindElement(gctx, sel)
			if err != nil {
				return err
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}
