package notify

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Fanout delivers each notification to every sink concurrently and returns
// the first error once all sinks have finished. A failing sink does not
// cancel the others.
type Fanout []Sink

func (f Fanout) Notify(ctx context.Context, n Notification) error {
	if len(f) == 1 {
		return f[0].Notify(ctx, n)
	}
	var g errgroup.Group
	for _, s := range f {
		g.Go(func() error {
			return s.Notify(ctx, n)
		})
	}
	return g.Wait()
}
