package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"eventify-cli/model"
)

// HydrateLimit bounds the concurrent event lookups of HydrateRegistrations.
const HydrateLimit = 6

type EventGetter interface {
	GetEvent(ctx context.Context, eventID string) (model.Event, error)
}

// HydrateRegistrations fills in the event snapshot of registrations that
// came without one. A failed lookup leaves the registration as it was.
func HydrateRegistrations(ctx context.Context, events EventGetter, regs []model.Registration) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(HydrateLimit)
	for i := range regs {
		if regs[i].Event != nil || regs[i].EventId == "" {
			continue
		}
		g.Go(func() error {
			event, err := events.GetEvent(ctx, regs[i].EventId)
			if err != nil {
				return nil
			}
			regs[i].Event = &event
			return nil
		})
	}
	_ = g.Wait()
}
