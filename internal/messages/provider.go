package messages

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Formula-SAE/signupspark/internal/store"
)

// Notice describes a completed signup. Organizer is nil when nobody is
// signed in.
type Notice struct {
	Campaign  store.Campaign
	Task      store.Task
	Organizer *store.UserProfile
}

type Provider interface {
	Name() string
	Notify(ctx context.Context, notice Notice) error
}

type ProviderGroup struct {
	providers []Provider
}

// NewProviderGroup skips nil providers so optional integrations can be
// passed straight through.
func NewProviderGroup(providers ...Provider) *ProviderGroup {
	g := &ProviderGroup{}
	for _, p := range providers {
		if p != nil {
			g.providers = append(g.providers, p)
		}
	}
	return g
}

func (g *ProviderGroup) Len() int {
	return len(g.providers)
}

// Notify delivers to every provider. A failing provider does not stop the
// others; all failures are returned together.
func (g *ProviderGroup) Notify(ctx context.Context, notice Notice) error {
	var errs []error
	for _, p := range g.providers {
		if err := p.Notify(ctx, notice); err != nil {
			log.Printf("[notify] %s provider failed: %v", p.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
