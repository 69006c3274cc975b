package events

import (
	"context"

	"github.com/polyfeed/polyfeed/models"
)

// TransformEngine converts raw upstream records into canonical events. All
// methods are pure: no I/O, no mutation of their inputs.
type TransformEngine interface {
	TransformBatch(rawEvents []models.RawEvent) ([]models.Event, error)
	TransformEvent(raw *models.RawEvent) (*models.Event, error)
	TransformMarket(raw *models.RawMarket) (*models.Market, error)
}

// Service defines the interface for the events business logic
type Service interface {
	GetEvents(ctx context.Context, offset, limit int) (*models.EventPage, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	SearchEvents(ctx context.Context, query string, offset, limit int) (*models.EventPage, error)

	// RefreshOnce performs one full poll cycle: fetch the primary feed and
	// every injected URL, transform, merge into the cached catalog.
	RefreshOnce(ctx context.Context) error

	AddInjectedURL(rawURL string) (*models.InjectedURL, error)
	RemoveInjectedURL(id string) error
	ListInjectedURLs() []models.InjectedURL
}
