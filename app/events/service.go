package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/polyfeed/polyfeed/internal/cache"
	"github.com/polyfeed/polyfeed/internal/gamma"
	"github.com/polyfeed/polyfeed/internal/logger"
	"github.com/polyfeed/polyfeed/models"
)

// catalogCacheKey holds the full transformed event list. Pagination slices it
// on read; the poller replaces it wholesale on each cycle.
const catalogCacheKey = "events:catalog"

// service implements the Service interface
type service struct {
	config   *Config
	engine   TransformEngine
	gamma    gamma.Client
	cache    cache.Cache[[]models.Event]
	registry *URLRegistry
	logger   logger.Logger
}

// NewService creates a new events service
func NewService(
	config *Config,
	engine TransformEngine,
	client gamma.Client,
	c cache.Cache[[]models.Event],
	registry *URLRegistry,
	log logger.Logger,
) Service {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &service{
		config:   config,
		engine:   engine,
		gamma:    client,
		cache:    c,
		registry: registry,
		logger:   log,
	}
}

// GetEvents returns one page of the event catalog, refreshing it from the
// upstream on a cache miss.
func (s *service) GetEvents(ctx context.Context, offset, limit int) (*models.EventPage, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return s.paginate(catalog, offset, limit), nil
}

// GetEventByID returns a single transformed event from the catalog.
func (s *service) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], nil
		}
	}
	return nil, models.ErrRecordNotFound
}

// SearchEvents filters the catalog by case-insensitive substring match on
// title, slug and tag labels, then paginates the matches.
func (s *service) SearchEvents(ctx context.Context, query string, offset, limit int) (*models.EventPage, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]models.Event, 0)
	for _, event := range catalog {
		if eventMatches(&event, needle) {
			matches = append(matches, event)
		}
	}
	return s.paginate(matches, offset, limit), nil
}

func eventMatches(event *models.Event, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(event.Title), needle) ||
		strings.Contains(strings.ToLower(event.Slug), needle) {
		return true
	}
	for _, tag := range event.Tags {
		if strings.Contains(strings.ToLower(tag.Label), needle) ||
			strings.Contains(strings.ToLower(tag.Slug), needle) {
			return true
		}
	}
	return false
}

// RefreshOnce runs one poll cycle. Each source is fetched independently; a
// failing injected URL is logged and skipped so it cannot poison the primary
// feed. The fresh batch is transformed and merged into the cached catalog,
// which makes re-running a cycle with unchanged upstream data a no-op.
func (s *service) RefreshOnce(ctx context.Context) error {
	raw, err := s.gamma.FetchEvents(ctx, s.config.PrimaryFeedPath, map[string]string{
		"limit":  strconv.Itoa(s.config.PrimaryFeedLimit),
		"closed": "false",
	})
	if err != nil {
		s.logger.Error(err, map[string]interface{}{"source": "primary", "path": s.config.PrimaryFeedPath})
		raw = nil
	}

	fetched := raw != nil
	for _, injected := range s.registry.List() {
		extra, fetchErr := s.gamma.FetchEvents(ctx, injected.Path, injected.Params)
		if fetchErr != nil {
			s.logger.Error(fetchErr, map[string]interface{}{"source": "injected", "url": injected.URL})
			continue
		}
		fetched = true
		raw = append(raw, extra...)
	}

	if !fetched {
		return fmt.Errorf("events: every feed source failed")
	}

	fresh, err := s.engine.TransformBatch(raw)
	if err != nil {
		return err
	}

	base, err := s.cache.Get(ctx, catalogCacheKey)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Error(err, map[string]interface{}{"key": catalogCacheKey})
		base = nil
	}

	merged := MergeEvents(base, fresh)
	if err := s.cache.Set(ctx, catalogCacheKey, merged, s.config.CacheTTL); err != nil {
		return fmt.Errorf("events: failed to store catalog: %w", err)
	}

	s.logger.Info("event catalog refreshed", map[string]interface{}{
		"fetched": len(raw),
		"catalog": len(merged),
	})
	return nil
}

// AddInjectedURL validates and registers an extra feed URL. Adding a URL that
// is already registered returns the existing registration.
func (s *service) AddInjectedURL(rawURL string) (*models.InjectedURL, error) {
	entry, err := models.NewInjectedURL(rawURL)
	if err != nil {
		return nil, err
	}
	registered, err := s.registry.Add(*entry)
	if err != nil {
		return nil, err
	}
	return &registered, nil
}

// RemoveInjectedURL unregisters a URL by id.
func (s *service) RemoveInjectedURL(id string) error {
	if !s.registry.Remove(id) {
		return models.ErrRecordNotFound
	}
	return nil
}

// ListInjectedURLs returns the registered URLs in insertion order.
func (s *service) ListInjectedURLs() []models.InjectedURL {
	return s.registry.List()
}

// catalog returns the cached event list, running a refresh cycle first when
// the cache is cold.
func (s *service) catalog(ctx context.Context) ([]models.Event, error) {
	catalog, err := s.cache.Get(ctx, catalogCacheKey)
	if err == nil {
		return catalog, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, fmt.Errorf("events: failed to read catalog: %w", err)
	}

	if err := s.RefreshOnce(ctx); err != nil {
		return nil, err
	}
	catalog, err = s.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		return nil, fmt.Errorf("events: catalog unavailable after refresh: %w", err)
	}
	return catalog, nil
}

// paginate slices the list with clamped offset and limit. Out-of-range
// offsets yield an empty page rather than an error.
func (s *service) paginate(all []models.Event, offset, limit int) *models.EventPage {
	if limit <= 0 {
		limit = s.config.DefaultPageLimit
	}
	if limit > s.config.MaxPageLimit {
		limit = s.config.MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	total := len(all)
	page := []models.Event{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = all[offset:end]
	}

	return &models.EventPage{
		Events: page,
		Pagination: models.Pagination{
			HasMore:      offset+len(page) < total,
			TotalResults: total,
			Offset:       offset,
			Limit:        limit,
		},
	}
}
