package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sweetshop/storefront/internal/core/cache"
	"github.com/sweetshop/storefront/internal/core/domain"
	"github.com/sweetshop/storefront/internal/core/ports"
	"github.com/sweetshop/storefront/internal/metrics"
)

// CatalogService fetches the remote catalog and keeps the local cache
// current. Filtered search may be gated to authenticated callers while the
// plain listing stays public, so a forbidden search downgrades once to the
// unfiltered listing instead of failing.
type CatalogService struct {
	gateway ports.CatalogGateway
	cache   *cache.Catalog
	logger  zerolog.Logger
}

func NewCatalogService(gateway ports.CatalogGateway, catalog *cache.Catalog, logger zerolog.Logger) *CatalogService {
	return &CatalogService{gateway: gateway, cache: catalog, logger: logger}
}

// Fetch retrieves the catalog, replacing the cache wholesale on success.
// On any failure the cache keeps its last-known-good content.
func (s *CatalogService) Fetch(ctx context.Context, filter domain.Filter) ([]domain.Sweet, error) {
	mode := "search"
	if filter.Empty() {
		mode = "list"
	}
	timer := prometheus.NewTimer(metrics.FetchDuration.WithLabelValues(mode))
	defer timer.ObserveDuration()

	sweets, err := s.fetchOnce(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("mode", mode).Msg("catalog fetch failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	s.cache.Replace(sweets)
	s.logger.Debug().Int("count", len(sweets)).Str("mode", mode).Msg("catalog refreshed")
	return sweets, nil
}

// fetchOnce performs the remote call, downgrading a forbidden filtered
// search to the public listing exactly once. A forbidden listing response
// propagates; the fallback never recurses.
func (s *CatalogService) fetchOnce(ctx context.Context, filter domain.Filter) ([]domain.Sweet, error) {
	if filter.Empty() {
		return s.gateway.List(ctx)
	}

	sweets, err := s.gateway.Search(ctx, filter)
	if errors.Is(err, domain.ErrForbidden) {
		metrics.FetchFallbackTotal.Inc()
		s.logger.Warn().Msg("filtered search forbidden, falling back to public listing")
		return s.gateway.List(ctx)
	}
	return sweets, err
}

// Cached returns the last-known-good catalog view in fetch order.
func (s *CatalogService) Cached() []domain.Sweet {
	return s.cache.Items()
}
