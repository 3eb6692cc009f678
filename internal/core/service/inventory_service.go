package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sweetshop/storefront/internal/core/cache"
	"github.com/sweetshop/storefront/internal/core/domain"
	"github.com/sweetshop/storefront/internal/core/ports"
	"github.com/sweetshop/storefront/internal/metrics"
)

// DefaultErrorSummaryWords bounds how much of a remote error message is
// shown to the user. The remote service returns verbose framework
// validation text on bad admin input.
const DefaultErrorSummaryWords = 15

// InventoryService executes the stock-mutating commands. Every command is
// role-gated locally before any remote call; purchase applies a confirmed
// decrement to the cache, while admin mutations refetch the catalog because
// the server is the sole source of truth for their result.
type InventoryService struct {
	gateway      ports.CatalogGateway
	catalog      *CatalogService
	cache        *cache.Catalog
	session      *SessionService
	validate     *validator.Validate
	summaryWords int
	logger       zerolog.Logger
}

func NewInventoryService(gateway ports.CatalogGateway, catalog *CatalogService, c *cache.Catalog, session *SessionService, summaryWords int, logger zerolog.Logger) *InventoryService {
	if summaryWords <= 0 {
		summaryWords = DefaultErrorSummaryWords
	}
	return &InventoryService{
		gateway:      gateway,
		catalog:      catalog,
		cache:        c,
		session:      session,
		validate:     validator.New(),
		summaryWords: summaryWords,
		logger:       logger,
	}
}

// Purchase buys one unit of a sweet. On server confirmation the cached
// quantity drops by exactly one; no full refetch happens on this path, and
// a failed purchase leaves the cache untouched.
func (s *InventoryService) Purchase(ctx context.Context, id string) error {
	if err := s.session.Require(domain.RoleUser); err != nil {
		metrics.CommandsTotal.WithLabelValues("purchase", "rejected").Inc()
		return err
	}

	if cached, ok := s.cache.Get(id); ok && cached.Quantity <= 0 {
		metrics.CommandsTotal.WithLabelValues("purchase", "rejected").Inc()
		return fmt.Errorf("%w: %s", domain.ErrOutOfStock, cached.Name)
	}

	if err := s.gateway.Purchase(ctx, id); err != nil {
		metrics.CommandsTotal.WithLabelValues("purchase", "failed").Inc()
		s.logger.Error().Err(err).Str("id", id).Msg("purchase failed")
		return fmt.Errorf("%w: %v", domain.ErrPurchaseFailed, err)
	}

	// the server has committed the sale; mirror it without a round trip
	s.cache.DecrementQuantity(id)
	metrics.CommandsTotal.WithLabelValues("purchase", "ok").Inc()
	s.logger.Info().Str("id", id).Msg("sweet purchased")
	return nil
}

// Restock asks the server to add one unit. The new quantity comes from a
// full refetch, never a local increment: the client has no delta guarantee.
func (s *InventoryService) Restock(ctx context.Context, id string) error {
	if err := s.session.Require(domain.RoleAdmin); err != nil {
		metrics.CommandsTotal.WithLabelValues("restock", "rejected").Inc()
		return err
	}

	if err := s.gateway.Restock(ctx, id); err != nil {
		metrics.CommandsTotal.WithLabelValues("restock", "failed").Inc()
		s.logger.Error().Err(err).Str("id", id).Msg("restock failed")
		return fmt.Errorf("%w: %v", domain.ErrRestockFailed, err)
	}

	s.refreshCatalog(ctx)
	metrics.CommandsTotal.WithLabelValues("restock", "ok").Inc()
	s.logger.Info().Str("id", id).Msg("sweet restocked")
	return nil
}

// Create adds a new sweet to the catalog.
func (s *InventoryService) Create(ctx context.Context, input ports.SweetInput) error {
	if err := s.session.Require(domain.RoleAdmin); err != nil {
		metrics.CommandsTotal.WithLabelValues("create", "rejected").Inc()
		return err
	}

	fields, err := s.parseInput(input)
	if err != nil {
		metrics.CommandsTotal.WithLabelValues("create", "rejected").Inc()
		return err
	}

	if _, err := s.gateway.Create(ctx, fields); err != nil {
		metrics.CommandsTotal.WithLabelValues("create", "failed").Inc()
		s.logger.Error().Err(err).Str("name", fields.Name).Msg("create failed")
		return s.mutationError(err)
	}

	s.refreshCatalog(ctx)
	metrics.CommandsTotal.WithLabelValues("create", "ok").Inc()
	s.logger.Info().Str("name", fields.Name).Msg("sweet created")
	return nil
}

// Update replaces the fields of an existing sweet.
func (s *InventoryService) Update(ctx context.Context, id string, input ports.SweetInput) error {
	if err := s.session.Require(domain.RoleAdmin); err != nil {
		metrics.CommandsTotal.WithLabelValues("update", "rejected").Inc()
		return err
	}

	fields, err := s.parseInput(input)
	if err != nil {
		metrics.CommandsTotal.WithLabelValues("update", "rejected").Inc()
		return err
	}

	if _, err := s.gateway.Update(ctx, id, fields); err != nil {
		metrics.CommandsTotal.WithLabelValues("update", "failed").Inc()
		s.logger.Error().Err(err).Str("id", id).Msg("update failed")
		return s.mutationError(err)
	}

	s.refreshCatalog(ctx)
	metrics.CommandsTotal.WithLabelValues("update", "ok").Inc()
	s.logger.Info().Str("id", id).Msg("sweet updated")
	return nil
}

// Delete removes a sweet. Confirmation is the caller's concern.
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if err := s.session.Require(domain.RoleAdmin); err != nil {
		metrics.CommandsTotal.WithLabelValues("delete", "rejected").Inc()
		return err
	}

	if err := s.gateway.Delete(ctx, id); err != nil {
		metrics.CommandsTotal.WithLabelValues("delete", "failed").Inc()
		s.logger.Error().Err(err).Str("id", id).Msg("delete failed")
		return s.mutationError(err)
	}

	s.refreshCatalog(ctx)
	metrics.CommandsTotal.WithLabelValues("delete", "ok").Inc()
	s.logger.Info().Str("id", id).Msg("sweet deleted")
	return nil
}

// refreshCatalog pulls the authoritative listing after an admin mutation.
// The mutation itself already committed, so a failed refresh only means the
// cache stays stale until the next fetch.
func (s *InventoryService) refreshCatalog(ctx context.Context) {
	if _, err := s.catalog.Fetch(ctx, domain.Filter{}); err != nil {
		s.logger.Warn().Err(err).Msg("catalog refresh failed, keeping stale cache")
	}
}

// parseInput turns raw form-shaped input into a validated payload. Price
// must parse as a non-negative decimal and quantity as a non-negative
// integer; nothing is sent to the server otherwise.
func (s *InventoryService) parseInput(input ports.SweetInput) (ports.SweetFields, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(input.Price), 64)
	if err != nil || math.IsInf(price, 0) || math.IsNaN(price) {
		return ports.SweetFields{}, fmt.Errorf("%w: price %q is not a finite number", domain.ErrInvalidInput, input.Price)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(input.Quantity))
	if err != nil {
		return ports.SweetFields{}, fmt.Errorf("%w: quantity %q is not an integer", domain.ErrInvalidInput, input.Quantity)
	}

	fields := ports.SweetFields{
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
		Price:    price,
		Quantity: quantity,
	}
	if err := s.validate.Struct(fields); err != nil {
		return ports.SweetFields{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return fields, nil
}

// mutationError wraps a remote create/update/delete failure, trimming the
// server's message so framework stack traces never reach the user.
func (s *InventoryService) mutationError(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrMutationFailed, summarize(err.Error(), s.summaryWords))
}

// summarize keeps the first n whitespace-separated words of msg.
func summarize(msg string, n int) string {
	words := strings.Fields(msg)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}
