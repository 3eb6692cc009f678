package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sweetshop/storefront/internal/core/cache"
	"github.com/sweetshop/storefront/internal/core/domain"
	"github.com/sweetshop/storefront/internal/core/ports"
)

// stubGateway is an in-memory ports.CatalogGateway shared by the catalog
// and inventory tests.
type stubGateway struct {
	sweets []domain.Sweet

	listErr     error
	searchErr   error
	purchaseErr error
	restockErr  error
	createErr   error
	updateErr   error
	deleteErr   error

	listCalls     int
	searchCalls   int
	purchaseCalls int
	restockCalls  int
	createCalls   int
	updateCalls   int
	deleteCalls   int

	lastFilter domain.Filter
}

func (g *stubGateway) List(_ context.Context) ([]domain.Sweet, error) {
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.sweets, nil
}

func (g *stubGateway) Search(_ context.Context, filter domain.Filter) ([]domain.Sweet, error) {
	g.searchCalls++
	g.lastFilter = filter
	if g.searchErr != nil {
		return nil, g.searchErr
	}
	return g.sweets, nil
}

func (g *stubGateway) Create(_ context.Context, fields ports.SweetFields) (*domain.Sweet, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &domain.Sweet{ID: "new", Name: fields.Name, Category: fields.Category, Price: fields.Price, Quantity: fields.Quantity}, nil
}

func (g *stubGateway) Update(_ context.Context, id string, fields ports.SweetFields) (*domain.Sweet, error) {
	g.updateCalls++
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	return &domain.Sweet{ID: id, Name: fields.Name, Category: fields.Category, Price: fields.Price, Quantity: fields.Quantity}, nil
}

func (g *stubGateway) Delete(_ context.Context, id string) error {
	g.deleteCalls++
	return g.deleteErr
}

func (g *stubGateway) Purchase(_ context.Context, id string) error {
	g.purchaseCalls++
	return g.purchaseErr
}

func (g *stubGateway) Restock(_ context.Context, id string) error {
	g.restockCalls++
	return g.restockErr
}

func sampleSweets() []domain.Sweet {
	return []domain.Sweet{
		{ID: "1", Name: "Gulab Jamun", Category: "indian", Price: 12.50, Quantity: 8},
		{ID: "2", Name: "Fudge", Category: "western", Price: 5, Quantity: 3},
	}
}

func TestCatalogService_FetchUnfiltered(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	store := cache.NewCatalog()
	svc := NewCatalogService(gw, store, zerolog.Nop())

	sweets, err := svc.Fetch(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if gw.listCalls != 1 || gw.searchCalls != 0 {
		t.Fatalf("expected 1 list / 0 search calls, got %d/%d", gw.listCalls, gw.searchCalls)
	}
	if len(sweets) != 2 || store.Len() != 2 {
		t.Fatalf("cache not replaced: %d items returned, %d cached", len(sweets), store.Len())
	}
}

func TestCatalogService_FetchFiltered(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	svc := NewCatalogService(gw, cache.NewCatalog(), zerolog.Nop())

	filter := domain.Filter{Name: "fudge"}
	if _, err := svc.Fetch(context.Background(), filter); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if gw.searchCalls != 1 || gw.listCalls != 0 {
		t.Fatalf("expected 1 search / 0 list calls, got %d/%d", gw.searchCalls, gw.listCalls)
	}
	if gw.lastFilter.Name != "fudge" {
		t.Fatalf("filter not forwarded: %+v", gw.lastFilter)
	}
}

func TestCatalogService_ForbiddenSearchFallsBackOnce(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets(), searchErr: domain.ErrForbidden}
	store := cache.NewCatalog()
	svc := NewCatalogService(gw, store, zerolog.Nop())

	sweets, err := svc.Fetch(context.Background(), domain.Filter{Category: "indian"})
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if gw.searchCalls != 1 {
		t.Fatalf("expected exactly one search call, got %d", gw.searchCalls)
	}
	if gw.listCalls != 1 {
		t.Fatalf("expected exactly one fallback list call, got %d", gw.listCalls)
	}
	if len(sweets) != 2 {
		t.Fatalf("expected the unfiltered listing, got %d items", len(sweets))
	}
}

func TestCatalogService_ForbiddenFallbackPropagates(t *testing.T) {
	gw := &stubGateway{searchErr: domain.ErrForbidden, listErr: domain.ErrForbidden}
	svc := NewCatalogService(gw, cache.NewCatalog(), zerolog.Nop())

	_, err := svc.Fetch(context.Background(), domain.Filter{Name: "x"})
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if gw.searchCalls != 1 || gw.listCalls != 1 {
		t.Fatalf("fallback must not recurse: %d search, %d list calls", gw.searchCalls, gw.listCalls)
	}
}

func TestCatalogService_FailureKeepsCache(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	store := cache.NewCatalog()
	svc := NewCatalogService(gw, store, zerolog.Nop())

	if _, err := svc.Fetch(context.Background(), domain.Filter{}); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}

	gw.listErr = errors.New("connection refused")
	if _, err := svc.Fetch(context.Background(), domain.Filter{}); !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("cache must keep last-known-good data, has %d items", store.Len())
	}
	if cached := svc.Cached(); len(cached) != 2 || cached[0].Name != "Gulab Jamun" {
		t.Fatalf("unexpected cached view: %+v", cached)
	}
}
