package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sweetshop/storefront/internal/core/cache"
	"github.com/sweetshop/storefront/internal/core/domain"
	"github.com/sweetshop/storefront/internal/core/ports"
)

// newInventory wires an InventoryService around the stub gateway with a
// session holding the given authorities (none means logged out). The cache
// is primed with the gateway's sweets.
func newInventory(t *testing.T, gw *stubGateway, authorities ...string) (*InventoryService, *cache.Catalog) {
	t.Helper()

	store := &memStore{}
	if len(authorities) > 0 {
		store.credential = mintToken(t, "tester", authorities...)
	}
	session := NewSessionService(&stubAuth{}, store, zerolog.Nop())

	c := cache.NewCatalog()
	c.Replace(gw.sweets)
	catalog := NewCatalogService(gw, c, zerolog.Nop())
	return NewInventoryService(gw, catalog, c, session, 0, zerolog.Nop()), c
}

func validInput() ports.SweetInput {
	return ports.SweetInput{Name: "Barfi", Category: "indian", Price: "9.99", Quantity: "20"}
}

func TestInventory_PurchaseDecrementsByOne(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	svc, c := newInventory(t, gw, "ROLE_USER")

	if err := svc.Purchase(context.Background(), "2"); err != nil {
		t.Fatalf("Purchase returned error: %v", err)
	}
	if gw.purchaseCalls != 1 {
		t.Fatalf("expected 1 purchase call, got %d", gw.purchaseCalls)
	}
	if gw.listCalls != 0 {
		t.Fatalf("purchase must not trigger a refetch, got %d list calls", gw.listCalls)
	}
	sweet, _ := c.Get("2")
	if sweet.Quantity != 2 {
		t.Fatalf("expected quantity 2 after purchase, got %d", sweet.Quantity)
	}
}

func TestInventory_PurchaseFailureKeepsCache(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets(), purchaseErr: errors.New("insufficient stock")}
	svc, c := newInventory(t, gw, "ROLE_USER")

	if err := svc.Purchase(context.Background(), "2"); !errors.Is(err, domain.ErrPurchaseFailed) {
		t.Fatalf("expected ErrPurchaseFailed, got %v", err)
	}
	sweet, _ := c.Get("2")
	if sweet.Quantity != 3 {
		t.Fatalf("failed purchase must not touch the cache, quantity is %d", sweet.Quantity)
	}
}

func TestInventory_PurchaseSoldOutRejectedLocally(t *testing.T) {
	gw := &stubGateway{sweets: []domain.Sweet{{ID: "9", Name: "Ladoo", Quantity: 0}}}
	svc, _ := newInventory(t, gw, "ROLE_USER")

	if err := svc.Purchase(context.Background(), "9"); !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if gw.purchaseCalls != 0 {
		t.Fatalf("sold-out purchase must not reach the network")
	}
}

func TestInventory_PurchaseRequiresSession(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	svc, _ := newInventory(t, gw) // logged out

	if err := svc.Purchase(context.Background(), "1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if gw.purchaseCalls != 0 {
		t.Fatalf("unauthorized purchase must not reach the network")
	}
}

func TestInventory_RestockRefetchesInsteadOfIncrementing(t *testing.T) {
	// the server reports quantity 42 after restock; a local +1 would show 4
	gw := &stubGateway{sweets: []domain.Sweet{{ID: "42", Name: "Jalebi", Quantity: 3}}}
	svc, c := newInventory(t, gw, "ROLE_ADMIN")
	gw.sweets = []domain.Sweet{{ID: "42", Name: "Jalebi", Quantity: 42}}

	if err := svc.Restock(context.Background(), "42"); err != nil {
		t.Fatalf("Restock returned error: %v", err)
	}
	if gw.restockCalls != 1 {
		t.Fatalf("expected 1 restock call, got %d", gw.restockCalls)
	}
	if gw.listCalls != 1 {
		t.Fatalf("restock must refetch the catalog, got %d list calls", gw.listCalls)
	}
	sweet, _ := c.Get("42")
	if sweet.Quantity != 42 {
		t.Fatalf("expected the server's quantity 42, got %d", sweet.Quantity)
	}
}

func TestInventory_RestockRequiresAdmin(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	svc, _ := newInventory(t, gw, "ROLE_USER")

	if err := svc.Restock(context.Background(), "1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if gw.restockCalls != 0 {
		t.Fatalf("under-privileged restock must not reach the network")
	}
}

func TestInventory_RestockFailure(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets(), restockErr: errors.New("boom")}
	svc, c := newInventory(t, gw, "ROLE_ADMIN")

	if err := svc.Restock(context.Background(), "1"); !errors.Is(err, domain.ErrRestockFailed) {
		t.Fatalf("expected ErrRestockFailed, got %v", err)
	}
	if gw.listCalls != 0 {
		t.Fatalf("failed restock must not refetch")
	}
	sweet, _ := c.Get("1")
	if sweet.Quantity != 8 {
		t.Fatalf("cache must be unchanged, quantity is %d", sweet.Quantity)
	}
}

func TestInventory_DeleteWhileLoggedOut(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	svc, _ := newInventory(t, gw) // logged out

	if err := svc.Delete(context.Background(), "7"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if gw.deleteCalls != 0 || gw.listCalls != 0 {
		t.Fatalf("logged-out delete must make zero network calls")
	}
}

func TestInventory_DeleteRefetches(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	svc, _ := newInventory(t, gw, "ROLE_ADMIN")

	if err := svc.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if gw.deleteCalls != 1 || gw.listCalls != 1 {
		t.Fatalf("expected delete then refetch, got %d/%d", gw.deleteCalls, gw.listCalls)
	}
}

func TestInventory_CreateRejectsBadNumbers(t *testing.T) {
	cases := map[string]ports.SweetInput{
		"price not a number":   {Name: "x", Category: "y", Price: "cheap", Quantity: "5"},
		"quantity not integer": {Name: "x", Category: "y", Price: "1.5", Quantity: "many"},
		"quantity fractional":  {Name: "x", Category: "y", Price: "1.5", Quantity: "2.5"},
		"price negative":       {Name: "x", Category: "y", Price: "-1", Quantity: "5"},
		"price infinite":       {Name: "x", Category: "y", Price: "+Inf", Quantity: "5"},
		"price nan":            {Name: "x", Category: "y", Price: "NaN", Quantity: "5"},
		"quantity negative":    {Name: "x", Category: "y", Price: "1", Quantity: "-5"},
		"name missing":         {Name: "", Category: "y", Price: "1", Quantity: "5"},
		"category missing":     {Name: "x", Category: "", Price: "1", Quantity: "5"},
	}

	for name, input := range cases {
		gw := &stubGateway{}
		svc, _ := newInventory(t, gw, "ROLE_ADMIN")
		if err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
		if gw.createCalls != 0 {
			t.Fatalf("%s: invalid input must not reach the network", name)
		}
	}
}

func TestInventory_CreateSuccessRefetches(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	svc, _ := newInventory(t, gw, "ROLE_ADMIN")

	if err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if gw.createCalls != 1 || gw.listCalls != 1 {
		t.Fatalf("expected create then refetch, got %d/%d", gw.createCalls, gw.listCalls)
	}
}

func TestInventory_CreateRequiresAdmin(t *testing.T) {
	gw := &stubGateway{}
	svc, _ := newInventory(t, gw, "ROLE_USER")

	if err := svc.Create(context.Background(), validInput()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestInventory_MutationErrorTruncated(t *testing.T) {
	longMsg := strings.Repeat("word ", 40) + "tail"
	gw := &stubGateway{createErr: errors.New(longMsg)}
	svc, _ := newInventory(t, gw, "ROLE_ADMIN")

	err := svc.Create(context.Background(), validInput())
	if !errors.Is(err, domain.ErrMutationFailed) {
		t.Fatalf("expected ErrMutationFailed, got %v", err)
	}
	if strings.Contains(err.Error(), "tail") {
		t.Fatalf("message was not truncated: %q", err.Error())
	}
	if !strings.HasSuffix(err.Error(), "...") {
		t.Fatalf("truncated message should end with ellipsis: %q", err.Error())
	}
	// sentinel prefix plus exactly 15 words of the server message
	if got := strings.Count(err.Error(), "word"); got != 15 {
		t.Fatalf("expected 15 words preserved, got %d", got)
	}
}

func TestInventory_UpdateSuccessRefetches(t *testing.T) {
	gw := &stubGateway{sweets: sampleSweets()}
	svc, _ := newInventory(t, gw, "ROLE_ADMIN")

	if err := svc.Update(context.Background(), "1", validInput()); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if gw.updateCalls != 1 || gw.listCalls != 1 {
		t.Fatalf("expected update then refetch, got %d/%d", gw.updateCalls, gw.listCalls)
	}
}

func TestSummarize(t *testing.T) {
	if got := summarize("short message", 15); got != "short message" {
		t.Fatalf("short message must pass through, got %q", got)
	}
	got := summarize("one two three four five", 3)
	if got != "one two three..." {
		t.Fatalf("unexpected summary: %q", got)
	}
}
