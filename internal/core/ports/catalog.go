package ports

import (
	"context"

	"github.com/sweetshop/storefront/internal/core/domain"
)

// CatalogGateway is the remote sweet-shop catalog API as consumed by the
// core. Implementations attach the current bearer credential themselves.
type CatalogGateway interface {
	List(ctx context.Context) ([]domain.Sweet, error)
	Search(ctx context.Context, filter domain.Filter) ([]domain.Sweet, error)
	Create(ctx context.Context, fields SweetFields) (*domain.Sweet, error)
	Update(ctx context.Context, id string, fields SweetFields) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	Purchase(ctx context.Context, id string) error
	Restock(ctx context.Context, id string) error
}

// SweetInput carries create/update data exactly as entered by the caller.
// Price and Quantity stay strings until the service has validated them.
type SweetInput struct {
	Name     string
	Category string
	Price    string
	Quantity string
}

// SweetFields is the validated, typed payload sent to the remote service.
type SweetFields struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}
