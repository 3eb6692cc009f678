package domain

import "errors"

var ErrForbidden = errors.New("access forbidden")
var ErrFetchFailed = errors.New("catalog fetch failed")
var ErrPurchaseFailed = errors.New("purchase failed")
var ErrRestockFailed = errors.New("restock failed")
var ErrMutationFailed = errors.New("catalog mutation failed")
var ErrInvalidInput = errors.New("invalid input")
var ErrOutOfStock = errors.New("out of stock")

// LowStockThreshold marks quantities the storefront highlights as running low.
const LowStockThreshold = 5

// Sweet is a single catalog record as served by the remote shop.
type Sweet struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// LowStock reports whether the sweet should be flagged as nearly sold out.
func (s Sweet) LowStock() bool {
	return s.Quantity <= LowStockThreshold
}

// Filter narrows a catalog search. Zero-valued fields are omitted from the
// outgoing query entirely; they are never sent as empty strings.
type Filter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Empty reports whether the filter carries no criteria at all.
func (f Filter) Empty() bool {
	return f.Name == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}
