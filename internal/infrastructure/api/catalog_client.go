package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sweetshop/storefront/internal/core/domain"
	"github.com/sweetshop/storefront/internal/core/ports"
)

// List retrieves the unfiltered catalog listing.
func (c *Client) List(ctx context.Context) ([]domain.Sweet, error) {
	var out []domain.Sweet
	if err := c.do(ctx, http.MethodGet, "/sweets", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search retrieves the filtered listing. Only populated filter fields make
// it into the query string.
func (c *Client) Search(ctx context.Context, filter domain.Filter) ([]domain.Sweet, error) {
	query := url.Values{}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.MinPrice != nil {
		query.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		query.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}

	var out []domain.Sweet
	if err := c.do(ctx, http.MethodGet, "/sweets/search", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a new sweet and returns the record the server stored.
func (c *Client) Create(ctx context.Context, fields ports.SweetFields) (*domain.Sweet, error) {
	var out domain.Sweet
	if err := c.do(ctx, http.MethodPost, "/sweets", nil, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an existing sweet's fields.
func (c *Client) Update(ctx context.Context, id string, fields ports.SweetFields) (*domain.Sweet, error) {
	var out domain.Sweet
	if err := c.do(ctx, http.MethodPut, "/sweets/"+url.PathEscape(id), nil, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a sweet from the catalog.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sweets/"+url.PathEscape(id), nil, nil, nil)
}

// Purchase buys one unit. The server enforces stock non-negativity.
func (c *Client) Purchase(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/sweets/"+url.PathEscape(id)+"/purchase", nil, nil, nil)
}

// Restock asks the server to add one unit; no quantity is sent.
func (c *Client) Restock(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/sweets/"+url.PathEscape(id)+"/restock", nil, nil, nil)
}
