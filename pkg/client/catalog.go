package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"staybook/pkg/model"
)

// ProductCatalog is the lookup the booking service needs from the catalog.
// Satisfied by CatalogClient in deployment and by mocks in tests.
type ProductCatalog interface {
	Exists(ctx context.Context, productID string) (bool, error)
	GetByID(ctx context.Context, productID string) (*model.Product, error)
}

type CatalogClient struct {
	httpClient *HTTPClient
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		httpClient: NewHTTPClient(baseURL),
	}
}

func (c *CatalogClient) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/products/id/"+url.PathEscape(productID))
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("catalog returned unexpected status %d", resp.StatusCode)
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode product wrapper: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal(wrapper.Data, &product); err != nil {
		return nil, fmt.Errorf("could not decode product: %w", err)
	}
	return &product, nil
}

// Exists reports whether the product is present and bookable.
func (c *CatalogClient) Exists(ctx context.Context, productID string) (bool, error) {
	product, err := c.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	return product != nil && product.Active, nil
}
