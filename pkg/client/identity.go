package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CustomerDirectory answers whether a customer principal exists. Satisfied by
// IdentityClient in deployment and by mocks in tests.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID string) (bool, error)
}

type IdentityClient struct {
	httpClient *HTTPClient
}

func NewIdentityClient(baseURL string) *IdentityClient {
	return &IdentityClient{
		httpClient: NewHTTPClient(baseURL),
	}
}

// Exists reports whether the identity service knows the customer.
func (c *IdentityClient) Exists(ctx context.Context, customerID string) (bool, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/customers/id/"+url.PathEscape(customerID))
	if err != nil {
		return false, fmt.Errorf("identity lookup failed: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("identity service returned unexpected status %d", resp.StatusCode)
	}
}
