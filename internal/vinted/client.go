// Package vinted provides a Vinted catalog API client abstracted behind an
// interface for testability.
package vinted

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// SearchResponse holds the items returned for one catalog query.
type SearchResponse struct {
	Items []Item
}

// CatalogClient defines the interface for interacting with the Vinted API.
// One client is one browsing session: cookies set by Warmup are reused by
// every later call.
type CatalogClient interface {
	Warmup(ctx context.Context) error
	Search(ctx context.Context, q domain.Query) (*SearchResponse, error)
	ItemDetails(ctx context.Context, id string) (*Item, error)
}

// ErrUnexpectedStatus is wrapped by every StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError reports a non-success HTTP status from the catalog.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("vinted %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("vinted %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Detail)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
