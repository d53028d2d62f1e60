// Package domain defines the core business types for the Vinted scanner.
package domain

import (
	"time"
)

// Price is a listing price as returned by the catalog. The API reports it
// either as a structured amount with a currency code or as a bare scalar.
type Price struct {
	Amount   string `json:"amount,omitempty"`
	Currency string `json:"currency_code,omitempty"`
	Raw      string `json:"raw,omitempty"`
}

// IsStructured reports whether the price came from an amount object.
func (p Price) IsStructured() bool {
	return p.Amount != ""
}

// IsZero reports whether no price information is present.
func (p Price) IsZero() bool {
	return p.Amount == "" && p.Raw == ""
}

// Listing is one marketplace item observed during a scan. It only lives for
// the duration of a single scan cycle.
type Listing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       Price  `json:"price"`
	Brand       string `json:"brand,omitempty"`
	Size        string `json:"size,omitempty"`
	Condition   string `json:"condition,omitempty"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	URL         string `json:"url"`
}

// ScanResult summarizes one scan pass. It is reported, never persisted.
type ScanResult struct {
	RunID          string        `json:"run_id"`
	Queries        int           `json:"queries"`
	FailedQueries  int           `json:"failed_queries"`
	Listings       int           `json:"listings"`
	Novel          int           `json:"novel"`
	NotifyFailures int           `json:"notify_failures"`
	Loaded         int           `json:"loaded"`
	Tracked        int           `json:"tracked"`
	Persisted      bool          `json:"persisted"`
	CatalogCalls   int           `json:"catalog_calls"`
	Duration       time.Duration `json:"duration"`
}
