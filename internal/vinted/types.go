package vinted

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ItemID is a listing identifier. The API sends it as a JSON number, older
// payloads and detail responses sometimes as a string; both normalize to the
// same decimal string.
type ItemID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ItemID) UnmarshalJSON(b []byte) error {
	s, err := scalarString(b)
	if err != nil {
		return fmt.Errorf("decoding item id: %w", err)
	}
	*id = ItemID(s)
	return nil
}

// ItemPrice is either a structured amount or a bare scalar.
type ItemPrice struct {
	Amount       string
	CurrencyCode string
	Raw          string
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ItemPrice) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = ItemPrice{}
		return nil
	}

	if b[0] != '{' {
		raw, err := scalarString(b)
		if err != nil {
			return fmt.Errorf("decoding price: %w", err)
		}
		*p = ItemPrice{Raw: raw}
		return nil
	}

	var obj struct {
		Amount       json.RawMessage `json:"amount"`
		CurrencyCode string          `json:"currency_code"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("decoding price: %w", err)
	}

	amount, err := scalarString(obj.Amount)
	if err != nil {
		return fmt.Errorf("decoding price amount: %w", err)
	}
	*p = ItemPrice{Amount: amount, CurrencyCode: obj.CurrencyCode}
	return nil
}

// IsZero reports whether the price carries no information.
func (p ItemPrice) IsZero() bool {
	return p.Amount == "" && p.Raw == ""
}

// ItemPhoto holds the primary photo reference.
type ItemPhoto struct {
	URL string `json:"url"`
}

// Item is a single listing from a catalog search or item detail response.
type Item struct {
	ID          ItemID     `json:"id"`
	Title       string     `json:"title"`
	Price       ItemPrice  `json:"price"`
	BrandTitle  string     `json:"brand_title"`
	SizeTitle   string     `json:"size_title"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Photo       *ItemPhoto `json:"photo,omitempty"`

	// URL is the canonical listing URL computed by the client. The API's own
	// url field is ignored.
	URL string `json:"-"`
}

// Merge overlays the non-empty fields of a detail response onto the search
// result. The identifier and canonical URL are kept.
func (it *Item) Merge(detail *Item) {
	if detail == nil {
		return
	}
	mergeString(&it.Title, detail.Title)
	mergeString(&it.BrandTitle, detail.BrandTitle)
	mergeString(&it.SizeTitle, detail.SizeTitle)
	mergeString(&it.Status, detail.Status)
	mergeString(&it.Description, detail.Description)
	mergeString(&it.Color, detail.Color)
	if !detail.Price.IsZero() {
		it.Price = detail.Price
	}
	if detail.Photo != nil && detail.Photo.URL != "" {
		it.Photo = detail.Photo
	}
}

// PhotoURL returns the primary photo URL, or "".
func (it *Item) PhotoURL() string {
	if it.Photo == nil {
		return ""
	}
	return it.Photo.URL
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// scalarString renders a JSON string or number as a plain string. null
// yields "".
func scalarString(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", b)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

type catalogResponse struct {
	Items []Item `json:"items"`
}

type itemDetailResponse struct {
	Item *Item `json:"item"`
}
