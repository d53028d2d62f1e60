package vinted

import (
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// ToListing converts a catalog item into a domain listing.
func (it *Item) ToListing() domain.Listing {
	return domain.Listing{
		ID:    string(it.ID),
		Title: it.Title,
		Price: domain.Price{
			Amount:   it.Price.Amount,
			Currency: it.Price.CurrencyCode,
			Raw:      it.Price.Raw,
		},
		Brand:       it.BrandTitle,
		Size:        it.SizeTitle,
		Condition:   it.Status,
		Color:       it.Color,
		Description: it.Description,
		PhotoURL:    it.PhotoURL(),
		URL:         it.URL,
	}
}
