// Package notify defines the notification interface and implementations
// for new-listing delivery.
package notify

import (
	"context"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// Notifier delivers one new listing. Implementations return errors; the
// caller logs them and never lets a failed delivery block seen-set accounting.
type Notifier interface {
	SendListing(ctx context.Context, listing *domain.Listing) error
}
