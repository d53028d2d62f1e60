package notify

import (
	"context"
	"log/slog"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// NoOpNotifier implements Notifier by logging discarded listings. It is used
// when no notification backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards listings with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendListing logs and discards a listing.
func (n *NoOpNotifier) SendListing(_ context.Context, l *domain.Listing) error {
	n.log.Info("notification discarded (no backend configured)",
		"listing_id", l.ID,
		"title", l.Title,
		"url", l.URL,
	)
	return nil
}
