package notify

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// Named pairs a notifier with a label used in errors and logs.
type Named struct {
	Name     string
	Notifier Notifier
}

// Multi fans a listing out to every configured notifier. One failing target
// does not stop the others; their errors are joined.
type Multi struct {
	targets []Named
}

// NewMulti creates a fan-out notifier.
func NewMulti(targets ...Named) *Multi {
	return &Multi{targets: targets}
}

// Len returns the number of targets.
func (m *Multi) Len() int {
	return len(m.targets)
}

// Names returns the target labels in order.
func (m *Multi) Names() []string {
	names := make([]string, 0, len(m.targets))
	for _, t := range m.targets {
		names = append(names, t.Name)
	}
	return names
}

// SendListing implements Notifier.
func (m *Multi) SendListing(ctx context.Context, l *domain.Listing) error {
	var errs []error
	for _, t := range m.targets {
		if err := t.Notifier.SendListing(ctx, l); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
		}
	}
	return errors.Join(errs...)
}
