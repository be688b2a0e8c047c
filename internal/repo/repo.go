package repo

import (
	"context"

	"github.com/milad/loadprofile/internal/domain"
)

// ReadingRepository provides access to load-profile readings.
type ReadingRepository interface {
	// List returns readings strictly inside the window, in ascending time order.
	// The returned slice must be treated as read-only by callers.
	List(ctx context.Context, window domain.Window) ([]domain.Reading, error)
	// Len returns the number of readings held, regardless of any window.
	Len() int
}
