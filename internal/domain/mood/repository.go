package mood

import (
	"context"
	"time"
)

// Repository es append-only. Listados ordenados por CreatedAt desc.
type Repository interface {
	Create(ctx context.Context, e MoodEvent) error

	// ListByUser: from/to nil no filtran; limit <= 0 = sin límite.
	ListByUser(ctx context.Context, subjectID string, from, to *time.Time, limit int) ([]MoodEvent, error)
}
