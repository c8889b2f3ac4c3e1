package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)

	// ListActiveByUser ordena por CreatedAt asc.
	ListActiveByUser(ctx context.Context, userID string) ([]Medication, error)
}
