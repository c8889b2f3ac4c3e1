package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, u User) error

	// ListPatientsByClinician devuelve solo usuarios con rol patient.
	ListPatientsByClinician(ctx context.Context, clinicianID string) ([]User, error)
}
