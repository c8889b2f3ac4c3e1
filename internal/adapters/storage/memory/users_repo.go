package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"medication-adherence/internal/domain/users"
)

type userRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() users.Repository {
	return &userRepo{byID: make(map[string]users.User)}
}

func (r *userRepo) Create(_ context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return fmt.Errorf("user %s: %w", u.ID, users.ErrConflict)
	}
	for _, other := range r.byID {
		if other.Phone == u.Phone {
			return fmt.Errorf("phone already registered: %w", users.ErrConflict)
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, fmt.Errorf("user %s: %w", id, users.ErrNotFound)
	}
	return u, nil
}

func (r *userRepo) Update(_ context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.ID]; !ok {
		return fmt.Errorf("user %s: %w", u.ID, users.ErrNotFound)
	}
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) ListPatientsByClinician(_ context.Context, clinicianID string) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0)
	for _, u := range r.byID {
		if u.Role != users.RolePatient || u.AssignedClinicianID == nil {
			continue
		}
		if *u.AssignedClinicianID == clinicianID {
			out = append(out, u)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
