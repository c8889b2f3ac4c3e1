package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"medication-adherence/internal/domain/medications"
)

type medicationRepo struct {
	mu   sync.RWMutex
	byID map[string]medications.Medication
}

func NewMedicationRepo() medications.Repository {
	return &medicationRepo{byID: make(map[string]medications.Medication)}
}

func (r *medicationRepo) Create(_ context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medication already exists")
	}
	m.ScheduledTimes = append([]string(nil), m.ScheduledTimes...)
	r.byID[m.ID] = m
	return nil
}

func (r *medicationRepo) GetByID(_ context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, fmt.Errorf("medication %s: %w", id, medications.ErrNotFound)
	}
	return m, nil
}

func (r *medicationRepo) ListActiveByUser(_ context.Context, userID string) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for _, m := range r.byID {
		if m.UserID == userID && m.Active {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
