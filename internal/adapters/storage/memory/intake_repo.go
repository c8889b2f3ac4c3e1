package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"medication-adherence/internal/domain/intake"
)

// intakeRepo es el event log en memoria: append-only, sin updates ni deletes.
type intakeRepo struct {
	mu     sync.RWMutex
	events []intake.IntakeEvent
	ids    map[string]struct{}
}

func NewIntakeRepo() intake.Repository {
	return &intakeRepo{ids: make(map[string]struct{})}
}

func (r *intakeRepo) Append(_ context.Context, e intake.IntakeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("intake id required")
	}
	if _, exists := r.ids[e.ID]; exists {
		return errors.New("intake already exists")
	}
	r.ids[e.ID] = struct{}{}
	r.events = append(r.events, e)
	return nil
}

func (r *intakeRepo) Find(_ context.Context, filter intake.Filter) ([]intake.IntakeEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]intake.IntakeEvent, 0)
	for _, e := range r.events {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}

	// Orden por taken_at desc (más reciente primero)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TakenAt.After(out[j].TakenAt)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
