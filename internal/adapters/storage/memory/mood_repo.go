package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"medication-adherence/internal/domain/mood"
)

type moodRepo struct {
	mu     sync.RWMutex
	events []mood.MoodEvent
}

func NewMoodRepo() mood.Repository {
	return &moodRepo{}
}

func (r *moodRepo) Create(_ context.Context, e mood.MoodEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("mood event id required")
	}
	r.events = append(r.events, e)
	return nil
}

func (r *moodRepo) ListByUser(_ context.Context, subjectID string, from, to *time.Time, limit int) ([]mood.MoodEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mood.MoodEvent, 0)
	for _, e := range r.events {
		if e.SubjectID != subjectID {
			continue
		}
		if from != nil && e.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && e.CreatedAt.After(*to) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
