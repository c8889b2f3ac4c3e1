package mood

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items []MoodEvent
}

func (r *testRepo) Create(_ context.Context, e MoodEvent) error {
	r.items = append(r.items, e)
	return nil
}

func (r *testRepo) ListByUser(_ context.Context, subjectID string, from, to *time.Time, limit int) ([]MoodEvent, error) {
	out := []MoodEvent{}
	for _, e := range r.items {
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
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestService(now time.Time) (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo, nil)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		in   Submission
		want bool
	}{
		{"very low without safety signal", Submission{Mood: LevelVeryLow}, true},
		{"low without safety signal", Submission{Mood: LevelLow}, false},
		{"good with safety signal", Submission{Mood: LevelGood, SuicidalThoughts: true}, true},
		{"neutral", Submission{Mood: LevelNeutral}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(tc.in))
		})
	}
}

func TestCheckIn_FlagsAndMessages(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	res, err := svc.CheckIn(context.Background(), "p1", Submission{Mood: LevelVeryLow})
	require.NoError(t, err)
	assert.True(t, res.Event.FlaggedForReview)
	assert.Equal(t, "Thank you for checking in.", res.Message)

	res, err = svc.CheckIn(context.Background(), "p1", Submission{Mood: LevelGood, SuicidalThoughts: true})
	require.NoError(t, err)
	assert.True(t, res.Event.FlaggedForReview)
	assert.Equal(t, "Thank you for sharing. Your clinician has been notified.", res.Message)

	require.Len(t, repo.items, 2)
	assert.Equal(t, now, repo.items[0].CreatedAt)
}

func TestCheckIn_Validation(t *testing.T) {
	svc, _ := newTestService(time.Now())
	bad := 11
	energy := Energy("exhausted")

	_, err := svc.CheckIn(context.Background(), "p1", Submission{Mood: "awful"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CheckIn(context.Background(), "p1", Submission{Mood: LevelLow, AnxietyLevel: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CheckIn(context.Background(), "p1", Submission{Mood: LevelLow, Energy: &energy})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CheckIn(context.Background(), " ", Submission{Mood: LevelLow})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckIn_DedupesSymptoms(t *testing.T) {
	svc, _ := newTestService(time.Now())

	res, err := svc.CheckIn(context.Background(), "p1", Submission{
		Mood:     LevelLow,
		Symptoms: []string{"irritability", " irritability ", "", "racing_thoughts"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"irritability", "racing_thoughts"}, res.Event.Symptoms)
}

func TestLatestAndHistory(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	_, err := svc.Latest(context.Background(), "p1")
	require.ErrorIs(t, err, ErrNotFound)

	repo.items = []MoodEvent{
		{ID: "old", SubjectID: "p1", Mood: LevelGood, CreatedAt: now.AddDate(0, 0, -40)},
		{ID: "a", SubjectID: "p1", Mood: LevelLow, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "b", SubjectID: "p1", Mood: LevelNeutral, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "other", SubjectID: "p2", Mood: LevelNeutral, CreatedAt: now},
	}

	latest, err := svc.Latest(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)

	hist, err := svc.History(context.Background(), "p1", 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "b", hist[0].ID)
	assert.Equal(t, "a", hist[1].ID)
}
