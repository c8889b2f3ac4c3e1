package medications

import (
	"context"
	"sort"
	"testing"
	"time"

	"medication-adherence/internal/domain/intake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items map[string]Medication
}

func newTestRepo() *testRepo { return &testRepo{items: map[string]Medication{}} }

func (r *testRepo) Create(_ context.Context, m Medication) error {
	r.items[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Medication, error) {
	m, ok := r.items[id]
	if !ok {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListActiveByUser(_ context.Context, userID string) ([]Medication, error) {
	out := []Medication{}
	for _, m := range r.items {
		if m.UserID == userID && m.Active {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type testIntakes []intake.IntakeEvent

func (t testIntakes) Find(_ context.Context, f intake.Filter) ([]intake.IntakeEvent, error) {
	out := []intake.IntakeEvent{}
	for _, e := range t {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TakenAt.After(out[j].TakenAt) })
	return out, nil
}

var zone = time.FixedZone("COT", -5*3600)

func newTestService(now time.Time, logs testIntakes) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, logs, zone)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestNormalizeTimes(t *testing.T) {
	got, err := NormalizeTimes([]string{"20:00", "08:00", " 08:00", "12:30"})
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "12:30", "20:00"}, got)

	_, err = NormalizeTimes([]string{"8am"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC) // 9 de marzo en COT
	svc, repo := newTestService(now, nil)

	m, err := svc.Create(context.Background(), "p1", CreateInput{Name: " Lithium ", Dosage: "300mg", ScheduledTimes: []string{"20:00", "08:00"}})
	require.NoError(t, err)
	assert.Equal(t, "Lithium", m.Name)
	assert.Equal(t, FrequencyDailyOnce, m.Frequency)
	assert.True(t, m.Active)
	assert.Equal(t, []string{"08:00", "20:00"}, m.ScheduledTimes)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), m.StartDate)
	assert.Contains(t, repo.items, m.ID)

	_, err = svc.Create(context.Background(), "p1", CreateInput{Name: "x", Frequency: "hourly"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Create(context.Background(), "p1", CreateInput{Name: "x", StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestActiveMedication(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, zone)
	svc, repo := newTestService(now, nil)

	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.items["ok"] = Medication{ID: "ok", UserID: "p1", Name: "Lithium", Active: true, StartDate: start}
	repo.items["inactive"] = Medication{ID: "inactive", UserID: "p1", Name: "A", Active: false, StartDate: start}
	repo.items["ended"] = Medication{ID: "ended", UserID: "p1", Name: "B", Active: true, StartDate: start, EndDate: &past}
	repo.items["foreign"] = Medication{ID: "foreign", UserID: "p2", Name: "C", Active: true, StartDate: start}

	ref, err := svc.ActiveMedication(context.Background(), "p1", "ok")
	require.NoError(t, err)
	assert.Equal(t, intake.MedicationRef{ID: "ok", Name: "Lithium"}, ref)

	for _, id := range []string{"inactive", "ended", "foreign", "missing"} {
		_, err := svc.ActiveMedication(context.Background(), "p1", id)
		assert.ErrorIs(t, err, intake.ErrNotFound, id)
	}
}

func TestDailyPlan_MarksTakenToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, zone)
	morning := time.Date(2026, 3, 10, 8, 5, 0, 0, zone)
	evening := time.Date(2026, 3, 10, 14, 0, 0, 0, zone)
	logs := testIntakes{
		{ID: "1", SubjectID: "p1", MedicationID: "a", TakenAt: morning, Status: intake.StatusVerified},
		{ID: "2", SubjectID: "p1", MedicationID: "a", TakenAt: evening, Status: intake.StatusVerified},
		{ID: "3", SubjectID: "p1", MedicationID: "b", TakenAt: evening, Status: intake.StatusFailed},
		{ID: "4", SubjectID: "p1", MedicationID: "b", TakenAt: morning.AddDate(0, 0, -1), Status: intake.StatusVerified},
	}
	svc, repo := newTestService(now, logs)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.items["a"] = Medication{ID: "a", UserID: "p1", Name: "A", Active: true, StartDate: start}
	repo.items["b"] = Medication{ID: "b", UserID: "p1", Name: "B", Active: true, StartDate: start}
	future := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	repo.items["c"] = Medication{ID: "c", UserID: "p1", Name: "C", Active: true, StartDate: future}

	plan, err := svc.DailyPlan(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, plan, 2)

	assert.Equal(t, "a", plan[0].Medication.ID)
	assert.True(t, plan[0].TakenToday)
	require.NotNil(t, plan[0].LastTaken)
	assert.True(t, evening.Equal(*plan[0].LastTaken))

	assert.Equal(t, "b", plan[1].Medication.ID)
	assert.False(t, plan[1].TakenToday)
	assert.Nil(t, plan[1].LastTaken)
}
