package alerts

import (
	"testing"
	"time"

	"medication-adherence/internal/domain/intake"
	"medication-adherence/internal/domain/mood"
	"medication-adherence/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time { return now.Add(-time.Duration(d) * 24 * time.Hour) }

func ptr[T any](v T) *T { return &v }

func intakes(statuses ...intake.Status) []intake.IntakeEvent {
	out := make([]intake.IntakeEvent, 0, len(statuses))
	for i, st := range statuses {
		out = append(out, intake.IntakeEvent{ID: string(rune('a' + i)), Status: st, TakenAt: daysAgo(i % 7)})
	}
	return out
}

func patient(id string) users.User {
	return users.User{ID: id, FirstName: "Ana", LastName: "Ruiz", Phone: "+100", Role: users.RolePatient}
}

func TestAnalyze_LapseSeverity(t *testing.T) {
	cases := []struct {
		days int
		sev  Severity
	}{
		{3, SeverityLow},
		{4, SeverityMedium},
		{7, SeverityMedium},
		{8, SeverityHigh},
		{9, SeverityHigh},
	}
	for _, tc := range cases {
		last := daysAgo(tc.days)
		got := Analyze(PatientHistory{Patient: patient("p"), LastVerified: &last}, now)

		require.Len(t, got.Alerts, 1, "days=%d", tc.days)
		assert.Equal(t, KindMedication, got.Alerts[0].Kind)
		assert.Equal(t, tc.sev, got.Alerts[0].Severity, "days=%d", tc.days)
		assert.Equal(t, last, got.Alerts[0].Timestamp)
		assert.Equal(t, tc.days, got.DaysSinceMedication)
	}
}

func TestAnalyze_NineDaysLapseMessage(t *testing.T) {
	last := daysAgo(9)
	got := Analyze(PatientHistory{Patient: patient("p"), LastVerified: &last}, now)

	require.Len(t, got.Alerts, 1)
	assert.Equal(t, SeverityHigh, got.Alerts[0].Severity)
	assert.Contains(t, got.Alerts[0].Message, "9 days")
}

func TestAnalyze_NoLapseWithinTwoDays(t *testing.T) {
	last := now.Add(-71 * time.Hour) // floor(71/24) = 2
	got := Analyze(PatientHistory{Patient: patient("p"), LastVerified: &last, WindowIntakes: intakes(intake.StatusVerified)}, now)

	assert.Equal(t, 2, got.DaysSinceMedication)
	assert.Empty(t, got.Alerts)
	assert.Equal(t, 100.0, got.AdherenceRate)
}

func TestAnalyze_NoEventsIsZeroRateAndLapseOnly(t *testing.T) {
	got := Analyze(PatientHistory{Patient: patient("p")}, now)

	assert.Equal(t, 0.0, got.AdherenceRate)
	assert.Equal(t, NoMedicationSentinel, got.DaysSinceMedication)
	require.Len(t, got.Alerts, 1)
	assert.Equal(t, KindMedication, got.Alerts[0].Kind)
	assert.Equal(t, SeverityHigh, got.Alerts[0].Severity)
	assert.Equal(t, now, got.Alerts[0].Timestamp)
	assert.NotContains(t, got.Alerts[0].Message, "adherence")
	assert.True(t, NeedsAttention(got))
}

func TestAnalyze_LowAdherence(t *testing.T) {
	last := daysAgo(0)

	// 2/3 = 67% -> medium
	got := Analyze(PatientHistory{
		Patient:       patient("p"),
		LastVerified:  &last,
		WindowIntakes: intakes(intake.StatusVerified, intake.StatusVerified, intake.StatusFailed),
	}, now)
	require.Len(t, got.Alerts, 1)
	assert.Equal(t, SeverityMedium, got.Alerts[0].Severity)
	assert.Equal(t, "Low adherence rate: 67%", got.Alerts[0].Message)

	// 1/3 -> high
	got = Analyze(PatientHistory{
		Patient:       patient("p"),
		LastVerified:  &last,
		WindowIntakes: intakes(intake.StatusVerified, intake.StatusFailed, intake.StatusFailed),
	}, now)
	require.Len(t, got.Alerts, 1)
	assert.Equal(t, SeverityHigh, got.Alerts[0].Severity)

	// 0 verificadas con eventos: 0% no dispara baja adherencia
	got = Analyze(PatientHistory{
		Patient:       patient("p"),
		LastVerified:  &last,
		WindowIntakes: intakes(intake.StatusFailed, intake.StatusFailed),
	}, now)
	assert.Empty(t, got.Alerts)
	assert.True(t, NeedsAttention(got))
}

func moodsFlagged(flags ...bool) []mood.MoodEvent {
	out := make([]mood.MoodEvent, 0, len(flags))
	for i, f := range flags {
		out = append(out, mood.MoodEvent{
			ID:               string(rune('a' + i)),
			Mood:             mood.LevelVeryLow,
			FlaggedForReview: f,
			CreatedAt:        now.Add(-time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestAnalyze_ThreeFlaggedMoodsWithoutSafetySignal(t *testing.T) {
	last := daysAgo(0)
	got := Analyze(PatientHistory{
		Patient:       patient("p"),
		LastVerified:  &last,
		WindowIntakes: intakes(intake.StatusVerified),
		RecentMoods:   moodsFlagged(false, true, false, true, true, false, false),
	}, now)

	require.Len(t, got.Alerts, 1)
	assert.Equal(t, KindMood, got.Alerts[0].Kind)
	assert.Equal(t, SeverityMedium, got.Alerts[0].Severity)
	assert.Equal(t, "3 concerning mood entries in past week", got.Alerts[0].Message)
	assert.Equal(t, now.Add(-1*time.Hour), got.Alerts[0].Timestamp, "most recent flagged entry")
	require.NotNil(t, got.LastMoodCheck)
	assert.Equal(t, now, *got.LastMoodCheck)
}

func TestAnalyze_OnlyFirstSevenMoodsCount(t *testing.T) {
	last := daysAgo(0)
	got := Analyze(PatientHistory{
		Patient:       patient("p"),
		LastVerified:  &last,
		WindowIntakes: intakes(intake.StatusVerified),
		RecentMoods:   moodsFlagged(true, true, false, false, false, false, false, true),
	}, now)
	assert.Empty(t, got.Alerts)
}

func TestAnalyze_SafetySignal(t *testing.T) {
	last := daysAgo(0)
	moods := moodsFlagged(false, true, true)
	moods[1].SuicidalThoughts = true
	moods[2].SuicidalThoughts = true

	got := Analyze(PatientHistory{
		Patient:       patient("p"),
		LastVerified:  &last,
		WindowIntakes: intakes(intake.StatusVerified),
		RecentMoods:   moods,
	}, now)

	require.Len(t, got.Alerts, 1)
	assert.Equal(t, KindSafety, got.Alerts[0].Kind)
	assert.Equal(t, SeverityHigh, got.Alerts[0].Severity)
	assert.Equal(t, "Reported suicidal thoughts", got.Alerts[0].Message)
	assert.Equal(t, moods[1].CreatedAt, got.Alerts[0].Timestamp)
}

func TestRank_TotalOrder(t *testing.T) {
	high := PatientAlert{Patient: PatientSummary{ID: "h"}, AdherenceRate: 90, Alerts: []Alert{{Severity: SeverityHigh}}}
	medium := PatientAlert{Patient: PatientSummary{ID: "m"}, AdherenceRate: 90, Alerts: []Alert{{Severity: SeverityMedium}, {Severity: SeverityLow}}}
	quiet := PatientAlert{Patient: PatientSummary{ID: "q"}, AdherenceRate: 40}

	items := []PatientAlert{quiet, medium, high}
	Rank(items)
	assert.Equal(t, []string{"h", "m", "q"}, ids(items))

	// empates: adherencia asc, días sin medicación desc, ID asc
	a := PatientAlert{Patient: PatientSummary{ID: "a"}, AdherenceRate: 60, DaysSinceMedication: 1, Alerts: []Alert{{Severity: SeverityMedium}}}
	b := PatientAlert{Patient: PatientSummary{ID: "b"}, AdherenceRate: 50, DaysSinceMedication: 1, Alerts: []Alert{{Severity: SeverityMedium}}}
	c := PatientAlert{Patient: PatientSummary{ID: "c"}, AdherenceRate: 60, DaysSinceMedication: 5, Alerts: []Alert{{Severity: SeverityMedium}}}
	d := PatientAlert{Patient: PatientSummary{ID: "d"}, AdherenceRate: 60, DaysSinceMedication: 1, Alerts: []Alert{{Severity: SeverityMedium}}}

	items = []PatientAlert{d, a, c, b}
	Rank(items)
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(items))
}

func TestAdherenceRate(t *testing.T) {
	assert.Equal(t, 0.0, AdherenceRate(nil))
	assert.Equal(t, 50.0, AdherenceRate(intakes(intake.StatusVerified, intake.StatusFailed)))
	assert.Equal(t, 25.0, AdherenceRate(intakes(intake.StatusVerified, intake.StatusFailed, intake.StatusPending, intake.StatusSkipped)))
}

func TestDaysSince(t *testing.T) {
	assert.Equal(t, NoMedicationSentinel, daysSince(nil, now))
	assert.Equal(t, 0, daysSince(ptr(now.Add(time.Hour)), now))
	assert.Equal(t, 1, daysSince(ptr(now.Add(-47*time.Hour)), now))
}

func ids(items []PatientAlert) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Patient.ID)
	}
	return out
}
