package alerts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"medication-adherence/internal/domain/intake"
	"medication-adherence/internal/domain/mood"
	"medication-adherence/internal/domain/users"
)

const (
	// AdherenceWindow es la ventana para la tasa de adherencia.
	AdherenceWindow = 7 * 24 * time.Hour

	// MoodSampleSize: cantidad de check-ins recientes que se miran (por recencia, no por fecha).
	MoodSampleSize = 7

	// AdherenceThreshold: por debajo, el paciente entra al panel aunque no tenga alertas.
	AdherenceThreshold = 70.0

	NoMedicationSentinel = 999

	flaggedMoodAlertCount = 3
)

// Analyze deriva las alertas de un paciente. Es pura: no lee nada fuera de h.
func Analyze(h PatientHistory, now time.Time) PatientAlert {
	out := PatientAlert{
		Patient:             summaryOf(h.Patient),
		Alerts:              []Alert{},
		AdherenceRate:       AdherenceRate(h.WindowIntakes),
		DaysSinceMedication: daysSince(h.LastVerified, now),
	}

	if d := out.DaysSinceMedication; d > 2 {
		sev := SeverityLow
		switch {
		case d > 7:
			sev = SeverityHigh
		case d > 3:
			sev = SeverityMedium
		}
		ts := now
		if h.LastVerified != nil {
			ts = *h.LastVerified
		}
		out.Alerts = append(out.Alerts, Alert{
			Kind:      KindMedication,
			Severity:  sev,
			Message:   fmt.Sprintf("No medication taken for %d days", d),
			Timestamp: ts,
		})
	}

	// 0% sin eventos no dispara esta alerta: la ausencia total ya la cubre el lapso.
	if r := out.AdherenceRate; r > 0 && r < AdherenceThreshold {
		sev := SeverityMedium
		if r < 50 {
			sev = SeverityHigh
		}
		out.Alerts = append(out.Alerts, Alert{
			Kind:      KindMedication,
			Severity:  sev,
			Message:   fmt.Sprintf("Low adherence rate: %.0f%%", r),
			Timestamp: now,
		})
	}

	moods := h.RecentMoods
	if len(moods) > MoodSampleSize {
		moods = moods[:MoodSampleSize]
	}
	if len(moods) > 0 {
		t := moods[0].CreatedAt
		out.LastMoodCheck = &t
	}

	flagged := make([]mood.MoodEvent, 0, len(moods))
	for _, m := range moods {
		if m.FlaggedForReview {
			flagged = append(flagged, m)
		}
	}

	for _, m := range flagged {
		if m.SuicidalThoughts {
			out.Alerts = append(out.Alerts, Alert{
				Kind:      KindSafety,
				Severity:  SeverityHigh,
				Message:   "Reported suicidal thoughts",
				Timestamp: m.CreatedAt,
			})
			break
		}
	}

	if len(flagged) >= flaggedMoodAlertCount {
		out.Alerts = append(out.Alerts, Alert{
			Kind:      KindMood,
			Severity:  SeverityMedium,
			Message:   fmt.Sprintf("%d concerning mood entries in past week", len(flagged)),
			Timestamp: flagged[0].CreatedAt,
		})
	}

	return out
}

// NeedsAttention decide si el paciente entra al panel.
func NeedsAttention(p PatientAlert) bool {
	return len(p.Alerts) > 0 || p.AdherenceRate < AdherenceThreshold
}

// Rank ordena in place con orden total: severidad máxima desc, adherencia asc,
// días sin medicación desc, ID de paciente asc.
func Rank(items []PatientAlert) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if sa, sb := a.MaxSeverity(), b.MaxSeverity(); sa != sb {
			return sa > sb
		}
		if a.AdherenceRate != b.AdherenceRate {
			return a.AdherenceRate < b.AdherenceRate
		}
		if a.DaysSinceMedication != b.DaysSinceMedication {
			return a.DaysSinceMedication > b.DaysSinceMedication
		}
		return a.Patient.ID < b.Patient.ID
	})
}

// AdherenceRate = 100 * verificadas / total; 0 si no hay eventos.
func AdherenceRate(events []intake.IntakeEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	return 100 * float64(countVerified(events)) / float64(len(events))
}

func countVerified(events []intake.IntakeEvent) int {
	n := 0
	for _, e := range events {
		if e.Status == intake.StatusVerified {
			n++
		}
	}
	return n
}

func daysSince(last *time.Time, now time.Time) int {
	if last == nil {
		return NoMedicationSentinel
	}
	d := math.Floor(now.Sub(*last).Hours() / 24)
	if d < 0 {
		return 0
	}
	return int(d)
}

func summaryOf(u users.User) PatientSummary {
	return PatientSummary{ID: u.ID, Name: u.FullName(), Phone: u.Phone}
}
