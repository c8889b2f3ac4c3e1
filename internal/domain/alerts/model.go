package alerts

import (
	"time"

	"medication-adherence/internal/domain/intake"
	"medication-adherence/internal/domain/mood"
	"medication-adherence/internal/domain/users"
)

type Kind string

const (
	KindMedication Kind = "medication"
	KindMood       Kind = "mood"
	KindSafety     Kind = "safety"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Weight: high=3, medium=2, low=1; cualquier otro valor pesa 0.
func (s Severity) Weight() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

type Alert struct {
	Kind      Kind
	Severity  Severity
	Message   string
	Timestamp time.Time
}

type PatientSummary struct {
	ID    string
	Name  string
	Phone string
}

// PatientAlert es una vista derivada; no se persiste.
type PatientAlert struct {
	Patient PatientSummary
	Alerts  []Alert

	// AdherenceRate en 0..100 sobre los últimos 7 días.
	AdherenceRate float64

	LastMoodCheck *time.Time

	// DaysSinceMedication vale NoMedicationSentinel si nunca hubo toma verificada.
	DaysSinceMedication int
}

// MaxSeverity es el peso de la alerta más grave, 0 si no hay alertas.
func (p PatientAlert) MaxSeverity() int {
	top := 0
	for _, a := range p.Alerts {
		if w := a.Severity.Weight(); w > top {
			top = w
		}
	}
	return top
}

// PatientHistory es la foto de datos que necesita Analyze.
type PatientHistory struct {
	Patient users.User

	// Tomas de la ventana de adherencia (cualquier estado).
	WindowIntakes []intake.IntakeEvent

	// Última toma VERIFIED de toda la historia, nil si no hay.
	LastVerified *time.Time

	// Check-ins más recientes (hasta MoodSampleSize), más nuevo primero.
	RecentMoods []mood.MoodEvent
}

// Report es la vista detallada de un paciente para el clínico.
type Report struct {
	Patient PatientSummary
	Email   string
	Days    int

	Intakes []intake.IntakeEvent
	Moods   []mood.MoodEvent

	Summary ReportSummary
}

type ReportSummary struct {
	TotalIntakes    int
	VerifiedIntakes int
	AdherenceRate   float64
	FlaggedMoods    int
}
