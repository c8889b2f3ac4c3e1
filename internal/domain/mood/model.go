package mood

import "time"

type Level string

// Escala ordinal de 5 puntos; LevelVeryLow es el piso.
const (
	LevelVeryLow  Level = "very_low"
	LevelLow      Level = "low"
	LevelNeutral  Level = "neutral"
	LevelGood     Level = "good"
	LevelVeryGood Level = "very_good"
)

func (l Level) Valid() bool {
	switch l {
	case LevelVeryLow, LevelLow, LevelNeutral, LevelGood, LevelVeryGood:
		return true
	}
	return false
}

type Energy string

const (
	EnergyVeryLow  Energy = "very_low"
	EnergyLow      Energy = "low"
	EnergyModerate Energy = "moderate"
	EnergyHigh     Energy = "high"
	EnergyVeryHigh Energy = "very_high"
)

func (e Energy) Valid() bool {
	switch e {
	case EnergyVeryLow, EnergyLow, EnergyModerate, EnergyHigh, EnergyVeryHigh:
		return true
	}
	return false
}

// MoodEvent es un check-in. FlaggedForReview se deriva una vez al crear y no se recalcula.
type MoodEvent struct {
	ID        string
	SubjectID string

	Mood         Level
	Energy       *Energy
	AnxietyLevel *int // 1..10
	SleepQuality *int // 1..10
	Notes        string
	Symptoms     []string

	SuicidalThoughts bool
	FlaggedForReview bool

	CreatedAt time.Time
}

// Submission es lo que manda el paciente.
type Submission struct {
	Mood             Level
	Energy           *Energy
	AnxietyLevel     *int
	SleepQuality     *int
	Notes            string
	Symptoms         []string
	SuicidalThoughts bool
}

// Evaluate decide si el check-in requiere revisión clínica: señal de seguridad
// explícita o el nivel más bajo de ánimo.
func Evaluate(s Submission) bool {
	return s.SuicidalThoughts || s.Mood == LevelVeryLow
}
