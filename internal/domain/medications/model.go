package medications

import "time"

type Frequency string

const (
	FrequencyDailyOnce  Frequency = "daily_once"
	FrequencyDailyTwice Frequency = "daily_twice"
	FrequencyDailyThree Frequency = "daily_three"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyAsNeeded   Frequency = "as_needed"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDailyOnce, FrequencyDailyTwice, FrequencyDailyThree, FrequencyWeekly, FrequencyAsNeeded:
		return true
	}
	return false
}

type Medication struct {
	ID     string
	UserID string

	Name      string
	Dosage    string
	Frequency Frequency

	// HH:MM en hora local del paciente, ordenados y sin duplicados.
	ScheduledTimes []string
	Notes          string

	Active    bool
	StartDate time.Time
	EndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InEffect indica si el medicamento está activo y dentro de su ventana de validez el día de t.
func (m Medication) InEffect(t time.Time, loc *time.Location) bool {
	if !m.Active {
		return false
	}
	day := civilDate(t, loc)
	if !m.StartDate.IsZero() && day.Before(civilDate(m.StartDate, time.UTC)) {
		return false
	}
	if m.EndDate != nil && day.After(civilDate(*m.EndDate, time.UTC)) {
		return false
	}
	return true
}

// civilDate reduce t a su fecha calendario en loc, expresada en UTC para comparar.
// StartDate/EndDate se guardan como fechas (YYYY-MM-DD a medianoche UTC).
func civilDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
