package intake

import (
	"context"
	"time"
)

// Repository es el event log de intentos de toma: append-only, consultable por
// sujeto y ventana de tiempo. Find ordena por TakenAt desc.
type Repository interface {
	Append(ctx context.Context, e IntakeEvent) error
	Find(ctx context.Context, filter Filter) ([]IntakeEvent, error)
}

// Filter: campos vacíos/nil no filtran. Limit <= 0 = sin límite.
type Filter struct {
	SubjectID    string
	MedicationID string
	Statuses     []Status
	From         *time.Time
	To           *time.Time
	Limit        int
}

// Matches aplica el filtro en memoria (repos in-memory y fakes de tests).
func (f Filter) Matches(e IntakeEvent) bool {
	if f.SubjectID != "" && e.SubjectID != f.SubjectID {
		return false
	}
	if f.MedicationID != "" && e.MedicationID != f.MedicationID {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, st := range f.Statuses {
			if e.Status == st {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && e.TakenAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.TakenAt.After(*f.To) {
		return false
	}
	return true
}
