package medications

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"medication-adherence/internal/domain/intake"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound es el mismo sentinel que usa el adjudicador, para que
	// ActiveMedication pueda devolverlo sin traducción.
	ErrNotFound = intake.ErrNotFound
)

// IntakeReader es la parte del event log que necesita el plan diario.
type IntakeReader interface {
	Find(ctx context.Context, filter intake.Filter) ([]intake.IntakeEvent, error)
}

type Service struct {
	repo    Repository
	intakes IntakeReader
	loc     *time.Location
	now     func() time.Time
}

func NewService(repo Repository, intakes IntakeReader, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:    repo,
		intakes: intakes,
		loc:     loc,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name           string
	Dosage         string
	Frequency      Frequency
	ScheduledTimes []string
	Notes          string
	StartDate      time.Time
	EndDate        *time.Time
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medication, error) {
	userID = strings.TrimSpace(userID)
	name := strings.TrimSpace(in.Name)
	if userID == "" || name == "" {
		return Medication{}, ErrInvalidInput
	}

	freq := in.Frequency
	if freq == "" {
		freq = FrequencyDailyOnce
	}
	if !freq.Valid() {
		return Medication{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, freq)
	}

	times, err := NormalizeTimes(in.ScheduledTimes)
	if err != nil {
		return Medication{}, err
	}

	now := s.now().UTC()
	start := in.StartDate
	if start.IsZero() {
		start = civilDate(now, s.loc)
	}
	if in.EndDate != nil && in.EndDate.Before(start) {
		return Medication{}, fmt.Errorf("%w: end_date before start_date", ErrInvalidInput)
	}

	m := Medication{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           name,
		Dosage:         strings.TrimSpace(in.Dosage),
		Frequency:      freq,
		ScheduledTimes: times,
		Notes:          strings.TrimSpace(in.Notes),
		Active:         true,
		StartDate:      start,
		EndDate:        in.EndDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// GetByID solo devuelve medicamentos del usuario; uno ajeno es ErrNotFound.
func (s *Service) GetByID(ctx context.Context, userID, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}
	if m.UserID != userID {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

// ActiveMedication implementa intake.MedicationLookup.
func (s *Service) ActiveMedication(ctx context.Context, subjectID, medicationID string) (intake.MedicationRef, error) {
	m, err := s.GetByID(ctx, subjectID, medicationID)
	if err != nil {
		return intake.MedicationRef{}, err
	}
	if !m.InEffect(s.now(), s.loc) {
		return intake.MedicationRef{}, ErrNotFound
	}
	return intake.MedicationRef{ID: m.ID, Name: m.Name}, nil
}

// PlanItem es un medicamento del plan con el estado de hoy.
type PlanItem struct {
	Medication Medication
	TakenToday bool
	LastTaken  *time.Time
}

// DailyPlan lista los medicamentos vigentes hoy con las tomas VERIFIED del día calendario.
func (s *Service) DailyPlan(ctx context.Context, userID string) ([]PlanItem, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	meds, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := intake.StartOfDay(now, s.loc)
	end := intake.EndOfDay(now, s.loc)
	logs, err := s.intakes.Find(ctx, intake.Filter{
		SubjectID: userID,
		Statuses:  []intake.Status{intake.StatusVerified},
		From:      &start,
		To:        &end,
	})
	if err != nil {
		return nil, err
	}

	// Find ordena desc: la primera que vemos por medicamento es la última toma.
	last := map[string]time.Time{}
	for _, l := range logs {
		if _, ok := last[l.MedicationID]; !ok {
			last[l.MedicationID] = l.TakenAt
		}
	}

	out := make([]PlanItem, 0, len(meds))
	for _, m := range meds {
		if !m.InEffect(now, s.loc) {
			continue
		}
		item := PlanItem{Medication: m}
		if t, ok := last[m.ID]; ok {
			item.TakenToday = true
			item.LastTaken = &t
		}
		out = append(out, item)
	}
	return out, nil
}

// NormalizeTimes valida HH:MM, ordena y quita duplicados.
func NormalizeTimes(in []string) ([]string, error) {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, raw := range in {
		t, err := time.Parse("15:04", strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: scheduled time %q must be HH:MM", ErrInvalidInput, raw)
		}
		v := t.Format("15:04")
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}
