package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/ports/objectstore"
	"medication-adherence/internal/ports/verification"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")

	// ErrStorageFailure: falló la escritura al object store o al event log.
	// Se propaga al caller; no queda evento parcial.
	ErrStorageFailure = errors.New("storage failure")
)

// MedicationLookup resuelve un medicamento activo del sujeto.
// Debe devolver ErrNotFound si no existe, está inactivo o es de otro sujeto.
type MedicationLookup interface {
	ActiveMedication(ctx context.Context, subjectID, medicationID string) (MedicationRef, error)
}

type Deps struct {
	Repo        Repository
	Medications MedicationLookup
	Oracle      verification.Oracle
	Store       objectstore.Store
	Logger      logger.Logger

	// Location define el día calendario de referencia. nil = time.Local.
	Location *time.Location
}

type Service struct {
	repo   Repository
	meds   MedicationLookup
	oracle verification.Oracle
	store  objectstore.Store
	log    logger.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewService(d Deps) *Service {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   d.Repo,
		meds:   d.Medications,
		oracle: d.Oracle,
		store:  d.Store,
		log:    log.With(map[string]any{"component": "intake"}),
		loc:    loc,
		now:    time.Now,
	}
}

func (s *Service) Location() *time.Location { return s.loc }

type AdjudicateInput struct {
	SubjectID    string
	MedicationID string
	Image        []byte
	ContentType  string
	Metadata     *Metadata
}

// Adjudication es el resultado para el caller: el evento persistido y el mensaje
// a mostrar al paciente.
type Adjudication struct {
	Event       IntakeEvent
	PriorStreak int
	Message     string
}

// Adjudicate corre el pipeline upload → classify → adjudicate → append.
// No reintenta internamente; un reintento del caller con una foto nueva es idempotente.
func (s *Service) Adjudicate(ctx context.Context, in AdjudicateInput) (Adjudication, error) {
	in.SubjectID = strings.TrimSpace(in.SubjectID)
	in.MedicationID = strings.TrimSpace(in.MedicationID)
	if in.SubjectID == "" || in.MedicationID == "" || len(in.Image) == 0 {
		return Adjudication{}, ErrInvalidInput
	}

	med, err := s.meds.ActiveMedication(ctx, in.SubjectID, in.MedicationID)
	if err != nil {
		return Adjudication{}, err
	}

	now := s.now()

	up, err := s.upload(ctx, in, med, now)
	if err != nil {
		return Adjudication{}, err
	}

	cp := s.classify(ctx, up)

	ai, err := s.adjudicate(ctx, in.SubjectID, cp)
	if err != nil {
		return Adjudication{}, err
	}

	ev, err := s.appendEvent(ctx, in, ai)
	if err != nil {
		return Adjudication{}, err
	}

	return Adjudication{
		Event:       ev,
		PriorStreak: ai.PriorStreak,
		Message:     outcomeMessage(ev),
	}, nil
}

// History devuelve los intentos del sujeto en los últimos days días (default 30, máx 365).
func (s *Service) History(ctx context.Context, subjectID, medicationID string, days int) ([]IntakeEvent, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, ErrInvalidInput
	}
	days = clampDays(days)

	now := s.now()
	from := now.AddDate(0, 0, -days)
	return s.repo.Find(ctx, Filter{
		SubjectID:    subjectID,
		MedicationID: strings.TrimSpace(medicationID),
		From:         &from,
		To:           &now,
	})
}

// CurrentStreak es ComputeStreak al instante actual.
func (s *Service) CurrentStreak(ctx context.Context, subjectID string) (int, time.Time, error) {
	now := s.now()
	n, err := s.ComputeStreak(ctx, subjectID, now)
	return n, now, err
}

func outcomeMessage(e IntakeEvent) string {
	if e.Status == StatusVerified {
		return fmt.Sprintf("Great! %d day streak!", e.StreakCount)
	}
	return "Could not verify. Please try again."
}

func clampDays(days int) int {
	if days <= 0 {
		return 30
	}
	if days > 365 {
		return 365
	}
	return days
}
