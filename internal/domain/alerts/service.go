package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-adherence/internal/domain/intake"
	"medication-adherence/internal/domain/mood"
	"medication-adherence/internal/domain/users"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/platform/metrics"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("patient not found")
)

type PatientDirectory interface {
	GetByID(ctx context.Context, id string) (users.User, error)
	ListPatientsByClinician(ctx context.Context, clinicianID string) ([]users.User, error)
}

type IntakeReader interface {
	Find(ctx context.Context, filter intake.Filter) ([]intake.IntakeEvent, error)
}

type MoodReader interface {
	ListByUser(ctx context.Context, subjectID string, from, to *time.Time, limit int) ([]mood.MoodEvent, error)
}

type Deps struct {
	Patients PatientDirectory
	Intakes  IntakeReader
	Moods    MoodReader
	Logger   logger.Logger

	// Concurrency acota el fan-out por paciente. <= 0 usa 8.
	Concurrency int
}

type Service struct {
	patients    PatientDirectory
	intakes     IntakeReader
	moods       MoodReader
	log         logger.Logger
	concurrency int
	now         func() time.Time
}

func NewService(d Deps) *Service {
	c := d.Concurrency
	if c <= 0 {
		c = 8
	}
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		patients:    d.Patients,
		intakes:     d.Intakes,
		moods:       d.Moods,
		log:         log.With(map[string]any{"component": "alerts"}),
		concurrency: c,
		now:         time.Now,
	}
}

// PanelAlerts analiza cada paciente asignado al clínico y devuelve los que requieren
// atención, ordenados por Rank. Los análisis por paciente corren en paralelo; si uno
// falla se cancela el resto y se devuelve el error.
func (s *Service) PanelAlerts(ctx context.Context, clinicianID string) ([]PatientAlert, error) {
	clinicianID = strings.TrimSpace(clinicianID)
	if clinicianID == "" {
		return nil, ErrInvalidInput
	}

	start := time.Now()
	defer func() { metrics.PanelScanSeconds.Observe(time.Since(start).Seconds()) }()

	patients, err := s.patients.ListPatientsByClinician(ctx, clinicianID)
	if err != nil {
		return nil, err
	}
	metrics.PanelPatients.Observe(float64(len(patients)))

	now := s.now()
	results := make([]PatientAlert, len(patients))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range patients {
		g.Go(func() error {
			h, err := s.history(gctx, p, now)
			if err != nil {
				return fmt.Errorf("patient %s: %w", p.ID, err)
			}
			results[i] = Analyze(h, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("panel scan failed", map[string]any{
			"clinician_id": clinicianID,
			"err":          err,
		})
		return nil, err
	}

	out := make([]PatientAlert, 0, len(results))
	for _, r := range results {
		if NeedsAttention(r) {
			out = append(out, r)
		}
	}
	Rank(out)

	s.log.Debug("panel scanned", map[string]any{
		"clinician_id": clinicianID,
		"patients":     len(patients),
		"flagged":      len(out),
	})
	return out, nil
}

func (s *Service) history(ctx context.Context, p users.User, now time.Time) (PatientHistory, error) {
	h := PatientHistory{Patient: p}
	from := now.Add(-AdherenceWindow)

	window, err := s.intakes.Find(ctx, intake.Filter{SubjectID: p.ID, From: &from, To: &now})
	if err != nil {
		return PatientHistory{}, fmt.Errorf("read intake window: %w", err)
	}
	h.WindowIntakes = window

	last, err := s.intakes.Find(ctx, intake.Filter{
		SubjectID: p.ID,
		Statuses:  []intake.Status{intake.StatusVerified},
		To:        &now,
		Limit:     1,
	})
	if err != nil {
		return PatientHistory{}, fmt.Errorf("read last verified intake: %w", err)
	}
	if len(last) > 0 {
		t := last[0].TakenAt
		h.LastVerified = &t
	}

	moods, err := s.moods.ListByUser(ctx, p.ID, nil, &now, MoodSampleSize)
	if err != nil {
		return PatientHistory{}, fmt.Errorf("read recent moods: %w", err)
	}
	h.RecentMoods = moods

	return h, nil
}

// Report devuelve tomas y check-ins crudos de los últimos days días (default 30, máx 365).
// Un paciente inexistente o no asignado al clínico es ErrNotFound.
func (s *Service) Report(ctx context.Context, clinicianID, patientID string, days int) (Report, error) {
	clinicianID = strings.TrimSpace(clinicianID)
	patientID = strings.TrimSpace(patientID)
	if clinicianID == "" || patientID == "" {
		return Report{}, ErrInvalidInput
	}
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	if p.Role != users.RolePatient || p.AssignedClinicianID == nil || *p.AssignedClinicianID != clinicianID {
		return Report{}, ErrNotFound
	}

	now := s.now()
	from := now.AddDate(0, 0, -days)

	var (
		intakes []intake.IntakeEvent
		moods   []mood.MoodEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		intakes, err = s.intakes.Find(gctx, intake.Filter{SubjectID: p.ID, From: &from, To: &now})
		return err
	})
	g.Go(func() error {
		var err error
		moods, err = s.moods.ListByUser(gctx, p.ID, &from, &now, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	flagged := 0
	for _, m := range moods {
		if m.FlaggedForReview {
			flagged++
		}
	}

	return Report{
		Patient: summaryOf(p),
		Email:   p.Email,
		Days:    days,
		Intakes: intakes,
		Moods:   moods,
		Summary: ReportSummary{
			TotalIntakes:    len(intakes),
			VerifiedIntakes: countVerified(intakes),
			AdherenceRate:   AdherenceRate(intakes),
			FlaggedMoods:    flagged,
		},
	}, nil
}
