package mood

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("mood entry not found")
)

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "mood"}),
		now:  time.Now,
	}
}

// CheckInResult es la respuesta al paciente.
type CheckInResult struct {
	Event   MoodEvent
	Message string
}

func (s *Service) CheckIn(ctx context.Context, subjectID string, in Submission) (CheckInResult, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" || !in.Mood.Valid() {
		return CheckInResult{}, ErrInvalidInput
	}
	if in.Energy != nil && !in.Energy.Valid() {
		return CheckInResult{}, ErrInvalidInput
	}
	if !inScale(in.AnxietyLevel) || !inScale(in.SleepQuality) {
		return CheckInResult{}, ErrInvalidInput
	}

	symptoms := make([]string, 0, len(in.Symptoms))
	seen := map[string]struct{}{}
	for _, sym := range in.Symptoms {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		symptoms = append(symptoms, sym)
	}

	e := MoodEvent{
		ID:               uuid.NewString(),
		SubjectID:        subjectID,
		Mood:             in.Mood,
		Energy:           in.Energy,
		AnxietyLevel:     in.AnxietyLevel,
		SleepQuality:     in.SleepQuality,
		Notes:            strings.TrimSpace(in.Notes),
		Symptoms:         symptoms,
		SuicidalThoughts: in.SuicidalThoughts,
		FlaggedForReview: Evaluate(in),
		CreatedAt:        s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return CheckInResult{}, err
	}

	metrics.MoodCheckIns.WithLabelValues(strconv.FormatBool(e.FlaggedForReview)).Inc()
	if e.FlaggedForReview {
		s.log.Warn("mood check-in flagged for review", map[string]any{
			"subject_id":    subjectID,
			"mood_event_id": e.ID,
			"mood":          string(e.Mood),
			"safety_signal": e.SuicidalThoughts,
		})
	}

	msg := "Thank you for checking in."
	if e.SuicidalThoughts {
		msg = "Thank you for sharing. Your clinician has been notified."
	}
	return CheckInResult{Event: e, Message: msg}, nil
}

// History devuelve los check-ins de los últimos days días (default 30, máx 365).
func (s *Service) History(ctx context.Context, subjectID string, days int) ([]MoodEvent, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, ErrInvalidInput
	}
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	now := s.now()
	from := now.AddDate(0, 0, -days)
	return s.repo.ListByUser(ctx, subjectID, &from, &now, 0)
}

// Latest devuelve el check-in más reciente o ErrNotFound.
func (s *Service) Latest(ctx context.Context, subjectID string) (MoodEvent, error) {
	items, err := s.Recent(ctx, subjectID, 1)
	if err != nil {
		return MoodEvent{}, err
	}
	if len(items) == 0 {
		return MoodEvent{}, ErrNotFound
	}
	return items[0], nil
}

// Recent devuelve los n check-ins más recientes, sin ventana de fechas.
func (s *Service) Recent(ctx context.Context, subjectID string, n int) ([]MoodEvent, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" || n <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, subjectID, nil, nil, n)
}

func inScale(v *int) bool {
	return v == nil || (*v >= 1 && *v <= 10)
}
