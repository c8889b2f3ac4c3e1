package intake

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"medication-adherence/internal/platform/metrics"
	"medication-adherence/internal/ports/objectstore"
	"medication-adherence/internal/ports/verification"

	"github.com/google/uuid"
)

// VerificationThreshold: la confianza debe ser estrictamente mayor para VERIFIED.
// Constante de diseño, no configurable.
const VerificationThreshold = 70

const photoCategory = "medications"

// Etapa 1: foto persistida en el object store.
type uploadedPhoto struct {
	Medication  MedicationRef
	Image       []byte
	ContentType string
	Key         string
	URL         string
	At          time.Time
}

// Etapa 2: veredicto del oráculo. Degraded indica que el oráculo falló y el
// veredicto es el rechazo conservador.
type classifiedPhoto struct {
	uploadedPhoto
	Verdict  verification.Verdict
	Degraded bool
}

// Etapa 3: estado decidido y racha a escribir.
type adjudicatedIntake struct {
	classifiedPhoto
	PriorStreak int
	Status      Status
	StreakCount int
}

func (s *Service) upload(ctx context.Context, in AdjudicateInput, med MedicationRef, now time.Time) (uploadedPhoto, error) {
	ct := in.ContentType
	if ct == "" {
		ct = http.DetectContentType(in.Image)
	}
	key := objectstore.Key(photoCategory, in.SubjectID, now, objectstore.ExtForContentType(ct))

	url, err := s.store.Put(ctx, key, in.Image, ct)
	if err != nil {
		metrics.StorageFailures.WithLabelValues("object_store").Inc()
		s.log.Error("photo upload failed", map[string]any{
			"subject_id": in.SubjectID,
			"key":        key,
			"err":        err,
		})
		return uploadedPhoto{}, fmt.Errorf("%w: upload photo: %v", ErrStorageFailure, err)
	}

	return uploadedPhoto{
		Medication:  med,
		Image:       in.Image,
		ContentType: ct,
		Key:         key,
		URL:         url,
		At:          now,
	}, nil
}

// classify nunca falla: un error del oráculo se degrada a rechazo con confianza 0.
func (s *Service) classify(ctx context.Context, up uploadedPhoto) classifiedPhoto {
	v, err := s.oracle.Classify(ctx, up.Image, up.Medication.Name)
	if err != nil {
		metrics.OracleDegraded.Inc()
		s.log.Warn("verification oracle degraded", map[string]any{
			"medication_id": up.Medication.ID,
			"err":           err,
		})
		return classifiedPhoto{
			uploadedPhoto: up,
			Verdict: verification.Verdict{
				Accepted:   false,
				Confidence: 0,
				Tags:       []string{},
				Rationale:  fmt.Sprintf("Error: %v", err),
				Model:      v.Model,
			},
			Degraded: true,
		}
	}

	v.Confidence = verification.ClampConfidence(v.Confidence)
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return classifiedPhoto{uploadedPhoto: up, Verdict: v}
}

func (s *Service) adjudicate(ctx context.Context, subjectID string, cp classifiedPhoto) (adjudicatedIntake, error) {
	times, err := s.verifiedTimes(ctx, subjectID, cp.At)
	if err != nil {
		return adjudicatedIntake{}, fmt.Errorf("read verified intakes: %w", err)
	}
	prior := priorStreak(times, cp.At, s.loc)

	st, streak := Decide(cp.Verdict, prior)
	return adjudicatedIntake{
		classifiedPhoto: cp,
		PriorStreak:     prior,
		Status:          st,
		StreakCount:     streak,
	}, nil
}

// Decide aplica el umbral: VERIFIED sii aceptado y confianza > 70.
// La racha solo se escribe al verificar; FAILED escribe 0.
func Decide(v verification.Verdict, priorStreak int) (Status, int) {
	if v.Accepted && v.Confidence > VerificationThreshold {
		return StatusVerified, priorStreak + 1
	}
	return StatusFailed, 0
}

func (s *Service) appendEvent(ctx context.Context, in AdjudicateInput, ai adjudicatedIntake) (IntakeEvent, error) {
	// Caller abandonó: la foto queda huérfana, pero no escribimos un evento a medias.
	if err := ctx.Err(); err != nil {
		return IntakeEvent{}, err
	}

	ev := IntakeEvent{
		ID:           uuid.NewString(),
		SubjectID:    in.SubjectID,
		MedicationID: ai.Medication.ID,
		TakenAt:      ai.At,
		Status:       ai.Status,
		ImageURL:     ai.URL,
		Verification: &Verification{
			Confidence: ai.Verdict.Confidence,
			Detected:   ai.Verdict.Tags,
			Reasoning:  ai.Verdict.Rationale,
			Model:      ai.Verdict.Model,
		},
		Metadata:    in.Metadata,
		StreakCount: ai.StreakCount,
		RecordedAt:  s.now(),
	}

	if err := s.repo.Append(ctx, ev); err != nil {
		metrics.StorageFailures.WithLabelValues("event_log").Inc()
		s.log.Error("intake append failed", map[string]any{
			"subject_id": in.SubjectID,
			"image_key":  ai.Key,
			"err":        err,
		})
		return IntakeEvent{}, fmt.Errorf("%w: append intake: %v", ErrStorageFailure, err)
	}

	metrics.IntakeAdjudications.WithLabelValues(string(ev.Status)).Inc()
	s.log.Info("intake adjudicated", map[string]any{
		"subject_id":    ev.SubjectID,
		"medication_id": ev.MedicationID,
		"status":        string(ev.Status),
		"confidence":    ev.Verification.Confidence,
		"streak":        ev.StreakCount,
		"degraded":      ai.Degraded,
	})
	return ev, nil
}
