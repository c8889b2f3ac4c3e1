package intake

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medication-adherence/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// maxPhotoBytes limita el tamaño de la foto subida.
const maxPhotoBytes = 10 << 20

// RegisterRoutes registra las rutas de tomas. verifyLimit (opcional) se aplica solo a
// verify-intake, que es la que paga una llamada al oráculo.
func RegisterRoutes(r chi.Router, svc *Service, verifyLimit func(http.Handler) http.Handler) {
	if verifyLimit != nil {
		r.With(verifyLimit).Post("/meds/verify-intake", verifyIntakeHandler(svc))
	} else {
		r.Post("/meds/verify-intake", verifyIntakeHandler(svc))
	}
	r.Get("/meds/history", historyHandler(svc))
	r.Get("/meds/streak", streakHandler(svc))
}

type VerificationResponse struct {
	Confidence int      `json:"confidence"`
	Detected   []string `json:"detected"`
	Reasoning  string   `json:"reasoning"`
	Model      string   `json:"model"`
}

type EventResponse struct {
	ID           string                `json:"id"`
	MedicationID string                `json:"medication_id"`
	TakenAt      time.Time             `json:"taken_at"`
	Status       Status                `json:"status"`
	ImageURL     string                `json:"image_url,omitempty"`
	Verification *VerificationResponse `json:"ai_verification,omitempty"`
	Metadata     *Metadata             `json:"metadata,omitempty"`
	StreakCount  int                   `json:"streak_count"`
}

type verifyIntakeResponse struct {
	ID          string `json:"id"`
	Status      Status `json:"status"`
	Confidence  int    `json:"confidence"`
	StreakCount int    `json:"streak_count"`
	Message     string `json:"message"`
}

type streakResponse struct {
	Streak int       `json:"streak"`
	AsOf   time.Time `json:"as_of"`
}

// verifyIntakeHandler godoc
// @Summary Verificar toma de medicamento
// @Description Sube una foto de la toma para verificación automática. Devuelve el estado (verified/failed), la confianza y la racha.
// @Tags medications
// @Accept multipart/form-data
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param image formData file true "Foto de la toma"
// @Param medication_id formData string true "ID del medicamento"
// @Param latitude formData number false "Latitud"
// @Param longitude formData number false "Longitud"
// @Param device_info formData string false "Dispositivo"
// @Success 201 {object} verifyIntakeResponse
// @Failure 400 {string} string "invalid form / image required"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Failure 429 {string} string "too many requests"
// @Failure 502 {string} string "storage failure"
// @Router /meds/verify-intake [post]
func verifyIntakeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes+1<<20)
		if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		img, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
		if err != nil || len(img) == 0 || len(img) > maxPhotoBytes {
			http.Error(w, "image required (max 10MB)", http.StatusBadRequest)
			return
		}

		ct := header.Header.Get("Content-Type")
		if ct == "" || ct == "application/octet-stream" {
			ct = http.DetectContentType(img)
		}
		if !strings.HasPrefix(ct, "image/") {
			http.Error(w, "image must be an image/* file", http.StatusBadRequest)
			return
		}

		meta, err := parseMetadata(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := svc.Adjudicate(r.Context(), AdjudicateInput{
			SubjectID:    claims.UserID,
			MedicationID: r.FormValue("medication_id"),
			Image:        img,
			ContentType:  ct,
			Metadata:     meta,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		conf := 0
		if res.Event.Verification != nil {
			conf = res.Event.Verification.Confidence
		}
		writeJSON(w, http.StatusCreated, verifyIntakeResponse{
			ID:          res.Event.ID,
			Status:      res.Event.Status,
			Confidence:  conf,
			StreakCount: res.Event.StreakCount,
			Message:     res.Message,
		})
	}
}

// historyHandler godoc
// @Summary Historial de tomas
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medication_id query string false "Filtrar por medicamento"
// @Param days query int false "Ventana en días (1-365). Por defecto 30"
// @Success 200 {array} EventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /meds/history [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		items, err := svc.History(r.Context(), claims.UserID, r.URL.Query().Get("medication_id"), days)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]EventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, ToResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// streakHandler godoc
// @Summary Racha actual
// @Description Días consecutivos con al menos una toma verificada.
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} streakResponse
// @Failure 401 {string} string "unauthorized"
// @Router /meds/streak [get]
func streakHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		n, asOf, err := svc.CurrentStreak(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, streakResponse{Streak: n, AsOf: asOf})
	}
}

func parseMetadata(r *http.Request) (*Metadata, error) {
	var m Metadata
	has := false

	parse := func(field string) (*float64, error) {
		v := strings.TrimSpace(r.FormValue(field))
		if v == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New(field + " must be a number")
		}
		has = true
		return &f, nil
	}

	var err error
	if m.Latitude, err = parse("latitude"); err != nil {
		return nil, err
	}
	if m.Longitude, err = parse("longitude"); err != nil {
		return nil, err
	}
	if d := strings.TrimSpace(r.FormValue("device_info")); d != "" {
		m.DeviceInfo = d
		has = true
	}

	if !has {
		return nil, nil
	}
	return &m, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	case errors.Is(err, ErrStorageFailure):
		http.Error(w, "storage failure", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// ToResponse es exportado porque el reporte clínico devuelve los mismos eventos.
func ToResponse(e IntakeEvent) EventResponse {
	out := EventResponse{
		ID:           e.ID,
		MedicationID: e.MedicationID,
		TakenAt:      e.TakenAt,
		Status:       e.Status,
		ImageURL:     e.ImageURL,
		Metadata:     e.Metadata,
		StreakCount:  e.StreakCount,
	}
	if e.Verification != nil {
		out.Verification = &VerificationResponse{
			Confidence: e.Verification.Confidence,
			Detected:   e.Verification.Detected,
			Reasoning:  e.Verification.Reasoning,
			Model:      e.Verification.Model,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
