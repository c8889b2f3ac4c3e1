package mood

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medication-adherence/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/mood", func(mr chi.Router) {
		mr.Post("/check-in", checkInHandler(svc))
		mr.Get("/history", historyHandler(svc))
		mr.Get("/latest", latestHandler(svc))
	})
}

type checkInRequest struct {
	Mood             string   `json:"mood" validate:"required,oneof=very_low low neutral good very_good"`
	Energy           *string  `json:"energy" validate:"omitempty,oneof=very_low low moderate high very_high"`
	AnxietyLevel     *int     `json:"anxiety_level" validate:"omitempty,min=1,max=10"`
	SleepQuality     *int     `json:"sleep_quality" validate:"omitempty,min=1,max=10"`
	Notes            string   `json:"notes" validate:"max=2000"`
	Symptoms         []string `json:"symptoms" validate:"max=20,dive,max=64"`
	SuicidalThoughts bool     `json:"suicidal_thoughts"`
}

type checkInResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Flagged bool   `json:"flagged"`
}

type EventResponse struct {
	ID               string    `json:"id"`
	Mood             Level     `json:"mood"`
	Energy           *Energy   `json:"energy,omitempty"`
	AnxietyLevel     *int      `json:"anxiety_level,omitempty"`
	SleepQuality     *int      `json:"sleep_quality,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Symptoms         []string  `json:"symptoms"`
	SuicidalThoughts bool      `json:"suicidal_thoughts"`
	FlaggedForReview bool      `json:"flagged_for_review"`
	CreatedAt        time.Time `json:"created_at"`
}

// checkInHandler godoc
// @Summary Check-in diario de ánimo
// @Description Registra ánimo, energía y síntomas. flagged=true si hay señal de seguridad o ánimo very_low.
// @Tags mood
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body checkInRequest true "Check-in"
// @Success 201 {object} checkInResponse
// @Failure 400 {string} string "invalid json / validation error"
// @Failure 401 {string} string "unauthorized"
// @Router /mood/check-in [post]
func checkInHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req checkInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := Submission{
			Mood:             Level(req.Mood),
			AnxietyLevel:     req.AnxietyLevel,
			SleepQuality:     req.SleepQuality,
			Notes:            req.Notes,
			Symptoms:         req.Symptoms,
			SuicidalThoughts: req.SuicidalThoughts,
		}
		if req.Energy != nil {
			e := Energy(*req.Energy)
			in.Energy = &e
		}

		res, err := svc.CheckIn(r.Context(), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, checkInResponse{
			ID:      res.Event.ID,
			Message: res.Message,
			Flagged: res.Event.FlaggedForReview,
		})
	}
}

// historyHandler godoc
// @Summary Historial de ánimo
// @Tags mood
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param days query int false "Ventana en días (1-365). Por defecto 30"
// @Success 200 {array} EventResponse
// @Failure 401 {string} string "unauthorized"
// @Router /mood/history [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		items, err := svc.History(r.Context(), claims.UserID, days)
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

// latestHandler godoc
// @Summary Último check-in
// @Tags mood
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} EventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "mood entry not found"
// @Router /mood/latest [get]
func latestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		e, err := svc.Latest(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(e))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "mood entry not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func ToResponse(e MoodEvent) EventResponse {
	sym := e.Symptoms
	if sym == nil {
		sym = []string{}
	}
	return EventResponse{
		ID:               e.ID,
		Mood:             e.Mood,
		Energy:           e.Energy,
		AnxietyLevel:     e.AnxietyLevel,
		SleepQuality:     e.SleepQuality,
		Notes:            e.Notes,
		Symptoms:         sym,
		SuicidalThoughts: e.SuicidalThoughts,
		FlaggedForReview: e.FlaggedForReview,
		CreatedAt:        e.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
