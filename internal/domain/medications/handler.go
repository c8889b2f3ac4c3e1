package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medication-adherence/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterRoutes registra /meds y /meds/daily-plan. Las rutas de tomas bajo /meds
// las registra el paquete intake sobre el mismo router.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/meds", createMedicationHandler(svc))
	r.Get("/meds/daily-plan", dailyPlanHandler(svc))
	r.Get("/meds/{medicationID}", getMedicationHandler(svc))
}

type createMedicationRequest struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Dosage         string   `json:"dosage" validate:"max=100"`
	Frequency      string   `json:"frequency" validate:"omitempty,oneof=daily_once daily_twice daily_three weekly as_needed"`
	ScheduledTimes []string `json:"scheduled_times" validate:"max=12,dive,datetime=15:04"`
	Notes          string   `json:"notes" validate:"max=2000"`
	StartDate      string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type medicationResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Dosage         string    `json:"dosage,omitempty"`
	Frequency      Frequency `json:"frequency"`
	ScheduledTimes []string  `json:"scheduled_times"`
	Notes          string    `json:"notes,omitempty"`
	Active         bool      `json:"is_active"`
	StartDate      string    `json:"start_date"`
	EndDate        *string   `json:"end_date,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type planItemResponse struct {
	medicationResponse
	TakenToday bool       `json:"taken_today"`
	LastTaken  *time.Time `json:"last_taken,omitempty"`
}

// createMedicationHandler godoc
// @Summary Crear medicamento
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMedicationRequest true "Medicamento"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / validation error"
// @Failure 401 {string} string "unauthorized"
// @Router /meds [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := CreateInput{
			Name:           req.Name,
			Dosage:         req.Dosage,
			Frequency:      Frequency(req.Frequency),
			ScheduledTimes: req.ScheduledTimes,
			Notes:          req.Notes,
		}
		// validator ya garantizó el formato.
		if req.StartDate != "" {
			in.StartDate, _ = time.Parse(time.DateOnly, req.StartDate)
		}
		if req.EndDate != nil {
			t, _ := time.Parse(time.DateOnly, *req.EndDate)
			in.EndDate = &t
		}

		m, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

// getMedicationHandler godoc
// @Summary Obtener medicamento
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "Medication ID"
// @Success 200 {object} medicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /meds/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.GetByID(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// dailyPlanHandler godoc
// @Summary Plan diario
// @Description Medicamentos vigentes hoy con taken_today/last_taken según las tomas verificadas del día.
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} planItemResponse
// @Failure 401 {string} string "unauthorized"
// @Router /meds/daily-plan [get]
func dailyPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.DailyPlan(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]planItemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, planItemResponse{
				medicationResponse: toMedicationResponse(it.Medication),
				TakenToday:         it.TakenToday,
				LastTaken:          it.LastTaken,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMedicationResponse(m Medication) medicationResponse {
	out := medicationResponse{
		ID:             m.ID,
		Name:           m.Name,
		Dosage:         m.Dosage,
		Frequency:      m.Frequency,
		ScheduledTimes: m.ScheduledTimes,
		Notes:          m.Notes,
		Active:         m.Active,
		StartDate:      m.StartDate.Format(time.DateOnly),
		CreatedAt:      m.CreatedAt,
	}
	if out.ScheduledTimes == nil {
		out.ScheduledTimes = []string{}
	}
	if m.EndDate != nil {
		s := m.EndDate.Format(time.DateOnly)
		out.EndDate = &s
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
