package alerts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medication-adherence/internal/domain/intake"
	"medication-adherence/internal/domain/mood"
	"medication-adherence/internal/domain/users"
	"medication-adherence/internal/middleware"
	"medication-adherence/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/clinician/patients", func(cr chi.Router) {
		cr.Get("/alerts", panelAlertsHandler(svc))
		cr.Get("/{patientID}/report", reportHandler(svc))
	})
}

type alertResponse struct {
	Type      Kind      `json:"type"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type patientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type patientAlertResponse struct {
	Patient             patientResponse `json:"patient"`
	Alerts              []alertResponse `json:"alerts"`
	AdherenceRate       float64         `json:"adherence_rate"`
	LastMoodCheck       *time.Time      `json:"last_mood_check"`
	DaysSinceMedication int             `json:"days_since_medication"`
}

type reportSummaryResponse struct {
	TotalMedications    int     `json:"total_medications"`
	VerifiedMedications int     `json:"verified_medications"`
	AdherenceRate       float64 `json:"adherence_rate"`
	FlaggedMoods        int     `json:"flagged_moods"`
}

type reportResponse struct {
	Patient     patientResponse        `json:"patient"`
	Days        int                    `json:"days"`
	Medications []intake.EventResponse `json:"medications"`
	Moods       []mood.EventResponse   `json:"moods"`
	Summary     reportSummaryResponse  `json:"summary"`
}

// panelAlertsHandler godoc
// @Summary Alertas del panel
// @Description Pacientes del clínico que requieren atención, ordenados por severidad.
// @Tags clinician
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol (clinician)"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} patientAlertResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /clinician/patients/alerts [get]
func panelAlertsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClinician(w, r)
		if !ok {
			return
		}

		items, err := svc.PanelAlerts(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]patientAlertResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientAlertResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// reportHandler godoc
// @Summary Reporte detallado de paciente
// @Tags clinician
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol (clinician)"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "Patient ID"
// @Param days query int false "Ventana en días (1-365). Por defecto 30"
// @Success 200 {object} reportResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /clinician/patients/{patientID}/report [get]
func reportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClinician(w, r)
		if !ok {
			return
		}

		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		rep, err := svc.Report(r.Context(), claims.UserID, chi.URLParam(r, "patientID"), days)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := reportResponse{
			Patient: patientResponse{
				ID:    rep.Patient.ID,
				Name:  rep.Patient.Name,
				Phone: rep.Patient.Phone,
				Email: rep.Email,
			},
			Days:        rep.Days,
			Medications: make([]intake.EventResponse, 0, len(rep.Intakes)),
			Moods:       make([]mood.EventResponse, 0, len(rep.Moods)),
			Summary: reportSummaryResponse{
				TotalMedications:    rep.Summary.TotalIntakes,
				VerifiedMedications: rep.Summary.VerifiedIntakes,
				AdherenceRate:       rep.Summary.AdherenceRate,
				FlaggedMoods:        rep.Summary.FlaggedMoods,
			},
		}
		for _, e := range rep.Intakes {
			out.Medications = append(out.Medications, intake.ToResponse(e))
		}
		for _, m := range rep.Moods {
			out.Moods = append(out.Moods, mood.ToResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func requireClinician(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	if users.Role(claims.Role) != users.RoleClinician {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}
	return claims, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "patient not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPatientAlertResponse(p PatientAlert) patientAlertResponse {
	out := patientAlertResponse{
		Patient: patientResponse{
			ID:    p.Patient.ID,
			Name:  p.Patient.Name,
			Phone: p.Patient.Phone,
		},
		Alerts:              make([]alertResponse, 0, len(p.Alerts)),
		AdherenceRate:       p.AdherenceRate,
		LastMoodCheck:       p.LastMoodCheck,
		DaysSinceMedication: p.DaysSinceMedication,
	}
	for _, a := range p.Alerts {
		out.Alerts = append(out.Alerts, alertResponse{
			Type:      a.Kind,
			Severity:  a.Severity,
			Message:   a.Message,
			Timestamp: a.Timestamp,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
