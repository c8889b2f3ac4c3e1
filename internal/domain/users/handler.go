package users

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

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/users", createUserHandler(svc))
	r.Route("/users/me", func(ur chi.Router) {
		ur.Get("/", getMeHandler(svc))
		ur.Patch("/", updateMeHandler(svc))
	})
}

// updateProfileRequest es el allow-list del PATCH. Cualquier otro campo (role,
// assigned_clinician_id, phone, status...) se rechaza con 400.
type updateProfileRequest struct {
	FirstName   *string              `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName    *string              `json:"last_name" validate:"omitempty,max=100"`
	Email       *string              `json:"email" validate:"omitempty,email"`
	DateOfBirth *string              `json:"date_of_birth"` // YYYY-MM-DD
	FCMToken    *string              `json:"fcm_token" validate:"omitempty,max=512"`
	Preferences *preferencesResponse `json:"preferences"`
}

// createUserRequest: id es el subject del proveedor de identidad (sub del token).
type createUserRequest struct {
	ID                  string  `json:"id" validate:"omitempty,max=128"`
	Phone               string  `json:"phone" validate:"required,e164"`
	Email               string  `json:"email" validate:"omitempty,email"`
	FirstName           string  `json:"first_name" validate:"required,max=100"`
	LastName            string  `json:"last_name" validate:"max=100"`
	Role                string  `json:"role" validate:"omitempty,oneof=patient clinician admin"`
	AssignedClinicianID *string `json:"assigned_clinician_id" validate:"omitempty,max=128"`
}

type preferencesResponse struct {
	NotificationsEnabled bool     `json:"notifications_enabled"`
	ReminderTimes        []string `json:"reminder_times" validate:"dive,datetime=15:04"`
	Language             string   `json:"language" validate:"omitempty,max=10"`
}

type userResponse struct {
	ID                  string               `json:"id"`
	Phone               string               `json:"phone"`
	Email               string               `json:"email,omitempty"`
	FirstName           string               `json:"first_name"`
	LastName            string               `json:"last_name"`
	DateOfBirth         *time.Time           `json:"date_of_birth,omitempty"`
	Role                Role                 `json:"role"`
	Status              Status               `json:"status"`
	AssignedClinicianID *string              `json:"assigned_clinician_id,omitempty"`
	Preferences         *preferencesResponse `json:"preferences,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// createUserHandler godoc
// @Summary Alta de usuario
// @Description Solo admin o clinician. Un clinician solo da de alta pacientes y quedan asignados a él.
// @Tags users
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol (patient, clinician, admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createUserRequest true "Usuario"
// @Success 201 {object} userResponse
// @Failure 400 {string} string "invalid json / validation error"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "user already exists"
// @Router /users [post]
func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req createUserRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		u, err := svc.Provision(r.Context(), Actor{ID: claims.UserID, Role: Role(claims.Role)}, RegisterInput{
			ID:                  req.ID,
			Phone:               req.Phone,
			Email:               req.Email,
			FirstName:           req.FirstName,
			LastName:            req.LastName,
			Role:                Role(req.Role),
			AssignedClinicianID: req.AssignedClinicianID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// getMeHandler godoc
// @Summary Perfil del usuario autenticado
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} userResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "user not found"
// @Router /users/me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// updateMeHandler godoc
// @Summary Actualizar perfil
// @Description Solo se aceptan first_name, last_name, email, date_of_birth, fcm_token y preferences. Cualquier otro campo devuelve 400.
// @Tags users
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body updateProfileRequest true "Campos a modificar"
// @Success 200 {object} userResponse
// @Failure 400 {string} string "invalid json / campos no permitidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "user not found"
// @Router /users/me [patch]
func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateProfileRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json or field not allowed", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := ProfileUpdate{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			FCMToken:  req.FCMToken,
		}
		if req.DateOfBirth != nil {
			t, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.DateOfBirth = &t
		}
		if req.Preferences != nil {
			in.Preferences = &Preferences{
				NotificationsEnabled: req.Preferences.NotificationsEnabled,
				ReminderTimes:        req.Preferences.ReminderTimes,
				Language:             req.Preferences.Language,
			}
		}

		u, err := svc.UpdateProfile(r.Context(), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrConflict):
		http.Error(w, "user already exists", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toUserResponse(u User) userResponse {
	out := userResponse{
		ID:                  u.ID,
		Phone:               u.Phone,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		DateOfBirth:         u.DateOfBirth,
		Role:                u.Role,
		Status:              u.Status,
		AssignedClinicianID: u.AssignedClinicianID,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
	if u.Preferences != nil {
		out.Preferences = &preferencesResponse{
			NotificationsEnabled: u.Preferences.NotificationsEnabled,
			ReminderTimes:        u.Preferences.ReminderTimes,
			Language:             u.Preferences.Language,
		}
	}
	return out
}

// writeJSON está duplicado en cada módulo para no crear un paquete de helpers todavía.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
