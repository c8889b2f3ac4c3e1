package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("user already exists")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// RegisterInput es lo que entrega el colaborador de identidad al dar de alta un sujeto.
// ID es el subject del proveedor de identidad; vacío genera uno nuevo.
type RegisterInput struct {
	ID                  string
	Phone               string
	Email               string
	FirstName           string
	LastName            string
	Role                Role
	AssignedClinicianID *string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	phone := strings.TrimSpace(in.Phone)
	if phone == "" || strings.TrimSpace(in.FirstName) == "" {
		return User{}, ErrInvalidInput
	}

	role := in.Role
	if role == "" {
		role = RolePatient
	}
	switch role {
	case RolePatient, RoleClinician, RoleAdmin:
	default:
		return User{}, ErrInvalidInput
	}

	var clinician *string
	if in.AssignedClinicianID != nil && strings.TrimSpace(*in.AssignedClinicianID) != "" {
		v := strings.TrimSpace(*in.AssignedClinicianID)
		clinician = &v
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	} else if _, err := s.repo.GetByID(ctx, id); err == nil {
		return User{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:                  id,
		Phone:               phone,
		Email:               strings.TrimSpace(in.Email),
		FirstName:           strings.TrimSpace(in.FirstName),
		LastName:            strings.TrimSpace(in.LastName),
		Role:                role,
		Status:              StatusActive,
		AssignedClinicianID: clinician,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Actor es quien pide el alta, tomado de los claims del request.
type Actor struct {
	ID   string
	Role Role
}

// Provision da de alta un sujeto en nombre de actor:
//   - admin crea cualquier rol y asigna cualquier clínico
//   - clinician solo crea pacientes, asignados a sí mismo
//   - el resto no puede dar altas
//
// Si hay clínico asignado, tiene que existir con rol clinician.
func (s *Service) Provision(ctx context.Context, actor Actor, in RegisterInput) (User, error) {
	switch actor.Role {
	case RoleAdmin:
	case RoleClinician:
		if in.Role != "" && in.Role != RolePatient {
			return User{}, ErrForbidden
		}
		in.Role = RolePatient
		if in.AssignedClinicianID == nil || strings.TrimSpace(*in.AssignedClinicianID) == "" {
			self := actor.ID
			in.AssignedClinicianID = &self
		} else if strings.TrimSpace(*in.AssignedClinicianID) != actor.ID {
			return User{}, ErrForbidden
		}
	default:
		return User{}, ErrForbidden
	}

	if in.AssignedClinicianID != nil {
		if cid := strings.TrimSpace(*in.AssignedClinicianID); cid != "" {
			c, err := s.repo.GetByID(ctx, cid)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return User{}, fmt.Errorf("%w: assigned clinician %s not found", ErrInvalidInput, cid)
				}
				return User{}, err
			}
			if c.Role != RoleClinician {
				return User{}, fmt.Errorf("%w: assigned user %s is not a clinician", ErrInvalidInput, cid)
			}
		}
	}

	return s.Register(ctx, in)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListPatientsByClinician(ctx context.Context, clinicianID string) ([]User, error) {
	clinicianID = strings.TrimSpace(clinicianID)
	if clinicianID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListPatientsByClinician(ctx, clinicianID)
}

// ProfileUpdate es la lista cerrada de campos que un usuario puede tocar de su perfil.
// Rol, estado, teléfono y clínico asignado NO están acá a propósito.
// Punteros: nil = no tocar.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	DateOfBirth *time.Time
	FCMToken    *string
	Preferences *Preferences
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (User, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return User{}, ErrInvalidInput
		}
		u.FirstName = v
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		v := strings.TrimSpace(*in.Email)
		if v != "" {
			if _, err := mail.ParseAddress(v); err != nil {
				return User{}, ErrInvalidInput
			}
		}
		u.Email = v
	}
	if in.DateOfBirth != nil {
		if in.DateOfBirth.After(s.now()) {
			return User{}, ErrInvalidInput
		}
		dob := *in.DateOfBirth
		u.DateOfBirth = &dob
	}
	if in.FCMToken != nil {
		u.FCMToken = strings.TrimSpace(*in.FCMToken)
	}
	if in.Preferences != nil {
		for _, t := range in.Preferences.ReminderTimes {
			if _, err := time.Parse("15:04", t); err != nil {
				return User{}, ErrInvalidInput
			}
		}
		p := *in.Preferences
		u.Preferences = &p
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}
