package users

import "time"

// Role define el rol del usuario.
// @Enum patient, clinician, admin
type Role string

const (
	RolePatient   Role = "patient"
	RoleClinician Role = "clinician"
	RoleAdmin     Role = "admin"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

type Preferences struct {
	NotificationsEnabled bool     `json:"notifications_enabled"`
	ReminderTimes        []string `json:"reminder_times"` // ["08:00", "20:00"]
	Language             string   `json:"language"`
}

// User es el sujeto (paciente o clínico). Un paciente sin clínico asignado
// no aparece en ningún panel de alertas.
type User struct {
	ID    string
	Phone string
	Email string

	FirstName   string
	LastName    string
	DateOfBirth *time.Time

	Role   Role
	Status Status

	FCMToken            string
	AssignedClinicianID *string

	Preferences *Preferences

	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt *time.Time
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
