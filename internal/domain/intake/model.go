package intake

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
)

// Verification es el detalle del oráculo; solo existe si la foto fue adjudicada.
type Verification struct {
	Confidence int      `json:"confidence"`
	Detected   []string `json:"detected"`
	Reasoning  string   `json:"reasoning"`
	Model      string   `json:"model"`
}

type Metadata struct {
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	DeviceInfo string   `json:"device_info,omitempty"`
}

// IntakeEvent es un intento de toma. StreakCount es una foto del momento de la
// verificación: se escribe una vez y no se recalcula.
type IntakeEvent struct {
	ID           string
	SubjectID    string
	MedicationID string

	TakenAt time.Time
	Status  Status

	ImageURL     string
	Verification *Verification
	Metadata     *Metadata

	StreakCount int

	RecordedAt time.Time
}

// MedicationRef es lo mínimo que el adjudicador necesita del medicamento.
type MedicationRef struct {
	ID   string
	Name string
}
