package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"medication-adherence/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

const medicationColumns = `
	id, user_id,
	name, dosage, frequency,
	scheduled_times, notes,
	is_active, start_date, end_date,
	created_at, updated_at`

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	times := m.ScheduledTimes
	if times == nil {
		times = []string{}
	}
	timesArg, err := jsonArg(times)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6::jsonb,$7,$8,$9,$10,$11,$12)
	`,
		m.ID, m.UserID,
		m.Name, m.Dosage, string(m.Frequency),
		timesArg, m.Notes,
		m.Active, m.StartDate, m.EndDate,
		m.CreatedAt, m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, medications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+medicationColumns+` FROM medications WHERE id = $1`, id)
	m, err := scanMedication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medications.Medication{}, fmt.Errorf("medication %s: %w", id, medications.ErrNotFound)
		}
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) ListActiveByUser(ctx context.Context, userID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE user_id = $1 AND is_active
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMedication(s rowScanner) (medications.Medication, error) {
	var m medications.Medication
	var freq string
	var times []byte
	if err := s.Scan(
		&m.ID, &m.UserID,
		&m.Name, &m.Dosage, &freq,
		&times, &m.Notes,
		&m.Active, &m.StartDate, &m.EndDate,
		&m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}

	m.Frequency = medications.Frequency(freq)
	m.ScheduledTimes = []string{}
	if err := scanJSON(times, &m.ScheduledTimes); err != nil {
		return medications.Medication{}, fmt.Errorf("decode scheduled_times: %w", err)
	}
	return m, nil
}
