package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"medication-adherence/internal/domain/intake"
)

// IntakeRepo es el event log de tomas. Solo INSERT y SELECT.
type IntakeRepo struct {
	db *sql.DB
}

func NewIntakeRepo(db *sql.DB) *IntakeRepo {
	return &IntakeRepo{db: db}
}

const intakeColumns = `
	id, user_id, medication_id,
	taken_at, status,
	image_url, verification, metadata,
	streak_count, recorded_at`

func (r *IntakeRepo) Append(ctx context.Context, e intake.IntakeEvent) error {
	verif, err := jsonArg(e.Verification)
	if err != nil {
		return err
	}
	meta, err := jsonArg(e.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO intake_events (`+intakeColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7::jsonb,$8::jsonb,$9,$10)
	`,
		e.ID, e.SubjectID, e.MedicationID,
		e.TakenAt, string(e.Status),
		e.ImageURL, verif, meta,
		e.StreakCount, e.RecordedAt,
	)
	return err
}

func (r *IntakeRepo) Find(ctx context.Context, filter intake.Filter) ([]intake.IntakeEvent, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + intakeColumns + ` FROM intake_events WHERE TRUE`)

	args := []any{}
	argN := 1

	if filter.SubjectID != "" {
		sb.WriteString(fmt.Sprintf(" AND user_id = $%d", argN))
		args = append(args, filter.SubjectID)
		argN++
	}
	if filter.MedicationID != "" {
		sb.WriteString(fmt.Sprintf(" AND medication_id = $%d", argN))
		args = append(args, filter.MedicationID)
		argN++
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(st))
			argN++
		}
		sb.WriteString(" AND status IN (" + strings.Join(placeholders, ",") + ")")
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND taken_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND taken_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	sb.WriteString(" ORDER BY taken_at DESC, id DESC")
	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]intake.IntakeEvent, 0)
	for rows.Next() {
		var e intake.IntakeEvent
		var status string
		var verif, meta []byte
		if err := rows.Scan(
			&e.ID, &e.SubjectID, &e.MedicationID,
			&e.TakenAt, &status,
			&e.ImageURL, &verif, &meta,
			&e.StreakCount, &e.RecordedAt,
		); err != nil {
			return nil, err
		}

		e.Status = intake.Status(status)
		if len(verif) > 0 {
			var v intake.Verification
			if err := scanJSON(verif, &v); err != nil {
				return nil, fmt.Errorf("decode verification: %w", err)
			}
			e.Verification = &v
		}
		if len(meta) > 0 {
			var m intake.Metadata
			if err := scanJSON(meta, &m); err != nil {
				return nil, fmt.Errorf("decode metadata: %w", err)
			}
			e.Metadata = &m
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
