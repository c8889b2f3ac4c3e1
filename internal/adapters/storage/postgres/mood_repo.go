package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"medication-adherence/internal/domain/mood"
)

type MoodRepo struct {
	db *sql.DB
}

func NewMoodRepo(db *sql.DB) *MoodRepo {
	return &MoodRepo{db: db}
}

func (r *MoodRepo) Create(ctx context.Context, e mood.MoodEvent) error {
	symptoms := e.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	symArg, err := jsonArg(symptoms)
	if err != nil {
		return err
	}
	var energy *string
	if e.Energy != nil {
		v := string(*e.Energy)
		energy = &v
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO mood_events (
			id, user_id,
			mood, energy, anxiety_level, sleep_quality,
			notes, symptoms,
			suicidal_thoughts, flagged_for_review,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb,$9,$10,$11)
	`,
		e.ID, e.SubjectID,
		string(e.Mood), energy, e.AnxietyLevel, e.SleepQuality,
		e.Notes, symArg,
		e.SuicidalThoughts, e.FlaggedForReview,
		e.CreatedAt,
	)
	return err
}

func (r *MoodRepo) ListByUser(ctx context.Context, subjectID string, from, to *time.Time, limit int) ([]mood.MoodEvent, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, user_id,
			mood, energy, anxiety_level, sleep_quality,
			notes, symptoms,
			suicidal_thoughts, flagged_for_review,
			created_at
		FROM mood_events
		WHERE user_id = $1
	`)

	args := []any{subjectID}
	argN := 2

	if from != nil {
		sb.WriteString(fmt.Sprintf(" AND created_at >= $%d", argN))
		args = append(args, *from)
		argN++
	}
	if to != nil {
		sb.WriteString(fmt.Sprintf(" AND created_at <= $%d", argN))
		args = append(args, *to)
		argN++
	}

	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]mood.MoodEvent, 0)
	for rows.Next() {
		var e mood.MoodEvent
		var lvl string
		var energy *string
		var anxiety, sleep sql.NullInt32
		var symptoms []byte
		if err := rows.Scan(
			&e.ID, &e.SubjectID,
			&lvl, &energy, &anxiety, &sleep,
			&e.Notes, &symptoms,
			&e.SuicidalThoughts, &e.FlaggedForReview,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		e.Mood = mood.Level(lvl)
		if energy != nil {
			en := mood.Energy(*energy)
			e.Energy = &en
		}
		if anxiety.Valid {
			v := int(anxiety.Int32)
			e.AnxietyLevel = &v
		}
		if sleep.Valid {
			v := int(sleep.Int32)
			e.SleepQuality = &v
		}
		e.Symptoms = []string{}
		if err := scanJSON(symptoms, &e.Symptoms); err != nil {
			return nil, fmt.Errorf("decode symptoms: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
