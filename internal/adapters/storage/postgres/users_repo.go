package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"medication-adherence/internal/domain/users"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de violación de UNIQUE/PRIMARY KEY.
const uniqueViolation = "23505"

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `
	id, phone, email,
	first_name, last_name, date_of_birth,
	role, status,
	fcm_token, assigned_clinician_id,
	preferences,
	created_at, updated_at, last_login_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	prefs, err := jsonArg(u.Preferences)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11::jsonb,$12,$13,$14)
	`,
		u.ID, u.Phone, u.Email,
		u.FirstName, u.LastName, u.DateOfBirth,
		string(u.Role), string(u.Status),
		u.FCMToken, u.AssignedClinicianID,
		prefs,
		u.CreatedAt, u.UpdatedAt, u.LastLoginAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("user %s (%s): %w", u.ID, pgErr.ConstraintName, users.ErrConflict)
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, fmt.Errorf("user %s: %w", id, users.ErrNotFound)
		}
		return users.User{}, err
	}
	return u, nil
}

// Update solo escribe los campos editables del perfil más updated_at.
func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	prefs, err := jsonArg(u.Preferences)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			email = $2,
			first_name = $3,
			last_name = $4,
			date_of_birth = $5,
			fcm_token = $6,
			preferences = $7::jsonb,
			updated_at = $8
		WHERE id = $1
	`,
		u.ID, u.Email, u.FirstName, u.LastName, u.DateOfBirth, u.FCMToken, prefs, u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", u.ID, users.ErrNotFound)
	}
	return nil
}

func (r *UsersRepo) ListPatientsByClinician(ctx context.Context, clinicianID string) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE assigned_clinician_id = $1 AND role = $2
		ORDER BY id
	`, clinicianID, string(users.RolePatient))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (users.User, error) {
	var u users.User
	var role, status string
	var prefs []byte
	if err := s.Scan(
		&u.ID, &u.Phone, &u.Email,
		&u.FirstName, &u.LastName, &u.DateOfBirth,
		&role, &status,
		&u.FCMToken, &u.AssignedClinicianID,
		&prefs,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	); err != nil {
		return users.User{}, err
	}

	u.Role = users.Role(role)
	u.Status = users.Status(status)
	if len(prefs) > 0 {
		var p users.Preferences
		if err := scanJSON(prefs, &p); err != nil {
			return users.User{}, fmt.Errorf("decode preferences: %w", err)
		}
		u.Preferences = &p
	}
	return u, nil
}
