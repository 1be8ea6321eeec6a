package postgres

import (
	"context"
	"database/sql"
	"time"

	"gedo/internal/model"
	"gedo/internal/repository"
)

type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, username, email, password_hash, role, obra_id, active,
		must_change_password, last_login_at, created_at, updated_at,
		password_changed_at, password_changed_by_admin, last_admin_password_change`

func scanUser(s scanner) (*model.User, error) {
	var (
		u           model.User
		role        string
		obraID      sql.NullString
		lastLogin   sql.NullTime
		changedAt   sql.NullTime
		adminChange sql.NullTime
	)
	if err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&role,
		&obraID,
		&u.Active,
		&u.MustChangePassword,
		&lastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
		&changedAt,
		&u.PasswordChangedByAdmin,
		&adminChange,
	); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	u.ObraID = obraID.String
	u.LastLoginAt = timePtr(lastLogin)
	u.PasswordChangedAt = timePtr(changedAt)
	u.LastAdminPasswordChange = timePtr(adminChange)
	return &u, nil
}

// FindByEmail matches the email case-insensitively.
func (p *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(p.db.QueryRowContext(ctx, q, email))
}

func (p *UserPostgres) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(p.db.QueryRowContext(ctx, q, username))
}

func (p *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(p.db.QueryRowContext(ctx, q, id))
}

func (p *UserPostgres) List(ctx context.Context) ([]model.User, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Create inserts u and returns the stored row. Unique violations on username
// or email come back as repository.ErrDuplicate.
func (p *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	q := `INSERT INTO users (id, username, email, password_hash, role, obra_id, active,
		must_change_password, created_at, updated_at,
		password_changed_at, password_changed_by_admin, last_admin_password_change)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + userColumns
	out, err := scanUser(p.db.QueryRowContext(ctx, q,
		u.ID, u.Username, u.Email, u.PasswordHash, string(u.Role), nullString(u.ObraID), u.Active,
		u.MustChangePassword, u.CreatedAt, u.UpdatedAt,
		nullTime(u.PasswordChangedAt), u.PasswordChangedByAdmin, nullTime(u.LastAdminPasswordChange),
	))
	if err != nil {
		return nil, translateWrite(err)
	}
	return out, nil
}

func (p *UserPostgres) Update(ctx context.Context, u *model.User) (*model.User, error) {
	q := `UPDATE users SET username = $2, email = $3, role = $4, obra_id = $5, active = $6, updated_at = $7
		WHERE id = $1 RETURNING ` + userColumns
	out, err := scanUser(p.db.QueryRowContext(ctx, q,
		u.ID, u.Username, u.Email, string(u.Role), nullString(u.ObraID), u.Active, u.UpdatedAt,
	))
	if err != nil {
		return nil, translateWrite(err)
	}
	return out, nil
}

// UpdatePassword returns sql.ErrNoRows when the user does not exist.
func (p *UserPostgres) UpdatePassword(ctx context.Context, u *model.User) error {
	q := `UPDATE users SET password_hash = $2, must_change_password = $3, password_changed_at = $4,
		password_changed_by_admin = $5, last_admin_password_change = $6, updated_at = $7
		WHERE id = $1`
	res, err := p.db.ExecContext(ctx, q,
		u.ID, u.PasswordHash, u.MustChangePassword, nullTime(u.PasswordChangedAt),
		u.PasswordChangedByAdmin, nullTime(u.LastAdminPasswordChange), u.UpdatedAt,
	)
	return affectedOne(res, err)
}

// UpdateLastLogin returns sql.ErrNoRows when the user does not exist.
func (p *UserPostgres) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := p.db.ExecContext(ctx, `UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	return affectedOne(res, err)
}

// Delete returns sql.ErrNoRows when the user does not exist and
// repository.ErrInUse while records reference it.
func (p *UserPostgres) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	return affectedOne(res, nil)
}
