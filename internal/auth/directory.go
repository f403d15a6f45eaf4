package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Directory is the user store behind sign-up, sign-in and the admin user list.
type Directory interface {
	Create(ctx context.Context, u *domain.User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail also returns the stored password hash.
	GetByEmail(ctx context.Context, email string) (*domain.User, string, error)
	List(ctx context.Context) ([]*domain.User, error)
	SetAdmin(ctx context.Context, id string, admin bool) error
	Delete(ctx context.Context, id string) error
	TouchSignIn(ctx context.Context, id string, at time.Time) error
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS auth_users (
    id              UUID PRIMARY KEY,
    email           TEXT        NOT NULL UNIQUE,
    password_hash   TEXT        NOT NULL,
    full_name       TEXT        NOT NULL DEFAULT '',
    phone           TEXT        NOT NULL DEFAULT '',
    app_metadata    JSONB       NOT NULL DEFAULT '{}'::jsonb,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_sign_in_at TIMESTAMPTZ
)`

// PGDirectory keeps users in postgres. The admin capability lives in
// app_metadata.is_admin.
type PGDirectory struct {
	pool *pgxpool.Pool
}

func NewPGDirectory(pool *pgxpool.Pool) *PGDirectory {
	return &PGDirectory{pool: pool}
}

// ConnectPG opens a pool and verifies it with a ping.
func ConnectPG(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping auth database: %w", err)
	}
	return pool, nil
}

func (d *PGDirectory) EnsureSchema(ctx context.Context) error {
	if _, err := d.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create auth_users: %w", err)
	}
	return nil
}

const userColumns = `id::text, email, full_name, phone, COALESCE((app_metadata->>'is_admin')::boolean, false), created_at, last_sign_in_at`

func scanUser(row pgx.Row, extra ...any) (*domain.User, error) {
	var u domain.User
	dest := append([]any{&u.ID, &u.Email, &u.FullName, &u.Phone, &u.IsAdmin, &u.CreatedAt, &u.LastSignInAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (d *PGDirectory) Create(ctx context.Context, u *domain.User, passwordHash string) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := d.pool.Exec(ctx,
		`INSERT INTO auth_users (id, email, password_hash, full_name, phone, app_metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, jsonb_build_object('is_admin', $6::boolean), $7)`,
		u.ID, u.Email, passwordHash, u.FullName, u.Phone, u.IsAdmin, u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (d *PGDirectory) GetByID(ctx context.Context, id string) (*domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := scanUser(d.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM auth_users WHERE id = $1`, uid))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return u, err
}

func (d *PGDirectory) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	var hash string
	u, err := scanUser(d.pool.QueryRow(ctx,
		`SELECT `+userColumns+`, password_hash FROM auth_users WHERE email = $1`,
		strings.ToLower(email),
	), &hash)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("query user by email: %w", err)
	}
	return u, hash, nil
}

func (d *PGDirectory) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+userColumns+` FROM auth_users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (d *PGDirectory) SetAdmin(ctx context.Context, id string, admin bool) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrUserNotFound
	}
	tag, err := d.pool.Exec(ctx,
		`UPDATE auth_users SET app_metadata = jsonb_set(app_metadata, '{is_admin}', to_jsonb($2::boolean)) WHERE id = $1`,
		uid, admin,
	)
	if err != nil {
		return fmt.Errorf("update app metadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (d *PGDirectory) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrUserNotFound
	}
	tag, err := d.pool.Exec(ctx, `DELETE FROM auth_users WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (d *PGDirectory) TouchSignIn(ctx context.Context, id string, at time.Time) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrUserNotFound
	}
	tag, err := d.pool.Exec(ctx, `UPDATE auth_users SET last_sign_in_at = $2 WHERE id = $1`, uid, at)
	if err != nil {
		return fmt.Errorf("touch sign in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
