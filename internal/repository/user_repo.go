package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"avatar_platform/internal/models"
)

type UserRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewUserRepository(db *sql.DB, dialect Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: dialect}
}

// Ensure implementation of CredentialStore interface at compile time.
var _ CredentialStore = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id`
	selectUserColumns    = `SELECT id, email, name, password_hash, created_at FROM users`
	selectUserByEmailSQL = selectUserColumns + ` WHERE email = $1`
	selectUserByIDSQL    = selectUserColumns + ` WHERE id = $1`
)

// Create inserts a new user and returns its ID.
// A taken email yields ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, email, name, passwordHash string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(insertUserSQL),
		email,
		nullableString(name),
		passwordHash,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", email, ErrDuplicateEmail)
		}
		return 0, fmt.Errorf("insert user %q: %w", email, err)
	}
	return id, nil
}

// FindByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectUserByEmailSQL), email))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return u, nil
}

// FindByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectUserByIDSQL), id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var (
		u    models.User
		name sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &name, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Name = name.String
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
