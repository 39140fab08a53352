package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seuhd/campuscoffee/internal/domain"
	"github.com/seuhd/campuscoffee/internal/domain/entity"
	"github.com/seuhd/campuscoffee/internal/domain/repository"
)

// Constraint names must match the migration; they are the only signal
// used to classify a uniqueness violation (no message matching).
const (
	loginNameConstraint    = "users_login_name_key"
	emailAddressConstraint = "users_email_address_key"

	uniqueViolationCode = "23505" // SQLSTATE for unique_violation
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, updated_at, login_name, email_address, first_name, last_name
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt,
			&u.Name, &u.EmailAddress, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, created_at, updated_at, login_name, email_address, first_name, last_name
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt,
		&u.Name, &u.EmailAddress, &u.FirstName, &u.LastName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundByID(id)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, created_at, updated_at, login_name, email_address, first_name, last_name
		FROM users
		WHERE login_name = $1
	`, name)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt,
		&u.Name, &u.EmailAddress, &u.FirstName, &u.LastName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundByName(name)
		}
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}
	return u, nil
}

// Save inserts a new user when u.ID is nil and overwrites the addressed
// row otherwise. Timestamps are stamped here, immediately before the
// statement: both on insert, updated_at only on update. The returned
// value is a fresh entity; the argument is not mutated.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	now := time.Now().UTC()
	saved := *u

	if u.ID == nil {
		saved.CreatedAt = now
		saved.UpdatedAt = now
		row := r.pool.QueryRow(ctx, `
			INSERT INTO users (created_at, updated_at, login_name, email_address, first_name, last_name)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, saved.CreatedAt, saved.UpdatedAt, saved.Name, saved.EmailAddress, saved.FirstName, saved.LastName)

		var id int64
		if err := row.Scan(&id); err != nil {
			return nil, translateSaveError(err, u)
		}
		saved.ID = &id
		return &saved, nil
	}

	saved.UpdatedAt = now
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET login_name = $1, email_address = $2, first_name = $3, last_name = $4, updated_at = $5
		WHERE id = $6
		RETURNING created_at
	`, saved.Name, saved.EmailAddress, saved.FirstName, saved.LastName, saved.UpdatedAt, *saved.ID)

	if err := row.Scan(&saved.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundByID(*saved.ID)
		}
		return nil, translateSaveError(err, u)
	}
	return &saved, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundByID(id)
	}
	return nil
}

func (r *UserRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `TRUNCATE TABLE users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}

func (r *UserRepository) ResetIdentitySequence(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `ALTER SEQUENCE user_seq RESTART WITH 1`); err != nil {
		return fmt.Errorf("failed to reset user sequence: %w", err)
	}
	return nil
}

// translateSaveError classifies a unique_violation by constraint name
// into a typed DuplicationError; anything else is passed through
// wrapped so connectivity failures stay distinguishable.
func translateSaveError(err error, u *entity.User) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case loginNameConstraint:
			return &domain.DuplicationError{Field: "name", Value: u.Name}
		case emailAddressConstraint:
			return &domain.DuplicationError{Field: "emailAddress", Value: u.EmailAddress}
		default:
			return &domain.DuplicationError{}
		}
	}
	return fmt.Errorf("failed to save user: %w", err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
