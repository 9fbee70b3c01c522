package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskflow/internal/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates a Postgres store on the given pool.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the schema if it does not exist yet.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS todos (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			category TEXT NOT NULL DEFAULT 'personal',
			priority TEXT NOT NULL DEFAULT 'medium',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_todos_user_created ON todos (user_id, created_at DESC);
	`)
	return err
}

// InsertUser persists a new user, mapping unique violations to ErrDuplicateUser.
func (s *Postgres) InsertUser(ctx context.Context, user *models.User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

// FindUserByEmail returns the user with the given email.
func (s *Postgres) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`,
		email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByOwner returns all todos owned by owner, newest first.
func (s *Postgres) FindByOwner(ctx context.Context, owner uuid.UUID) ([]models.Todo, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, title, description, completed, category, priority, created_at, updated_at
		 FROM todos WHERE user_id = $1 ORDER BY created_at DESC`,
		owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.Category, &t.Priority, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// Insert persists a new todo.
func (s *Postgres) Insert(ctx context.Context, todo *models.Todo) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO todos (id, user_id, title, description, completed, category, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.Completed,
		todo.Category, todo.Priority, todo.CreatedAt, todo.UpdatedAt)
	return err
}

// UpdateByID applies the patch to the owner's todo in a single statement.
// The WHERE clause carries the owner filter, so a foreign-owned id behaves
// exactly like a missing one.
func (s *Postgres) UpdateByID(ctx context.Context, owner, id uuid.UUID, patch TodoPatch) (*models.Todo, error) {
	var t models.Todo
	err := s.db.QueryRow(ctx,
		`UPDATE todos SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			completed = COALESCE($3, completed),
			updated_at = NOW()
		 WHERE id = $4 AND user_id = $5
		 RETURNING id, user_id, title, description, completed, category, priority, created_at, updated_at`,
		patch.Title, patch.Description, patch.Completed, id, owner).
		Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.Category, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// DeleteByID removes the owner's todo.
func (s *Postgres) DeleteByID(ctx context.Context, owner, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks database connectivity.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
