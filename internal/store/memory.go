package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/models"
)

// Memory implements Store entirely in memory. It backs the test suites and
// can run the server without a database.
type Memory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
	todos map[uuid.UUID]models.Todo
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users: make(map[uuid.UUID]models.User),
		todos: make(map[uuid.UUID]models.Todo),
	}
}

// InsertUser persists a new user, enforcing username and email uniqueness.
func (s *Memory) InsertUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrDuplicateUser
		}
	}
	s.users[user.ID] = *user
	return nil
}

// FindUserByEmail returns the user with the given email.
func (s *Memory) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// FindByOwner returns the owner's todos, newest first.
func (s *Memory) FindByOwner(ctx context.Context, owner uuid.UUID) ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	todos := []models.Todo{}
	for _, t := range s.todos {
		if t.UserID == owner {
			todos = append(todos, t)
		}
	}
	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

// Insert persists a new todo.
func (s *Memory) Insert(ctx context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos[todo.ID] = *todo
	return nil
}

// UpdateByID applies the non-nil patch fields to the owner's todo.
func (s *Memory) UpdateByID(ctx context.Context, owner, id uuid.UUID, patch TodoPatch) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.UserID != owner {
		return nil, ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now()
	s.todos[id] = t
	return &t, nil
}

// DeleteByID removes the owner's todo.
func (s *Memory) DeleteByID(ctx context.Context, owner, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.UserID != owner {
		return ErrNotFound
	}
	delete(s.todos, id)
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *Memory) Ping(ctx context.Context) error {
	return nil
}
