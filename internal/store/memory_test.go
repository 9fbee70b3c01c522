package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/models"
)

func newUser(username, email string) *models.User {
	now := time.Now()
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "digest",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTodo(owner uuid.UUID, title string, createdAt time.Time) *models.Todo {
	return &models.Todo{
		ID:        uuid.New(),
		UserID:    owner,
		Title:     title,
		Category:  models.CategoryPersonal,
		Priority:  models.PriorityMedium,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestInsertUserRejectsDuplicates(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.InsertUser(ctx, newUser("alice", "a@x.com")); err != nil {
		t.Fatalf("InsertUser() failed: %v", err)
	}

	if err := s.InsertUser(ctx, newUser("alice", "other@x.com")); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("duplicate username: got %v, want ErrDuplicateUser", err)
	}
	if err := s.InsertUser(ctx, newUser("bob", "a@x.com")); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("duplicate email: got %v, want ErrDuplicateUser", err)
	}
}

func TestFindUserByEmail(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	user := newUser("alice", "a@x.com")
	if err := s.InsertUser(ctx, user); err != nil {
		t.Fatalf("InsertUser() failed: %v", err)
	}

	found, err := s.FindUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindUserByEmail() failed: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("found wrong user: got %s, want %s", found.ID, user.ID)
	}

	if _, err := s.FindUserByEmail(ctx, "nobody@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown email: got %v, want ErrNotFound", err)
	}
}

func TestFindByOwnerScopesAndOrders(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	base := time.Now()
	oldest := newTodo(alice, "oldest", base.Add(-2*time.Hour))
	newest := newTodo(alice, "newest", base)
	middle := newTodo(alice, "middle", base.Add(-time.Hour))
	other := newTodo(bob, "bob's", base)
	for _, todo := range []*models.Todo{oldest, newest, middle, other} {
		if err := s.Insert(ctx, todo); err != nil {
			t.Fatalf("Insert() failed: %v", err)
		}
	}

	todos, err := s.FindByOwner(ctx, alice)
	if err != nil {
		t.Fatalf("FindByOwner() failed: %v", err)
	}
	if len(todos) != 3 {
		t.Fatalf("got %d todos, want 3", len(todos))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if todos[i].Title != want {
			t.Errorf("todos[%d].Title = %q, want %q", i, todos[i].Title, want)
		}
	}
	for _, todo := range todos {
		if todo.UserID != alice {
			t.Errorf("todo %q leaked from another owner", todo.Title)
		}
	}
}

func TestUpdateByIDAppliesOnlyProvidedFields(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	alice := uuid.New()

	todo := newTodo(alice, "Buy milk", time.Now())
	todo.Description = "two liters"
	if err := s.Insert(ctx, todo); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	completed := true
	updated, err := s.UpdateByID(ctx, alice, todo.ID, TodoPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("UpdateByID() failed: %v", err)
	}
	if !updated.Completed {
		t.Error("completed not applied")
	}
	if updated.Title != "Buy milk" || updated.Description != "two liters" {
		t.Errorf("omitted fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(todo.CreatedAt) {
		t.Error("createdAt must be immutable")
	}

	// Explicit empty string clears the description.
	empty := ""
	updated, err = s.UpdateByID(ctx, alice, todo.ID, TodoPatch{Description: &empty})
	if err != nil {
		t.Fatalf("UpdateByID() failed: %v", err)
	}
	if updated.Description != "" {
		t.Errorf("description = %q, want empty", updated.Description)
	}
}

func TestUpdateAndDeleteAreOwnerScoped(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	todo := newTodo(bob, "bob's secret", time.Now())
	if err := s.Insert(ctx, todo); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	// Another user's todo must behave identically to a nonexistent one.
	completed := true
	if _, err := s.UpdateByID(ctx, alice, todo.ID, TodoPatch{Completed: &completed}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner update: got %v, want ErrNotFound", err)
	}
	if err := s.DeleteByID(ctx, alice, todo.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner delete: got %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateByID(ctx, alice, uuid.New(), TodoPatch{Completed: &completed}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id update: got %v, want ErrNotFound", err)
	}

	// The real owner can still delete it.
	if err := s.DeleteByID(ctx, bob, todo.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := s.DeleteByID(ctx, bob, todo.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}
