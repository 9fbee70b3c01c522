package view

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/dto"
	"taskflow/internal/models"
)

// fakeAPI is an in-memory stand-in for the server client.
type fakeAPI struct {
	todos []models.Todo
}

func (f *fakeAPI) ListTodos(ctx context.Context) ([]models.Todo, error) {
	out := make([]models.Todo, len(f.todos))
	copy(out, f.todos)
	return out, nil
}

func (f *fakeAPI) CreateTodo(ctx context.Context, req dto.CreateTodoRequest) (*models.Todo, error) {
	todo := models.Todo{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		CreatedAt:   time.Now(),
	}
	if todo.Category == "" {
		todo.Category = models.CategoryPersonal
	}
	if todo.Priority == "" {
		todo.Priority = models.PriorityMedium
	}
	f.todos = append(f.todos, todo)
	return &todo, nil
}

func (f *fakeAPI) UpdateTodo(ctx context.Context, id uuid.UUID, req dto.UpdateTodoRequest) (*models.Todo, error) {
	for i := range f.todos {
		if f.todos[i].ID == id {
			if req.Title != nil {
				f.todos[i].Title = *req.Title
			}
			if req.Description != nil {
				f.todos[i].Description = *req.Description
			}
			if req.Completed != nil {
				f.todos[i].Completed = *req.Completed
			}
			t := f.todos[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeAPI) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return nil
}

func seedTodo(title, description, category, priority string, completed bool, createdAt time.Time) models.Todo {
	return models.Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Completed:   completed,
		CreatedAt:   createdAt,
	}
}

func seededModel() (*Model, []models.Todo) {
	base := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	todos := []models.Todo{
		seedTodo("Complete React project", "finish the todo application", models.CategoryWork, models.PriorityHigh, false, base),
		seedTodo("Learn Three.js", "study 3D graphics", models.CategoryLearning, models.PriorityMedium, true, base.Add(-20*time.Hour)),
		seedTodo("Grocery shopping", "buy ingredients for cooking", models.CategoryPersonal, models.PriorityLow, false, base.Add(-48*time.Hour)),
	}
	api := &fakeAPI{todos: todos}
	m := NewModel(api)
	m.todos = append([]models.Todo{}, todos...)
	return m, todos
}

func titles(todos []models.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title
	}
	return out
}

func TestVisibleFilterCompletedAndPendingPartition(t *testing.T) {
	m, all := seededModel()

	m.SetFilter(FilterCompleted)
	completed := m.Visible()
	for _, todo := range completed {
		if !todo.Completed {
			t.Errorf("filter=completed leaked pending todo %q", todo.Title)
		}
	}

	m.SetFilter(FilterPending)
	pending := m.Visible()
	for _, todo := range pending {
		if todo.Completed {
			t.Errorf("filter=pending leaked completed todo %q", todo.Title)
		}
	}

	// The two subsets are exact complements.
	if len(completed)+len(pending) != len(all) {
		t.Errorf("completed(%d) + pending(%d) != total(%d)", len(completed), len(pending), len(all))
	}
}

func TestVisibleFilterByCategory(t *testing.T) {
	m, _ := seededModel()
	m.SetFilter(models.CategoryWork)

	got := m.Visible()
	if len(got) != 1 || got[0].Category != models.CategoryWork {
		t.Errorf("Visible() = %v", titles(got))
	}
}

func TestVisibleSearchMatchesTitleOrDescription(t *testing.T) {
	m, _ := seededModel()

	m.SetSearch("REACT") // case-insensitive, title match
	if got := titles(m.Visible()); len(got) != 1 || got[0] != "Complete React project" {
		t.Errorf("search by title: %v", got)
	}

	m.SetSearch("ingredients") // description match
	if got := titles(m.Visible()); len(got) != 1 || got[0] != "Grocery shopping" {
		t.Errorf("search by description: %v", got)
	}

	m.SetSearch("nothing matches this")
	if got := m.Visible(); len(got) != 0 {
		t.Errorf("unmatched search returned %v", titles(got))
	}
}

func TestVisibleSortByDate(t *testing.T) {
	m, _ := seededModel()
	m.SetSortBy(SortByDate)

	got := m.Visible()
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("date sort not descending at %d: %v", i, titles(got))
		}
	}
}

func TestVisibleSortByPriority(t *testing.T) {
	m, _ := seededModel()
	m.SetSortBy(SortByPriority)

	got := m.Visible()
	// No medium or low item may precede any high item, and no low item may
	// precede any medium item.
	for i := 1; i < len(got); i++ {
		if models.PriorityRank(got[i].Priority) > models.PriorityRank(got[i-1].Priority) {
			t.Errorf("priority sort violated at %d: %v", i, titles(got))
		}
	}
	if got[0].Priority != models.PriorityHigh {
		t.Errorf("first item priority = %q", got[0].Priority)
	}
}

func TestVisibleSortByName(t *testing.T) {
	m, _ := seededModel()
	m.SetSortBy(SortByName)

	got := titles(m.Visible())
	want := []string{"Complete React project", "Grocery shopping", "Learn Three.js"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("name sort = %v, want %v", got, want)
		}
	}
}

func TestToggleReconcilesFromServerRecord(t *testing.T) {
	m, all := seededModel()
	target := all[0]

	if err := m.Toggle(context.Background(), target.ID); err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}

	held, ok := m.find(target.ID)
	if !ok {
		t.Fatal("toggled todo vanished from the held list")
	}
	if !held.Completed {
		t.Error("held list not reconciled with server response")
	}
	// All other entries untouched.
	if len(m.Todos()) != len(all) {
		t.Errorf("held list length changed: %d", len(m.Todos()))
	}
}

func TestDeleteRemovesFromHeldList(t *testing.T) {
	m, all := seededModel()
	target := all[1]

	if err := m.Delete(context.Background(), target.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok := m.find(target.ID); ok {
		t.Error("deleted todo still held")
	}
	if len(m.Todos()) != len(all)-1 {
		t.Errorf("held list length = %d, want %d", len(m.Todos()), len(all)-1)
	}
}

func TestAddPrependsServerRecord(t *testing.T) {
	m, all := seededModel()

	created, err := m.Add(context.Background(), dto.CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	held := m.Todos()
	if len(held) != len(all)+1 {
		t.Fatalf("held list length = %d", len(held))
	}
	if held[0].ID != created.ID {
		t.Error("new todo not prepended")
	}
	if held[0].Category != models.CategoryPersonal || held[0].Priority != models.PriorityMedium {
		t.Errorf("server defaults not reflected: %+v", held[0])
	}
}

func TestReorderSplicesInMemoryOnly(t *testing.T) {
	m, all := seededModel()

	// Drag the last item onto the first.
	m.Reorder(all[2].ID, all[0].ID)
	got := titles(m.Todos())
	want := []string{"Grocery shopping", "Complete React project", "Learn Three.js"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after reorder: %v, want %v", got, want)
		}
	}

	// Dropping onto itself is a no-op.
	m.Reorder(all[1].ID, all[1].ID)
	if got := titles(m.Todos()); got[0] != "Grocery shopping" {
		t.Errorf("self-drop changed order: %v", got)
	}

	// A refresh discards the manual order.
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if got := titles(m.Todos()); got[0] != "Complete React project" {
		t.Errorf("manual order survived refresh: %v", got)
	}
}

func TestStats(t *testing.T) {
	m, _ := seededModel()

	s := m.Stats()
	if s.Total != 3 || s.Completed != 1 || s.Pending != 2 || s.HighPriority != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestEditingMarker(t *testing.T) {
	m, all := seededModel()

	m.StartEditing(all[0].ID)
	if m.EditingID() != all[0].ID {
		t.Fatal("editing marker not set")
	}

	// A successful update clears the marker.
	title := "Renamed"
	if err := m.Update(context.Background(), all[0].ID, dto.UpdateTodoRequest{Title: &title}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if m.EditingID() != uuid.Nil {
		t.Error("editing marker not cleared after update")
	}
}
