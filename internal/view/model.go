// Package view holds the client-side view model: the in-memory todo list for
// the signed-in user, its search/filter/sort state, and the derived view the
// UI renders. Mutations go through the API and the held list is reconciled
// from the server's returned record, never the locally guessed one.
package view

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"taskflow/internal/dto"
	"taskflow/internal/models"
)

// Filter values for the derived view. Anything else is treated as an exact
// category match.
const (
	FilterAll       = "all"
	FilterCompleted = "completed"
	FilterPending   = "pending"
)

// Sort keys for the derived view.
const (
	SortByDate     = "date"
	SortByPriority = "priority"
	SortByName     = "name"
)

// API is the slice of the server client the view model needs.
type API interface {
	ListTodos(ctx context.Context) ([]models.Todo, error)
	CreateTodo(ctx context.Context, req dto.CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id uuid.UUID, req dto.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id uuid.UUID) error
}

// Stats summarizes the held list for the header counters.
type Stats struct {
	Total        int
	Completed    int
	Pending      int
	HighPriority int
}

// Model is the todo view model for one signed-in session.
type Model struct {
	api API

	todos     []models.Todo
	search    string
	filter    string
	sortBy    string
	editingID uuid.UUID
}

// NewModel creates a view model backed by the given API client.
func NewModel(api API) *Model {
	return &Model{
		api:    api,
		filter: FilterAll,
		sortBy: SortByDate,
	}
}

// Refresh replaces the held list with the server's. Any manual reordering
// is lost, as the ordering is never persisted.
func (m *Model) Refresh(ctx context.Context) error {
	todos, err := m.api.ListTodos(ctx)
	if err != nil {
		return err
	}
	m.todos = todos
	return nil
}

// Add creates a todo and prepends the server's record to the held list.
func (m *Model) Add(ctx context.Context, req dto.CreateTodoRequest) (*models.Todo, error) {
	todo, err := m.api.CreateTodo(ctx, req)
	if err != nil {
		return nil, err
	}
	m.todos = append([]models.Todo{*todo}, m.todos...)
	return todo, nil
}

// Toggle flips a todo's completed flag and reconciles from the response.
func (m *Model) Toggle(ctx context.Context, id uuid.UUID) error {
	current, ok := m.find(id)
	if !ok {
		return nil
	}
	completed := !current.Completed
	return m.Update(ctx, id, dto.UpdateTodoRequest{Completed: &completed})
}

// Update applies a partial update and replaces the held entry with the
// server's returned record.
func (m *Model) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTodoRequest) error {
	todo, err := m.api.UpdateTodo(ctx, id, req)
	if err != nil {
		return err
	}
	for i := range m.todos {
		if m.todos[i].ID == id {
			m.todos[i] = *todo
			break
		}
	}
	if m.editingID == id {
		m.editingID = uuid.Nil
	}
	return nil
}

// Delete removes a todo on the server, then from the held list.
func (m *Model) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.api.DeleteTodo(ctx, id); err != nil {
		return err
	}
	kept := m.todos[:0]
	for _, t := range m.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.todos = kept
	return nil
}

// Reorder splices the dragged todo to the target's position in the held
// list only. Dropping an item onto itself is a no-op.
func (m *Model) Reorder(draggedID, targetID uuid.UUID) {
	if draggedID == targetID {
		return
	}
	dragIndex, targetIndex := -1, -1
	for i, t := range m.todos {
		if t.ID == draggedID {
			dragIndex = i
		}
		if t.ID == targetID {
			targetIndex = i
		}
	}
	if dragIndex < 0 || targetIndex < 0 {
		return
	}

	dragged := m.todos[dragIndex]
	m.todos = append(m.todos[:dragIndex], m.todos[dragIndex+1:]...)
	// Target index after removal
	if targetIndex > dragIndex {
		targetIndex--
	}
	m.todos = append(m.todos[:targetIndex], append([]models.Todo{dragged}, m.todos[targetIndex:]...)...)
}

// SetSearch sets the case-insensitive search string.
func (m *Model) SetSearch(s string) { m.search = s }

// SetFilter sets the filter selection: all, completed, pending, or a category.
func (m *Model) SetFilter(f string) { m.filter = f }

// SetSortBy sets the sort key: date, priority, or name.
func (m *Model) SetSortBy(s string) { m.sortBy = s }

// StartEditing marks a todo as being edited.
func (m *Model) StartEditing(id uuid.UUID) { m.editingID = id }

// EditingID returns the id of the todo being edited, or uuid.Nil.
func (m *Model) EditingID() uuid.UUID { return m.editingID }

// Todos returns the held list in its current order.
func (m *Model) Todos() []models.Todo { return m.todos }

// Visible derives the filtered, sorted view of the held list.
func (m *Model) Visible() []models.Todo {
	search := strings.ToLower(m.search)

	filtered := []models.Todo{}
	for _, t := range m.todos {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(t.Title), search) ||
			strings.Contains(strings.ToLower(t.Description), search)
		matchesFilter := m.filter == FilterAll ||
			(m.filter == FilterCompleted && t.Completed) ||
			(m.filter == FilterPending && !t.Completed) ||
			m.filter == t.Category
		if matchesSearch && matchesFilter {
			filtered = append(filtered, t)
		}
	}

	switch m.sortBy {
	case SortByPriority:
		sort.SliceStable(filtered, func(i, j int) bool {
			return models.PriorityRank(filtered[i].Priority) > models.PriorityRank(filtered[j].Priority)
		})
	case SortByName:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Title) < strings.ToLower(filtered[j].Title)
		})
	case SortByDate:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	return filtered
}

// Stats computes the header counters over the full held list.
func (m *Model) Stats() Stats {
	s := Stats{Total: len(m.todos)}
	for _, t := range m.todos {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		if t.Priority == models.PriorityHigh {
			s.HighPriority++
		}
	}
	return s
}

func (m *Model) find(id uuid.UUID) (models.Todo, bool) {
	for _, t := range m.todos {
		if t.ID == id {
			return t, true
		}
	}
	return models.Todo{}, false
}
