package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo categories
const (
	CategoryPersonal = "personal"
	CategoryWork     = "work"
	CategoryLearning = "learning"
	CategoryHealth   = "health"
	CategoryFinance  = "finance"
)

// Todo priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Todo represents a task item owned by exactly one user
type Todo struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	Category    string    `json:"category" db:"category"`
	Priority    string    `json:"priority" db:"priority"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ValidCategory reports whether s is one of the fixed category values.
func ValidCategory(s string) bool {
	switch s {
	case CategoryPersonal, CategoryWork, CategoryLearning, CategoryHealth, CategoryFinance:
		return true
	}
	return false
}

// ValidPriority reports whether s is one of the fixed priority values.
func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// PriorityRank orders priorities for sorting: high > medium > low.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}
