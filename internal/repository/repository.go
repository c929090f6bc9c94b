package repository

import (
	"alcyxob/workout-builder/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrInvalidInput = RepositoryError("invalid input")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutRepository stores completed workouts and templates.
type WorkoutRepository interface {
	Save(ctx context.Context, record *domain.WorkoutRecord) error // Upsert by session ID
	GetByID(ctx context.Context, id string) (*domain.WorkoutRecord, error)
	ListAll(ctx context.Context) ([]domain.WorkoutRecord, error)       // Log entries, newest first
	ListTemplates(ctx context.Context) ([]domain.WorkoutRecord, error) // Templates, newest first
}

// CatalogFilter narrows catalog listings. Empty fields match everything.
type CatalogFilter struct {
	Query     string // Substring of the name, case-insensitive
	Muscle    string
	Equipment string
}

// CatalogRepository is the read side of the exercise library, plus Upsert for seeding.
type CatalogRepository interface {
	Upsert(ctx context.Context, entry *domain.CatalogEntry) error
	FindByName(ctx context.Context, name string) (*domain.CatalogEntry, error) // Case-insensitive
	List(ctx context.Context, filter CatalogFilter) ([]domain.CatalogEntry, error)
}
