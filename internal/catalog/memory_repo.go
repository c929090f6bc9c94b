package catalog

import (
	"alcyxob/workout-builder/internal/domain"
	"alcyxob/workout-builder/internal/repository"
	"context"
	"sort"
	"strings"
	"sync"
)

// memoryRepository is an in-process CatalogRepository, used when the catalog is not
// kept in MongoDB.
type memoryRepository struct {
	mu      sync.RWMutex
	entries map[string]domain.CatalogEntry
}

// NewMemoryRepository creates an empty in-memory catalog.
func NewMemoryRepository() repository.CatalogRepository {
	return &memoryRepository{entries: make(map[string]domain.CatalogEntry)}
}

func (r *memoryRepository) Upsert(_ context.Context, entry *domain.CatalogEntry) error {
	if entry.Name == "" {
		return repository.ErrInvalidInput
	}
	entry.NameKey = repository.NameKey(entry.Name)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.NameKey] = *entry
	return nil
}

func (r *memoryRepository) FindByName(_ context.Context, name string) (*domain.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[repository.NameKey(name)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entry, nil
}

func (r *memoryRepository) List(_ context.Context, f repository.CatalogFilter) ([]domain.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := repository.NameKey(f.Query)
	out := []domain.CatalogEntry{}
	for key, entry := range r.entries {
		if query != "" && !strings.Contains(key, query) {
			continue
		}
		if f.Muscle != "" && !containsFold(entry.PrimaryMuscles, f.Muscle) {
			continue
		}
		if f.Equipment != "" && !strings.EqualFold(entry.Equipment, f.Equipment) {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameKey < out[j].NameKey })
	return out, nil
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
