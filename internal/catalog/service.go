package catalog

import (
	"alcyxob/workout-builder/internal/domain"
	"alcyxob/workout-builder/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var ErrEntryNotFound = errors.New("exercise not found in catalog")

const defaultCacheSize = 8 * 1024 * 1024

// Service is the read-only exercise catalog used by the workout builder.
type Service interface {
	Find(ctx context.Context, name string) (*domain.CatalogEntry, error)
	Search(ctx context.Context, filter repository.CatalogFilter) ([]domain.CatalogEntry, error)
	Seed(ctx context.Context, entries []domain.CatalogEntry) (int, error)
}

type service struct {
	repo     repository.CatalogRepository
	cache    *freecache.Cache
	cacheTTL int // seconds
}

// NewService creates a catalog service that caches name lookups for cacheTTL.
// A non-positive TTL disables caching.
func NewService(repo repository.CatalogRepository, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    freecache.NewCache(defaultCacheSize),
		cacheTTL: int(cacheTTL.Seconds()),
	}
}

// Find looks an exercise up by name. Cached entries are served without hitting the
// repository; misses are not cached.
func (s *service) Find(ctx context.Context, name string) (*domain.CatalogEntry, error) {
	cacheKey := []byte(repository.NameKey(name))
	if s.cacheTTL > 0 {
		if cached, err := s.cache.Get(cacheKey); err == nil {
			var entry domain.CatalogEntry
			if err := json.Unmarshal(cached, &entry); err == nil {
				return &entry, nil
			} else {
				log.Errorf("failed to unmarshal cached catalog entry %q: %s", name, err)
			}
		}
	}

	entry, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	if s.cacheTTL > 0 {
		if data, err := json.Marshal(entry); err == nil {
			if err := s.cache.Set(cacheKey, data, s.cacheTTL); err != nil {
				log.Errorf("failed to cache catalog entry %q: %s", name, err)
			}
		}
	}
	return entry, nil
}

func (s *service) Search(ctx context.Context, filter repository.CatalogFilter) ([]domain.CatalogEntry, error) {
	return s.repo.List(ctx, filter)
}

// Seed upserts the entries and drops the lookup cache. It returns the number stored.
func (s *service) Seed(ctx context.Context, entries []domain.CatalogEntry) (int, error) {
	stored := 0
	for i := range entries {
		if err := s.repo.Upsert(ctx, &entries[i]); err != nil {
			return stored, err
		}
		stored++
	}
	s.cache.Clear()
	log.Infof("catalog seeded with %d exercises", stored)
	return stored, nil
}
