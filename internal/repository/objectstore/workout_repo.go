// Package objectstore keeps workout records as JSON objects in S3-compatible storage.
package objectstore

import (
	"alcyxob/workout-builder/internal/domain"
	"alcyxob/workout-builder/internal/repository"
	"alcyxob/workout-builder/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"time"
)

const (
	workoutsPrefix  = "workouts/"
	templatesPrefix = "templates/"
	contentTypeJSON = "application/json"
)

// workoutRepository implements repository.WorkoutRepository on top of storage.FileStorage.
type workoutRepository struct {
	files storage.FileStorage
	now   func() time.Time
}

// NewWorkoutRepository creates a workout repository backed by object storage.
func NewWorkoutRepository(files storage.FileStorage) repository.WorkoutRepository {
	return &workoutRepository{files: files, now: time.Now}
}

func objectKey(id string, template bool) string {
	if template {
		return path.Join(templatesPrefix, id+".json")
	}
	return path.Join(workoutsPrefix, id+".json")
}

// Save writes the record under the prefix matching its template flag and removes a
// copy stored under the other prefix, so each ID lives in exactly one place.
func (r *workoutRepository) Save(ctx context.Context, record *domain.WorkoutRecord) error {
	if record.ID == "" {
		return repository.ErrInvalidInput
	}
	if record.SavedAt.IsZero() {
		record.SavedAt = r.now().UTC()
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding workout %s: %w", record.ID, err)
	}
	if err := r.files.PutObject(ctx, objectKey(record.ID, record.IsTemplate), contentTypeJSON, body); err != nil {
		return fmt.Errorf("writing workout %s: %w", record.ID, err)
	}
	if err := r.files.DeleteObject(ctx, objectKey(record.ID, !record.IsTemplate)); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("removing stale copy of workout %s: %w", record.ID, err)
	}
	return nil
}

func (r *workoutRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutRecord, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}
	for _, template := range []bool{false, true} {
		record, err := r.read(ctx, objectKey(id, template))
		if errors.Is(err, storage.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return record, nil
	}
	return nil, repository.ErrNotFound
}

func (r *workoutRepository) ListAll(ctx context.Context) ([]domain.WorkoutRecord, error) {
	return r.list(ctx, workoutsPrefix)
}

func (r *workoutRepository) ListTemplates(ctx context.Context) ([]domain.WorkoutRecord, error) {
	return r.list(ctx, templatesPrefix)
}

func (r *workoutRepository) list(ctx context.Context, prefix string) ([]domain.WorkoutRecord, error) {
	objects, err := r.files.ListObjects(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", prefix, err)
	}

	records := make([]domain.WorkoutRecord, 0, len(objects))
	for _, obj := range objects {
		record, err := r.read(ctx, obj.Key)
		if errors.Is(err, storage.ErrObjectNotFound) {
			// Deleted between list and read.
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SavedAt.After(records[j].SavedAt)
	})
	return records, nil
}

func (r *workoutRepository) read(ctx context.Context, key string) (*domain.WorkoutRecord, error) {
	body, err := r.files.GetObject(ctx, key)
	if err != nil {
		return nil, err
	}
	var record domain.WorkoutRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return &record, nil
}
