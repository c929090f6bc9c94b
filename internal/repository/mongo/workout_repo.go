// internal/repository/mongo/workout_repo.go
package mongo

import (
	"alcyxob/workout-builder/internal/domain"
	"alcyxob/workout-builder/internal/repository"
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Save inserts the record or replaces the stored one with the same session ID.
func (r *mongoWorkoutRepository) Save(ctx context.Context, record *domain.WorkoutRecord) error {
	if record.ID == "" {
		return repository.ErrInvalidInput
	}
	if record.SavedAt.IsZero() {
		record.SavedAt = time.Now().UTC()
	}

	filter := bson.M{"_id": record.ID}
	_, err := r.collection.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	return err
}

// GetByID retrieves a single stored workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutRecord, error) {
	var record domain.WorkoutRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListAll retrieves the workout log (non-template records).
func (r *mongoWorkoutRepository) ListAll(ctx context.Context) ([]domain.WorkoutRecord, error) {
	return r.list(ctx, false)
}

// ListTemplates retrieves the reusable templates.
func (r *mongoWorkoutRepository) ListTemplates(ctx context.Context) ([]domain.WorkoutRecord, error) {
	return r.list(ctx, true)
}

func (r *mongoWorkoutRepository) list(ctx context.Context, templates bool) ([]domain.WorkoutRecord, error) {
	filter := bson.M{"is_template": templates}
	findOptions := options.Find().SetSort(bson.D{{Key: "savedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.WorkoutRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// History and template listings filter on the discriminator and sort by save time
			Keys:    bson.D{{Key: "is_template", Value: 1}, {Key: "savedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
