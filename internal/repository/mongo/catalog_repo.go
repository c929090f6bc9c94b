package mongo

import (
	"alcyxob/workout-builder/internal/domain"
	"alcyxob/workout-builder/internal/repository"
	"context"
	"errors"
	"regexp"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogCollectionName = "catalog"

// mongoCatalogRepository implements repository.CatalogRepository
type mongoCatalogRepository struct {
	collection *mongo.Collection
}

// NewMongoCatalogRepository creates a new exercise catalog repository backed by MongoDB.
func NewMongoCatalogRepository(db *mongo.Database) repository.CatalogRepository {
	return &mongoCatalogRepository{
		collection: db.Collection(catalogCollectionName),
	}
}

// Upsert inserts or replaces a catalog entry, keyed by its normalized name.
func (r *mongoCatalogRepository) Upsert(ctx context.Context, entry *domain.CatalogEntry) error {
	if entry.Name == "" {
		return repository.ErrInvalidInput
	}
	entry.NameKey = repository.NameKey(entry.Name)

	filter := bson.M{"nameKey": entry.NameKey}
	_, err := r.collection.ReplaceOne(ctx, filter, entry, options.Replace().SetUpsert(true))
	return err
}

// FindByName retrieves an entry by name, ignoring case and surrounding whitespace.
func (r *mongoCatalogRepository) FindByName(ctx context.Context, name string) (*domain.CatalogEntry, error) {
	var entry domain.CatalogEntry
	err := r.collection.FindOne(ctx, bson.M{"nameKey": repository.NameKey(name)}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// List retrieves catalog entries matching the filter, sorted by name.
func (r *mongoCatalogRepository) List(ctx context.Context, f repository.CatalogFilter) ([]domain.CatalogEntry, error) {
	filter := bson.M{}
	if f.Query != "" {
		filter["nameKey"] = bson.M{"$regex": regexp.QuoteMeta(repository.NameKey(f.Query))}
	}
	if f.Muscle != "" {
		filter["primaryMuscles"] = exactIgnoreCase(f.Muscle)
	}
	if f.Equipment != "" {
		filter["equipment"] = exactIgnoreCase(f.Equipment)
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "nameKey", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.CatalogEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func exactIgnoreCase(v string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(v) + "$", "$options": "i"}
}

// EnsureCatalogIndexes creates necessary indexes for the catalog collection.
func EnsureCatalogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "nameKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "primaryMuscles", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
