// internal/domain/catalog.go
package domain

// CatalogEntry is a read-only exercise definition from the exercise library.
// Sessions copy the descriptive fields they need; later catalog changes do not propagate.
type CatalogEntry struct {
	Name             string   `bson:"name" json:"name" yaml:"name"`
	NameKey          string   `bson:"nameKey" json:"-" yaml:"-"` // Lowercased name, lookup key
	PrimaryMuscles   []string `bson:"primaryMuscles" json:"primaryMuscles" yaml:"primaryMuscles"`
	SecondaryMuscles []string `bson:"secondaryMuscles,omitempty" json:"secondaryMuscles,omitempty" yaml:"secondaryMuscles"`
	Equipment        string   `bson:"equipment,omitempty" json:"equipment,omitempty" yaml:"equipment"`
	Level            string   `bson:"level,omitempty" json:"level,omitempty" yaml:"level"` // e.g. "beginner", "intermediate", "expert"
	Category         string   `bson:"category,omitempty" json:"category,omitempty" yaml:"category"`
	Instructions     []string `bson:"instructions,omitempty" json:"instructions,omitempty" yaml:"instructions"`
}

// MuscleGroup returns the first primary muscle, or "" if none is listed.
func (c *CatalogEntry) MuscleGroup() string {
	if len(c.PrimaryMuscles) == 0 {
		return ""
	}
	return c.PrimaryMuscles[0]
}
