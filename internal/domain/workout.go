package domain

import "time"

// Default values for a freshly added exercise.
const (
	DefaultRestTimeSeconds = 60
	DefaultSetWeight       = 0
	DefaultSetReps         = 10
)

// WorkoutSession is the in-progress workout a user is building or running.
type WorkoutSession struct {
	ID             string          `bson:"_id" json:"id"` // Assigned at creation, never changes
	Name           string          `bson:"name" json:"name"`
	Description    string          `bson:"description" json:"description"`
	SaveAsTemplate bool            `bson:"saveAsTemplate" json:"saveAsTemplate"`
	ElapsedSeconds int             `bson:"elapsedSeconds" json:"elapsedSeconds"` // Written only by the timer
	Exercises      []ExerciseEntry `bson:"exercises" json:"exercises"`           // Display and execution order
	CreatedAt      time.Time       `bson:"createdAt" json:"createdAt"`
}

// ExerciseEntry is one movement within a session.
type ExerciseEntry struct {
	ID              int        `bson:"id" json:"id"` // Unique within the session only
	Name            string     `bson:"name" json:"name"`
	Sets            []SetEntry `bson:"sets" json:"sets"`
	RestTimeSeconds int        `bson:"restTimeSeconds" json:"restTimeSeconds"`
	IsExpanded      bool       `bson:"isExpanded" json:"isExpanded"`

	// Copied from the catalog when added from the library.
	MuscleGroup string `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`
	Equipment   string `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Difficulty  string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
}

// SetEntry is one block of repetitions. IDs are unique within the owning exercise only.
type SetEntry struct {
	ID          int     `bson:"id" json:"id"`
	Weight      float64 `bson:"weight" json:"weight"` // kg
	Reps        int     `bson:"reps" json:"reps"`
	IsCompleted bool    `bson:"isCompleted" json:"isCompleted"`
}

// Clone returns a deep copy of the session. Nil slices stay nil.
func (s WorkoutSession) Clone() WorkoutSession {
	out := s
	out.Exercises = cloneExercises(s.Exercises)
	return out
}

// Clone returns a deep copy of the exercise entry.
func (e ExerciseEntry) Clone() ExerciseEntry {
	out := e
	if e.Sets != nil {
		out.Sets = make([]SetEntry, len(e.Sets))
		copy(out.Sets, e.Sets)
	}
	return out
}

func cloneExercises(in []ExerciseEntry) []ExerciseEntry {
	if in == nil {
		return nil
	}
	out := make([]ExerciseEntry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

// WorkoutRecord is the persisted shape of a session. IsTemplate separates reusable
// templates from completed log entries.
type WorkoutRecord struct {
	WorkoutSession `bson:",inline"`
	IsTemplate     bool      `bson:"is_template" json:"is_template"`
	SavedAt        time.Time `bson:"savedAt" json:"savedAt"`
}
