package session

import "alcyxob/workout-builder/internal/domain"

// Direction for MoveExercise.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// SetField names the editable numeric field of a set.
type SetField string

const (
	FieldWeight SetField = "weight"
	FieldReps   SetField = "reps"
)

// Command is one edit to a workout session. The set of commands is closed;
// Apply handles every implementation.
type Command interface {
	// Kind returns the wire name of the command.
	Kind() string
	command()
}

type SetName struct {
	Name string `json:"name"`
}

type SetDescription struct {
	Description string `json:"description"`
}

type SetSaveAsTemplate struct {
	SaveAsTemplate bool `json:"saveAsTemplate"`
}

// SetTimer is issued by the timer on every tick.
type SetTimer struct {
	Seconds int `json:"seconds"`
}

// AddExercise appends a blank exercise.
type AddExercise struct{}

// AddExerciseFromLibrary appends an exercise pre-filled from a catalog entry.
type AddExerciseFromLibrary struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
	Equipment   string `json:"equipment,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}

type RemoveExercise struct {
	ExerciseID int `json:"exerciseId"`
}

type MoveExercise struct {
	ExerciseID int       `json:"exerciseId"`
	Direction  Direction `json:"direction"`
}

type ToggleExerciseExpanded struct {
	ExerciseID int `json:"exerciseId"`
}

type UpdateExerciseName struct {
	ExerciseID int    `json:"exerciseId"`
	Name       string `json:"name"`
}

type UpdateRestTime struct {
	ExerciseID int `json:"exerciseId"`
	Seconds    int `json:"value"`
}

type AddSet struct {
	ExerciseID int `json:"exerciseId"`
}

type RemoveSet struct {
	ExerciseID int `json:"exerciseId"`
	SetID      int `json:"setId"`
}

type UpdateSet struct {
	ExerciseID int      `json:"exerciseId"`
	SetID      int      `json:"setId"`
	Field      SetField `json:"field"`
	Value      float64  `json:"value"`
}

type ToggleSetCompletion struct {
	ExerciseID int `json:"exerciseId"`
	SetID      int `json:"setId"`
}

type DuplicateExercise struct {
	ExerciseID int `json:"exerciseId"`
}

// LoadWorkout replaces the editable content of the live session with a stored one.
// The live session keeps its own ID and CreatedAt.
type LoadWorkout struct {
	Session domain.WorkoutSession `json:"session"`
}

func (SetName) Kind() string                { return "setName" }
func (SetDescription) Kind() string         { return "setDescription" }
func (SetSaveAsTemplate) Kind() string      { return "setSaveAsTemplate" }
func (SetTimer) Kind() string               { return "setTimer" }
func (AddExercise) Kind() string            { return "addExercise" }
func (AddExerciseFromLibrary) Kind() string { return "addExerciseFromLibrary" }
func (RemoveExercise) Kind() string         { return "removeExercise" }
func (MoveExercise) Kind() string           { return "moveExercise" }
func (ToggleExerciseExpanded) Kind() string { return "toggleExerciseExpanded" }
func (UpdateExerciseName) Kind() string     { return "updateExerciseName" }
func (UpdateRestTime) Kind() string         { return "updateRestTime" }
func (AddSet) Kind() string                 { return "addSet" }
func (RemoveSet) Kind() string              { return "removeSet" }
func (UpdateSet) Kind() string              { return "updateSet" }
func (ToggleSetCompletion) Kind() string    { return "toggleSetCompletion" }
func (DuplicateExercise) Kind() string      { return "duplicateExercise" }
func (LoadWorkout) Kind() string            { return "loadWorkout" }

func (SetName) command()                {}
func (SetDescription) command()         {}
func (SetSaveAsTemplate) command()      {}
func (SetTimer) command()               {}
func (AddExercise) command()            {}
func (AddExerciseFromLibrary) command() {}
func (RemoveExercise) command()         {}
func (MoveExercise) command()           {}
func (ToggleExerciseExpanded) command() {}
func (UpdateExerciseName) command()     {}
func (UpdateRestTime) command()         {}
func (AddSet) command()                 {}
func (RemoveSet) command()              {}
func (UpdateSet) command()              {}
func (ToggleSetCompletion) command()    {}
func (DuplicateExercise) command()      {}
func (LoadWorkout) command()            {}
