package session

import (
	"errors"
	"fmt"
	"math"

	"alcyxob/workout-builder/internal/domain"
)

const (
	// CopySuffix is appended to the name of a duplicated exercise.
	CopySuffix = " (Copy)"
	// MaxSetReps bounds the reps a set can hold.
	MaxSetReps = math.MaxInt32
)

// Apply returns the session produced by applying cmd to s. The input session is
// never modified; every call returns a fresh deep copy. Commands that reference an
// exercise or set that does not exist leave the returned copy equal to s.
func Apply(s domain.WorkoutSession, cmd Command) domain.WorkoutSession {
	next := s.Clone()

	switch c := cmd.(type) {
	case SetName:
		next.Name = c.Name
	case SetDescription:
		next.Description = c.Description
	case SetSaveAsTemplate:
		next.SaveAsTemplate = c.SaveAsTemplate
	case SetTimer:
		if c.Seconds >= 0 {
			next.ElapsedSeconds = c.Seconds
		}
	case AddExercise:
		next.Exercises = append(next.Exercises, newExercise(nextExerciseID(next.Exercises), ""))
	case AddExerciseFromLibrary:
		ex := newExercise(nextExerciseID(next.Exercises), c.Name)
		ex.MuscleGroup = c.MuscleGroup
		ex.Equipment = c.Equipment
		ex.Difficulty = c.Difficulty
		next.Exercises = append(next.Exercises, ex)
	case RemoveExercise:
		if i := exerciseIndex(next.Exercises, c.ExerciseID); i >= 0 {
			next.Exercises = append(next.Exercises[:i], next.Exercises[i+1:]...)
		}
	case MoveExercise:
		moveExercise(next.Exercises, c.ExerciseID, c.Direction)
	case ToggleExerciseExpanded:
		if ex := findExercise(next.Exercises, c.ExerciseID); ex != nil {
			ex.IsExpanded = !ex.IsExpanded
		}
	case UpdateExerciseName:
		if ex := findExercise(next.Exercises, c.ExerciseID); ex != nil {
			ex.Name = c.Name
		}
	case UpdateRestTime:
		if ex := findExercise(next.Exercises, c.ExerciseID); ex != nil {
			ex.RestTimeSeconds = c.Seconds
		}
	case AddSet:
		if ex := findExercise(next.Exercises, c.ExerciseID); ex != nil {
			ex.Sets = append(ex.Sets, nextSet(ex.Sets))
		}
	case RemoveSet:
		if ex := findExercise(next.Exercises, c.ExerciseID); ex != nil && len(ex.Sets) > 1 {
			if i := setIndex(ex.Sets, c.SetID); i >= 0 {
				ex.Sets = append(ex.Sets[:i], ex.Sets[i+1:]...)
			}
		}
	case UpdateSet:
		if set := findSet(next.Exercises, c.ExerciseID, c.SetID); set != nil {
			updateSetField(set, c.Field, c.Value)
		}
	case ToggleSetCompletion:
		if set := findSet(next.Exercises, c.ExerciseID, c.SetID); set != nil {
			set.IsCompleted = !set.IsCompleted
		}
	case DuplicateExercise:
		next.Exercises = duplicateExercise(next.Exercises, c.ExerciseID)
	case LoadWorkout:
		if checkLoadable(c.Session) != nil {
			break
		}
		loaded := c.Session.Clone()
		next.Name = loaded.Name
		next.Description = loaded.Description
		next.Exercises = loaded.Exercises
		next.SaveAsTemplate = loaded.SaveAsTemplate
		next.ElapsedSeconds = loaded.ElapsedSeconds
	}

	return next
}

func newExercise(id int, name string) domain.ExerciseEntry {
	return domain.ExerciseEntry{
		ID:   id,
		Name: name,
		Sets: []domain.SetEntry{
			{ID: 1, Weight: domain.DefaultSetWeight, Reps: domain.DefaultSetReps},
		},
		RestTimeSeconds: domain.DefaultRestTimeSeconds,
		IsExpanded:      true,
	}
}

// nextSet builds the set appended by AddSet: it repeats the weight and reps of the
// current last set.
func nextSet(sets []domain.SetEntry) domain.SetEntry {
	set := domain.SetEntry{ID: nextSetID(sets), Weight: domain.DefaultSetWeight, Reps: domain.DefaultSetReps}
	if n := len(sets); n > 0 {
		set.Weight = sets[n-1].Weight
		set.Reps = sets[n-1].Reps
	}
	return set
}

func nextExerciseID(exercises []domain.ExerciseEntry) int {
	maxID := 0
	for _, ex := range exercises {
		if ex.ID > maxID {
			maxID = ex.ID
		}
	}
	return maxID + 1
}

func nextSetID(sets []domain.SetEntry) int {
	maxID := 0
	for _, set := range sets {
		if set.ID > maxID {
			maxID = set.ID
		}
	}
	return maxID + 1
}

func exerciseIndex(exercises []domain.ExerciseEntry, id int) int {
	for i := range exercises {
		if exercises[i].ID == id {
			return i
		}
	}
	return -1
}

func setIndex(sets []domain.SetEntry, id int) int {
	for i := range sets {
		if sets[i].ID == id {
			return i
		}
	}
	return -1
}

func findExercise(exercises []domain.ExerciseEntry, id int) *domain.ExerciseEntry {
	if i := exerciseIndex(exercises, id); i >= 0 {
		return &exercises[i]
	}
	return nil
}

func findSet(exercises []domain.ExerciseEntry, exerciseID, setID int) *domain.SetEntry {
	ex := findExercise(exercises, exerciseID)
	if ex == nil {
		return nil
	}
	if i := setIndex(ex.Sets, setID); i >= 0 {
		return &ex.Sets[i]
	}
	return nil
}

func moveExercise(exercises []domain.ExerciseEntry, id int, dir Direction) {
	i := exerciseIndex(exercises, id)
	if i < 0 {
		return
	}
	var j int
	switch dir {
	case DirectionUp:
		j = i - 1
	case DirectionDown:
		j = i + 1
	default:
		return
	}
	if j < 0 || j >= len(exercises) {
		return
	}
	exercises[i], exercises[j] = exercises[j], exercises[i]
}

// updateSetField leaves the set untouched for unknown fields and negative values.
func updateSetField(set *domain.SetEntry, field SetField, value float64) {
	if value < 0 {
		return
	}
	switch field {
	case FieldWeight:
		set.Weight = value
	case FieldReps:
		if value > MaxSetReps {
			return
		}
		set.Reps = int(value)
	}
}

// duplicateExercise inserts a copy right after the source. Set IDs are kept as they
// are since they only need to be unique within the exercise.
func duplicateExercise(exercises []domain.ExerciseEntry, id int) []domain.ExerciseEntry {
	i := exerciseIndex(exercises, id)
	if i < 0 {
		return exercises
	}
	dup := exercises[i].Clone()
	dup.ID = nextExerciseID(exercises)
	dup.Name += CopySuffix
	dup.IsExpanded = true

	out := make([]domain.ExerciseEntry, 0, len(exercises)+1)
	out = append(out, exercises[:i+1]...)
	out = append(out, dup)
	return append(out, exercises[i+1:]...)
}

// checkLoadable reports why s cannot replace a live session's content: every exercise
// needs a unique id and at least one set, set ids are unique per exercise and no
// counter is negative.
func checkLoadable(s domain.WorkoutSession) error {
	if s.ElapsedSeconds < 0 {
		return errors.New("elapsedSeconds must not be negative")
	}
	exerciseIDs := make(map[int]struct{}, len(s.Exercises))
	for _, ex := range s.Exercises {
		if _, dup := exerciseIDs[ex.ID]; dup {
			return fmt.Errorf("duplicate exercise id %d", ex.ID)
		}
		exerciseIDs[ex.ID] = struct{}{}

		if len(ex.Sets) == 0 {
			return fmt.Errorf("exercise %d has no sets", ex.ID)
		}
		setIDs := make(map[int]struct{}, len(ex.Sets))
		for _, set := range ex.Sets {
			if _, dup := setIDs[set.ID]; dup {
				return fmt.Errorf("exercise %d: duplicate set id %d", ex.ID, set.ID)
			}
			setIDs[set.ID] = struct{}{}
			if set.Weight < 0 || set.Reps < 0 {
				return fmt.Errorf("exercise %d, set %d: weight and reps must not be negative", ex.ID, set.ID)
			}
		}
	}
	return nil
}
