package session_test

import (
	"testing"
	"time"

	"alcyxob/workout-builder/internal/domain"
	"alcyxob/workout-builder/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

func applyAll(s domain.WorkoutSession, cmds ...session.Command) domain.WorkoutSession {
	for _, cmd := range cmds {
		s = session.Apply(s, cmd)
	}
	return s
}

func exerciseIDs(s domain.WorkoutSession) []int {
	ids := make([]int, 0, len(s.Exercises))
	for _, ex := range s.Exercises {
		ids = append(ids, ex.ID)
	}
	return ids
}

func setIDs(ex domain.ExerciseEntry) []int {
	ids := make([]int, 0, len(ex.Sets))
	for _, set := range ex.Sets {
		ids = append(ids, set.ID)
	}
	return ids
}

func TestNew(t *testing.T) {
	s := session.New(testNow)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, testNow, s.CreatedAt)
	assert.Empty(t, s.Exercises)
	assert.NotEqual(t, s.ID, session.New(testNow).ID)
}

func TestApply_ScalarFields(t *testing.T) {
	s := applyAll(session.New(testNow),
		session.SetName{Name: "Push day"},
		session.SetDescription{Description: "chest and triceps"},
		session.SetSaveAsTemplate{SaveAsTemplate: true},
		session.SetTimer{Seconds: 125},
	)
	assert.Equal(t, "Push day", s.Name)
	assert.Equal(t, "chest and triceps", s.Description)
	assert.True(t, s.SaveAsTemplate)
	assert.Equal(t, 125, s.ElapsedSeconds)

	s = session.Apply(s, session.SetName{Name: ""})
	assert.Equal(t, "", s.Name)

	// Lower values are accepted, negative ones ignored.
	s = session.Apply(s, session.SetTimer{Seconds: 30})
	assert.Equal(t, 30, s.ElapsedSeconds)
	s = session.Apply(s, session.SetTimer{Seconds: -1})
	assert.Equal(t, 30, s.ElapsedSeconds)
}

func TestApply_AddExercise(t *testing.T) {
	s := session.Apply(session.New(testNow), session.AddExercise{})
	require.Len(t, s.Exercises, 1)

	ex := s.Exercises[0]
	assert.Equal(t, 1, ex.ID)
	assert.Equal(t, "", ex.Name)
	assert.Equal(t, 60, ex.RestTimeSeconds)
	assert.True(t, ex.IsExpanded)
	assert.Equal(t, []domain.SetEntry{{ID: 1, Weight: 0, Reps: 10}}, ex.Sets)
}

func TestApply_AddExerciseFromLibrary(t *testing.T) {
	s := applyAll(session.New(testNow),
		session.AddExercise{},
		session.AddExerciseFromLibrary{Name: "Barbell Squat", MuscleGroup: "quadriceps", Equipment: "barbell", Difficulty: "intermediate"},
	)
	require.Len(t, s.Exercises, 2)

	ex := s.Exercises[1]
	assert.Equal(t, 2, ex.ID)
	assert.Equal(t, "Barbell Squat", ex.Name)
	assert.Equal(t, "quadriceps", ex.MuscleGroup)
	assert.Equal(t, "barbell", ex.Equipment)
	assert.Equal(t, "intermediate", ex.Difficulty)
	assert.Len(t, ex.Sets, 1)
}

func TestApply_ExerciseIDsFollowMax(t *testing.T) {
	s := applyAll(session.New(testNow),
		session.AddExercise{},
		session.AddExerciseFromLibrary{Name: "Deadlift"},
		session.DuplicateExercise{ExerciseID: 1},
		session.AddExercise{},
	)
	assert.Equal(t, []int{1, 3, 2, 4}, exerciseIDs(s))

	// Removing an exercise in the middle does not free its id.
	s = applyAll(s, session.RemoveExercise{ExerciseID: 3}, session.AddExercise{})
	assert.Equal(t, []int{1, 2, 4, 5}, exerciseIDs(s))
}

func TestApply_RemoveExercise(t *testing.T) {
	s := applyAll(session.New(testNow), session.AddExercise{}, session.AddExercise{})

	unchanged := session.Apply(s, session.RemoveExercise{ExerciseID: 42})
	assert.Equal(t, s, unchanged)

	s = session.Apply(s, session.RemoveExercise{ExerciseID: 1})
	assert.Equal(t, []int{2}, exerciseIDs(s))
}

func TestApply_MoveExercise(t *testing.T) {
	s := applyAll(session.New(testNow), session.AddExercise{}, session.AddExercise{}, session.AddExercise{})

	tests := []struct {
		name string
		cmd  session.MoveExercise
		want []int
	}{
		{"first up is a no-op", session.MoveExercise{ExerciseID: 1, Direction: session.DirectionUp}, []int{1, 2, 3}},
		{"last down is a no-op", session.MoveExercise{ExerciseID: 3, Direction: session.DirectionDown}, []int{1, 2, 3}},
		{"middle up", session.MoveExercise{ExerciseID: 2, Direction: session.DirectionUp}, []int{2, 1, 3}},
		{"middle down", session.MoveExercise{ExerciseID: 2, Direction: session.DirectionDown}, []int{1, 3, 2}},
		{"unknown id", session.MoveExercise{ExerciseID: 9, Direction: session.DirectionUp}, []int{1, 2, 3}},
		{"unknown direction", session.MoveExercise{ExerciseID: 2, Direction: "left"}, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exerciseIDs(session.Apply(s, tt.cmd)))
		})
	}
}

func TestApply_ExerciseEdits(t *testing.T) {
	s := applyAll(session.New(testNow),
		session.AddExercise{},
		session.ToggleExerciseExpanded{ExerciseID: 1},
		session.UpdateExerciseName{ExerciseID: 1, Name: "Bench Press"},
		session.UpdateRestTime{ExerciseID: 1, Seconds: 90},
	)
	ex := s.Exercises[0]
	assert.False(t, ex.IsExpanded)
	assert.Equal(t, "Bench Press", ex.Name)
	assert.Equal(t, 90, ex.RestTimeSeconds)

	unchanged := applyAll(s,
		session.ToggleExerciseExpanded{ExerciseID: 2},
		session.UpdateExerciseName{ExerciseID: 2, Name: "x"},
		session.UpdateRestTime{ExerciseID: 2, Seconds: 5},
	)
	assert.Equal(t, s, unchanged)
}

func TestApply_AddSetCopiesLastSet(t *testing.T) {
	s := applyAll(session.New(testNow),
		session.AddExercise{},
		session.UpdateSet{ExerciseID: 1, SetID: 1, Field: session.FieldWeight, Value: 62.5},
		session.UpdateSet{ExerciseID: 1, SetID: 1, Field: session.FieldReps, Value: 8},
		session.ToggleSetCompletion{ExerciseID: 1, SetID: 1},
		session.AddSet{ExerciseID: 1},
	)
	sets := s.Exercises[0].Sets
	require.Len(t, sets, 2)
	assert.Equal(t, domain.SetEntry{ID: 2, Weight: 62.5, Reps: 8}, sets[1])

	assert.Equal(t, s, session.Apply(s, session.AddSet{ExerciseID: 7}))
}

func TestApply_AddSetOnEmptyExercise(t *testing.T) {
	s := session.New(testNow)
	s.Exercises = []domain.ExerciseEntry{{ID: 5, Name: "Plank"}}

	s = session.Apply(s, session.AddSet{ExerciseID: 5})
	assert.Equal(t, []domain.SetEntry{{ID: 1, Weight: 0, Reps: 10}}, s.Exercises[0].Sets)
}

func TestApply_RemoveSet(t *testing.T) {
	s := applyAll(session.New(testNow), session.AddExercise{}, session.AddSet{ExerciseID: 1}, session.AddSet{ExerciseID: 1})
	require.Equal(t, []int{1, 2, 3}, setIDs(s.Exercises[0]))

	s = session.Apply(s, session.RemoveSet{ExerciseID: 1, SetID: 2})
	assert.Equal(t, []int{1, 3}, setIDs(s.Exercises[0]))

	// New ids continue from the current max.
	s = session.Apply(s, session.AddSet{ExerciseID: 1})
	assert.Equal(t, []int{1, 3, 4}, setIDs(s.Exercises[0]))

	assert.Equal(t, s, session.Apply(s, session.RemoveSet{ExerciseID: 1, SetID: 99}))
	assert.Equal(t, s, session.Apply(s, session.RemoveSet{ExerciseID: 99, SetID: 1}))
}

func TestApply_RemoveLastSetIsNoOp(t *testing.T) {
	s := session.Apply(session.New(testNow), session.AddExercise{})

	after := session.Apply(s, session.RemoveSet{ExerciseID: 1, SetID: 1})
	assert.Equal(t, s, after)
	assert.Equal(t, []int{1}, setIDs(after.Exercises[0]))
}

func TestApply_UpdateSet(t *testing.T) {
	s := session.Apply(session.New(testNow), session.AddExercise{})

	tests := []struct {
		name string
		cmd  session.UpdateSet
		want domain.SetEntry
	}{
		{"weight", session.UpdateSet{ExerciseID: 1, SetID: 1, Field: session.FieldWeight, Value: 20}, domain.SetEntry{ID: 1, Weight: 20, Reps: 10}},
		{"reps", session.UpdateSet{ExerciseID: 1, SetID: 1, Field: session.FieldReps, Value: 5}, domain.SetEntry{ID: 1, Weight: 0, Reps: 5}},
		{"negative value", session.UpdateSet{ExerciseID: 1, SetID: 1, Field: session.FieldReps, Value: -3}, domain.SetEntry{ID: 1, Weight: 0, Reps: 10}},
		{"reps beyond range", session.UpdateSet{ExerciseID: 1, SetID: 1, Field: session.FieldReps, Value: 1e19}, domain.SetEntry{ID: 1, Weight: 0, Reps: 10}},
		{"reps at limit", session.UpdateSet{ExerciseID: 1, SetID: 1, Field: session.FieldReps, Value: session.MaxSetReps}, domain.SetEntry{ID: 1, Weight: 0, Reps: session.MaxSetReps}},
		{"unknown field", session.UpdateSet{ExerciseID: 1, SetID: 1, Field: "tempo", Value: 3}, domain.SetEntry{ID: 1, Weight: 0, Reps: 10}},
		{"unknown set", session.UpdateSet{ExerciseID: 1, SetID: 2, Field: session.FieldReps, Value: 3}, domain.SetEntry{ID: 1, Weight: 0, Reps: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := session.Apply(s, tt.cmd)
			assert.Equal(t, tt.want, got.Exercises[0].Sets[0])
		})
	}
}

func TestApply_ToggleSetCompletion(t *testing.T) {
	s := applyAll(session.New(testNow), session.AddExercise{}, session.ToggleSetCompletion{ExerciseID: 1, SetID: 1})
	assert.True(t, s.Exercises[0].Sets[0].IsCompleted)

	s = session.Apply(s, session.ToggleSetCompletion{ExerciseID: 1, SetID: 1})
	assert.False(t, s.Exercises[0].Sets[0].IsCompleted)

	assert.Equal(t, s, session.Apply(s, session.ToggleSetCompletion{ExerciseID: 1, SetID: 5}))
}

func TestApply_DuplicateExercise(t *testing.T) {
	s := session.New(testNow)
	s.Exercises = []domain.ExerciseEntry{
		{ID: 1, Name: "Row", Sets: []domain.SetEntry{{ID: 1, Reps: 10}}, RestTimeSeconds: 60},
		{ID: 3, Name: "Bench Press", IsExpanded: false, RestTimeSeconds: 120, MuscleGroup: "chest", Sets: []domain.SetEntry{
			{ID: 1, Weight: 80, Reps: 5, IsCompleted: true},
			{ID: 2, Weight: 80, Reps: 5},
		}},
		{ID: 2, Name: "Dips", Sets: []domain.SetEntry{{ID: 1, Reps: 12}}, RestTimeSeconds: 60},
	}

	got := session.Apply(s, session.DuplicateExercise{ExerciseID: 3})
	require.Equal(t, []int{1, 3, 4, 2}, exerciseIDs(got))

	dup := got.Exercises[2]
	assert.Equal(t, "Bench Press (Copy)", dup.Name)
	assert.True(t, dup.IsExpanded)
	assert.Equal(t, 120, dup.RestTimeSeconds)
	assert.Equal(t, "chest", dup.MuscleGroup)
	assert.Equal(t, []int{1, 2}, setIDs(dup))
	assert.Equal(t, s.Exercises[1], got.Exercises[1])

	// The copy does not share sets with the source.
	got = session.Apply(got, session.UpdateSet{ExerciseID: 4, SetID: 2, Field: session.FieldWeight, Value: 85})
	assert.Equal(t, 80.0, got.Exercises[1].Sets[1].Weight)
	assert.Equal(t, 85.0, got.Exercises[2].Sets[1].Weight)

	assert.Equal(t, s, session.Apply(s, session.DuplicateExercise{ExerciseID: 10}))
}

func TestApply_LoadWorkout(t *testing.T) {
	live := session.Apply(session.New(testNow), session.AddExercise{})

	payload := domain.WorkoutSession{
		ID:             "stored-id",
		Name:           "Leg day",
		Description:    "heavy",
		SaveAsTemplate: true,
		ElapsedSeconds: 1800,
		CreatedAt:      testNow.Add(-48 * time.Hour),
		Exercises: []domain.ExerciseEntry{
			{ID: 7, Name: "Squat", RestTimeSeconds: 180, Sets: []domain.SetEntry{{ID: 1, Weight: 100, Reps: 5, IsCompleted: true}}},
		},
	}

	got := session.Apply(live, session.LoadWorkout{Session: payload})
	assert.Equal(t, live.ID, got.ID)
	assert.Equal(t, live.CreatedAt, got.CreatedAt)
	assert.Equal(t, payload.Name, got.Name)
	assert.Equal(t, payload.Description, got.Description)
	assert.Equal(t, payload.Exercises, got.Exercises)
	assert.Equal(t, payload.SaveAsTemplate, got.SaveAsTemplate)
	assert.Equal(t, payload.ElapsedSeconds, got.ElapsedSeconds)

	// Later edits do not leak into the payload.
	got = session.Apply(got, session.UpdateSet{ExerciseID: 7, SetID: 1, Field: session.FieldReps, Value: 3})
	assert.Equal(t, 5, payload.Exercises[0].Sets[0].Reps)
}

func TestApply_LoadWorkoutRejectsMalformedPayload(t *testing.T) {
	live := applyAll(session.New(testNow), session.SetName{Name: "Live"}, session.AddExercise{})

	payloads := map[string][]domain.ExerciseEntry{
		"exercise without sets": {{ID: 1, Name: "Squat", Sets: []domain.SetEntry{}}},
		"duplicate exercise ids": {
			{ID: 1, Sets: []domain.SetEntry{{ID: 1}}},
			{ID: 1, Sets: []domain.SetEntry{{ID: 1}}},
		},
		"duplicate set ids": {{ID: 1, Sets: []domain.SetEntry{{ID: 1}, {ID: 1}}}},
		"negative weight":   {{ID: 1, Sets: []domain.SetEntry{{ID: 1, Weight: -1}}}},
	}
	for name, exercises := range payloads {
		t.Run(name, func(t *testing.T) {
			got := session.Apply(live, session.LoadWorkout{Session: domain.WorkoutSession{Name: "Bad", Exercises: exercises}})
			assert.Equal(t, live, got)
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := applyAll(session.New(testNow), session.AddExercise{}, session.AddExercise{}, session.AddSet{ExerciseID: 1})
	before := s.Clone()

	applyAll(s,
		session.UpdateSet{ExerciseID: 1, SetID: 1, Field: session.FieldWeight, Value: 40},
		session.ToggleSetCompletion{ExerciseID: 1, SetID: 2},
		session.MoveExercise{ExerciseID: 2, Direction: session.DirectionUp},
		session.RemoveSet{ExerciseID: 1, SetID: 1},
		session.RemoveExercise{ExerciseID: 1},
		session.AddSet{ExerciseID: 2},
	)
	assert.Equal(t, before, s)
}

func TestApply_EveryExerciseKeepsASet(t *testing.T) {
	s := session.New(testNow)
	cmds := []session.Command{
		session.AddExercise{},
		session.AddExerciseFromLibrary{Name: "Pull-up"},
		session.AddSet{ExerciseID: 1},
		session.RemoveSet{ExerciseID: 1, SetID: 1},
		session.RemoveSet{ExerciseID: 1, SetID: 2},
		session.RemoveSet{ExerciseID: 2, SetID: 1},
		session.DuplicateExercise{ExerciseID: 1},
		session.RemoveSet{ExerciseID: 3, SetID: 2},
		session.MoveExercise{ExerciseID: 3, Direction: session.DirectionUp},
		session.RemoveExercise{ExerciseID: 2},
		session.AddExercise{},
	}
	for _, cmd := range cmds {
		s = session.Apply(s, cmd)
		for _, ex := range s.Exercises {
			assert.NotEmpty(t, ex.Sets, "exercise %d after %s", ex.ID, cmd.Kind())
		}
	}
}

func TestScenario_BuildAndComplete(t *testing.T) {
	s := session.New(testNow)

	s = session.Apply(s, session.AddExercise{})
	require.Equal(t, []int{1}, exerciseIDs(s))
	require.Equal(t, []domain.SetEntry{{ID: 1, Weight: 0, Reps: 10}}, s.Exercises[0].Sets)

	s = session.Apply(s, session.AddSet{ExerciseID: 1})
	require.Equal(t, domain.SetEntry{ID: 2, Weight: 0, Reps: 10}, s.Exercises[0].Sets[1])

	s = session.Apply(s, session.UpdateSet{ExerciseID: 1, SetID: 2, Field: session.FieldReps, Value: 8})
	assert.Equal(t, 8, s.Exercises[0].Sets[1].Reps)

	s = applyAll(s,
		session.ToggleSetCompletion{ExerciseID: 1, SetID: 1},
		session.ToggleSetCompletion{ExerciseID: 1, SetID: 2},
	)
	assert.Equal(t, 100.0, session.ProgressOf(s).CompletionPercentage)
}
