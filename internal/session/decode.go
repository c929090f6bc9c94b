package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand = errors.New("unknown command type")
	ErrInvalidPayload = errors.New("invalid command payload")
)

// Envelope is the JSON form of a command: {"type": "addSet", "payload": {"exerciseId": 1}}.
type Envelope struct {
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

var decoders = map[string]func(json.RawMessage) (Command, error){
	SetName{}.Kind():                decodeAs[SetName],
	SetDescription{}.Kind():         decodeAs[SetDescription],
	SetSaveAsTemplate{}.Kind():      decodeAs[SetSaveAsTemplate],
	SetTimer{}.Kind():               decodeAs[SetTimer],
	AddExercise{}.Kind():            decodeAs[AddExercise],
	AddExerciseFromLibrary{}.Kind(): decodeAs[AddExerciseFromLibrary],
	RemoveExercise{}.Kind():         decodeAs[RemoveExercise],
	MoveExercise{}.Kind():           decodeAs[MoveExercise],
	ToggleExerciseExpanded{}.Kind(): decodeAs[ToggleExerciseExpanded],
	UpdateExerciseName{}.Kind():     decodeAs[UpdateExerciseName],
	UpdateRestTime{}.Kind():         decodeAs[UpdateRestTime],
	AddSet{}.Kind():                 decodeAs[AddSet],
	RemoveSet{}.Kind():              decodeAs[RemoveSet],
	UpdateSet{}.Kind():              decodeAs[UpdateSet],
	ToggleSetCompletion{}.Kind():    decodeAs[ToggleSetCompletion],
	DuplicateExercise{}.Kind():      decodeAs[DuplicateExercise],
	LoadWorkout{}.Kind():            decodeAs[LoadWorkout],
}

// Decode turns the envelope into a typed command.
func (e Envelope) Decode() (Command, error) {
	return DecodeCommand(e.Type, e.Payload)
}

// DecodeCommand maps a wire command type and its JSON payload to a Command.
func DecodeCommand(kind string, payload json.RawMessage) (Command, error) {
	decode, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, kind)
	}
	cmd, err := decode(payload)
	if err != nil {
		return nil, err
	}
	if err := validate(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Encode builds the envelope for cmd.
func Encode(cmd Command) (Envelope, error) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: cmd.Kind(), Payload: payload}, nil
}

func decodeAs[T Command](payload json.RawMessage) (Command, error) {
	var cmd T
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	return cmd, nil
}

func validate(cmd Command) error {
	switch c := cmd.(type) {
	case MoveExercise:
		if c.Direction != DirectionUp && c.Direction != DirectionDown {
			return fmt.Errorf("%w: direction must be %q or %q", ErrInvalidPayload, DirectionUp, DirectionDown)
		}
	case UpdateSet:
		if c.Field != FieldWeight && c.Field != FieldReps {
			return fmt.Errorf("%w: field must be %q or %q", ErrInvalidPayload, FieldWeight, FieldReps)
		}
		if c.Value < 0 {
			return fmt.Errorf("%w: value must not be negative", ErrInvalidPayload)
		}
		if c.Field == FieldReps && c.Value > MaxSetReps {
			return fmt.Errorf("%w: reps must not exceed %d", ErrInvalidPayload, MaxSetReps)
		}
	case LoadWorkout:
		if err := checkLoadable(c.Session); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	case SetTimer:
		if c.Seconds < 0 {
			return fmt.Errorf("%w: seconds must not be negative", ErrInvalidPayload)
		}
	}
	return nil
}
