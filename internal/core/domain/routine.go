package domain

import (
	"time"

	"github.com/google/uuid"
)

type Routine struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"created_at"`
	Exercises []RoutineExercise `json:"exercises"`
}

type RoutineExercise struct {
	ID            uuid.UUID `json:"id"`
	RoutineID     uuid.UUID `json:"routine_id"`
	ExerciseID    string    `json:"exercise_id"`
	Position      int       `json:"position"`
	DefaultSeries int       `json:"default_series"`
	DefaultReps   int       `json:"default_reps"`
	DefaultWeight *float64  `json:"default_weight,omitempty"`
	Exercise      *Exercise `json:"exercise,omitempty"`
}
