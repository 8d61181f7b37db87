package domain

import (
	"time"

	"github.com/google/uuid"
)

type Workout struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	RoutineID *uuid.UUID   `json:"routine_id,omitempty"`
	Name      string       `json:"name"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   *time.Time   `json:"ended_at,omitempty"`
	Duration  *int         `json:"duration,omitempty"`
	Sets      []WorkoutSet `json:"sets,omitempty"`
}

type WorkoutSet struct {
	ID          uuid.UUID `json:"id"`
	WorkoutID   uuid.UUID `json:"workout_id"`
	ExerciseID  string    `json:"exercise_id"`
	SeriesIndex int       `json:"series_index"`
	Reps        int       `json:"reps"`
	Weight      float64   `json:"weight"`
	Completed   bool      `json:"completed"`
	Exercise    *Exercise `json:"exercise,omitempty"`
}

// StatsSummary aggregates a user's finished workouts. Volume is the sum of
// weight*reps over every recorded set.
type StatsSummary struct {
	TotalWorkouts int     `json:"totalWorkouts"`
	TotalVolume   float64 `json:"totalVolume"`
	TotalSets     int     `json:"totalSets"`
}
