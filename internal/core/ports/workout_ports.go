package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
)

type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	// GetByID returns (nil, nil) when no workout matches.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error)
	// Finish records the end time, duration and performed sets in one
	// transaction.
	Finish(ctx context.Context, workout *domain.Workout) error
	HistoryByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Workout, error)
	SummaryByUser(ctx context.Context, userID uuid.UUID) (*domain.StatsSummary, error)
}

type StartWorkoutInput struct {
	RoutineID *uuid.UUID `json:"routineId,omitempty"`
	Name      string     `json:"name,omitempty"`
}

type WorkoutSetInput struct {
	ExerciseID  string  `json:"exerciseId"`
	SeriesIndex int     `json:"seriesIndex"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	Completed   bool    `json:"completed"`
}

type FinishWorkoutInput struct {
	EndedAt  time.Time         `json:"endedAt"`
	Duration int               `json:"duration"`
	Sets     []WorkoutSetInput `json:"sets"`
}

type WorkoutService interface {
	Start(ctx context.Context, userID uuid.UUID, input StartWorkoutInput) (*domain.Workout, error)
	Finish(ctx context.Context, userID, workoutID uuid.UUID, input FinishWorkoutInput) (*domain.Workout, error)
	History(ctx context.Context, userID uuid.UUID) ([]*domain.Workout, error)
}

type StatsService interface {
	Summary(ctx context.Context, userID uuid.UUID) (*domain.StatsSummary, error)
}
