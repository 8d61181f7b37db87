package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
)

type RoutineRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error)
	// Create stores the routine and its exercise entries in one transaction.
	Create(ctx context.Context, routine *domain.Routine) error
}

type RoutineExerciseInput struct {
	ExerciseID    string   `json:"exerciseId"`
	DefaultSeries *int     `json:"defaultSeries,omitempty"`
	DefaultReps   *int     `json:"defaultReps,omitempty"`
	DefaultWeight *float64 `json:"defaultWeight,omitempty"`
}

type CreateRoutineInput struct {
	Name      string                 `json:"name"`
	Exercises []RoutineExerciseInput `json:"exercises"`
}

type RoutineService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateRoutineInput) (*domain.Routine, error)
}
