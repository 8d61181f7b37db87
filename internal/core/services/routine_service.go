package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

const (
	defaultSeries = 3
	defaultReps   = 10
)

type RoutineService struct {
	repo ports.RoutineRepository
}

func NewRoutineService(repo ports.RoutineRepository) ports.RoutineService {
	return &RoutineService{
		repo: repo,
	}
}

func (s *RoutineService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error) {
	routines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	return routines, nil
}

func (s *RoutineService) Create(ctx context.Context, userID uuid.UUID, input ports.CreateRoutineInput) (*domain.Routine, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: routine name is required", domain.ErrValidation)
	}

	routine := &domain.Routine{
		UserID: userID,
		Name:   input.Name,
	}
	for i, ex := range input.Exercises {
		entry := domain.RoutineExercise{
			ExerciseID:    ex.ExerciseID,
			Position:      i,
			DefaultSeries: defaultSeries,
			DefaultReps:   defaultReps,
			DefaultWeight: ex.DefaultWeight,
		}
		if ex.DefaultSeries != nil {
			entry.DefaultSeries = *ex.DefaultSeries
		}
		if ex.DefaultReps != nil {
			entry.DefaultReps = *ex.DefaultReps
		}
		routine.Exercises = append(routine.Exercises, entry)
	}

	if err := s.repo.Create(ctx, routine); err != nil {
		return nil, fmt.Errorf("failed to create routine: %w", err)
	}
	return routine, nil
}
