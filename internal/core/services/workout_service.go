package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

const defaultWorkoutName = "Entraînement libre"

type WorkoutService struct {
	repo ports.WorkoutRepository
}

func NewWorkoutService(repo ports.WorkoutRepository) ports.WorkoutService {
	return &WorkoutService{
		repo: repo,
	}
}

func (s *WorkoutService) Start(ctx context.Context, userID uuid.UUID, input ports.StartWorkoutInput) (*domain.Workout, error) {
	name := input.Name
	if name == "" {
		name = defaultWorkoutName
	}

	workout := &domain.Workout{
		UserID:    userID,
		RoutineID: input.RoutineID,
		Name:      name,
		StartedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}
	return workout, nil
}

func (s *WorkoutService) Finish(ctx context.Context, userID, workoutID uuid.UUID, input ports.FinishWorkoutInput) (*domain.Workout, error) {
	workout, err := s.repo.GetByID(ctx, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	// A missing workout and another user's workout are reported identically.
	if workout == nil || workout.UserID != userID {
		return nil, domain.ErrWorkoutNotFound
	}

	endedAt := input.EndedAt
	duration := input.Duration
	workout.EndedAt = &endedAt
	workout.Duration = &duration
	for _, set := range input.Sets {
		workout.Sets = append(workout.Sets, domain.WorkoutSet{
			WorkoutID:   workout.ID,
			ExerciseID:  set.ExerciseID,
			SeriesIndex: set.SeriesIndex,
			Reps:        set.Reps,
			Weight:      set.Weight,
			Completed:   set.Completed,
		})
	}

	if err := s.repo.Finish(ctx, workout); err != nil {
		return nil, fmt.Errorf("failed to finish workout: %w", err)
	}
	return workout, nil
}

func (s *WorkoutService) History(ctx context.Context, userID uuid.UUID) ([]*domain.Workout, error) {
	workouts, err := s.repo.HistoryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout history: %w", err)
	}
	return workouts, nil
}
