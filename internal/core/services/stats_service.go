package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

type StatsService struct {
	workoutRepo ports.WorkoutRepository
}

func NewStatsService(workoutRepo ports.WorkoutRepository) ports.StatsService {
	return &StatsService{
		workoutRepo: workoutRepo,
	}
}

func (s *StatsService) Summary(ctx context.Context, userID uuid.UUID) (*domain.StatsSummary, error) {
	summary, err := s.workoutRepo.SummaryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats summary: %w", err)
	}
	return summary, nil
}
