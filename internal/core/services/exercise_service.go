package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

const (
	exerciseSource  = "exercisedb"
	syncFreshness   = 30 * 24 * time.Hour
	searchLimit     = 50
	upsertChunkSize = 50
)

type ExerciseService struct {
	repo    ports.ExerciseRepository
	catalog ports.CatalogClient
	logger  *slog.Logger
}

func NewExerciseService(repo ports.ExerciseRepository, catalog ports.CatalogClient, logger *slog.Logger) *ExerciseService {
	return &ExerciseService{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

func (s *ExerciseService) List(ctx context.Context, search, target string) ([]domain.Exercise, error) {
	exercises, err := s.repo.Search(ctx, search, target, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search exercises: %w", err)
	}
	return exercises, nil
}

// Sync refreshes the catalog from ExerciseDB unless the stored copy is less
// than thirty days old. A missing upstream client (no API key configured)
// downgrades to a warning so the server still starts.
func (s *ExerciseService) Sync(ctx context.Context) error {
	lastSynced, err := s.repo.LastSyncedAt(ctx, exerciseSource)
	if err != nil {
		return fmt.Errorf("failed to check last sync: %w", err)
	}
	if lastSynced != nil && time.Since(*lastSynced) < syncFreshness {
		s.logger.Info("exercises are up to date, skipping sync")
		return nil
	}

	if s.catalog == nil {
		s.logger.Warn("missing exercise catalog API key, skipping sync")
		return nil
	}

	s.logger.Info("fetching exercises from ExerciseDB")
	exercises, err := s.catalog.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch exercises: %w", err)
	}
	s.logger.Info("fetched exercises, updating database", "count", len(exercises))

	now := time.Now()
	for i := range exercises {
		exercises[i].APISource = exerciseSource
		exercises[i].LastSyncedAt = now
	}

	// Chunked so a single transaction never carries the whole catalog.
	for i := 0; i < len(exercises); i += upsertChunkSize {
		end := i + upsertChunkSize
		if end > len(exercises) {
			end = len(exercises)
		}
		if err := s.repo.UpsertBatch(ctx, exercises[i:end]); err != nil {
			return fmt.Errorf("failed to upsert exercises: %w", err)
		}
	}

	s.logger.Info("exercise sync completed")
	return nil
}
