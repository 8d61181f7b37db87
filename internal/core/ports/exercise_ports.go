package ports

import (
	"context"
	"time"

	"github.com/liftdiary/api/internal/core/domain"
)

type ExerciseRepository interface {
	// Search filters by case-insensitive name fragment and exact target,
	// either of which may be empty. Results are capped at limit rows.
	Search(ctx context.Context, search, target string, limit int) ([]domain.Exercise, error)
	// LastSyncedAt returns the newest sync timestamp for the given source,
	// or nil when nothing from that source was ever stored.
	LastSyncedAt(ctx context.Context, source string) (*time.Time, error)
	// UpsertBatch inserts or updates the given exercises in one transaction.
	UpsertBatch(ctx context.Context, exercises []domain.Exercise) error
}

type ExerciseService interface {
	List(ctx context.Context, search, target string) ([]domain.Exercise, error)
	// Sync refreshes the catalog from the upstream API when the stored copy
	// is older than the freshness window. It is safe to call repeatedly.
	Sync(ctx context.Context) error
}

// CatalogClient fetches the exercise catalog from the upstream API.
type CatalogClient interface {
	FetchAll(ctx context.Context) ([]domain.Exercise, error)
}
