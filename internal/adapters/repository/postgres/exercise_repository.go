package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

type ExerciseRepository struct {
	db *sql.DB
}

func NewExerciseRepository(db *sql.DB) ports.ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Search(ctx context.Context, search, target string, limit int) ([]domain.Exercise, error) {
	query := `
		SELECT id, name, target, body_part, equipment, gif_url
		FROM exercises
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR target = $2)
		ORDER BY name
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, search, target, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search exercises: %w", err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		var ex domain.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Target, &ex.BodyPart, &ex.Equipment, &ex.GifURL); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exercises: %w", err)
	}
	return exercises, nil
}

func (r *ExerciseRepository) LastSyncedAt(ctx context.Context, source string) (*time.Time, error) {
	query := `
		SELECT last_synced_at
		FROM exercises
		WHERE api_source = $1
		ORDER BY last_synced_at DESC
		LIMIT 1
	`
	var lastSynced time.Time
	err := r.db.QueryRowContext(ctx, query, source).Scan(&lastSynced)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last sync time: %w", err)
	}
	return &lastSynced, nil
}

func (r *ExerciseRepository) UpsertBatch(ctx context.Context, exercises []domain.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO exercises (id, name, target, body_part, equipment, gif_url, api_source, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			target = EXCLUDED.target,
			body_part = EXCLUDED.body_part,
			equipment = EXCLUDED.equipment,
			gif_url = EXCLUDED.gif_url,
			api_source = EXCLUDED.api_source,
			last_synced_at = EXCLUDED.last_synced_at
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, ex := range exercises {
		_, err = stmt.ExecContext(ctx, ex.ID, ex.Name, ex.Target, ex.BodyPart, ex.Equipment, ex.GifURL, ex.APISource, ex.LastSyncedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert exercise %s: %w", ex.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
