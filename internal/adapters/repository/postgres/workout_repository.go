package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

type WorkoutRepository struct {
	db *sql.DB
}

func NewWorkoutRepository(db *sql.DB) ports.WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	query := `
		INSERT INTO workouts (user_id, routine_id, name, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, workout.UserID, workout.RoutineID, workout.Name, workout.StartedAt).Scan(&workout.ID)
	if err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	query := `
		SELECT id, user_id, routine_id, name, started_at, ended_at, duration
		FROM workouts
		WHERE id = $1
	`
	workout := &domain.Workout{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&workout.ID,
		&workout.UserID,
		&workout.RoutineID,
		&workout.Name,
		&workout.StartedAt,
		&workout.EndedAt,
		&workout.Duration,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return workout, nil
}

func (r *WorkoutRepository) Finish(ctx context.Context, workout *domain.Workout) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	update := `UPDATE workouts SET ended_at = $1, duration = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, update, workout.EndedAt, workout.Duration, workout.ID); err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}

	insert := `
		INSERT INTO workout_sets (workout_id, exercise_id, series_index, reps, weight, completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare set statement: %w", err)
	}
	defer stmt.Close()

	for i := range workout.Sets {
		set := &workout.Sets[i]
		err = stmt.QueryRowContext(ctx, workout.ID, set.ExerciseID, set.SeriesIndex, set.Reps, set.Weight, set.Completed).Scan(&set.ID)
		if err != nil {
			return fmt.Errorf("failed to insert workout set: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *WorkoutRepository) HistoryByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Workout, error) {
	query := `
		SELECT id, user_id, routine_id, name, started_at, ended_at, duration
		FROM workouts
		WHERE user_id = $1 AND ended_at IS NOT NULL
		ORDER BY started_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout history: %w", err)
	}
	defer rows.Close()

	var workouts []*domain.Workout
	for rows.Next() {
		var workout domain.Workout
		err := rows.Scan(
			&workout.ID,
			&workout.UserID,
			&workout.RoutineID,
			&workout.Name,
			&workout.StartedAt,
			&workout.EndedAt,
			&workout.Duration,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}

		sets, err := r.fetchSets(ctx, workout.ID)
		if err != nil {
			return nil, err
		}
		workout.Sets = sets

		workouts = append(workouts, &workout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workouts: %w", err)
	}
	return workouts, nil
}

func (r *WorkoutRepository) SummaryByUser(ctx context.Context, userID uuid.UUID) (*domain.StatsSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM workouts WHERE user_id = $1 AND ended_at IS NOT NULL),
			COALESCE(SUM(ws.weight * ws.reps), 0),
			COUNT(ws.id)
		FROM workout_sets ws
		JOIN workouts w ON w.id = ws.workout_id
		WHERE w.user_id = $1
	`
	summary := &domain.StatsSummary{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&summary.TotalWorkouts, &summary.TotalVolume, &summary.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats summary: %w", err)
	}
	return summary, nil
}

func (r *WorkoutRepository) fetchSets(ctx context.Context, workoutID uuid.UUID) ([]domain.WorkoutSet, error) {
	query := `
		SELECT ws.id, ws.workout_id, ws.exercise_id, ws.series_index, ws.reps, ws.weight, ws.completed,
		       e.id, e.name, e.target, e.body_part, e.equipment, e.gif_url
		FROM workout_sets ws
		JOIN exercises e ON e.id = ws.exercise_id
		WHERE ws.workout_id = $1
		ORDER BY ws.series_index
	`
	rows, err := r.db.QueryContext(ctx, query, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout sets: %w", err)
	}
	defer rows.Close()

	var sets []domain.WorkoutSet
	for rows.Next() {
		var set domain.WorkoutSet
		var ex domain.Exercise
		err := rows.Scan(
			&set.ID, &set.WorkoutID, &set.ExerciseID, &set.SeriesIndex, &set.Reps, &set.Weight, &set.Completed,
			&ex.ID, &ex.Name, &ex.Target, &ex.BodyPart, &ex.Equipment, &ex.GifURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout set: %w", err)
		}
		set.Exercise = &ex
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workout sets: %w", err)
	}
	return sets, nil
}
