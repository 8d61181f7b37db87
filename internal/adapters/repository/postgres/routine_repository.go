package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

type RoutineRepository struct {
	db *sql.DB
}

func NewRoutineRepository(db *sql.DB) ports.RoutineRepository {
	return &RoutineRepository{db: db}
}

func (r *RoutineRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM routines
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	defer rows.Close()

	var routines []*domain.Routine
	for rows.Next() {
		var routine domain.Routine
		if err := rows.Scan(&routine.ID, &routine.UserID, &routine.Name, &routine.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan routine: %w", err)
		}

		exercises, err := r.fetchExercises(ctx, routine.ID)
		if err != nil {
			return nil, err
		}
		routine.Exercises = exercises

		routines = append(routines, &routine)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routines: %w", err)
	}
	return routines, nil
}

func (r *RoutineRepository) Create(ctx context.Context, routine *domain.Routine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryRoutine := `
		INSERT INTO routines (user_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, queryRoutine, routine.UserID, routine.Name).Scan(&routine.ID, &routine.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert routine: %w", err)
	}

	queryExercise := `
		INSERT INTO routine_exercises (routine_id, exercise_id, position, default_series, default_reps, default_weight)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	stmt, err := tx.PrepareContext(ctx, queryExercise)
	if err != nil {
		return fmt.Errorf("failed to prepare exercise statement: %w", err)
	}
	defer stmt.Close()

	for i := range routine.Exercises {
		ex := &routine.Exercises[i]
		ex.RoutineID = routine.ID
		err = stmt.QueryRowContext(ctx, routine.ID, ex.ExerciseID, ex.Position, ex.DefaultSeries, ex.DefaultReps, ex.DefaultWeight).Scan(&ex.ID)
		if err != nil {
			return fmt.Errorf("failed to insert routine exercise: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *RoutineRepository) fetchExercises(ctx context.Context, routineID uuid.UUID) ([]domain.RoutineExercise, error) {
	query := `
		SELECT re.id, re.routine_id, re.exercise_id, re.position, re.default_series, re.default_reps, re.default_weight,
		       e.id, e.name, e.target, e.body_part, e.equipment, e.gif_url
		FROM routine_exercises re
		JOIN exercises e ON e.id = re.exercise_id
		WHERE re.routine_id = $1
		ORDER BY re.position
	`
	rows, err := r.db.QueryContext(ctx, query, routineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get routine exercises: %w", err)
	}
	defer rows.Close()

	var exercises []domain.RoutineExercise
	for rows.Next() {
		var re domain.RoutineExercise
		var ex domain.Exercise
		err := rows.Scan(
			&re.ID, &re.RoutineID, &re.ExerciseID, &re.Position, &re.DefaultSeries, &re.DefaultReps, &re.DefaultWeight,
			&ex.ID, &ex.Name, &ex.Target, &ex.BodyPart, &ex.Equipment, &ex.GifURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan routine exercise: %w", err)
		}
		re.Exercise = &ex
		exercises = append(exercises, re)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routine exercises: %w", err)
	}
	return exercises, nil
}
