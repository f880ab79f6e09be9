package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/healthtrack/internal/coerce"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
)

var _ repository.WorkoutRepository = (*DB)(nil)

func (db *DB) CreateWorkout(ctx context.Context, workout *model.Workout) error {
	id := xid.New().String()
	date := formatTime(workout.Date)

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO workouts (id, user_id, exercise_type, duration, calories_burned, goal, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		workout.UserID,
		workout.ExerciseType,
		workout.Duration,
		workout.CaloriesBurned,
		workout.Goal,
		date,
	)
	if err != nil {
		return ownerInsertError("workout", workout.UserID, err)
	}

	workout.ID = id
	workout.Date = parseTime(date)
	return nil
}

// ListWorkouts returns the user's workouts, newest first.
func (db *DB) ListWorkouts(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Workout, error) {
	where, args := ownedRange(userID, opts)
	query := `SELECT id, user_id, exercise_type, duration, calories_burned, goal, date
		FROM workouts WHERE ` + where + ` ORDER BY date DESC, id DESC` + limitClause(opts)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing workouts: %w", err)
	}
	defer rows.Close()

	workouts := []model.Workout{}
	for rows.Next() {
		var (
			w                      model.Workout
			duration, burned, date any
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.ExerciseType, &duration, &burned, &w.Goal, &date); err != nil {
			return nil, fmt.Errorf("sqlite: scanning workout row: %w", err)
		}
		w.Duration = coerce.Int(duration)
		w.CaloriesBurned = coerce.Int(burned)
		w.Date = parseTime(date)
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating workout rows: %w", err)
	}

	return workouts, nil
}
