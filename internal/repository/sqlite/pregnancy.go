package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/coerce"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
)

var _ repository.PregnancyRepository = (*DB)(nil)

// CreatePregnancy inserts the user's pregnancy record. pregnancy_data has
// UNIQUE(user_id), so a second create for the same user, concurrent or
// not, fails with apperror.ErrConflict.
func (db *DB) CreatePregnancy(ctx context.Context, data *model.PregnancyData) error {
	id := xid.New().String()
	updatedAt := time.Now().UTC().Truncate(time.Second)

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO pregnancy_data (id, user_id, current_week, due_date, last_checkup, next_checkup, notes, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		data.UserID,
		data.CurrentWeek,
		nullableString(data.DueDate),
		nullableString(data.LastCheckup),
		nullableString(data.NextCheckup),
		data.Notes,
		formatTime(updatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.AlreadyExists("Pregnancy data already exists. Use PUT to update.")
		}
		return ownerInsertError("pregnancy data", data.UserID, err)
	}

	data.ID = id
	data.UpdatedAt = updatedAt
	return nil
}

// GetPregnancy returns the user's record, or (nil, nil) if there is none.
func (db *DB) GetPregnancy(ctx context.Context, userID string) (*model.PregnancyData, error) {
	var (
		d                         model.PregnancyData
		week, updatedAt           any
		due, lastCheck, nextCheck sql.NullString
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, current_week, due_date, last_checkup, next_checkup, notes, updated_at
		 FROM pregnancy_data
		 WHERE user_id = ?`,
		userID,
	).Scan(&d.ID, &d.UserID, &week, &due, &lastCheck, &nextCheck, &d.Notes, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: getting pregnancy data for user %s: %w", userID, err)
	}

	d.CurrentWeek = coerce.Int(week)
	d.DueDate = stringPtr(due)
	d.LastCheckup = stringPtr(lastCheck)
	d.NextCheckup = stringPtr(nextCheck)
	d.UpdatedAt = parseTime(updatedAt)

	return &d, nil
}

// UpdatePregnancy overwrites the user's record. Returns
// apperror.ErrNotFound if the user has none.
func (db *DB) UpdatePregnancy(ctx context.Context, data *model.PregnancyData) error {
	updatedAt := time.Now().UTC().Truncate(time.Second)

	result, err := db.conn.ExecContext(ctx,
		`UPDATE pregnancy_data
		 SET current_week = ?, due_date = ?, last_checkup = ?, next_checkup = ?, notes = ?, updated_at = ?
		 WHERE user_id = ?`,
		data.CurrentWeek,
		nullableString(data.DueDate),
		nullableString(data.LastCheckup),
		nullableString(data.NextCheckup),
		data.Notes,
		formatTime(updatedAt),
		data.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating pregnancy data for user %s: %w", data.UserID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("pregnancy data", data.UserID)
	}

	data.UpdatedAt = updatedAt
	return nil
}
