package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/healthtrack/internal/coerce"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
)

var _ repository.MoodRepository = (*DB)(nil)

func (db *DB) CreateMood(ctx context.Context, mood *model.MoodEntry) error {
	id := xid.New().String()
	date := formatTime(mood.Date)

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO moods (id, user_id, mood, stress_level, journal_text, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		mood.UserID,
		mood.Mood,
		mood.StressLevel,
		mood.JournalText,
		date,
	)
	if err != nil {
		return ownerInsertError("mood entry", mood.UserID, err)
	}

	mood.ID = id
	mood.Date = parseTime(date)
	return nil
}

// ListMoods returns the user's mood entries, newest first.
func (db *DB) ListMoods(ctx context.Context, userID string, opts repository.ListOptions) ([]model.MoodEntry, error) {
	where, args := ownedRange(userID, opts)
	query := `SELECT id, user_id, mood, stress_level, journal_text, date
		FROM moods WHERE ` + where + ` ORDER BY date DESC, id DESC` + limitClause(opts)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing moods: %w", err)
	}
	defer rows.Close()

	moods := []model.MoodEntry{}
	for rows.Next() {
		var (
			m            model.MoodEntry
			stress, date any
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &stress, &m.JournalText, &date); err != nil {
			return nil, fmt.Errorf("sqlite: scanning mood row: %w", err)
		}
		m.StressLevel = coerce.Int(stress)
		m.Date = parseTime(date)
		moods = append(moods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating mood rows: %w", err)
	}

	return moods, nil
}
