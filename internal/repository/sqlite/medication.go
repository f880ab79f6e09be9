package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
)

var _ repository.MedicationRepository = (*DB)(nil)

func (db *DB) CreateMedication(ctx context.Context, med *model.Medication) error {
	reminders, err := encodeList(med.ReminderTimes)
	if err != nil {
		return fmt.Errorf("sqlite: encoding reminder times: %w", err)
	}

	id := xid.New().String()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO medications (id, user_id, medicine_name, dosage, frequency, start_date, end_date, reminder_times)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		med.UserID,
		med.MedicineName,
		med.Dosage,
		med.Frequency,
		med.StartDate,
		med.EndDate,
		reminders,
	)
	if err != nil {
		return ownerInsertError("medication", med.UserID, err)
	}

	med.ID = id
	return nil
}

// ListMedications returns the user's medications, most recently started
// first.
func (db *DB) ListMedications(ctx context.Context, userID string) ([]model.Medication, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, medicine_name, dosage, frequency, start_date, end_date, reminder_times
		 FROM medications
		 WHERE user_id = ?
		 ORDER BY start_date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing medications: %w", err)
	}
	defer rows.Close()

	meds := []model.Medication{}
	for rows.Next() {
		var (
			m         model.Medication
			reminders any
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.MedicineName, &m.Dosage, &m.Frequency, &m.StartDate, &m.EndDate, &reminders); err != nil {
			return nil, fmt.Errorf("sqlite: scanning medication row: %w", err)
		}
		m.ReminderTimes = decodeList(reminders)
		meds = append(meds, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating medication rows: %w", err)
	}

	return meds, nil
}

func (db *DB) DeleteMedication(ctx context.Context, userID, id string) error {
	return db.deleteOwned(ctx, "medications", "medication", userID, id)
}
