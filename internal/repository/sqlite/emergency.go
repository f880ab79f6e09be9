package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
)

var _ repository.EmergencyContactRepository = (*DB)(nil)

func (db *DB) CreateEmergencyContact(ctx context.Context, contact *model.EmergencyContact) error {
	id := xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO emergency_contacts (id, user_id, name, relation, phone, location)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		contact.UserID,
		contact.Name,
		contact.Relation,
		contact.Phone,
		contact.Location,
	)
	if err != nil {
		return ownerInsertError("emergency contact", contact.UserID, err)
	}

	contact.ID = id
	return nil
}

// ListEmergencyContacts returns the user's contacts in alphabetical order.
func (db *DB) ListEmergencyContacts(ctx context.Context, userID string) ([]model.EmergencyContact, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, name, relation, phone, location
		 FROM emergency_contacts
		 WHERE user_id = ?
		 ORDER BY name COLLATE NOCASE ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing emergency contacts: %w", err)
	}
	defer rows.Close()

	contacts := []model.EmergencyContact{}
	for rows.Next() {
		var c model.EmergencyContact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Relation, &c.Phone, &c.Location); err != nil {
			return nil, fmt.Errorf("sqlite: scanning emergency contact row: %w", err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating emergency contact rows: %w", err)
	}

	return contacts, nil
}

func (db *DB) DeleteEmergencyContact(ctx context.Context, userID, id string) error {
	return db.deleteOwned(ctx, "emergency_contacts", "emergency contact", userID, id)
}
