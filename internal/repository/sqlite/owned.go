package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/healthtrack/internal/apperror"
)

// deleteOwned deletes one row from table, but only if userID owns it.
//
// The DELETE filters on both id and user_id, so a foreign row is never
// touched. When nothing was deleted a follow-up lookup tells a missing row
// (404) apart from one that belongs to someone else (403).
//
// table comes from the callers in this package, never from input.
func (db *DB) deleteOwned(ctx context.Context, table, resource, userID, id string) error {
	result, err := db.conn.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, table),
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting %s %s: %w", resource, id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var owner string
	err = db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT user_id FROM %s WHERE id = ?`, table), id,
	).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(resource, id)
	}
	if err != nil {
		return fmt.Errorf("sqlite: looking up %s %s: %w", resource, id, err)
	}

	return apperror.Forbidden(fmt.Sprintf("You do not have permission to delete this %s.", resource))
}
