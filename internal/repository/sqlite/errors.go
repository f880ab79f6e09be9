package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/coerce"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure.
func isUniqueViolation(err error) bool {
	var se *moderncsqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a FOREIGN KEY constraint
// failure, which here always means the owning user does not exist.
func isForeignKeyViolation(err error) bool {
	var se *moderncsqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// ===== value helpers shared by the resource files =====

// timeLayout is fixed-width so lexical order on the column is time order.
const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp. Anything unparseable reads as the
// zero time rather than failing the whole listing.
func parseTime(v any) time.Time {
	t, _ := coerce.Time(v, time.UTC)
	return t.UTC()
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList reads a JSON-encoded list column. NULL, empty and malformed
// values read as an empty list.
func decodeList(v any) []string {
	raw := coerce.String(v)
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

func nullableString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	s := ns.String
	return &s
}

// ownerInsertError translates a failed insert of a user-owned row.
func ownerInsertError(resource, userID string, err error) error {
	if isForeignKeyViolation(err) {
		return apperror.NotFound("user", userID)
	}
	return fmt.Errorf("sqlite: creating %s: %w", resource, err)
}
