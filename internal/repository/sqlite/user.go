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

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, name, email, password_hash, age, gender, height, weight,
	medical_history, fitness_goals, pregnancy_status, phone, address,
	emergency_contact, created_at`

// CreateUser inserts a new user, assigning its ID and CreatedAt.
// A duplicate email fails with apperror.ErrConflict.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	history, err := encodeList(user.MedicalHistory)
	if err != nil {
		return fmt.Errorf("sqlite: encoding medical history: %w", err)
	}
	goals, err := encodeList(user.FitnessGoals)
	if err != nil {
		return fmt.Errorf("sqlite: encoding fitness goals: %w", err)
	}

	id := xid.New().String()
	createdAt := time.Now().UTC().Truncate(time.Second)

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Age,
		user.Gender,
		user.Height,
		user.Weight,
		history,
		goals,
		user.PregnancyStatus,
		user.ContactInfo.Phone,
		user.ContactInfo.Address,
		user.ContactInfo.EmergencyContact,
		formatTime(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.AlreadyExists("Unable to register user. Email already exists.")
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return nil
}

// GetUserByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}
	return u, nil
}

// GetUserByEmail looks a user up by login email. The caller normalises the
// address; the lookup itself is exact.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}
	return u, nil
}

// UpdateUser overwrites the editable profile fields. Email, password hash
// and created_at are never touched here.
func (db *DB) UpdateUser(ctx context.Context, user *model.User) error {
	history, err := encodeList(user.MedicalHistory)
	if err != nil {
		return fmt.Errorf("sqlite: encoding medical history: %w", err)
	}
	goals, err := encodeList(user.FitnessGoals)
	if err != nil {
		return fmt.Errorf("sqlite: encoding fitness goals: %w", err)
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, age = ?, gender = ?, height = ?, weight = ?,
		        medical_history = ?, fitness_goals = ?, pregnancy_status = ?,
		        phone = ?, address = ?, emergency_contact = ?
		 WHERE id = ?`,
		user.Name,
		user.Age,
		user.Gender,
		user.Height,
		user.Weight,
		history,
		goals,
		user.PregnancyStatus,
		user.ContactInfo.Phone,
		user.ContactInfo.Address,
		user.ContactInfo.EmergencyContact,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("user", user.ID)
	}

	return nil
}

// rowScanner is the Scan method shared by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var (
		u                             model.User
		age, height, weight, pregnant any
		history, goals, createdAt     any
	)

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&age,
		&u.Gender,
		&height,
		&weight,
		&history,
		&goals,
		&pregnant,
		&u.ContactInfo.Phone,
		&u.ContactInfo.Address,
		&u.ContactInfo.EmergencyContact,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	u.Age = coerce.Int(age)
	u.Height = coerce.Float(height)
	u.Weight = coerce.Float(weight)
	u.PregnancyStatus = coerce.Bool(pregnant)
	u.MedicalHistory = decodeList(history)
	u.FitnessGoals = decodeList(goals)
	u.CreatedAt = parseTime(createdAt)

	return &u, nil
}
