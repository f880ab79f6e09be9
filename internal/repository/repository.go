// Package repository declares the storage interfaces the service layer
// depends on. Implementations live in subpackages (see repository/sqlite).
//
// Every method that touches user-owned data takes the owner's ID and
// filters on it: there is no way to read or mutate another user's rows
// through these interfaces.
package repository

import (
	"context"
	"time"

	"github.com/sakif/healthtrack/internal/model"
)

// ListOptions narrows a time-series listing. Zero values mean "no bound":
// an empty From/To lists everything, Limit 0 returns every row.
type ListOptions struct {
	From  time.Time // inclusive
	To    time.Time // exclusive
	Limit int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

type MealRepository interface {
	CreateMeal(ctx context.Context, meal *model.Meal) error
	ListMeals(ctx context.Context, userID string, opts ListOptions) ([]model.Meal, error)
}

type MoodRepository interface {
	CreateMood(ctx context.Context, mood *model.MoodEntry) error
	ListMoods(ctx context.Context, userID string, opts ListOptions) ([]model.MoodEntry, error)
}

type WorkoutRepository interface {
	CreateWorkout(ctx context.Context, workout *model.Workout) error
	ListWorkouts(ctx context.Context, userID string, opts ListOptions) ([]model.Workout, error)
}

type MedicationRepository interface {
	CreateMedication(ctx context.Context, med *model.Medication) error
	ListMedications(ctx context.Context, userID string) ([]model.Medication, error)
	// DeleteMedication removes the row only if userID owns it. A row owned
	// by someone else yields apperror.ErrForbidden, a missing row
	// apperror.ErrNotFound.
	DeleteMedication(ctx context.Context, userID, id string) error
}

type EmergencyContactRepository interface {
	CreateEmergencyContact(ctx context.Context, contact *model.EmergencyContact) error
	ListEmergencyContacts(ctx context.Context, userID string) ([]model.EmergencyContact, error)
	DeleteEmergencyContact(ctx context.Context, userID, id string) error
}

type PregnancyRepository interface {
	// CreatePregnancy fails with apperror.ErrConflict if the user already
	// has a record.
	CreatePregnancy(ctx context.Context, data *model.PregnancyData) error
	// GetPregnancy returns (nil, nil) when the user has no record.
	GetPregnancy(ctx context.Context, userID string) (*model.PregnancyData, error)
	UpdatePregnancy(ctx context.Context, data *model.PregnancyData) error
}

// Pinger is satisfied by stores that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}
