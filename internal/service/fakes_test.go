package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
)

// =========================================================================
// FAKE STORE
// =========================================================================

// fakeStore is an in-memory implementation of every repository interface.
// It mirrors the SQLite semantics the services rely on: newest-first
// ordering, [From, To) windows, owner-checked deletes and a single
// pregnancy record per user.
type fakeStore struct {
	users     map[string]*model.User
	meals     []model.Meal
	moods     []model.MoodEntry
	workouts  []model.Workout
	meds      []model.Medication
	contacts  []model.EmergencyContact
	pregnancy map[string]*model.PregnancyData
	nextID    int

	// set to a non-nil error to make every write fail
	writeErr error
}

var (
	_ repository.UserRepository             = (*fakeStore)(nil)
	_ repository.MealRepository             = (*fakeStore)(nil)
	_ repository.MoodRepository             = (*fakeStore)(nil)
	_ repository.WorkoutRepository          = (*fakeStore)(nil)
	_ repository.MedicationRepository       = (*fakeStore)(nil)
	_ repository.EmergencyContactRepository = (*fakeStore)(nil)
	_ repository.PregnancyRepository        = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]*model.User),
		pregnancy: make(map[string]*model.PregnancyData),
	}
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperror.AlreadyExists("Unable to register user. Email already exists.")
		}
	}
	user.ID = f.id("user")
	user.CreatedAt = time.Now().UTC().Truncate(time.Second)
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeStore) UpdateUser(_ context.Context, user *model.User) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	existing, ok := f.users[user.ID]
	if !ok {
		return apperror.NotFound("user", user.ID)
	}
	stored := *user
	stored.Email = existing.Email
	stored.PasswordHash = existing.PasswordHash
	stored.CreatedAt = existing.CreatedAt
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeStore) requireUser(userID string) error {
	if _, ok := f.users[userID]; !ok {
		return apperror.NotFound("user", userID)
	}
	return nil
}

func inWindow(t time.Time, opts repository.ListOptions) bool {
	if !opts.From.IsZero() && t.Before(opts.From) {
		return false
	}
	if !opts.To.IsZero() && !t.Before(opts.To) {
		return false
	}
	return true
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func (f *fakeStore) CreateMeal(_ context.Context, meal *model.Meal) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if err := f.requireUser(meal.UserID); err != nil {
		return err
	}
	meal.ID = f.id("meal")
	f.meals = append(f.meals, *meal)
	return nil
}

func (f *fakeStore) ListMeals(_ context.Context, userID string, opts repository.ListOptions) ([]model.Meal, error) {
	out := []model.Meal{}
	for _, m := range f.meals {
		if m.UserID == userID && inWindow(m.Date, opts) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return limit(out, opts.Limit), nil
}

func (f *fakeStore) CreateMood(_ context.Context, mood *model.MoodEntry) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if err := f.requireUser(mood.UserID); err != nil {
		return err
	}
	mood.ID = f.id("mood")
	f.moods = append(f.moods, *mood)
	return nil
}

func (f *fakeStore) ListMoods(_ context.Context, userID string, opts repository.ListOptions) ([]model.MoodEntry, error) {
	out := []model.MoodEntry{}
	for _, m := range f.moods {
		if m.UserID == userID && inWindow(m.Date, opts) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return limit(out, opts.Limit), nil
}

func (f *fakeStore) CreateWorkout(_ context.Context, w *model.Workout) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if err := f.requireUser(w.UserID); err != nil {
		return err
	}
	w.ID = f.id("workout")
	f.workouts = append(f.workouts, *w)
	return nil
}

func (f *fakeStore) ListWorkouts(_ context.Context, userID string, opts repository.ListOptions) ([]model.Workout, error) {
	out := []model.Workout{}
	for _, w := range f.workouts {
		if w.UserID == userID && inWindow(w.Date, opts) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return limit(out, opts.Limit), nil
}

func (f *fakeStore) CreateMedication(_ context.Context, med *model.Medication) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if err := f.requireUser(med.UserID); err != nil {
		return err
	}
	med.ID = f.id("med")
	f.meds = append(f.meds, *med)
	return nil
}

func (f *fakeStore) ListMedications(_ context.Context, userID string) ([]model.Medication, error) {
	out := []model.Medication{}
	for _, m := range f.meds {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	return out, nil
}

func (f *fakeStore) DeleteMedication(_ context.Context, userID, id string) error {
	for i, m := range f.meds {
		if m.ID != id {
			continue
		}
		if m.UserID != userID {
			return apperror.Forbidden("You do not have permission to delete this medication.")
		}
		f.meds = append(f.meds[:i], f.meds[i+1:]...)
		return nil
	}
	return apperror.NotFound("medication", id)
}

func (f *fakeStore) CreateEmergencyContact(_ context.Context, c *model.EmergencyContact) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if err := f.requireUser(c.UserID); err != nil {
		return err
	}
	c.ID = f.id("contact")
	f.contacts = append(f.contacts, *c)
	return nil
}

func (f *fakeStore) ListEmergencyContacts(_ context.Context, userID string) ([]model.EmergencyContact, error) {
	out := []model.EmergencyContact{}
	for _, c := range f.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (f *fakeStore) DeleteEmergencyContact(_ context.Context, userID, id string) error {
	for i, c := range f.contacts {
		if c.ID != id {
			continue
		}
		if c.UserID != userID {
			return apperror.Forbidden("You do not have permission to delete this emergency contact.")
		}
		f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
		return nil
	}
	return apperror.NotFound("emergency contact", id)
}

func (f *fakeStore) CreatePregnancy(_ context.Context, data *model.PregnancyData) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if _, ok := f.pregnancy[data.UserID]; ok {
		return apperror.AlreadyExists("Pregnancy data already exists. Use PUT to update.")
	}
	data.ID = f.id("preg")
	data.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	stored := *data
	f.pregnancy[data.UserID] = &stored
	return nil
}

func (f *fakeStore) GetPregnancy(_ context.Context, userID string) (*model.PregnancyData, error) {
	d, ok := f.pregnancy[userID]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (f *fakeStore) UpdatePregnancy(_ context.Context, data *model.PregnancyData) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	existing, ok := f.pregnancy[data.UserID]
	if !ok {
		return apperror.NotFound("pregnancy data", data.UserID)
	}
	stored := *data
	stored.ID = existing.ID
	stored.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	f.pregnancy[data.UserID] = &stored
	return nil
}

// =========================================================================
// HELPERS
// =========================================================================

// fixedNow is mid-afternoon so "today" has room on both sides.
var fixedNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedUser stores a user directly, bypassing registration.
func seedUser(f *fakeStore, gender string, pregnant bool) *model.User {
	u := &model.User{
		Name:            "Test User",
		Email:           fmt.Sprintf("user%d@example.com", f.nextID+1),
		Gender:          gender,
		PregnancyStatus: pregnant,
		MedicalHistory:  []string{},
		FitnessGoals:    []string{},
	}
	if err := f.CreateUser(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}
