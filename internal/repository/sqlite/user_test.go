package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/model"
)

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Name:           "Ana",
		Email:          "ana@x.com",
		PasswordHash:   "$2a$04$hash",
		Age:            31,
		Gender:         model.GenderFemale,
		Height:         165.5,
		Weight:         60,
		MedicalHistory: []string{"asthma", "peanut allergy"},
		FitnessGoals:   []string{"run 5k"},
		ContactInfo:    model.ContactInfo{Phone: "555-0100", Address: "1 Main St", EmergencyContact: "Bea"},
	}

	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.ID == "" {
		t.Error("CreateUser() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreateUser() did not set user.CreatedAt")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	first := createTestUser(t, db, "dup@example.com")

	err := db.CreateUser(context.Background(), &model.User{
		Name:         "Second",
		Email:        "dup@example.com",
		PasswordHash: "x",
		Gender:       model.GenderOther,
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("CreateUser() error = %v, want ErrConflict", err)
	}

	// the first registration is unaffected
	found, err := db.GetUserByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if found.Name != "Test User" {
		t.Errorf("Name = %q, want %q", found.Name, "Test User")
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestGetUserByID_RoundTripsEveryField(t *testing.T) {
	db := newTestDB(t)

	want := &model.User{
		Name:            "Ana",
		Email:           "ana@x.com",
		PasswordHash:    "$2a$04$hash",
		Age:             31,
		Gender:          model.GenderFemale,
		Height:          165.5,
		Weight:          60.25,
		MedicalHistory:  []string{"asthma", "peanut allergy"},
		FitnessGoals:    []string{"run 5k", "sleep more"},
		PregnancyStatus: true,
		ContactInfo:     model.ContactInfo{Phone: "555-0100", Address: "1 Main St", EmergencyContact: "Bea"},
	}
	if err := db.CreateUser(context.Background(), want); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	got, err := db.GetUserByID(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetUserByID() = %+v\nwant %+v", got, want)
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByID(context.Background(), "nonexistent-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByID() error = %v, want ErrNotFound", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "lookup@example.com")

	found, err := db.GetUserByEmail(context.Background(), "lookup@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
	if found.PasswordHash == "" {
		t.Error("GetUserByEmail() must load the password hash for verification")
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByEmail() error = %v, want ErrNotFound", err)
	}
}

func TestGetUser_NullNumericsReadAsZero(t *testing.T) {
	db := newTestDB(t)

	_, err := db.conn.Exec(
		`INSERT INTO users (id, name, email, password_hash, age, height, weight, created_at)
		 VALUES ('u-null', 'Null', 'null@example.com', 'h', NULL, NULL, NULL, '2024-03-01 00:00:00')`)
	if err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	u, err := db.GetUserByID(context.Background(), "u-null")
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if u.Age != 0 || u.Height != 0 || u.Weight != 0 {
		t.Errorf("age/height/weight = %d/%v/%v, want zeros", u.Age, u.Height, u.Weight)
	}
	if u.MedicalHistory == nil || len(u.MedicalHistory) != 0 {
		t.Errorf("MedicalHistory = %#v, want empty non-nil slice", u.MedicalHistory)
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "update@example.com")
	originalHash := user.PasswordHash

	user.Name = "Renamed"
	user.Age = 40
	user.Gender = model.GenderMale
	user.FitnessGoals = []string{"lift"}
	user.ContactInfo.Phone = "555-0199"
	// neither of these may change through UpdateUser
	user.Email = "hijack@example.com"
	user.PasswordHash = "new-hash"

	if err := db.UpdateUser(context.Background(), user); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	found, err := db.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if found.Name != "Renamed" || found.Age != 40 || found.Gender != model.GenderMale {
		t.Errorf("profile not updated: %+v", found)
	}
	if !reflect.DeepEqual(found.FitnessGoals, []string{"lift"}) {
		t.Errorf("FitnessGoals = %v, want [lift]", found.FitnessGoals)
	}
	if found.ContactInfo.Phone != "555-0199" {
		t.Errorf("Phone = %q, want %q", found.ContactInfo.Phone, "555-0199")
	}
	if found.Email != "update@example.com" {
		t.Errorf("Email changed to %q", found.Email)
	}
	if found.PasswordHash != originalHash {
		t.Error("PasswordHash changed through UpdateUser")
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateUser(context.Background(), &model.User{ID: "missing", Name: "x"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateUser() error = %v, want ErrNotFound", err)
	}
}
