package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/auth"
)

// newTestAuthService returns an AuthService wired with fake dependencies.
// The bcrypt cost is the minimum so tests stay fast.
func newTestAuthService(t *testing.T, store *fakeStore) (*AuthService, *auth.TokenService) {
	t.Helper()
	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!", "healthtrack-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	ps := auth.NewPasswordService(bcrypt.MinCost)
	return NewAuthService(store, ts, ps, discardLogger()), ts
}

func anaInput() RegisterInput {
	return RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"}
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister_Defaults(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestAuthService(t, store)

	user, err := svc.Register(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("expected user to have an ID")
	}
	if user.Gender != "other" {
		t.Errorf("Gender = %q, want %q", user.Gender, "other")
	}
	if user.Age != 0 || user.Height != 0 || user.Weight != 0 || user.PregnancyStatus {
		t.Errorf("numeric/bool defaults not zero: %+v", user)
	}
	if user.MedicalHistory == nil || len(user.MedicalHistory) != 0 {
		t.Errorf("MedicalHistory = %#v, want empty non-nil list", user.MedicalHistory)
	}
}

func TestRegister_PasswordIsHashed(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestAuthService(t, store)

	user, err := svc.Register(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stored := store.users[user.ID]
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Fatalf("stored credential %q is not a hash", stored.PasswordHash)
	}
	if !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Errorf("stored credential %q does not look like bcrypt", stored.PasswordHash)
	}
}

func TestRegister_NormalizesAndSanitizes(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestAuthService(t, store)

	in := anaInput()
	in.Name = "  <b>Ana</b> "
	in.Email = "  Ana@X.com "
	in.Gender = "Female"
	in.MedicalHistory = []string{"Crohn's disease", "", "a < b", "asthma"}

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Name != "Ana" {
		t.Errorf("Name = %q, want %q", user.Name, "Ana")
	}
	if user.Email != "ana@x.com" {
		t.Errorf("Email = %q, want %q", user.Email, "ana@x.com")
	}
	if user.Gender != "female" {
		t.Errorf("Gender = %q, want %q", user.Gender, "female")
	}
	// List fields are stored verbatim: no escaping, no dropped elements.
	if !reflect.DeepEqual(user.MedicalHistory, []string{"Crohn's disease", "", "a < b", "asthma"}) {
		t.Errorf("MedicalHistory = %q", user.MedicalHistory)
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		message string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "" }, "Name, email and password are required."},
		{"name is only markup", func(in *RegisterInput) { in.Name = "<i></i>" }, "Name, email and password are required."},
		{"missing email", func(in *RegisterInput) { in.Email = " " }, "Name, email and password are required."},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, "Name, email and password are required."},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email must be a valid email address"},
		{"bad gender", func(in *RegisterInput) { in.Gender = "robot" }, "gender must be one of: male, female, other"},
		{"negative age", func(in *RegisterInput) { in.Age = -1 }, "age must be greater than or equal to 0"},
		{"long password", func(in *RegisterInput) { in.Password = strings.Repeat("a", 73) }, "password must be 72 bytes or fewer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestAuthService(t, newFakeStore())
			in := anaInput()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Register() error = %v, want ErrValidation", err)
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestAuthService(t, store)

	first, err := svc.Register(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	dup := anaInput()
	dup.Email = "ANA@x.com"
	_, err = svc.Register(context.Background(), dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Register() error = %v, want ErrConflict", err)
	}

	if _, err := svc.Authenticate(context.Background(), "ana@x.com", "secret1"); err != nil {
		t.Errorf("first user should still authenticate: %v", err)
	}
	if len(store.users) != 1 || store.users[first.ID] == nil {
		t.Error("first user should be unaffected by the failed registration")
	}
}

func TestRegister_RepositoryError(t *testing.T) {
	store := newFakeStore()
	store.writeErr = errors.New("database is on fire")
	svc, _ := newTestAuthService(t, store)

	_, err := svc.Register(context.Background(), anaInput())
	if err == nil {
		t.Fatal("Register() should propagate repository errors")
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		t.Errorf("storage failure surfaced as domain error %v", appErr)
	}
}

// =========================================================================
// AUTHENTICATE / LOGIN TESTS
// =========================================================================

func TestAuthenticate(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestAuthService(t, store)
	if _, err := svc.Register(context.Background(), anaInput()); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"correct", "ana@x.com", "secret1", false},
		{"email case and spaces ignored", " ANA@x.com", "secret1", false},
		{"wrong password", "ana@x.com", "wrong", true},
		{"unknown email", "nobody@x.com", "secret1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr {
				if !errors.Is(err, apperror.ErrUnauthorized) {
					t.Fatalf("Authenticate() error = %v, want ErrUnauthorized", err)
				}
				if err.Error() != "Invalid credentials." {
					t.Errorf("message = %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if user.Name != "Ana" || user.Email != "ana@x.com" {
				t.Errorf("user = %+v", user)
			}
		})
	}
}

func TestLogin_IssuesTokenForUser(t *testing.T) {
	store := newFakeStore()
	svc, tokens := newTestAuthService(t, store)
	registered, err := svc.Register(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != registered.ID {
		t.Errorf("User.ID = %q, want %q", result.User.ID, registered.ID)
	}

	subject, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if subject != registered.ID {
		t.Errorf("token subject = %q, want %q", subject, registered.ID)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t, newFakeStore())

	_, err := svc.Login(context.Background(), LoginInput{Email: "ana@x.com"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Login() error = %v, want ErrValidation", err)
	}
	if err.Error() != "Email and password are required." {
		t.Errorf("message = %q", err.Error())
	}
}
