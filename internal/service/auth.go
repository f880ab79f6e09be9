// Package service holds the business rules of the application.
//
//	Handler (HTTP)  → parses requests, writes responses
//	Service         → validates, applies defaults, enforces ownership and policy
//	Repository      → reads and writes rows
//
// Services take repository interfaces, never *sqlite.DB, so tests can run
// them against in-memory fakes. They return apperror values and know
// nothing about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/auth"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
	"github.com/sakif/healthtrack/internal/sanitize"
)

const (
	msgRegisterRequired = "Name, email and password are required."
	msgLoginRequired    = "Email and password are required."
	msgInvalidLogin     = "Invalid credentials."
)

// AuthService registers users and checks their credentials.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users      repository.UserRepository  → read/write user records
//   - tokens     *auth.TokenService         → issue JWTs after a successful login
//   - passwords  *auth.PasswordService      → bcrypt hashing and verification
//   - logger     *slog.Logger               → structured logging
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// RegisterInput is everything a client may send when signing up. Only
// name, email and password are required; the rest default to zero values.
type RegisterInput struct {
	Name            string            `json:"name" validate:"required,max=100"`
	Email           string            `json:"email" validate:"required,email,max=254"`
	Password        string            `json:"password" validate:"required"`
	Age             int               `json:"age" validate:"gte=0,lte=150"`
	Gender          string            `json:"gender" validate:"omitempty,oneof=male female other"`
	Height          float64           `json:"height" validate:"gte=0"`
	Weight          float64           `json:"weight" validate:"gte=0"`
	MedicalHistory  []string          `json:"medicalHistory"`
	FitnessGoals    []string          `json:"fitnessGoals"`
	PregnancyStatus bool              `json:"pregnancyStatus"`
	ContactInfo     model.ContactInfo `json:"contactInfo"`
}

// LoginInput is the body of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult bundles the user record and the issued JWT so the handler
// can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// NormalizeEmail is applied before every store and lookup, so
// "Ana@X.com " and "ana@x.com" name the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the input, hashes the password and stores the user.
// A duplicate email fails with apperror.ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Name = sanitize.Text(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Gender = strings.ToLower(strings.TrimSpace(in.Gender))

	if err := validateInput(in, msgRegisterRequired); err != nil {
		return nil, err
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be %d bytes or fewer", auth.MaxPasswordBytes))
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	gender := in.Gender
	if gender == "" {
		gender = model.GenderOther
	}

	user := &model.User{
		Name:            in.Name,
		Email:           in.Email,
		PasswordHash:    hash,
		Age:             in.Age,
		Gender:          gender,
		Height:          in.Height,
		Weight:          in.Weight,
		MedicalHistory:  copyList(in.MedicalHistory),
		FitnessGoals:    copyList(in.FitnessGoals),
		PregnancyStatus: in.PregnancyStatus,
		ContactInfo:     sanitizeContact(in.ContactInfo),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to register user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("service/auth: registering user: %w", err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID))
	return user, nil
}

// Authenticate checks an email and password pair. An unknown email and a
// wrong password both fail with the same apperror.ErrUnauthorized, and both
// paths pay for one bcrypt comparison.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			_ = s.passwords.VerifyDummy(password)
			return nil, apperror.Unauthorized(msgInvalidLogin)
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperror.Unauthorized(msgInvalidLogin)
		}
		return nil, fmt.Errorf("service/auth: verifying password for user %s: %w", user.ID, err)
	}

	return user, nil
}

// Login authenticates the caller and issues an access token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := validateInput(in, msgLoginRequired); err != nil {
		return nil, err
	}

	user, err := s.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			s.logger.Info("login failed")
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

func sanitizeContact(c model.ContactInfo) model.ContactInfo {
	return model.ContactInfo{
		Phone:            sanitize.Text(c.Phone),
		Address:          sanitize.Text(c.Address),
		EmergencyContact: sanitize.Text(c.EmergencyContact),
	}
}
