package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
	"github.com/sakif/healthtrack/internal/sanitize"
)

// UserService reads and edits the caller's own profile.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// ProfileUpdate carries the fields of a profile edit. A nil field was not
// sent and keeps its stored value. Email and password cannot be changed
// here.
type ProfileUpdate struct {
	ID               string    `json:"id"`
	Name             *string   `json:"name" validate:"omitempty,max=100"`
	Age              *int      `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender           *string   `json:"gender" validate:"omitempty,oneof=male female other"`
	Height           *float64  `json:"height" validate:"omitempty,gte=0"`
	Weight           *float64  `json:"weight" validate:"omitempty,gte=0"`
	MedicalHistory   *[]string `json:"medicalHistory"`
	FitnessGoals     *[]string `json:"fitnessGoals"`
	PregnancyStatus  *bool     `json:"pregnancyStatus"`
	Phone            *string   `json:"phone"`
	Address          *string   `json:"address"`
	EmergencyContact *string   `json:"emergencyContact"`
}

// GetProfile returns the caller's user record.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("id", "User ID is required.")
	}
	return s.users.GetUserByID(ctx, userID)
}

// UpdateProfile applies in to the caller's profile and returns the stored
// result. in.ID may be empty, meaning the caller; any other id is
// rejected with apperror.ErrForbidden.
func (s *UserService) UpdateProfile(ctx context.Context, callerID string, in ProfileUpdate) (*model.User, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = callerID
	}
	if id != callerID {
		return nil, apperror.Forbidden("You can only update your own profile.")
	}

	if in.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*in.Gender))
		in.Gender = &g
	}
	if err := validateInput(in, "User ID is required."); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := sanitize.Text(*in.Name)
		if name == "" {
			return nil, apperror.ValidationFailed("name", "Name cannot be empty.")
		}
		user.Name = name
	}
	if in.Age != nil {
		user.Age = *in.Age
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
		if user.Gender == "" {
			user.Gender = model.GenderOther
		}
	}
	if in.Height != nil {
		user.Height = *in.Height
	}
	if in.Weight != nil {
		user.Weight = *in.Weight
	}
	if in.MedicalHistory != nil {
		user.MedicalHistory = copyList(*in.MedicalHistory)
	}
	if in.FitnessGoals != nil {
		user.FitnessGoals = copyList(*in.FitnessGoals)
	}
	if in.PregnancyStatus != nil {
		user.PregnancyStatus = *in.PregnancyStatus
	}
	if in.Phone != nil {
		user.ContactInfo.Phone = sanitize.Text(*in.Phone)
	}
	if in.Address != nil {
		user.ContactInfo.Address = sanitize.Text(*in.Address)
	}
	if in.EmergencyContact != nil {
		user.ContactInfo.EmergencyContact = sanitize.Text(*in.EmergencyContact)
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		s.logger.Error("failed to update profile",
			slog.String("userID", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/user: updating profile: %w", err)
	}

	s.logger.Info("profile updated", slog.String("userID", id))
	return user, nil
}
