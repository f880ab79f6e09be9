package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/policy"
	"github.com/sakif/healthtrack/internal/repository"
	"github.com/sakif/healthtrack/internal/sanitize"
)

const msgPregnancyUnavailable = "Pregnancy tracking is not available for this profile."

// PregnancyService manages the one pregnancy record a user may have.
// Every operation first re-checks policy.CanAccessPregnancySection against
// the stored profile.
type PregnancyService struct {
	repo   repository.PregnancyRepository
	users  repository.UserRepository
	logger *slog.Logger
}

func NewPregnancyService(repo repository.PregnancyRepository, users repository.UserRepository, logger *slog.Logger) *PregnancyService {
	return &PregnancyService{repo: repo, users: users, logger: logger}
}

// PregnancyInput is used for both create and update. Dates are
// YYYY-MM-DD; nil or empty means unset.
type PregnancyInput struct {
	UserID      string  `json:"userId"`
	CurrentWeek int     `json:"currentWeek" validate:"required,min=1,max=45"`
	DueDate     *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	LastCheckup *string `json:"lastCheckup" validate:"omitempty,datetime=2006-01-02"`
	NextCheckup *string `json:"nextCheckup" validate:"omitempty,datetime=2006-01-02"`
	Notes       string  `json:"notes" validate:"max=10000"`
}

// Get returns the caller's record, or nil if they have not created one.
func (s *PregnancyService) Get(ctx context.Context, userID string) (*model.PregnancyData, error) {
	if err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}

	data, err := s.repo.GetPregnancy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting pregnancy data: %w", err)
	}
	return data, nil
}

// Create stores the caller's first record. If one already exists it fails
// with apperror.ErrConflict; the client should update instead.
func (s *PregnancyService) Create(ctx context.Context, in PregnancyInput) (*model.PregnancyData, error) {
	data, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreatePregnancy(ctx, data); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create pregnancy data",
			slog.String("userID", in.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating pregnancy data: %w", err)
	}

	s.logger.Info("pregnancy data created",
		slog.String("id", data.ID),
		slog.String("userID", data.UserID),
	)
	return data, nil
}

// Update overwrites the caller's record. It fails with
// apperror.ErrNotFound if there is nothing to update.
func (s *PregnancyService) Update(ctx context.Context, in PregnancyInput) (*model.PregnancyData, error) {
	data, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePregnancy(ctx, data); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update pregnancy data",
			slog.String("userID", in.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating pregnancy data: %w", err)
	}

	s.logger.Info("pregnancy data updated", slog.String("userID", data.UserID))
	return s.repo.GetPregnancy(ctx, data.UserID)
}

func (s *PregnancyService) prepare(ctx context.Context, in PregnancyInput) (*model.PregnancyData, error) {
	in.DueDate = trimDate(in.DueDate)
	in.LastCheckup = trimDate(in.LastCheckup)
	in.NextCheckup = trimDate(in.NextCheckup)
	in.Notes = sanitize.Text(in.Notes)

	if err := s.authorize(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := validateInput(in, "Current week is required."); err != nil {
		return nil, err
	}

	return &model.PregnancyData{
		UserID:      in.UserID,
		CurrentWeek: in.CurrentWeek,
		DueDate:     in.DueDate,
		LastCheckup: in.LastCheckup,
		NextCheckup: in.NextCheckup,
		Notes:       in.Notes,
	}, nil
}

// authorize loads the stored profile and applies the access policy. The
// profile is read fresh so a gender or status change takes effect at once.
func (s *PregnancyService) authorize(ctx context.Context, userID string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !policy.CanAccessPregnancySection(user) {
		return apperror.Forbidden(msgPregnancyUnavailable)
	}
	return nil
}

func trimDate(d *string) *string {
	if d == nil {
		return nil
	}
	v := strings.TrimSpace(*d)
	if v == "" {
		return nil
	}
	return &v
}
