package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
	"github.com/sakif/healthtrack/internal/sanitize"
)

type MedicationService struct {
	repo   repository.MedicationRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewMedicationService(repo repository.MedicationRepository, logger *slog.Logger) *MedicationService {
	return &MedicationService{repo: repo, logger: logger, now: time.Now}
}

// MedicationInput is a medication as submitted. Empty dates default to
// today; ReminderTimes are free-text clock times such as "08:00".
type MedicationInput struct {
	UserID        string   `json:"userId"`
	MedicineName  string   `json:"medicineName" validate:"required,max=200"`
	Dosage        string   `json:"dosage" validate:"max=100"`
	Frequency     string   `json:"frequency" validate:"max=100"`
	StartDate     string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string   `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	ReminderTimes []string `json:"reminderTimes" validate:"max=24,dive,max=20"`
}

func (s *MedicationService) Create(ctx context.Context, in MedicationInput) (*model.Medication, error) {
	in.MedicineName = sanitize.Text(in.MedicineName)
	in.Dosage = sanitize.Text(in.Dosage)
	in.Frequency = sanitize.Text(in.Frequency)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	in.ReminderTimes = copyList(in.ReminderTimes)

	if err := validateInput(in, "Medicine name is required."); err != nil {
		return nil, err
	}

	today := s.now().Format(model.DateLayout)
	med := &model.Medication{
		UserID:        in.UserID,
		MedicineName:  in.MedicineName,
		Dosage:        in.Dosage,
		Frequency:     in.Frequency,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		ReminderTimes: in.ReminderTimes,
	}
	if med.StartDate == "" {
		med.StartDate = today
	}
	if med.EndDate == "" {
		med.EndDate = today
	}
	// Fixed-width dates compare correctly as strings.
	if med.EndDate < med.StartDate {
		return nil, apperror.ValidationFailed("endDate", "End date cannot be before start date.")
	}

	if err := s.repo.CreateMedication(ctx, med); err != nil {
		s.logger.Error("failed to create medication",
			slog.String("userID", in.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating medication: %w", err)
	}

	s.logger.Info("medication created",
		slog.String("id", med.ID),
		slog.String("userID", med.UserID),
	)
	return med, nil
}

// List returns the user's medications, most recently started first.
func (s *MedicationService) List(ctx context.Context, userID string) ([]model.Medication, error) {
	meds, err := s.repo.ListMedications(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list medications", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing medications: %w", err)
	}
	return meds, nil
}

// Delete removes one of the caller's medications. A medication owned by
// someone else fails with apperror.ErrForbidden and is left untouched.
func (s *MedicationService) Delete(ctx context.Context, userID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "Medication ID is required.")
	}

	if err := s.repo.DeleteMedication(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info("medication deleted",
		slog.String("id", id),
		slog.String("userID", userID),
	)
	return nil
}
