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

type EmergencyContactService struct {
	repo   repository.EmergencyContactRepository
	logger *slog.Logger
}

func NewEmergencyContactService(repo repository.EmergencyContactRepository, logger *slog.Logger) *EmergencyContactService {
	return &EmergencyContactService{repo: repo, logger: logger}
}

type EmergencyContactInput struct {
	UserID   string `json:"userId"`
	Name     string `json:"name" validate:"required,max=100"`
	Relation string `json:"relation" validate:"max=50"`
	Phone    string `json:"phone" validate:"max=30"`
	Location string `json:"location" validate:"max=200"`
}

func (s *EmergencyContactService) Create(ctx context.Context, in EmergencyContactInput) (*model.EmergencyContact, error) {
	contact := &model.EmergencyContact{
		UserID:   in.UserID,
		Name:     sanitize.Text(in.Name),
		Relation: sanitize.Text(in.Relation),
		Phone:    sanitize.Text(in.Phone),
		Location: sanitize.Text(in.Location),
	}

	in.Name, in.Relation, in.Phone, in.Location = contact.Name, contact.Relation, contact.Phone, contact.Location
	if err := validateInput(in, "Contact name is required."); err != nil {
		return nil, err
	}

	if err := s.repo.CreateEmergencyContact(ctx, contact); err != nil {
		s.logger.Error("failed to create emergency contact",
			slog.String("userID", in.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating emergency contact: %w", err)
	}

	s.logger.Info("emergency contact created",
		slog.String("id", contact.ID),
		slog.String("userID", contact.UserID),
	)
	return contact, nil
}

// List returns the user's contacts in alphabetical order.
func (s *EmergencyContactService) List(ctx context.Context, userID string) ([]model.EmergencyContact, error) {
	contacts, err := s.repo.ListEmergencyContacts(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list emergency contacts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing emergency contacts: %w", err)
	}
	return contacts, nil
}

func (s *EmergencyContactService) Delete(ctx context.Context, userID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "Contact ID is required.")
	}

	if err := s.repo.DeleteEmergencyContact(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info("emergency contact deleted",
		slog.String("id", id),
		slog.String("userID", userID),
	)
	return nil
}
