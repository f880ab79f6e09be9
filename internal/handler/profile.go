package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/service"
)

type ProfileHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewProfileHandler(users *service.UserService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, logger: logger}
}

// ProfileResponse is the body of a successful profile update.
type ProfileResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// HandleGet returns the caller's profile.
//
// HTTP: GET /api/user/profile
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleUpdate edits the caller's profile. Only the keys present in the
// body change.
//
// HTTP: PUT /api/user/profile
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := decodeBody(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", slog.String("path", r.URL.Path))
		writeError(w, err)
		return
	}

	contact := b.object("contactInfo")
	user, err := h.users.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		ID:               b.str("id"),
		Name:             b.strPtr("name"),
		Age:              b.integerPtr("age"),
		Gender:           b.strPtr("gender"),
		Height:           b.numberPtr("height"),
		Weight:           b.numberPtr("weight"),
		MedicalHistory:   b.listPtr("medicalHistory"),
		FitnessGoals:     b.listPtr("fitnessGoals"),
		PregnancyStatus:  b.flagPtr("pregnancyStatus"),
		Phone:            contact.strPtr("phone"),
		Address:          contact.strPtr("address"),
		EmergencyContact: contact.strPtr("emergencyContact"),
	})
	if err != nil {
		if errors.Is(err, apperror.ErrForbidden) {
			h.logger.Warn("profile update for another user rejected", slog.String("userID", userID))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{Message: "Profile updated successfully.", User: user})
}
