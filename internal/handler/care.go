package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/healthtrack/internal/service"
)

type MedicationHandler struct {
	medications *service.MedicationService
	logger      *slog.Logger
}

func NewMedicationHandler(medications *service.MedicationService, logger *slog.Logger) *MedicationHandler {
	return &MedicationHandler{medications: medications, logger: logger}
}

// HandleList serves GET /api/medications.
func (h *MedicationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromQuery(r)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	meds, err := h.medications.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meds)
}

// HandleCreate serves POST /api/medications.
func (h *MedicationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", slog.String("path", r.URL.Path))
		writeError(w, err)
		return
	}
	userID, err := ownerFromBody(r, b)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	med, err := h.medications.Create(r.Context(), service.MedicationInput{
		UserID:        userID,
		MedicineName:  b.str("medicineName"),
		Dosage:        b.str("dosage"),
		Frequency:     b.str("frequency"),
		StartDate:     b.date("startDate"),
		EndDate:       b.date("endDate"),
		ReminderTimes: b.list("reminderTimes"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Medication added successfully.", med.ID)
}

// HandleDelete serves DELETE /api/medications/{id} and
// DELETE /api/medications?id=.
func (h *MedicationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id := idParam(r)
	h.logger.Info("medication delete requested", slog.String("userID", userID), slog.String("id", id))

	if err := h.medications.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Medication deleted successfully.", "")
}

type EmergencyContactHandler struct {
	contacts *service.EmergencyContactService
	logger   *slog.Logger
}

func NewEmergencyContactHandler(contacts *service.EmergencyContactService, logger *slog.Logger) *EmergencyContactHandler {
	return &EmergencyContactHandler{contacts: contacts, logger: logger}
}

// HandleList serves GET /api/emergency.
func (h *EmergencyContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromQuery(r)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	contacts, err := h.contacts.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}

// HandleCreate serves POST /api/emergency.
func (h *EmergencyContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", slog.String("path", r.URL.Path))
		writeError(w, err)
		return
	}
	userID, err := ownerFromBody(r, b)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	contact, err := h.contacts.Create(r.Context(), service.EmergencyContactInput{
		UserID:   userID,
		Name:     b.str("name"),
		Relation: b.str("relation"),
		Phone:    b.str("phone"),
		Location: b.str("location"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Emergency contact added successfully.", contact.ID)
}

// HandleDelete serves DELETE /api/emergency/{id} and DELETE /api/emergency?id=.
func (h *EmergencyContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id := idParam(r)
	h.logger.Info("emergency contact delete requested", slog.String("userID", userID), slog.String("id", id))

	if err := h.contacts.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Emergency contact deleted successfully.", "")
}

// PregnancyHandler serves the single pregnancy record of the caller. The
// service refuses every operation for profiles outside the access policy.
type PregnancyHandler struct {
	pregnancy *service.PregnancyService
	logger    *slog.Logger
}

func NewPregnancyHandler(pregnancy *service.PregnancyService, logger *slog.Logger) *PregnancyHandler {
	return &PregnancyHandler{pregnancy: pregnancy, logger: logger}
}

// HandleGet serves GET /api/pregnancy. A caller without a record gets
// 200 with a JSON null, not 404.
func (h *PregnancyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromQuery(r)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	data, err := h.pregnancy.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	// A nil *PregnancyData encodes as null.
	writeJSON(w, http.StatusOK, data)
}

// HandleCreate serves POST /api/pregnancy. A second create answers 409.
func (h *PregnancyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := h.input(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := h.pregnancy.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Pregnancy data added successfully.", data.ID)
}

// HandleUpdate serves PUT /api/pregnancy. Without a record it answers 404.
func (h *PregnancyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := h.input(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.pregnancy.Update(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Pregnancy data updated successfully.", "")
}

func (h *PregnancyHandler) input(w http.ResponseWriter, r *http.Request) (service.PregnancyInput, error) {
	b, err := decodeBody(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", slog.String("path", r.URL.Path))
		return service.PregnancyInput{}, err
	}
	userID, err := ownerFromBody(r, b)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		return service.PregnancyInput{}, err
	}

	return service.PregnancyInput{
		UserID:      userID,
		CurrentWeek: b.integer("currentWeek"),
		DueDate:     b.datePtr("dueDate"),
		LastCheckup: b.datePtr("lastCheckup"),
		NextCheckup: b.datePtr("nextCheckup"),
		Notes:       b.str("notes"),
	}, nil
}
