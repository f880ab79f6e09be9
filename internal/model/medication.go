package model

// DateLayout is the calendar-date format used for medication schedules and
// pregnancy checkups.
const DateLayout = "2006-01-02"

// Medication dates are calendar dates (DateLayout), not instants, so they
// stay strings end to end.
type Medication struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	MedicineName  string   `json:"medicineName"`
	Dosage        string   `json:"dosage"`
	Frequency     string   `json:"frequency"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	ReminderTimes []string `json:"reminderTimes"`
}
