package model

import "time"

// PregnancyData is a per-user singleton. The checkup dates are optional and
// encode as null when unknown.
type PregnancyData struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CurrentWeek int       `json:"currentWeek"`
	DueDate     *string   `json:"dueDate"`
	LastCheckup *string   `json:"lastCheckup"`
	NextCheckup *string   `json:"nextCheckup"`
	Notes       string    `json:"notes"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
