// Package model defines the data structures used throughout the application.
package model

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ContactInfo is stored as three flat columns on users but travels as a
// nested object in JSON, which is the shape the web client reads.
type ContactInfo struct {
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
}

// User represents a registered account.
//
// PasswordHash is never serialised: the json:"-" tag keeps it out of every
// response, so handlers can encode a *User directly without building a
// separate projection.
type User struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	PasswordHash    string      `json:"-"`
	Age             int         `json:"age"`
	Gender          string      `json:"gender"`
	Height          float64     `json:"height"` // cm
	Weight          float64     `json:"weight"` // kg
	MedicalHistory  []string    `json:"medicalHistory"`
	FitnessGoals    []string    `json:"fitnessGoals"`
	PregnancyStatus bool        `json:"pregnancyStatus"`
	ContactInfo     ContactInfo `json:"contactInfo"`
	CreatedAt       time.Time   `json:"createdAt"`
}
