package model

import "time"

// DefaultStressLevel is used when a mood entry is logged without one.
const DefaultStressLevel = 5

type MoodEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Mood        string    `json:"mood"`
	StressLevel int       `json:"stressLevel"`
	JournalText string    `json:"journalText"`
	Date        time.Time `json:"date"`
}
