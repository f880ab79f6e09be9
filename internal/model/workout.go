package model

import "time"

type Workout struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ExerciseType   string    `json:"exerciseType"`
	Duration       int       `json:"duration"` // minutes
	CaloriesBurned int       `json:"caloriesBurned"`
	Goal           string    `json:"goal"`
	Date           time.Time `json:"date"`
}
