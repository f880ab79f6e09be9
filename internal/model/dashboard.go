package model

// Nutrition is the sum of the macro fields over a set of meals.
type Nutrition struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Dashboard is the read-only summary shown on the home screen.
type Dashboard struct {
	TodayMeals          []Meal         `json:"todayMeals"`
	TodayWorkouts       []Workout      `json:"todayWorkouts"`
	TodayMood           *MoodEntry     `json:"todayMood"`
	Nutrition           Nutrition      `json:"nutrition"`
	UpcomingMedications []Medication   `json:"upcomingMedications"`
	CanAccessPregnancy  bool           `json:"canAccessPregnancy"`
	Pregnancy           *PregnancyData `json:"pregnancy"`
}
