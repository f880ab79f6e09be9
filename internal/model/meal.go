package model

import "time"

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

type Meal struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	FoodItem string    `json:"foodItem"`
	Calories int       `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fats     float64   `json:"fats"`
	MealType string    `json:"mealType"`
	Date     time.Time `json:"date"`
}
