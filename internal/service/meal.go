package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
	"github.com/sakif/healthtrack/internal/sanitize"
)

// MealService records and lists meals.
type MealService struct {
	repo   repository.MealRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewMealService(repo repository.MealRepository, logger *slog.Logger) *MealService {
	return &MealService{repo: repo, logger: logger, now: time.Now}
}

// MealInput is a meal as submitted by the client. UserID is the
// authenticated caller; a zero Date means now.
type MealInput struct {
	UserID   string    `json:"userId"`
	FoodItem string    `json:"foodItem" validate:"required,max=200"`
	Calories int       `json:"calories" validate:"gte=0"`
	Protein  float64   `json:"protein" validate:"gte=0"`
	Carbs    float64   `json:"carbs" validate:"gte=0"`
	Fats     float64   `json:"fats" validate:"gte=0"`
	MealType string    `json:"mealType" validate:"omitempty,oneof=breakfast lunch dinner snack"`
	Date     time.Time `json:"date"`
}

func (s *MealService) Create(ctx context.Context, in MealInput) (*model.Meal, error) {
	in.FoodItem = sanitize.Text(in.FoodItem)
	in.MealType = strings.ToLower(strings.TrimSpace(in.MealType))

	if err := validateInput(in, "Food item is required."); err != nil {
		return nil, err
	}

	meal := &model.Meal{
		UserID:   in.UserID,
		FoodItem: in.FoodItem,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fats:     in.Fats,
		MealType: in.MealType,
		Date:     in.Date,
	}
	if meal.MealType == "" {
		meal.MealType = model.MealTypeSnack
	}
	if meal.Date.IsZero() {
		meal.Date = s.now()
	}

	if err := s.repo.CreateMeal(ctx, meal); err != nil {
		s.logger.Error("failed to create meal",
			slog.String("userID", in.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating meal: %w", err)
	}

	s.logger.Info("meal created",
		slog.String("id", meal.ID),
		slog.String("userID", meal.UserID),
	)
	return meal, nil
}

// List returns the user's meals, newest first. todayOnly restricts the
// result to the current local calendar day.
func (s *MealService) List(ctx context.Context, userID string, todayOnly bool) ([]model.Meal, error) {
	var opts repository.ListOptions
	if todayOnly {
		opts.From, opts.To = todayRange(s.now())
	}

	meals, err := s.repo.ListMeals(ctx, userID, opts)
	if err != nil {
		s.logger.Error("failed to list meals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing meals: %w", err)
	}
	return meals, nil
}
