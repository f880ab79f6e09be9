package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
	"github.com/sakif/healthtrack/internal/sanitize"
)

type WorkoutService struct {
	repo   repository.WorkoutRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewWorkoutService(repo repository.WorkoutRepository, logger *slog.Logger) *WorkoutService {
	return &WorkoutService{repo: repo, logger: logger, now: time.Now}
}

// WorkoutInput is a workout as submitted. Duration is in minutes.
type WorkoutInput struct {
	UserID         string    `json:"userId"`
	ExerciseType   string    `json:"exerciseType" validate:"required,max=100"`
	Duration       int       `json:"duration" validate:"gte=0"`
	CaloriesBurned int       `json:"caloriesBurned" validate:"gte=0"`
	Goal           string    `json:"goal" validate:"max=500"`
	Date           time.Time `json:"date"`
}

func (s *WorkoutService) Create(ctx context.Context, in WorkoutInput) (*model.Workout, error) {
	in.ExerciseType = sanitize.Text(in.ExerciseType)
	in.Goal = sanitize.Text(in.Goal)

	if err := validateInput(in, "Exercise type is required."); err != nil {
		return nil, err
	}

	workout := &model.Workout{
		UserID:         in.UserID,
		ExerciseType:   in.ExerciseType,
		Duration:       in.Duration,
		CaloriesBurned: in.CaloriesBurned,
		Goal:           in.Goal,
		Date:           in.Date,
	}
	if workout.Date.IsZero() {
		workout.Date = s.now()
	}

	if err := s.repo.CreateWorkout(ctx, workout); err != nil {
		s.logger.Error("failed to create workout",
			slog.String("userID", in.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating workout: %w", err)
	}

	s.logger.Info("workout created",
		slog.String("id", workout.ID),
		slog.String("userID", workout.UserID),
	)
	return workout, nil
}

func (s *WorkoutService) List(ctx context.Context, userID string, todayOnly bool) ([]model.Workout, error) {
	var opts repository.ListOptions
	if todayOnly {
		opts.From, opts.To = todayRange(s.now())
	}

	workouts, err := s.repo.ListWorkouts(ctx, userID, opts)
	if err != nil {
		s.logger.Error("failed to list workouts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	return workouts, nil
}
