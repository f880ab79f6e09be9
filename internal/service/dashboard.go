package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/policy"
	"github.com/sakif/healthtrack/internal/repository"
)

// upcomingMedicationCount is how many medications the dashboard shows.
const upcomingMedicationCount = 3

// DashboardService assembles the home-screen summary from the per-resource
// repositories. It only reads.
type DashboardService struct {
	users       repository.UserRepository
	meals       repository.MealRepository
	moods       repository.MoodRepository
	workouts    repository.WorkoutRepository
	medications repository.MedicationRepository
	pregnancy   repository.PregnancyRepository
	logger      *slog.Logger
	now         func() time.Time
}

// DashboardRepos groups the repositories the dashboard reads from. The
// SQLite *DB satisfies all of them.
type DashboardRepos struct {
	Users       repository.UserRepository
	Meals       repository.MealRepository
	Moods       repository.MoodRepository
	Workouts    repository.WorkoutRepository
	Medications repository.MedicationRepository
	Pregnancy   repository.PregnancyRepository
}

func NewDashboardService(r DashboardRepos, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		users:       r.Users,
		meals:       r.Meals,
		moods:       r.Moods,
		workouts:    r.Workouts,
		medications: r.Medications,
		pregnancy:   r.Pregnancy,
		logger:      logger,
		now:         time.Now,
	}
}

// Summary returns today's meals, workouts and latest mood, the nutrition
// totals over today's meals, the first few medications, and the pregnancy
// record when the policy allows it.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*model.Dashboard, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, s.fail(userID, "getting user", err)
	}

	var today repository.ListOptions
	today.From, today.To = todayRange(s.now())

	meals, err := s.meals.ListMeals(ctx, userID, today)
	if err != nil {
		return nil, s.fail(userID, "listing meals", err)
	}
	workouts, err := s.workouts.ListWorkouts(ctx, userID, today)
	if err != nil {
		return nil, s.fail(userID, "listing workouts", err)
	}

	latest := today
	latest.Limit = 1
	moods, err := s.moods.ListMoods(ctx, userID, latest)
	if err != nil {
		return nil, s.fail(userID, "listing moods", err)
	}

	meds, err := s.medications.ListMedications(ctx, userID)
	if err != nil {
		return nil, s.fail(userID, "listing medications", err)
	}
	if len(meds) > upcomingMedicationCount {
		meds = meds[:upcomingMedicationCount]
	}

	d := &model.Dashboard{
		TodayMeals:          meals,
		TodayWorkouts:       workouts,
		Nutrition:           SumNutrition(meals),
		UpcomingMedications: meds,
		CanAccessPregnancy:  policy.CanAccessPregnancySection(user),
	}
	if len(moods) > 0 {
		d.TodayMood = &moods[0]
	}
	if d.CanAccessPregnancy {
		d.Pregnancy, err = s.pregnancy.GetPregnancy(ctx, userID)
		if err != nil {
			return nil, s.fail(userID, "getting pregnancy data", err)
		}
	}

	return d, nil
}

// fail logs a storage failure and wraps it with the step that failed.
func (s *DashboardService) fail(userID, step string, err error) error {
	s.logger.Error("failed to build dashboard",
		slog.String("userID", userID),
		slog.String("step", step),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("dashboard: %s: %w", step, err)
}

// SumNutrition totals the macro fields of meals.
func SumNutrition(meals []model.Meal) model.Nutrition {
	var n model.Nutrition
	for _, m := range meals {
		n.Calories += m.Calories
		n.Protein += m.Protein
		n.Carbs += m.Carbs
		n.Fats += m.Fats
	}
	return n
}
