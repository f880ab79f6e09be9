package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/healthtrack/internal/service"
)

// Meals, moods and workouts share one shape: POST appends an entry, GET
// lists the caller's entries newest first, optionally only today's.

type MealHandler struct {
	meals  *service.MealService
	logger *slog.Logger
}

func NewMealHandler(meals *service.MealService, logger *slog.Logger) *MealHandler {
	return &MealHandler{meals: meals, logger: logger}
}

// HandleList serves GET /api/meals[?today=1].
func (h *MealHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromQuery(r)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	meals, err := h.meals.List(r.Context(), userID, todayOnly(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meals)
}

// HandleCreate serves POST /api/meals.
func (h *MealHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", slog.String("path", r.URL.Path))
		writeError(w, err)
		return
	}
	userID, err := ownerFromBody(r, b)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}
	date, err := b.timestamp("date")
	if err != nil {
		writeError(w, err)
		return
	}

	meal, err := h.meals.Create(r.Context(), service.MealInput{
		UserID:   userID,
		FoodItem: b.str("foodItem"),
		Calories: b.integer("calories"),
		Protein:  b.number("protein"),
		Carbs:    b.number("carbs"),
		Fats:     b.number("fats"),
		MealType: b.str("mealType"),
		Date:     date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Meal added successfully.", meal.ID)
}

type MoodHandler struct {
	moods  *service.MoodService
	logger *slog.Logger
}

func NewMoodHandler(moods *service.MoodService, logger *slog.Logger) *MoodHandler {
	return &MoodHandler{moods: moods, logger: logger}
}

// HandleList serves GET /api/moods[?today=1]. With today set the result
// holds at most the latest entry.
func (h *MoodHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromQuery(r)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	moods, err := h.moods.List(r.Context(), userID, todayOnly(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, moods)
}

// HandleCreate serves POST /api/moods.
func (h *MoodHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", slog.String("path", r.URL.Path))
		writeError(w, err)
		return
	}
	userID, err := ownerFromBody(r, b)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}
	date, err := b.timestamp("date")
	if err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.moods.Create(r.Context(), service.MoodInput{
		UserID:      userID,
		Mood:        b.str("mood"),
		StressLevel: b.integerPtr("stressLevel"),
		JournalText: b.str("journalText"),
		Date:        date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Mood entry added successfully.", entry.ID)
}

type WorkoutHandler struct {
	workouts *service.WorkoutService
	logger   *slog.Logger
}

func NewWorkoutHandler(workouts *service.WorkoutService, logger *slog.Logger) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts, logger: logger}
}

// HandleList serves GET /api/workouts[?today=1].
func (h *WorkoutHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromQuery(r)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	workouts, err := h.workouts.List(r.Context(), userID, todayOnly(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, workouts)
}

// HandleCreate serves POST /api/workouts.
func (h *WorkoutHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(w, r)
	if err != nil {
		h.logger.Warn("invalid request body", slog.String("path", r.URL.Path))
		writeError(w, err)
		return
	}
	userID, err := ownerFromBody(r, b)
	if err != nil {
		h.logger.Warn("ownership check rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}
	date, err := b.timestamp("date")
	if err != nil {
		writeError(w, err)
		return
	}

	workout, err := h.workouts.Create(r.Context(), service.WorkoutInput{
		UserID:         userID,
		ExerciseType:   b.str("exerciseType"),
		Duration:       b.integer("duration"),
		CaloriesBurned: b.integer("caloriesBurned"),
		Goal:           b.str("goal"),
		Date:           date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Workout added successfully.", workout.ID)
}
