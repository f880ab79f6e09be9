package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/xid"
	"github.com/sakif/healthtrack/internal/coerce"
	"github.com/sakif/healthtrack/internal/model"
	"github.com/sakif/healthtrack/internal/repository"
)

var _ repository.MealRepository = (*DB)(nil)

// CreateMeal inserts a meal and assigns its ID. The date is stored in UTC
// at second precision, and meal.Date is updated to match what was stored.
func (db *DB) CreateMeal(ctx context.Context, meal *model.Meal) error {
	id := xid.New().String()
	date := formatTime(meal.Date)

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO meals (id, user_id, food_item, calories, protein, carbs, fats, meal_type, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		meal.UserID,
		meal.FoodItem,
		meal.Calories,
		meal.Protein,
		meal.Carbs,
		meal.Fats,
		meal.MealType,
		date,
	)
	if err != nil {
		return ownerInsertError("meal", meal.UserID, err)
	}

	meal.ID = id
	meal.Date = parseTime(date)
	return nil
}

// ListMeals returns the user's meals, newest first.
func (db *DB) ListMeals(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Meal, error) {
	where, args := ownedRange(userID, opts)
	query := `SELECT id, user_id, food_item, calories, protein, carbs, fats, meal_type, date
		FROM meals WHERE ` + where + ` ORDER BY date DESC, id DESC` + limitClause(opts)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing meals: %w", err)
	}
	defer rows.Close()

	meals := []model.Meal{}
	for rows.Next() {
		var (
			m                              model.Meal
			calories, protein, carbs, fats any
			date                           any
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.FoodItem, &calories, &protein, &carbs, &fats, &m.MealType, &date); err != nil {
			return nil, fmt.Errorf("sqlite: scanning meal row: %w", err)
		}
		m.Calories = coerce.Int(calories)
		m.Protein = coerce.Float(protein)
		m.Carbs = coerce.Float(carbs)
		m.Fats = coerce.Float(fats)
		m.Date = parseTime(date)
		meals = append(meals, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating meal rows: %w", err)
	}

	return meals, nil
}

// ownedRange builds the WHERE clause shared by the time-series listings:
// always scoped to one user, optionally to [From, To).
func ownedRange(userID string, opts repository.ListOptions) (string, []any) {
	clauses := []string{"user_id = ?"}
	args := []any{userID}

	if !opts.From.IsZero() {
		clauses = append(clauses, "date >= ?")
		args = append(args, formatTime(opts.From))
	}
	if !opts.To.IsZero() {
		clauses = append(clauses, "date < ?")
		args = append(args, formatTime(opts.To))
	}

	return strings.Join(clauses, " AND "), args
}

func limitClause(opts repository.ListOptions) string {
	if opts.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", opts.Limit)
}
