package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/coerce"
)

// aliases maps every accepted snake_case key to its canonical camelCase
// name. Clients may send either; handlers only ever read the canonical key.
var aliases = map[string]string{
	"user_id":           "userId",
	"food_item":         "foodItem",
	"meal_type":         "mealType",
	"stress_level":      "stressLevel",
	"journal_text":      "journalText",
	"exercise_type":     "exerciseType",
	"calories_burned":   "caloriesBurned",
	"medicine_name":     "medicineName",
	"start_date":        "startDate",
	"end_date":          "endDate",
	"reminder_times":    "reminderTimes",
	"current_week":      "currentWeek",
	"due_date":          "dueDate",
	"last_checkup":      "lastCheckup",
	"next_checkup":      "nextCheckup",
	"medical_history":   "medicalHistory",
	"fitness_goals":     "fitnessGoals",
	"pregnancy_status":  "pregnancyStatus",
	"contact_info":      "contactInfo",
	"emergency_contact": "emergencyContact",
}

// normalizeKeys rewrites alias keys to canonical ones, descending into
// nested objects. When a body carries both forms the canonical key wins
// unless it is null.
func normalizeKeys(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if _, isAlias := aliases[k]; !isAlias {
			out[k] = normalizeValue(v)
		}
	}
	for k, v := range in {
		canonical, isAlias := aliases[k]
		if !isAlias {
			continue
		}
		if existing, clash := out[canonical]; clash && existing != nil {
			continue
		}
		out[canonical] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	if nested, ok := v.(map[string]any); ok {
		return normalizeKeys(nested)
	}
	return v
}

// body is a decoded, normalised JSON object. Its getters coerce loosely:
// "250", 250 and 250.0 all read as the int 250, and a missing or null key
// reads as the zero value.
type body map[string]any

// has reports whether key was sent with a non-null value.
func (b body) has(key string) bool {
	v, ok := b[key]
	return ok && v != nil
}

func (b body) str(key string) string { return coerce.String(b[key]) }
func (b body) integer(key string) int { return coerce.Int(b[key]) }
func (b body) number(key string) float64 { return coerce.Float(b[key]) }
func (b body) flag(key string) bool { return coerce.Bool(b[key]) }
func (b body) list(key string) []string { return coerce.Strings(b[key]) }

func (b body) strPtr(key string) *string {
	if !b.has(key) {
		return nil
	}
	v := b.str(key)
	return &v
}

func (b body) integerPtr(key string) *int {
	if !b.has(key) {
		return nil
	}
	v := b.integer(key)
	return &v
}

func (b body) numberPtr(key string) *float64 {
	if !b.has(key) {
		return nil
	}
	v := b.number(key)
	return &v
}

func (b body) flagPtr(key string) *bool {
	if !b.has(key) {
		return nil
	}
	v := b.flag(key)
	return &v
}

func (b body) listPtr(key string) *[]string {
	if !b.has(key) {
		return nil
	}
	v := b.list(key)
	return &v
}

// object returns a nested object, or an empty one if key is absent or not
// an object.
func (b body) object(key string) body {
	if m, ok := b[key].(map[string]any); ok {
		return body(m)
	}
	return body{}
}

// timestamp reads a timestamp in any accepted input format, in server local
// time. Absent, null and "" read as the zero time; anything else that does
// not parse is a validation error.
func (b body) timestamp(key string) (time.Time, error) {
	if !b.has(key) || strings.TrimSpace(b.str(key)) == "" {
		return time.Time{}, nil
	}
	t, ok := coerce.Time(b[key], time.Local)
	if !ok {
		return time.Time{}, apperror.ValidationFailed(key, fmt.Sprintf("%s must be a valid date or timestamp", key))
	}
	return t, nil
}

// date reads a calendar date as YYYY-MM-DD. Timestamps are reduced to
// their local date; unparseable input is passed through for the service
// to reject.
func (b body) date(key string) string {
	return coerce.Date(b[key], time.Local)
}

func (b body) datePtr(key string) *string {
	if !b.has(key) {
		return nil
	}
	v := b.date(key)
	return &v
}
