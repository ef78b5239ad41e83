package model

import "time"

// DateLayout is the wire and storage format of meal plan dates.
const DateLayout = "2006-01-02"

// MaxMealPlanNameLength is the width of meal_plans.name in characters.
const MaxMealPlanNameLength = 255

// MealPlan schedules a recipe on a calendar date for its owning user.
type MealPlan struct {
	ID          string
	Name        string
	Date        time.Time
	RecipeID    *string
	RecipeTitle *string // joined from recipes on read
	UserID      string
	CreatedAt   time.Time
}

// DisplayName returns the plan name, falling back to a date-based label.
func (m *MealPlan) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return "Meal Plan for " + m.Date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
