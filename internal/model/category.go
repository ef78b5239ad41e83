package model

import "time"

// Category groups recipes. Recipes hold an optional reference to one.
type Category struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultCategory is a seed entry for a fresh installation.
type DefaultCategory struct {
	Name        string
	Description string
}

// DefaultCategories is the starter set loaded by `recipectl seed categories`.
var DefaultCategories = []DefaultCategory{
	{Name: "Breakfast", Description: "Morning meals to start your day"},
	{Name: "Lunch", Description: "Midday meals"},
	{Name: "Dinner", Description: "Evening meals"},
	{Name: "Dessert", Description: "Sweet treats"},
	{Name: "Snacks", Description: "Quick bites between meals"},
	{Name: "Drinks", Description: "Beverages of all kinds"},
}

// MaxCategoryNameLength is the width of categories.name in characters.
const MaxCategoryNameLength = 100
