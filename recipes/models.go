// Package recipes provides read-only access to the recipe catalog.
// Recipes are owned and mutated by external tooling; this module only lists
// them, newest first.
package recipes

import "time"

// Recipe represents a catalog entry as stored and as served over the API.
type Recipe struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CookingTime string    `json:"cooking_time"`
	Servings    int       `json:"servings"`
	Difficulty  string    `json:"difficulty"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}
