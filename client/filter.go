package client

import (
	"strings"

	"github.com/user/recipebook-go/recipes"
)

// DefaultImageURL is shown for recipes without an image of their own.
const DefaultImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c"

// FilterRecipes computes the visible subset of list for a free-text term and
// an optional category:
//
//   - the term matches case-insensitively against title and description by
//     substring containment; an empty term matches everything;
//   - a non-empty category must equal the recipe's category exactly (the
//     category match is deliberately case-sensitive, unlike the text search);
//   - a recipe is included iff both hold.
//
// The result is a fresh slice; list is never mutated.
func FilterRecipes(list []recipes.Recipe, term, category string) []recipes.Recipe {
	term = strings.ToLower(term)

	filtered := make([]recipes.Recipe, 0, len(list))
	for _, r := range list {
		matchesSearch := strings.Contains(strings.ToLower(r.Title), term) ||
			strings.Contains(strings.ToLower(r.Description), term)
		matchesCategory := category == "" || r.Category == category
		if matchesSearch && matchesCategory {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ImageURL returns the recipe's image, falling back to DefaultImageURL when
// none is set.
func ImageURL(r recipes.Recipe) string {
	if r.ImageURL == "" {
		return DefaultImageURL
	}
	return r.ImageURL
}

// DifficultyClass returns the CSS badge class for a difficulty label. The
// label is lowercased for styling only; the stored value is untouched.
func DifficultyClass(r recipes.Recipe) string {
	return "difficulty-" + strings.ToLower(r.Difficulty)
}
