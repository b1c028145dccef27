package handlers

import (
	"strings"

	"onna/internal/models"
)

// filterClasses narrows a fetched class page by a free-text query matched
// case-insensitively against title, description, category and location. An
// empty query returns the input unchanged.
func filterClasses(classes []models.Class, query string) []models.Class {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return classes
	}

	matched := make([]models.Class, 0, len(classes))
	for _, c := range classes {
		if classMatches(c, query) {
			matched = append(matched, c)
		}
	}
	return matched
}

func classMatches(c models.Class, query string) bool {
	for _, field := range []string{c.Title, c.Description, c.Category, c.Location} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
