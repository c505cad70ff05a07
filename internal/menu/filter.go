package menu

import (
	"strings"

	"github.com/avelarq/tableside-backend/pkg/types"
)

// HasMatchingAllergens intersects the item's allergen tags with the
// caller-supplied list, case-insensitively. The returned subset keeps
// the item's original casing.
func HasMatchingAllergens(item types.MenuItem, userAllergens []string) []string {
	if len(item.Allergens) == 0 || len(userAllergens) == 0 {
		return nil
	}

	lookup := make(map[string]struct{}, len(userAllergens))
	for _, allergen := range userAllergens {
		lookup[strings.ToLower(allergen)] = struct{}{}
	}

	var matches []string
	for _, allergen := range item.Allergens {
		if _, ok := lookup[strings.ToLower(allergen)]; ok {
			matches = append(matches, allergen)
		}
	}
	return matches
}

// FilterByDietaryRestrictions drops items with any allergen matching the
// exclusion list. An empty exclusion list returns the input unchanged.
func FilterByDietaryRestrictions(items []types.MenuItem, excludeAllergens []string) []types.MenuItem {
	if len(excludeAllergens) == 0 {
		return items
	}

	filtered := make([]types.MenuItem, 0, len(items))
	for _, item := range items {
		if len(HasMatchingAllergens(item, excludeAllergens)) == 0 {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// AvailableItems keeps only items currently marked available.
func AvailableItems(items []types.MenuItem) []types.MenuItem {
	available := make([]types.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Available {
			available = append(available, item)
		}
	}
	return available
}

// GroupByCategory buckets items by category id, preserving the input
// order within each bucket. CategoryOrder lists category ids in first
// appearance order so callers can render groups deterministically.
type Grouped struct {
	ByCategory    map[string][]types.MenuItem
	CategoryOrder []string
}

func GroupByCategory(items []types.MenuItem) Grouped {
	grouped := Grouped{ByCategory: make(map[string][]types.MenuItem)}
	for _, item := range items {
		if _, seen := grouped.ByCategory[item.CategoryID]; !seen {
			grouped.CategoryOrder = append(grouped.CategoryOrder, item.CategoryID)
		}
		grouped.ByCategory[item.CategoryID] = append(grouped.ByCategory[item.CategoryID], item)
	}
	return grouped
}
