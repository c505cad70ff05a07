package menu

import (
	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/pricing"
	"github.com/avelarq/tableside-backend/pkg/types"
)

func categoryFromModel(record models.Category) types.Category {
	category := types.Category{
		ID:        record.ID.String(),
		Name:      record.Name,
		SortOrder: record.SortOrder,
	}
	if record.Description != nil {
		category.Description = *record.Description
	}
	return category
}

func itemFromModel(record models.MenuItem) types.MenuItem {
	item := types.MenuItem{
		ID:          record.ID.String(),
		Name:        record.Name,
		Description: record.Description,
		Price:       pricing.FromCents(record.PriceCents),
		CategoryID:  record.CategoryID.String(),
		Available:   record.Available,
		Popular:     record.Popular,
		Allergens:   record.Allergens,
		Dietary:     record.Dietary,
	}
	if record.ImageURL != nil {
		item.ImageURL = *record.ImageURL
	}
	for _, mod := range record.Modifiers {
		item.Modifiers = append(item.Modifiers, modifierFromModel(mod))
	}
	return item
}

func modifierFromModel(record models.Modifier) types.Modifier {
	return types.Modifier{
		ID:    record.ID.String(),
		Name:  record.Name,
		Price: pricing.FromCents(record.PriceCents),
		Type:  record.Type,
	}
}

func itemsFromModels(records []models.MenuItem) []types.MenuItem {
	items := make([]types.MenuItem, 0, len(records))
	for _, record := range records {
		items = append(items, itemFromModel(record))
	}
	return items
}
