package types

import "github.com/avelarq/tableside-backend/pkg/enums"

// MenuItem is catalog reference data. It is owned by the menu service and
// read-only everywhere else.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	CategoryID  string          `json:"category_id"`
	Available   bool            `json:"available"`
	Popular     bool            `json:"popular,omitempty"`
	Allergens   []string        `json:"allergens,omitempty"`
	Modifiers   []Modifier      `json:"modifiers,omitempty"`
	Dietary     map[string]bool `json:"dietary,omitempty"`
}

// Modifier is a priced option scoped to exactly one menu item's modifier
// list. Membership is enforced by the order validator, not the type system.
type Modifier struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Price float64            `json:"price"`
	Type  enums.ModifierType `json:"type"`
}

// Category groups menu items for display.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
}
