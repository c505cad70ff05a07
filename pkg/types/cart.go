package types

// CartItem is one line entry in a cart. IDs are unique within a cart;
// repeated adds of the same menu item produce distinct entries.
type CartItem struct {
	ID                  string     `json:"id"`
	MenuItem            *MenuItem  `json:"menu_item"`
	Quantity            int        `json:"quantity"`
	SelectedModifiers   []Modifier `json:"selected_modifiers,omitempty"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`

	// TotalPrice is a display snapshot taken at add/update time. The
	// canonical amount is always recomputed from the menu item, modifiers
	// and quantity; this field is refreshed on every mutation.
	TotalPrice float64 `json:"total_price"`
}

// CartSnapshot is the persisted shape of a cart session: items and table
// binding only. Derived totals are never persisted so pricing-rule changes
// cannot leave stale amounts behind.
type CartSnapshot struct {
	Items   []CartItem `json:"items"`
	TableID *string    `json:"table_id"`
}
