package orders

import (
	"fmt"

	"github.com/avelarq/tableside-backend/pkg/types"
)

const (
	minItemQuantity = 1
	maxItemQuantity = 99
)

// ValidationResult accumulates business-rule violations. It is a value, not
// an error: an invalid cart is an expected outcome the caller surfaces to
// the guest, never a thrown failure.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func newValidationResult(errors []string) ValidationResult {
	return ValidationResult{Valid: len(errors) == 0, Errors: errors}
}

// OrderDraft is the pre-submission shape of an order checked by
// ValidateOrder. Tip is optional; nil means no tip selected yet.
type OrderDraft struct {
	TableID string
	Items   []types.CartItem
	Tip     *float64
}

// ValidateCartItem checks one cart line against the catalog rules. A
// missing menu item short-circuits; every other check accumulates.
func ValidateCartItem(item types.CartItem) ValidationResult {
	var errs []string

	if item.MenuItem == nil {
		errs = append(errs, "Menu item is required")
		return newValidationResult(errs)
	}

	if !item.MenuItem.Available {
		errs = append(errs, fmt.Sprintf("%s is currently unavailable", item.MenuItem.Name))
	}

	if item.Quantity < minItemQuantity {
		errs = append(errs, "Quantity must be at least 1")
	}

	if item.Quantity > maxItemQuantity {
		errs = append(errs, "Quantity cannot exceed 99")
	}

	validModifierIDs := make(map[string]struct{}, len(item.MenuItem.Modifiers))
	for _, modifier := range item.MenuItem.Modifiers {
		validModifierIDs[modifier.ID] = struct{}{}
	}
	for _, selected := range item.SelectedModifiers {
		if _, ok := validModifierIDs[selected.ID]; !ok {
			errs = append(errs, fmt.Sprintf("Invalid modifier: %s", selected.Name))
		}
	}

	return newValidationResult(errs)
}

// ValidateCart checks every item in the cart. An empty cart short-circuits.
func ValidateCart(items []types.CartItem) ValidationResult {
	if len(items) == 0 {
		return newValidationResult([]string{"Cart is empty"})
	}

	var errs []string
	for _, item := range items {
		errs = append(errs, ValidateCartItem(item).Errors...)
	}
	return newValidationResult(errs)
}

// ValidateOrder checks a draft before submission. All applicable checks
// accumulate into one error list.
func ValidateOrder(draft OrderDraft) ValidationResult {
	var errs []string

	if draft.TableID == "" {
		errs = append(errs, "Table ID is required")
	}

	if len(draft.Items) == 0 {
		errs = append(errs, "Order must contain at least one item")
	} else {
		errs = append(errs, ValidateCart(draft.Items).Errors...)
	}

	if draft.Tip != nil && *draft.Tip < 0 {
		errs = append(errs, "Tip cannot be negative")
	}

	return newValidationResult(errs)
}
