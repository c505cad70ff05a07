package orders

import (
	"strings"
	"testing"

	"github.com/avelarq/tableside-backend/pkg/types"
)

func availableItem() *types.MenuItem {
	return &types.MenuItem{
		ID:        "6a6f8f0a-3f20-4f3c-9f37-1f0c8b1f2a01",
		Name:      "House Salad",
		Price:     9.5,
		Available: true,
		Modifiers: []types.Modifier{
			{ID: "mod-ranch", Name: "Ranch Dressing", Price: 0.5},
			{ID: "mod-chicken", Name: "Grilled Chicken", Price: 4},
		},
	}
}

func TestValidateCartItem_Valid(t *testing.T) {
	result := ValidateCartItem(types.CartItem{
		ID:       "line-1",
		MenuItem: availableItem(),
		Quantity: 2,
		SelectedModifiers: []types.Modifier{
			{ID: "mod-ranch", Name: "Ranch Dressing", Price: 0.5},
		},
	})
	if !result.Valid {
		t.Fatalf("expected valid, got errors %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
}

func TestValidateCartItem_MissingMenuItemShortCircuits(t *testing.T) {
	result := ValidateCartItem(types.CartItem{ID: "line-1", Quantity: 0})
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Menu item is required" {
		t.Fatalf("expected only the missing-menu-item error, got %v", result.Errors)
	}
}

func TestValidateCartItem_Unavailable(t *testing.T) {
	item := availableItem()
	item.Name = "Sold Out Item"
	item.Available = false
	result := ValidateCartItem(types.CartItem{MenuItem: item, Quantity: 1})
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !containsError(result.Errors, "Sold Out Item is currently unavailable") {
		t.Fatalf("expected unavailability error, got %v", result.Errors)
	}
}

func TestValidateCartItem_QuantityBounds(t *testing.T) {
	low := ValidateCartItem(types.CartItem{MenuItem: availableItem(), Quantity: 0})
	if !containsError(low.Errors, "Quantity must be at least 1") {
		t.Fatalf("expected minimum quantity error, got %v", low.Errors)
	}

	high := ValidateCartItem(types.CartItem{MenuItem: availableItem(), Quantity: 100})
	if !containsError(high.Errors, "Quantity cannot exceed 99") {
		t.Fatalf("expected maximum quantity error, got %v", high.Errors)
	}

	edge := ValidateCartItem(types.CartItem{MenuItem: availableItem(), Quantity: 99})
	if !edge.Valid {
		t.Fatalf("expected 99 to be accepted, got %v", edge.Errors)
	}
}

func TestValidateCartItem_ForeignModifier(t *testing.T) {
	result := ValidateCartItem(types.CartItem{
		MenuItem: availableItem(),
		Quantity: 1,
		SelectedModifiers: []types.Modifier{
			{ID: "mod-truffle", Name: "Truffle Oil", Price: 3},
		},
	})
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !containsError(result.Errors, "Invalid modifier: Truffle Oil") {
		t.Fatalf("expected invalid modifier error, got %v", result.Errors)
	}
}

func TestValidateCartItem_AccumulatesAllErrors(t *testing.T) {
	item := availableItem()
	item.Available = false
	result := ValidateCartItem(types.CartItem{
		MenuItem: item,
		Quantity: 0,
		SelectedModifiers: []types.Modifier{
			{ID: "mod-unknown", Name: "Mystery Topping"},
		},
	})
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 accumulated errors, got %v", result.Errors)
	}
}

func TestValidateCart_Empty(t *testing.T) {
	result := ValidateCart(nil)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !containsError(result.Errors, "Cart is empty") {
		t.Fatalf("expected empty-cart error, got %v", result.Errors)
	}
}

func TestValidateCart_ConcatenatesItemErrors(t *testing.T) {
	unavailable := availableItem()
	unavailable.Name = "86'd Special"
	unavailable.Available = false
	result := ValidateCart([]types.CartItem{
		{MenuItem: availableItem(), Quantity: 1},
		{MenuItem: unavailable, Quantity: 0},
	})
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
}

func TestValidateOrder(t *testing.T) {
	valid := ValidateOrder(OrderDraft{
		TableID: "table-12",
		Items:   []types.CartItem{{MenuItem: availableItem(), Quantity: 1}},
	})
	if !valid.Valid {
		t.Fatalf("expected valid draft, got %v", valid.Errors)
	}

	missingTable := ValidateOrder(OrderDraft{
		Items: []types.CartItem{{MenuItem: availableItem(), Quantity: 1}},
	})
	if !containsError(missingTable.Errors, "Table ID is required") {
		t.Fatalf("expected table id error, got %v", missingTable.Errors)
	}

	empty := ValidateOrder(OrderDraft{TableID: "table-12"})
	if !containsError(empty.Errors, "Order must contain at least one item") {
		t.Fatalf("expected empty order error, got %v", empty.Errors)
	}

	negativeTip := -2.5
	badTip := ValidateOrder(OrderDraft{
		TableID: "table-12",
		Items:   []types.CartItem{{MenuItem: availableItem(), Quantity: 1}},
		Tip:     &negativeTip,
	})
	if !containsError(badTip.Errors, "Tip cannot be negative") {
		t.Fatalf("expected tip error, got %v", badTip.Errors)
	}

	zeroTip := 0.0
	okTip := ValidateOrder(OrderDraft{
		TableID: "table-12",
		Items:   []types.CartItem{{MenuItem: availableItem(), Quantity: 1}},
		Tip:     &zeroTip,
	})
	if !okTip.Valid {
		t.Fatalf("expected zero tip to be valid, got %v", okTip.Errors)
	}
}

func TestValidateOrder_AccumulatesAcrossChecks(t *testing.T) {
	negativeTip := -1.0
	result := ValidateOrder(OrderDraft{Tip: &negativeTip})
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors (table, items, tip), got %v", result.Errors)
	}
}

func containsError(errs []string, want string) bool {
	for _, err := range errs {
		if strings.Contains(err, want) {
			return true
		}
	}
	return false
}
