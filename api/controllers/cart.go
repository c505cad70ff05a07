package controllers

import (
	"net/http"

	"github.com/avelarq/tableside-backend/api/middleware"
	"github.com/avelarq/tableside-backend/api/responses"
	"github.com/avelarq/tableside-backend/api/validators"
	cartsvc "github.com/avelarq/tableside-backend/internal/cart"
	menusvc "github.com/avelarq/tableside-backend/internal/menu"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/logger"
	"github.com/avelarq/tableside-backend/pkg/types"
)

type cartResponse struct {
	Items     []types.CartItem `json:"items"`
	TableID   *string          `json:"table_id"`
	Subtotal  float64          `json:"subtotal"`
	Tax       float64          `json:"tax"`
	Total     float64          `json:"total"`
	ItemCount int              `json:"item_count"`
}

func newCartResponse(store *cartsvc.Store) cartResponse {
	return cartResponse{
		Items:     store.Items(),
		TableID:   store.TableID(),
		Subtotal:  store.Subtotal(),
		Tax:       store.Tax(),
		Total:     store.Total(),
		ItemCount: store.ItemCount(),
	}
}

// sessionStore resolves the caller's cart and binds it to the session's
// table the first time it is touched.
func sessionStore(r *http.Request, carts *cartsvc.Manager) (*cartsvc.Store, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing")
	}

	store := carts.StoreFor(r.Context(), sessionID)
	if store.TableID() == nil {
		if tableID := middleware.TableIDFromContext(r.Context()); tableID != "" {
			store.SetTableID(r.Context(), &tableID)
		}
	}
	return store, nil
}

// CartView returns the cart with totals recomputed from current state.
func CartView(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(store))
	}
}

type addCartItemRequest struct {
	MenuItemID          string   `json:"menu_item_id" validate:"required,uuid"`
	Quantity            int      `json:"quantity" validate:"required,min=1,max=99"`
	ModifierIDs         []string `json:"modifier_ids"`
	SpecialInstructions string   `json:"special_instructions" validate:"max=500"`
}

// CartAddItem appends a line to the cart. Repeated adds of the same item
// stay separate lines so each can carry its own modifiers.
func CartAddItem(carts *cartsvc.Manager, menu menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil || menu == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart dependencies unavailable"))
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		menuItem, err := menu.Item(r.Context(), payload.MenuItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !menuItem.Available {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "menu item is sold out"))
			return
		}

		modifiers, err := resolveModifiers(menuItem, payload.ModifierIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		instructions := validators.SanitizeString(payload.SpecialInstructions, 500)
		store.AddItem(r.Context(), menuItem, payload.Quantity, modifiers, instructions)

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(store))
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"max=99"`
}

// CartUpdateQuantity sets a line's quantity. Zero or below removes the line.
func CartUpdateQuantity(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := validators.ParseUUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.UpdateQuantity(r.Context(), itemID.String(), payload.Quantity)
		responses.WriteSuccess(w, newCartResponse(store))
	}
}

// CartRemoveItem drops a line from the cart. Unknown ids are a no-op.
func CartRemoveItem(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := validators.ParseUUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.RemoveItem(r.Context(), itemID.String())
		responses.WriteSuccess(w, newCartResponse(store))
	}
}

// CartClear empties the cart but keeps the table binding so the guest can
// keep ordering.
func CartClear(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.ClearCart(r.Context())
		responses.WriteSuccess(w, newCartResponse(store))
	}
}

func resolveModifiers(menuItem *types.MenuItem, modifierIDs []string) ([]types.Modifier, error) {
	if len(modifierIDs) == 0 {
		return nil, nil
	}

	byID := make(map[string]types.Modifier, len(menuItem.Modifiers))
	for _, modifier := range menuItem.Modifiers {
		byID[modifier.ID] = modifier
	}

	resolved := make([]types.Modifier, 0, len(modifierIDs))
	for _, id := range modifierIDs {
		modifier, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "modifier does not belong to menu item").WithDetails(map[string]any{"modifier_id": id})
		}
		resolved = append(resolved, modifier)
	}
	return resolved, nil
}
