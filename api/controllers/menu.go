package controllers

import (
	"net/http"
	"strings"

	"github.com/avelarq/tableside-backend/api/responses"
	"github.com/avelarq/tableside-backend/api/validators"
	menusvc "github.com/avelarq/tableside-backend/internal/menu"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/logger"
)

// MenuCategories lists active categories in display order.
func MenuCategories(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

// MenuBrowse serves the filtered menu. Passing grouped=true returns items
// bucketed by category in stable display order.
func MenuBrowse(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		filter, grouped, err := browseFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if grouped {
			result, err := svc.BrowseGrouped(r.Context(), filter)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, result)
			return
		}

		items, err := svc.Browse(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// MenuItem serves a single menu item with its modifiers.
func MenuItem(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Item(r.Context(), id.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func browseFilterFromQuery(r *http.Request) (menusvc.BrowseFilter, bool, error) {
	includeSoldOut, err := validators.ParseQueryBool(r, "include_sold_out", false)
	if err != nil {
		return menusvc.BrowseFilter{}, false, err
	}
	grouped, err := validators.ParseQueryBool(r, "grouped", false)
	if err != nil {
		return menusvc.BrowseFilter{}, false, err
	}

	var allergens []string
	if raw := strings.TrimSpace(r.URL.Query().Get("exclude_allergens")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				allergens = append(allergens, trimmed)
			}
		}
	}

	filter := menusvc.BrowseFilter{
		CategoryID:       validators.SanitizeString(r.URL.Query().Get("category_id"), 64),
		Query:            validators.SanitizeString(r.URL.Query().Get("q"), 128),
		ExcludeAllergens: allergens,
		IncludeSoldOut:   includeSoldOut,
	}
	return filter, grouped, nil
}
