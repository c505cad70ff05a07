package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/types"
)

// BrowseFilter narrows the menu served to a guest.
type BrowseFilter struct {
	CategoryID       string
	Query            string
	ExcludeAllergens []string
	IncludeSoldOut   bool
}

// Service defines catalog read operations for ordering clients.
type Service interface {
	Categories(ctx context.Context) ([]types.Category, error)
	Browse(ctx context.Context, filter BrowseFilter) ([]types.MenuItem, error)
	BrowseGrouped(ctx context.Context, filter BrowseFilter) (Grouped, error)
	Item(ctx context.Context, id string) (*types.MenuItem, error)
}

type service struct {
	repo Repository
}

// ServiceParams wires the menu service dependencies.
type ServiceParams struct {
	Repo Repository
}

// NewService builds a catalog service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Categories(ctx context.Context) ([]types.Category, error) {
	records, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]types.Category, 0, len(records))
	for _, record := range records {
		categories = append(categories, categoryFromModel(record))
	}
	return categories, nil
}

func (s *service) Browse(ctx context.Context, filter BrowseFilter) ([]types.MenuItem, error) {
	items, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	if !filter.IncludeSoldOut {
		items = AvailableItems(items)
	}
	return FilterByDietaryRestrictions(items, filter.ExcludeAllergens), nil
}

func (s *service) BrowseGrouped(ctx context.Context, filter BrowseFilter) (Grouped, error) {
	items, err := s.Browse(ctx, filter)
	if err != nil {
		return Grouped{}, err
	}
	return GroupByCategory(items), nil
}

func (s *service) Item(ctx context.Context, id string) (*types.MenuItem, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid menu item id")
	}
	record, err := s.repo.FindItemByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	item := itemFromModel(*record)
	return &item, nil
}

func (s *service) load(ctx context.Context, filter BrowseFilter) ([]types.MenuItem, error) {
	if query := strings.TrimSpace(filter.Query); query != "" {
		records, err := s.repo.SearchItems(ctx, query)
		if err != nil {
			return nil, err
		}
		return itemsFromModels(records), nil
	}
	if filter.CategoryID != "" {
		categoryID, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id")
		}
		records, err := s.repo.ListItemsByCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		return itemsFromModels(records), nil
	}
	records, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return itemsFromModels(records), nil
}
