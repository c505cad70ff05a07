package menu

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/db/models"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
)

type stubMenuRepo struct {
	categories []models.Category
	items      []models.MenuItem

	searchCalls   []string
	categoryCalls []uuid.UUID
}

func (s *stubMenuRepo) ListCategories(context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubMenuRepo) ListItems(context.Context) ([]models.MenuItem, error) {
	return s.items, nil
}

func (s *stubMenuRepo) ListItemsByCategory(_ context.Context, categoryID uuid.UUID) ([]models.MenuItem, error) {
	s.categoryCalls = append(s.categoryCalls, categoryID)
	var out []models.MenuItem
	for _, item := range s.items {
		if item.CategoryID == categoryID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubMenuRepo) FindItemByID(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	for _, item := range s.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
}

func (s *stubMenuRepo) SearchItems(_ context.Context, query string) ([]models.MenuItem, error) {
	s.searchCalls = append(s.searchCalls, query)
	return s.items, nil
}

func TestBrowse_DropsSoldOutAndAllergenMatches(t *testing.T) {
	categoryID := uuid.New()
	repo := &stubMenuRepo{
		items: []models.MenuItem{
			{ID: uuid.New(), CategoryID: categoryID, Name: "Burger", PriceCents: 1250, Available: true},
			{ID: uuid.New(), CategoryID: categoryID, Name: "Sold Out Item", PriceCents: 900, Available: false},
			{ID: uuid.New(), CategoryID: categoryID, Name: "Pasta", PriceCents: 1400, Available: true, Allergens: []string{"gluten"}},
		},
	}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := svc.Browse(context.Background(), BrowseFilter{ExcludeAllergens: []string{"GLUTEN"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Burger" {
		t.Fatalf("expected only Burger to survive filters, got %v", items)
	}
	if items[0].Price != 12.50 {
		t.Fatalf("expected price converted to dollars, got %v", items[0].Price)
	}
}

func TestBrowse_QueryTakesPrecedenceOverCategory(t *testing.T) {
	repo := &stubMenuRepo{}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Browse(context.Background(), BrowseFilter{Query: "  burger ", CategoryID: uuid.NewString()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.searchCalls) != 1 || repo.searchCalls[0] != "burger" {
		t.Fatalf("expected trimmed search call, got %v", repo.searchCalls)
	}
	if len(repo.categoryCalls) != 0 {
		t.Fatalf("category listing should not run when a query is set")
	}
}

func TestBrowse_InvalidCategoryID(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubMenuRepo{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Browse(context.Background(), BrowseFilter{CategoryID: "not-a-uuid"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestItem_InvalidID(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubMenuRepo{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Item(context.Background(), "nope")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBrowseGrouped(t *testing.T) {
	mains := uuid.New()
	drinks := uuid.New()
	repo := &stubMenuRepo{
		items: []models.MenuItem{
			{ID: uuid.New(), CategoryID: mains, Name: "Burger", Available: true},
			{ID: uuid.New(), CategoryID: drinks, Name: "Cola", Available: true},
			{ID: uuid.New(), CategoryID: mains, Name: "Steak", Available: true},
		},
	}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grouped, err := svc.BrowseGrouped(context.Background(), BrowseFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grouped.CategoryOrder) != 2 {
		t.Fatalf("expected two categories, got %v", grouped.CategoryOrder)
	}
	if len(grouped.ByCategory[mains.String()]) != 2 {
		t.Fatalf("expected two mains, got %v", grouped.ByCategory[mains.String()])
	}
}
