package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelarq/tableside-backend/pkg/db/models"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
)

// Repository defines read access to the menu catalog tables.
type Repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListItems(ctx context.Context) ([]models.MenuItem, error)
	ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.MenuItem, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	SearchItems(ctx context.Context, query string) ([]models.MenuItem, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var records []models.Category
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	var records []models.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Modifiers").
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.MenuItem, error) {
	var records []models.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Modifiers").
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var record models.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Modifiers").
		Where("id = ?", id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) SearchItems(ctx context.Context, query string) ([]models.MenuItem, error) {
	var records []models.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Modifiers").
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", "%"+query+"%", "%"+query+"%").
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
