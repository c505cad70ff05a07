package tables

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/enums"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
)

// Repository defines persistence operations for dining tables.
type Repository interface {
	FindTableByCode(ctx context.Context, code string) (*models.DiningTable, error)
	FindTableByID(ctx context.Context, id uuid.UUID) (*models.DiningTable, error)
	ListTables(ctx context.Context) ([]models.DiningTable, error)
	UpdateTableStatus(ctx context.Context, id uuid.UUID, status enums.TableStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tables repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindTableByCode(ctx context.Context, code string) (*models.DiningTable, error) {
	var table models.DiningTable
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *repository) FindTableByID(ctx context.Context, id uuid.UUID) (*models.DiningTable, error) {
	var table models.DiningTable
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *repository) ListTables(ctx context.Context) ([]models.DiningTable, error) {
	var records []models.DiningTable
	err := r.db.WithContext(ctx).Order("code ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) UpdateTableStatus(ctx context.Context, id uuid.UUID, status enums.TableStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.DiningTable{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
	}
	return nil
}
