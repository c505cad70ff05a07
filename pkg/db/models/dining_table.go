package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/enums"
)

// DiningTable is a physical table with a QR code bound to its public code.
type DiningTable struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code      string            `gorm:"column:code;not null;uniqueIndex"`
	Status    enums.TableStatus `gorm:"column:status;type:table_status;not null;default:'available'"`
	Capacity  int               `gorm:"column:capacity;not null;default:2"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
