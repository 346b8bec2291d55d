// Package counter memberi nomor urut per perusahaan (nomor karyawan,
// nomor payslip). Nilai berikutnya dihitung di database sehingga aman
// dipakai oleh beberapa instance API sekaligus.
package counter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCounterTypeRequired = errors.New("counter type is required")

type CompanyCounter struct {
	CompanyID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CounterType string    `gorm:"type:varchar(50);primaryKey"`
	LastValue   int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

// Postgres dan sqlite sama-sama mendukung ON CONFLICT ... RETURNING.
const nextValueSQL = `
INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
VALUES (?, ?, 1, CURRENT_TIMESTAMP)
ON CONFLICT (company_id, counter_type) DO UPDATE
SET last_value = company_counters.last_value + 1, updated_at = CURRENT_TIMESTAMP
RETURNING last_value`

type Repository interface {
	// GetNextValue menaikkan counter dan mengembalikan nilai barunya,
	// dimulai dari 1. Nilai yang sudah diambil tidak pernah dipakai ulang.
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	if counterType == "" {
		return 0, ErrCounterTypeRequired
	}

	var next int64
	if err := r.db.WithContext(ctx).Raw(nextValueSQL, companyID, counterType).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("next %s value: %w", counterType, err)
	}
	return next, nil
}
