package organization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department dan Position dipakai sebagai filter laporan payslip
// (department, designation) dan referensi data karyawan.
type Department struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"size:255;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Position struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	DepartmentID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	DepartmentName string         `gorm:"->;-:migration"`
	Name           string         `gorm:"size:255;not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
