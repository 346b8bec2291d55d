package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPermanent = "permanent"
	StatusContract  = "contract"
	StatusProbation = "probation"
)

// Employee adalah sumber nama, nomor karyawan, branch, department dan
// position yang ditampilkan di payslip dan laporan payroll.
type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_employee_number,priority:1"`
	EmployeeNumber   string     `gorm:"size:50;not null;uniqueIndex:uq_employee_number,priority:2"`
	FullName         string     `gorm:"size:255;not null"`
	Email            string     `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Branch           string     `gorm:"size:100"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid;index"`
	PositionID       *uuid.UUID `gorm:"type:uuid;index"`
	HireDate         time.Time  `gorm:"type:date"`
	EmploymentStatus string     `gorm:"size:20;not null;default:permanent"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	DepartmentName string `gorm:"->;-:migration"`
	PositionName   string `gorm:"->;-:migration"`
}
