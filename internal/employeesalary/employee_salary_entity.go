package employeesalary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type EmployeeSalary struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;index" json:"company_id"`
	EmployeeID   uuid.UUID       `gorm:"type:uuid;index" json:"employee_id"`
	EmployeeName string          `gorm:"->;-:migration" json:"employee_name,omitempty"`
	BasicSalary  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"basic_salary"`
	Components   datatypes.JSON  `json:"components"`
	IsActive     bool            `gorm:"not null;default:false" json:"is_active"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}

// Selections mem-parse kolom components. Data rusak dianggap tanpa komponen.
func (e EmployeeSalary) Selections() []ComponentSelection {
	selections, err := ParseSelections(e.Components)
	if err != nil {
		return nil
	}
	return selections
}
