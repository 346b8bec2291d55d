package salarycomponent

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeEarning   = "earning"
	TypeDeduction = "deduction"

	CalculationFixed      = "fixed"
	CalculationPercentage = "percentage"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type SalaryComponent struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_salary_components_company_status" json:"company_id"`
	Name              string          `gorm:"type:varchar(120);not null" json:"name"`
	Description       *string         `gorm:"type:text" json:"description,omitempty"`
	Type              string          `gorm:"type:varchar(20);not null" json:"type"`
	CalculationType   string          `gorm:"type:varchar(20);not null;default:'fixed'" json:"calculation_type"`
	DefaultAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"default_amount"`
	PercentageOfBasic decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0" json:"percentage_of_basic"`
	Status            string          `gorm:"type:varchar(20);not null;default:'active';index:idx_salary_components_company_status" json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CalculateAmount menghitung nilai default komponen terhadap gaji pokok.
func (c SalaryComponent) CalculateAmount(basic decimal.Decimal) decimal.Decimal {
	if c.CalculationType == CalculationPercentage {
		return basic.Mul(c.PercentageOfBasic).Div(decimal.NewFromInt(100))
	}
	return c.DefaultAmount
}

func (c SalaryComponent) IsEarning() bool {
	return c.Type == TypeEarning
}

func (c SalaryComponent) IsDeduction() bool {
	return c.Type == TypeDeduction
}
