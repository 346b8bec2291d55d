package payroll

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	RunStatusDraft     = "draft"
	RunStatusCompleted = "completed"
	RunStatusCancelled = "cancelled"
)

type PayrollRun struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_payroll_runs_company_status"`
	Title          string          `gorm:"type:varchar(150);not null"`
	PayPeriodStart time.Time       `gorm:"type:date;not null"`
	PayPeriodEnd   time.Time       `gorm:"type:date;not null"`
	PayDate        time.Time       `gorm:"type:date;not null;index"`
	Status         string          `gorm:"type:varchar(20);not null;default:'draft';index:idx_payroll_runs_company_status"`
	EntryCount     int             `gorm:"not null;default:0"`
	TotalNetPay    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	CreatedBy      *uuid.UUID      `gorm:"type:uuid"`
	ProcessedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Entries []PayrollEntry `gorm:"foreignKey:PayrollRunID"`
}

// PayrollEntry menyimpan hasil hitung gaji satu karyawan dalam satu run.
// DeductionsBreakdown berisi potongan karyawan dan kontribusi perusahaan
// berawalan "ER_" dalam satu map.
type PayrollEntry struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayrollRunID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_entries_run_employee"`
	EmployeeID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_entries_run_employee"`
	EmployeeName         string          `gorm:"->;-:migration"`
	EmployeeSalaryID     *uuid.UUID      `gorm:"type:uuid"`
	BasicSalary          decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalEarnings        decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalDeductions      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	EmployerContribution decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	NetPay               decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	EarningsBreakdown    datatypes.JSON
	DeductionsBreakdown  datatypes.JSON
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (e PayrollEntry) Earnings() map[string]decimal.Decimal {
	return decodeAmounts(e.EarningsBreakdown)
}

func (e PayrollEntry) Deductions() map[string]decimal.Decimal {
	return decodeAmounts(e.DeductionsBreakdown)
}

func decodeAmounts(raw datatypes.JSON) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]decimal.Decimal{}
	}
	return out
}
