package payslip

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	StatusGenerated  = "generated"
	StatusDownloaded = "downloaded"
)

type Payslip struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_payslips_company_pay_date"`
	PayrollEntryID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_payslips_payroll_entry"`
	PayrollRunID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	PayslipNumber  string     `gorm:"type:varchar(60);not null;uniqueIndex:uq_payslips_number"`
	PayPeriodStart time.Time  `gorm:"type:date;not null"`
	PayPeriodEnd   time.Time  `gorm:"type:date;not null"`
	PayDate        time.Time  `gorm:"type:date;not null;index:idx_payslips_company_pay_date"`
	Status         string     `gorm:"type:varchar(20);not null;default:'generated'"`
	FilePath       string     `gorm:"type:varchar(255)"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
	DownloadedAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PayslipDetail adalah payslip beserta data karyawan dan payroll entry
// yang dibutuhkan untuk list, export dan render PDF.
type PayslipDetail struct {
	Payslip

	EmployeeName        string          `gorm:"column:employee_name"`
	EmployeeNumber      string          `gorm:"column:employee_number"`
	BranchName          string          `gorm:"column:branch_name"`
	DepartmentName      string          `gorm:"column:department_name"`
	PositionName        string          `gorm:"column:position_name"`
	BasicSalary         decimal.Decimal `gorm:"column:basic_salary"`
	TotalEarnings       decimal.Decimal `gorm:"column:total_earnings"`
	TotalDeductions     decimal.Decimal `gorm:"column:total_deductions"`
	NetPay              decimal.Decimal `gorm:"column:net_pay"`
	EarningsBreakdown   datatypes.JSON  `gorm:"column:earnings_breakdown"`
	DeductionsBreakdown datatypes.JSON  `gorm:"column:deductions_breakdown"`
}

func (d PayslipDetail) Earnings() map[string]decimal.Decimal {
	return decodeAmounts(d.EarningsBreakdown)
}

func (d PayslipDetail) Deductions() map[string]decimal.Decimal {
	return decodeAmounts(d.DeductionsBreakdown)
}

// EntrySource adalah payroll entry yang siap dibuatkan payslip.
type EntrySource struct {
	EntryID        uuid.UUID `gorm:"column:entry_id"`
	CompanyID      uuid.UUID `gorm:"column:company_id"`
	PayrollRunID   uuid.UUID `gorm:"column:payroll_run_id"`
	EmployeeID     uuid.UUID `gorm:"column:employee_id"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	PayPeriodStart time.Time `gorm:"column:pay_period_start"`
	PayPeriodEnd   time.Time `gorm:"column:pay_period_end"`
	PayDate        time.Time `gorm:"column:pay_date"`
}

// decodeAmounts membaca breakdown {"label": amount} per entry. Nilai yang
// bukan angka (data lama atau input manual) dihitung nol dan dicatat sebagai
// warning; entry lain tetap dipakai.
func decodeAmounts(raw datatypes.JSON) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	if len(raw) == 0 {
		return out
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		zap.L().Named("payslip.breakdown").Warn("breakdown is not a JSON object", zap.Error(err))
		return out
	}

	for label, value := range entries {
		amount, err := parseAmount(value)
		if err != nil {
			zap.L().Named("payslip.breakdown").Warn("non numeric breakdown amount treated as zero",
				zap.String("label", label),
				zap.ByteString("value", value),
			)
		}
		out[label] = amount
	}
	return out
}

// parseAmount menerima angka JSON, string angka, dan null.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return decimal.Zero, nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal.Zero, err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(str)
		if err != nil {
			return decimal.Zero, err
		}
		return d, nil
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
