package payroll

import "github.com/shopspring/decimal"

type CreatePayrollRunRequest struct {
	Title          string `json:"title" binding:"required,max=150"`
	PayPeriodStart string `json:"pay_period_start" binding:"required"`
	PayPeriodEnd   string `json:"pay_period_end" binding:"required"`
	PayDate        string `json:"pay_date" binding:"required"`
}

type ListPayrollRunsFilter struct {
	Status string `form:"status"`
	Search string `form:"search"`
}

type PayrollRunResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	PayPeriodStart string          `json:"pay_period_start"`
	PayPeriodEnd   string          `json:"pay_period_end"`
	PayDate        string          `json:"pay_date"`
	Status         string          `json:"status"`
	EntryCount     int             `json:"entry_count"`
	TotalNetPay    decimal.Decimal `json:"total_net_pay"`
	ProcessedAt    *string         `json:"processed_at,omitempty"`
}

type PayrollEntryResponse struct {
	ID                   string                     `json:"id"`
	PayrollRunID         string                     `json:"payroll_run_id"`
	EmployeeID           string                     `json:"employee_id"`
	EmployeeName         string                     `json:"employee_name,omitempty"`
	BasicSalary          decimal.Decimal            `json:"basic_salary"`
	TotalEarnings        decimal.Decimal            `json:"total_earnings"`
	TotalDeductions      decimal.Decimal            `json:"total_deductions"`
	EmployerContribution decimal.Decimal            `json:"employer_contribution"`
	NetPay               decimal.Decimal            `json:"net_pay"`
	EarningsBreakdown    map[string]decimal.Decimal `json:"earnings_breakdown"`
	DeductionsBreakdown  map[string]decimal.Decimal `json:"deductions_breakdown"`
}
