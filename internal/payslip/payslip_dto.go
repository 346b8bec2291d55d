package payslip

import "github.com/shopspring/decimal"

// Scope menentukan payslip mana yang boleh dilihat pemanggil.
// ReadAny = seluruh company, selain itu hanya milik EmployeeID.
type Scope struct {
	CompanyID  string
	EmployeeID string
	ReadAny    bool
}

// visible false berarti pemanggil tidak punya akses sama sekali.
func (s Scope) visible() bool {
	return s.CompanyID != "" && (s.ReadAny || s.EmployeeID != "")
}

type GenerateRequest struct {
	PayrollEntryIDs []string `json:"payroll_entry_ids" binding:"required,min=1,dive,uuid"`
}

type BulkGenerateRequest struct {
	PayrollRunID string `json:"payroll_run_id" binding:"required,uuid"`
}

type GenerationResult struct {
	GeneratedCount int      `json:"generated_count"`
	SkippedCount   int      `json:"skipped_count"`
	Errors         []string `json:"errors"`
}

type BulkGenerateAccepted struct {
	PayrollRunID string `json:"payroll_run_id"`
	RequestID    string `json:"request_id"`
	Status       string `json:"status"`
}

type ListPayslipsFilter struct {
	Search        string `form:"search"`
	EmployeeID    string `form:"employee_id"`
	Status        string `form:"status"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
	PayrollRunID  string `form:"payroll_run_id"`
	Branch        string `form:"branch"`
	Department    string `form:"department"`
	Designation   string `form:"designation"`
	SortField     string `form:"sort_field"`
	SortDirection string `form:"sort_direction"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

type PayslipResponse struct {
	ID             string          `json:"id"`
	PayslipNumber  string          `json:"payslip_number"`
	PayrollEntryID string          `json:"payroll_entry_id"`
	PayrollRunID   string          `json:"payroll_run_id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	Branch         string          `json:"branch,omitempty"`
	Department     string          `json:"department,omitempty"`
	Position       string          `json:"position,omitempty"`
	PayPeriodStart string          `json:"pay_period_start"`
	PayPeriodEnd   string          `json:"pay_period_end"`
	PayDate        string          `json:"pay_date"`
	Status         string          `json:"status"`
	BasicSalary    decimal.Decimal `json:"basic_salary"`
	NetPay         decimal.Decimal `json:"net_pay"`
	HasFile        bool            `json:"has_file"`
	DownloadedAt   *string         `json:"downloaded_at,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

type PayslipPage struct {
	Items   []PayslipResponse
	Total   int64
	Page    int
	PerPage int
}

// ExportFile adalah hasil export siap kirim ke client.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
