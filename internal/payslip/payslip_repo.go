package payslip

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-payroll/internal/shared/txutil"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

// sortColumns adalah whitelist sort_field yang boleh dipakai client.
var sortColumns = map[string]string{
	"payslip_number":   "payslips.payslip_number",
	"pay_date":         "payslips.pay_date",
	"pay_period_start": "payslips.pay_period_start",
	"pay_period_end":   "payslips.pay_period_end",
	"status":           "payslips.status",
	"created_at":       "payslips.created_at",
	"employee_name":    "employees.full_name",
	"net_pay":          "payroll_entries.net_pay",
}

const defaultOrder = "payslips.pay_date DESC, payslips.created_at DESC"

const detailSelect = `payslips.*,
	employees.full_name AS employee_name,
	employees.employee_number AS employee_number,
	employees.branch AS branch_name,
	departments.name AS department_name,
	positions.name AS position_name,
	payroll_entries.basic_salary AS basic_salary,
	payroll_entries.total_earnings AS total_earnings,
	payroll_entries.total_deductions AS total_deductions,
	payroll_entries.net_pay AS net_pay,
	payroll_entries.earnings_breakdown AS earnings_breakdown,
	payroll_entries.deductions_breakdown AS deductions_breakdown`

// ListQuery adalah filter yang sudah divalidasi service.
type ListQuery struct {
	ListPayslipsFilter
	From    *time.Time
	To      *time.Time
	OrderBy string
	Limit   int
	Offset  int
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	UpdateFilePath(ctx context.Context, companyID, id, path string) error
	MarkDownloaded(ctx context.Context, companyID, id string, at time.Time) error
	ExistsForEntry(ctx context.Context, companyID, entryID string) (bool, error)
	FindPage(ctx context.Context, scope Scope, q ListQuery) ([]PayslipDetail, int64, error)
	FindDetailByID(ctx context.Context, scope Scope, id string) (*PayslipDetail, error)
	FindDetailByEntry(ctx context.Context, companyID, entryID string) (*PayslipDetail, error)
	FindEntrySource(ctx context.Context, companyID, entryID string) (*EntrySource, error)
	FindEntryIDsByRun(ctx context.Context, companyID, runID string) ([]string, error)
	RunExists(ctx context.Context, companyID, runID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txutil.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) UpdateFilePath(ctx context.Context, companyID, id, path string) error {
	return r.conn(ctx).
		Model(&Payslip{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(map[string]any{"file_path": path, "updated_at": time.Now().UTC()}).Error
}

func (r *repository) MarkDownloaded(ctx context.Context, companyID, id string, at time.Time) error {
	return r.conn(ctx).
		Model(&Payslip{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(map[string]any{"status": StatusDownloaded, "downloaded_at": at, "updated_at": at}).Error
}

func (r *repository) ExistsForEntry(ctx context.Context, companyID, entryID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Payslip{}).
		Where("company_id = ? AND payroll_entry_id = ?", companyID, entryID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) details(ctx context.Context, scope Scope) *gorm.DB {
	db := r.conn(ctx).
		Model(&Payslip{}).
		Joins("LEFT JOIN employees ON employees.id = payslips.employee_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Joins("LEFT JOIN positions ON positions.id = employees.position_id").
		Joins("LEFT JOIN payroll_entries ON payroll_entries.id = payslips.payroll_entry_id").
		Scopes(tenant.ScopeTable("payslips", scope.CompanyID))

	if !scope.ReadAny {
		db = db.Where("payslips.employee_id = ?", scope.EmployeeID)
	}
	return db
}

func applyFilter(db *gorm.DB, q ListQuery) *gorm.DB {
	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		like := "%" + search + "%"
		db = db.Where("(LOWER(payslips.payslip_number) LIKE ? OR LOWER(employees.full_name) LIKE ?)", like, like)
	}
	if isSet(q.EmployeeID) {
		db = db.Where("payslips.employee_id = ?", q.EmployeeID)
	}
	if isSet(q.Status) {
		db = db.Where("payslips.status = ?", q.Status)
	}
	if q.From != nil {
		db = db.Where("payslips.pay_period_start >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("payslips.pay_period_end <= ?", *q.To)
	}
	if isSet(q.PayrollRunID) {
		db = db.Where("payslips.payroll_run_id = ?", q.PayrollRunID)
	}
	if isSet(q.Branch) {
		db = db.Where("employees.branch = ?", q.Branch)
	}
	if isSet(q.Department) {
		db = db.Where("employees.department_id = ?", q.Department)
	}
	if isSet(q.Designation) {
		db = db.Where("employees.position_id = ?", q.Designation)
	}
	return db
}

// isSet: kosong dan "all" berarti filter tidak dipakai.
func isSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "all")
}

// FindPage mengembalikan data sesuai filter dan total sebelum limit.
// Limit 0 berarti semua baris (dipakai export).
func (r *repository) FindPage(ctx context.Context, scope Scope, q ListQuery) ([]PayslipDetail, int64, error) {
	var total int64
	if err := applyFilter(r.details(ctx, scope), q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := q.OrderBy
	if order == "" {
		order = defaultOrder
	}

	db := applyFilter(r.details(ctx, scope), q).Select(detailSelect).Order(order)
	if q.Limit > 0 {
		db = db.Limit(q.Limit).Offset(q.Offset)
	}

	var rows []PayslipDetail
	if err := db.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) FindDetailByID(ctx context.Context, scope Scope, id string) (*PayslipDetail, error) {
	var rows []PayslipDetail
	err := r.details(ctx, scope).
		Select(detailSelect).
		Where("payslips.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) FindDetailByEntry(ctx context.Context, companyID, entryID string) (*PayslipDetail, error) {
	var rows []PayslipDetail
	err := r.details(ctx, Scope{CompanyID: companyID, ReadAny: true}).
		Select(detailSelect).
		Where("payslips.payroll_entry_id = ?", entryID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) FindEntrySource(ctx context.Context, companyID, entryID string) (*EntrySource, error) {
	var rows []EntrySource
	err := r.conn(ctx).
		Table("payroll_entries").
		Select(`payroll_entries.id AS entry_id,
			payroll_entries.company_id,
			payroll_entries.payroll_run_id,
			payroll_entries.employee_id,
			employees.employee_number,
			payroll_runs.pay_period_start,
			payroll_runs.pay_period_end,
			payroll_runs.pay_date`).
		Joins("JOIN payroll_runs ON payroll_runs.id = payroll_entries.payroll_run_id").
		Joins("LEFT JOIN employees ON employees.id = payroll_entries.employee_id").
		Where("payroll_entries.company_id = ? AND payroll_entries.id = ?", companyID, entryID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) FindEntryIDsByRun(ctx context.Context, companyID, runID string) ([]string, error) {
	var ids []string
	err := r.conn(ctx).
		Table("payroll_entries").
		Where("company_id = ? AND payroll_run_id = ?", companyID, runID).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) RunExists(ctx context.Context, companyID, runID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("payroll_runs").
		Where("company_id = ? AND id = ?", companyID, runID).
		Count(&count).Error
	return count > 0, err
}
