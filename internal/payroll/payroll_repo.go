package payroll

import (
	"context"
	"database/sql"
	"strings"

	"go-payroll/internal/shared/txutil"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entryBatchSize = 200

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRun(ctx context.Context, run *PayrollRun) error
	FindRunsByCompany(ctx context.Context, companyID string, filter ListPayrollRunsFilter) ([]PayrollRun, error)
	FindRunByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRun, error)
	LockRunForUpdate(ctx context.Context, companyID string, id string) (*PayrollRun, error)
	UpdateRun(ctx context.Context, run *PayrollRun) error
	DeleteRun(ctx context.Context, companyID string, id string) error
	ReplaceEntries(ctx context.Context, companyID string, runID string, entries []PayrollEntry) error
	FindEntriesByRun(ctx context.Context, companyID string, runID string) ([]PayrollEntry, error)
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

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return r.conn(ctx).Omit(clause.Associations).Create(run).Error
}

func (r *repository) FindRunsByCompany(ctx context.Context, companyID string, filter ListPayrollRunsFilter) ([]PayrollRun, error) {
	var runs []PayrollRun
	db := r.conn(ctx).Scopes(tenant.Scope(companyID))

	if filter.Status != "" && filter.Status != "all" {
		db = db.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	err := db.Order("pay_date DESC, created_at DESC").Find(&runs).Error
	return runs, err
}

func (r *repository) FindRunByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// LockRunForUpdate dipakai di dalam transaksi agar dua proses tidak
// memproses run yang sama bersamaan.
func (r *repository) LockRunForUpdate(ctx context.Context, companyID string, id string) (*PayrollRun, error) {
	var run PayrollRun
	db := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if r.db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := db.First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) UpdateRun(ctx context.Context, run *PayrollRun) error {
	return r.conn(ctx).Omit(clause.Associations).Save(run).Error
}

func (r *repository) DeleteRun(ctx context.Context, companyID string, id string) error {
	if err := r.conn(ctx).
		Where("payroll_run_id = ? AND company_id = ?", id, companyID).
		Delete(&PayrollEntry{}).Error; err != nil {
		return err
	}

	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PayrollRun{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ReplaceEntries(ctx context.Context, companyID string, runID string, entries []PayrollEntry) error {
	if err := r.conn(ctx).
		Where("payroll_run_id = ? AND company_id = ?", runID, companyID).
		Delete(&PayrollEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return r.conn(ctx).Omit("EmployeeName").CreateInBatches(entries, entryBatchSize).Error
}

func (r *repository) FindEntriesByRun(ctx context.Context, companyID string, runID string) ([]PayrollEntry, error) {
	var entries []PayrollEntry
	err := r.conn(ctx).
		Model(&PayrollEntry{}).
		Select("payroll_entries.*, employees.full_name AS employee_name").
		Joins("LEFT JOIN employees ON employees.id = payroll_entries.employee_id").
		Where("payroll_entries.company_id = ? AND payroll_entries.payroll_run_id = ?", companyID, runID).
		Order("employees.full_name ASC").
		Find(&entries).Error
	return entries, err
}
