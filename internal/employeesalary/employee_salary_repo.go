package employeesalary

import (
	"context"
	"database/sql"
	"strings"

	"go-payroll/internal/shared/txutil"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

const salarySelect = "employee_salaries.*, employees.full_name AS employee_name"

const employeeJoin = "LEFT JOIN employees ON employees.id = employee_salaries.employee_id"

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, salary *EmployeeSalary) error
	FindAllByCompany(ctx context.Context, companyID string, filter ListEmployeeSalariesFilter) ([]EmployeeSalary, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error)
	FindActiveByEmployee(ctx context.Context, companyID string, employeeID string) (*EmployeeSalary, error)
	FindActiveByCompany(ctx context.Context, companyID string) ([]EmployeeSalary, error)
	ExistsForEmployee(ctx context.Context, companyID string, employeeID string) (bool, error)
	Update(ctx context.Context, salary *EmployeeSalary) error
	DeactivateOthers(ctx context.Context, companyID string, employeeID string, keepID string) error
	Delete(ctx context.Context, companyID string, id string) error
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

func (r *repository) scoped(ctx context.Context, companyID string) *gorm.DB {
	return r.conn(ctx).
		Model(&EmployeeSalary{}).
		Select(salarySelect).
		Joins(employeeJoin).
		Scopes(tenant.ScopeTable("employee_salaries", companyID))
}

func (r *repository) Create(ctx context.Context, salary *EmployeeSalary) error {
	return r.conn(ctx).Omit("EmployeeName").Create(salary).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListEmployeeSalariesFilter) ([]EmployeeSalary, error) {
	var salaries []EmployeeSalary
	db := r.scoped(ctx, companyID)

	if filter.EmployeeID != "" {
		db = db.Where("employee_salaries.employee_id = ?", filter.EmployeeID)
	}
	switch filter.Status {
	case "active":
		db = db.Where("employee_salaries.is_active = ?", true)
	case "inactive":
		db = db.Where("employee_salaries.is_active = ?", false)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		db = db.Where("LOWER(employees.full_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	err := db.Order("employee_salaries.created_at DESC").Find(&salaries).Error
	return salaries, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.scoped(ctx, companyID).
		Where("employee_salaries.id = ?", id).
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

func (r *repository) FindActiveByEmployee(ctx context.Context, companyID string, employeeID string) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.scoped(ctx, companyID).
		Where("employee_salaries.employee_id = ? AND employee_salaries.is_active = ?", employeeID, true).
		Order("employee_salaries.updated_at DESC").
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) ([]EmployeeSalary, error) {
	var salaries []EmployeeSalary
	err := r.scoped(ctx, companyID).
		Where("employee_salaries.is_active = ?", true).
		Order("employees.full_name ASC").
		Find(&salaries).Error
	return salaries, err
}

func (r *repository) ExistsForEmployee(ctx context.Context, companyID string, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&EmployeeSalary{}).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, salary *EmployeeSalary) error {
	return r.conn(ctx).
		Model(&EmployeeSalary{}).
		Where("id = ? AND company_id = ?", salary.ID, salary.CompanyID).
		Updates(map[string]interface{}{
			"basic_salary": salary.BasicSalary,
			"components":   salary.Components,
			"is_active":    salary.IsActive,
			"notes":        salary.Notes,
		}).Error
}

// DeactivateOthers menonaktifkan semua gaji karyawan selain keepID.
func (r *repository) DeactivateOthers(ctx context.Context, companyID string, employeeID string, keepID string) error {
	return r.conn(ctx).
		Model(&EmployeeSalary{}).
		Where("company_id = ? AND employee_id = ? AND id <> ? AND is_active = ?", companyID, employeeID, keepID, true).
		Update("is_active", false).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.conn(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&EmployeeSalary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
