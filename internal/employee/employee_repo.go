package employee

import (
	"context"
	"database/sql"
	"strings"

	"go-payroll/internal/shared/txutil"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"name":            "employees.full_name",
	"employee_number": "employees.employee_number",
	"email":           "employees.email",
	"hire_date":       "employees.hire_date",
	"branch":          "employees.branch",
}

const detailSelect = "employees.*, departments.name AS department_name, positions.name AS position_name"

type ListQuery struct {
	Search       string
	Branch       string
	DepartmentID string
	OrderBy      string
	Limit        int
	Offset       int
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindPage(ctx context.Context, companyID string, q ListQuery) ([]Employee, int64, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	GetDepartmentIDByPosition(ctx context.Context, companyID, positionID string) (string, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, companyID string, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txutil.Conn(ctx, r.db, r.tx)
}

func (r *repository) details(ctx context.Context, companyID string) *gorm.DB {
	return r.conn(ctx).
		Model(&Employee{}).
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Joins("LEFT JOIN positions ON positions.id = employees.position_id").
		Scopes(tenant.ScopeTable("employees", companyID))
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindPage(ctx context.Context, companyID string, q ListQuery) ([]Employee, int64, error) {
	db := r.details(ctx, companyID)

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("(LOWER(employees.full_name) LIKE ? OR LOWER(employees.email) LIKE ? OR LOWER(employees.employee_number) LIKE ?)", like, like, like)
	}
	if q.Branch != "" {
		db = db.Where("employees.branch = ?", q.Branch)
	}
	if q.DepartmentID != "" {
		db = db.Where("employees.department_id = ?", q.DepartmentID)
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.OrderBy == "" {
		q.OrderBy = "employees.full_name ASC"
	}
	db = db.Select(detailSelect).Order(q.OrderBy)
	if q.Limit > 0 {
		db = db.Limit(q.Limit).Offset(q.Offset)
	}

	var employees []Employee
	err := db.Find(&employees).Error
	return employees, total, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.conn(ctx).
		Select("id", "employee_number", "full_name").
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.details(ctx, companyID).
		Select(detailSelect).
		Where("employees.id = ?", id).
		Take(&empl).Error
	return &empl, err
}

func (r *repository) GetDepartmentIDByPosition(ctx context.Context, companyID, positionID string) (string, error) {
	var departmentID string
	err := r.conn(ctx).
		Table("positions").
		Select("department_id").
		Where("id = ?", positionID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Scan(&departmentID).Error
	return departmentID, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) (int64, error) {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
