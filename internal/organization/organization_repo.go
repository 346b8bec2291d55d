package organization

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/txutil"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateDepartment(ctx context.Context, d *Department) error
	ListDepartments(ctx context.Context, companyID string) ([]Department, error)
	FindDepartment(ctx context.Context, companyID, id string) (*Department, error)
	DeleteDepartment(ctx context.Context, companyID, id string) error
	CountPositions(ctx context.Context, companyID, departmentID string) (int64, error)
	CreatePosition(ctx context.Context, p *Position) error
	ListPositions(ctx context.Context, companyID string, filter ListPositionsFilter) ([]Position, error)
	DeletePosition(ctx context.Context, companyID, id string) (int64, error)
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

func (r *repository) CreateDepartment(ctx context.Context, d *Department) error {
	return r.conn(ctx).Create(d).Error
}

func (r *repository) ListDepartments(ctx context.Context, companyID string) ([]Department, error) {
	var depts []Department
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindDepartment(ctx context.Context, companyID, id string) (*Department, error) {
	var d Department
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) DeleteDepartment(ctx context.Context, companyID, id string) error {
	return r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) CountPositions(ctx context.Context, companyID, departmentID string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Position{}).
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreatePosition(ctx context.Context, p *Position) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) ListPositions(ctx context.Context, companyID string, filter ListPositionsFilter) ([]Position, error) {
	db := r.conn(ctx).
		Model(&Position{}).
		Select("positions.*, departments.name AS department_name").
		Joins("LEFT JOIN departments ON departments.id = positions.department_id").
		Scopes(tenant.ScopeTable("positions", companyID))

	if filter.DepartmentID != "" {
		db = db.Where("positions.department_id = ?", filter.DepartmentID)
	}

	var positions []Position
	err := db.Order("positions.name ASC").Find(&positions).Error
	return positions, err
}

func (r *repository) DeletePosition(ctx context.Context, companyID, id string) (int64, error) {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Position{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
