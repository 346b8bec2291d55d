package salarycomponent

import (
	"context"
	"database/sql"
	"strings"

	"go-payroll/internal/shared/txutil"
	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_component_repo.go -destination=mock/salary_component_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, component *SalaryComponent) error
	FindAllByCompany(ctx context.Context, companyID string, filter ListSalaryComponentsFilter) ([]SalaryComponent, error)
	FindActiveByCompany(ctx context.Context, companyID string) ([]SalaryComponent, error)
	FindActiveByIDs(ctx context.Context, companyID string, ids []string) ([]SalaryComponent, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryComponent, error)
	Update(ctx context.Context, component *SalaryComponent) error
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

func (r *repository) Create(ctx context.Context, component *SalaryComponent) error {
	return r.conn(ctx).Create(component).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListSalaryComponentsFilter) ([]SalaryComponent, error) {
	var components []SalaryComponent
	db := r.conn(ctx).Scopes(tenant.Scope(companyID))

	if filter.Type != "" && filter.Type != "all" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.Status != "" && filter.Status != "all" {
		db = db.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	err := db.Order("type ASC, name ASC").Find(&components).Error
	return components, err
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusActive).
		Order("name ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) FindActiveByIDs(ctx context.Context, companyID string, ids []string) ([]SalaryComponent, error) {
	if len(ids) == 0 {
		return []SalaryComponent{}, nil
	}

	var components []SalaryComponent
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusActive).
		Where("id IN ?", ids).
		Find(&components).Error
	return components, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryComponent, error) {
	var component SalaryComponent
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&component, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *repository) Update(ctx context.Context, component *SalaryComponent) error {
	return r.conn(ctx).Save(component).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	result := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&SalaryComponent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
