package employeesalary

import (
	"context"
	"database/sql"
	"errors"

	employeesalaryerrors "go-payroll/internal/employeesalary/errors"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ComponentCatalog menyediakan komponen gaji aktif milik company.
type ComponentCatalog interface {
	FindActive(ctx context.Context, companyID string, ids []string) ([]salarycomponent.SalaryComponent, error)
}

// CalculatedSalary adalah gaji aktif beserta hasil perhitungannya.
type CalculatedSalary struct {
	Salary    EmployeeSalary
	Breakdown Breakdown
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListEmployeeSalariesFilter) ([]EmployeeSalaryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error)
	GetActiveByEmployee(ctx context.Context, companyID, employeeID string) (EmployeeSalaryResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	ToggleStatus(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	CalculatePayroll(ctx context.Context, companyID, id string) (PayrollPreviewResponse, error)
	CalculateActive(ctx context.Context, companyID string) ([]CalculatedSalary, error)
	CreateDefault(ctx context.Context, companyID, employeeID string) (bool, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	catalog ComponentCatalog
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, catalog ComponentCatalog, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		catalog: catalog,
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeSalaryRequest,
) (EmployeeSalaryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}

	basic, components, err := s.validateInput(ctx, companyID, req.BasicSalary, req.Components)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	salary := &EmployeeSalary{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		BasicSalary: basic,
		Components:  components,
		IsActive:    isActive,
		Notes:       req.Notes,
	}
	if actor, err := uuid.Parse(contextutil.GetUserID(ctx)); err == nil {
		salary.CreatedBy = &actor
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee salary begin tx failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, salary); err != nil {
		log.Error("create employee salary persist failed", zap.Error(err))
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}
	if salary.IsActive {
		if err := qtx.DeactivateOthers(ctx, companyID, req.EmployeeID, salary.ID.String()); err != nil {
			return EmployeeSalaryResponse{}, mapRepositoryError(err)
		}
	}

	saved, err := qtx.FindByIDAndCompany(ctx, companyID, salary.ID.String())
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee salary commit failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}

	log.Info("employee salary created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("salary_id", salary.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*saved), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter ListEmployeeSalariesFilter,
) ([]EmployeeSalaryResponse, error) {
	salaries, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get employee salaries failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]EmployeeSalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapToResponse(salary)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error) {
	salary, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*salary), nil
}

func (s *service) GetActiveByEmployee(ctx context.Context, companyID, employeeID string) (EmployeeSalaryResponse, error) {
	salary, err := s.repo.FindActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(mapRepositoryError(err), employeesalaryerrors.ErrSalaryNotFound) {
			return EmployeeSalaryResponse{}, employeesalaryerrors.ErrNoActiveSalary
		}
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*salary), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeSalaryRequest,
) (EmployeeSalaryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	basic, components, err := s.validateInput(ctx, companyID, req.BasicSalary, req.Components)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee salary begin tx failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	salary, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	salary.BasicSalary = basic
	salary.Components = components
	salary.Notes = req.Notes
	if req.IsActive != nil {
		salary.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, salary); err != nil {
		log.Error("update employee salary persist failed", zap.Error(err))
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}
	if salary.IsActive {
		if err := qtx.DeactivateOthers(ctx, companyID, salary.EmployeeID.String(), salary.ID.String()); err != nil {
			return EmployeeSalaryResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	return mapToResponse(*salary), nil
}

func (s *service) ToggleStatus(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	salary, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	salary.IsActive = !salary.IsActive
	if err := qtx.Update(ctx, salary); err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}
	if salary.IsActive {
		if err := qtx.DeactivateOthers(ctx, companyID, salary.EmployeeID.String(), salary.ID.String()); err != nil {
			return EmployeeSalaryResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("employee salary status toggled",
		zap.String("salary_id", id),
		zap.Bool("is_active", salary.IsActive),
	)

	return mapToResponse(*salary), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func (s *service) CalculatePayroll(ctx context.Context, companyID, id string) (PayrollPreviewResponse, error) {
	salary, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollPreviewResponse{}, mapRepositoryError(err)
	}

	selections := salary.Selections()
	catalog, err := s.catalog.FindActive(ctx, companyID, SelectionIDs(selections))
	if err != nil {
		return PayrollPreviewResponse{}, err
	}

	breakdown := Calculate(salary.BasicSalary, selections, catalog)
	s.warnSkipped(ctx, *salary, breakdown)

	return PayrollPreviewResponse{
		SalaryID:     salary.ID.String(),
		EmployeeID:   salary.EmployeeID.String(),
		EmployeeName: salary.EmployeeName,
		Breakdown:    breakdown,
	}, nil
}

// CalculateActive menghitung breakdown untuk semua gaji aktif di company.
// Katalog komponen diambil sekali untuk gabungan semua id yang dipilih.
func (s *service) CalculateActive(ctx context.Context, companyID string) ([]CalculatedSalary, error) {
	salaries, err := s.repo.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if len(salaries) == 0 {
		return []CalculatedSalary{}, nil
	}

	selectionsBySalary := make([][]ComponentSelection, len(salaries))
	seen := map[string]struct{}{}
	ids := make([]string, 0)
	for i, salary := range salaries {
		selectionsBySalary[i] = salary.Selections()
		for _, id := range SelectionIDs(selectionsBySalary[i]) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	catalog, err := s.catalog.FindActive(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}

	result := make([]CalculatedSalary, len(salaries))
	for i, salary := range salaries {
		breakdown := Calculate(salary.BasicSalary, selectionsBySalary[i], catalog)
		s.warnSkipped(ctx, salary, breakdown)
		result[i] = CalculatedSalary{Salary: salary, Breakdown: breakdown}
	}
	return result, nil
}

// CreateDefault membuat record gaji nonaktif bernilai nol untuk karyawan baru.
// Mengembalikan false bila karyawan sudah punya record gaji.
func (s *service) CreateDefault(ctx context.Context, companyID, employeeID string) (bool, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return false, employeesalaryerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return false, employeesalaryerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsForEmployee(ctx, companyID, employeeID)
	if err != nil {
		return false, mapRepositoryError(err)
	}
	if exists {
		return false, nil
	}

	components, _ := MarshalSelections(nil)
	err = qtx.Create(ctx, &EmployeeSalary{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		BasicSalary: decimal.Zero,
		Components:  components,
		IsActive:    false,
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeesalaryerrors.ErrSalaryAlreadyExists) {
			return false, nil
		}
		return false, mapped
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) validateInput(
	ctx context.Context,
	companyID string,
	basic *decimal.Decimal,
	selections []ComponentSelection,
) (decimal.Decimal, []byte, error) {
	if basic == nil || basic.IsNegative() {
		return decimal.Zero, nil, employeesalaryerrors.ErrNegativeBasicSalary
	}

	selections = dedupeSelections(selections)
	for _, sel := range selections {
		if _, err := uuid.Parse(sel.ComponentID); err != nil {
			return decimal.Zero, nil, employeesalaryerrors.ErrInvalidComponents
		}
		if sel.CustomAmount != nil && sel.CustomAmount.IsNegative() {
			return decimal.Zero, nil, employeesalaryerrors.ErrInvalidComponents
		}
		if sel.CustomPercentage != nil && (sel.CustomPercentage.IsNegative() || sel.CustomPercentage.GreaterThan(hundred)) {
			return decimal.Zero, nil, employeesalaryerrors.ErrInvalidComponents
		}
	}

	if len(selections) > 0 {
		found, err := s.catalog.FindActive(ctx, companyID, SelectionIDs(selections))
		if err != nil {
			return decimal.Zero, nil, err
		}
		if len(found) != len(selections) {
			return decimal.Zero, nil, employeesalaryerrors.ErrInvalidComponents
		}
	}

	components, err := MarshalSelections(selections)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return *basic, components, nil
}

func (s *service) warnSkipped(ctx context.Context, salary EmployeeSalary, breakdown Breakdown) {
	if len(breakdown.SkippedComponents) == 0 {
		return
	}
	contextutil.GetLogger(ctx, s.logger).Warn("salary component not found in active catalog, skipped",
		zap.String("salary_id", salary.ID.String()),
		zap.String("employee_id", salary.EmployeeID.String()),
		zap.Strings("component_ids", breakdown.SkippedComponents),
	)
}

func mapToResponse(e EmployeeSalary) EmployeeSalaryResponse {
	selections := e.Selections()
	if selections == nil {
		selections = []ComponentSelection{}
	}
	return EmployeeSalaryResponse{
		ID:           e.ID.String(),
		EmployeeID:   e.EmployeeID.String(),
		EmployeeName: e.EmployeeName,
		BasicSalary:  e.BasicSalary,
		Components:   selections,
		IsActive:     e.IsActive,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
