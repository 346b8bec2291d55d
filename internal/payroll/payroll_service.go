package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go-payroll/internal/employeesalary"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// SalaryCalculator menghitung breakdown semua gaji aktif company.
type SalaryCalculator interface {
	CalculateActive(ctx context.Context, companyID string) ([]employeesalary.CalculatedSalary, error)
}

type Service interface {
	CreateRun(ctx context.Context, companyID string, req CreatePayrollRunRequest) (PayrollRunResponse, error)
	GetRuns(ctx context.Context, companyID string, filter ListPayrollRunsFilter) ([]PayrollRunResponse, error)
	GetRun(ctx context.Context, companyID, id string) (PayrollRunResponse, error)
	GetEntries(ctx context.Context, companyID, runID string) ([]PayrollEntryResponse, error)
	Process(ctx context.Context, companyID, runID string) (PayrollRunResponse, error)
	DeleteRun(ctx context.Context, companyID, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	calculator SalaryCalculator
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, calculator SalaryCalculator, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		calculator: calculator,
		logger:     l,
	}
}

func (s *service) CreateRun(
	ctx context.Context,
	companyID string,
	req CreatePayrollRunRequest,
) (PayrollRunResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidCompanyID
	}

	start, err := parseDate(req.PayPeriodStart)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	end, err := parseDate(req.PayPeriodEnd)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	payDate, err := parseDate(req.PayDate)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	if start.After(end) {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidDateRange
	}

	run := &PayrollRun{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		Title:          strings.TrimSpace(req.Title),
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		PayDate:        payDate,
		Status:         RunStatusDraft,
		TotalNetPay:    decimal.Zero,
	}
	if actor, err := uuid.Parse(contextutil.GetUserID(ctx)); err == nil {
		run.CreatedBy = &actor
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateRun(ctx, run); err != nil {
		log.Error("create payroll run failed", zap.Error(err))
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	log.Info("payroll run created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payroll_run_id", run.ID.String()),
	)

	return mapRunToResponse(*run), nil
}

func (s *service) GetRuns(ctx context.Context, companyID string, filter ListPayrollRunsFilter) ([]PayrollRunResponse, error) {
	switch filter.Status {
	case "", "all", RunStatusDraft, RunStatusCompleted, RunStatusCancelled:
	default:
		return nil, payrollerrors.ErrInvalidStatusFilter
	}

	runs, err := s.repo.FindRunsByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]PayrollRunResponse, len(runs))
	for i, run := range runs {
		res[i] = mapRunToResponse(run)
	}
	return res, nil
}

func (s *service) GetRun(ctx context.Context, companyID, id string) (PayrollRunResponse, error) {
	run, err := s.repo.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	return mapRunToResponse(*run), nil
}

func (s *service) GetEntries(ctx context.Context, companyID, runID string) ([]PayrollEntryResponse, error) {
	if _, err := s.repo.FindRunByIDAndCompany(ctx, companyID, runID); err != nil {
		return nil, mapRepositoryError(err)
	}

	entries, err := s.repo.FindEntriesByRun(ctx, companyID, runID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]PayrollEntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = mapEntryToResponse(entry)
	}
	return res, nil
}

// Process menghitung gaji aktif semua karyawan dan menyimpan satu entry per
// karyawan, lalu menandai run completed. Hanya run draft yang bisa diproses.
func (s *service) Process(ctx context.Context, companyID, runID string) (PayrollRunResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payroll_run_id", runID),
	)

	calculated, err := s.calculator.CalculateActive(ctx, companyID)
	if err != nil {
		log.Error("calculate active salaries failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	if len(calculated) == 0 {
		return PayrollRunResponse{}, payrollerrors.ErrNoActiveSalaries
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.LockRunForUpdate(ctx, companyID, runID)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if run.Status != RunStatusDraft {
		return PayrollRunResponse{}, payrollerrors.ErrProcessOnlyDraft
	}

	entries := make([]PayrollEntry, 0, len(calculated))
	totalNet := decimal.Zero
	for _, c := range calculated {
		entry, err := buildEntry(*run, c)
		if err != nil {
			return PayrollRunResponse{}, err
		}
		totalNet = totalNet.Add(entry.NetPay)
		entries = append(entries, entry)
	}

	if err := qtx.ReplaceEntries(ctx, companyID, runID, entries); err != nil {
		log.Error("persist payroll entries failed", zap.Error(err))
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	now := time.Now().UTC()
	run.Status = RunStatusCompleted
	run.EntryCount = len(entries)
	run.TotalNetPay = totalNet
	run.ProcessedAt = &now

	if err := qtx.UpdateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	log.Info("payroll run processed",
		zap.Int("entry_count", run.EntryCount),
		zap.String("total_net_pay", totalNet.StringFixed(2)),
	)

	return mapRunToResponse(*run), nil
}

func (s *service) DeleteRun(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if run.Status != RunStatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}

	if err := qtx.DeleteRun(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func buildEntry(run PayrollRun, c employeesalary.CalculatedSalary) (PayrollEntry, error) {
	earnings, err := json.Marshal(c.Breakdown.Earnings)
	if err != nil {
		return PayrollEntry{}, err
	}
	deductions, err := json.Marshal(c.Breakdown.PersistedDeductions())
	if err != nil {
		return PayrollEntry{}, err
	}

	salaryID := c.Salary.ID
	return PayrollEntry{
		ID:                   uuid.New(),
		CompanyID:            run.CompanyID,
		PayrollRunID:         run.ID,
		EmployeeID:           c.Salary.EmployeeID,
		EmployeeName:         c.Salary.EmployeeName,
		EmployeeSalaryID:     &salaryID,
		BasicSalary:          c.Breakdown.BasicSalary,
		TotalEarnings:        c.Breakdown.TotalEarnings,
		TotalDeductions:      c.Breakdown.TotalDeductions,
		EmployerContribution: c.Breakdown.EmployerContributionTotal(),
		NetPay:               c.Breakdown.NetSalary,
		EarningsBreakdown:    datatypes.JSON(earnings),
		DeductionsBreakdown:  datatypes.JSON(deductions),
	}, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapRunToResponse(run PayrollRun) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:             run.ID.String(),
		Title:          run.Title,
		PayPeriodStart: run.PayPeriodStart.Format(dateLayout),
		PayPeriodEnd:   run.PayPeriodEnd.Format(dateLayout),
		PayDate:        run.PayDate.Format(dateLayout),
		Status:         run.Status,
		EntryCount:     run.EntryCount,
		TotalNetPay:    run.TotalNetPay,
	}
	if run.ProcessedAt != nil {
		v := run.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}

func mapEntryToResponse(entry PayrollEntry) PayrollEntryResponse {
	return PayrollEntryResponse{
		ID:                   entry.ID.String(),
		PayrollRunID:         entry.PayrollRunID.String(),
		EmployeeID:           entry.EmployeeID.String(),
		EmployeeName:         entry.EmployeeName,
		BasicSalary:          entry.BasicSalary,
		TotalEarnings:        entry.TotalEarnings,
		TotalDeductions:      entry.TotalDeductions,
		EmployerContribution: entry.EmployerContribution,
		NetPay:               entry.NetPay,
		EarningsBreakdown:    entry.Earnings(),
		DeductionsBreakdown:  entry.Deductions(),
	}
}
