package payroll_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-payroll/internal/payroll"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (*gorm.DB, payroll.Repository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&payroll.PayrollRun{}, &payroll.PayrollEntry{}))
	require.NoError(t, db.Exec(`CREATE TABLE employees (id TEXT PRIMARY KEY, company_id TEXT, full_name TEXT)`).Error)

	return db, payroll.NewRepository(db)
}

func seedRun(t *testing.T, repo payroll.Repository, companyID uuid.UUID, title string, payDate time.Time) payroll.PayrollRun {
	t.Helper()
	run := payroll.PayrollRun{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Title:          title,
		PayPeriodStart: payDate.AddDate(0, 0, -24),
		PayPeriodEnd:   payDate.AddDate(0, 0, 6),
		PayDate:        payDate,
		Status:         payroll.RunStatusDraft,
		TotalNetPay:    decimal.Zero,
	}
	require.NoError(t, repo.CreateRun(context.Background(), &run))
	return run
}

func TestPayrollRepository_FindRunsByCompany(t *testing.T) {
	_, repo := setupRepoTest(t)
	ctx := context.Background()
	companyID := uuid.New()

	seedRun(t, repo, companyID, "Payroll Januari", time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC))
	seedRun(t, repo, companyID, "Payroll Februari", time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC))
	seedRun(t, repo, uuid.New(), "Payroll Lain", time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC))

	runs, err := repo.FindRunsByCompany(ctx, companyID.String(), payroll.ListPayrollRunsFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "Payroll Februari", runs[0].Title)

	runs, err = repo.FindRunsByCompany(ctx, companyID.String(), payroll.ListPayrollRunsFilter{Search: "januari"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestPayrollRepository_ReplaceEntries(t *testing.T) {
	db, repo := setupRepoTest(t)
	ctx := context.Background()
	companyID := uuid.New()
	run := seedRun(t, repo, companyID, "Payroll Januari", time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC))

	employeeID := uuid.New()
	require.NoError(t, db.Exec(`INSERT INTO employees (id, company_id, full_name) VALUES (?, ?, ?)`, employeeID, companyID, "Budi Santoso").Error)

	entry := func(net int64) payroll.PayrollEntry {
		return payroll.PayrollEntry{
			ID:                  uuid.New(),
			CompanyID:           companyID,
			PayrollRunID:        run.ID,
			EmployeeID:          employeeID,
			BasicSalary:         decimal.NewFromInt(net),
			NetPay:              decimal.NewFromInt(net),
			EarningsBreakdown:   datatypes.JSON(`{"Basic Salary":"6000000"}`),
			DeductionsBreakdown: datatypes.JSON(`{"BPJS Kesehatan (1%)":"60000"}`),
		}
	}

	require.NoError(t, repo.ReplaceEntries(ctx, companyID.String(), run.ID.String(), []payroll.PayrollEntry{entry(1000)}))
	require.NoError(t, repo.ReplaceEntries(ctx, companyID.String(), run.ID.String(), []payroll.PayrollEntry{entry(2000)}))

	entries, err := repo.FindEntriesByRun(ctx, companyID.String(), run.ID.String())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Budi Santoso", entries[0].EmployeeName)
	assert.True(t, entries[0].NetPay.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "60000", entries[0].Deductions()["BPJS Kesehatan (1%)"].String())
}

func TestPayrollRepository_DeleteRun(t *testing.T) {
	_, repo := setupRepoTest(t)
	ctx := context.Background()
	companyID := uuid.New()
	run := seedRun(t, repo, companyID, "Payroll Januari", time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC))

	require.NoError(t, repo.DeleteRun(ctx, companyID.String(), run.ID.String()))

	_, err := repo.FindRunByIDAndCompany(ctx, companyID.String(), run.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.DeleteRun(ctx, companyID.String(), run.ID.String()), gorm.ErrRecordNotFound)
}
