package salarycomponent_test

import (
	"context"
	"fmt"
	"testing"

	"go-payroll/internal/salarycomponent"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (*gorm.DB, salarycomponent.Repository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&salarycomponent.SalaryComponent{}))

	return db, salarycomponent.NewRepository(db)
}

func seedComponent(t *testing.T, repo salarycomponent.Repository, companyID uuid.UUID, name, typ, status string) salarycomponent.SalaryComponent {
	t.Helper()
	c := salarycomponent.SalaryComponent{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Name:            name,
		Type:            typ,
		CalculationType: salarycomponent.CalculationFixed,
		DefaultAmount:   decimal.NewFromInt(100_000),
		Status:          status,
	}
	require.NoError(t, repo.Create(context.Background(), &c))
	return c
}

func TestSalaryComponentRepository_FindActiveByIDs(t *testing.T) {
	_, repo := setupRepoTest(t)
	ctx := context.Background()
	companyID := uuid.New()
	otherCompany := uuid.New()

	active := seedComponent(t, repo, companyID, "Transport", salarycomponent.TypeEarning, salarycomponent.StatusActive)
	inactive := seedComponent(t, repo, companyID, "Old Allowance", salarycomponent.TypeEarning, salarycomponent.StatusInactive)
	foreign := seedComponent(t, repo, otherCompany, "Foreign", salarycomponent.TypeEarning, salarycomponent.StatusActive)

	got, err := repo.FindActiveByIDs(ctx, companyID.String(), []string{
		active.ID.String(), inactive.ID.String(), foreign.ID.String(),
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)
	assert.True(t, got[0].DefaultAmount.Equal(decimal.NewFromInt(100_000)))
}

func TestSalaryComponentRepository_FindAllByCompany_Filters(t *testing.T) {
	_, repo := setupRepoTest(t)
	ctx := context.Background()
	companyID := uuid.New()

	seedComponent(t, repo, companyID, "Transport", salarycomponent.TypeEarning, salarycomponent.StatusActive)
	seedComponent(t, repo, companyID, "Parking Fee", salarycomponent.TypeDeduction, salarycomponent.StatusActive)
	seedComponent(t, repo, companyID, "Bonus", salarycomponent.TypeEarning, salarycomponent.StatusInactive)

	all, err := repo.FindAllByCompany(ctx, companyID.String(), salarycomponent.ListSalaryComponentsFilter{Type: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	earnings, err := repo.FindAllByCompany(ctx, companyID.String(), salarycomponent.ListSalaryComponentsFilter{Type: salarycomponent.TypeEarning})
	require.NoError(t, err)
	assert.Len(t, earnings, 2)

	searched, err := repo.FindAllByCompany(ctx, companyID.String(), salarycomponent.ListSalaryComponentsFilter{Search: "park"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "Parking Fee", searched[0].Name)

	active, err := repo.FindActiveByCompany(ctx, companyID.String())
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestSalaryComponentRepository_Delete(t *testing.T) {
	_, repo := setupRepoTest(t)
	ctx := context.Background()
	companyID := uuid.New()

	c := seedComponent(t, repo, companyID, "Transport", salarycomponent.TypeEarning, salarycomponent.StatusActive)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString(), c.ID.String()), gorm.ErrRecordNotFound)
	assert.NoError(t, repo.Delete(ctx, companyID.String(), c.ID.String()))

	_, err := repo.FindByIDAndCompany(ctx, companyID.String(), c.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
