package counter_test

import (
	"context"
	"fmt"
	"testing"

	"go-payroll/internal/shared/counter"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepository_GetNextValue(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&counter.CompanyCounter{}))

	repo := counter.NewRepository(db)
	ctx := context.Background()
	companyA := uuid.NewString()
	companyB := uuid.NewString()

	for want := int64(1); want <= 3; want++ {
		got, err := repo.GetNextValue(ctx, companyA, "payslip")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := repo.GetNextValue(ctx, companyA, "employee_number")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = repo.GetNextValue(ctx, companyB, "payslip")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestRepository_GetNextValue_RequiresType(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	_, err = counter.NewRepository(db).GetNextValue(context.Background(), uuid.NewString(), "")

	assert.ErrorIs(t, err, counter.ErrCounterTypeRequired)
}
