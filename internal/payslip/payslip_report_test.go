package payslip_test

import (
	"encoding/json"
	"testing"
	"time"

	"go-payroll/internal/payslip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func jsonAmounts(t *testing.T, m map[string]string) datatypes.JSON {
	t.Helper()
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return datatypes.JSON(b)
}

func sampleDetail(t *testing.T) payslip.PayslipDetail {
	t.Helper()
	return payslip.PayslipDetail{
		Payslip: payslip.Payslip{
			ID:             uuid.New(),
			PayslipNumber:  "PS-20250131-EMP001-0001",
			PayPeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			PayPeriodEnd:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			PayDate:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			Status:         payslip.StatusGenerated,
		},
		EmployeeName:   "Budi Santoso",
		EmployeeNumber: "EMP001",
		DepartmentName: "Finance",
		BasicSalary:    dec("6000000"),
		TotalEarnings:  dec("6000000"),
		NetPay:         dec("5760000"),
		EarningsBreakdown: jsonAmounts(t, map[string]string{
			"Basic Salary": "6000000",
		}),
		DeductionsBreakdown: jsonAmounts(t, map[string]string{
			"BPJS Kesehatan (1%)":    "60000",
			"BPJS JHT (2%)":          "120000",
			"BPJS JP (1%)":           "60000",
			"ER_BPJS_Kesehatan_(4%)": "240000",
			"ER_BPJS_JHT_(3.7%)":     "222000",
			"ER_BPJS_JP_(2%)":        "120000",
			"ER_BPJS_JKK_(0.24%)":    "14400",
			"ER_BPJS_JKM_(0.3%)":     "18000",
		}),
	}
}

func TestFormatIDR(t *testing.T) {
	assert.Equal(t, "1.234.567", payslip.FormatIDR(dec("1234567")))
	assert.Equal(t, "5.760.000", payslip.FormatIDR(dec("5760000.40")))
	assert.Equal(t, "14.401", payslip.FormatIDR(dec("14400.5")))
	assert.Equal(t, "0", payslip.FormatIDR(decimal.Zero))
}

func TestFormatPeriod(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "01/02/2025 - 28/02/2025", payslip.FormatPeriod(start, end))
	assert.Equal(t, "", payslip.FormatPeriod(time.Time{}, end))
}

func TestBuildReportLine(t *testing.T) {
	cells := payslip.BuildReportLine(1, sampleDetail(t))
	require.Len(t, cells, len(payslip.ReportColumns))

	display := make([]string, len(cells))
	for i, c := range cells {
		display[i] = c.Display()
	}

	assert.Equal(t, []string{
		"1",
		"Budi Santoso",
		"PS-20250131-EMP001-0001",
		"01/01/2025 - 31/01/2025",
		"-",
		"Finance",
		"-",
		"6.000.000",
		"6.000.000",
		"-",
		"-",
		"120.000",
		"60.000",
		"60.000",
		"-",
		"-",
		"-",
		"-",
		"-",
		"254.400",
		"240.000",
		"120.000",
		"5.760.000",
		"854.400",
		"6.614.400",
	}, display)

	// kolom nominal utama selalu numeric walau nol
	zero := payslip.PayslipDetail{}
	zeroCells := payslip.BuildReportLine(2, zero)
	assert.True(t, zeroCells[7].Numeric)
	assert.Equal(t, "0", zeroCells[22].Display())
	assert.Equal(t, "-", zeroCells[9].Display())
	assert.Equal(t, "", zeroCells[3].Display())
}
