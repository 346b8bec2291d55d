package payslip_test

import (
	"testing"

	"go-payroll/internal/employeesalary"
	"go-payroll/internal/payslip"
	"go-payroll/internal/salarycomponent"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestClassify_RecoversEngineTotals(t *testing.T) {
	parking := salarycomponent.SalaryComponent{
		ID:              uuid.New(),
		Name:            "Parking Fee",
		Type:            salarycomponent.TypeDeduction,
		CalculationType: salarycomponent.CalculationFixed,
		DefaultAmount:   dec("50000"),
		Status:          salarycomponent.StatusActive,
	}
	thr := salarycomponent.SalaryComponent{
		ID:              uuid.New(),
		Name:            "THR Lebaran",
		Type:            salarycomponent.TypeEarning,
		CalculationType: salarycomponent.CalculationFixed,
		DefaultAmount:   dec("1000000"),
		Status:          salarycomponent.StatusActive,
	}

	b := employeesalary.Calculate(
		dec("6000000"),
		[]employeesalary.ComponentSelection{{ComponentID: parking.ID.String()}, {ComponentID: thr.ID.String()}},
		[]salarycomponent.SalaryComponent{parking, thr},
	)

	row := payslip.Classify(b.Earnings, b.PersistedDeductions(), b.NetSalary)

	assert.True(t, dec("60000").Equal(row.Employee.Healthcare))
	assert.True(t, dec("120000").Equal(row.Employee.SocialSecurity))
	assert.True(t, dec("60000").Equal(row.Employee.Pension))
	assert.True(t, dec("50000").Equal(row.Employee.Expenses))
	assert.True(t, b.TotalDeductions.Equal(row.Employee.Total()))

	assert.True(t, dec("240000").Equal(row.Employer.Healthcare))
	assert.True(t, dec("254400").Equal(row.Employer.SocialSecurity), row.Employer.SocialSecurity.String())
	assert.True(t, dec("120000").Equal(row.Employer.Pension))
	assert.True(t, b.EmployerContributionTotal().Equal(row.Employer.Total()))

	assert.True(t, dec("1000000").Equal(row.Earnings.THRPKWT))
	assert.True(t, row.Earnings.Bonus.IsZero())

	// 6.000.000 + 1.000.000 - 240.000 - 50.000
	assert.True(t, dec("6710000").Equal(row.NetPay))
	assert.True(t, row.TotalStatutoryAndTax.Equal(row.Employee.Total().Add(row.Employer.Total())))
	assert.True(t, row.TotalEmployerCost.Equal(row.NetPay.Add(row.TotalStatutoryAndTax)))
}

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name       string
		earnings   map[string]decimal.Decimal
		deductions map[string]decimal.Decimal
		check      func(t *testing.T, row payslip.ReportRow)
	}{
		{
			name:     "basic salary excluded and unknown earning dropped",
			earnings: map[string]decimal.Decimal{"basic salary": dec("5000000"), "Holiday Gift": dec("300000")},
			check: func(t *testing.T, row payslip.ReportRow) {
				assert.True(t, row.Earnings.THRPKWT.IsZero())
				assert.True(t, row.Earnings.Bonus.IsZero())
			},
		},
		{
			name:     "bonus synonyms",
			earnings: map[string]decimal.Decimal{"Insentif Penjualan": dec("100"), "Performance Bonus": dec("200"), "Kompensasi PKWT": dec("50")},
			check: func(t *testing.T, row payslip.ReportRow) {
				assert.True(t, dec("300").Equal(row.Earnings.Bonus))
				assert.True(t, dec("50").Equal(row.Earnings.THRPKWT))
			},
		},
		{
			name:       "employee tax regular and irregular",
			deductions: map[string]decimal.Decimal{"PPh 21": dec("100"), "Pajak Tidak Teratur": dec("40"), "Irregular Tax": dec("10")},
			check: func(t *testing.T, row payslip.ReportRow) {
				assert.True(t, dec("100").Equal(row.Employee.RegularTax))
				assert.True(t, dec("50").Equal(row.Employee.IrregularTax))
			},
		},
		{
			name:       "employer tax goes to employer buckets",
			deductions: map[string]decimal.Decimal{"ER_PPh21_Tunjangan": dec("70"), "ER_Irregular_Tax": dec("30"), "ER_Uniform": dec("99")},
			check: func(t *testing.T, row payslip.ReportRow) {
				assert.True(t, dec("70").Equal(row.Employer.RegularTax))
				assert.True(t, dec("30").Equal(row.Employer.IrregularTax))
				assert.True(t, dec("100").Equal(row.Employer.Total()))
				assert.True(t, row.Employee.Total().IsZero())
			},
		},
		{
			name:       "pension without bpjs prefix",
			deductions: map[string]decimal.Decimal{"Dana Pensiun": dec("25")},
			check: func(t *testing.T, row payslip.ReportRow) {
				assert.True(t, dec("25").Equal(row.Employee.Pension))
			},
		},
		{
			name:       "lowercase er prefix is an employee deduction",
			deductions: map[string]decimal.Decimal{"er_bpjs_kesehatan": dec("15")},
			check: func(t *testing.T, row payslip.ReportRow) {
				assert.True(t, dec("15").Equal(row.Employee.Healthcare))
				assert.True(t, row.Employer.Total().IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := payslip.Classify(tt.earnings, tt.deductions, decimal.Zero)
			tt.check(t, row)
		})
	}
}

func TestClassify_BreakdownWithNonNumericValue(t *testing.T) {
	detail := payslip.PayslipDetail{
		NetPay:              dec("5760000"),
		EarningsBreakdown:   datatypes.JSON(`{"Basic Salary":6000000,"Bonus":"250000","Holiday Gift":null}`),
		DeductionsBreakdown: datatypes.JSON(`{"BPJS JHT (2%)":120000,"ER_BPJS_JHT_(3.7%)":222000,"Notes":"n/a"}`),
	}

	deductions := detail.Deductions()
	assert.Len(t, deductions, 3)
	assert.True(t, deductions["Notes"].IsZero())

	row := payslip.Classify(detail.Earnings(), deductions, detail.NetPay)

	assert.True(t, dec("120000").Equal(row.Employee.SocialSecurity))
	assert.True(t, dec("222000").Equal(row.Employer.SocialSecurity))
	assert.True(t, dec("342000").Equal(row.TotalStatutoryAndTax), row.TotalStatutoryAndTax.String())
	assert.True(t, dec("250000").Equal(row.Earnings.Bonus))
}

func TestPayslipDetail_BreakdownNotAnObject(t *testing.T) {
	detail := payslip.PayslipDetail{DeductionsBreakdown: datatypes.JSON(`[1,2]`)}

	assert.Empty(t, detail.Deductions())
}
