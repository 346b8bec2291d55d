package payslip

import (
	"strings"

	"go-payroll/internal/employeesalary"
	"go-payroll/internal/statutory"

	"github.com/shopspring/decimal"
)

type EarningBuckets struct {
	THRPKWT decimal.Decimal
	Bonus   decimal.Decimal
}

type EmployeeBuckets struct {
	SocialSecurity decimal.Decimal
	Healthcare     decimal.Decimal
	Pension        decimal.Decimal
	RegularTax     decimal.Decimal
	IrregularTax   decimal.Decimal
	Expenses       decimal.Decimal
}

func (b EmployeeBuckets) Total() decimal.Decimal {
	return decimal.Sum(b.SocialSecurity, b.Healthcare, b.Pension, b.RegularTax, b.IrregularTax, b.Expenses)
}

type EmployerBuckets struct {
	RegularTax     decimal.Decimal
	IrregularTax   decimal.Decimal
	SocialSecurity decimal.Decimal
	Healthcare     decimal.Decimal
	Pension        decimal.Decimal
}

func (b EmployerBuckets) Total() decimal.Decimal {
	return decimal.Sum(b.RegularTax, b.IrregularTax, b.SocialSecurity, b.Healthcare, b.Pension)
}

// ReportRow adalah hasil klasifikasi satu payroll entry ke kolom laporan.
type ReportRow struct {
	Earnings             EarningBuckets
	Employee             EmployeeBuckets
	Employer             EmployerBuckets
	NetPay               decimal.Decimal
	TotalStatutoryAndTax decimal.Decimal
	TotalEmployerCost    decimal.Decimal
}

// Classify memetakan breakdown yang tersimpan ke bucket laporan berdasarkan
// substring label. Aturan dicek berurutan, yang pertama cocok menang.
// Key deductions berawalan "ER_" adalah kontribusi perusahaan.
func Classify(earnings, deductions map[string]decimal.Decimal, netPay decimal.Decimal) ReportRow {
	row := ReportRow{NetPay: netPay}

	for name, amount := range deductions {
		if strings.HasPrefix(name, statutory.EmployerPrefix) {
			classifyEmployer(&row.Employer, strings.ToLower(name), amount)
			continue
		}
		classifyEmployee(&row.Employee, strings.ToLower(name), amount)
	}

	for name, amount := range earnings {
		lower := strings.ToLower(name)
		if lower == strings.ToLower(employeesalary.BasicSalaryLabel) {
			continue
		}
		switch {
		case containsAny(lower, "thr", "pkwt"):
			row.Earnings.THRPKWT = row.Earnings.THRPKWT.Add(amount)
		case containsAny(lower, "bonus", "insentif", "incentive"):
			row.Earnings.Bonus = row.Earnings.Bonus.Add(amount)
		}
	}

	row.TotalStatutoryAndTax = row.Employee.Total().Add(row.Employer.Total())
	row.TotalEmployerCost = row.NetPay.Add(row.TotalStatutoryAndTax)

	return row
}

func classifyEmployer(b *EmployerBuckets, lower string, amount decimal.Decimal) {
	switch {
	case strings.Contains(lower, "bpjs_kesehatan"):
		b.Healthcare = b.Healthcare.Add(amount)
	case containsAny(lower, "bpjs_jht", "bpjs_jkk", "bpjs_jkm"):
		b.SocialSecurity = b.SocialSecurity.Add(amount)
	case strings.Contains(lower, "bpjs_jp"):
		b.Pension = b.Pension.Add(amount)
	case containsAny(lower, "tax", "pph"):
		if strings.Contains(lower, "irregular") {
			b.IrregularTax = b.IrregularTax.Add(amount)
		} else {
			b.RegularTax = b.RegularTax.Add(amount)
		}
	}
}

func classifyEmployee(b *EmployeeBuckets, lower string, amount decimal.Decimal) {
	bpjs := strings.Contains(lower, "bpjs")

	switch {
	case bpjs && containsAny(lower, "jht", "jkk", "jkm", "social", "ketenagakerjaan", "working"):
		b.SocialSecurity = b.SocialSecurity.Add(amount)
	case bpjs && containsAny(lower, "health", "kesehatan", "healthcare"):
		b.Healthcare = b.Healthcare.Add(amount)
	case containsAny(lower, "pension", "pensiun", "jp"):
		b.Pension = b.Pension.Add(amount)
	case containsAny(lower, "tax", "pph", "pajak"):
		if containsAny(lower, "irregular", "tidak teratur") {
			b.IrregularTax = b.IrregularTax.Add(amount)
		} else {
			b.RegularTax = b.RegularTax.Add(amount)
		}
	default:
		// termasuk label "expense"/"biaya" dan semua potongan lain
		b.Expenses = b.Expenses.Add(amount)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
