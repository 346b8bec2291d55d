// Package statutory menghitung iuran BPJS (Kesehatan dan Ketenagakerjaan)
// dari gaji pokok. Semua nilai dihitung penuh presisi; pembulatan dilakukan
// saat ditampilkan.
package statutory

import "github.com/shopspring/decimal"

const (
	LabelEEHealthcare = "BPJS Kesehatan (1%)"
	LabelEEJHT        = "BPJS JHT (2%)"
	LabelEEPension    = "BPJS JP (1%)"

	LabelERHealthcare = "ER_BPJS_Kesehatan_(4%)"
	LabelERJHT        = "ER_BPJS_JHT_(3.7%)"
	LabelERPension    = "ER_BPJS_JP_(2%)"
	LabelERJKK        = "ER_BPJS_JKK_(0.24%)"
	LabelERJKM        = "ER_BPJS_JKM_(0.3%)"

	// EmployerPrefix menandai kontribusi perusahaan di breakdown potongan.
	EmployerPrefix = "ER_"
)

var (
	// Batas atas dasar perhitungan.
	HealthcareCap = decimal.NewFromInt(12_000_000)
	PensionCap    = decimal.NewFromInt(10_042_300)

	rateEEHealthcare = decimal.RequireFromString("0.01")
	rateERHealthcare = decimal.RequireFromString("0.04")
	rateEEJHT        = decimal.RequireFromString("0.02")
	rateERJHT        = decimal.RequireFromString("0.037")
	rateEEPension    = decimal.RequireFromString("0.01")
	rateERPension    = decimal.RequireFromString("0.02")
	rateERJKK        = decimal.RequireFromString("0.0024")
	rateERJKM        = decimal.RequireFromString("0.003")
)

type Line struct {
	Label  string
	Amount decimal.Decimal
}

type Result struct {
	Employee []Line // dipotong dari gaji
	Employer []Line // ditanggung perusahaan, tidak mengurangi take home pay
}

func (r Result) EmployeeTotal() decimal.Decimal {
	return sum(r.Employee)
}

func (r Result) EmployerTotal() decimal.Decimal {
	return sum(r.Employer)
}

// Calculate mengembalikan porsi karyawan dan perusahaan untuk gaji pokok basic.
// Gaji negatif diperlakukan sebagai nol.
func Calculate(basic decimal.Decimal) Result {
	if basic.IsNegative() {
		basic = decimal.Zero
	}

	healthcareBasis := decimal.Min(basic, HealthcareCap)
	pensionBasis := decimal.Min(basic, PensionCap)

	return Result{
		Employee: []Line{
			{Label: LabelEEHealthcare, Amount: healthcareBasis.Mul(rateEEHealthcare)},
			{Label: LabelEEJHT, Amount: basic.Mul(rateEEJHT)},
			{Label: LabelEEPension, Amount: pensionBasis.Mul(rateEEPension)},
		},
		Employer: []Line{
			{Label: LabelERHealthcare, Amount: healthcareBasis.Mul(rateERHealthcare)},
			{Label: LabelERJHT, Amount: basic.Mul(rateERJHT)},
			{Label: LabelERPension, Amount: pensionBasis.Mul(rateERPension)},
			{Label: LabelERJKK, Amount: basic.Mul(rateERJKK)},
			{Label: LabelERJKM, Amount: basic.Mul(rateERJKM)},
		},
	}
}

func sum(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}
