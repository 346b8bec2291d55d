package employeesalary

import (
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/statutory"

	"github.com/shopspring/decimal"
)

const BasicSalaryLabel = "Basic Salary"

var hundred = decimal.NewFromInt(100)

type Breakdown struct {
	BasicSalary           decimal.Decimal            `json:"basic_salary"`
	Earnings              map[string]decimal.Decimal `json:"earnings"`
	Deductions            map[string]decimal.Decimal `json:"deductions"`
	EmployerContributions map[string]decimal.Decimal `json:"employer_contributions"`
	TotalEarnings         decimal.Decimal            `json:"total_earnings"`
	TotalDeductions       decimal.Decimal            `json:"total_deductions"`
	GrossSalary           decimal.Decimal            `json:"gross_salary"`
	NetSalary             decimal.Decimal            `json:"net_salary"`

	// Id komponen terpilih yang tidak ada di katalog aktif.
	SkippedComponents []string `json:"skipped_components,omitempty"`
}

// Calculate menyusun breakdown gaji dari gaji pokok, komponen terpilih, dan
// katalog komponen aktif. Fungsi ini murni: tidak ada I/O dan hasilnya
// deterministik untuk input yang sama.
//
// Prioritas nilai komponen: custom_amount, lalu custom_percentage dari gaji
// pokok, lalu nilai default komponen. Kontribusi perusahaan (ER) dicatat
// terpisah dan tidak mengurangi gaji bersih.
func Calculate(
	basic decimal.Decimal,
	selections []ComponentSelection,
	catalog []salarycomponent.SalaryComponent,
) Breakdown {
	byID := make(map[string]salarycomponent.SalaryComponent, len(catalog))
	for _, c := range catalog {
		byID[c.ID.String()] = c
	}

	b := Breakdown{
		BasicSalary:           basic,
		Earnings:              map[string]decimal.Decimal{BasicSalaryLabel: basic},
		Deductions:            map[string]decimal.Decimal{},
		EmployerContributions: map[string]decimal.Decimal{},
		TotalEarnings:         basic,
		TotalDeductions:       decimal.Zero,
	}

	for _, sel := range dedupeSelections(selections) {
		component, ok := byID[sel.ComponentID]
		if !ok || (component.Status != "" && component.Status != salarycomponent.StatusActive) {
			b.SkippedComponents = append(b.SkippedComponents, sel.ComponentID)
			continue
		}

		amount := resolveAmount(basic, sel, component)

		switch {
		case component.IsEarning():
			b.Earnings[component.Name] = b.Earnings[component.Name].Add(amount)
			b.TotalEarnings = b.TotalEarnings.Add(amount)
		case component.IsDeduction():
			b.Deductions[component.Name] = b.Deductions[component.Name].Add(amount)
			b.TotalDeductions = b.TotalDeductions.Add(amount)
		default:
			b.SkippedComponents = append(b.SkippedComponents, sel.ComponentID)
		}
	}

	bpjs := statutory.Calculate(basic)
	for _, line := range bpjs.Employee {
		b.Deductions[line.Label] = b.Deductions[line.Label].Add(line.Amount)
		b.TotalDeductions = b.TotalDeductions.Add(line.Amount)
	}
	for _, line := range bpjs.Employer {
		b.EmployerContributions[line.Label] = b.EmployerContributions[line.Label].Add(line.Amount)
	}

	b.GrossSalary = b.TotalEarnings
	b.NetSalary = b.TotalEarnings.Sub(b.TotalDeductions)

	return b
}

func resolveAmount(basic decimal.Decimal, sel ComponentSelection, component salarycomponent.SalaryComponent) decimal.Decimal {
	if sel.HasCustomAmount() {
		return *sel.CustomAmount
	}
	if sel.HasCustomPercentage() {
		return basic.Mul(*sel.CustomPercentage).Div(hundred)
	}
	return component.CalculateAmount(basic)
}

// EmployerContributionTotal menjumlahkan seluruh kontribusi ER.
func (b Breakdown) EmployerContributionTotal() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b.EmployerContributions {
		total = total.Add(v)
	}
	return total
}

// PersistedDeductions menggabungkan potongan karyawan dan kontribusi ER ke satu
// map, sesuai format deductions_breakdown di payroll entry. Label ER selalu
// diawali "ER_".
func (b Breakdown) PersistedDeductions() map[string]decimal.Decimal {
	merged := make(map[string]decimal.Decimal, len(b.Deductions)+len(b.EmployerContributions))
	for k, v := range b.Deductions {
		merged[k] = v
	}
	for k, v := range b.EmployerContributions {
		merged[k] = merged[k].Add(v)
	}
	return merged
}
