package payslip

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	periodDateLayout = "02/01/2006"
	placeholder      = "-"

	CategoryEarnings = "Earnings"
	CategoryEE       = "EE (Employee Deductions)"
	CategoryER       = "ER (Employer Contributions)"
)

type Column struct {
	Header   string
	Short    string
	Category string
	Width    float64
}

// ReportColumns urutannya dipakai sama persis oleh export Excel dan PDF.
var ReportColumns = []Column{
	{Header: "No", Short: "No", Width: 5},
	{Header: "Employee Name", Short: "Employee", Width: 25},
	{Header: "Payslip Number", Short: "Payslip #", Width: 20},
	{Header: "Pay Period", Short: "Pay Period", Width: 22},
	{Header: "Branch", Short: "Branch", Width: 18},
	{Header: "Department", Short: "Dept", Width: 18},
	{Header: "Designation", Short: "Position", Width: 18},
	{Header: "Basic Salary", Short: "Basic Salary", Width: 18},
	{Header: "Monthly Salary - IDR", Short: "Monthly Salary", Width: 18},
	{Header: "THR & PKWT", Short: "THR & PKWT", Category: CategoryEarnings, Width: 15},
	{Header: "Bonus", Short: "Bonus", Category: CategoryEarnings, Width: 15},
	{Header: "EE BPJS Working Social Security (JHT,JKK,JKM)", Short: "BPJS Social Security", Category: CategoryEE, Width: 20},
	{Header: "EE BPJS Healthcare Scheme", Short: "BPJS Healthcare", Category: CategoryEE, Width: 18},
	{Header: "EE Pension Scheme", Short: "Pension", Category: CategoryEE, Width: 15},
	{Header: "EE Regular Personal Income Tax", Short: "Regular Tax", Category: CategoryEE, Width: 18},
	{Header: "EE Irregular Income Tax", Short: "Irregular Tax", Category: CategoryEE, Width: 18},
	{Header: "Expenses", Short: "Expenses", Category: CategoryEE, Width: 15},
	{Header: "ER Regular Personal Income Tax", Short: "Regular Tax", Category: CategoryER, Width: 18},
	{Header: "ER Irregular Income Tax", Short: "Irregular Tax", Category: CategoryER, Width: 18},
	{Header: "ER BPJS Working Social Security (JHT,JKK,JKM)", Short: "BPJS Social Security", Category: CategoryER, Width: 20},
	{Header: "ER BPJS Healthcare Scheme", Short: "BPJS Healthcare", Category: CategoryER, Width: 18},
	{Header: "ER Pension Scheme", Short: "Pension", Category: CategoryER, Width: 15},
	{Header: "Net Pay-IDR", Short: "Net Pay", Width: 18},
	{Header: "Total Statutory and Tax", Short: "Total Statutory & Tax", Width: 18},
	{Header: "Total Employer Cost", Short: "Total Employer Cost", Width: 20},
}

// firstAmountColumn adalah index kolom Basic Salary.
const firstAmountColumn = 7

// Cell adalah satu sel laporan. Numeric false berarti Text yang ditampilkan.
type Cell struct {
	Text    string
	Amount  decimal.Decimal
	Numeric bool
}

func textCell(s string) Cell {
	if s == "" {
		s = placeholder
	}
	return Cell{Text: s}
}

func amountCell(d decimal.Decimal) Cell {
	return Cell{Amount: d, Numeric: true}
}

// optionalCell merender nol sebagai "-".
func optionalCell(d decimal.Decimal) Cell {
	if d.IsZero() {
		return Cell{Text: placeholder}
	}
	return amountCell(d)
}

// BuildReportLine menyusun sel satu baris laporan sesuai ReportColumns.
func BuildReportLine(no int, d PayslipDetail) []Cell {
	r := Classify(d.Earnings(), d.Deductions(), d.NetPay)

	return []Cell{
		{Text: fmt.Sprintf("%d", no), Amount: decimal.NewFromInt(int64(no)), Numeric: true},
		textCell(d.EmployeeName),
		textCell(d.PayslipNumber),
		{Text: FormatPeriod(d.PayPeriodStart, d.PayPeriodEnd)},
		textCell(d.BranchName),
		textCell(d.DepartmentName),
		textCell(d.PositionName),
		amountCell(d.BasicSalary),
		amountCell(d.BasicSalary),
		optionalCell(r.Earnings.THRPKWT),
		optionalCell(r.Earnings.Bonus),
		optionalCell(r.Employee.SocialSecurity),
		optionalCell(r.Employee.Healthcare),
		optionalCell(r.Employee.Pension),
		optionalCell(r.Employee.RegularTax),
		optionalCell(r.Employee.IrregularTax),
		optionalCell(r.Employee.Expenses),
		optionalCell(r.Employer.RegularTax),
		optionalCell(r.Employer.IrregularTax),
		optionalCell(r.Employer.SocialSecurity),
		optionalCell(r.Employer.Healthcare),
		optionalCell(r.Employer.Pension),
		amountCell(r.NetPay),
		amountCell(r.TotalStatutoryAndTax),
		amountCell(r.TotalEmployerCost),
	}
}

// FormatPeriod menghasilkan "dd/mm/yyyy - dd/mm/yyyy", kosong bila salah satu tanggal kosong.
func FormatPeriod(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return ""
	}
	return start.Format(periodDateLayout) + " - " + end.Format(periodDateLayout)
}

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR membulatkan ke rupiah penuh dengan pemisah ribuan titik.
func FormatIDR(d decimal.Decimal) string {
	return idrPrinter.Sprintf("%d", d.Round(0).IntPart())
}

// Display adalah teks yang dirender untuk sel non-spreadsheet.
func (c Cell) Display() string {
	if !c.Numeric {
		return c.Text
	}
	if c.Text != "" {
		return c.Text
	}
	return FormatIDR(c.Amount)
}

func exportFileName(now time.Time, ext string) string {
	return "Payslips_" + now.Format("2006-01-02_150405") + "." + ext
}
