package payslip

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go-payroll/internal/statutory"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

const pdfContentType = "application/pdf"

var (
	colorCategory = &props.Color{Red: 68, Green: 114, Blue: 196}
	colorHeader   = &props.Color{Red: 146, Green: 208, Blue: 80}
	colorEE       = &props.Color{Red: 255, Green: 255, Blue: 0}
	colorER       = &props.Color{Red: 255, Green: 192, Blue: 0}
	colorResult   = &props.Color{Red: 255, Green: 153, Blue: 204}
	colorWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

type Renderer interface {
	RenderPayslip(d PayslipDetail, companyName string) ([]byte, error)
	RenderReport(details []PayslipDetail, companyName string, exportedAt time.Time) ([]byte, error)
}

type MarotoRenderer struct{}

func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// ── Slip gaji per karyawan (A4 portrait) ─────────────────────────────────────

func (r *MarotoRenderer) RenderPayslip(d PayslipDetail, companyName string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).WithTopMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Payslip "+d.PayslipNumber, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorCategory}),
			text.New("SLIP GAJI / PAYSLIP", props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(d.PayslipNumber, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
			text.New("Pay date: "+d.PayDate.Format(periodDateLayout), props.Text{Size: 8, Top: 7, Align: align.Right, Color: colorGray}),
		),
	))
	m.AddRows(line.NewRow(2, props.Line{Color: colorCategory, Thickness: 0.5}))

	m.AddRows(
		infoRow("Employee", orDash(d.EmployeeName), "Pay Period", FormatPeriod(d.PayPeriodStart, d.PayPeriodEnd)),
		infoRow("Employee No.", orDash(d.EmployeeNumber), "Branch", orDash(d.BranchName)),
		infoRow("Department", orDash(d.DepartmentName), "Position", orDash(d.PositionName)),
	)
	m.AddRows(line.NewRow(4))

	earnings := d.Earnings()
	employee := map[string]decimal.Decimal{}
	employer := map[string]decimal.Decimal{}
	for name, amount := range d.Deductions() {
		if strings.HasPrefix(name, statutory.EmployerPrefix) {
			employer[strings.TrimPrefix(name, statutory.EmployerPrefix)] = amount
			continue
		}
		employee[name] = amount
	}

	m.AddRows(sectionRow("Earnings"))
	m.AddRows(amountRows(earnings)...)
	m.AddRows(totalRow("Total Earnings", d.TotalEarnings))
	m.AddRows(line.NewRow(3))

	m.AddRows(sectionRow("Deductions"))
	m.AddRows(amountRows(employee)...)
	m.AddRows(totalRow("Total Deductions", d.TotalDeductions))
	m.AddRows(line.NewRow(3))

	m.AddRows(line.NewRow(1, props.Line{Color: colorCategory, Thickness: 0.5}))
	m.AddRows(row.New(10).Add(
		col.New(8).Add(text.New("NET PAY", props.Text{Style: fontstyle.Bold, Size: 11, Top: 2})),
		col.New(4).Add(text.New("Rp "+FormatIDR(d.NetPay), props.Text{Style: fontstyle.Bold, Size: 11, Top: 2, Align: align.Right})),
	))

	if len(employer) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(sectionRow("Employer Contributions (not deducted)"))
		m.AddRows(amountRows(employer)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate payslip: %w", err)
	}
	return doc.GetBytes(), nil
}

func infoRow(k1, v1, k2, v2 string) core.Row {
	label := props.Text{Size: 8, Color: colorGray}
	value := props.Text{Size: 9, Style: fontstyle.Bold}
	return row.New(6).Add(
		col.New(2).Add(text.New(k1, label)),
		col.New(4).Add(text.New(v1, value)),
		col.New(2).Add(text.New(k2, label)),
		col.New(4).Add(text.New(v2, value)),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(
		col.New(12).Add(text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorWhite, Top: 1.5, Left: 2})).
			WithStyle(&props.Cell{BackgroundColor: colorCategory}),
	)
}

// amountRows urut berdasarkan nama supaya PDF deterministik.
func amountRows(amounts map[string]decimal.Decimal) []core.Row {
	names := make([]string, 0, len(amounts))
	for name := range amounts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]core.Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(name, props.Text{Size: 9, Top: 1, Left: 2})),
			col.New(4).Add(text.New(FormatIDR(amounts[name]), props.Text{Size: 9, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

func totalRow(label string, amount decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1.5, Left: 2})),
		col.New(4).Add(text.New(FormatIDR(amount), props.Text{Style: fontstyle.Bold, Size: 9, Top: 1.5, Align: align.Right})),
	)
}

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// ── Laporan payslip (A3 landscape) ───────────────────────────────────────────

// reportGrid adalah lebar grid per kolom ReportColumns, totalnya reportGridSize.
var reportGrid = []int{1, 2, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

const reportGridSize = 28

func (r *MarotoRenderer) RenderReport(details []PayslipDetail, companyName string, exportedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A3).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(reportGridSize).
		WithLeftMargin(8).WithRightMargin(8).WithTopMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 6}).
		WithTitle("Payslips Export", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(8).Add(
		col.New(reportGridSize).Add(text.New(companyName, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center})),
	))
	m.AddRows(row.New(6).Add(
		col.New(reportGridSize).Add(text.New("Payslips Export - "+exportedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Center, Color: colorGray})),
	))
	m.AddRows(line.NewRow(3))

	m.AddRows(reportCategoryRow(), reportHeaderRow())

	for i, d := range details {
		cells := BuildReportLine(i+1, d)
		cols := make([]core.Col, len(cells))
		for j, cell := range cells {
			a := align.Left
			if j >= firstAmountColumn {
				a = align.Right
			}
			cols[j] = col.New(reportGrid[j]).
				Add(text.New(cell.Display(), props.Text{Size: 6, Top: 1, Left: 0.5, Right: 0.5, Align: a})).
				WithStyle(&props.Cell{BorderType: border.Full, BorderColor: colorGray, BorderThickness: 0.1})
		}
		m.AddRows(row.New(5).Add(cols...))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate report: %w", err)
	}
	return doc.GetBytes(), nil
}

func reportCategoryRow() core.Row {
	cat := func(size int, title string) core.Col {
		c := col.New(size).WithStyle(&props.Cell{BackgroundColor: colorCategory})
		if title != "" {
			c = c.Add(text.New(title, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorWhite, Align: align.Center, Top: 1}))
		}
		return c
	}
	return row.New(5).Add(
		cat(10, ""),
		cat(2, ""),
		cat(2, CategoryEarnings),
		cat(6, CategoryEE),
		cat(5, CategoryER),
		cat(3, ""),
	)
}

func reportHeaderRow() core.Row {
	cols := make([]core.Col, len(ReportColumns))
	for i, c := range ReportColumns {
		bg := colorHeader
		switch {
		case c.Category == CategoryEE:
			bg = colorEE
		case c.Category == CategoryER:
			bg = colorER
		case i >= len(ReportColumns)-3:
			bg = colorResult
		}
		cols[i] = col.New(reportGrid[i]).
			Add(text.New(c.Short, props.Text{Style: fontstyle.Bold, Size: 6, Align: align.Center, Top: 1})).
			WithStyle(&props.Cell{BackgroundColor: bg, BorderType: border.Full, BorderColor: colorGray, BorderThickness: 0.1})
	}
	return row.New(9).Add(cols...)
}
