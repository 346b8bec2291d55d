package payslip

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	excelSheet       = "Payslips"
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	excelFirstData   = 3
	numFmtThousands  = 3 // #,##0
)

var excelCategories = []struct {
	title      string
	start, end string
}{
	{CategoryEarnings, "J1", "K1"},
	{CategoryEE, "L1", "Q1"},
	{CategoryER, "R1", "V1"},
}

// RenderExcel menulis laporan payslip ke workbook xlsx.
func RenderExcel(details []PayslipDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), excelSheet); err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(ReportColumns))
	if err != nil {
		return nil, err
	}

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	for _, c := range excelCategories {
		if err := f.SetCellValue(excelSheet, c.start, c.title); err != nil {
			return nil, err
		}
		if err := f.MergeCell(excelSheet, c.start, c.end); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(excelSheet, "A1", lastCol+"1", styles.category); err != nil {
		return nil, err
	}

	for i, col := range ReportColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(excelSheet, name+"2", col.Header); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(excelSheet, name, name, col.Width); err != nil {
			return nil, err
		}
	}

	headerRanges := []struct {
		from, to string
		style    int
	}{
		{"A2", lastCol + "2", styles.header},
		{"L2", "Q2", styles.eeHeader},
		{"R2", "V2", styles.erHeader},
		{"W2", "Y2", styles.resultHeader},
	}
	for _, r := range headerRanges {
		if err := f.SetCellStyle(excelSheet, r.from, r.to, r.style); err != nil {
			return nil, err
		}
	}
	_ = f.SetRowHeight(excelSheet, 1, 25)
	_ = f.SetRowHeight(excelSheet, 2, 40)

	rowIdx := excelFirstData
	for i, d := range details {
		for colIdx, cell := range BuildReportLine(i+1, d) {
			ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return nil, err
			}

			style := styles.text
			if cell.Numeric {
				if err := f.SetCellValue(excelSheet, ref, cell.Amount.InexactFloat64()); err != nil {
					return nil, err
				}
				if colIdx >= firstAmountColumn {
					style = styles.number
				}
			} else if err := f.SetCellValue(excelSheet, ref, cell.Text); err != nil {
				return nil, err
			}

			if err := f.SetCellStyle(excelSheet, ref, ref, style); err != nil {
				return nil, err
			}
		}
		rowIdx++
	}

	if rowIdx > excelFirstData {
		if err := f.AutoFilter(excelSheet, fmt.Sprintf("A2:%s%d", lastCol, rowIdx-1), nil); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type excelStyles struct {
	category     int
	header       int
	eeHeader     int
	erHeader     int
	resultHeader int
	text         int
	number       int
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

func headerStyle(fill string) *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder,
	}
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var s excelStyles
	var err error

	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.category, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorder,
		}},
		{&s.header, headerStyle("92D050")},
		{&s.eeHeader, headerStyle("FFFF00")},
		{&s.erHeader, headerStyle("FFC000")},
		{&s.resultHeader, headerStyle("FF99CC")},
		{&s.text, &excelize.Style{Border: thinBorder}},
		{&s.number, &excelize.Style{Border: thinBorder, NumFmt: numFmtThousands}},
	}

	for _, d := range defs {
		if *d.dst, err = f.NewStyle(d.style); err != nil {
			return excelStyles{}, err
		}
	}
	return s, nil
}
