package payslip_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"go-payroll/internal/payslip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderExcel(t *testing.T) {
	t.Run("headers and data rows", func(t *testing.T) {
		content, err := payslip.RenderExcel([]payslip.PayslipDetail{sampleDetail(t)})
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(content))
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{"Payslips"}, f.GetSheetList())

		get := func(cell string) string {
			v, err := f.GetCellValue("Payslips", cell, excelize.Options{RawCellValue: true})
			require.NoError(t, err)
			return v
		}

		assert.Equal(t, payslip.CategoryEarnings, get("J1"))
		assert.Equal(t, payslip.CategoryEE, get("L1"))
		assert.Equal(t, payslip.CategoryER, get("R1"))
		assert.Equal(t, "No", get("A2"))
		assert.Equal(t, "Total Employer Cost", get("Y2"))

		assert.Equal(t, "Budi Santoso", get("B3"))
		assert.Equal(t, "01/01/2025 - 31/01/2025", get("D3"))
		assert.Equal(t, "6000000", get("H3"))
		assert.Equal(t, "-", get("J3"))
		assert.Equal(t, "120000", get("L3"))
		assert.Equal(t, "5760000", get("W3"))

		merges, err := f.GetMergeCells("Payslips")
		require.NoError(t, err)
		axes := make([]string, 0, len(merges))
		for _, m := range merges {
			axes = append(axes, m.GetStartAxis()+":"+m.GetEndAxis())
		}
		assert.ElementsMatch(t, []string{"J1:K1", "L1:Q1", "R1:V1"}, axes)
	})

	t.Run("empty result keeps headers", func(t *testing.T) {
		content, err := payslip.RenderExcel(nil)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(content))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Payslips")
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestMarotoRenderer(t *testing.T) {
	r := payslip.NewMarotoRenderer()

	t.Run("single payslip", func(t *testing.T) {
		content, err := r.RenderPayslip(sampleDetail(t), "PT Maju Jaya")
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	})

	t.Run("report", func(t *testing.T) {
		content, err := r.RenderReport([]payslip.PayslipDetail{sampleDetail(t), sampleDetail(t)}, "PT Maju Jaya", time.Now())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	})

	t.Run("empty report", func(t *testing.T) {
		content, err := r.RenderReport(nil, "PT Maju Jaya", time.Now())
		require.NoError(t, err)
		assert.NotEmpty(t, content)
	})
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s := payslip.NewLocalStorage(t.TempDir())

	path := payslip.StoragePath("company-1", "PS-20250131-EMP001-0001")
	assert.Equal(t, "payslips/company-1/ps-20250131-emp001-0001.pdf", path)

	ok, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, path, []byte("%PDF-1.3")))

	ok, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), got)

	assert.Error(t, s.Save(ctx, "../escape.pdf", []byte("x")))
	assert.Error(t, s.Save(ctx, "/etc/passwd", []byte("x")))

	ok, err = s.Exists(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
