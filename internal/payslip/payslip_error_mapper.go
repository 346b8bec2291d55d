package payslip

import (
	"errors"

	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/dberr"

	"gorm.io/gorm"
)

// Pelanggaran unique lain di tabel payslips berarti entry sudah punya payslip.
var uniqueConstraints = map[string]error{
	"uq_payslips_number": paysliperrors.ErrPayslipNumberTaken,
	"payslip_number":     paysliperrors.ErrPayslipNumberTaken,
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paysliperrors.ErrPayslipNotFound
	}
	return dberr.MapUnique(err, uniqueConstraints, paysliperrors.ErrPayslipAlreadyExists)
}
