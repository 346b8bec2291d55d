package employee

import (
	"errors"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/dberr"

	"gorm.io/gorm"
)

// uniqueConstraints memetakan nama unique index (lihat tag gorm di
// Employee) ke error domain.
var uniqueConstraints = map[string]error{
	"uq_employee_number": employeeerrors.ErrEmployeeNumberAlreadyExists,
	"uq_employee_email":  employeeerrors.ErrEmployeeAlreadyExists,
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return dberr.MapUnique(err, uniqueConstraints, nil)
}
