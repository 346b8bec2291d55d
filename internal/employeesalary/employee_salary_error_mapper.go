package employeesalary

import (
	"errors"

	employeesalaryerrors "go-payroll/internal/employeesalary/errors"
	"go-payroll/internal/shared/dberr"

	"gorm.io/gorm"
)

var uniqueConstraints = map[string]error{
	"uq_employee_salaries_employee_default": employeesalaryerrors.ErrSalaryAlreadyExists,
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeesalaryerrors.ErrSalaryNotFound
	}
	return dberr.MapUnique(err, uniqueConstraints, nil)
}
