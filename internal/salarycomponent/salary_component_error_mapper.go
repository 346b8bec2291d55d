package salarycomponent

import (
	"errors"

	salarycomponenterrors "go-payroll/internal/salarycomponent/errors"
	"go-payroll/internal/shared/dberr"

	"gorm.io/gorm"
)

var uniqueConstraints = map[string]error{
	"uq_salary_components_company_name": salarycomponenterrors.ErrSalaryComponentNameExists,
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarycomponenterrors.ErrSalaryComponentNotFound
	}
	return dberr.MapUnique(err, uniqueConstraints, nil)
}
