package salarycomponenterrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrSalaryComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary component not found",
		http.StatusNotFound,
	)
	ErrSalaryComponentNameExists = apperror.New(
		apperror.CodeConflict,
		"salary component with this name already exists",
		http.StatusConflict,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"default_amount cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"percentage_of_basic must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrPercentageRequired = apperror.New(
		apperror.CodeInvalidInput,
		"percentage_of_basic is required for percentage components",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
)
