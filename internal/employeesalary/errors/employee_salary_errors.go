package employeesalaryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee salary not found",
		http.StatusNotFound,
	)
	ErrSalaryAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"salary record for this employee already exists",
		http.StatusConflict,
	)
	ErrNoActiveSalary = apperror.New(
		apperror.CodeNotFound,
		"employee has no active salary",
		http.StatusNotFound,
	)
	ErrNegativeBasicSalary = apperror.New(
		apperror.CodeInvalidInput,
		"basic_salary cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidComponents = apperror.New(
		apperror.CodeInvalidInput,
		"components contain an invalid selection",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
)
