package employeeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound            = apperror.New(apperror.CodeNotFound, "Employee not found", http.StatusNotFound)
	ErrEmployeeAlreadyExists       = apperror.New(apperror.CodeConflict, "Employee with the same email already exists", http.StatusConflict)
	ErrEmployeeNumberAlreadyExists = apperror.New(apperror.CodeConflict, "Employee number already exists in this company", http.StatusConflict)

	// posisi menentukan departemen karyawan
	ErrPositionNotFound = apperror.New(apperror.CodeInvalidInput, "Position not found for this company", http.StatusBadRequest)

	ErrInvalidHireDate  = apperror.New(apperror.CodeInvalidInput, "Invalid hire_date format, expected YYYY-MM-DD", http.StatusBadRequest)
	ErrInvalidSortField = apperror.New(apperror.CodeInvalidInput, "Invalid sort field", http.StatusBadRequest)
	ErrInvalidCompanyID = apperror.New(apperror.CodeInvalidInput, "Invalid company ID", http.StatusBadRequest)
)
