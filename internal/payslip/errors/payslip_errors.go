package paysliperrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrPayrollRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrPayslipAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"payslip already exists for this payroll entry",
		http.StatusConflict,
	)
	ErrPayslipNumberTaken = apperror.New(
		apperror.CodeConflict,
		"payslip number already used",
		http.StatusConflict,
	)
	ErrNoneGenerated = apperror.New(
		apperror.CodeInvalidState,
		"no payslips were generated",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date filter, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidSortField = apperror.New(
		apperror.CodeInvalidInput,
		"invalid sort field",
		http.StatusBadRequest,
	)
	ErrRenderFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to render payslip document",
		http.StatusInternalServerError,
	)
	ErrAsyncUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"asynchronous payslip generation is not configured",
		http.StatusServiceUnavailable,
	)
)
