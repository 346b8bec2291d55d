package payslip

import (
	"context"
	"net/http"

	"go-payroll/internal/middleware"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	actionReadAny = "read_any"
	actionReadOwn = "read_own"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// scope dibentuk dari action yang lolos RBACAny.
func scopeFromContext(c *gin.Context) Scope {
	scope := Scope{CompanyID: c.GetString(middleware.ContextCompanyID)}
	switch c.GetString("rbac_action") {
	case actionReadAny:
		scope.ReadAny = true
	case actionReadOwn:
		scope.EmployeeID = c.GetString(middleware.ContextEmployeeID)
	}
	return scope
}

// generateScope: pembuat payslip selalu bekerja di level company.
func generateScope(c *gin.Context) Scope {
	return Scope{CompanyID: c.GetString(middleware.ContextCompanyID), ReadAny: true}
}

func (h *Handler) List(c *gin.Context) {
	var filter ListPayslipsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	page, err := h.service.List(c.Request.Context(), scopeFromContext(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(page.Total, page.Page, page.PerPage)
	response.Success(c, http.StatusOK, page.Items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), scopeFromContext(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Generate(c *gin.Context) {
	defer middleware.ReleaseIdempotency(c, h.rdb)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	result, err := h.service.Generate(c.Request.Context(), generateScope(c), req.PayrollEntryIDs)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.writeGenerationResult(c, result)
}

func (h *Handler) BulkGenerate(c *gin.Context) {
	defer middleware.ReleaseIdempotency(c, h.rdb)

	var req BulkGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	result, err := h.service.BulkGenerate(c.Request.Context(), generateScope(c), req.PayrollRunID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// bulk selalu 200: payslip yang sudah ada dihitung skipped, bukan error
	middleware.StoreIdempotentResult(c, h.rdb, result)
	response.Success(c, http.StatusOK, result, nil)
}

// writeGenerationResult (Generate per entry): 200 bila minimal satu payslip
// dibuat, selain itu 422.
func (h *Handler) writeGenerationResult(c *gin.Context, result GenerationResult) {
	if result.GeneratedCount == 0 {
		e := paysliperrors.ErrNoneGenerated
		response.Error(c, e.HTTPStatus, e.Code, e.Message, result)
		return
	}

	middleware.StoreIdempotentResult(c, h.rdb, result)
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) RequestBulkGenerate(c *gin.Context) {
	var req BulkGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.RequestBulkGenerate(c.Request.Context(), generateScope(c), req.PayrollRunID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	file, err := h.service.Download(c.Request.Context(), scopeFromContext(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	writeFile(c, file)
}

func (h *Handler) ExportExcel(c *gin.Context) {
	h.export(c, h.service.ExportExcel)
}

func (h *Handler) ExportPDF(c *gin.Context) {
	h.export(c, h.service.ExportPDF)
}

type exportFunc func(ctx context.Context, scope Scope, filter ListPayslipsFilter) (ExportFile, error)

func (h *Handler) export(c *gin.Context, fn exportFunc) {
	var filter ListPayslipsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	file, err := fn(c.Request.Context(), scopeFromContext(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	writeFile(c, file)
}

func writeFile(c *gin.Context, file ExportFile) {
	response.Attachment(c, file.FileName, file.ContentType, file.Content)
}
