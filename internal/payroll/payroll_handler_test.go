package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	payroll.Service

	createRunFn func(ctx context.Context, companyID string, req payroll.CreatePayrollRunRequest) (payroll.PayrollRunResponse, error)
	getRunsFn   func(ctx context.Context, companyID string, filter payroll.ListPayrollRunsFilter) ([]payroll.PayrollRunResponse, error)
	processFn   func(ctx context.Context, companyID, runID string) (payroll.PayrollRunResponse, error)
	deleteRunFn func(ctx context.Context, companyID, id string) error
}

func (f *fakePayrollService) CreateRun(ctx context.Context, companyID string, req payroll.CreatePayrollRunRequest) (payroll.PayrollRunResponse, error) {
	return f.createRunFn(ctx, companyID, req)
}

func (f *fakePayrollService) GetRuns(ctx context.Context, companyID string, filter payroll.ListPayrollRunsFilter) ([]payroll.PayrollRunResponse, error) {
	return f.getRunsFn(ctx, companyID, filter)
}

func (f *fakePayrollService) Process(ctx context.Context, companyID, runID string) (payroll.PayrollRunResponse, error) {
	return f.processFn(ctx, companyID, runID)
}

func (f *fakePayrollService) DeleteRun(ctx context.Context, companyID, id string) error {
	return f.deleteRunFn(ctx, companyID, id)
}

const runBody = `{"title":"Payroll Januari","pay_period_start":"2024-01-01","pay_period_end":"2024-01-31","pay_date":"2024-01-25"}`

func TestPayrollHandler_CreateRun(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("stores idempotent result and releases lock", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		svc := &fakePayrollService{
			createRunFn: func(ctx context.Context, companyID string, req payroll.CreatePayrollRunRequest) (payroll.PayrollRunResponse, error) {
				assert.Equal(t, "company-1", companyID)
				return payroll.PayrollRunResponse{ID: "run-1", Title: req.Title, Status: payroll.RunStatusDraft}, nil
			},
		}

		payload, _ := json.Marshal(payroll.PayrollRunResponse{ID: "run-1", Title: "Payroll Januari", Status: payroll.RunStatusDraft})
		mock.ExpectSet("idemp:key", payload, 24*time.Hour).SetVal("OK")
		mock.ExpectDel("idemp:key:lock").SetVal(1)

		h := payroll.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(runBody))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", "company-1")
		c.Set(middleware.IdempotencyCacheKey, "idemp:key")
		c.Set(middleware.IdempotencyLockKey, "idemp:key:lock")

		h.CreateRun(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "run-1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("validation error", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(`{"title":""}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.CreateRun(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error mapped", func(t *testing.T) {
		svc := &fakePayrollService{
			createRunFn: func(ctx context.Context, companyID string, req payroll.CreatePayrollRunRequest) (payroll.PayrollRunResponse, error) {
				return payroll.PayrollRunResponse{}, payrollerrors.ErrInvalidDateRange
			},
		}
		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(runBody))
		c.Request.Header.Set("Content-Type", "application/json")

		h.CreateRun(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})
}

func TestPayrollHandler_GetRuns_Paginates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayrollService{
		getRunsFn: func(ctx context.Context, companyID string, filter payroll.ListPayrollRunsFilter) ([]payroll.PayrollRunResponse, error) {
			assert.Equal(t, "draft", filter.Status)
			return []payroll.PayrollRunResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll-runs?status=draft&page=2&page_size=2", nil)

	h.GetRuns(c)

	require.Equal(t, http.StatusOK, w.Code)

	var env response.ApiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(3), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
	data := env.Data.([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "c", data[0].(map[string]any)["id"])
}

func TestPayrollHandler_Process(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("no active salaries is 422", func(t *testing.T) {
		svc := &fakePayrollService{
			processFn: func(ctx context.Context, companyID, runID string) (payroll.PayrollRunResponse, error) {
				assert.Equal(t, "run-1", runID)
				return payroll.PayrollRunResponse{}, payrollerrors.ErrNoActiveSalaries
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs/run-1/process", nil)
		c.Params = gin.Params{{Key: "id", Value: "run-1"}}

		h.Process(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakePayrollService{
			processFn: func(ctx context.Context, companyID, runID string) (payroll.PayrollRunResponse, error) {
				return payroll.PayrollRunResponse{ID: runID, Status: payroll.RunStatusCompleted, EntryCount: 4}, nil
			},
		}

		h := payroll.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs/run-1/process", nil)
		c.Params = gin.Params{{Key: "id", Value: "run-1"}}

		h.Process(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"entry_count":4`)
	})
}

func TestPayrollHandler_DeleteRun(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayrollService{
		deleteRunFn: func(ctx context.Context, companyID, id string) error {
			return payrollerrors.ErrDeleteOnlyDraft
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/payroll-runs/run-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "run-1"}}

	h.DeleteRun(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}
