package salarycomponent_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/salarycomponent"
	salarycomponenterrors "go-payroll/internal/salarycomponent/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeSalaryComponentService struct {
	createFn     func(ctx context.Context, companyID string, req salarycomponent.CreateSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error)
	getAllFn     func(ctx context.Context, companyID string, filter salarycomponent.ListSalaryComponentsFilter) ([]salarycomponent.SalaryComponentResponse, error)
	getByIDFn    func(ctx context.Context, companyID, id string) (salarycomponent.SalaryComponentResponse, error)
	updateFn     func(ctx context.Context, companyID, id string, req salarycomponent.UpdateSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error)
	deleteFn     func(ctx context.Context, companyID, id string) error
	findActiveFn func(ctx context.Context, companyID string, ids []string) ([]salarycomponent.SalaryComponent, error)
}

func (f *fakeSalaryComponentService) Create(ctx context.Context, companyID string, req salarycomponent.CreateSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
	return f.createFn(ctx, companyID, req)
}
func (f *fakeSalaryComponentService) GetAll(ctx context.Context, companyID string, filter salarycomponent.ListSalaryComponentsFilter) ([]salarycomponent.SalaryComponentResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}
func (f *fakeSalaryComponentService) GetByID(ctx context.Context, companyID, id string) (salarycomponent.SalaryComponentResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}
func (f *fakeSalaryComponentService) Update(ctx context.Context, companyID, id string, req salarycomponent.UpdateSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
	return f.updateFn(ctx, companyID, id, req)
}
func (f *fakeSalaryComponentService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}
func (f *fakeSalaryComponentService) FindActive(ctx context.Context, companyID string, ids []string) ([]salarycomponent.SalaryComponent, error) {
	return f.findActiveFn(ctx, companyID, ids)
}

func TestSalaryComponentHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		svc := &fakeSalaryComponentService{
			createFn: func(ctx context.Context, cid string, req salarycomponent.CreateSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "percentage", req.CalculationType)
				assert.Equal(t, "5", req.PercentageOfBasic.String())
				return salarycomponent.SalaryComponentResponse{ID: uuid.NewString(), Name: req.Name}, nil
			},
		}

		h := salarycomponent.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"name":"Bonus","type":"earning","calculation_type":"percentage","percentage_of_basic":"5"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/salary-components", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", companyID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		h := salarycomponent.NewHandler(&fakeSalaryComponentService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"name":"Bonus","type":"benefit","calculation_type":"fixed"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/salary-components", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict mapped from service", func(t *testing.T) {
		svc := &fakeSalaryComponentService{
			createFn: func(ctx context.Context, cid string, req salarycomponent.CreateSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
				return salarycomponent.SalaryComponentResponse{}, salarycomponenterrors.ErrSalaryComponentNameExists
			},
		}

		h := salarycomponent.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"name":"Bonus","type":"earning","calculation_type":"fixed","default_amount":100000}`
		c.Request = httptest.NewRequest(http.MethodPost, "/salary-components", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestSalaryComponentHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeSalaryComponentService{
		getAllFn: func(ctx context.Context, cid string, filter salarycomponent.ListSalaryComponentsFilter) ([]salarycomponent.SalaryComponentResponse, error) {
			assert.Equal(t, "deduction", filter.Type)
			return []salarycomponent.SalaryComponentResponse{{ID: "c-1", Name: "Parking Fee"}}, nil
		},
	}

	h := salarycomponent.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/salary-components?type=deduction", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Parking Fee")
}

func TestSalaryComponentHandler_Delete_InternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeSalaryComponentService{
		deleteFn: func(ctx context.Context, cid, id string) error {
			return errors.New("db down")
		},
	}

	h := salarycomponent.NewHandler(svc)
	r := gin.New()
	r.DELETE("/salary-components/:id", h.Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/salary-components/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
}
