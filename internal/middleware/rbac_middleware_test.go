package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEnforcer struct {
	allowed map[string]bool
	err     error
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.allowed[req.Resource+":"+req.Action], f.err
}

func newRBACRouter(auth bool, mws ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if auth {
		r.Use(func(c *gin.Context) {
			c.Set(ContextEmployeeID, "emp-1")
			c.Set(ContextCompanyID, "company-1")
			c.Next()
		})
	}
	handlers := append(mws, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("rbac_action"))
	})
	r.GET("/x", handlers...)
	return r
}

func TestRBACAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		auth       bool
		svc        *fakeEnforcer
		wantStatus int
	}{
		{"allowed", true, &fakeEnforcer{allowed: map[string]bool{"salary:read": true}}, http.StatusOK},
		{"forbidden", true, &fakeEnforcer{}, http.StatusForbidden},
		{"no auth context", false, &fakeEnforcer{}, http.StatusUnauthorized},
		{"enforcer error", true, &fakeEnforcer{err: errors.New("boom")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRBACRouter(tt.auth, RBACAuthorize(tt.svc, "salary", "read"))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRBACAny_PicksFirstAllowedAction(t *testing.T) {
	svc := &fakeEnforcer{allowed: map[string]bool{"payslip:read_own": true}}
	r := newRBACRouter(true, RBACAny(svc, "payslip", "read_any", "read_own"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "read_own", w.Body.String())
}

func TestRBACAny_NoneAllowed(t *testing.T) {
	r := newRBACRouter(true, RBACAny(&fakeEnforcer{}, "payslip", "read_any", "read_own"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
