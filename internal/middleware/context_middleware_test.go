package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() (*gin.Engine, *observer.ObservedLogs, *string) {
		core, logs := observer.New(zapcore.InfoLevel)
		var seen string
		r := gin.New()
		r.Use(ContextLogger(zap.New(core)))
		r.GET("/employees/:id", func(c *gin.Context) {
			seen = contextutil.GetRequestID(c.Request.Context())
			c.Status(http.StatusNotFound)
		})
		return r, logs, &seen
	}

	t.Run("keeps incoming request id", func(t *testing.T) {
		r, logs, seen := newRouter()
		req := httptest.NewRequest(http.MethodGet, "/employees/1", nil)
		req.Header.Set(RequestIDHeader, "REQ-1")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, "REQ-1", *seen)
		assert.Equal(t, "REQ-1", w.Header().Get(RequestIDHeader))

		entries := logs.FilterMessage("request").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "/employees/:id", entries[0].ContextMap()["path"])
	})

	t.Run("replaces oversized request id", func(t *testing.T) {
		r, _, seen := newRouter()
		req := httptest.NewRequest(http.MethodGet, "/employees/1", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))

		r.ServeHTTP(httptest.NewRecorder(), req)

		assert.Len(t, *seen, 36)
	})
}
