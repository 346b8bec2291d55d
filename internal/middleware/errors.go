package middleware

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New("INVALID_TOKEN", "Invalid or malformed token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	ErrMissingClaim  = apperror.New("INVALID_TOKEN", "Required claim not found in token", http.StatusUnauthorized)
	ErrMissingAuth   = apperror.New(apperror.CodeUnauthorized, "missing auth context", http.StatusUnauthorized)
	ErrProcessing    = apperror.New("PROCESSING", "Transaksi Anda sedang diproses, mohon tunggu sebentar.", http.StatusConflict)
	ErrTooMany       = apperror.New(apperror.CodeTooManyRequests, "Too many requests", http.StatusTooManyRequests)
)

func abortWithError(c *gin.Context, err *apperror.AppError, details any) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, details)
	c.Abort()
}
