package middleware

import (
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

const (
	ContextEmployeeID = "employee_id"
	ContextCompanyID  = "company_id"
)

// RBACService adalah interface lokal.
// Apapun package yang punya method Enforce(domain.EnforceRequest) bisa masuk ke sini.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString(ContextEmployeeID)
		companyID := c.GetString(ContextCompanyID)
		if employeeID == "" || companyID == "" {
			abortWithError(c, ErrMissingAuth, nil)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			abortWithError(c, apperror.ErrInternal, err.Error())
			return
		}

		if !allowed {
			abortWithError(c, apperror.ErrForbidden, gin.H{"required": resource + ":" + action})
			return
		}
		c.Next()
	}
}

// RBACAny lolos bila salah satu action diizinkan. Action pertama yang lolos
// disimpan di context key "rbac_action" untuk handler yang peduli scope.
func RBACAny(service RBACService, resource string, actions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString(ContextEmployeeID)
		companyID := c.GetString(ContextCompanyID)
		if employeeID == "" || companyID == "" {
			abortWithError(c, ErrMissingAuth, nil)
			return
		}

		for _, action := range actions {
			allowed, err := service.Enforce(domain.EnforceRequest{
				EmployeeID: employeeID,
				CompanyID:  companyID,
				Resource:   resource,
				Action:     action,
			})
			if err != nil {
				abortWithError(c, apperror.ErrInternal, err.Error())
				return
			}
			if allowed {
				c.Set("rbac_action", action)
				c.Next()
				return
			}
		}

		abortWithError(c, apperror.ErrForbidden, gin.H{"required": resource})
	}
}
