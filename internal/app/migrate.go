package app

import (
	"go-payroll/internal/employee"
	"go-payroll/internal/employeesalary"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/organization"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/rbac"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/shared/counter"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate membuat atau menyesuaikan semua tabel lalu mengisi katalog permission.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	models := []any{
		&organization.Department{},
		&organization.Position{},
		&employee.Employee{},
		&salarycomponent.SalaryComponent{},
		&employeesalary.EmployeeSalary{},
		&payroll.PayrollRun{},
		&payroll.PayrollEntry{},
		&payslip.Payslip{},
		&counter.CompanyCounter{},
		&kafka.OutboxRecord{},
		&rbac.RoleRow{},
		&rbac.PermissionRow{},
		&rbac.EmployeeRole{},
		&rbac.RolePermission{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return err
	}
	if err := rbac.SeedPermissions(db); err != nil {
		return err
	}

	logger.Named("app.migrate").Info("schema migrated", zap.Int("tables", len(models)))
	return nil
}
