package employeesalary

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateEmployeeSalaryRequest struct {
	EmployeeID  string               `json:"employee_id" binding:"required,uuid"`
	BasicSalary *decimal.Decimal     `json:"basic_salary" binding:"required"`
	Components  []ComponentSelection `json:"components"`
	IsActive    *bool                `json:"is_active"`
	Notes       *string              `json:"notes" binding:"omitempty,max=500"`
}

type UpdateEmployeeSalaryRequest struct {
	BasicSalary *decimal.Decimal     `json:"basic_salary" binding:"required"`
	Components  []ComponentSelection `json:"components"`
	IsActive    *bool                `json:"is_active"`
	Notes       *string              `json:"notes" binding:"omitempty,max=500"`
}

type ListEmployeeSalariesFilter struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
	Search     string `form:"search"`
}

type EmployeeSalaryResponse struct {
	ID           string               `json:"id"`
	EmployeeID   string               `json:"employee_id"`
	EmployeeName string               `json:"employee_name,omitempty"`
	BasicSalary  decimal.Decimal      `json:"basic_salary"`
	Components   []ComponentSelection `json:"components"`
	IsActive     bool                 `json:"is_active"`
	Notes        *string              `json:"notes,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type PayrollPreviewResponse struct {
	SalaryID     string    `json:"salary_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Breakdown    Breakdown `json:"breakdown"`
}
