package salarycomponent

import "github.com/shopspring/decimal"

type CreateSalaryComponentRequest struct {
	Name              string           `json:"name" binding:"required,max=120"`
	Description       *string          `json:"description"`
	Type              string           `json:"type" binding:"required,oneof=earning deduction"`
	CalculationType   string           `json:"calculation_type" binding:"required,oneof=fixed percentage"`
	DefaultAmount     *decimal.Decimal `json:"default_amount"`
	PercentageOfBasic *decimal.Decimal `json:"percentage_of_basic"`
	Status            string           `json:"status" binding:"omitempty,oneof=active inactive"`
}

type UpdateSalaryComponentRequest struct {
	Name              string           `json:"name" binding:"required,max=120"`
	Description       *string          `json:"description"`
	Type              string           `json:"type" binding:"required,oneof=earning deduction"`
	CalculationType   string           `json:"calculation_type" binding:"required,oneof=fixed percentage"`
	DefaultAmount     *decimal.Decimal `json:"default_amount"`
	PercentageOfBasic *decimal.Decimal `json:"percentage_of_basic"`
	Status            string           `json:"status" binding:"required,oneof=active inactive"`
}

type ListSalaryComponentsFilter struct {
	Type   string `form:"type" binding:"omitempty,oneof=earning deduction all"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive all"`
	Search string `form:"search"`
}

type SalaryComponentResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       *string         `json:"description,omitempty"`
	Type              string          `json:"type"`
	CalculationType   string          `json:"calculation_type"`
	DefaultAmount     decimal.Decimal `json:"default_amount"`
	PercentageOfBasic decimal.Decimal `json:"percentage_of_basic"`
	Status            string          `json:"status"`
}
