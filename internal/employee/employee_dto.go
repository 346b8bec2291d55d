package employee

type CreateEmployeeRequest struct {
	EmployeeNumber   string `json:"employee_number" binding:"omitempty,max=50"`
	FullName         string `json:"full_name" binding:"required,max=255"`
	Email            string `json:"email" binding:"required,email"`
	Branch           string `json:"branch" binding:"omitempty,max=100"`
	PositionID       string `json:"position_id" binding:"required,uuid"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=permanent contract probation"`
}

type UpdateEmployeeRequest struct {
	EmployeeNumber   string `json:"employee_number" binding:"required,max=50"`
	FullName         string `json:"full_name" binding:"required,max=255"`
	Email            string `json:"email" binding:"required,email"`
	Branch           string `json:"branch" binding:"omitempty,max=100"`
	PositionID       string `json:"position_id" binding:"required,uuid"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"required,oneof=permanent contract probation"`
}

type ListEmployeesFilter struct {
	Search       string `form:"q"`
	Branch       string `form:"branch"`
	DepartmentID string `form:"department_id"`
	SortBy       string `form:"sort_by"`
	SortDir      string `form:"sort_dir"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	EmployeeNumber   string `json:"employee_number"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Branch           string `json:"branch,omitempty"`
	DepartmentID     string `json:"department_id,omitempty"`
	DepartmentName   string `json:"department_name,omitempty"`
	PositionID       string `json:"position_id,omitempty"`
	PositionName     string `json:"position_name,omitempty"`
	HireDate         string `json:"hire_date,omitempty"`
	EmploymentStatus string `json:"employment_status"`
}

// EmployeeOption dipakai dropdown form (employee salary, filter payslip).
type EmployeeOption struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}

type EmployeePage struct {
	Items    []EmployeeResponse
	Total    int64
	Page     int
	PageSize int
}
