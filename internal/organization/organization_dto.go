package organization

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type CreatePositionRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

type ListPositionsFilter struct {
	DepartmentID string `form:"department_id"`
}

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PositionResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
}
