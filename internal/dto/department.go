package dto

// CreateDepartmentRequest creates a department.
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	Code string `json:"code" validate:"required,min=1,max=12,alphanum"`
}

// UpdateDepartmentRequest renames a department or changes its short code.
type UpdateDepartmentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	Code string `json:"code" validate:"required,min=1,max=12,alphanum"`
}
