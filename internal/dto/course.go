package dto

// CreateCourseRequest creates a course.
type CreateCourseRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=160"`
	Instructor   string  `json:"instructor" validate:"required,min=1,max=120"`
	DepartmentID *string `json:"department_id" validate:"omitempty,uuid4"`
	WeeklyHours  int     `json:"weekly_hours" validate:"required,min=1,max=20"`
	StudentCount int     `json:"student_count" validate:"required,min=1"`
	Year         int     `json:"year" validate:"omitempty,min=1,max=4"`
}

// UpdateCourseRequest updates a course. All fields are optional.
type UpdateCourseRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=160"`
	Instructor   *string `json:"instructor" validate:"omitempty,min=1,max=120"`
	DepartmentID *string `json:"department_id" validate:"omitempty,uuid4"`
	WeeklyHours  *int    `json:"weekly_hours" validate:"omitempty,min=1,max=20"`
	StudentCount *int    `json:"student_count" validate:"omitempty,min=1"`
	Year         *int    `json:"year" validate:"omitempty,min=1,max=4"`
}

// CourseQuery filters the course listing.
type CourseQuery struct {
	Search       string `form:"search"`
	Instructor   string `form:"instructor"`
	DepartmentID string `form:"department_id"`
	Year         int    `form:"year"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order"`
}
