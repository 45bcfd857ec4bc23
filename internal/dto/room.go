package dto

// CreateRoomRequest creates a new room.
type CreateRoomRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=120"`
	Capacity     int      `json:"capacity" validate:"required,min=1"`
	DepartmentID *string  `json:"department_id" validate:"omitempty,uuid4"`
	Features     []string `json:"features"`
}

// UpdateRoomRequest updates an existing room. All fields are optional.
type UpdateRoomRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Capacity     *int     `json:"capacity" validate:"omitempty,min=1"`
	DepartmentID *string  `json:"department_id" validate:"omitempty,uuid4"`
	Features     []string `json:"features"`
}

// RoomQuery filters the room listing.
type RoomQuery struct {
	Search       string `form:"search"`
	DepartmentID string `form:"department_id"`
	MinCapacity  int    `form:"min_capacity"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order"`
}

// AvailableRoomsQuery asks which rooms are free for a course at an interval.
type AvailableRoomsQuery struct {
	CourseID  string `form:"course_id" validate:"required"`
	Day       string `form:"day" validate:"required"`
	StartTime string `form:"start_time" validate:"required"`
	EndTime   string `form:"end_time" validate:"required"`
}
