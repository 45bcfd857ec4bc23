package dto

import (
	"github.com/noah-isme/campus-timetable-api/internal/allocator"
	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// CreateExamRequest schedules a fixed exam. RoomID may be omitted to let the
// engine pick the best free room, same as a manual session placement.
type CreateExamRequest struct {
	CourseID        string  `json:"course_id" validate:"required"`
	RoomID          string  `json:"room_id" validate:"omitempty"`
	Day             string  `json:"day" validate:"required"`
	StartTime       string  `json:"start_time" validate:"required"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=15,max=480"`
	ExamDate        *string `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
}

// CreateExamResponse reports the stored exam and any capacity warning for a
// deliberately chosen room.
type CreateExamResponse struct {
	Exam    models.Exam                `json:"exam"`
	Warning *allocator.CapacityWarning `json:"warning,omitempty"`
}

// ExamQuery filters the exam listing.
type ExamQuery struct {
	CourseID  string `form:"course_id"`
	RoomID    string `form:"room_id"`
	Day       string `form:"day"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}
