package dto

import (
	"github.com/noah-isme/campus-timetable-api/internal/allocator"
	"github.com/noah-isme/campus-timetable-api/internal/models"
)

// ManualPlacementRequest places one course session by hand. RoomID may be
// omitted to let the engine pick the best free room.
type ManualPlacementRequest struct {
	CourseID  string `json:"course_id" validate:"required"`
	RoomID    string `json:"room_id" validate:"omitempty"`
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// ManualPlacementResponse reports the committed entry and any capacity
// warning attached to it.
type ManualPlacementResponse struct {
	Entry   models.ScheduleEntry       `json:"entry"`
	Warning *allocator.CapacityWarning `json:"warning,omitempty"`
}

// ScheduleEntryQuery filters the schedule entry listing.
type ScheduleEntryQuery struct {
	CourseID  string `form:"course_id"`
	RoomID    string `form:"room_id"`
	Day       string `form:"day"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// TimetableCell is one rendered session inside a timetable view.
type TimetableCell struct {
	EntryID    string `json:"entry_id"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Instructor string `json:"instructor"`
	RoomID     string `json:"room_id"`
	RoomName   string `json:"room_name"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// TimetableView is a full week grouped by day, ready for rendering.
type TimetableView struct {
	Days  []string                   `json:"days"`
	Slots []allocator.Slot           `json:"slots"`
	ByDay map[string][]TimetableCell `json:"by_day"`
}

// AutoScheduleResponse summarises one auto-scheduling run.
type AutoScheduleResponse struct {
	Placed   int                        `json:"placed"`
	Entries  []models.ScheduleEntry     `json:"entries"`
	Unplaced []allocator.UnplacedCourse `json:"unplaced"`
}
