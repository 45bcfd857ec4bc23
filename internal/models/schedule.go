package models

import "time"

// ScheduleEntry is a recurring weekly course session occupying one time slot
// in one room. Start and end clocks are the source of truth for overlap math.
type ScheduleEntry struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	Day       string    `db:"day" json:"day"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleEntryFilter defines filter criteria for listing schedule entries.
type ScheduleEntryFilter struct {
	CourseID  string
	RoomID    string
	Day       string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Conflict dimensions reported by placement validation.
const (
	ConflictDimensionRoom       = "ROOM"
	ConflictDimensionInstructor = "INSTRUCTOR"
)

// PlacementConflict describes the existing occupation that blocks a placement.
type PlacementConflict struct {
	Dimension  string `json:"dimension"`
	EntryID    string `json:"entry_id,omitempty"`
	ExamID     string `json:"exam_id,omitempty"`
	CourseID   string `json:"course_id"`
	RoomID     string `json:"room_id"`
	Instructor string `json:"instructor,omitempty"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// PlacementConflictError is returned when a placement collides with an
// existing session or exam.
type PlacementConflictError struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Conflict PlacementConflict `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *PlacementConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
