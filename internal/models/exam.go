package models

import (
	"fmt"
	"time"
)

// Exam is a one-off fixed placement. The end clock is derived from start plus
// duration and never stored.
type Exam struct {
	ID              string    `db:"id" json:"id"`
	CourseID        string    `db:"course_id" json:"course_id"`
	RoomID          string    `db:"room_id" json:"room_id"`
	Day             string    `db:"day" json:"day"`
	StartTime       string    `db:"start_time" json:"start_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	ExamDate        *string   `db:"exam_date" json:"exam_date,omitempty"`
	Fixed           bool      `db:"fixed" json:"fixed"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// EndTime derives the exam's end clock from its start and duration.
func (e Exam) EndTime() string {
	var h, m int
	if _, err := fmt.Sscanf(e.StartTime, "%d:%d", &h, &m); err != nil {
		return e.StartTime
	}
	total := h*60 + m + e.DurationMinutes
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ExamFilter defines filter criteria for listing exams.
type ExamFilter struct {
	CourseID  string
	RoomID    string
	Day       string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
