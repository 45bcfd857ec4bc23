package models

import "time"

// Course is a teachable unit with a weekly hour quota. Instructor is free
// text and doubles as the conflict key for instructor double-booking.
type Course struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Instructor   string    `db:"instructor" json:"instructor"`
	DepartmentID *string   `db:"department_id" json:"department_id,omitempty"`
	WeeklyHours  int       `db:"weekly_hours" json:"weekly_hours"`
	StudentCount int       `db:"student_count" json:"student_count"`
	Year         int       `db:"year" json:"year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DepartmentKey returns the owning department id or "" when unset.
func (c Course) DepartmentKey() string {
	if c.DepartmentID == nil {
		return ""
	}
	return *c.DepartmentID
}

// CourseStatus is the derived scheduling progress of a course. Never stored.
type CourseStatus struct {
	Course
	ScheduledHours int  `json:"scheduled_hours"`
	Satisfied      bool `json:"satisfied"`
}

// CourseFilter defines filter criteria for listing courses.
type CourseFilter struct {
	Search       string
	Instructor   string
	DepartmentID string
	Year         int
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
