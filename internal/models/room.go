package models

import (
	"time"

	"github.com/lib/pq"
)

// Room represents a physical room that can host course sessions and exams.
type Room struct {
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Capacity     int            `db:"capacity" json:"capacity"`
	DepartmentID *string        `db:"department_id" json:"department_id,omitempty"`
	Features     pq.StringArray `db:"features" json:"features"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// DepartmentKey returns the owning department id or "" for general-purpose rooms.
func (r Room) DepartmentKey() string {
	if r.DepartmentID == nil {
		return ""
	}
	return *r.DepartmentID
}

// RoomFilter defines filter criteria for listing rooms.
type RoomFilter struct {
	Search       string
	DepartmentID string
	MinCapacity  int
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
