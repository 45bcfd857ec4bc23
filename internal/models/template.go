package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Template is a named snapshot of the whole working set, restorable later.
type Template struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Data        types.JSONText `db:"data" json:"data"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// DatasetSnapshot is the serialized form of the entity collections, shared by
// templates and JSON export/import.
type DatasetSnapshot struct {
	Rooms       []Room          `json:"rooms"`
	Departments []Department    `json:"departments"`
	Courses     []Course        `json:"courses"`
	Entries     []ScheduleEntry `json:"schedule"`
	Exams       []Exam          `json:"exams"`
	ExportedAt  time.Time       `json:"exported_at"`
}
