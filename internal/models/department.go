package models

import "time"

// Department groups rooms and courses under a faculty unit. Names and short
// codes are unique.
type Department struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GeneralDepartmentName is rendered for rooms and courses whose department
// reference is missing or dangling. Department deletion never cascades.
const GeneralDepartmentName = "General"
