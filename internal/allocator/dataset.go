package allocator

import "github.com/noah-isme/campus-timetable-api/internal/models"

// Dataset is the in-memory working set a scheduling pass operates on. The
// caller owns it and passes it explicitly; rooms, departments and courses are
// treated as read-only context while entries and exams grow as placements
// commit.
type Dataset struct {
	Rooms       []models.Room
	Departments []models.Department
	Courses     []models.Course
	Entries     []models.ScheduleEntry
	Exams       []models.Exam
}

// CourseByID returns the course with the given id, or nil.
func (d *Dataset) CourseByID(id string) *models.Course {
	for i := range d.Courses {
		if d.Courses[i].ID == id {
			return &d.Courses[i]
		}
	}
	return nil
}

// RoomByID returns the room with the given id, or nil.
func (d *Dataset) RoomByID(id string) *models.Room {
	for i := range d.Rooms {
		if d.Rooms[i].ID == id {
			return &d.Rooms[i]
		}
	}
	return nil
}

// ScheduledCount returns how many weekly sessions a course currently has.
func (d *Dataset) ScheduledCount(courseID string) int {
	count := 0
	for i := range d.Entries {
		if d.Entries[i].CourseID == courseID {
			count++
		}
	}
	return count
}

// SessionsOn returns how many sessions a course has on one day.
func (d *Dataset) SessionsOn(courseID, day string) int {
	count := 0
	for i := range d.Entries {
		if d.Entries[i].CourseID == courseID && d.Entries[i].Day == day {
			count++
		}
	}
	return count
}

// Commit appends a schedule entry so subsequent searches see the interval as
// occupied.
func (d *Dataset) Commit(entry models.ScheduleEntry) {
	d.Entries = append(d.Entries, entry)
}
