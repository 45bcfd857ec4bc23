package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

func strPtr(s string) *string { return &s }

func fixtureDataset() *Dataset {
	return &Dataset{
		Rooms: []models.Room{
			{ID: "room-a", Name: "A101", Capacity: 30},
			{ID: "room-b", Name: "B201", Capacity: 60, DepartmentID: strPtr("dept-cs")},
		},
		Courses: []models.Course{
			{ID: "course-algo", Name: "Algorithms", Instructor: "Dr. Chen", DepartmentID: strPtr("dept-cs"), WeeklyHours: 2, StudentCount: 28},
			{ID: "course-db", Name: "Databases", Instructor: "Dr. Chen", DepartmentID: strPtr("dept-cs"), WeeklyHours: 2, StudentCount: 25},
			{ID: "course-hist", Name: "History", Instructor: "Prof. Okafor", WeeklyHours: 1, StudentCount: 40},
		},
		Entries: []models.ScheduleEntry{
			{ID: "entry-1", CourseID: "course-algo", RoomID: "room-a", Day: Monday, StartTime: "09:15", EndTime: "10:00"},
		},
		Exams: []models.Exam{
			{ID: "exam-1", CourseID: "course-hist", RoomID: "room-b", Day: Wednesday, StartTime: "10:00", DurationMinutes: 90},
		},
	}
}

func TestFindRoomConflictOverlap(t *testing.T) {
	d := fixtureDataset()

	start, _ := ParseClock("09:30")
	end, _ := ParseClock("10:15")
	conflict, busy := d.FindRoomConflict("room-a", Monday, start, end, "")
	require.True(t, busy)
	assert.Equal(t, models.ConflictDimensionRoom, conflict.Dimension)
	assert.Equal(t, "entry-1", conflict.EntryID)
}

func TestFindRoomConflictTouchingEndpointsIsFree(t *testing.T) {
	d := fixtureDataset()

	// New session starting exactly when the existing one ends.
	start, _ := ParseClock("10:00")
	end, _ := ParseClock("10:45")
	assert.False(t, d.RoomBusy("room-a", Monday, start, end, ""))

	// New session ending exactly when the existing one starts.
	start, _ = ParseClock("08:30")
	end, _ = ParseClock("09:15")
	assert.False(t, d.RoomBusy("room-a", Monday, start, end, ""))
}

func TestFindRoomConflictOtherDayOrRoomIsFree(t *testing.T) {
	d := fixtureDataset()
	start, _ := ParseClock("09:15")
	end, _ := ParseClock("10:00")

	assert.False(t, d.RoomBusy("room-a", Tuesday, start, end, ""))
	assert.False(t, d.RoomBusy("room-b", Monday, start, end, ""))
}

func TestFindRoomConflictCoversExamDuration(t *testing.T) {
	d := fixtureDataset()

	// The exam runs 10:00-11:30; a slot inside the tail must collide.
	start, _ := ParseClock("11:00")
	end, _ := ParseClock("11:45")
	conflict, busy := d.FindRoomConflict("room-b", Wednesday, start, end, "")
	require.True(t, busy)
	assert.Equal(t, "exam-1", conflict.ExamID)
	assert.Equal(t, "11:30", conflict.EndTime)

	// Right after the exam ends the room is free again.
	start, _ = ParseClock("11:30")
	end, _ = ParseClock("12:15")
	assert.False(t, d.RoomBusy("room-b", Wednesday, start, end, ""))
}

func TestFindInstructorConflictAcrossRooms(t *testing.T) {
	d := fixtureDataset()

	// Dr. Chen teaches Algorithms in room-a; booking Databases in room-b at
	// the same time must still collide on the instructor.
	start, _ := ParseClock("09:15")
	end, _ := ParseClock("10:00")
	conflict, busy := d.FindInstructorConflict("Dr. Chen", Monday, start, end, "")
	require.True(t, busy)
	assert.Equal(t, models.ConflictDimensionInstructor, conflict.Dimension)
	assert.Equal(t, "Dr. Chen", conflict.Instructor)
	assert.Equal(t, "room-a", conflict.RoomID)

	assert.False(t, d.InstructorBusy("Prof. Okafor", Monday, start, end, ""))
}

func TestFindInstructorConflictCoversExams(t *testing.T) {
	d := fixtureDataset()

	start, _ := ParseClock("10:45")
	end, _ := ParseClock("11:30")
	conflict, busy := d.FindInstructorConflict("Prof. Okafor", Wednesday, start, end, "")
	require.True(t, busy)
	assert.Equal(t, "exam-1", conflict.ExamID)
}

func TestConflictExcludeIDSkipsOwnEntry(t *testing.T) {
	d := fixtureDataset()

	start, _ := ParseClock("09:15")
	end, _ := ParseClock("10:00")
	assert.True(t, d.RoomBusy("room-a", Monday, start, end, ""))
	assert.False(t, d.RoomBusy("room-a", Monday, start, end, "entry-1"))
	assert.False(t, d.InstructorBusy("Dr. Chen", Monday, start, end, "entry-1"))
}

func TestFindInstructorConflictEmptyNameNeverMatches(t *testing.T) {
	d := fixtureDataset()
	start, _ := ParseClock("09:15")
	end, _ := ParseClock("10:00")
	assert.False(t, d.InstructorBusy("", Monday, start, end, ""))
}
