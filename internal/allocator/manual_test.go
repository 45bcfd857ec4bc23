package allocator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/models"
)

func TestValidatePlacementExplicitRoom(t *testing.T) {
	d := fixtureDataset()
	course := *d.CourseByID("course-db")

	decision, err := d.ValidatePlacement(PlacementRequest{
		Course:    course,
		RoomID:    "room-b",
		Day:       "tuesday",
		StartTime: "09:15",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "room-b", decision.Room.ID)
	assert.Nil(t, decision.Warning)
}

func TestValidatePlacementAutoPicksRoom(t *testing.T) {
	d := fixtureDataset()
	course := *d.CourseByID("course-db")

	decision, err := d.ValidatePlacement(PlacementRequest{
		Course:    course,
		Day:       Tuesday,
		StartTime: "09:15",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	// room-b carries the department bonus and outranks room-a.
	assert.Equal(t, "room-b", decision.Room.ID)
}

func TestValidatePlacementInstructorConflictWinsOverRoom(t *testing.T) {
	d := fixtureDataset()
	course := *d.CourseByID("course-db")

	// room-a is occupied by the same instructor's other course; the
	// instructor conflict must be the one reported.
	_, err := d.ValidatePlacement(PlacementRequest{
		Course:    course,
		RoomID:    "room-a",
		Day:       Monday,
		StartTime: "09:15",
		EndTime:   "10:00",
	})
	require.Error(t, err)
	var conflictErr *models.PlacementConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, models.ConflictDimensionInstructor, conflictErr.Type)
}

func TestValidatePlacementRoomConflict(t *testing.T) {
	d := fixtureDataset()
	course := *d.CourseByID("course-hist")

	_, err := d.ValidatePlacement(PlacementRequest{
		Course:    course,
		RoomID:    "room-a",
		Day:       Monday,
		StartTime: "09:30",
		EndTime:   "10:15",
	})
	require.Error(t, err)
	var conflictErr *models.PlacementConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, models.ConflictDimensionRoom, conflictErr.Type)
	assert.Equal(t, "entry-1", conflictErr.Conflict.EntryID)
}

func TestValidatePlacementCapacityShortfallIsWarningOnly(t *testing.T) {
	d := fixtureDataset()
	course := *d.CourseByID("course-hist") // 40 students

	decision, err := d.ValidatePlacement(PlacementRequest{
		Course:    course,
		RoomID:    "room-a", // seats 30
		Day:       Tuesday,
		StartTime: "09:15",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	require.NotNil(t, decision.Warning)
	assert.Equal(t, 30, decision.Warning.Capacity)
	assert.Equal(t, 40, decision.Warning.StudentCount)
}

func TestValidatePlacementNoRoomAvailable(t *testing.T) {
	d := fixtureDataset()
	course := *d.CourseByID("course-db")
	course.StudentCount = 500

	_, err := d.ValidatePlacement(PlacementRequest{
		Course:    course,
		Day:       Tuesday,
		StartTime: "09:15",
		EndTime:   "10:00",
	})
	assert.True(t, errors.Is(err, ErrNoRoomAvailable))
}

func TestValidatePlacementIgnoresWeeklyQuota(t *testing.T) {
	d := fixtureDataset()
	course := *d.CourseByID("course-algo") // quota 2, already has 1 entry
	d.Commit(models.ScheduleEntry{ID: "entry-2", CourseID: course.ID, RoomID: "room-a", Day: Tuesday, StartTime: "09:15", EndTime: "10:00"})

	// Quota is now met; a third manual session is still allowed.
	decision, err := d.ValidatePlacement(PlacementRequest{
		Course:    course,
		RoomID:    "room-b",
		Day:       Thursday,
		StartTime: "09:15",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "room-b", decision.Room.ID)
}

func TestValidatePlacementExcludeIDForReschedule(t *testing.T) {
	d := fixtureDataset()
	course := *d.CourseByID("course-algo")

	// Moving entry-1 within its own interval must not collide with itself.
	decision, err := d.ValidatePlacement(PlacementRequest{
		Course:    course,
		RoomID:    "room-a",
		Day:       Monday,
		StartTime: "09:15",
		EndTime:   "10:00",
		ExcludeID: "entry-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "room-a", decision.Room.ID)
}

func TestValidatePlacementRejectsBadInput(t *testing.T) {
	d := fixtureDataset()
	course := *d.CourseByID("course-db")

	_, err := d.ValidatePlacement(PlacementRequest{Course: course, Day: "FUNDAY", StartTime: "09:15", EndTime: "10:00"})
	assert.Error(t, err)

	_, err = d.ValidatePlacement(PlacementRequest{Course: course, Day: Monday, StartTime: "10:00", EndTime: "09:15"})
	assert.Error(t, err)

	_, err = d.ValidatePlacement(PlacementRequest{Course: course, RoomID: "room-missing", Day: Monday, StartTime: "09:15", EndTime: "10:00"})
	assert.Error(t, err)
}
