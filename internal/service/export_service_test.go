package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

func newExportFixture(t *testing.T) (*ExportService, *memEntryRepo) {
	t.Helper()
	entries := &memEntryRepo{}
	rooms := memRooms{{ID: "room-a", Name: "Hall A", Capacity: 40}}
	courses := memCourses{{ID: "course-algo", Name: "Algorithms", Instructor: "Dr. Chen", WeeklyHours: 2, StudentCount: 25}}
	svc := NewExportService(rooms, memDepartments{}, courses, entries, memExams{}, entries, testGrid(t), "Test Institute", nil, nil)
	return svc, entries
}

func TestExportJSONSnapshot(t *testing.T) {
	svc, entries := newExportFixture(t)
	require.NoError(t, entries.Create(context.Background(), &models.ScheduleEntry{
		CourseID: "course-algo", RoomID: "room-a", Day: "MONDAY", StartTime: "08:30", EndTime: "09:15",
	}))

	snapshot, err := svc.ExportJSON(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Rooms, 1)
	assert.Len(t, snapshot.Courses, 1)
	assert.Len(t, snapshot.Entries, 1)
	assert.False(t, snapshot.ExportedAt.IsZero())
}

func TestImportJSONSkipsUnknownReferences(t *testing.T) {
	svc, entries := newExportFixture(t)

	snapshot := models.DatasetSnapshot{
		Entries: []models.ScheduleEntry{
			{CourseID: "course-algo", RoomID: "room-a", Day: "MONDAY", StartTime: "08:30", EndTime: "09:15"},
			{CourseID: "course-unknown", RoomID: "room-a", Day: "TUESDAY", StartTime: "08:30", EndTime: "09:15"},
		},
	}
	payload, err := json.Marshal(snapshot)
	require.NoError(t, err)

	imported, skipped, err := svc.ImportJSON(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, skipped)
	assert.Len(t, entries.entries, 1)
}

func TestImportJSONRejectsMalformedPayload(t *testing.T) {
	svc, _ := newExportFixture(t)

	_, _, err := svc.ImportJSON(context.Background(), []byte("{not json"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportCSVContainsSessionRows(t *testing.T) {
	svc, entries := newExportFixture(t)
	require.NoError(t, entries.Create(context.Background(), &models.ScheduleEntry{
		CourseID: "course-algo", RoomID: "room-a", Day: "MONDAY", StartTime: "08:30", EndTime: "09:15",
	}))

	data, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("Day,Start,End,Course,Instructor,Room")))
	assert.Contains(t, string(data), "MONDAY,08:30,09:15,Algorithms,Dr. Chen,Hall A")
}

func TestExportWeekPDFProducesDocument(t *testing.T) {
	svc, entries := newExportFixture(t)
	require.NoError(t, entries.Create(context.Background(), &models.ScheduleEntry{
		CourseID: "course-algo", RoomID: "room-a", Day: "MONDAY", StartTime: "08:30", EndTime: "09:15",
	}))

	data, err := svc.ExportWeekPDF(context.Background())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
