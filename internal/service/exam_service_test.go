package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type stubExamRepo struct {
	exams  []models.Exam
	nextID int
}

func (r *stubExamRepo) List(_ context.Context, _ models.ExamFilter) ([]models.Exam, int, error) {
	return r.exams, len(r.exams), nil
}

func (r *stubExamRepo) ListAll(context.Context) ([]models.Exam, error) {
	return r.exams, nil
}

func (r *stubExamRepo) FindByID(_ context.Context, id string) (*models.Exam, error) {
	for i := range r.exams {
		if r.exams[i].ID == id {
			exam := r.exams[i]
			return &exam, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubExamRepo) Create(_ context.Context, exam *models.Exam) error {
	r.nextID++
	exam.ID = fmt.Sprintf("exam-%d", r.nextID)
	r.exams = append(r.exams, *exam)
	return nil
}

func (r *stubExamRepo) Delete(_ context.Context, id string) error {
	for i := range r.exams {
		if r.exams[i].ID == id {
			r.exams = append(r.exams[:i], r.exams[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func newExamFixture() (*ExamService, *stubExamRepo, *memEntryRepo) {
	repo := &stubExamRepo{}
	entries := &memEntryRepo{}
	rooms := memRooms{
		{ID: "room-a", Name: "Hall A", Capacity: 40},
		{ID: "room-b", Name: "Hall B", Capacity: 40},
	}
	courses := memCourses{
		{ID: "course-algo", Name: "Algorithms", Instructor: "Dr. Chen", WeeklyHours: 2, StudentCount: 25},
		{ID: "course-db", Name: "Databases", Instructor: "Prof. Okafor", WeeklyHours: 2, StudentCount: 25},
		{ID: "course-mega", Name: "Intro Lecture", Instructor: "Dr. Abebe", WeeklyHours: 1, StudentCount: 100},
	}
	svc := NewExamService(repo, rooms, memDepartments{}, courses, entries, nil, nil, nil, nil)
	return svc, repo, entries
}

func TestExamCreateStoresFixedPlacement(t *testing.T) {
	svc, repo, _ := newExamFixture()

	res, err := svc.Create(context.Background(), dto.CreateExamRequest{
		CourseID:        "course-algo",
		RoomID:          "room-a",
		Day:             "friday",
		StartTime:       "09:00",
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	assert.Equal(t, "FRIDAY", res.Exam.Day)
	assert.True(t, res.Exam.Fixed)
	assert.Equal(t, "10:30", res.Exam.EndTime())
	assert.Nil(t, res.Warning)
	assert.Len(t, repo.exams, 1)
}

func TestExamCreateAutoPicksRoomWhenOmitted(t *testing.T) {
	svc, repo, entries := newExamFixture()

	// Room-a is taken for the whole window, so the engine settles on room-b.
	require.NoError(t, entries.Create(context.Background(), &models.ScheduleEntry{
		CourseID: "course-db", RoomID: "room-a", Day: "MONDAY", StartTime: "09:00", EndTime: "10:30",
	}))

	res, err := svc.Create(context.Background(), dto.CreateExamRequest{
		CourseID:        "course-algo",
		Day:             "MONDAY",
		StartTime:       "09:00",
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	assert.Equal(t, "room-b", res.Exam.RoomID)
	assert.Nil(t, res.Warning)
	assert.Len(t, repo.exams, 1)
}

func TestExamCreateNoRoomFitsWhenOmitted(t *testing.T) {
	svc, repo, _ := newExamFixture()

	// 100 students fit neither 40-seat hall; auto-pick must refuse rather
	// than silently overbook.
	_, err := svc.Create(context.Background(), dto.CreateExamRequest{
		CourseID:        "course-mega",
		Day:             "MONDAY",
		StartTime:       "09:00",
		DurationMinutes: 90,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoCapacity.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.exams)
}

func TestExamCreateCapacityWarningOnChosenRoom(t *testing.T) {
	svc, repo, _ := newExamFixture()

	res, err := svc.Create(context.Background(), dto.CreateExamRequest{
		CourseID:        "course-mega",
		RoomID:          "room-a",
		Day:             "MONDAY",
		StartTime:       "09:00",
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Warning)
	assert.Equal(t, 40, res.Warning.Capacity)
	assert.Equal(t, 100, res.Warning.StudentCount)
	assert.Len(t, repo.exams, 1)
}

func TestExamCreateRejectsRoomOverlapWithSession(t *testing.T) {
	svc, _, entries := newExamFixture()

	// A 90-minute exam from 09:00 runs until 10:30 and overlaps the
	// 09:30-10:15 session in the same room. Instructors differ, so only
	// the room dimension conflicts.
	require.NoError(t, entries.Create(context.Background(), &models.ScheduleEntry{
		CourseID: "course-db", RoomID: "room-a", Day: "MONDAY", StartTime: "09:30", EndTime: "10:15",
	}))

	_, err := svc.Create(context.Background(), dto.CreateExamRequest{
		CourseID:        "course-algo",
		RoomID:          "room-a",
		Day:             "MONDAY",
		StartTime:       "09:00",
		DurationMinutes: 90,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRoomConflict.Code, appErrors.FromError(err).Code)
}

func TestExamCreateRejectsInstructorOverlapAcrossRooms(t *testing.T) {
	svc, _, entries := newExamFixture()

	require.NoError(t, entries.Create(context.Background(), &models.ScheduleEntry{
		CourseID: "course-algo", RoomID: "room-a", Day: "MONDAY", StartTime: "10:00", EndTime: "10:45",
	}))

	// Same instructor, different room: still blocked.
	_, err := svc.Create(context.Background(), dto.CreateExamRequest{
		CourseID:        "course-algo",
		RoomID:          "room-b",
		Day:             "MONDAY",
		StartTime:       "10:15",
		DurationMinutes: 45,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInstructorConflict.Code, appErrors.FromError(err).Code)
}

func TestExamCreateAllowsTouchingIntervals(t *testing.T) {
	svc, repo, entries := newExamFixture()

	require.NoError(t, entries.Create(context.Background(), &models.ScheduleEntry{
		CourseID: "course-db", RoomID: "room-a", Day: "MONDAY", StartTime: "08:30", EndTime: "09:15",
	}))

	// Starts exactly when the session ends: touching endpoints are not an
	// overlap, on either the room or the instructor dimension.
	_, err := svc.Create(context.Background(), dto.CreateExamRequest{
		CourseID:        "course-db",
		RoomID:          "room-a",
		Day:             "MONDAY",
		StartTime:       "09:15",
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	assert.Len(t, repo.exams, 1)
}

func TestExamDeleteMissing(t *testing.T) {
	svc, _, _ := newExamFixture()

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
