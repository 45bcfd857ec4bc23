package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/internal/service"
)

type fakeCourseStore struct {
	courses map[string]*models.Course
	created *models.Course
}

func (f *fakeCourseStore) List(context.Context, models.CourseFilter) ([]models.Course, int, error) {
	out := make([]models.Course, 0, len(f.courses))
	for _, c := range f.courses {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (f *fakeCourseStore) FindByID(_ context.Context, id string) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = "course-new"
	f.created = course
	return nil
}

func (f *fakeCourseStore) Update(context.Context, *models.Course) error { return nil }
func (f *fakeCourseStore) Delete(context.Context, string) error        { return nil }

type noSessions struct{}

func (noSessions) List(context.Context, models.ScheduleEntryFilter) ([]models.ScheduleEntry, int, error) {
	return nil, 0, nil
}

type noDepartments struct{}

func (noDepartments) FindByID(context.Context, string) (*models.Department, error) {
	return nil, sql.ErrNoRows
}

func newCourseHandlerFixture() (*CourseHandler, *fakeCourseStore) {
	store := &fakeCourseStore{courses: map[string]*models.Course{
		"course-1": {
			ID:           "course-1",
			Name:         "Algorithms",
			Instructor:   "Dr. Chen",
			WeeklyHours:  3,
			StudentCount: 25,
			Year:         2,
		},
	}}
	svc := service.NewCourseService(store, noSessions{}, noDepartments{}, nil, nil, nil)
	return NewCourseHandler(svc), store
}

func TestCourseHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newCourseHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/course-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Algorithms", env.Data["name"])
	assert.Equal(t, false, env.Data["satisfied"])
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newCourseHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCourseHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, store := newCourseHandlerFixture()

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/courses", `{"name":"Databases","instructor":"Prof. Okafor","weekly_hours":2,"student_count":40}`)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, store.created)
	assert.Equal(t, "Databases", store.created.Name)
	assert.Equal(t, 1, store.created.Year)
}

func TestCourseHandlerCreateInvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, store := newCourseHandlerFixture()

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/courses", `{"name":"Databases"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, store.created)
}
