package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type stubTemplateRepo struct {
	templates map[string]*models.Template
	nextID    int
}

func (r *stubTemplateRepo) List(context.Context) ([]models.Template, error) {
	out := make([]models.Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, *tpl)
	}
	return out, nil
}

func (r *stubTemplateRepo) FindByID(_ context.Context, id string) (*models.Template, error) {
	if tpl, ok := r.templates[id]; ok {
		clone := *tpl
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (r *stubTemplateRepo) Create(_ context.Context, tpl *models.Template) error {
	r.nextID++
	tpl.ID = fmt.Sprintf("tpl-%d", r.nextID)
	r.templates[tpl.ID] = tpl
	return nil
}

func (r *stubTemplateRepo) Delete(_ context.Context, id string) error {
	delete(r.templates, id)
	return nil
}

func newTemplateFixture(t *testing.T) (*TemplateService, *stubTemplateRepo, *memEntryRepo) {
	t.Helper()
	repo := &stubTemplateRepo{templates: map[string]*models.Template{}}
	entries := &memEntryRepo{}
	rooms := memRooms{{ID: "room-a", Name: "Hall A", Capacity: 40}}
	courses := memCourses{{ID: "course-algo", Name: "Algorithms", Instructor: "Dr. Chen", WeeklyHours: 2, StudentCount: 25}}
	svc := NewTemplateService(repo, rooms, memDepartments{}, courses, entries, memExams{}, entries, nil, nil, nil)
	return svc, repo, entries
}

func TestTemplateSaveSnapshotsWorkingSet(t *testing.T) {
	svc, repo, entries := newTemplateFixture(t)
	require.NoError(t, entries.Create(context.Background(), &models.ScheduleEntry{
		CourseID: "course-algo", RoomID: "room-a", Day: "MONDAY", StartTime: "08:30", EndTime: "09:15",
	}))

	tpl, err := svc.Save(context.Background(), dto.SaveTemplateRequest{Name: "  fall draft  ", Description: "before exam week"})
	require.NoError(t, err)
	assert.Equal(t, "fall draft", tpl.Name)
	assert.Contains(t, repo.templates, tpl.ID)

	var snapshot models.DatasetSnapshot
	require.NoError(t, json.Unmarshal(tpl.Data, &snapshot))
	assert.Len(t, snapshot.Entries, 1)
	assert.Len(t, snapshot.Rooms, 1)
	assert.Len(t, snapshot.Courses, 1)
}

func TestTemplateRestoreSkipsDanglingReferences(t *testing.T) {
	svc, repo, entries := newTemplateFixture(t)

	snapshot := models.DatasetSnapshot{
		Entries: []models.ScheduleEntry{
			{ID: "old-1", CourseID: "course-algo", RoomID: "room-a", Day: "MONDAY", StartTime: "08:30", EndTime: "09:15"},
			{ID: "old-2", CourseID: "course-gone", RoomID: "room-a", Day: "TUESDAY", StartTime: "08:30", EndTime: "09:15"},
			{ID: "old-3", CourseID: "course-algo", RoomID: "room-gone", Day: "WEDNESDAY", StartTime: "08:30", EndTime: "09:15"},
		},
	}
	payload, err := json.Marshal(snapshot)
	require.NoError(t, err)
	repo.templates["tpl-1"] = &models.Template{ID: "tpl-1", Name: "old week", Data: types.JSONText(payload)}

	// A pre-existing entry gets replaced by the restore.
	require.NoError(t, entries.Create(context.Background(), &models.ScheduleEntry{
		CourseID: "course-algo", RoomID: "room-a", Day: "FRIDAY", StartTime: "10:00", EndTime: "10:45",
	}))

	restored, skipped, err := svc.Restore(context.Background(), "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, 1, restored)
	assert.Equal(t, 2, skipped)
	require.Len(t, entries.entries, 1)
	assert.Equal(t, "MONDAY", entries.entries[0].Day)
	assert.Empty(t, entries.entries[0].ID, "restored entries get fresh ids on insert")
}

func TestTemplateRestoreNotFound(t *testing.T) {
	svc, _, _ := newTemplateFixture(t)

	_, _, err := svc.Restore(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTemplateSaveRejectsEmptyName(t *testing.T) {
	svc, _, _ := newTemplateFixture(t)

	_, err := svc.Save(context.Background(), dto.SaveTemplateRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTemplateDeleteMissing(t *testing.T) {
	svc, _, _ := newTemplateFixture(t)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
