package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type courseEntryCounter interface {
	List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, int, error)
}

// CourseService handles course workflows including derived scheduling status.
type CourseService struct {
	repo        courseRepository
	entries     courseEntryCounter
	departments roomDepartmentLookup
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService creates a new course service.
func NewCourseService(repo courseRepository, entries courseEntryCounter, departments roomDepartmentLookup, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, entries: entries, departments: departments, cache: cache, validator: validate, logger: logger}
}

// List returns paginated courses with their scheduling progress. The
// progress is always recomputed from the stored sessions, never persisted.
func (s *CourseService) List(ctx context.Context, query dto.CourseQuery) ([]models.CourseStatus, *models.Pagination, error) {
	filter := models.CourseFilter{
		Search:       query.Search,
		Instructor:   query.Instructor,
		DepartmentID: query.DepartmentID,
		Year:         query.Year,
		Page:         query.Page,
		PageSize:     query.PageSize,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
	}
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	statuses := make([]models.CourseStatus, 0, len(courses))
	for _, course := range courses {
		status, err := s.deriveStatus(ctx, course)
		if err != nil {
			return nil, nil, err
		}
		statuses = append(statuses, status)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return statuses, pagination, nil
}

// Get returns a course with its derived status.
func (s *CourseService) Get(ctx context.Context, id string) (*models.CourseStatus, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	status, err := s.deriveStatus(ctx, *course)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Create adds a new course.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	year := req.Year
	if year == 0 {
		year = 1
	}
	course := &models.Course{
		Name:         strings.TrimSpace(req.Name),
		Instructor:   strings.TrimSpace(req.Instructor),
		DepartmentID: req.DepartmentID,
		WeeklyHours:  req.WeeklyHours,
		StudentCount: req.StudentCount,
		Year:         year,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update modifies an existing course.
func (s *CourseService) Update(ctx context.Context, id string, req dto.UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Instructor != nil {
		course.Instructor = strings.TrimSpace(*req.Instructor)
	}
	if req.DepartmentID != nil {
		if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
			return nil, err
		}
		course.DepartmentID = req.DepartmentID
	}
	if req.WeeklyHours != nil {
		course.WeeklyHours = *req.WeeklyHours
	}
	if req.StudentCount != nil {
		course.StudentCount = *req.StudentCount
	}
	if req.Year != nil {
		course.Year = *req.Year
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	s.invalidateTimetable(ctx)
	return course, nil
}

// Delete removes a course together with its sessions and exams.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	s.invalidateTimetable(ctx)
	return nil
}

func (s *CourseService) deriveStatus(ctx context.Context, course models.Course) (models.CourseStatus, error) {
	_, count, err := s.entries.List(ctx, models.ScheduleEntryFilter{CourseID: course.ID, PageSize: 1})
	if err != nil {
		return models.CourseStatus{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count course sessions")
	}
	return models.CourseStatus{
		Course:         course,
		ScheduledHours: count,
		Satisfied:      count >= course.WeeklyHours,
	}, nil
}

func (s *CourseService) checkDepartment(ctx context.Context, id *string) error {
	if id == nil || *id == "" || s.departments == nil {
		return nil
	}
	if _, err := s.departments.FindByID(ctx, *id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrValidation, "department does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check department")
	}
	return nil
}

func (s *CourseService) invalidateTimetable(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, timetableCachePattern)
	}
}
