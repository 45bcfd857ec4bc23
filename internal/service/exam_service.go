package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/allocator"
	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type examRepository interface {
	List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, int, error)
	ListAll(ctx context.Context) ([]models.Exam, error)
	FindByID(ctx context.Context, id string) (*models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
	Delete(ctx context.Context, id string) error
}

// ExamService places fixed exams. An exam occupies its room for the full
// duration starting at its start clock, and blocks its course's instructor
// like any session does.
type ExamService struct {
	repo      examRepository
	loader    datasetLoader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamService creates a new exam service.
func NewExamService(
	repo examRepository,
	rooms roomLister,
	departments departmentLister,
	courses courseLister,
	entries scheduleEntryRepository,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *ExamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{
		repo: repo,
		loader: datasetLoader{
			rooms:       rooms,
			departments: departments,
			courses:     courses,
			entries:     entries,
			exams:       repo,
		},
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// List returns paginated exams.
func (s *ExamService) List(ctx context.Context, query dto.ExamQuery) ([]models.Exam, *models.Pagination, error) {
	filter := models.ExamFilter{
		CourseID:  query.CourseID,
		RoomID:    query.RoomID,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if query.Day != "" {
		filter.Day = allocator.NormalizeDay(query.Day)
	}
	exams, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exams")
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
	return exams, pagination, nil
}

// Create validates and stores a fixed exam placement. Room resolution works
// like a manual session placement: an omitted room is auto-picked, a chosen
// room that is too small is accepted with a capacity warning.
func (s *ExamService) Create(ctx context.Context, req dto.CreateExamRequest) (*dto.CreateExamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}

	day := allocator.NormalizeDay(req.Day)
	if !allocator.IsValidDay(day) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid day")
	}
	start, err := allocator.ParseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid start time")
	}
	end := start + req.DurationMinutes

	dataset, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}
	course := dataset.CourseByID(req.CourseID)
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	if conflict, busy := dataset.FindInstructorConflict(course.Instructor, day, start, end, ""); busy {
		if s.metrics != nil {
			s.metrics.RecordPlacementConflict(models.ConflictDimensionInstructor)
		}
		return nil, appErrors.Wrap(&models.PlacementConflictError{
			Type:     models.ConflictDimensionInstructor,
			Message:  "instructor already booked during the exam window",
			Conflict: conflict,
		}, appErrors.ErrInstructorConflict.Code, appErrors.ErrInstructorConflict.Status, "instructor already booked during the exam window")
	}

	var room models.Room
	var warning *allocator.CapacityWarning
	if req.RoomID == "" {
		best, ok := dataset.BestRoom(*course, day, start, end, "")
		if !ok {
			if s.metrics != nil {
				s.metrics.RecordPlacementConflict("CAPACITY")
			}
			return nil, appErrors.Clone(appErrors.ErrNoCapacity, allocator.ErrNoRoomAvailable.Error())
		}
		room = best.Room
	} else {
		chosen := dataset.RoomByID(req.RoomID)
		if chosen == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		if conflict, busy := dataset.FindRoomConflict(chosen.ID, day, start, end, ""); busy {
			if s.metrics != nil {
				s.metrics.RecordPlacementConflict(models.ConflictDimensionRoom)
			}
			return nil, appErrors.Wrap(&models.PlacementConflictError{
				Type:     models.ConflictDimensionRoom,
				Message:  "room already occupied during the exam window",
				Conflict: conflict,
			}, appErrors.ErrRoomConflict.Code, appErrors.ErrRoomConflict.Status, "room already occupied during the exam window")
		}
		room = *chosen
		if room.Capacity < course.StudentCount {
			warning = &allocator.CapacityWarning{
				RoomID:       room.ID,
				RoomName:     room.Name,
				Capacity:     room.Capacity,
				StudentCount: course.StudentCount,
				Message: fmt.Sprintf("room %s seats %d but the course has %d students",
					room.Name, room.Capacity, course.StudentCount),
			}
			s.logger.Warn("exam capacity shortfall accepted",
				zap.String("room", room.Name),
				zap.Int("capacity", room.Capacity),
				zap.Int("students", course.StudentCount))
		}
	}

	exam := &models.Exam{
		CourseID:        course.ID,
		RoomID:          room.ID,
		Day:             day,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		ExamDate:        req.ExamDate,
		Fixed:           true,
	}
	if err := s.repo.Create(ctx, exam); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam")
	}
	s.invalidateTimetable(ctx)
	return &dto.CreateExamResponse{Exam: *exam, Warning: warning}, nil
}

// Get returns an exam by identifier.
func (s *ExamService) Get(ctx context.Context, id string) (*models.Exam, error) {
	exam, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	return exam, nil
}

// Delete removes an exam.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete exam")
	}
	s.invalidateTimetable(ctx)
	return nil
}

func (s *ExamService) invalidateTimetable(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, timetableCachePattern)
	}
}
