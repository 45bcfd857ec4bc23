package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/allocator"
	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

const (
	timetableCachePattern = "timetable:*"
	timetableCacheKey     = "timetable:week"
)

type scheduleEntryRepository interface {
	List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, int, error)
	ListAll(ctx context.Context) ([]models.ScheduleEntry, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error)
	Create(ctx context.Context, entry *models.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
}

type roomLister interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

type departmentLister interface {
	ListAll(ctx context.Context) ([]models.Department, error)
}

type courseLister interface {
	ListAll(ctx context.Context) ([]models.Course, error)
}

type examLister interface {
	ListAll(ctx context.Context) ([]models.Exam, error)
}

// datasetLoader assembles the in-memory working set the allocation engine
// operates on.
type datasetLoader struct {
	rooms       roomLister
	departments departmentLister
	courses     courseLister
	entries     scheduleEntryRepository
	exams       examLister
}

func (l datasetLoader) load(ctx context.Context) (*allocator.Dataset, error) {
	rooms, err := l.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	departments, err := l.departments.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load departments")
	}
	courses, err := l.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	entries, err := l.entries.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entries")
	}
	exams, err := l.exams.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exams")
	}
	return &allocator.Dataset{
		Rooms:       rooms,
		Departments: departments,
		Courses:     courses,
		Entries:     entries,
		Exams:       exams,
	}, nil
}

// ScheduleService drives manual placement, room availability lookups and the
// timetable views.
type ScheduleService struct {
	entries   scheduleEntryRepository
	loader    datasetLoader
	grid      allocator.Grid
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration

	// placementMu serialises every validate-and-commit sequence, shared
	// with the auto-scheduler so no placement validates against a stale
	// view of the timetable.
	placementMu *sync.Mutex
}

// NewScheduleService creates a new schedule service. placementMu must be the
// same instance handed to the auto-scheduler.
func NewScheduleService(
	entries scheduleEntryRepository,
	rooms roomLister,
	departments departmentLister,
	courses courseLister,
	exams examLister,
	grid allocator.Grid,
	cache *CacheService,
	metrics *MetricsService,
	placementMu *sync.Mutex,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger *zap.Logger,
) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if placementMu == nil {
		placementMu = &sync.Mutex{}
	}
	return &ScheduleService{
		entries: entries,
		loader: datasetLoader{
			rooms:       rooms,
			departments: departments,
			courses:     courses,
			entries:     entries,
			exams:       exams,
		},
		grid:        grid,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		cacheTTL:    cacheTTL,
		placementMu: placementMu,
	}
}

// List returns paginated schedule entries.
func (s *ScheduleService) List(ctx context.Context, query dto.ScheduleEntryQuery) ([]models.ScheduleEntry, *models.Pagination, error) {
	filter := models.ScheduleEntryFilter{
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
	entries, total, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule entries")
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
	return entries, pagination, nil
}

// PlaceManually validates and commits a hand-picked placement. The session
// must start on a grid slot. Manual placements may exceed the course's weekly
// quota; capacity shortfalls on an explicitly chosen room come back as a
// warning, not an error.
func (s *ScheduleService) PlaceManually(ctx context.Context, req dto.ManualPlacementRequest) (*dto.ManualPlacementResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid placement payload")
	}
	if _, _, ok := s.grid.SlotAt(req.StartTime); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start time is not on the timetable grid")
	}

	s.placementMu.Lock()
	defer s.placementMu.Unlock()

	dataset, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	course := dataset.CourseByID(req.CourseID)
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	decision, err := dataset.ValidatePlacement(allocator.PlacementRequest{
		Course:    *course,
		RoomID:    req.RoomID,
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return nil, s.translatePlacementError(err)
	}

	entry := &models.ScheduleEntry{
		CourseID:  course.ID,
		RoomID:    decision.Room.ID,
		Day:       allocator.NormalizeDay(req.Day),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule entry")
	}

	if s.metrics != nil {
		s.metrics.RecordSessionsPlaced(PlacementOriginManual, 1)
	}
	s.invalidateTimetable(ctx)

	if decision.Warning != nil {
		s.logger.Warn("capacity shortfall accepted",
			zap.String("room", decision.Room.Name),
			zap.Int("capacity", decision.Room.Capacity),
			zap.Int("students", course.StudentCount))
	}
	return &dto.ManualPlacementResponse{Entry: *entry, Warning: decision.Warning}, nil
}

// FindAvailableRooms lists rooms free for a course at an interval, best first.
func (s *ScheduleService) FindAvailableRooms(ctx context.Context, query dto.AvailableRoomsQuery) ([]allocator.RankedRoom, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
	}

	day := allocator.NormalizeDay(query.Day)
	if !allocator.IsValidDay(day) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid day")
	}
	start, err := allocator.ParseClock(query.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid start time")
	}
	end, err := allocator.ParseClock(query.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid end time")
	}
	if end <= start {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
	}

	dataset, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}
	course := dataset.CourseByID(query.CourseID)
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return dataset.FindAvailableRooms(*course, day, start, end, ""), nil
}

// Timetable assembles the cached week view grouped by day.
func (s *ScheduleService) Timetable(ctx context.Context) (*dto.TimetableView, error) {
	var cached dto.TimetableView
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, timetableCacheKey, &cached); hit {
			return &cached, nil
		}
	}

	dataset, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	view := dto.TimetableView{
		Days:  allocator.AllDays(),
		Slots: s.grid.Slots(),
		ByDay: make(map[string][]dto.TimetableCell, 7),
	}
	for _, entry := range dataset.Entries {
		cell := dto.TimetableCell{
			EntryID:   entry.ID,
			CourseID:  entry.CourseID,
			RoomID:    entry.RoomID,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		}
		if course := dataset.CourseByID(entry.CourseID); course != nil {
			cell.CourseName = course.Name
			cell.Instructor = course.Instructor
		}
		if room := dataset.RoomByID(entry.RoomID); room != nil {
			cell.RoomName = room.Name
		}
		view.ByDay[entry.Day] = append(view.ByDay[entry.Day], cell)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, timetableCacheKey, view, s.cacheTTL)
	}
	return &view, nil
}

// Delete removes a schedule entry.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.entries.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entry")
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule entry")
	}
	s.invalidateTimetable(ctx)
	return nil
}

func (s *ScheduleService) translatePlacementError(err error) error {
	var conflictErr *models.PlacementConflictError
	if errors.As(err, &conflictErr) {
		if s.metrics != nil {
			s.metrics.RecordPlacementConflict(conflictErr.Type)
		}
		code := appErrors.ErrRoomConflict
		if conflictErr.Type == models.ConflictDimensionInstructor {
			code = appErrors.ErrInstructorConflict
		}
		return appErrors.Wrap(conflictErr, code.Code, code.Status, conflictErr.Message)
	}
	if errors.Is(err, allocator.ErrNoRoomAvailable) {
		if s.metrics != nil {
			s.metrics.RecordPlacementConflict("CAPACITY")
		}
		return appErrors.Clone(appErrors.ErrNoCapacity, allocator.ErrNoRoomAvailable.Error())
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
}

func (s *ScheduleService) invalidateTimetable(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, timetableCachePattern)
	}
}
