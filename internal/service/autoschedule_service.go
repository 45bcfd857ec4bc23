package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/allocator"
	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type scheduleEntryBulkWriter interface {
	BulkCreate(ctx context.Context, entries []models.ScheduleEntry) error
}

// AutoScheduleService runs the greedy scheduler over a fresh snapshot and
// commits the resulting placements in one transaction.
type AutoScheduleService struct {
	loader  datasetLoader
	writer  scheduleEntryBulkWriter
	grid    allocator.Grid
	dayCap  int
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger

	// placementMu is shared with ScheduleService: a run must not interleave
	// with manual placements.
	placementMu *sync.Mutex
}

// NewAutoScheduleService creates a new auto-schedule service.
func NewAutoScheduleService(
	rooms roomLister,
	departments departmentLister,
	courses courseLister,
	entries scheduleEntryRepository,
	exams examLister,
	writer scheduleEntryBulkWriter,
	grid allocator.Grid,
	dayCap int,
	cache *CacheService,
	metrics *MetricsService,
	placementMu *sync.Mutex,
	logger *zap.Logger,
) *AutoScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if placementMu == nil {
		placementMu = &sync.Mutex{}
	}
	return &AutoScheduleService{
		loader: datasetLoader{
			rooms:       rooms,
			departments: departments,
			courses:     courses,
			entries:     entries,
			exams:       exams,
		},
		writer:      writer,
		grid:        grid,
		dayCap:      dayCap,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		placementMu: placementMu,
	}
}

// Run fills every course up to its weekly quota. Partial success is normal:
// courses that cannot be placed are reported in the response, and whatever
// was placed is persisted atomically.
func (s *AutoScheduleService) Run(ctx context.Context) (*dto.AutoScheduleResponse, error) {
	s.placementMu.Lock()
	defer s.placementMu.Unlock()

	start := time.Now()
	dataset, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	scheduler := allocator.NewAutoScheduler(
		allocator.GreedySearcher{Grid: s.grid, DayCap: s.dayCap},
		uuid.NewString,
	)
	result := scheduler.Run(dataset)

	if len(result.Entries) > 0 {
		if err := s.writer.BulkCreate(ctx, result.Entries); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist auto-scheduled entries")
		}
	}

	if s.metrics != nil {
		s.metrics.RecordSessionsPlaced(PlacementOriginAuto, result.Placed)
		s.metrics.ObserveAutoScheduleRun(time.Since(start))
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, timetableCachePattern)
	}

	s.logger.Info("auto-schedule run finished",
		zap.Int("placed", result.Placed),
		zap.Int("unplaced_courses", len(result.Unplaced)),
		zap.Duration("took", time.Since(start)))

	return &dto.AutoScheduleResponse{
		Placed:   result.Placed,
		Entries:  result.Entries,
		Unplaced: result.Unplaced,
	}, nil
}
