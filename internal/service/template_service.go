package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

type templateRepository interface {
	List(ctx context.Context) ([]models.Template, error)
	FindByID(ctx context.Context, id string) (*models.Template, error)
	Create(ctx context.Context, tpl *models.Template) error
	Delete(ctx context.Context, id string) error
}

type scheduleReplacer interface {
	ReplaceAll(ctx context.Context, entries []models.ScheduleEntry) error
}

// TemplateService snapshots the working set under a name and restores the
// weekly schedule from a saved snapshot. Restoring drops entries whose course
// or room no longer exists rather than failing the whole restore.
type TemplateService struct {
	repo      templateRepository
	loader    datasetLoader
	replacer  scheduleReplacer
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTemplateService creates a new template service.
func NewTemplateService(
	repo templateRepository,
	rooms roomLister,
	departments departmentLister,
	courses courseLister,
	entries scheduleEntryRepository,
	exams examLister,
	replacer scheduleReplacer,
	cache *CacheService,
	validate *validator.Validate,
	logger *zap.Logger,
) *TemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{
		repo: repo,
		loader: datasetLoader{
			rooms:       rooms,
			departments: departments,
			courses:     courses,
			entries:     entries,
			exams:       exams,
		},
		replacer:  replacer,
		cache:     cache,
		validator: validate,
		logger:    logger,
	}
}

// List returns saved templates without their payloads.
func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list templates")
	}
	return templates, nil
}

// Save snapshots the current working set under a name.
func (s *TemplateService) Save(ctx context.Context, req dto.SaveTemplateRequest) (*models.Template, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload")
	}

	dataset, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := models.DatasetSnapshot{
		Rooms:       dataset.Rooms,
		Departments: dataset.Departments,
		Courses:     dataset.Courses,
		Entries:     dataset.Entries,
		Exams:       dataset.Exams,
		ExportedAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize snapshot")
	}

	tpl := &models.Template{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Data:        types.JSONText(payload),
	}
	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save template")
	}
	return tpl, nil
}

// Restore replaces the weekly schedule with a template's entries. Entries
// referring to deleted courses or rooms are skipped and counted.
func (s *TemplateService) Restore(ctx context.Context, id string) (restored, skipped int, err error) {
	tpl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return 0, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}

	var snapshot models.DatasetSnapshot
	if err := json.Unmarshal(tpl.Data, &snapshot); err != nil {
		return 0, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to parse template snapshot")
	}

	dataset, err := s.loader.load(ctx)
	if err != nil {
		return 0, 0, err
	}

	keep := make([]models.ScheduleEntry, 0, len(snapshot.Entries))
	for _, entry := range snapshot.Entries {
		if dataset.CourseByID(entry.CourseID) == nil || dataset.RoomByID(entry.RoomID) == nil {
			skipped++
			continue
		}
		entry.ID = ""
		keep = append(keep, entry)
	}

	if err := s.replacer.ReplaceAll(ctx, keep); err != nil {
		return 0, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore schedule")
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, timetableCachePattern)
	}

	s.logger.Info("template restored",
		zap.String("template", tpl.Name),
		zap.Int("restored", len(keep)),
		zap.Int("skipped", skipped))
	return len(keep), skipped, nil
}

// Delete removes a saved template.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete template")
	}
	return nil
}
