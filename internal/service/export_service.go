package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/allocator"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/export"
)

// ExportService renders the working set as JSON, CSV and PDF artifacts and
// imports previously exported JSON snapshots.
type ExportService struct {
	loader   datasetLoader
	replacer scheduleReplacer
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	grid     allocator.Grid
	title    string
	cache    *CacheService
	logger   *zap.Logger
}

// NewExportService creates a new export service.
func NewExportService(
	rooms roomLister,
	departments departmentLister,
	courses courseLister,
	entries scheduleEntryRepository,
	exams examLister,
	replacer scheduleReplacer,
	grid allocator.Grid,
	title string,
	cache *CacheService,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		loader: datasetLoader{
			rooms:       rooms,
			departments: departments,
			courses:     courses,
			entries:     entries,
			exams:       exams,
		},
		replacer: replacer,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		grid:     grid,
		title:    title,
		cache:    cache,
		logger:   logger,
	}
}

// ExportJSON serializes the full working set.
func (s *ExportService) ExportJSON(ctx context.Context) (*models.DatasetSnapshot, error) {
	dataset, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DatasetSnapshot{
		Rooms:       dataset.Rooms,
		Departments: dataset.Departments,
		Courses:     dataset.Courses,
		Entries:     dataset.Entries,
		Exams:       dataset.Exams,
		ExportedAt:  time.Now().UTC(),
	}, nil
}

// ImportJSON replaces the weekly schedule from an exported snapshot. Entries
// referring to unknown courses or rooms are skipped.
func (s *ExportService) ImportJSON(ctx context.Context, raw []byte) (imported, skipped int, err error) {
	var snapshot models.DatasetSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return 0, 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid snapshot payload")
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
		return 0, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import schedule")
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, timetableCachePattern)
	}
	s.logger.Info("schedule imported", zap.Int("imported", len(keep)), zap.Int("skipped", skipped))
	return len(keep), skipped, nil
}

// ExportCSV renders the weekly schedule as a flat CSV table.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	dataset, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Headers: []string{"Day", "Start", "End", "Course", "Instructor", "Room"},
	}
	for _, entry := range dataset.Entries {
		row := map[string]string{
			"Day":   entry.Day,
			"Start": entry.StartTime,
			"End":   entry.EndTime,
		}
		if course := dataset.CourseByID(entry.CourseID); course != nil {
			row["Course"] = course.Name
			row["Instructor"] = course.Instructor
		}
		if room := dataset.RoomByID(entry.RoomID); room != nil {
			row["Room"] = room.Name
		}
		table.Rows = append(table.Rows, row)
	}

	data, err := s.csv.Render(table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return data, nil
}

// ExportWeekPDF renders the weekly timetable as a printable week grid.
func (s *ExportService) ExportWeekPDF(ctx context.Context) ([]byte, error) {
	dataset, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	grid := export.WeekGrid{
		Title: s.title,
		Days:  allocator.AllDays(),
		Cells: make(map[string]map[string]string),
	}
	for _, slot := range s.grid.Slots() {
		grid.SlotLabels = append(grid.SlotLabels, slot.Label)
	}

	for _, entry := range dataset.Entries {
		slot, _, ok := s.grid.SlotAt(entry.StartTime)
		if !ok {
			continue
		}
		text := entry.CourseID
		if course := dataset.CourseByID(entry.CourseID); course != nil {
			text = course.Name
		}
		if room := dataset.RoomByID(entry.RoomID); room != nil {
			text += " (" + room.Name + ")"
		}
		if grid.Cells[entry.Day] == nil {
			grid.Cells[entry.Day] = make(map[string]string)
		}
		// Parallel sessions in different rooms share the cell.
		if existing := grid.Cells[entry.Day][slot.Label]; existing != "" {
			text = existing + " / " + text
		}
		grid.Cells[entry.Day][slot.Label] = text
	}

	data, err := s.pdf.RenderWeekGrid(grid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return data, nil
}
