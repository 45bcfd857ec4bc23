package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-timetable-api/internal/service"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/response"
)

// maxImportBytes caps import payloads at 8 MiB.
const maxImportBytes = 8 << 20

// ExportHandler serves dataset export and import endpoints.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// ExportJSON godoc
// @Summary Export dataset as JSON
// @Description Serializes rooms, departments, courses, schedule and exams
// @Tags Export
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	snapshot, err := h.service.ExportJSON(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}

// ImportJSON godoc
// @Summary Import dataset from JSON
// @Description Replaces the weekly schedule from an exported snapshot. Entries referring to unknown courses or rooms are skipped and counted.
// @Tags Export
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /export/json [post]
func (h *ExportHandler) ImportJSON(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read payload"))
		return
	}

	imported, skipped, err := h.service.ImportJSON(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"imported": imported, "skipped": skipped}, nil)
}

// ExportCSV godoc
// @Summary Export schedule as CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Router /export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	data, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="timetable.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportPDF godoc
// @Summary Export timetable as PDF
// @Description Renders the week grid as a printable landscape PDF
// @Tags Export
// @Produce application/pdf
// @Success 200 {string} string "PDF payload"
// @Router /export/pdf [get]
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	data, err := h.service.ExportWeekPDF(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="timetable.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
