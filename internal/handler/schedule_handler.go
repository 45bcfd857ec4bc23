package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/service"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/response"
)

// ScheduleHandler manages schedule entry and timetable endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
	auto    *service.AutoScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.ScheduleService, auto *service.AutoScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc, auto: auto}
}

// List godoc
// @Summary List schedule entries
// @Tags Schedule
// @Produce json
// @Param course_id query string false "Filter by course"
// @Param room_id query string false "Filter by room"
// @Param day query string false "Filter by day"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var query dto.ScheduleEntryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	entries, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// Place godoc
// @Summary Place a session manually
// @Description Validates and commits one session. Omit room_id to let the engine pick the best free room. A capacity shortfall on an explicitly chosen room is returned as a warning, not an error.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.ManualPlacementRequest true "Placement payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedule [post]
func (h *ScheduleHandler) Place(c *gin.Context) {
	var req dto.ManualPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.service.PlaceManually(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Delete godoc
// @Summary Delete schedule entry
// @Tags Schedule
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AvailableRooms godoc
// @Summary Find available rooms
// @Description Ranks rooms free for a course at the given interval, best first
// @Tags Schedule
// @Produce json
// @Param course_id query string true "Course ID"
// @Param day query string true "Day"
// @Param start_time query string true "Start clock (HH:MM)"
// @Param end_time query string true "End clock (HH:MM)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/available-rooms [get]
func (h *ScheduleHandler) AvailableRooms(c *gin.Context) {
	var query dto.AvailableRoomsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}

	rooms, err := h.service.FindAvailableRooms(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// Timetable godoc
// @Summary Weekly timetable
// @Description Returns the full week grouped by day, served from cache when warm
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *ScheduleHandler) Timetable(c *gin.Context) {
	view, err := h.service.Timetable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// AutoSchedule godoc
// @Summary Run the auto-scheduler
// @Description Fills every course up to its weekly quota. Partial success is normal; unplaced courses are reported with the reason.
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/auto [post]
func (h *ScheduleHandler) AutoSchedule(c *gin.Context) {
	result, err := h.auto.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
